package service

import (
	"context"
	"sync"

	"github.com/jeneeldumasia/mp/internal/domain/bill"
	"github.com/jeneeldumasia/mp/internal/domain/entity"
	"github.com/jeneeldumasia/mp/internal/domain/enum"
	"github.com/jeneeldumasia/mp/pkg/apperror"
	"github.com/jeneeldumasia/mp/pkg/logger"
	"github.com/shopspring/decimal"
)

var maxDiscount = decimal.NewFromInt(100)

// BillingService owns the one live bill of the till. Every action runs under
// the session lock and returns the refreshed view.
type BillingService struct {
	mu       sync.Mutex
	ledger   *bill.Ledger
	discount decimal.Decimal
	applyTax bool

	menu     *MenuService
	settings *SettingsService
	sales    *SaleService
	printer  *PrinterService
	log      *logger.Logger
}

// NewBillingService creates a billing session with an empty bill
func NewBillingService(
	menu *MenuService,
	settings *SettingsService,
	sales *SaleService,
	printer *PrinterService,
	log *logger.Logger,
) *BillingService {
	return &BillingService{
		ledger:   bill.NewLedger(),
		discount: decimal.Zero,
		menu:     menu,
		settings: settings,
		sales:    sales,
		printer:  printer,
		log:      log.WithComponent("billing"),
	}
}

// BillLine is a ledger line with its computed total
type BillLine struct {
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity"`
	LineTotal decimal.Decimal `json:"line_total"`
}

// BillView is what the till shows for the current bill
type BillView struct {
	Items           []BillLine      `json:"items"`
	Totals          bill.Totals     `json:"totals"`
	DiscountPercent decimal.Decimal `json:"discount_percent"`
	ApplyTax        bool            `json:"apply_tax"`
	TaxRate         decimal.Decimal `json:"tax_rate"`
	Currency        string          `json:"currency"`
}

// snapshot must be called with the lock held
func (s *BillingService) snapshot(ctx context.Context) (*BillView, bill.Totals, []bill.LineItem) {
	items := s.ledger.Items()
	rate := s.settings.TaxRate(ctx)
	totals := bill.CalculateTotals(items, bill.Options{
		DiscountPercent: s.discount,
		ApplyTax:        s.applyTax,
		TaxRatePercent:  rate,
	})

	lines := make([]BillLine, len(items))
	for i, item := range items {
		lines[i] = BillLine{
			Name:      item.Name,
			Price:     item.UnitPrice,
			Quantity:  item.Quantity,
			LineTotal: item.LineTotal(),
		}
	}

	view := &BillView{
		Items:           lines,
		Totals:          totals,
		DiscountPercent: s.discount,
		ApplyTax:        s.applyTax,
		TaxRate:         rate,
		Currency:        s.settings.Get(ctx, entity.ConfigCurrencySymbol, DefaultCurrencySymbol),
	}
	return view, totals, items
}

// View returns the current bill
func (s *BillingService) View(ctx context.Context) *BillView {
	s.mu.Lock()
	defer s.mu.Unlock()

	view, _, _ := s.snapshot(ctx)
	return view
}

// AddMenuItem adds one unit of the named menu item at its menu price
func (s *BillingService) AddMenuItem(ctx context.Context, name string) (*BillView, error) {
	item, err := s.menu.Find(ctx, name)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ledger.AddItem(item.Name, item.Price); err != nil {
		return nil, apperror.NewBadRequestError(err.Error())
	}
	view, _, _ := s.snapshot(ctx)
	return view, nil
}

// UpdateQuantity changes the quantity of a line by delta. Unknown names are ignored.
func (s *BillingService) UpdateQuantity(ctx context.Context, name string, delta int) *BillView {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.ledger.UpdateQuantity(name, delta)
	view, _, _ := s.snapshot(ctx)
	return view
}

// BillOptionsInput changes the discount and tax flag; nil fields are kept
type BillOptionsInput struct {
	DiscountPercent *decimal.Decimal
	ApplyTax        *bool
}

// SetOptions updates the discount percentage and whether GST applies
func (s *BillingService) SetOptions(ctx context.Context, input *BillOptionsInput) (*BillView, error) {
	if d := input.DiscountPercent; d != nil {
		if d.IsNegative() || d.GreaterThan(maxDiscount) {
			return nil, apperror.NewFieldError("discount_percent", "must be between 0 and 100")
		}
		if !d.Equal(d.Round(2)) {
			return nil, apperror.NewFieldError("discount_percent", "at most 2 decimal places")
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if input.DiscountPercent != nil {
		s.discount = *input.DiscountPercent
	}
	if input.ApplyTax != nil {
		s.applyTax = *input.ApplyTax
	}
	view, _, _ := s.snapshot(ctx)
	return view, nil
}

// Clear abandons the current bill and resets its options
func (s *BillingService) Clear(ctx context.Context) *BillView {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.reset()
	view, _, _ := s.snapshot(ctx)
	return view
}

func (s *BillingService) reset() {
	s.ledger.Clear()
	s.discount = decimal.Zero
	s.applyTax = false
}

// CompleteSaleInput is the payment captured at checkout
type CompleteSaleInput struct {
	PaymentMethod enum.PaymentMethod
	CashReceived  *decimal.Decimal
}

// CompletedSale is the outcome of a checkout
type CompletedSale struct {
	Sale         *entity.Sale     `json:"sale"`
	Receipt      *PrintedReceipt  `json:"receipt"`
	ChangeDue    *decimal.Decimal `json:"change_due,omitempty"`
	PrintWarning string           `json:"print_warning,omitempty"`
}

// Complete records the current bill as a sale and starts a fresh one.
// When saving fails the bill and its options stay as they were.
func (s *BillingService) Complete(ctx context.Context, input *CompleteSaleInput) (*CompletedSale, error) {
	sale, err := s.commit(ctx, input.PaymentMethod)
	if err != nil {
		return nil, err
	}

	result := &CompletedSale{Sale: sale}
	if input.CashReceived != nil {
		change := bill.ChangeDue(sale.TotalAmount, *input.CashReceived)
		result.ChangeDue = &change
	}

	receipt, err := s.printer.PrintSale(ctx, sale)
	result.Receipt = receipt
	if err != nil {
		result.PrintWarning = err.Error()
	}
	return result, nil
}

// commit holds the lock across the insert so the ledger is cleared only
// after the sale is stored
func (s *BillingService) commit(ctx context.Context, method enum.PaymentMethod) (*entity.Sale, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.ledger.IsEmpty() {
		return nil, apperror.ErrEmptySale
	}

	_, totals, items := s.snapshot(ctx)
	sale, err := s.sales.RecordSale(ctx, items, totals, method)
	if err != nil {
		s.log.Warn("sale not completed, bill kept", "error", err)
		return nil, err
	}

	s.reset()
	return sale, nil
}
