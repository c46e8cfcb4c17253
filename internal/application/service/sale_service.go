package service

import (
	"context"
	"fmt"
	"time"

	"github.com/jeneeldumasia/mp/internal/domain/bill"
	"github.com/jeneeldumasia/mp/internal/domain/entity"
	"github.com/jeneeldumasia/mp/internal/domain/enum"
	"github.com/jeneeldumasia/mp/internal/domain/repository"
	"github.com/jeneeldumasia/mp/pkg/apperror"
	"github.com/jeneeldumasia/mp/pkg/logger"
)

// SaleService persists completed bills
type SaleService struct {
	saleRepo repository.SaleRepository
	log      *logger.Logger
	now      func() time.Time
}

// NewSaleService creates a new sale service
func NewSaleService(saleRepo repository.SaleRepository, log *logger.Logger) *SaleService {
	return &SaleService{
		saleRepo: saleRepo,
		log:      log.WithComponent("sales"),
		now:      time.Now,
	}
}

// RecordSale stores a snapshot of items with their totals as one sale.
// Amounts are rounded to entity.MoneyScale so the returned sale matches the row.
// Nothing is written when the item list is empty or the insert fails.
func (s *SaleService) RecordSale(ctx context.Context, items []bill.LineItem, totals bill.Totals, method enum.PaymentMethod) (*entity.Sale, error) {
	if len(items) == 0 {
		return nil, apperror.ErrEmptySale
	}
	if !method.IsValid() {
		return nil, apperror.NewFieldError("payment_method", fmt.Sprintf("unknown payment method %q", method))
	}

	sale := &entity.Sale{
		Timestamp:     s.now().Local().Truncate(time.Second).Format(entity.TimestampLayout),
		Items:         entity.SaleItemsFromLedger(items),
		Subtotal:      totals.Subtotal.Round(entity.MoneyScale),
		Discount:      totals.DiscountAmount.Round(entity.MoneyScale),
		Tax:           totals.TaxAmount.Round(entity.MoneyScale),
		TotalAmount:   totals.FinalTotal.Round(entity.MoneyScale),
		PaymentMethod: method,
	}

	if err := s.saleRepo.Create(ctx, sale); err != nil {
		s.log.Error("failed to save sale", "error", err, "total", totals.FinalTotal.String())
		return nil, apperror.NewPersistenceError("save sale", err)
	}

	s.log.Info("sale recorded",
		"invoice_no", sale.InvoiceNo,
		"total", sale.TotalAmount.StringFixed(2),
		"payment_method", sale.PaymentMethod.String(),
		"items", len(sale.Items),
	)
	return sale, nil
}

// GetSale returns one sale by id
func (s *SaleService) GetSale(ctx context.Context, id uint) (*entity.Sale, error) {
	sale, err := s.saleRepo.GetByID(ctx, id)
	if err != nil {
		return nil, apperror.NewPersistenceError("load sale", err)
	}
	if sale == nil {
		return nil, apperror.NewNotFoundError("Sale")
	}
	return sale, nil
}
