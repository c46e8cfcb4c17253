package service

import (
	"context"
	"fmt"

	"github.com/jeneeldumasia/mp/internal/domain/entity"
	"github.com/jeneeldumasia/mp/pkg/logger"
	"github.com/jeneeldumasia/mp/pkg/printer"
	"github.com/shopspring/decimal"
)

// PrinterService handles receipt formatting and thermal printing.
type PrinterService struct {
	printer     printer.Printer
	sales       *SaleService
	settings    *SettingsService
	printerType string
	width       int
	log         *logger.Logger
}

// NewPrinterService creates a new printer service.
func NewPrinterService(
	p printer.Printer,
	sales *SaleService,
	settings *SettingsService,
	printerType string,
	width int,
	log *logger.Logger,
) *PrinterService {
	return &PrinterService{
		printer:     p,
		sales:       sales,
		settings:    settings,
		printerType: printerType,
		width:       width,
		log:         log.WithComponent("printer"),
	}
}

// PrinterStatus returns the current printer status information.
type PrinterStatus struct {
	Configured bool   `json:"configured"`
	Connected  bool   `json:"connected"`
	Type       string `json:"type"`
	Width      int    `json:"width"`
}

// GetStatus returns printer connection status.
func (s *PrinterService) GetStatus() *PrinterStatus {
	return &PrinterStatus{
		Configured: s.printerType != "none" && s.printerType != "",
		Connected:  s.printer.IsConnected(),
		Type:       s.printerType,
		Width:      s.width,
	}
}

// PrintedReceipt is a receipt with its text preview
type PrintedReceipt struct {
	Receipt *entity.Receipt `json:"receipt"`
	Preview string          `json:"preview"`
}

// PrintSale prints the receipt of a recorded sale. The receipt is returned
// even when printing fails so the caller can show the preview.
func (s *PrinterService) PrintSale(ctx context.Context, sale *entity.Sale) (*PrintedReceipt, error) {
	receipt := entity.NewReceipt(s.settings.ReceiptHeader(ctx), sale)
	out := &PrintedReceipt{Receipt: receipt, Preview: RenderText(receipt, s.width)}

	if err := s.printer.Print(ctx, FormatReceipt(receipt, s.width)); err != nil {
		s.log.Warn("printing failed", "invoice_no", sale.InvoiceNo, "error", err)
		return out, fmt.Errorf("failed to print receipt: %w", err)
	}
	return out, nil
}

// ReprintSale loads a past sale and prints it again.
func (s *PrinterService) ReprintSale(ctx context.Context, id uint) (*PrintedReceipt, error) {
	sale, err := s.sales.GetSale(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.PrintSale(ctx, sale)
}

// PreviewSale renders a past sale as text without printing.
func (s *PrinterService) PreviewSale(ctx context.Context, id uint) (*PrintedReceipt, error) {
	sale, err := s.sales.GetSale(ctx, id)
	if err != nil {
		return nil, err
	}
	receipt := entity.NewReceipt(s.settings.ReceiptHeader(ctx), sale)
	return &PrintedReceipt{Receipt: receipt, Preview: RenderText(receipt, s.width)}, nil
}

// FormatReceipt converts a Receipt into ESC/POS bytes.
func FormatReceipt(r *entity.Receipt, width int) []byte {
	doc := printer.NewDocument(width)
	layoutReceipt(doc, r)
	doc.FeedLines(3).PartialCut()
	return doc.Bytes()
}

// RenderText lays a Receipt out as plain text, as shown in the print preview.
func RenderText(r *entity.Receipt, width int) string {
	doc := printer.NewTextDocument(width)
	layoutReceipt(doc, r)
	return doc.String()
}

func layoutReceipt(doc *printer.Document, r *entity.Receipt) {
	money := func(prefix string, d decimal.Decimal) string {
		return prefix + r.Header.Currency + d.StringFixed(2)
	}

	doc.SetAlign(printer.AlignCenter).
		SetBold(true).
		SetFontSize(printer.FontDouble).
		Text(r.Header.ShopName).
		SetFontSize(printer.FontNormal).
		SetBold(false).
		SetAlign(printer.AlignLeft).
		Separator('-')

	doc.KeyValue("Invoice:", r.InvoiceNo).
		KeyValue("Date:", r.Date).
		Separator('-')

	for _, item := range r.Items {
		doc.ItemLine(item.Quantity, item.Name, money("", item.Total))
		if item.Quantity > 1 {
			doc.Text("  @ " + money("", item.UnitPrice) + " each")
		}
	}

	doc.Separator('-').
		KeyValue("Subtotal:", money("", r.SubTotal))
	if r.Discount.IsPositive() {
		doc.KeyValue("Discount:", money("-", r.Discount))
	}
	if r.Tax.IsPositive() {
		doc.KeyValue("GST:", money("+", r.Tax))
	}

	doc.Separator('=').
		SetBold(true).
		KeyValue("TOTAL:", money("", r.Total)).
		SetBold(false).
		Separator('=')

	if r.PaymentType != "" {
		doc.Text("Payment: " + r.PaymentType)
	}

	if r.Header.Footer != "" {
		doc.LineFeed().
			SetAlign(printer.AlignCenter).
			Text(r.Header.Footer).
			SetAlign(printer.AlignLeft)
	}
}
