package service

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/jeneeldumasia/mp/internal/domain/entity"
	"github.com/jeneeldumasia/mp/internal/domain/enum"
	"github.com/jeneeldumasia/mp/pkg/apperror"
	"github.com/jeneeldumasia/mp/pkg/printer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleReceipt() *entity.Receipt {
	sale := &entity.Sale{
		InvoiceNo: "INV-1",
		Timestamp: "2024-03-05 13:45:10",
		Items: entity.SaleItems{
			{Name: "Pav Bhaji", Price: dec("80"), Quantity: 2},
			{Name: "Pulao", Price: dec("90"), Quantity: 1},
		},
		Subtotal:      dec("250"),
		Discount:      dec("25"),
		Tax:           dec("11.25"),
		TotalAmount:   dec("236.25"),
		PaymentMethod: enum.PaymentMethodUPI,
	}
	header := entity.ReceiptHeader{ShopName: "MISTY PAV BHAJI", Footer: "Thank you! Visit again!", Currency: "₹"}
	return entity.NewReceipt(header, sale)
}

func TestRenderText(t *testing.T) {
	out := RenderText(sampleReceipt(), 32)
	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")

	dash := strings.Repeat("-", 32)
	eq := strings.Repeat("=", 32)
	want := []string{
		"        MISTY PAV BHAJI",
		dash,
		printer.Justify("Invoice:", "INV-1", 32),
		printer.Justify("Date:", "2024-03-05 13:45:10", 32),
		dash,
		printer.Justify("2x Pav Bhaji", "₹160.00", 32),
		"  @ ₹80.00 each",
		printer.Justify("1x Pulao", "₹90.00", 32),
		dash,
		printer.Justify("Subtotal:", "₹250.00", 32),
		printer.Justify("Discount:", "-₹25.00", 32),
		printer.Justify("GST:", "+₹11.25", 32),
		eq,
		printer.Justify("TOTAL:", "₹236.25", 32),
		eq,
		"Payment: UPI",
		"",
		"    Thank you! Visit again!",
	}
	assert.Equal(t, want, lines)
}

func TestRenderTextOmitsZeroDiscountAndTax(t *testing.T) {
	r := sampleReceipt()
	r.Discount = dec("0")
	r.Tax = dec("0")
	r.Header.Footer = ""

	out := RenderText(r, 32)
	assert.NotContains(t, out, "Discount:")
	assert.NotContains(t, out, "GST:")
	assert.True(t, strings.HasSuffix(out, "Payment: UPI\n"))
}

func TestFormatReceipt(t *testing.T) {
	data := FormatReceipt(sampleReceipt(), 32)

	assert.True(t, bytes.HasPrefix(data, []byte{printer.ESC, '@'}))
	assert.True(t, bytes.HasSuffix(data, []byte{printer.GS, 'V', 0x01}))
	assert.Contains(t, string(data), "MISTY PAV BHAJI")
	assert.Contains(t, string(data), printer.Justify("TOTAL:", "₹236.25", 32))
}

func TestReprintSale(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	sale := env.insertSale(t, "2024-03-05 09:15:00", "80", enum.PaymentMethodCash)

	printed, err := env.printer.ReprintSale(ctx, sale.ID)
	require.NoError(t, err)
	assert.Equal(t, sale.InvoiceNo, printed.Receipt.InvoiceNo)
	assert.Equal(t, 1, env.device.count())

	preview, err := env.printer.PreviewSale(ctx, sale.ID)
	require.NoError(t, err)
	assert.Equal(t, printed.Preview, preview.Preview)
	assert.Equal(t, 1, env.device.count())

	_, err = env.printer.ReprintSale(ctx, sale.ID+100)
	assert.Equal(t, 404, apperror.GetAppError(err).Code)
}

func TestPrinterStatus(t *testing.T) {
	env := newTestEnv(t)

	status := env.printer.GetStatus()
	assert.True(t, status.Configured)
	assert.True(t, status.Connected)
	assert.Equal(t, "network", status.Type)
	assert.Equal(t, 32, status.Width)

	none := NewPrinterService(printer.NewNullPrinter(), env.sales, env.settings, "none", 48, env.printer.log).GetStatus()
	assert.False(t, none.Configured)
	assert.False(t, none.Connected)
}
