package entity

import "github.com/shopspring/decimal"

// ReceiptHeader holds the shop details printed around a receipt
type ReceiptHeader struct {
	ShopName string `json:"shop_name"`
	Footer   string `json:"footer,omitempty"`
	Currency string `json:"currency"`
}

// ReceiptItem represents a single line item on a receipt.
type ReceiptItem struct {
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Total     decimal.Decimal `json:"total"`
}

// Receipt is composed from a sale at print time; it is not persisted.
type Receipt struct {
	Header      ReceiptHeader   `json:"header"`
	InvoiceNo   string          `json:"invoice_no"`
	Date        string          `json:"date"`
	PaymentType string          `json:"payment_type"`
	Items       []ReceiptItem   `json:"items"`
	SubTotal    decimal.Decimal `json:"sub_total"`
	Discount    decimal.Decimal `json:"discount"`
	Tax         decimal.Decimal `json:"tax"`
	Total       decimal.Decimal `json:"total"`
}

// NewReceipt builds a receipt for a recorded sale
func NewReceipt(header ReceiptHeader, sale *Sale) *Receipt {
	r := &Receipt{
		Header:      header,
		InvoiceNo:   sale.InvoiceNo,
		Date:        sale.Timestamp,
		PaymentType: sale.PaymentMethod.String(),
		SubTotal:    sale.Subtotal,
		Discount:    sale.Discount,
		Tax:         sale.Tax,
		Total:       sale.TotalAmount,
		Items:       make([]ReceiptItem, 0, len(sale.Items)),
	}
	for _, item := range sale.Items {
		r.Items = append(r.Items, ReceiptItem{
			Name:      item.Name,
			Quantity:  item.Quantity,
			UnitPrice: item.Price,
			Total:     item.Total(),
		})
	}
	return r
}
