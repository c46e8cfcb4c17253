package request

import "github.com/shopspring/decimal"

// AddItemRequest adds one unit of a menu item to the bill
type AddItemRequest struct {
	Name string `json:"name" binding:"required,max=100"`
}

// UpdateQuantityRequest changes a line quantity by delta
type UpdateQuantityRequest struct {
	Delta int `json:"delta" binding:"required"`
}

// BillOptionsRequest represents a discount and GST toggle change
type BillOptionsRequest struct {
	DiscountPercent *decimal.Decimal `json:"discount_percent"`
	ApplyTax        *bool            `json:"apply_tax"`
}

// CompleteSaleRequest represents a checkout
type CompleteSaleRequest struct {
	PaymentMethod string           `json:"payment_method" binding:"required"`
	CashReceived  *decimal.Decimal `json:"cash_received"`
}
