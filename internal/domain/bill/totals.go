package bill

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

// Options are the bill-level inputs to the totals calculation. Ranges are
// not checked here; callers bound discount and tax rate to [0, 100].
type Options struct {
	DiscountPercent decimal.Decimal
	ApplyTax        bool
	TaxRatePercent  decimal.Decimal
}

// Totals is the derived breakdown of a bill. Values are exact; round only
// when rendering.
type Totals struct {
	Subtotal       decimal.Decimal `json:"subtotal"`
	DiscountAmount decimal.Decimal `json:"discount_amount"`
	AfterDiscount  decimal.Decimal `json:"after_discount"`
	TaxAmount      decimal.Decimal `json:"tax_amount"`
	FinalTotal     decimal.Decimal `json:"final_total"`
}

// CalculateTotals computes subtotal, discount, tax and final total for items.
// Tax is applied to the discounted amount.
func CalculateTotals(items []LineItem, opts Options) Totals {
	subtotal := decimal.Zero
	for _, item := range items {
		subtotal = subtotal.Add(item.LineTotal())
	}

	discount := subtotal.Mul(opts.DiscountPercent).Div(hundred)
	afterDiscount := subtotal.Sub(discount)

	tax := decimal.Zero
	if opts.ApplyTax {
		tax = afterDiscount.Mul(opts.TaxRatePercent).Div(hundred)
	}

	return Totals{
		Subtotal:       subtotal,
		DiscountAmount: discount,
		AfterDiscount:  afterDiscount,
		TaxAmount:      tax,
		FinalTotal:     afterDiscount.Add(tax),
	}
}

// ChangeDue returns cash received minus the total; negative when short
func ChangeDue(total, cashReceived decimal.Decimal) decimal.Decimal {
	return cashReceived.Sub(total)
}
