package cart

import "github.com/shopspring/decimal"

var (
	freeShippingOver = decimal.NewFromInt(100)
	flatShipping     = decimal.RequireFromString("9.99")
	taxRate          = decimal.RequireFromString("0.08")
)

// OrderSummary is the checkout breakdown derived from a cart's totals.
type OrderSummary struct {
	Subtotal float64 `json:"subtotal"`
	Shipping float64 `json:"shipping"`
	Tax      float64 `json:"tax"`
	Total    float64 `json:"total"`
}

// Summary prices s for checkout. Shipping is free once the subtotal exceeds
// 100 and a flat 9.99 otherwise; an empty cart ships nothing. Tax is 8% of
// the subtotal. Each amount is rounded half-up to cents.
func Summary(s State) OrderSummary {
	subtotal := decimal.NewFromFloat(s.TotalPrice)

	shipping := flatShipping
	if s.TotalItems == 0 || subtotal.GreaterThan(freeShippingOver) {
		shipping = decimal.Zero
	}
	tax := subtotal.Mul(taxRate).Round(2)
	total := subtotal.Add(shipping).Add(tax).Round(2)

	return OrderSummary{
		Subtotal: subtotal.Round(2).InexactFloat64(),
		Shipping: shipping.InexactFloat64(),
		Tax:      tax.InexactFloat64(),
		Total:    total.InexactFloat64(),
	}
}
