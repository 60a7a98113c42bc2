package cart

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSummary_ShippingThreshold(t *testing.T) {
	tests := []struct {
		name     string
		price    float64
		qty      int
		shipping float64
		tax      float64
		total    float64
	}{
		{name: "below threshold", price: 50, qty: 1, shipping: 9.99, tax: 4, total: 63.99},
		{name: "exactly 100 still pays", price: 50, qty: 2, shipping: 9.99, tax: 8, total: 117.99},
		{name: "just over 100 ships free", price: 100.01, qty: 1, shipping: 0, tax: 8, total: 108.01},
		{name: "well over", price: 549, qty: 1, shipping: 0, tax: 43.92, total: 592.92},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Reduce(empty(), AddItem{Product: product(1, tt.price), Quantity: tt.qty})
			got := Summary(s)

			assert.Equal(t, s.TotalPrice, got.Subtotal)
			assert.Equal(t, tt.shipping, got.Shipping)
			assert.Equal(t, tt.tax, got.Tax)
			assert.Equal(t, tt.total, got.Total)
		})
	}
}

func TestSummary_RoundsTax(t *testing.T) {
	// 19.98 * 0.08 = 1.5984
	s := Reduce(empty(), AddItem{Product: product(1, 9.99), Quantity: 2})
	got := Summary(s)

	assert.Equal(t, 1.6, got.Tax)
	assert.Equal(t, 31.57, got.Total)
}

func TestSummary_EmptyCart(t *testing.T) {
	assert.Equal(t, OrderSummary{}, Summary(empty()))
}
