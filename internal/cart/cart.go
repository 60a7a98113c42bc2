// Package cart implements the shopping cart state engine.
package cart

import (
	"github.com/shopspring/decimal"

	"github.com/utafrali/EcommerceGo/storefront/internal/domain"
)

// State is an immutable cart snapshot. TotalItems and TotalPrice are
// derived from Items on every transition.
type State struct {
	Items      []domain.CartItem `json:"items"`
	TotalItems int               `json:"total_items"`
	TotalPrice float64           `json:"total_price"`
}

// Action is a cart transition.
type Action interface {
	cartAction()
}

// AddItem increments the line for Product by Quantity, or appends a new
// line with that quantity. Quantity zero or less counts as one.
type AddItem struct {
	Product  domain.Product
	Quantity int
}

// RemoveItem drops the line with ID.
type RemoveItem struct{ ID int }

// UpdateQuantity sets an absolute quantity. Zero or less removes the line.
type UpdateQuantity struct {
	ID       int
	Quantity int
}

// ClearCart empties the cart.
type ClearCart struct{}

// LoadCart replaces the lines wholesale.
type LoadCart struct{ Items []domain.CartItem }

func (AddItem) cartAction()        {}
func (RemoveItem) cartAction()     {}
func (UpdateQuantity) cartAction() {}
func (ClearCart) cartAction()      {}
func (LoadCart) cartAction()       {}

// Reduce applies a to s and returns the new state. s is never modified.
func Reduce(s State, a Action) State {
	switch a := a.(type) {
	case AddItem:
		n := max(a.Quantity, 1)
		if i := domain.FindCartItem(s.Items, a.Product.ID); i >= 0 {
			items := clone(s.Items)
			items[i].Quantity += n
			return withTotals(items)
		}
		line := domain.NewCartItem(a.Product)
		line.Quantity = n
		items := make([]domain.CartItem, len(s.Items), len(s.Items)+1)
		copy(items, s.Items)
		return withTotals(append(items, line))

	case RemoveItem:
		items := make([]domain.CartItem, 0, len(s.Items))
		for _, it := range s.Items {
			if it.ID != a.ID {
				items = append(items, it)
			}
		}
		return withTotals(items)

	case UpdateQuantity:
		if a.Quantity <= 0 {
			return Reduce(s, RemoveItem{ID: a.ID})
		}
		items := clone(s.Items)
		if i := domain.FindCartItem(items, a.ID); i >= 0 {
			items[i].Quantity = a.Quantity
		}
		return withTotals(items)

	case ClearCart:
		return State{Items: []domain.CartItem{}}

	case LoadCart:
		return withTotals(clone(a.Items))
	}
	return s
}

// withTotals builds a state over items with derived totals. The price sum
// is rounded half-up to two decimal places.
func withTotals(items []domain.CartItem) State {
	count := 0
	sum := decimal.Zero
	for _, it := range items {
		count += it.Quantity
		sum = sum.Add(decimal.NewFromFloat(it.Price).Mul(decimal.NewFromInt(int64(it.Quantity))))
	}
	price, _ := sum.Round(2).Float64()
	return State{Items: items, TotalItems: count, TotalPrice: price}
}

func clone(items []domain.CartItem) []domain.CartItem {
	out := make([]domain.CartItem, len(items))
	copy(out, items)
	return out
}
