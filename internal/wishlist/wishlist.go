// Package wishlist implements the saved-products state engine.
package wishlist

import (
	"github.com/utafrali/EcommerceGo/storefront/internal/domain"
)

// State is an immutable wishlist snapshot: products unique by id, in the
// order they were first added.
type State struct {
	Items []domain.Product `json:"items"`
}

// Count returns the number of saved products.
func (s State) Count() int { return len(s.Items) }

// Contains reports whether id is saved.
func (s State) Contains(id int) bool { return domain.FindProduct(s.Items, id) >= 0 }

// Action is a wishlist transition.
type Action interface {
	wishlistAction()
}

// AddItem saves Product unless its id is already present.
type AddItem struct{ Product domain.Product }

// RemoveItem drops the product with ID.
type RemoveItem struct{ ID int }

// ClearWishlist empties the wishlist.
type ClearWishlist struct{}

// LoadWishlist replaces the products wholesale.
type LoadWishlist struct{ Items []domain.Product }

func (AddItem) wishlistAction()       {}
func (RemoveItem) wishlistAction()    {}
func (ClearWishlist) wishlistAction() {}
func (LoadWishlist) wishlistAction()  {}

// Reduce applies a to s and returns the new state. s is never modified.
func Reduce(s State, a Action) State {
	switch a := a.(type) {
	case AddItem:
		if s.Contains(a.Product.ID) {
			return s
		}
		items := make([]domain.Product, len(s.Items), len(s.Items)+1)
		copy(items, s.Items)
		return State{Items: append(items, a.Product)}

	case RemoveItem:
		items := make([]domain.Product, 0, len(s.Items))
		for _, p := range s.Items {
			if p.ID != a.ID {
				items = append(items, p)
			}
		}
		return State{Items: items}

	case ClearWishlist:
		return State{Items: []domain.Product{}}

	case LoadWishlist:
		items := make([]domain.Product, len(a.Items))
		copy(items, a.Items)
		return State{Items: items}
	}
	return s
}
