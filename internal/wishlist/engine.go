package wishlist

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/utafrali/EcommerceGo/storefront/internal/domain"
	"github.com/utafrali/EcommerceGo/storefront/internal/state"
	"github.com/utafrali/EcommerceGo/storefront/internal/storage"
)

// Engine is the process-wide wishlist, persisted under the wishlist key.
type Engine struct {
	*state.Engine[State, Action]
}

// NewEngine creates an empty wishlist over store.
func NewEngine(store storage.Store, namespace string, logger *slog.Logger) *Engine {
	opts := state.Options[State, Action]{
		Name:    "wishlist",
		Key:     storage.Key(namespace, storage.WishlistKey),
		Initial: State{Items: []domain.Product{}},
		Reduce:  Reduce,
		Encode: func(s State) (string, error) {
			items := s.Items
			if items == nil {
				items = []domain.Product{}
			}
			b, err := json.Marshal(items)
			if err != nil {
				return "", fmt.Errorf("marshal wishlist items: %w", err)
			}
			return string(b), nil
		},
		Decode: func(raw string) (Action, error) {
			var items []domain.Product
			if err := json.Unmarshal([]byte(raw), &items); err != nil {
				return nil, fmt.Errorf("unmarshal wishlist items: %w", err)
			}
			return LoadWishlist{Items: items}, nil
		},
	}
	return &Engine{Engine: state.New(opts, store, logger)}
}

// Add saves p. Adding an id that is already saved changes nothing.
func (e *Engine) Add(p domain.Product) State {
	return e.Dispatch(AddItem{Product: p})
}

// Remove drops id.
func (e *Engine) Remove(id int) State {
	return e.Dispatch(RemoveItem{ID: id})
}

// Clear empties the wishlist.
func (e *Engine) Clear() State {
	return e.Dispatch(ClearWishlist{})
}

// Toggle removes p if saved, otherwise saves it. The membership check and
// the dispatch happen under one lock.
func (e *Engine) Toggle(p domain.Product) State {
	return e.Update(func(s State) (Action, bool) {
		if s.Contains(p.ID) {
			return RemoveItem{ID: p.ID}, true
		}
		return AddItem{Product: p}, true
	})
}

// IsInWishlist reports whether id is saved.
func (e *Engine) IsInWishlist(id int) bool { return e.State().Contains(id) }

// Get returns the saved product with id.
func (e *Engine) Get(id int) (domain.Product, bool) {
	items := e.State().Items
	if i := domain.FindProduct(items, id); i >= 0 {
		return items[i], true
	}
	return domain.Product{}, false
}

// Items returns a copy of the saved products.
func (e *Engine) Items() []domain.Product {
	items := e.State().Items
	out := make([]domain.Product, len(items))
	copy(out, items)
	return out
}

// Count returns the number of saved products.
func (e *Engine) Count() int { return e.State().Count() }
