package cart

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/utafrali/EcommerceGo/storefront/internal/domain"
	"github.com/utafrali/EcommerceGo/storefront/internal/state"
	"github.com/utafrali/EcommerceGo/storefront/internal/storage"
)

// Engine is the process-wide cart. It persists Items under the cart key
// after every transition.
type Engine struct {
	*state.Engine[State, Action]
}

// NewEngine creates an empty cart over store. Call Hydrate to load the
// persisted cart.
func NewEngine(store storage.Store, namespace string, logger *slog.Logger) *Engine {
	opts := state.Options[State, Action]{
		Name:    "cart",
		Key:     storage.Key(namespace, storage.CartKey),
		Initial: State{Items: []domain.CartItem{}},
		Reduce:  Reduce,
		Encode:  encode,
		Decode:  decode,
	}
	return &Engine{Engine: state.New(opts, store, logger)}
}

func encode(s State) (string, error) {
	items := s.Items
	if items == nil {
		items = []domain.CartItem{}
	}
	b, err := json.Marshal(items)
	if err != nil {
		return "", fmt.Errorf("marshal cart items: %w", err)
	}
	return string(b), nil
}

func decode(raw string) (Action, error) {
	var items []domain.CartItem
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return nil, fmt.Errorf("unmarshal cart items: %w", err)
	}
	return LoadCart{Items: items}, nil
}

// AddItem adds one unit of p.
func (e *Engine) AddItem(p domain.Product) State {
	return e.Dispatch(AddItem{Product: p})
}

// AddQuantity adds n units of p in a single transition.
func (e *Engine) AddQuantity(p domain.Product, n int) State {
	return e.Dispatch(AddItem{Product: p, Quantity: n})
}

// RemoveItem removes the line for id.
func (e *Engine) RemoveItem(id int) State {
	return e.Dispatch(RemoveItem{ID: id})
}

// UpdateQuantity sets the quantity for id; zero or less removes it.
func (e *Engine) UpdateQuantity(id, quantity int) State {
	return e.Dispatch(UpdateQuantity{ID: id, Quantity: quantity})
}

// Clear empties the cart.
func (e *Engine) Clear() State {
	return e.Dispatch(ClearCart{})
}

// IsInCart reports whether id has a line.
func (e *Engine) IsInCart(id int) bool {
	return domain.FindCartItem(e.State().Items, id) >= 0
}

// GetItemQuantity returns the quantity for id, or 0.
func (e *Engine) GetItemQuantity(id int) int {
	items := e.State().Items
	if i := domain.FindCartItem(items, id); i >= 0 {
		return items[i].Quantity
	}
	return 0
}

// Item returns the line for id.
func (e *Engine) Item(id int) (domain.CartItem, bool) {
	items := e.State().Items
	if i := domain.FindCartItem(items, id); i >= 0 {
		return items[i], true
	}
	return domain.CartItem{}, false
}

// Items returns a copy of the lines in insertion order.
func (e *Engine) Items() []domain.CartItem {
	return clone(e.State().Items)
}

// TotalItems is the sum of quantities.
func (e *Engine) TotalItems() int { return e.State().TotalItems }

// TotalPrice is the rounded price sum.
func (e *Engine) TotalPrice() float64 { return e.State().TotalPrice }

// Count is the number of distinct lines.
func (e *Engine) Count() int { return len(e.State().Items) }
