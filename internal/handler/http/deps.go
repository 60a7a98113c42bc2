package http

import (
	"context"

	"github.com/utafrali/EcommerceGo/storefront/internal/cart"
	"github.com/utafrali/EcommerceGo/storefront/internal/domain"
	"github.com/utafrali/EcommerceGo/storefront/internal/wishlist"
)

// Catalog is the catalog client surface used by the handlers.
type Catalog interface {
	ListProducts(ctx context.Context, limit, skip int) (*domain.ProductPage, error)
	SearchProducts(ctx context.Context, query string, limit int) (*domain.ProductPage, error)
	ListProductsByCategory(ctx context.Context, category string, limit int) (*domain.ProductPage, error)
	GetProduct(ctx context.Context, id int) (*domain.Product, error)
	ListCategories(ctx context.Context) ([]domain.Category, error)
}

// CartEngine is the process cart. *cart.Engine satisfies it.
type CartEngine interface {
	State() cart.State
	Item(id int) (domain.CartItem, bool)
	AddQuantity(p domain.Product, n int) cart.State
	RemoveItem(id int) cart.State
	UpdateQuantity(id, quantity int) cart.State
	Clear() cart.State
}

// WishlistEngine is the process wishlist. *wishlist.Engine satisfies it.
type WishlistEngine interface {
	State() wishlist.State
	Get(id int) (domain.Product, bool)
	Add(p domain.Product) wishlist.State
	Remove(id int) wishlist.State
	Toggle(p domain.Product) wishlist.State
	Clear() wishlist.State
}
