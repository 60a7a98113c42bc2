// Package browse holds the screen-level product loaders: an incrementally
// paged product feed and a single-product detail view.
package browse

import (
	"context"
	"errors"

	"github.com/utafrali/EcommerceGo/storefront/internal/domain"
	apperrors "github.com/utafrali/EcommerceGo/storefront/pkg/errors"
)

// DefaultPageSize is the feed page size.
const DefaultPageSize = 12

// ProductSource is the part of the catalog client the loaders need.
type ProductSource interface {
	ListProducts(ctx context.Context, limit, skip int) (*domain.ProductPage, error)
	SearchProducts(ctx context.Context, query string, limit int) (*domain.ProductPage, error)
	ListProductsByCategory(ctx context.Context, category string, limit int) (*domain.ProductPage, error)
	GetProduct(ctx context.Context, id int) (*domain.Product, error)
}

// message is the user-facing text for err.
func message(err error) string {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return err.Error()
}
