package browse

import (
	"context"
	"log/slog"
	"sync"

	"github.com/utafrali/EcommerceGo/storefront/internal/domain"
)

// DetailState is a snapshot of a Detail.
type DetailState struct {
	Product *domain.Product `json:"product"`
	Loading bool            `json:"loading"`
	Error   string          `json:"error,omitempty"`
}

// Detail loads one product by id.
type Detail struct {
	src    ProductSource
	id     int
	logger *slog.Logger

	mu      sync.Mutex
	product *domain.Product
	loading bool
	err     string
}

// NewDetail creates a loader for product id. Nothing is fetched until
// Fetch is called.
func NewDetail(src ProductSource, id int, logger *slog.Logger) *Detail {
	return &Detail{src: src, id: id, logger: logger}
}

// State returns a snapshot of the loader.
func (d *Detail) State() DetailState {
	d.mu.Lock()
	defer d.mu.Unlock()
	return DetailState{Product: d.product, Loading: d.loading, Error: d.err}
}

// Fetch loads the product. An id of 0 does nothing. On failure the
// previously loaded product, if any, is kept.
func (d *Detail) Fetch(ctx context.Context) error {
	if d.id == 0 {
		return nil
	}

	d.mu.Lock()
	d.loading = true
	d.err = ""
	d.mu.Unlock()

	p, err := d.src.GetProduct(ctx, d.id)

	d.mu.Lock()
	defer d.mu.Unlock()
	d.loading = false
	if err != nil {
		d.err = message(err)
		d.logger.WarnContext(ctx, "failed to load product",
			slog.Int("product_id", d.id),
			slog.String("error", err.Error()),
		)
		return err
	}
	d.product = p
	return nil
}

// Refetch loads the product again.
func (d *Detail) Refetch(ctx context.Context) error {
	return d.Fetch(ctx)
}
