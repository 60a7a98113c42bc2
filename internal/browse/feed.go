package browse

import (
	"context"
	"log/slog"
	"sync"

	"github.com/utafrali/EcommerceGo/storefront/internal/domain"
	"github.com/utafrali/EcommerceGo/storefront/pkg/pagination"
)

// FeedState is a snapshot of a Feed.
type FeedState struct {
	Products []domain.Product `json:"products"`
	Loading  bool             `json:"loading"`
	Error    string           `json:"error,omitempty"`
	HasMore  bool             `json:"has_more"`
	Query    string           `json:"query,omitempty"`
	Category string           `json:"category,omitempty"`
}

// Feed is a paged product list with optional search or category filter.
// A search query takes precedence over a category; with neither, the feed
// pages through the whole catalog by offset.
type Feed struct {
	src    ProductSource
	limit  int
	logger *slog.Logger

	mu       sync.Mutex
	products []domain.Product
	loading  bool
	err      string
	hasMore  bool
	skip     int
	query    string
	category string
}

// NewFeed creates an empty feed. A non-positive limit uses DefaultPageSize.
func NewFeed(src ProductSource, limit int, logger *slog.Logger) *Feed {
	if limit <= 0 {
		limit = DefaultPageSize
	}
	return &Feed{
		src:      src,
		limit:    limit,
		logger:   logger,
		products: []domain.Product{},
		hasMore:  true,
	}
}

// State returns a snapshot of the feed.
func (f *Feed) State() FeedState {
	f.mu.Lock()
	defer f.mu.Unlock()

	products := make([]domain.Product, len(f.products))
	copy(products, f.products)
	return FeedState{
		Products: products,
		Loading:  f.loading,
		Error:    f.err,
		HasMore:  f.hasMore,
		Query:    f.query,
		Category: f.category,
	}
}

// Load fetches the first page with the current filters, replacing the list.
func (f *Feed) Load(ctx context.Context) error {
	f.mu.Lock()
	query, category := f.query, f.category
	f.mu.Unlock()
	return f.load(ctx, 0, true, query, category)
}

// LoadMore appends the next page. It does nothing when there is no more
// data or a load is already running.
func (f *Feed) LoadMore(ctx context.Context) error {
	f.mu.Lock()
	if !f.hasMore || f.loading {
		f.mu.Unlock()
		return nil
	}
	skip, query, category := f.skip, f.query, f.category
	f.mu.Unlock()
	return f.load(ctx, skip, false, query, category)
}

// Refresh reloads the first page with the current filters.
func (f *Feed) Refresh(ctx context.Context) error {
	return f.reset(ctx, func() {})
}

// Search switches the feed to query results.
func (f *Feed) Search(ctx context.Context, query string) error {
	return f.reset(ctx, func() {
		f.query = query
		f.category = ""
	})
}

// FilterByCategory switches the feed to one category.
func (f *Feed) FilterByCategory(ctx context.Context, category string) error {
	return f.reset(ctx, func() {
		f.query = ""
		f.category = category
	})
}

// ClearFilters switches the feed back to the full catalog.
func (f *Feed) ClearFilters(ctx context.Context) error {
	return f.reset(ctx, func() {
		f.query = ""
		f.category = ""
	})
}

func (f *Feed) reset(ctx context.Context, setFilters func()) error {
	f.mu.Lock()
	setFilters()
	f.skip = 0
	f.hasMore = true
	query, category := f.query, f.category
	f.mu.Unlock()
	return f.load(ctx, 0, true, query, category)
}

// load fetches one page at skip. A call made while another load is running
// is dropped. Errors are kept as the feed's message and also returned.
func (f *Feed) load(ctx context.Context, skip int, replace bool, query, category string) error {
	f.mu.Lock()
	if f.loading {
		f.mu.Unlock()
		return nil
	}
	f.loading = true
	f.err = ""
	f.mu.Unlock()

	params := pagination.Params{Limit: f.limit, Skip: skip}
	page, err := f.fetch(ctx, params, query, category)

	f.mu.Lock()
	defer f.mu.Unlock()
	f.loading = false

	if err != nil {
		f.err = message(err)
		f.logger.WarnContext(ctx, "failed to load products",
			slog.String("query", query),
			slog.String("category", category),
			slog.Int("skip", skip),
			slog.String("error", err.Error()),
		)
		return err
	}

	if replace {
		f.products = append([]domain.Product{}, page.Products...)
		f.skip = len(page.Products)
	} else {
		next := make([]domain.Product, 0, len(f.products)+len(page.Products))
		next = append(next, f.products...)
		f.products = append(next, page.Products...)
		f.skip = params.Next(len(page.Products)).Skip
	}
	f.hasMore = params.HasMore(len(page.Products), page.Total)
	return nil
}

func (f *Feed) fetch(ctx context.Context, p pagination.Params, query, category string) (*domain.ProductPage, error) {
	switch {
	case query != "":
		return f.src.SearchProducts(ctx, query, p.Limit)
	case category != "":
		return f.src.ListProductsByCategory(ctx, category, p.Limit)
	default:
		return f.src.ListProducts(ctx, p.Limit, p.Skip)
	}
}
