// Package catalog is a client for the dummyjson product REST API.
package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/utafrali/EcommerceGo/storefront/internal/domain"
	apperrors "github.com/utafrali/EcommerceGo/storefront/pkg/errors"
	"github.com/utafrali/EcommerceGo/storefront/pkg/httpclient"
	"github.com/utafrali/EcommerceGo/storefront/pkg/tracing"
)

// DefaultBaseURL is the public catalog API.
const DefaultBaseURL = "https://dummyjson.com"

const serviceName = "catalog"

// HTTPDoer is the interface for executing HTTP requests.
// *httpclient.CircuitBreakerClient satisfies it.
type HTTPDoer interface {
	Do(ctx context.Context, req *http.Request) (*http.Response, error)
}

// Client reads products and categories from the catalog API.
type Client struct {
	baseURL string
	http    HTTPDoer
	logger  *slog.Logger
}

// NewClient creates a catalog client rooted at baseURL.
func NewClient(baseURL string, doer HTTPDoer, logger *slog.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    doer,
		logger:  logger,
	}
}

// ListProducts returns one offset page of the full catalog.
func (c *Client) ListProducts(ctx context.Context, limit, skip int) (*domain.ProductPage, error) {
	q := url.Values{}
	q.Set("limit", strconv.Itoa(limit))
	q.Set("skip", strconv.Itoa(skip))

	var page domain.ProductPage
	if err := c.get(ctx, "ListProducts", "/products", q, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// GetProduct returns a single product. A missing product yields an error
// matching apperrors.ErrNotFound.
func (c *Client) GetProduct(ctx context.Context, id int) (*domain.Product, error) {
	if id <= 0 {
		return nil, apperrors.InvalidInput("product id must be positive")
	}

	var p domain.Product
	if err := c.get(ctx, "GetProduct", "/products/"+strconv.Itoa(id), nil, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// SearchProducts returns the first page of products matching query.
func (c *Client) SearchProducts(ctx context.Context, query string, limit int) (*domain.ProductPage, error) {
	q := url.Values{}
	q.Set("q", query)
	q.Set("limit", strconv.Itoa(limit))

	var page domain.ProductPage
	if err := c.get(ctx, "SearchProducts", "/products/search", q, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// ListProductsByCategory returns the first page of products in category.
func (c *Client) ListProductsByCategory(ctx context.Context, category string, limit int) (*domain.ProductPage, error) {
	if category == "" {
		return nil, apperrors.InvalidInput("category is required")
	}
	q := url.Values{}
	q.Set("limit", strconv.Itoa(limit))

	var page domain.ProductPage
	path := "/products/category/" + url.PathEscape(category)
	if err := c.get(ctx, "ListProductsByCategory", path, q, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// ListCategories returns all categories.
func (c *Client) ListCategories(ctx context.Context) ([]domain.Category, error) {
	var cats []domain.Category
	if err := c.get(ctx, "ListCategories", "/products/categories", nil, &cats); err != nil {
		return nil, err
	}
	return cats, nil
}

// Ping checks that the catalog answers. Used by the readiness probe.
func (c *Client) Ping(ctx context.Context) error {
	_, err := c.ListProducts(ctx, 1, 0)
	return err
}

func (c *Client) get(ctx context.Context, op, path string, query url.Values, dst any) (err error) {
	ctx, span := tracing.Tracer(serviceName).Start(ctx, "catalog."+op,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(attribute.String("http.route", path)),
	)
	defer func() { tracing.End(span, err) }()

	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, http.NoBody)
	if err != nil {
		return fmt.Errorf("create catalog request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(ctx, req)
	if err != nil {
		return c.transportError(ctx, op, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return httpclient.ParseResponseError(resp, serviceName)
	}
	defer func() { _ = resp.Body.Close() }()

	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		return fmt.Errorf("decode catalog %s response: %w", op, err)
	}
	return nil
}

// transportError maps breaker rejections and captured 5xx responses to
// SERVICE_UNAVAILABLE. Other errors (network, context) are wrapped.
func (c *Client) transportError(ctx context.Context, op string, err error) error {
	var serverErr *httpclient.ServerError
	switch {
	case httpclient.IsBreakerRejection(err):
		c.logger.WarnContext(ctx, "catalog circuit open", slog.String("operation", op))
		return apperrors.Unavailable("catalog: temporarily unavailable", err)
	case errors.As(err, &serverErr):
		c.logger.ErrorContext(ctx, "catalog server error",
			slog.String("operation", op),
			slog.Int("status", serverErr.Status),
		)
		return apperrors.Unavailable(fmt.Sprintf("catalog: upstream returned %d", serverErr.Status), err)
	default:
		return fmt.Errorf("catalog %s: %w", op, err)
	}
}
