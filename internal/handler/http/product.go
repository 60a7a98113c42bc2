package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/utafrali/EcommerceGo/storefront/internal/domain"
	"github.com/utafrali/EcommerceGo/storefront/pkg/httputil"
	"github.com/utafrali/EcommerceGo/storefront/pkg/pagination"
)

// ProductHandler handles HTTP requests for catalog endpoints.
type ProductHandler struct {
	catalog  Catalog
	logger   *slog.Logger
	pageSize int
}

// NewProductHandler creates a new product HTTP handler.
func NewProductHandler(catalog Catalog, logger *slog.Logger, pageSize int) *ProductHandler {
	return &ProductHandler{catalog: catalog, logger: logger, pageSize: pageSize}
}

// ProductListResponse is one page of products plus the paging hint.
type ProductListResponse struct {
	Products []domain.Product `json:"products"`
	Total    int              `json:"total"`
	Skip     int              `json:"skip"`
	Limit    int              `json:"limit"`
	HasMore  bool             `json:"has_more"`
}

// ListProducts handles GET /api/v1/products?limit=&skip=&q=&category=
// A search query wins over a category; search and category results are
// first pages only.
func (h *ProductHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	params := pagination.FromRequest(r, h.pageSize)
	query := r.URL.Query().Get("q")
	category := r.URL.Query().Get("category")

	var (
		page *domain.ProductPage
		err  error
	)
	switch {
	case query != "":
		params.Skip = 0
		page, err = h.catalog.SearchProducts(r.Context(), query, params.Limit)
	case category != "":
		params.Skip = 0
		page, err = h.catalog.ListProductsByCategory(r.Context(), category, params.Limit)
	default:
		page, err = h.catalog.ListProducts(r.Context(), params.Limit, params.Skip)
	}
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	products := page.Products
	if products == nil {
		products = []domain.Product{}
	}
	httputil.WriteData(w, http.StatusOK, ProductListResponse{
		Products: products,
		Total:    page.Total,
		Skip:     page.Skip,
		Limit:    page.Limit,
		HasMore:  params.HasMore(len(products), page.Total),
	})
}

// ListCategories handles GET /api/v1/products/categories
func (h *ProductHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	cats, err := h.catalog.ListCategories(r.Context())
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteData(w, http.StatusOK, cats)
}

// GetProduct handles GET /api/v1/products/{id}
func (h *ProductHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := httputil.ParseID(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}

	p, err := h.catalog.GetProduct(r.Context(), id)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteData(w, http.StatusOK, p)
}
