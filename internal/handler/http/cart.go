package http

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/utafrali/EcommerceGo/storefront/internal/cart"
	apperrors "github.com/utafrali/EcommerceGo/storefront/pkg/errors"
	"github.com/utafrali/EcommerceGo/storefront/pkg/httputil"
	"github.com/utafrali/EcommerceGo/storefront/pkg/validator"
)

// CartHandler handles HTTP requests for cart endpoints.
type CartHandler struct {
	cart    CartEngine
	catalog Catalog
	logger  *slog.Logger
}

// NewCartHandler creates a new cart HTTP handler.
func NewCartHandler(cart CartEngine, catalog Catalog, logger *slog.Logger) *CartHandler {
	return &CartHandler{cart: cart, catalog: catalog, logger: logger}
}

// --- Request DTOs ---

// AddItemRequest is the JSON request body for adding a product. An omitted
// quantity adds one unit.
type AddItemRequest struct {
	ProductID int `json:"product_id" validate:"required,gt=0"`
	Quantity  int `json:"quantity,omitempty" validate:"omitempty,gt=0,lte=1000"`
}

// --- Response DTOs ---

// CartResponse is the cart state plus its checkout breakdown.
type CartResponse struct {
	cart.State
	Summary cart.OrderSummary `json:"summary"`
}

func newCartResponse(s cart.State) CartResponse {
	return CartResponse{State: s, Summary: cart.Summary(s)}
}

// UpdateQuantityRequest is the JSON request body for setting a quantity.
// Zero or a negative value removes the line.
type UpdateQuantityRequest struct {
	Quantity *int `json:"quantity" validate:"required"`
}

// --- Handlers ---

// GetCart handles GET /api/v1/cart
func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	httputil.WriteData(w, http.StatusOK, newCartResponse(h.cart.State()))
}

// ClearCart handles DELETE /api/v1/cart
func (h *CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	httputil.WriteData(w, http.StatusOK, h.cart.Clear())
}

// AddItem handles POST /api/v1/cart/items. The product is fetched from the
// catalog so the line carries the current price.
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req AddItemRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	p, err := h.catalog.GetProduct(r.Context(), req.ProductID)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	state := h.cart.AddQuantity(*p, req.Quantity)
	h.logger.InfoContext(r.Context(), "item added to cart",
		slog.Int("product_id", p.ID),
		slog.Int("total_items", state.TotalItems),
	)
	httputil.WriteData(w, http.StatusOK, state)
}

// GetItem handles GET /api/v1/cart/items/{id}
func (h *CartHandler) GetItem(w http.ResponseWriter, r *http.Request) {
	id, ok := httputil.ParseID(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}

	item, found := h.cart.Item(id)
	if !found {
		httputil.WriteError(w, r, apperrors.NotFound("cart item", strconv.Itoa(id)), h.logger)
		return
	}
	httputil.WriteData(w, http.StatusOK, item)
}

// UpdateItemQuantity handles PUT /api/v1/cart/items/{id}
func (h *CartHandler) UpdateItemQuantity(w http.ResponseWriter, r *http.Request) {
	id, ok := httputil.ParseID(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}

	var req UpdateQuantityRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	if _, found := h.cart.Item(id); !found {
		httputil.WriteError(w, r, apperrors.NotFound("cart item", strconv.Itoa(id)), h.logger)
		return
	}

	httputil.WriteData(w, http.StatusOK, h.cart.UpdateQuantity(id, *req.Quantity))
}

// RemoveItem handles DELETE /api/v1/cart/items/{id}. Removing an absent
// line succeeds.
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	id, ok := httputil.ParseID(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}
	httputil.WriteData(w, http.StatusOK, h.cart.RemoveItem(id))
}
