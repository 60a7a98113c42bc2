package http

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/utafrali/EcommerceGo/storefront/internal/domain"
	"github.com/utafrali/EcommerceGo/storefront/internal/wishlist"
	apperrors "github.com/utafrali/EcommerceGo/storefront/pkg/errors"
	"github.com/utafrali/EcommerceGo/storefront/pkg/httputil"
	"github.com/utafrali/EcommerceGo/storefront/pkg/validator"
)

// WishlistHandler handles HTTP requests for wishlist endpoints.
type WishlistHandler struct {
	wishlist WishlistEngine
	catalog  Catalog
	logger   *slog.Logger
}

// NewWishlistHandler creates a new wishlist HTTP handler.
func NewWishlistHandler(wl WishlistEngine, catalog Catalog, logger *slog.Logger) *WishlistHandler {
	return &WishlistHandler{wishlist: wl, catalog: catalog, logger: logger}
}

// WishlistResponse is the wishlist body.
type WishlistResponse struct {
	Items []domain.Product `json:"items"`
	Count int              `json:"count"`
}

// ToggleResponse reports membership after a toggle.
type ToggleResponse struct {
	ProductID  int              `json:"product_id"`
	InWishlist bool             `json:"in_wishlist"`
	Wishlist   WishlistResponse `json:"wishlist"`
}

func toResponse(s wishlist.State) WishlistResponse {
	items := s.Items
	if items == nil {
		items = []domain.Product{}
	}
	return WishlistResponse{Items: items, Count: len(items)}
}

// GetWishlist handles GET /api/v1/wishlist
func (h *WishlistHandler) GetWishlist(w http.ResponseWriter, r *http.Request) {
	httputil.WriteData(w, http.StatusOK, toResponse(h.wishlist.State()))
}

// ClearWishlist handles DELETE /api/v1/wishlist
func (h *WishlistHandler) ClearWishlist(w http.ResponseWriter, r *http.Request) {
	httputil.WriteData(w, http.StatusOK, toResponse(h.wishlist.Clear()))
}

// AddItem handles POST /api/v1/wishlist/items. Adding a saved product
// changes nothing.
func (h *WishlistHandler) AddItem(w http.ResponseWriter, r *http.Request) {
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
	httputil.WriteData(w, http.StatusOK, toResponse(h.wishlist.Add(*p)))
}

// GetItem handles GET /api/v1/wishlist/items/{id}
func (h *WishlistHandler) GetItem(w http.ResponseWriter, r *http.Request) {
	id, ok := httputil.ParseID(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}

	p, found := h.wishlist.Get(id)
	if !found {
		httputil.WriteError(w, r, apperrors.NotFound("wishlist item", strconv.Itoa(id)), h.logger)
		return
	}
	httputil.WriteData(w, http.StatusOK, p)
}

// RemoveItem handles DELETE /api/v1/wishlist/items/{id}
func (h *WishlistHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	id, ok := httputil.ParseID(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}
	httputil.WriteData(w, http.StatusOK, toResponse(h.wishlist.Remove(id)))
}

// ToggleItem handles POST /api/v1/wishlist/items/{id}/toggle. A saved
// product is toggled with its stored copy; otherwise it is fetched first.
func (h *WishlistHandler) ToggleItem(w http.ResponseWriter, r *http.Request) {
	id, ok := httputil.ParseID(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}

	p, found := h.wishlist.Get(id)
	if !found {
		fetched, err := h.catalog.GetProduct(r.Context(), id)
		if err != nil {
			httputil.WriteError(w, r, err, h.logger)
			return
		}
		p = *fetched
	}

	state := h.wishlist.Toggle(p)
	httputil.WriteData(w, http.StatusOK, ToggleResponse{
		ProductID:  id,
		InWishlist: state.Contains(id),
		Wishlist:   toResponse(state),
	})
}
