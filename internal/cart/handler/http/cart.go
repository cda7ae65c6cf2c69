// Package http exposes the cart over HTTP.
package http

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	cartdomain "github.com/marves/pcpartstore/internal/cart/domain"
	"github.com/marves/pcpartstore/internal/cart/store"
	catalog "github.com/marves/pcpartstore/internal/catalog/domain"
	"github.com/marves/pcpartstore/pkg/httputil"
	"github.com/marves/pcpartstore/pkg/validator"
)

// ProductResolver looks up the product snapshot stored in cart lines. The
// catalog service satisfies it.
type ProductResolver interface {
	GetProduct(ctx context.Context, id string) (*catalog.Product, error)
}

// CartHandler handles HTTP requests for cart endpoints. Carts are keyed by
// the X-Session-ID header.
type CartHandler struct {
	carts    *store.Manager
	products ProductResolver
	logger   *slog.Logger
}

// NewCartHandler creates a new cart HTTP handler.
func NewCartHandler(carts *store.Manager, products ProductResolver, logger *slog.Logger) *CartHandler {
	return &CartHandler{
		carts:    carts,
		products: products,
		logger:   logger,
	}
}

// Routes mounts the cart endpoints on a router.
func (h *CartHandler) Routes(r chi.Router) {
	r.Use(SessionIDFromHeader)
	r.Get("/", h.GetCart)
	r.Delete("/", h.ClearCart)
	r.Post("/items", h.AddItem)
	r.Put("/items/{productID}", h.UpdateItemQuantity)
	r.Delete("/items/{productID}", h.RemoveItem)
}

// --- Request/response DTOs ---

// AddItemRequest is the JSON body for adding an item to the cart. Quantity
// defaults to 1 when omitted.
type AddItemRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Quantity  int    `json:"quantity" validate:"gte=0,lte=1000"`
}

// UpdateQuantityRequest is the JSON body for setting an item's quantity.
// Zero removes the item.
type UpdateQuantityRequest struct {
	Quantity int `json:"quantity" validate:"gte=0,lte=1000"`
}

// CartResponse is the cart snapshot returned by every cart endpoint.
type CartResponse struct {
	SessionID string                `json:"session_id"`
	Items     []cartdomain.CartItem `json:"items"`
	ItemCount int                   `json:"item_count"`
	Total     float64               `json:"total"`
}

func cartResponse(c cartdomain.Cart) CartResponse {
	return CartResponse{
		SessionID: c.SessionID,
		Items:     c.Items,
		ItemCount: c.ItemCount(),
		Total:     c.TotalAmount(),
	}
}

// --- Handlers ---

// GetCart handles GET /api/v1/cart.
func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	s, ok := h.sessionStore(w, r)
	if !ok {
		return
	}
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: cartResponse(s.Snapshot())})
}

// AddItem handles POST /api/v1/cart/items.
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	s, ok := h.sessionStore(w, r)
	if !ok {
		return
	}

	var req AddItemRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}

	product, err := h.products.GetProduct(r.Context(), req.ProductID)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	if err := s.AddItemWithQuantity(r.Context(), *product, req.Quantity); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: cartResponse(s.Snapshot())})
}

// UpdateItemQuantity handles PUT /api/v1/cart/items/{productID}.
func (h *CartHandler) UpdateItemQuantity(w http.ResponseWriter, r *http.Request) {
	s, ok := h.sessionStore(w, r)
	if !ok {
		return
	}

	productID := chi.URLParam(r, "productID")

	var req UpdateQuantityRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	if err := s.UpdateQuantity(r.Context(), productID, req.Quantity); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: cartResponse(s.Snapshot())})
}

// RemoveItem handles DELETE /api/v1/cart/items/{productID}.
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	s, ok := h.sessionStore(w, r)
	if !ok {
		return
	}

	if err := s.RemoveItem(r.Context(), chi.URLParam(r, "productID")); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: cartResponse(s.Snapshot())})
}

// ClearCart handles DELETE /api/v1/cart.
func (h *CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	s, ok := h.sessionStore(w, r)
	if !ok {
		return
	}

	if err := s.Clear(r.Context()); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: cartResponse(s.Snapshot())})
}

// sessionStore resolves the hydrated cart store for the request's session.
func (h *CartHandler) sessionStore(w http.ResponseWriter, r *http.Request) (*store.Store, bool) {
	sessionID, ok := sessionIDFromContext(r.Context())
	if !ok {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
			Error: &httputil.ErrorResponse{Code: "INVALID_INPUT", Message: "X-Session-ID header is required"},
		})
		return nil, false
	}

	s, err := h.carts.ForSession(r.Context(), sessionID)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return nil, false
	}
	return s, true
}
