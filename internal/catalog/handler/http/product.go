package http

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/marves/pcpartstore/internal/catalog/domain"
	"github.com/marves/pcpartstore/internal/catalog/repository"
	"github.com/marves/pcpartstore/internal/catalog/service"
	"github.com/marves/pcpartstore/pkg/httputil"
	"github.com/marves/pcpartstore/pkg/pagination"
)

// ProductHandler handles HTTP requests for catalog endpoints.
type ProductHandler struct {
	service *service.Service
	logger  *slog.Logger
}

// NewProductHandler creates a new catalog HTTP handler.
func NewProductHandler(svc *service.Service, logger *slog.Logger) *ProductHandler {
	return &ProductHandler{
		service: svc,
		logger:  logger,
	}
}

// Routes mounts the catalog endpoints on the given router.
func (h *ProductHandler) Routes(r chi.Router) {
	r.Get("/products", h.ListProducts)
	r.Get("/products/featured", h.ListFeatured)
	r.Get("/products/{productID}", h.GetProduct)
	r.Get("/categories", h.ListCategories)
}

// ListProducts handles GET /api/v1/products
// @Summary List products
// @Description Returns a paginated product listing with optional filtering
// @Tags products
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page (max 100)" default(9)
// @Param category query string false "Filter by category name"
// @Param minPrice query number false "Minimum price"
// @Param maxPrice query number false "Maximum price"
// @Param inStock query bool false "Filter by stock availability"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Router /api/v1/products [get]
func (h *ProductHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	filter := repository.Filter{
		Page:     1,
		PageSize: pagination.DefaultPageSize,
	}

	if v := r.URL.Query().Get("page"); v != "" {
		page, err := strconv.Atoi(v)
		if err != nil || page < 1 {
			httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
				Error: &httputil.ErrorResponse{Code: "INVALID_PARAMETER", Message: "page must be a valid positive integer"},
			})
			return
		}
		filter.Page = page
	}
	if v := r.URL.Query().Get("limit"); v != "" {
		limit, err := strconv.Atoi(v)
		if err != nil || limit < 1 || limit > pagination.MaxPageSize {
			httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
				Error: &httputil.ErrorResponse{Code: "INVALID_PARAMETER", Message: "limit must be a valid integer between 1 and 100"},
			})
			return
		}
		filter.PageSize = limit
	}
	if v := r.URL.Query().Get("category"); v != "" {
		if !domain.IsValidCategory(v) {
			httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
				Error: &httputil.ErrorResponse{Code: "INVALID_PARAMETER", Message: "category is not a known product category"},
			})
			return
		}
		category := domain.Category(v)
		filter.Category = &category
	}
	if v := r.URL.Query().Get("minPrice"); v != "" {
		price, err := strconv.ParseFloat(v, 64)
		if err != nil || price < 0 {
			httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
				Error: &httputil.ErrorResponse{Code: "INVALID_PARAMETER", Message: "minPrice must be a valid non-negative number"},
			})
			return
		}
		filter.MinPrice = &price
	}
	if v := r.URL.Query().Get("maxPrice"); v != "" {
		price, err := strconv.ParseFloat(v, 64)
		if err != nil || price < 0 {
			httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
				Error: &httputil.ErrorResponse{Code: "INVALID_PARAMETER", Message: "maxPrice must be a valid non-negative number"},
			})
			return
		}
		filter.MaxPrice = &price
	}
	if v := r.URL.Query().Get("inStock"); v != "" {
		inStock, err := strconv.ParseBool(v)
		if err != nil {
			httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
				Error: &httputil.ErrorResponse{Code: "INVALID_PARAMETER", Message: "inStock must be true or false"},
			})
			return
		}
		filter.InStock = &inStock
	}

	result, err := h.service.ListProducts(r.Context(), filter)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, result)
}

// GetProduct handles GET /api/v1/products/{productID}
// @Summary Get a single product
// @Tags products
// @Produce json
// @Param productID path string true "Product ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /api/v1/products/{productID} [get]
func (h *ProductHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "productID")

	product, err := h.service.GetProduct(r.Context(), productID)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: product})
}

// ListFeatured handles GET /api/v1/products/featured
// @Summary List featured products
// @Tags products
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /api/v1/products/featured [get]
func (h *ProductHandler) ListFeatured(w http.ResponseWriter, r *http.Request) {
	products, err := h.service.ListFeatured(r.Context())
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: products})
}

// ListCategories handles GET /api/v1/categories
// @Summary List product categories
// @Tags products
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /api/v1/categories [get]
func (h *ProductHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.service.Categories(r.Context())
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: categories})
}
