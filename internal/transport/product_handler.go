package transport

import (
	"errors"
	"net/http"

	"product-catalog/internal/domain"
	"product-catalog/internal/middleware"
	"product-catalog/internal/query"
	"product-catalog/internal/repository"
	"product-catalog/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// ArticleRequest represents a product as submitted by clients
type ArticleRequest struct {
	Name         string          `json:"name" validate:"required"`
	Category     string          `json:"category"`
	Brand        string          `json:"brand"`
	Price        decimal.Decimal `json:"price" validate:"gte=0"`
	Quantity     int             `json:"quantity" validate:"gte=0"`
	FreeShipping bool            `json:"freeShipping"`
	Prestige     string          `json:"prestige"`
}

// CreateArticlesRequest represents the batch create payload
type CreateArticlesRequest struct {
	Articles []ArticleRequest `json:"articles" validate:"required,min=1,dive"`
}

// ArticlesResponse wraps the created products
type ArticlesResponse struct {
	Articles []domain.Product `json:"articles"`
}

// PurchaseItemRequest identifies one product to buy
type PurchaseItemRequest struct {
	ProductID int    `json:"productId" validate:"gt=0"`
	Name      string `json:"name" validate:"required"`
	Brand     string `json:"brand"`
	Quantity  int    `json:"quantity" validate:"gt=0"`
}

// PurchaseRequest represents the purchase request payload
type PurchaseRequest struct {
	Articles []PurchaseItemRequest `json:"articlesPurchaseRequest" validate:"required,min=1,dive"`
}

// TicketResponse wraps a purchase ticket
type TicketResponse struct {
	Ticket *domain.Ticket `json:"ticket"`
}

// ProductHandler handles HTTP requests for catalog operations
type ProductHandler struct {
	productService service.ProductService
	logger         *zap.Logger
}

// NewProductHandler creates a new ProductHandler
func NewProductHandler(productService service.ProductService, logger *zap.Logger) *ProductHandler {
	return &ProductHandler{
		productService: productService,
		logger:         logger,
	}
}

// RegisterRoutes registers all catalog routes
func (h *ProductHandler) RegisterRoutes(r chi.Router) {
	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/insert-articles-request", h.CreateArticles)
		r.Get("/articles", h.ListArticles)
		r.Post("/purchase-request", h.PurchaseRequest)
	})
}

// CreateArticles handles batch product creation
func (h *ProductHandler) CreateArticles(w http.ResponseWriter, r *http.Request) {
	var req CreateArticlesRequest

	if !h.decode(w, r, &req) {
		return
	}

	products := make([]domain.Product, len(req.Articles))
	for i, a := range req.Articles {
		products[i] = a.toProduct()
	}

	created, err := h.productService.CreateProducts(r.Context(), products)
	if err != nil {
		h.respondWithServiceError(w, err)
		return
	}

	middleware.RespondWithJSON(w, http.StatusCreated, ArticlesResponse{Articles: created})
}

// ListArticles handles filtered listing. Query parameters are applied in the
// order they appear in the URL.
func (h *ProductHandler) ListArticles(w http.ResponseWriter, r *http.Request) {
	params, err := query.ParseRawQuery(r.URL.RawQuery)
	if err != nil {
		h.logger.Debug("Malformed query string", zap.Error(err))
		middleware.RespondWithError(w, http.StatusBadRequest, "malformed query string")
		return
	}

	products, err := h.productService.ListFiltered(r.Context(), params)
	if err != nil {
		h.respondWithServiceError(w, err)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, products)
}

// PurchaseRequest handles purchase ticket computation
func (h *ProductHandler) PurchaseRequest(w http.ResponseWriter, r *http.Request) {
	var req PurchaseRequest

	if !h.decode(w, r, &req) {
		return
	}

	items := make([]domain.PurchaseItem, len(req.Articles))
	for i, a := range req.Articles {
		items[i] = domain.PurchaseItem{
			ProductID: a.ProductID,
			Name:      a.Name,
			Brand:     a.Brand,
			Quantity:  a.Quantity,
		}
	}

	ticket, err := h.productService.PurchaseRequest(r.Context(), items)
	if err != nil {
		h.respondWithServiceError(w, err)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, TicketResponse{Ticket: ticket})
}

// decode reads and validates the body, writing the error response on failure
func (h *ProductHandler) decode(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if err := middleware.DecodeAndValidate(r, v); err != nil {
		h.logger.Debug("Request validation failed", zap.Error(err))

		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return false
		}

		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}

func (h *ProductHandler) respondWithServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, query.ErrInvalidArgument):
		h.logger.Debug("Invalid argument", zap.Error(err))
		middleware.RespondWithError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrProductNotFound):
		h.logger.Info("Product not found", zap.Error(err))
		middleware.RespondWithError(w, http.StatusNotFound, "product not found")
	case errors.Is(err, service.ErrCreation):
		h.logger.Error("Product creation failed", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, err.Error())
	case errors.Is(err, repository.ErrPersistence):
		h.logger.Error("Product store unavailable", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "product store unavailable")
	default:
		h.logger.Error("Unexpected error", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "internal server error")
	}
}

func (a ArticleRequest) toProduct() domain.Product {
	return domain.Product{
		Name:         a.Name,
		Category:     a.Category,
		Brand:        a.Brand,
		Price:        a.Price,
		Quantity:     a.Quantity,
		FreeShipping: a.FreeShipping,
		Prestige:     a.Prestige,
	}
}
