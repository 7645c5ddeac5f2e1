package service

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"

	"product-catalog/internal/domain"
	"product-catalog/internal/query"
	"product-catalog/internal/repository"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

var (
	ErrCreation = errors.New("failed to create product")
	// ErrProductNotFound is also returned when the store cannot be read
	// during a purchase request; the underlying cause stays wrapped.
	ErrProductNotFound = repository.ErrProductNotFound
)

// ProductService defines the interface for catalog business logic
type ProductService interface {
	CreateProducts(ctx context.Context, products []domain.Product) ([]domain.Product, error)
	ListFiltered(ctx context.Context, params []query.Param) ([]domain.Product, error)
	PurchaseRequest(ctx context.Context, items []domain.PurchaseItem) (*domain.Ticket, error)
}

type productService struct {
	productRepo repository.ProductRepository
	engine      *query.Engine
	logger      *zap.Logger

	lastTicketID atomic.Int64
}

// NewProductService creates a new instance of ProductService
func NewProductService(productRepo repository.ProductRepository, engine *query.Engine, logger *zap.Logger) ProductService {
	return &productService{
		productRepo: productRepo,
		engine:      engine,
		logger:      logger,
	}
}

// CreateProducts saves each product in list order. The batch is not atomic:
// products saved before a failure stay persisted.
func (s *productService) CreateProducts(ctx context.Context, products []domain.Product) ([]domain.Product, error) {
	created := make([]domain.Product, 0, len(products))
	for _, product := range products {
		if err := s.productRepo.Save(ctx, &product); err != nil {
			s.logger.Error("Failed to save product",
				zap.String("name", product.Name),
				zap.Int("saved_before_failure", len(created)),
				zap.Error(err),
			)
			return nil, fmt.Errorf("%w %q: %w", ErrCreation, product.Name, err)
		}
		created = append(created, product)
	}

	s.logger.Info("Products created", zap.Int("count", len(created)))
	return created, nil
}

// ListFiltered loads the whole catalog and applies params in the given order
func (s *productService) ListFiltered(ctx context.Context, params []query.Param) ([]domain.Product, error) {
	products, err := s.productRepo.LoadAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load products: %w", err)
	}

	return s.engine.Apply(products, params)
}

// PurchaseRequest resolves every requested item against the store and totals
// price times the requested quantity.
func (s *productService) PurchaseRequest(ctx context.Context, items []domain.PurchaseItem) (*domain.Ticket, error) {
	if len(items) == 0 {
		return nil, fmt.Errorf("%w: purchase request has no items", query.ErrInvalidArgument)
	}

	products, err := s.productRepo.LoadAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrProductNotFound, err)
	}

	resolved := make([]domain.Product, 0, len(items))
	total := decimal.Zero
	for _, item := range items {
		product, err := repository.CheckProductExists(item.ProductID, item.Name, item.Brand, products)
		if err != nil {
			return nil, fmt.Errorf("product %d %q (%s): %w", item.ProductID, item.Name, item.Brand, err)
		}

		product.Quantity = item.Quantity
		total = total.Add(product.Subtotal())
		resolved = append(resolved, *product)
	}

	ticket := &domain.Ticket{
		ID:         s.lastTicketID.Add(1),
		Items:      resolved,
		TotalValue: total,
	}

	s.logger.Info("Purchase ticket issued",
		zap.Int64("ticket_id", ticket.ID),
		zap.Int("items", len(resolved)),
		zap.String("total", total.StringFixed(2)),
	)
	return ticket, nil
}
