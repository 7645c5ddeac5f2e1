package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sync"

	"product-catalog/internal/domain"
)

var (
	ErrProductNotFound = errors.New("product not found")
	ErrPersistence     = errors.New("product store unavailable")
)

// ProductRepository defines the interface for product persistence
type ProductRepository interface {
	Save(ctx context.Context, product *domain.Product) error
	LoadAll(ctx context.Context) ([]domain.Product, error)
}

// fileProductRepository keeps the whole collection in a single JSON file.
// Nothing is cached between calls: every Save and LoadAll goes to disk.
type fileProductRepository struct {
	path string

	// mu serializes access within one process only. Two processes sharing
	// the file can still lose updates.
	mu sync.Mutex
}

// NewProductRepository creates a new file backed ProductRepository
func NewProductRepository(path string) ProductRepository {
	return &fileProductRepository{path: path}
}

// Save assigns the next id (current size + 1) and rewrites the whole file.
// The rewrite is not atomic: a failed write can leave a truncated file behind.
func (r *fileProductRepository) Save(ctx context.Context, product *domain.Product) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	products, err := r.read()
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: failed to read %s: %w", ErrPersistence, r.path, err)
	}

	stored := *product
	stored.ID = len(products) + 1
	products = append(products, stored)

	data, err := json.MarshalIndent(products, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: failed to encode products: %w", ErrPersistence, err)
	}

	if err := os.WriteFile(r.path, data, 0o644); err != nil {
		return fmt.Errorf("%w: failed to write %s: %w", ErrPersistence, r.path, err)
	}

	product.ID = stored.ID
	return nil
}

// LoadAll reads every product from the file. A missing or malformed file is an error.
func (r *fileProductRepository) LoadAll(ctx context.Context) ([]domain.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	products, err := r.read()
	if err != nil {
		return nil, fmt.Errorf("%w: failed to load %s: %w", ErrPersistence, r.path, err)
	}

	if products == nil {
		products = []domain.Product{}
	}

	return products, nil
}

func (r *fileProductRepository) read() ([]domain.Product, error) {
	data, err := os.ReadFile(r.path)
	if err != nil {
		return nil, err
	}

	var products []domain.Product
	if err := json.Unmarshal(data, &products); err != nil {
		return nil, err
	}

	return products, nil
}
