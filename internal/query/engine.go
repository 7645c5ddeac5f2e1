// Package query applies an ordered list of key/value filters and sort
// directives to an in-memory product collection.
package query

import (
	"errors"
	"fmt"
	"strings"

	"product-catalog/internal/domain"
	"product-catalog/internal/repository"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

var ErrInvalidArgument = errors.New("invalid argument")

// Recognized filter keys, lower case
const (
	KeyName         = "name"
	KeyProduct      = "product"
	KeyCategory     = "category"
	KeyBrand        = "brand"
	KeyPrice        = "price"
	KeyFreeShipping = "freeshipping"
	KeyPrestige     = "prestige"
	KeyOrder        = "order"
)

// SortMode selects one of the four orderings available through the order key
type SortMode string

const (
	SortAlphabeticalAscending  SortMode = "0"
	SortAlphabeticalDescending SortMode = "1"
	SortPriceDescending        SortMode = "2"
	SortPriceAscending         SortMode = "3"
)

// Param is a single filter key and its raw value
type Param struct {
	Key   string
	Value string
}

// Engine narrows and sorts product collections
type Engine struct {
	logger *zap.Logger
}

// NewEngine creates a new query Engine
func NewEngine(logger *zap.Logger) *Engine {
	return &Engine{logger: logger}
}

// Apply runs every param against products in the given order. Each filter
// narrows the output of the previous one; an order param sorts it instead.
// Unknown keys are logged and skipped.
func (e *Engine) Apply(products []domain.Product, params []Param) ([]domain.Product, error) {
	result := products
	for _, param := range params {
		var err error
		result, err = e.applyOne(result, param)
		if err != nil {
			return nil, err
		}
	}
	return result, nil
}

func (e *Engine) applyOne(products []domain.Product, param Param) ([]domain.Product, error) {
	switch strings.ToLower(param.Key) {
	case KeyName, KeyProduct:
		return repository.FindByName(products, param.Value), nil
	case KeyCategory:
		return repository.FindByCategory(products, param.Value), nil
	case KeyBrand:
		return repository.FindByBrand(products, param.Value), nil
	case KeyPrice:
		price, err := decimal.NewFromString(param.Value)
		if err != nil {
			return nil, fmt.Errorf("%w: price %q is not a decimal number", ErrInvalidArgument, param.Value)
		}
		return repository.FindByPrice(products, price), nil
	case KeyFreeShipping:
		freeShipping, err := parseBool(param.Value)
		if err != nil {
			return nil, err
		}
		return repository.FindByFreeShipping(products, freeShipping), nil
	case KeyPrestige:
		return repository.FindByPrestige(products, param.Value), nil
	case KeyOrder:
		return e.order(products, SortMode(param.Value)), nil
	default:
		e.logger.Warn("No filter applied for unknown key",
			zap.String("key", param.Key),
			zap.String("value", param.Value),
		)
		return products, nil
	}
}

func (e *Engine) order(products []domain.Product, mode SortMode) []domain.Product {
	switch mode {
	case SortAlphabeticalAscending:
		return repository.OrderAlphabeticalAscending(products)
	case SortAlphabeticalDescending:
		return repository.OrderAlphabeticalDescending(products)
	case SortPriceDescending:
		return repository.OrderPriceDescending(products)
	case SortPriceAscending:
		return repository.OrderPriceAscending(products)
	default:
		e.logger.Warn("Unknown sort mode, order left unchanged", zap.String("order", string(mode)))
		return products
	}
}

// parseBool accepts only true or false, in any letter case
func parseBool(value string) (bool, error) {
	switch strings.ToLower(value) {
	case "true":
		return true, nil
	case "false":
		return false, nil
	default:
		return false, fmt.Errorf("%w: freeShipping %q must be true or false", ErrInvalidArgument, value)
	}
}
