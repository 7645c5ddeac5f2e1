package repository

import (
	"slices"
	"strings"

	"product-catalog/internal/domain"

	"github.com/shopspring/decimal"
)

// The functions below never touch the file. They work on a collection that
// was already loaded and always return a new slice, leaving the input as is.

// FindByName returns products whose name matches exactly
func FindByName(products []domain.Product, name string) []domain.Product {
	return filter(products, func(p domain.Product) bool { return p.Name == name })
}

// FindByCategory returns products in the given category
func FindByCategory(products []domain.Product, category string) []domain.Product {
	return filter(products, func(p domain.Product) bool { return p.Category == category })
}

// FindByBrand returns products of the given brand
func FindByBrand(products []domain.Product, brand string) []domain.Product {
	return filter(products, func(p domain.Product) bool { return p.Brand == brand })
}

// FindByPrice returns products whose price equals the given value numerically
func FindByPrice(products []domain.Product, price decimal.Decimal) []domain.Product {
	return filter(products, func(p domain.Product) bool { return p.Price.Equal(price) })
}

// FindByFreeShipping returns products with the given shipping eligibility
func FindByFreeShipping(products []domain.Product, freeShipping bool) []domain.Product {
	return filter(products, func(p domain.Product) bool { return p.FreeShipping == freeShipping })
}

// FindByPrestige returns products of the given prestige tier
func FindByPrestige(products []domain.Product, prestige string) []domain.Product {
	return filter(products, func(p domain.Product) bool { return p.Prestige == prestige })
}

// OrderAlphabeticalAscending sorts by name, ignoring case. Ties keep their relative order.
func OrderAlphabeticalAscending(products []domain.Product) []domain.Product {
	return sortStable(products, compareNames)
}

// OrderAlphabeticalDescending sorts by name in reverse, ignoring case
func OrderAlphabeticalDescending(products []domain.Product) []domain.Product {
	return sortStable(products, func(a, b domain.Product) int { return compareNames(b, a) })
}

// OrderPriceAscending sorts from the cheapest product to the most expensive
func OrderPriceAscending(products []domain.Product) []domain.Product {
	return sortStable(products, func(a, b domain.Product) int { return a.Price.Cmp(b.Price) })
}

// OrderPriceDescending sorts from the most expensive product to the cheapest
func OrderPriceDescending(products []domain.Product) []domain.Product {
	return sortStable(products, func(a, b domain.Product) int { return b.Price.Cmp(a.Price) })
}

// CheckProductExists finds the product matching id, name and brand
func CheckProductExists(id int, name, brand string, products []domain.Product) (*domain.Product, error) {
	for i := range products {
		p := products[i]
		if p.ID == id && p.Name == name && p.Brand == brand {
			return &p, nil
		}
	}
	return nil, ErrProductNotFound
}

func filter(products []domain.Product, keep func(domain.Product) bool) []domain.Product {
	result := []domain.Product{}
	for _, p := range products {
		if keep(p) {
			result = append(result, p)
		}
	}
	return result
}

func sortStable(products []domain.Product, cmp func(a, b domain.Product) int) []domain.Product {
	sorted := slices.Clone(products)
	if sorted == nil {
		sorted = []domain.Product{}
	}
	slices.SortStableFunc(sorted, cmp)
	return sorted
}

func compareNames(a, b domain.Product) int {
	return strings.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name))
}
