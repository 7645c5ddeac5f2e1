package domain

import (
	"github.com/shopspring/decimal"
)

// Product represents a product in the catalog
type Product struct {
	ID           int             `json:"productId"`
	Name         string          `json:"name"`
	Category     string          `json:"category"`
	Brand        string          `json:"brand"`
	Price        decimal.Decimal `json:"price"`
	Quantity     int             `json:"quantity"`
	FreeShipping bool            `json:"freeShipping"`
	Prestige     string          `json:"prestige"`
}

// Subtotal returns price multiplied by quantity
func (p Product) Subtotal() decimal.Decimal {
	return p.Price.Mul(decimal.NewFromInt(int64(p.Quantity)))
}

// PurchaseItem identifies a stored product and the quantity requested
type PurchaseItem struct {
	ProductID int
	Name      string
	Brand     string
	Quantity  int
}

// Ticket is the computed result of a purchase request. Tickets are never persisted.
type Ticket struct {
	ID         int64           `json:"id"`
	Items      []Product       `json:"articles"`
	TotalValue decimal.Decimal `json:"total"`
}
