package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// DefaultMinStock is applied when a product is created without a threshold.
const DefaultMinStock = 5

// Product represents a stock item in the inventory catalog.
type Product struct {
	ID        int             `json:"id" db:"id"`
	Name      string          `json:"name" db:"name"`
	Category  string          `json:"category" db:"category"`
	Quantity  int             `json:"quantity" db:"quantity"`
	Price     decimal.Decimal `json:"price" db:"price"`
	MinStock  int             `json:"minStock" db:"min_stock"`
	CreatedAt time.Time       `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time       `json:"updatedAt" db:"updated_at"`
}

// Value is the stock valuation of the product: price * quantity.
func (p Product) Value() decimal.Decimal {
	return p.Price.Mul(decimal.NewFromInt(int64(p.Quantity)))
}
