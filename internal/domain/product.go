package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is a preconfigured catalog product, as opposed to a CustomProduct
// assembled from parts. Restrictions optionally narrows which option values
// are offered per category when a custom build starts from this product.
type Product struct {
	ID           uint
	Type         string
	Name         string
	Price        decimal.Decimal
	IsAvailable  bool
	Restrictions map[string][]string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
