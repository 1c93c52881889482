package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Part is a catalog item identified by its product type plus a
// category/value pair, e.g. {bicycle, frameType, full-suspension}.
type Part struct {
	ID          uint
	ProductType string
	Category    string
	Value       string
	Price       decimal.Decimal
	Quantity    int
	IsAvailable bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// InStock reports whether the part can still be attached to a product.
func (p Part) InStock() bool {
	return p.Quantity > 0
}

// DeriveAvailability returns the availability flag to persist for the given
// stock level. A part with no stock is never stored as available, regardless
// of what the caller requested.
func DeriveAvailability(requested bool, quantity int) bool {
	if quantity <= 0 {
		return false
	}
	return requested
}
