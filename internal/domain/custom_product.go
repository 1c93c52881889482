package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// CustomProduct is a user-assembled product: a declared product type plus the
// parts currently attached to it. Parts are shared catalog rows; the
// association lives in the custom_product_parts join table.
type CustomProduct struct {
	ID          uint
	ProductType string
	Name        string
	Price       decimal.Decimal
	Parts       []Part
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

const DefaultProductType = "bicycle"
