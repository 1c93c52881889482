package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

type CustomProductDTO struct {
	ID          uint            `json:"id"`
	ProductType string          `json:"productType"`
	Name        string          `json:"name"`
	Price       decimal.Decimal `json:"price"`
	Parts       []PartDTO       `json:"parts"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

type CreateCustomProductRequest struct {
	Name        string          `json:"name"`
	Price       decimal.Decimal `json:"price"`
	ProductType string          `json:"productType"`
	Parts       []uint          `json:"parts"`
}

// UpdateCustomProductRequest updates the aggregate's own fields; nil means
// "leave unchanged". Parts are updated through their own endpoints.
type UpdateCustomProductRequest struct {
	Name        *string          `json:"name"`
	Price       *decimal.Decimal `json:"price"`
	ProductType *string          `json:"productType"`
}

type ReplacePartsRequest struct {
	Parts []uint `json:"parts"`
}

type AttachPartRequest struct {
	PartID uint `json:"partId"`
}
