package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

type PartDTO struct {
	ID          uint            `json:"id"`
	ProductType string          `json:"productType"`
	Category    string          `json:"category"`
	Value       string          `json:"value"`
	Price       decimal.Decimal `json:"price"`
	Quantity    int             `json:"quantity"`
	IsAvailable bool            `json:"isAvailable"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

type CreatePartRequest struct {
	ProductType string          `json:"productType"`
	Category    string          `json:"category"`
	Value       string          `json:"value"`
	Price       decimal.Decimal `json:"price"`
	Quantity    int             `json:"quantity"`
	IsAvailable *bool           `json:"isAvailable"`
}

type UpdatePartRequest struct {
	ProductType string          `json:"productType"`
	Category    string          `json:"category"`
	Value       string          `json:"value"`
	Price       decimal.Decimal `json:"price"`
	Quantity    int             `json:"quantity"`
	IsAvailable bool            `json:"isAvailable"`
}

type PatchPartRequest struct {
	ProductType *string          `json:"productType"`
	Category    *string          `json:"category"`
	Value       *string          `json:"value"`
	Price       *decimal.Decimal `json:"price"`
	Quantity    *int             `json:"quantity"`
	IsAvailable *bool            `json:"isAvailable"`
}

// PartOptions maps product type -> category -> offered values.
type PartOptions map[string]map[string][]string
