package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

type ProductDTO struct {
	ID           uint                `json:"id"`
	Type         string              `json:"type"`
	Name         string              `json:"name"`
	Price        decimal.Decimal     `json:"price"`
	IsAvailable  bool                `json:"isAvailable"`
	Restrictions map[string][]string `json:"restrictions,omitempty"`
	CreatedAt    time.Time           `json:"createdAt"`
	UpdatedAt    time.Time           `json:"updatedAt"`
}

type CreateProductRequest struct {
	Type         string              `json:"type"`
	Name         string              `json:"name"`
	Price        decimal.Decimal     `json:"price"`
	IsAvailable  *bool               `json:"isAvailable"`
	Restrictions map[string][]string `json:"restrictions"`
}

type UpdateProductRequest struct {
	Type         string              `json:"type"`
	Name         string              `json:"name"`
	Price        decimal.Decimal     `json:"price"`
	IsAvailable  bool                `json:"isAvailable"`
	Restrictions map[string][]string `json:"restrictions"`
}
