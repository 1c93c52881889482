package domain

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestPart_Creation(t *testing.T) {
	createdAt := time.Now()
	updatedAt := time.Now()

	part := Part{
		ID:          1,
		ProductType: "bicycle",
		Category:    "frameType",
		Value:       "full-suspension",
		Price:       decimal.NewFromFloat(130.00),
		Quantity:    12,
		IsAvailable: true,
		CreatedAt:   createdAt,
		UpdatedAt:   updatedAt,
	}

	assert.Equal(t, uint(1), part.ID)
	assert.Equal(t, "bicycle", part.ProductType)
	assert.Equal(t, "frameType", part.Category)
	assert.Equal(t, "full-suspension", part.Value)
	assert.True(t, part.Price.Equal(decimal.NewFromFloat(130.00)))
	assert.Equal(t, 12, part.Quantity)
	assert.True(t, part.IsAvailable)
	assert.Equal(t, createdAt, part.CreatedAt)
	assert.Equal(t, updatedAt, part.UpdatedAt)
}

func TestPart_InStock(t *testing.T) {
	assert.True(t, Part{Quantity: 1}.InStock())
	assert.False(t, Part{Quantity: 0}.InStock())
	assert.False(t, Part{Quantity: -3}.InStock())
}

func TestDeriveAvailability(t *testing.T) {
	tests := []struct {
		name      string
		requested bool
		quantity  int
		want      bool
	}{
		{"available with stock", true, 5, true},
		{"manually deactivated with stock", false, 5, false},
		{"forced false at zero stock", true, 0, false},
		{"forced false at negative stock", true, -1, false},
		{"unavailable and out of stock", false, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DeriveAvailability(tt.requested, tt.quantity))
		})
	}
}
