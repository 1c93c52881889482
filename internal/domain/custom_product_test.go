package domain

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestCustomProduct_Creation(t *testing.T) {
	createdAt := time.Now()

	cp := CustomProduct{
		ID:          7,
		ProductType: "bicycle",
		Name:        "Mountain bike",
		Price:       decimal.NewFromFloat(499.90),
		Parts: []Part{
			{ID: 1, ProductType: "bicycle", Category: "frameType", Value: "full-suspension"},
			{ID: 2, ProductType: "bicycle", Category: "wheels", Value: "mountain wheels"},
		},
		CreatedAt: createdAt,
	}

	assert.Equal(t, uint(7), cp.ID)
	assert.Equal(t, "bicycle", cp.ProductType)
	assert.Equal(t, "Mountain bike", cp.Name)
	assert.True(t, cp.Price.Equal(decimal.NewFromFloat(499.90)))
	assert.Len(t, cp.Parts, 2)
	assert.Equal(t, createdAt, cp.CreatedAt)
}

func TestCustomProduct_NoParts(t *testing.T) {
	cp := CustomProduct{
		ID:          8,
		ProductType: "ski",
		Name:        "Ski set",
		Price:       decimal.NewFromInt(250),
	}

	assert.Empty(t, cp.Parts)
	assert.Equal(t, "ski", cp.ProductType)
}
