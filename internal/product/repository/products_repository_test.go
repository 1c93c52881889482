package repository

import (
	"context"
	"database/sql"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bikeshop/internal/domain"
	apperrors "bikeshop/internal/errors"
	"bikeshop/internal/testutil"
)

// Unit Tests

func TestNewMySQLProductsRepository(t *testing.T) {
	db := &sql.DB{}
	repo := NewMySQLProductsRepository(db)

	assert.NotNil(t, repo)
	assert.Equal(t, db, repo.db)
}

// Integration Tests

func TestProductsRepository_InsertAndFindByID(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.SetupTestTables(t, db)
	defer testutil.CleanupTestDB(t, db)

	repo := NewMySQLProductsRepository(db)

	id, err := repo.Insert(context.Background(), domain.Product{
		Type:        "bicycle",
		Name:        "City cruiser",
		Price:       decimal.NewFromFloat(399.99),
		IsAvailable: true,
		Restrictions: map[string][]string{
			"wheels": {"road wheels", "fat bike wheels"},
		},
	})
	require.NoError(t, err)

	product, err := repo.FindByID(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "City cruiser", product.Name)
	assert.True(t, product.Price.Equal(decimal.NewFromFloat(399.99)))
	require.NotNil(t, product.Restrictions)
	assert.Equal(t, []string{"road wheels", "fat bike wheels"}, product.Restrictions["wheels"])
}

func TestProductsRepository_NullRestrictions(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.SetupTestTables(t, db)
	defer testutil.CleanupTestDB(t, db)

	repo := NewMySQLProductsRepository(db)

	id, err := repo.Insert(context.Background(), domain.Product{
		Type:  "ski",
		Name:  "Ski set",
		Price: decimal.NewFromInt(250),
	})
	require.NoError(t, err)

	product, err := repo.FindByID(context.Background(), id)
	require.NoError(t, err)
	assert.Nil(t, product.Restrictions)
}

func TestProductsRepository_FindAllFilterByType(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.SetupTestTables(t, db)
	defer testutil.CleanupTestDB(t, db)

	repo := NewMySQLProductsRepository(db)

	_, err := repo.Insert(context.Background(), domain.Product{Type: "bicycle", Name: "A", Price: decimal.NewFromInt(100)})
	require.NoError(t, err)
	_, err = repo.Insert(context.Background(), domain.Product{Type: "ski", Name: "B", Price: decimal.NewFromInt(200)})
	require.NoError(t, err)

	bicycles, err := repo.FindAll(context.Background(), "bicycle")
	require.NoError(t, err)
	require.Len(t, bicycles, 1)
	assert.Equal(t, "A", bicycles[0].Name)

	all, err := repo.FindAll(context.Background(), "")
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestProductsRepository_FindByID_NotFound(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.SetupTestTables(t, db)
	defer testutil.CleanupTestDB(t, db)

	repo := NewMySQLProductsRepository(db)

	_, err := repo.FindByID(context.Background(), 9999)
	require.Error(t, err)

	_, ok := apperrors.IsNotFoundError(err)
	assert.True(t, ok, "expected NotFoundError, got %T", err)
}

func TestProductsRepository_Delete(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.SetupTestTables(t, db)
	defer testutil.CleanupTestDB(t, db)

	repo := NewMySQLProductsRepository(db)

	id, err := repo.Insert(context.Background(), domain.Product{Type: "bicycle", Name: "A", Price: decimal.NewFromInt(100)})
	require.NoError(t, err)

	deleted, err := repo.Delete(context.Background(), id)
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = repo.Delete(context.Background(), id)
	require.NoError(t, err)
	assert.False(t, deleted)
}
