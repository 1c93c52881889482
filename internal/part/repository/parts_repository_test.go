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

func TestNewMySQLPartsRepository(t *testing.T) {
	db := &sql.DB{}
	repo := NewMySQLPartsRepository(db)

	assert.NotNil(t, repo)
	assert.Equal(t, db, repo.db)
}

// Integration Tests

func seedPart(t *testing.T, repo *MySQLPartsRepository, productType, category, value string, quantity int) uint {
	t.Helper()

	id, err := repo.Insert(context.Background(), domain.Part{
		ProductType: productType,
		Category:    category,
		Value:       value,
		Price:       decimal.NewFromFloat(25.50),
		Quantity:    quantity,
		IsAvailable: quantity > 0,
	})
	require.NoError(t, err)
	return id
}

func TestPartsRepository_FindAll(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.SetupTestTables(t, db)
	defer testutil.CleanupTestDB(t, db)

	repo := NewMySQLPartsRepository(db)
	seedPart(t, repo, "bicycle", "frameType", "hardtail", 5)
	seedPart(t, repo, "bicycle", "wheels", "road wheels", 5)
	seedPart(t, repo, "ski", "binding", "race", 5)

	all, err := repo.FindAll(context.Background(), "")
	require.NoError(t, err)
	assert.Len(t, all, 3)

	bicycles, err := repo.FindAll(context.Background(), "bicycle")
	require.NoError(t, err)
	assert.Len(t, bicycles, 2)
	for _, p := range bicycles {
		assert.Equal(t, "bicycle", p.ProductType)
	}
}

func TestPartsRepository_FindByIDs_ReturnsOnlyExisting(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.SetupTestTables(t, db)
	defer testutil.CleanupTestDB(t, db)

	repo := NewMySQLPartsRepository(db)
	id := seedPart(t, repo, "bicycle", "frameType", "hardtail", 5)

	parts, err := repo.FindByIDs(context.Background(), []uint{id, id + 100})
	require.NoError(t, err)
	assert.Len(t, parts, 1)
	assert.Equal(t, id, parts[0].ID)
}

func TestPartsRepository_FindByIDs_EmptyList(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.SetupTestTables(t, db)
	defer testutil.CleanupTestDB(t, db)

	repo := NewMySQLPartsRepository(db)

	parts, err := repo.FindByIDs(context.Background(), []uint{})
	require.NoError(t, err)
	assert.Nil(t, parts)
}

func TestPartsRepository_FindByID_NotFound(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.SetupTestTables(t, db)
	defer testutil.CleanupTestDB(t, db)

	repo := NewMySQLPartsRepository(db)

	_, err := repo.FindByID(context.Background(), 9999)
	require.Error(t, err)

	_, ok := apperrors.IsNotFoundError(err)
	assert.True(t, ok, "expected NotFoundError, got %T", err)
}

func TestPartsRepository_FindByTypeCategoryValue(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.SetupTestTables(t, db)
	defer testutil.CleanupTestDB(t, db)

	repo := NewMySQLPartsRepository(db)
	id := seedPart(t, repo, "bicycle", "rimColor", "red", 5)

	found, err := repo.FindByTypeCategoryValue(context.Background(), "bicycle", "rimColor", "red")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, id, found.ID)

	missing, err := repo.FindByTypeCategoryValue(context.Background(), "bicycle", "rimColor", "blue")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestPartsRepository_UpdateAndDelete(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.SetupTestTables(t, db)
	defer testutil.CleanupTestDB(t, db)

	repo := NewMySQLPartsRepository(db)
	id := seedPart(t, repo, "bicycle", "wheels", "mountain wheels", 5)

	part, err := repo.FindByID(context.Background(), id)
	require.NoError(t, err)

	part.Quantity = 0
	part.IsAvailable = false
	require.NoError(t, repo.Update(context.Background(), *part))

	updated, err := repo.FindByID(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, 0, updated.Quantity)
	assert.False(t, updated.IsAvailable)

	deleted, err := repo.Delete(context.Background(), id)
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = repo.Delete(context.Background(), id)
	require.NoError(t, err)
	assert.False(t, deleted)
}
