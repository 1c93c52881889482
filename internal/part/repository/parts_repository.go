package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"bikeshop/internal/domain"
	"bikeshop/internal/errors"
)

type MySQLPartsRepository struct {
	db *sql.DB
}

func NewMySQLPartsRepository(db *sql.DB) *MySQLPartsRepository {
	return &MySQLPartsRepository{db: db}
}

const partColumns = `id, productType, category, value, price, quantity, isAvailable, createdAt, updatedAt`

// FindAll returns every part, optionally filtered by product type.
func (r *MySQLPartsRepository) FindAll(ctx context.Context, productType string) ([]domain.Part, error) {
	query := `SELECT ` + partColumns + ` FROM parts`
	var args []interface{}
	if productType != "" {
		query += ` WHERE productType = ?`
		args = append(args, productType)
	}
	query += ` ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying parts: %w", err)
	}
	defer rows.Close()

	return scanParts(rows)
}

// FindByIDs returns the parts that exist among the requested ids. Callers
// detect missing ids by set difference.
func (r *MySQLPartsRepository) FindByIDs(ctx context.Context, ids []uint) ([]domain.Part, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	placeholders := make([]string, len(ids))
	args := make([]interface{}, len(ids))
	for i, id := range ids {
		placeholders[i] = "?"
		args[i] = id
	}

	query := fmt.Sprintf(
		`SELECT `+partColumns+` FROM parts WHERE id IN (%s)`,
		strings.Join(placeholders, ", "),
	)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying parts by ids: %w", err)
	}
	defer rows.Close()

	return scanParts(rows)
}

func (r *MySQLPartsRepository) FindByID(ctx context.Context, id uint) (*domain.Part, error) {
	query := `SELECT ` + partColumns + ` FROM parts WHERE id = ?`

	var p domain.Part
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&p.ID, &p.ProductType, &p.Category, &p.Value,
		&p.Price, &p.Quantity, &p.IsAvailable,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, errors.NewNotFoundError(fmt.Sprintf("part with id %d not found", id))
	}
	if err != nil {
		return nil, fmt.Errorf("querying part by id: %w", err)
	}

	return &p, nil
}

// FindByTypeCategoryValue returns the part occupying the given (type,
// category, value) slot, or nil when none exists.
func (r *MySQLPartsRepository) FindByTypeCategoryValue(ctx context.Context, productType, category, value string) (*domain.Part, error) {
	query := `SELECT ` + partColumns + ` FROM parts WHERE productType = ? AND category = ? AND value = ?`

	var p domain.Part
	err := r.db.QueryRowContext(ctx, query, productType, category, value).Scan(
		&p.ID, &p.ProductType, &p.Category, &p.Value,
		&p.Price, &p.Quantity, &p.IsAvailable,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("querying part by type, category and value: %w", err)
	}

	return &p, nil
}

func (r *MySQLPartsRepository) Insert(ctx context.Context, p domain.Part) (uint, error) {
	query := `
		INSERT INTO parts (productType, category, value, price, quantity, isAvailable)
		VALUES (?, ?, ?, ?, ?, ?)`

	result, err := r.db.ExecContext(ctx, query,
		p.ProductType, p.Category, p.Value, p.Price, p.Quantity, p.IsAvailable,
	)
	if err != nil {
		return 0, fmt.Errorf("inserting part: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("reading inserted part id: %w", err)
	}

	return uint(id), nil
}

func (r *MySQLPartsRepository) Update(ctx context.Context, p domain.Part) error {
	query := `
		UPDATE parts
		SET productType = ?, category = ?, value = ?, price = ?, quantity = ?, isAvailable = ?
		WHERE id = ?`

	_, err := r.db.ExecContext(ctx, query,
		p.ProductType, p.Category, p.Value, p.Price, p.Quantity, p.IsAvailable, p.ID,
	)
	if err != nil {
		return fmt.Errorf("updating part: %w", err)
	}

	return nil
}

func (r *MySQLPartsRepository) Delete(ctx context.Context, id uint) (bool, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM parts WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("deleting part: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("reading deleted part rows: %w", err)
	}

	return affected > 0, nil
}

func scanParts(rows *sql.Rows) ([]domain.Part, error) {
	var parts []domain.Part
	for rows.Next() {
		var p domain.Part
		err := rows.Scan(
			&p.ID, &p.ProductType, &p.Category, &p.Value,
			&p.Price, &p.Quantity, &p.IsAvailable,
			&p.CreatedAt, &p.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning part row: %w", err)
		}
		parts = append(parts, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating part rows: %w", err)
	}

	return parts, nil
}
