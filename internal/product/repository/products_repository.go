package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"bikeshop/internal/domain"
	"bikeshop/internal/errors"
)

type MySQLProductsRepository struct {
	db *sql.DB
}

func NewMySQLProductsRepository(db *sql.DB) *MySQLProductsRepository {
	return &MySQLProductsRepository{db: db}
}

const productColumns = `id, type, name, price, isAvailable, restrictions, createdAt, updatedAt`

func (r *MySQLProductsRepository) FindAll(ctx context.Context, productType string) ([]domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products`
	var args []interface{}
	if productType != "" {
		query += ` WHERE type = ?`
		args = append(args, productType)
	}
	query += ` ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying products: %w", err)
	}
	defer rows.Close()

	var products []domain.Product
	for rows.Next() {
		p, err := scanProduct(rows.Scan)
		if err != nil {
			return nil, err
		}
		products = append(products, *p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating product rows: %w", err)
	}

	return products, nil
}

func (r *MySQLProductsRepository) FindByID(ctx context.Context, id uint) (*domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = ?`

	p, err := scanProduct(r.db.QueryRowContext(ctx, query, id).Scan)
	if err == sql.ErrNoRows {
		return nil, errors.NewNotFoundError(fmt.Sprintf("product with id %d not found", id))
	}
	if err != nil {
		return nil, err
	}

	return p, nil
}

func (r *MySQLProductsRepository) Insert(ctx context.Context, p domain.Product) (uint, error) {
	restrictions, err := marshalRestrictions(p.Restrictions)
	if err != nil {
		return 0, err
	}

	query := `
		INSERT INTO products (type, name, price, isAvailable, restrictions)
		VALUES (?, ?, ?, ?, ?)`

	result, err := r.db.ExecContext(ctx, query, p.Type, p.Name, p.Price, p.IsAvailable, restrictions)
	if err != nil {
		return 0, fmt.Errorf("inserting product: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("reading inserted product id: %w", err)
	}

	return uint(id), nil
}

func (r *MySQLProductsRepository) Update(ctx context.Context, p domain.Product) error {
	restrictions, err := marshalRestrictions(p.Restrictions)
	if err != nil {
		return err
	}

	query := `
		UPDATE products
		SET type = ?, name = ?, price = ?, isAvailable = ?, restrictions = ?
		WHERE id = ?`

	_, err = r.db.ExecContext(ctx, query, p.Type, p.Name, p.Price, p.IsAvailable, restrictions, p.ID)
	if err != nil {
		return fmt.Errorf("updating product: %w", err)
	}

	return nil
}

func (r *MySQLProductsRepository) Delete(ctx context.Context, id uint) (bool, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM products WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("deleting product: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("reading deleted product rows: %w", err)
	}

	return affected > 0, nil
}

func scanProduct(scan func(dest ...interface{}) error) (*domain.Product, error) {
	var p domain.Product
	var restrictions sql.NullString

	err := scan(
		&p.ID, &p.Type, &p.Name, &p.Price, &p.IsAvailable,
		&restrictions, &p.CreatedAt, &p.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("scanning product row: %w", err)
	}

	if restrictions.Valid && restrictions.String != "" {
		if err := json.Unmarshal([]byte(restrictions.String), &p.Restrictions); err != nil {
			return nil, fmt.Errorf("decoding product restrictions: %w", err)
		}
	}

	return &p, nil
}

func marshalRestrictions(restrictions map[string][]string) (interface{}, error) {
	if restrictions == nil {
		return nil, nil
	}
	data, err := json.Marshal(restrictions)
	if err != nil {
		return nil, fmt.Errorf("encoding product restrictions: %w", err)
	}
	return string(data), nil
}
