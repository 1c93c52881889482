package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"bikeshop/internal/domain"
	"bikeshop/internal/errors"
)

type MySQLCustomProductsRepository struct {
	db *sql.DB
}

func NewMySQLCustomProductsRepository(db *sql.DB) *MySQLCustomProductsRepository {
	return &MySQLCustomProductsRepository{db: db}
}

func (r *MySQLCustomProductsRepository) FindAll(ctx context.Context) ([]domain.CustomProduct, error) {
	query := `
		SELECT id, productType, name, price, createdAt, updatedAt
		FROM custom_products
		ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying custom products: %w", err)
	}
	defer rows.Close()

	var products []domain.CustomProduct
	for rows.Next() {
		var cp domain.CustomProduct
		err := rows.Scan(&cp.ID, &cp.ProductType, &cp.Name, &cp.Price, &cp.CreatedAt, &cp.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("scanning custom product row: %w", err)
		}
		products = append(products, cp)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating custom product rows: %w", err)
	}

	if err := r.loadParts(ctx, products); err != nil {
		return nil, err
	}

	return products, nil
}

func (r *MySQLCustomProductsRepository) FindByID(ctx context.Context, id uint) (*domain.CustomProduct, error) {
	query := `
		SELECT id, productType, name, price, createdAt, updatedAt
		FROM custom_products
		WHERE id = ?`

	var cp domain.CustomProduct
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&cp.ID, &cp.ProductType, &cp.Name, &cp.Price, &cp.CreatedAt, &cp.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, errors.NewNotFoundError(fmt.Sprintf("custom product with id %d not found", id))
	}
	if err != nil {
		return nil, fmt.Errorf("querying custom product by id: %w", err)
	}

	products := []domain.CustomProduct{cp}
	if err := r.loadParts(ctx, products); err != nil {
		return nil, err
	}

	return &products[0], nil
}

// Insert creates the aggregate and its initial part associations atomically.
func (r *MySQLCustomProductsRepository) Insert(ctx context.Context, cp domain.CustomProduct, partIDs []uint) (uint, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("beginning insert transaction: %w", err)
	}
	// MySQL ignores rollback if already committed.
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx,
		`INSERT INTO custom_products (productType, name, price) VALUES (?, ?, ?)`,
		cp.ProductType, cp.Name, cp.Price,
	)
	if err != nil {
		return 0, fmt.Errorf("inserting custom product: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("reading inserted custom product id: %w", err)
	}

	if err := insertAssociations(ctx, tx, uint(id), partIDs); err != nil {
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing custom product insert: %w", err)
	}

	return uint(id), nil
}

// UpdateFields updates the aggregate's own columns; associations are managed
// by ReplaceParts/AttachPart.
func (r *MySQLCustomProductsRepository) UpdateFields(ctx context.Context, cp domain.CustomProduct) error {
	query := `UPDATE custom_products SET productType = ?, name = ?, price = ? WHERE id = ?`

	_, err := r.db.ExecContext(ctx, query, cp.ProductType, cp.Name, cp.Price, cp.ID)
	if err != nil {
		return fmt.Errorf("updating custom product: %w", err)
	}

	return nil
}

// ReplaceParts swaps the full association set atomically.
func (r *MySQLCustomProductsRepository) ReplaceParts(ctx context.Context, id uint, partIDs []uint) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning replace transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM custom_product_parts WHERE customProductId = ?`, id); err != nil {
		return fmt.Errorf("clearing custom product parts: %w", err)
	}

	if err := insertAssociations(ctx, tx, id, partIDs); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing parts replacement: %w", err)
	}

	return nil
}

func (r *MySQLCustomProductsRepository) AttachPart(ctx context.Context, id uint, partID uint) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO custom_product_parts (customProductId, partId) VALUES (?, ?)`,
		id, partID,
	)
	if err != nil {
		return fmt.Errorf("attaching part: %w", err)
	}

	return nil
}

// Delete removes the aggregate and severs its part associations. The parts
// themselves are shared catalog rows and stay untouched.
func (r *MySQLCustomProductsRepository) Delete(ctx context.Context, id uint) (bool, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("beginning delete transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM custom_product_parts WHERE customProductId = ?`, id); err != nil {
		return false, fmt.Errorf("severing part associations: %w", err)
	}

	result, err := tx.ExecContext(ctx, `DELETE FROM custom_products WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("deleting custom product: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("reading deleted custom product rows: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("committing custom product delete: %w", err)
	}

	return affected > 0, nil
}

func insertAssociations(ctx context.Context, tx *sql.Tx, id uint, partIDs []uint) error {
	for _, partID := range partIDs {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO custom_product_parts (customProductId, partId) VALUES (?, ?)`,
			id, partID,
		)
		if err != nil {
			return fmt.Errorf("associating part %d: %w", partID, err)
		}
	}
	return nil
}

// loadParts fills Parts for every product in the slice with one join query.
func (r *MySQLCustomProductsRepository) loadParts(ctx context.Context, products []domain.CustomProduct) error {
	if len(products) == 0 {
		return nil
	}

	index := make(map[uint]*domain.CustomProduct, len(products))
	placeholders := make([]string, len(products))
	args := make([]interface{}, len(products))
	for i := range products {
		index[products[i].ID] = &products[i]
		placeholders[i] = "?"
		args[i] = products[i].ID
	}

	query := fmt.Sprintf(`
		SELECT cpp.customProductId,
		       p.id, p.productType, p.category, p.value, p.price, p.quantity, p.isAvailable,
		       p.createdAt, p.updatedAt
		FROM custom_product_parts cpp
		JOIN parts p ON p.id = cpp.partId
		WHERE cpp.customProductId IN (%s)
		ORDER BY p.id`,
		strings.Join(placeholders, ", "),
	)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("querying custom product parts: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var ownerID uint
		var p domain.Part
		err := rows.Scan(
			&ownerID,
			&p.ID, &p.ProductType, &p.Category, &p.Value, &p.Price, &p.Quantity, &p.IsAvailable,
			&p.CreatedAt, &p.UpdatedAt,
		)
		if err != nil {
			return fmt.Errorf("scanning custom product part row: %w", err)
		}
		if owner, ok := index[ownerID]; ok {
			owner.Parts = append(owner.Parts, p)
		}
	}

	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterating custom product part rows: %w", err)
	}

	return nil
}
