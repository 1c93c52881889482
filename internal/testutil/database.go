package testutil

import (
	"database/sql"
	"fmt"
	"testing"

	_ "github.com/go-sql-driver/mysql"
)

// SetupTestDB opens the test database. It expects a MySQL instance on
// localhost:3306 with a database named 'bikeshop_test'.
func SetupTestDB(t *testing.T) *sql.DB {
	dsn := "root:@tcp(localhost:3306)/bikeshop_test?parseTime=true"
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	// Verify connection
	err = db.Ping()
	if err != nil {
		t.Skipf("test database not available: %v", err)
	}

	return db
}

// CleanupTestDB empties the test tables and closes the connection.
func CleanupTestDB(t *testing.T, db *sql.DB) {
	if db == nil {
		return
	}

	tables := []string{"custom_product_parts", "custom_products", "parts", "products"}
	for _, table := range tables {
		_, err := db.Exec(fmt.Sprintf("DELETE FROM %s", table))
		if err != nil {
			t.Logf("failed to clean table %s: %v", table, err)
		}
	}

	db.Close()
}

// SetupTestTables creates the tables the tests need.
func SetupTestTables(t *testing.T, db *sql.DB) {
	createPartsTable := `
	CREATE TABLE IF NOT EXISTS parts (
		id INT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
		productType VARCHAR(100) NOT NULL DEFAULT 'bicycle',
		category VARCHAR(100) NOT NULL,
		value VARCHAR(100) NOT NULL,
		price DECIMAL(10,2) NOT NULL DEFAULT 0.00,
		quantity INT NOT NULL DEFAULT 0,
		isAvailable TINYINT(1) NOT NULL DEFAULT 1,
		createdAt DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updatedAt DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		UNIQUE KEY uniq_slot (productType, category, value),
		INDEX idx_product_type (productType)
	)`

	createProductsTable := `
	CREATE TABLE IF NOT EXISTS products (
		id INT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
		type VARCHAR(100) NOT NULL DEFAULT 'bicycle',
		name VARCHAR(255) NOT NULL,
		price DECIMAL(10,2) NOT NULL DEFAULT 0.00,
		isAvailable TINYINT(1) NOT NULL DEFAULT 0,
		restrictions JSON,
		createdAt DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updatedAt DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		INDEX idx_type (type)
	)`

	createCustomProductsTable := `
	CREATE TABLE IF NOT EXISTS custom_products (
		id INT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
		productType VARCHAR(100) NOT NULL DEFAULT 'bicycle',
		name VARCHAR(255) NOT NULL,
		price DECIMAL(10,2) NOT NULL DEFAULT 0.00,
		createdAt DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updatedAt DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP
	)`

	createCustomProductPartsTable := `
	CREATE TABLE IF NOT EXISTS custom_product_parts (
		id INT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
		customProductId INT UNSIGNED NOT NULL,
		partId INT UNSIGNED NOT NULL,
		FOREIGN KEY (customProductId) REFERENCES custom_products(id) ON DELETE CASCADE,
		FOREIGN KEY (partId) REFERENCES parts(id),
		INDEX idx_custom_product (customProductId),
		INDEX idx_part (partId)
	)`

	tables := []struct {
		name  string
		query string
	}{
		{"parts", createPartsTable},
		{"products", createProductsTable},
		{"custom_products", createCustomProductsTable},
		{"custom_product_parts", createCustomProductPartsTable},
	}

	for _, tbl := range tables {
		_, err := db.Exec(tbl.query)
		if err != nil {
			t.Logf("failed to create table %s: %v", tbl.name, err)
		}
	}
}
