package repository

import (
	"context"
	"database/sql"
)

// InitSchema bootstraps the tables this service reads and writes.
// Products and coupons are managed by other systems; they are created
// here only so a fresh database is usable in development.
func InitSchema(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS products (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL DEFAULT '',
			price DOUBLE PRECISION NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS coupons (
			code TEXT PRIMARY KEY,
			discount_type TEXT NOT NULL,
			discount_value DOUBLE PRECISION NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);`,
		`CREATE TABLE IF NOT EXISTS orders (
			id TEXT PRIMARY KEY,
			product_id TEXT,
			quantity INT NOT NULL,
			coupon_code TEXT,
			amount DOUBLE PRECISION NOT NULL,
			payment_id TEXT NOT NULL UNIQUE,
			customer_name TEXT NOT NULL,
			customer_email TEXT NOT NULL,
			invoice_status TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL
		);`,
	}
	for _, q := range stmts {
		if _, err := db.ExecContext(ctx, q); err != nil {
			return err
		}
	}
	return nil
}
