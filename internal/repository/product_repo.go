package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/muscleoxy/checkout-service/internal/models"
)

type ProductRepo struct {
	db *sql.DB
}

func NewProductRepo(db *sql.DB) *ProductRepo {
	return &ProductRepo{db: db}
}

// GetProduct returns (nil, nil) when the id does not resolve.
func (r *ProductRepo) GetProduct(ctx context.Context, id string) (*models.Product, error) {
	var p models.Product

	query := `
		SELECT id, name, price
		FROM products
		WHERE id = $1;
	`

	err := r.db.QueryRowContext(ctx, query, id).Scan(&p.ID, &p.Name, &p.Price)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}
