package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"github.com/muscleoxy/checkout-service/internal/models"
)

// ErrDuplicatePayment is returned when an insert collides with the
// unique constraint on payment_id, i.e. the gateway payment was
// already recorded by an earlier (or concurrent) verification call.
var ErrDuplicatePayment = errors.New("payment already recorded")

const uniqueViolation = "23505"

type OrderRepo struct {
	db *sql.DB
}

func NewOrderRepo(db *sql.DB) *OrderRepo {
	return &OrderRepo{db: db}
}

func (r *OrderRepo) Insert(ctx context.Context, o *models.Order) error {
	query := `
		INSERT INTO orders
		(id, product_id, quantity, coupon_code, amount, payment_id,
		 customer_name, customer_email, invoice_status, created_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10);
	`

	_, err := r.db.ExecContext(ctx, query,
		o.ID,
		o.ProductID,
		o.Quantity,
		o.CouponCode,
		o.Amount,
		o.PaymentID,
		o.CustomerName,
		o.CustomerEmail,
		string(o.InvoiceStatus),
		o.CreatedAt,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return ErrDuplicatePayment
		}
		return err
	}
	return nil
}

// GetByPaymentID returns (nil, nil) when no order exists for the
// gateway payment id.
func (r *OrderRepo) GetByPaymentID(ctx context.Context, paymentID string) (*models.Order, error) {
	query := `
		SELECT id, product_id, quantity, coupon_code, amount, payment_id,
		       customer_name, customer_email, invoice_status, created_at
		FROM orders
		WHERE payment_id = $1;
	`
	return r.scanOne(r.db.QueryRowContext(ctx, query, paymentID))
}

func (r *OrderRepo) MarkInvoiceGenerated(ctx context.Context, orderID string) error {
	query := `UPDATE orders SET invoice_status = $2 WHERE id = $1;`
	_, err := r.db.ExecContext(ctx, query, orderID, string(models.InvoiceGenerated))
	return err
}

// ListInvoicePending returns orders whose invoice document still has
// to be written, oldest first.
func (r *OrderRepo) ListInvoicePending(ctx context.Context, limit int) ([]models.Order, error) {
	query := `
		SELECT id, product_id, quantity, coupon_code, amount, payment_id,
		       customer_name, customer_email, invoice_status, created_at
		FROM orders
		WHERE invoice_status = $1
		ORDER BY created_at ASC
		LIMIT $2;
	`
	rows, err := r.db.QueryContext(ctx, query, string(models.InvoicePending), limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Order
	for rows.Next() {
		var o models.Order
		if err := rows.Scan(
			&o.ID,
			&o.ProductID,
			&o.Quantity,
			&o.CouponCode,
			&o.Amount,
			&o.PaymentID,
			&o.CustomerName,
			&o.CustomerEmail,
			(*string)(&o.InvoiceStatus),
			&o.CreatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, rows.Err()
}

func (r *OrderRepo) scanOne(row *sql.Row) (*models.Order, error) {
	var o models.Order
	err := row.Scan(
		&o.ID,
		&o.ProductID,
		&o.Quantity,
		&o.CouponCode,
		&o.Amount,
		&o.PaymentID,
		&o.CustomerName,
		&o.CustomerEmail,
		(*string)(&o.InvoiceStatus),
		&o.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &o, nil
}
