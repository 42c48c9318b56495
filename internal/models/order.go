package models

import "time"

type InvoiceStatus string

const (
	// InvoicePending marks an order whose record is saved but whose
	// invoice document has not been written yet. The retry worker
	// sweeps these up.
	InvoicePending   InvoiceStatus = "pending"
	InvoiceGenerated InvoiceStatus = "generated"
)

// Order is the record persisted after a successful payment
// verification. Append-only; nothing in the service updates it apart
// from the invoice status transition.
type Order struct {
	ID            string
	ProductID     *string
	Quantity      int
	CouponCode    *string
	Amount        float64
	PaymentID     string
	CustomerName  string
	CustomerEmail string
	InvoiceStatus InvoiceStatus
	CreatedAt     time.Time
}
