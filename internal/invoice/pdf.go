package invoice

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"

	"github.com/muscleoxy/checkout-service/internal/models"
)

const title = "MuscleOxy Nutrition Invoice"

// FileName derives the invoice file name for an order record.
func FileName(orderID string) string {
	return "invoice-" + orderID + ".pdf"
}

// OrderIDFromFileName is the inverse of FileName. It rejects anything
// that is not a plain invoice name, so callers can use the result to
// build filesystem paths.
func OrderIDFromFileName(name string) (string, bool) {
	if !strings.HasPrefix(name, "invoice-") || !strings.HasSuffix(name, ".pdf") {
		return "", false
	}
	id := strings.TrimSuffix(strings.TrimPrefix(name, "invoice-"), ".pdf")
	if id == "" || strings.ContainsAny(id, `/\.`) {
		return "", false
	}
	return id, true
}

// Renderer writes invoice PDFs under Dir.
type Renderer struct {
	Dir string
}

// Render writes the invoice document for o and returns its path.
func (g *Renderer) Render(o *models.Order) (string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 20)
	pdf.CellFormat(0, 12, title, "", 1, "C", false, 0, "")
	pdf.Ln(4)

	productID := "-"
	if o.ProductID != nil {
		productID = *o.ProductID
	}
	qty := o.Quantity
	if qty == 0 {
		qty = 1
	}

	pdf.SetFont("Helvetica", "", 12)
	lines := []string{
		fmt.Sprintf("Order ID: %s", o.ID),
		fmt.Sprintf("Payment ID: %s", o.PaymentID),
		fmt.Sprintf("Customer: %s", o.CustomerName),
		fmt.Sprintf("Email: %s", o.CustomerEmail),
		fmt.Sprintf("Product ID: %s", productID),
		fmt.Sprintf("Quantity: %d", qty),
		fmt.Sprintf("Total Paid: INR %.2f", o.Amount),
		fmt.Sprintf("Date: %s", time.Now().Format("02 Jan 2006 15:04:05 MST")),
	}
	for _, line := range lines {
		pdf.CellFormat(0, 8, line, "", 1, "L", false, 0, "")
	}

	path := filepath.Join(g.Dir, FileName(o.ID))
	if err := pdf.OutputFileAndClose(path); err != nil {
		return "", fmt.Errorf("write invoice: %w", err)
	}
	return path, nil
}
