package worker

import (
	"context"
	"sync"
	"time"

	"github.com/muscleoxy/checkout-service/internal/logger"
	"github.com/muscleoxy/checkout-service/internal/metrics"
	"github.com/muscleoxy/checkout-service/internal/models"
)

type PendingSource interface {
	ListInvoicePending(ctx context.Context, limit int) ([]models.Order, error)
	MarkInvoiceGenerated(ctx context.Context, orderID string) error
}

type Renderer interface {
	Render(o *models.Order) (string, error)
}

// InvoiceRetry sweeps orders that were persisted but whose invoice
// rendering failed, and re-renders them with bounded fan-out.
type InvoiceRetry struct {
	Orders   PendingSource
	Renderer Renderer
	Interval time.Duration
	Workers  int
}

const sweepBatch = 50

// Run blocks until ctx is canceled.
func (w *InvoiceRetry) Run(ctx context.Context) {
	interval := w.Interval
	if interval <= 0 {
		interval = time.Minute
	}
	t := time.NewTicker(interval)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			w.sweep(ctx)
		}
	}
}

func (w *InvoiceRetry) sweep(ctx context.Context) {
	pending, err := w.Orders.ListInvoicePending(ctx, sweepBatch)
	if err != nil {
		logger.Error("list pending invoices", logger.Fields{"err": err.Error()})
		return
	}
	if len(pending) == 0 {
		return
	}

	n := w.Workers
	if n <= 0 {
		n = 4
	}
	if len(pending) < n {
		n = len(pending)
	}

	jobs := make(chan models.Order)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for o := range jobs {
				w.retryOne(ctx, o)
			}
		}()
	}

feed:
	for _, o := range pending {
		select {
		case jobs <- o:
		case <-ctx.Done():
			break feed
		}
	}
	close(jobs)
	wg.Wait()
}

func (w *InvoiceRetry) retryOne(ctx context.Context, o models.Order) {
	if _, err := w.Renderer.Render(&o); err != nil {
		metrics.InvoiceFailuresTotal.Inc()
		logger.Warn("invoice retry failed", logger.Fields{"order_id": o.ID, "err": err.Error()})
		return
	}
	if err := w.Orders.MarkInvoiceGenerated(ctx, o.ID); err != nil {
		logger.Error("mark invoice generated", logger.Fields{"order_id": o.ID, "err": err.Error()})
		return
	}
	metrics.InvoicesGeneratedTotal.Inc()
	logger.Info("invoice regenerated", logger.Fields{"order_id": o.ID})
}
