package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/muscleoxy/checkout-service/internal/api"
	"github.com/muscleoxy/checkout-service/internal/api/handlers"
	"github.com/muscleoxy/checkout-service/internal/api/middleware"
	"github.com/muscleoxy/checkout-service/internal/cache"
	"github.com/muscleoxy/checkout-service/internal/config"
	"github.com/muscleoxy/checkout-service/internal/gateway"
	"github.com/muscleoxy/checkout-service/internal/invoice"
	"github.com/muscleoxy/checkout-service/internal/repository"
	"github.com/muscleoxy/checkout-service/internal/service"
	"github.com/muscleoxy/checkout-service/internal/worker"
	"github.com/muscleoxy/checkout-service/pkg/db"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	dbCfg, err := db.LoadPostgresConfig()
	if err != nil {
		log.Fatalf("db config: %v", err)
	}
	conn, err := db.NewPostgresConnection(dbCfg)
	if err != nil {
		log.Fatalf("db connect: %v", err)
	}
	defer conn.Close()

	if err := repository.InitSchema(context.Background(), conn); err != nil {
		log.Fatalf("db schema: %v", err)
	}
	if err := os.MkdirAll(cfg.InvoiceDir, 0o755); err != nil {
		log.Fatalf("invoice dir: %v", err)
	}

	products := repository.NewProductRepo(conn)
	coupons := repository.NewCouponRepo(conn)
	orders := repository.NewOrderRepo(conn)

	gw := gateway.New(cfg.RazorpayKeyID, cfg.RazorpayKeySecret)
	renderer := &invoice.Renderer{Dir: cfg.InvoiceDir}
	replays := cache.NewReplayCache()

	pricing := service.NewPricingService(products, coupons, gw, cfg.Mode)
	verification := service.NewVerificationService(orders, gw, renderer, replays, cfg.BaseURL, cfg.InvoiceTokenSecret)

	handler := api.NewRouter(
		handlers.NewOrderHandler(pricing, verification),
		handlers.NewInvoiceHandler(verification, cfg.InvoiceDir),
	)

	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Metrics)
	r.Mount("/", handler)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	workerCtx, stopWorker := context.WithCancel(context.Background())
	defer stopWorker()
	retry := &worker.InvoiceRetry{
		Orders:   orders,
		Renderer: renderer,
		Interval: time.Minute,
		Workers:  4,
	}
	go retry.Run(workerCtx)

	// graceful shutdown
	idleConnsClosed := make(chan struct{})
	go func() {
		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt)
		<-c
		stopWorker()
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			log.Printf("HTTP server Shutdown: %v", err)
		}
		close(idleConnsClosed)
	}()

	log.Printf("starting checkout-service on :%d (pricing mode %s)", cfg.Port, cfg.Mode)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("listen: %s\n", err)
	}

	<-idleConnsClosed
	log.Println("server stopped")
}
