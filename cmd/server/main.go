package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/PabloST8/xcorte-sub001/internal/app"
	"github.com/PabloST8/xcorte-sub001/internal/config"
	"github.com/PabloST8/xcorte-sub001/internal/db"
	"github.com/PabloST8/xcorte-sub001/internal/jobs"
)

func main() {
	// For receiving Ctrl+C / SIGTERM
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load config
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// Connect DB. Without one the service runs on the fallback store alone.
	var pool *pgxpool.Pool
	if cfg.DBDSN != "" && !cfg.PrimaryStoreDisabled {
		pool, err = db.NewPool(ctx, cfg.DBDSN)
		if err != nil {
			log.Fatalf("failed to connect to db: %v", err)
		}
		defer pool.Close()
	} else {
		log.Println("WARN primary store disabled, bookings are kept in memory only")
	}

	// Init components
	container, err := app.NewContainer(app.Config{
		IsProduction:         cfg.IsProduction,
		ProdOrigins:          cfg.ProdOrigins,
		DBPool:               pool,
		JWTSecret:            cfg.JWTSecret,
		JWTTTL:               cfg.JWTAccessTokenTTL,
		BcryptCost:           cfg.BcryptCost,
		Location:             cfg.Location,
		ConflictMode:         cfg.ConflictMode,
		PrimaryPingTimeout:   cfg.PrimaryPingTimeout,
		PrimaryStoreDisabled: cfg.PrimaryStoreDisabled,
		MetricsEnabled:       cfg.MetricsEnabled,
	})
	if err != nil {
		log.Fatalf("failed to build app: %v", err)
	}

	// Periodic report of bookings that exist only in memory
	scheduler, err := jobs.NewScheduler(cfg.FallbackReportSchedule, container.BookingService)
	if err != nil {
		log.Fatalf("failed to schedule jobs: %v", err)
	}
	scheduler.Start()

	// Use http.Server for graceful shutdown
	server := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           container.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Run server in separate goroutine
	go func() {
		log.Printf("server running on %s", cfg.HTTPAddr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	// Wait for Ctrl+C
	<-ctx.Done()
	log.Println("shutdown signal received")

	// Create a shutdown context with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// Shutdown HTTP server
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("server forced to shutdown: %v", err)
	}

	scheduler.Stop()

	// Whatever is still in memory is lost with the process
	if n := jobs.ReportFallbackBacklog(container.BookingService); n > 0 {
		log.Printf("WARN %d fallback booking(s) discarded on shutdown", n)
	}

	log.Println("server exited gracefully")
}
