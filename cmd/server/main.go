package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/dukerupert/vanir/internal"
	"github.com/dukerupert/vanir/internal/handler/api"
	"github.com/dukerupert/vanir/internal/middleware"
	"github.com/dukerupert/vanir/internal/repository"
	"github.com/dukerupert/vanir/internal/router"
	"github.com/dukerupert/vanir/internal/service"
	"github.com/dukerupert/vanir/internal/telemetry"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"
)

func run() error {
	ctx := context.Background()

	// Load configuration
	cfg, err := internal.NewConfig()
	if err != nil {
		return fmt.Errorf("config initialization failed: %w", err)
	}

	// Configure logger
	logger := internal.NewLogger(os.Stdout, cfg.Env, cfg.LogLevel)

	// Initialize database/sql connection for migrations
	logger.Info("Connecting to database...")
	sqlDB, err := sql.Open("pgx", cfg.DatabaseUrl)
	if err != nil {
		return fmt.Errorf("database connection failed: %w", err)
	}
	defer sqlDB.Close()

	if err := sqlDB.Ping(); err != nil {
		return fmt.Errorf("database ping failed: %w", err)
	}
	logger.Info("Database connection established")

	// Run migrations
	logger.Info("Running database migrations...")
	if err := internal.RunMigrations(sqlDB); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}
	logger.Info("Database migrations completed successfully")

	// Initialize pgx connection pool for application
	pool, err := pgxpool.New(ctx, cfg.DatabaseUrl)
	if err != nil {
		return fmt.Errorf("failed to create connection pool: %w", err)
	}
	defer pool.Close()

	// Initialize repository
	store := repository.NewStore(pool)

	// Initialize telemetry
	businessMetrics := telemetry.NewMetrics("vanir")
	httpMetrics := middleware.NewMetrics("vanir")

	// Initialize services
	pricing := service.PricingConfig{
		FreeShippingThresholdCents: cfg.Pricing.FreeShippingThresholdCents,
		FlatShippingFeeCents:       cfg.Pricing.FlatShippingFeeCents,
		CashSurchargeBps:           cfg.Pricing.CashSurchargeBps,
		Currency:                   cfg.Pricing.Currency,
	}

	cartService := service.NewCartService(store)
	availabilityService := service.NewAvailabilityService(store)
	couponResolver := service.NewCouponResolver(store)
	ledger := service.NewLedger(businessMetrics)
	checkoutService := service.NewCheckoutService(store, couponResolver, ledger, pricing, businessMetrics, logger)
	logger.Info("Services initialized",
		"free_shipping_threshold_cents", pricing.FreeShippingThresholdCents,
		"flat_shipping_fee_cents", pricing.FlatShippingFeeCents,
		"cash_surcharge_bps", pricing.CashSurchargeBps,
		"currency", pricing.Currency)

	// Initialize handlers
	cartHandler := api.NewCartHandler(cartService, availabilityService, pricing, logger)
	checkoutHandler := api.NewCheckoutHandler(checkoutService, logger)

	// ==========================================================================
	// Create router and register routes
	// ==========================================================================

	r := router.New(
		router.Recovery(logger),
		middleware.RequestID,
		httpMetrics.Middleware,
		router.Logger(logger),
	)

	// Metrics endpoint (no auth required, but should be protected in production via firewall)
	r.Get("/metrics", func(w http.ResponseWriter, req *http.Request) {
		httpMetrics.Handler().ServeHTTP(w, req)
	})

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, req *http.Request) {
		if err := pool.Ping(req.Context()); err != nil {
			http.Error(w, "database unreachable", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// API routes require an owner identity from the upstream gateway
	apiRouter := r.Group(
		middleware.OwnerID,
		middleware.WithRequestLogger(logger),
	)
	cartHandler.RegisterRoutes(apiRouter)
	checkoutHandler.RegisterRoutes(apiRouter)

	// ==========================================================================
	// Start server
	// ==========================================================================

	addr := fmt.Sprintf(":%d", cfg.Port)
	logger.Info("Starting server", "address", addr, "env", cfg.Env)

	if err := http.ListenAndServe(addr, r); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}

	return nil
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}
