// @title SpendWise Backend API
// @version 1.0
// @description SpendWise Backend API for personal expense tracking
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.url http://www.swagger.io/support
// @contact.email support@swagger.io

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /
// @schemes http https

package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/cors"

	"SPENDWISE_BACK-END/internal/config"
	"SPENDWISE_BACK-END/internal/handlers"
	"SPENDWISE_BACK-END/internal/middleware"
	"SPENDWISE_BACK-END/internal/migrations"
	"SPENDWISE_BACK-END/internal/routes"
	"SPENDWISE_BACK-END/internal/service"
	"SPENDWISE_BACK-END/internal/store"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	// pgxpool + simple protocol (needed when connecting through PgBouncer)
	poolCfg, err := pgxpool.ParseConfig(cfg.GetDSN())
	if err != nil {
		log.Fatalf("parse dsn: %v", err)
	}
	poolCfg.ConnConfig.DefaultQueryExecMode = pgx.QueryExecModeSimpleProtocol
	poolCfg.ConnConfig.RuntimeParams["application_name"] = "spendwise-backend"
	poolCfg.ConnConfig.RuntimeParams["statement_timeout"] = "30000" // 30s
	poolCfg.MaxConns = cfg.Database.MaxConns
	poolCfg.MinConns = cfg.Database.MinConns
	poolCfg.MaxConnLifetime = cfg.Database.MaxLifetime

	pool, err := pgxpool.NewWithConfig(context.Background(), poolCfg)
	if err != nil {
		log.Fatalf("connect: %v", err)
	}
	defer pool.Close()

	{
		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
		defer cancel()
		if err := pool.Ping(ctx); err != nil {
			log.Fatalf("ping: %v", err)
		}
	}

	if err := migrations.Up(pool); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	// --- Stores and services ---

	users := store.NewPostgresUserStore(pool)
	categories := store.NewPostgresCategoryStore(pool)
	expenses := store.NewPostgresExpenseStore(pool)
	quickPrices := store.NewPostgresQuickPriceStore(pool)

	authService := service.NewAuthService(users, &cfg.JWT)
	categoryService := service.NewCategoryService(categories, expenses, quickPrices)
	expenseService := service.NewExpenseService(expenses, categories)
	quickPriceService := service.NewQuickPriceService(quickPrices, expenses, categories)
	analyticsService := service.NewAnalyticsService(expenses, categories)

	// --- HTTP Handlers ---

	h := routes.Handlers{
		Auth:        handlers.NewAuthHandler(authService),
		Health:      handlers.NewHealthHandler(pool),
		Categories:  handlers.NewCategoriesHandler(categoryService),
		Expenses:    handlers.NewExpensesHandler(expenseService),
		QuickPrices: handlers.NewQuickPricesHandler(quickPriceService),
		Analytics:   handlers.NewAnalyticsHandler(analyticsService),
	}
	if cfg.IsGoogleOAuthConfigured() {
		h.GoogleAuth = handlers.NewGoogleAuthHandler(authService, cfg)
	} else {
		slog.Warn("Google OAuth credentials not configured, Google login disabled")
	}

	mux := http.NewServeMux()
	routes.SetupRoutes(mux, h, &cfg.JWT)

	// --- HTTP Server + Graceful Shutdown ---

	c := cors.New(cors.Options{
		AllowedOrigins:   cfg.CORS.AllowedOrigins,
		AllowedMethods:   cfg.CORS.AllowedMethods,
		AllowedHeaders:   cfg.CORS.AllowedHeaders,
		AllowCredentials: cfg.CORS.AllowCredentials,
	})
	handler := c.Handler(middleware.RequestLogger(mux))

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
	}

	go func() {
		slog.Info("HTTP server listening", "port", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("ListenAndServe: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	slog.Info("Shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server shutdown error", "error", err)
	}
	slog.Info("Server stopped")
}
