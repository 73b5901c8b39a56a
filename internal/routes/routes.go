package routes

import (
	"net/http"

	"SPENDWISE_BACK-END/internal/config"
	"SPENDWISE_BACK-END/internal/handlers"
	"SPENDWISE_BACK-END/internal/middleware"
)

// Handlers bundles everything SetupRoutes wires into the mux.
type Handlers struct {
	Auth        *handlers.AuthHandler
	GoogleAuth  *handlers.GoogleAuthHandler
	Health      *handlers.HealthHandler
	Categories  *handlers.CategoriesHandler
	Expenses    *handlers.ExpensesHandler
	QuickPrices *handlers.QuickPricesHandler
	Analytics   *handlers.AnalyticsHandler
}

// SetupRoutes configures all application routes
func SetupRoutes(mux *http.ServeMux, h Handlers, jwtCfg *config.JWTConfig) {
	protected := func(next http.HandlerFunc) http.HandlerFunc {
		return middleware.AuthMiddleware(next, jwtCfg)
	}

	// Health check routes
	mux.HandleFunc("/api/health", h.Health.HealthCheck)
	mux.HandleFunc("/healthz", h.Health.HealthCheck)
	mux.HandleFunc("/livez", h.Health.LivenessCheck)
	mux.HandleFunc("/readyz", h.Health.ReadinessCheck)

	// Authentication routes
	mux.HandleFunc("/api/auth/register", h.Auth.Register)
	mux.HandleFunc("/api/auth/login", h.Auth.Login)
	mux.HandleFunc("/api/auth/profile", protected(h.Auth.GetProfile))
	if h.GoogleAuth != nil {
		mux.HandleFunc("/api/auth/google/login", h.GoogleAuth.GoogleLogin)
		mux.HandleFunc("/api/auth/google/callback", h.GoogleAuth.GoogleCallback)
	}

	// Category routes
	mux.HandleFunc("/api/categories", protected(h.Categories.Collection))
	mux.HandleFunc("/api/categories/", protected(h.Categories.Item))

	// Expense routes
	mux.HandleFunc("/api/expenses", protected(h.Expenses.Collection))
	mux.HandleFunc("/api/expenses/", protected(h.Expenses.Item))

	// Quick price routes, including POST /api/quick-prices/:id/create-expense
	mux.HandleFunc("/api/quick-prices", protected(h.QuickPrices.Collection))
	mux.HandleFunc("/api/quick-prices/", protected(h.QuickPrices.Item))

	// Analytics routes
	mux.HandleFunc("/api/analytics/summary", protected(h.Analytics.Summary))
	mux.HandleFunc("/api/analytics/trends", protected(h.Analytics.Trends))
	mux.HandleFunc("/api/analytics/category-breakdown", protected(h.Analytics.CategoryBreakdown))
	mux.HandleFunc("/api/analytics/time-period", protected(h.Analytics.TimePeriod))

	// Root route
	mux.HandleFunc("/", rootHandler)
}

func rootHandler(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	w.Write([]byte("SpendWise backend is running."))
}
