package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"SPENDWISE_BACK-END/internal/config"
	"SPENDWISE_BACK-END/internal/handlers"
	"SPENDWISE_BACK-END/internal/routes"
	"SPENDWISE_BACK-END/internal/service"
	"SPENDWISE_BACK-END/internal/store/memory"
)

// newTestServer wires the full router over in-memory stores
func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	jwtCfg := &config.JWTConfig{Secret: "test-secret", AccessTokenTTL: time.Hour}
	users := memory.NewUserStore()
	categories := memory.NewCategoryStore()
	expenses := memory.NewExpenseStore()
	quickPrices := memory.NewQuickPriceStore()

	h := routes.Handlers{
		Auth:        handlers.NewAuthHandler(service.NewAuthService(users, jwtCfg)),
		Health:      handlers.NewHealthHandler(nil),
		Categories:  handlers.NewCategoriesHandler(service.NewCategoryService(categories, expenses, quickPrices)),
		Expenses:    handlers.NewExpensesHandler(service.NewExpenseService(expenses, categories)),
		QuickPrices: handlers.NewQuickPricesHandler(service.NewQuickPriceService(quickPrices, expenses, categories)),
		Analytics:   handlers.NewAnalyticsHandler(service.NewAnalyticsService(expenses, categories)),
	}

	mux := http.NewServeMux()
	routes.SetupRoutes(mux, h, jwtCfg)
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

type envelope struct {
	Success    bool            `json:"success"`
	Message    string          `json:"message"`
	Payload    json.RawMessage `json:"payload"`
	Error      string          `json:"error"`
	StatusCode int             `json:"statusCode"`
	Path       string          `json:"path"`
	Timestamp  string          `json:"timestamp"`
}

func doJSON(t *testing.T, method, url, token string, body any) (*http.Response, envelope) {
	t.Helper()

	var buf io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		buf = bytes.NewReader(raw)
	}
	req, err := http.NewRequest(method, url, buf)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var env envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	return resp, env
}

func registerUser(t *testing.T, baseURL, email string) string {
	t.Helper()
	resp, env := doJSON(t, http.MethodPost, baseURL+"/api/auth/register", "", map[string]string{
		"name":     "Test User",
		"email":    email,
		"password": "s3cret-pass",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var payload struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(env.Payload, &payload))
	require.NotEmpty(t, payload.Token)
	return payload.Token
}

func createCategory(t *testing.T, baseURL, token, name string) string {
	t.Helper()
	resp, env := doJSON(t, http.MethodPost, baseURL+"/api/categories", token, map[string]string{"name": name})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var payload struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(env.Payload, &payload))
	return payload.ID
}

func TestHealthEndpoint(t *testing.T) {
	srv := newTestServer(t)

	resp, env := doJSON(t, http.MethodGet, srv.URL+"/api/health", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, env.Success)

	var payload struct {
		Status  string `json:"status"`
		Service string `json:"service"`
	}
	require.NoError(t, json.Unmarshal(env.Payload, &payload))
	assert.Equal(t, "ok", payload.Status)
	assert.Equal(t, "spendwise-api", payload.Service)
}

func TestAuthFlow(t *testing.T) {
	srv := newTestServer(t)

	token := registerUser(t, srv.URL, "alice@example.com")

	t.Run("profile with token", func(t *testing.T) {
		resp, env := doJSON(t, http.MethodGet, srv.URL+"/api/auth/profile", token, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var payload struct {
			Email string `json:"email"`
		}
		require.NoError(t, json.Unmarshal(env.Payload, &payload))
		assert.Equal(t, "alice@example.com", payload.Email)
	})

	t.Run("duplicate registration conflicts", func(t *testing.T) {
		resp, env := doJSON(t, http.MethodPost, srv.URL+"/api/auth/register", "", map[string]string{
			"name":     "Impostor",
			"email":    "alice@example.com",
			"password": "other-pass",
		})
		require.Equal(t, http.StatusConflict, resp.StatusCode)
		assert.False(t, env.Success)
		assert.Equal(t, http.StatusConflict, env.StatusCode)
		assert.Equal(t, "/api/auth/register", env.Path)
	})

	t.Run("login with bad password", func(t *testing.T) {
		resp, _ := doJSON(t, http.MethodPost, srv.URL+"/api/auth/login", "", map[string]string{
			"email":    "alice@example.com",
			"password": "wrong",
		})
		require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("protected route without token", func(t *testing.T) {
		resp, env := doJSON(t, http.MethodGet, srv.URL+"/api/categories", "", nil)
		require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		assert.False(t, env.Success)
	})
}

func TestCategoryAndExpenseFlow(t *testing.T) {
	srv := newTestServer(t)
	token := registerUser(t, srv.URL, "alice@example.com")
	categoryID := createCategory(t, srv.URL, token, "Groceries")

	t.Run("create expense", func(t *testing.T) {
		resp, env := doJSON(t, http.MethodPost, srv.URL+"/api/expenses", token, map[string]any{
			"category_id": categoryID,
			"amount":      "42.50",
			"description": "weekly shop",
			"date":        "2024-03-15",
		})
		require.Equal(t, http.StatusCreated, resp.StatusCode)

		var payload struct {
			Amount   string `json:"amount"`
			Category *struct {
				Name string `json:"name"`
			} `json:"category"`
		}
		require.NoError(t, json.Unmarshal(env.Payload, &payload))
		assert.Equal(t, "42.5", payload.Amount)
		require.NotNil(t, payload.Category)
		assert.Equal(t, "Groceries", payload.Category.Name)
	})

	t.Run("list expenses with pagination envelope", func(t *testing.T) {
		resp, env := doJSON(t, http.MethodGet, srv.URL+"/api/expenses?page=1&limit=10", token, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var payload struct {
			Data       []json.RawMessage `json:"data"`
			Pagination struct {
				Page       int `json:"page"`
				Limit      int `json:"limit"`
				Total      int `json:"total"`
				TotalPages int `json:"totalPages"`
			} `json:"pagination"`
		}
		require.NoError(t, json.Unmarshal(env.Payload, &payload))
		assert.Len(t, payload.Data, 1)
		assert.Equal(t, 1, payload.Pagination.Total)
		assert.Equal(t, 1, payload.Pagination.TotalPages)
	})

	t.Run("category delete blocked while referenced", func(t *testing.T) {
		resp, _ := doJSON(t, http.MethodDelete, srv.URL+"/api/categories/"+categoryID, token, nil)
		require.Equal(t, http.StatusConflict, resp.StatusCode)
	})

	t.Run("expense amount must be positive", func(t *testing.T) {
		resp, env := doJSON(t, http.MethodPost, srv.URL+"/api/expenses", token, map[string]any{
			"category_id": categoryID,
			"amount":      "-5.00",
		})
		require.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.False(t, env.Success)
	})

	t.Run("another user cannot read the expense list owner data", func(t *testing.T) {
		otherToken := registerUser(t, srv.URL, "mallory@example.com")
		_, env := doJSON(t, http.MethodGet, srv.URL+"/api/expenses", otherToken, nil)

		var payload struct {
			Data []json.RawMessage `json:"data"`
		}
		require.NoError(t, json.Unmarshal(env.Payload, &payload))
		assert.Empty(t, payload.Data)
	})

	t.Run("foreign category read is forbidden", func(t *testing.T) {
		otherToken := registerUser(t, srv.URL, "eve@example.com")
		resp, _ := doJSON(t, http.MethodGet, srv.URL+"/api/categories/"+categoryID, otherToken, nil)
		require.Equal(t, http.StatusForbidden, resp.StatusCode)
	})
}

func TestQuickPriceFlow(t *testing.T) {
	srv := newTestServer(t)
	token := registerUser(t, srv.URL, "alice@example.com")
	categoryID := createCategory(t, srv.URL, token, "Coffee shops")

	resp, env := doJSON(t, http.MethodPost, srv.URL+"/api/quick-prices", token, map[string]any{
		"category_id": categoryID,
		"name":        "Morning espresso",
		"amount":      "3.50",
		"description": "double shot",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var quickPrice struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(env.Payload, &quickPrice))

	t.Run("instantiate into an expense", func(t *testing.T) {
		url := fmt.Sprintf("%s/api/quick-prices/%s/create-expense", srv.URL, quickPrice.ID)
		resp, env := doJSON(t, http.MethodPost, url, token, map[string]any{})
		require.Equal(t, http.StatusCreated, resp.StatusCode)

		var payload struct {
			Amount      string  `json:"amount"`
			CategoryID  string  `json:"category_id"`
			Description *string `json:"description"`
		}
		require.NoError(t, json.Unmarshal(env.Payload, &payload))
		assert.Equal(t, "3.5", payload.Amount)
		assert.Equal(t, categoryID, payload.CategoryID)
		require.NotNil(t, payload.Description)
		assert.Equal(t, "double shot", *payload.Description)
	})

	t.Run("instantiate unknown quick price", func(t *testing.T) {
		url := srv.URL + "/api/quick-prices/00000000-0000-0000-0000-000000000000/create-expense"
		resp, _ := doJSON(t, http.MethodPost, url, token, map[string]any{})
		require.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}

func TestAnalyticsEndpoints(t *testing.T) {
	srv := newTestServer(t)
	token := registerUser(t, srv.URL, "alice@example.com")
	groceriesID := createCategory(t, srv.URL, token, "Groceries")
	transportID := createCategory(t, srv.URL, token, "Transport")

	seed := func(categoryID, amount, date string) {
		resp, _ := doJSON(t, http.MethodPost, srv.URL+"/api/expenses", token, map[string]any{
			"category_id": categoryID,
			"amount":      amount,
			"date":        date,
		})
		require.Equal(t, http.StatusCreated, resp.StatusCode)
	}
	seed(groceriesID, "30.00", "2024-01-10")
	seed(groceriesID, "30.00", "2024-01-20")
	seed(transportID, "40.00", "2024-02-05")

	t.Run("summary", func(t *testing.T) {
		url := srv.URL + "/api/analytics/summary?startDate=2024-01-01&endDate=2024-02-28"
		resp, env := doJSON(t, http.MethodGet, url, token, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var payload struct {
			Total string `json:"total"`
			Count int    `json:"count"`
		}
		require.NoError(t, json.Unmarshal(env.Payload, &payload))
		assert.Equal(t, "100", payload.Total)
		assert.Equal(t, 3, payload.Count)
	})

	t.Run("category breakdown percentages", func(t *testing.T) {
		url := srv.URL + "/api/analytics/category-breakdown?startDate=2024-01-01&endDate=2024-02-28"
		resp, env := doJSON(t, http.MethodGet, url, token, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var payload struct {
			Total     string `json:"total"`
			Breakdown []struct {
				CategoryID string  `json:"category_id"`
				Total      string  `json:"total"`
				Percentage float64 `json:"percentage"`
			} `json:"breakdown"`
		}
		require.NoError(t, json.Unmarshal(env.Payload, &payload))
		require.Len(t, payload.Breakdown, 2)
		assert.Equal(t, groceriesID, payload.Breakdown[0].CategoryID)
		assert.InDelta(t, 60.0, payload.Breakdown[0].Percentage, 0.0001)
		assert.InDelta(t, 40.0, payload.Breakdown[1].Percentage, 0.0001)
	})

	t.Run("time period monthly buckets", func(t *testing.T) {
		url := srv.URL + "/api/analytics/time-period?period=monthly&startDate=2024-01-01&endDate=2024-02-28"
		resp, env := doJSON(t, http.MethodGet, url, token, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var payload struct {
			Period string `json:"period"`
			Data   []struct {
				Date  string `json:"date"`
				Total string `json:"total"`
				Count int    `json:"count"`
			} `json:"data"`
		}
		require.NoError(t, json.Unmarshal(env.Payload, &payload))
		assert.Equal(t, "monthly", payload.Period)
		require.Len(t, payload.Data, 2)
		assert.Equal(t, "2024-01", payload.Data[0].Date)
		assert.Equal(t, "60", payload.Data[0].Total)
		assert.Equal(t, 2, payload.Data[0].Count)
		assert.Equal(t, "2024-02", payload.Data[1].Date)
		assert.Equal(t, "40", payload.Data[1].Total)
	})

	t.Run("inverted range is rejected", func(t *testing.T) {
		url := srv.URL + "/api/analytics/trends?startDate=2024-02-01&endDate=2024-01-01"
		resp, env := doJSON(t, http.MethodGet, url, token, nil)
		require.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.False(t, env.Success)
	})
}
