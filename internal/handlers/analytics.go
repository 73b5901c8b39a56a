package handlers

import (
	"net/http"

	"SPENDWISE_BACK-END/internal/service"
	"SPENDWISE_BACK-END/internal/utils"
)

// AnalyticsHandler serves the aggregated spending views
type AnalyticsHandler struct {
	analytics *service.AnalyticsService
}

// NewAnalyticsHandler creates a new AnalyticsHandler
func NewAnalyticsHandler(analytics *service.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{analytics: analytics}
}

func analyticsQuery(r *http.Request) service.AnalyticsQuery {
	q := r.URL.Query()
	return service.AnalyticsQuery{
		StartDate: q.Get("startDate"),
		EndDate:   q.Get("endDate"),
		Period:    q.Get("period"),
	}
}

// Summary handles GET /api/analytics/summary
// @Summary Spending summary over an optional date range
// @Tags analytics
// @Produce json
// @Param startDate query string false "Inclusive lower bound (YYYY-MM-DD)"
// @Param endDate query string false "Inclusive upper bound (YYYY-MM-DD)"
// @Success 200 {object} dto.SummaryResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /api/analytics/summary [get]
func (h *AnalyticsHandler) Summary(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	summary, err := h.analytics.Summary(r.Context(), userID, analyticsQuery(r))
	if err != nil {
		utils.WriteAppError(w, r, err)
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, "Summary retrieved successfully", summary)
}

// Trends handles GET /api/analytics/trends
// @Summary Spending totals bucketed over time
// @Tags analytics
// @Produce json
// @Param startDate query string false "Inclusive lower bound (YYYY-MM-DD)"
// @Param endDate query string false "Inclusive upper bound (YYYY-MM-DD)"
// @Param period query string false "daily, weekly, monthly or yearly (default daily)"
// @Success 200 {object} dto.TrendsResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /api/analytics/trends [get]
func (h *AnalyticsHandler) Trends(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	trends, err := h.analytics.Trends(r.Context(), userID, analyticsQuery(r))
	if err != nil {
		utils.WriteAppError(w, r, err)
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, "Trends retrieved successfully", trends)
}

// CategoryBreakdown handles GET /api/analytics/category-breakdown
// @Summary Per-category totals with percentage shares
// @Tags analytics
// @Produce json
// @Param startDate query string false "Inclusive lower bound (YYYY-MM-DD)"
// @Param endDate query string false "Inclusive upper bound (YYYY-MM-DD)"
// @Success 200 {object} dto.CategoryBreakdownResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /api/analytics/category-breakdown [get]
func (h *AnalyticsHandler) CategoryBreakdown(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	breakdown, err := h.analytics.CategoryBreakdown(r.Context(), userID, analyticsQuery(r))
	if err != nil {
		utils.WriteAppError(w, r, err)
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, "Category breakdown retrieved successfully", breakdown)
}

// TimePeriod handles GET /api/analytics/time-period
// @Summary Bucketed totals with a per-bucket category split
// @Tags analytics
// @Produce json
// @Param startDate query string false "Inclusive lower bound (YYYY-MM-DD)"
// @Param endDate query string false "Inclusive upper bound (YYYY-MM-DD)"
// @Param period query string false "daily, weekly, monthly or yearly (default monthly)"
// @Success 200 {object} dto.TimePeriodResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /api/analytics/time-period [get]
func (h *AnalyticsHandler) TimePeriod(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	analysis, err := h.analytics.TimePeriodAnalysis(r.Context(), userID, analyticsQuery(r))
	if err != nil {
		utils.WriteAppError(w, r, err)
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, "Time period analysis retrieved successfully", analysis)
}
