package dto

// CategorySummary is the per-category slice of the analytics summary.
// Category is nil when the category was deleted after its expenses were
// recorded.
type CategorySummary struct {
	CategoryID string       `json:"category_id"`
	Category   *CategoryRef `json:"category"`
	Total      string       `json:"total"`
	Count      int          `json:"count"`
}

// SummaryResponse is the payload of GET /api/analytics/summary
type SummaryResponse struct {
	Total      string            `json:"total"`
	Count      int               `json:"count"`
	Average    string            `json:"average"`
	Min        string            `json:"min"`
	Max        string            `json:"max"`
	ByCategory []CategorySummary `json:"byCategory"`
}

// TrendPoint is one time bucket of the trends payload. Date is the bucket
// key (YYYY-MM-DD, YYYY-MM or YYYY depending on period).
type TrendPoint struct {
	Date  string `json:"date"`
	Total string `json:"total"`
	Count int    `json:"count"`
}

// TrendsResponse is the payload of GET /api/analytics/trends
type TrendsResponse struct {
	Period    string       `json:"period"`
	StartDate string       `json:"startDate"`
	EndDate   string       `json:"endDate"`
	Data      []TrendPoint `json:"data"`
}

// CategoryBreakdownItem is one category's share of total spending
type CategoryBreakdownItem struct {
	CategoryID string       `json:"category_id"`
	Category   *CategoryRef `json:"category"`
	Total      string       `json:"total"`
	Count      int          `json:"count"`
	Average    string       `json:"average"`
	Percentage float64      `json:"percentage"`
}

// CategoryBreakdownResponse is the payload of GET /api/analytics/category-breakdown
type CategoryBreakdownResponse struct {
	Total     string                  `json:"total"`
	Breakdown []CategoryBreakdownItem `json:"breakdown"`
}

// CategoryTotal is a category's total within a single time bucket
type CategoryTotal struct {
	CategoryID string `json:"category_id"`
	Total      string `json:"total"`
}

// TimePeriodPoint is one bucket of the time-period analysis: the trend point
// plus a per-category breakdown of that bucket
type TimePeriodPoint struct {
	Date       string          `json:"date"`
	Total      string          `json:"total"`
	Count      int             `json:"count"`
	ByCategory []CategoryTotal `json:"byCategory"`
}

// TimePeriodResponse is the payload of GET /api/analytics/time-period
type TimePeriodResponse struct {
	Period    string            `json:"period"`
	StartDate string            `json:"startDate"`
	EndDate   string            `json:"endDate"`
	Data      []TimePeriodPoint `json:"data"`
}
