package service

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"SPENDWISE_BACK-END/internal/apperr"
	"SPENDWISE_BACK-END/internal/dto"
	"SPENDWISE_BACK-END/internal/models"
	"SPENDWISE_BACK-END/internal/store"
	"SPENDWISE_BACK-END/internal/utils"
)

// Aggregation periods accepted by the analytics endpoints
const (
	PeriodDaily   = "daily"
	PeriodWeekly  = "weekly"
	PeriodMonthly = "monthly"
	PeriodYearly  = "yearly"
)

// AnalyticsService aggregates a user's expenses into summaries, trends and
// category breakdowns
type AnalyticsService struct {
	expenses   store.ExpenseStore
	categories store.CategoryStore
	// now is swappable so tests can pin the default window
	now func() time.Time
}

// NewAnalyticsService creates a new AnalyticsService
func NewAnalyticsService(expenses store.ExpenseStore, categories store.CategoryStore) *AnalyticsService {
	return &AnalyticsService{expenses: expenses, categories: categories, now: time.Now}
}

// AnalyticsQuery carries the raw analytics filters as received in the query
// string
type AnalyticsQuery struct {
	StartDate string
	EndDate   string
	Period    string
}

// parseRange parses and validates the optional date bounds. A start after
// the end is a BadRequest on every analytics endpoint.
func parseRange(q AnalyticsQuery) (*time.Time, *time.Time, error) {
	var start, end *time.Time
	if q.StartDate != "" {
		t, err := utils.ParseDate(q.StartDate)
		if err != nil {
			return nil, nil, apperr.BadRequest("Invalid start date: use YYYY-MM-DD or RFC3339")
		}
		start = &t
	}
	if q.EndDate != "" {
		t, err := utils.ParseDate(q.EndDate)
		if err != nil {
			return nil, nil, apperr.BadRequest("Invalid end date: use YYYY-MM-DD or RFC3339")
		}
		end = &t
	}
	if start != nil && end != nil && start.After(*end) {
		return nil, nil, apperr.BadRequest("Start date must be before end date")
	}
	return start, end, nil
}

func parsePeriod(s, fallback string) (string, error) {
	switch s {
	case "":
		return fallback, nil
	case PeriodDaily, PeriodWeekly, PeriodMonthly, PeriodYearly:
		return s, nil
	default:
		return "", apperr.BadRequest("Time period must be one of: daily, weekly, monthly, yearly")
	}
}

// bucketKey returns the bucket key for t under the given period, in UTC:
// daily YYYY-MM-DD, weekly the YYYY-MM-DD of the ISO week's Monday,
// monthly YYYY-MM, yearly YYYY. Lexicographic order on these keys is
// chronological order.
func bucketKey(t time.Time, period string) string {
	t = t.UTC()
	switch period {
	case PeriodWeekly:
		weekday := int(t.Weekday())
		if weekday == 0 {
			weekday = 7 // ISO weeks start Monday, Sunday belongs to the prior Monday
		}
		monday := t.AddDate(0, 0, -(weekday - 1))
		return monday.Format("2006-01-02")
	case PeriodMonthly:
		return t.Format("2006-01")
	case PeriodYearly:
		return t.Format("2006")
	default:
		return t.Format("2006-01-02")
	}
}

// bucketBounds returns the inclusive start and end instants of the bucket
// identified by key. The end sits just before the next bucket starts.
func bucketBounds(key, period string) (time.Time, time.Time) {
	var start, next time.Time
	switch period {
	case PeriodWeekly:
		start, _ = time.Parse("2006-01-02", key)
		next = start.AddDate(0, 0, 7)
	case PeriodMonthly:
		start, _ = time.Parse("2006-01", key)
		next = start.AddDate(0, 1, 0)
	case PeriodYearly:
		start, _ = time.Parse("2006", key)
		next = start.AddDate(1, 0, 0)
	default:
		start, _ = time.Parse("2006-01-02", key)
		next = start.AddDate(0, 0, 1)
	}
	return start, next.Add(-time.Millisecond)
}

type bucket struct {
	key   string
	total decimal.Decimal
	count int
}

// groupByPeriod buckets expenses by period key, sorted ascending by key
func groupByPeriod(expenses []models.Expense, period string) []bucket {
	grouped := map[string]*bucket{}
	for _, e := range expenses {
		key := bucketKey(e.Date, period)
		b, ok := grouped[key]
		if !ok {
			b = &bucket{key: key}
			grouped[key] = b
		}
		b.total = b.total.Add(e.Amount)
		b.count++
	}
	out := make([]bucket, 0, len(grouped))
	for _, b := range grouped {
		out = append(out, *b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].key < out[j].key })
	return out
}

type categoryAgg struct {
	id    uuid.UUID
	total decimal.Decimal
	count int
}

// groupByCategory aggregates expenses per category, sorted by total
// descending with the category id as tie-breaker for stable output
func groupByCategory(expenses []models.Expense) []categoryAgg {
	grouped := map[uuid.UUID]*categoryAgg{}
	for _, e := range expenses {
		a, ok := grouped[e.CategoryID]
		if !ok {
			a = &categoryAgg{id: e.CategoryID}
			grouped[e.CategoryID] = a
		}
		a.total = a.total.Add(e.Amount)
		a.count++
	}
	out := make([]categoryAgg, 0, len(grouped))
	for _, a := range grouped {
		out = append(out, *a)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].total.Equal(out[j].total) {
			return out[i].total.GreaterThan(out[j].total)
		}
		return out[i].id.String() < out[j].id.String()
	})
	return out
}

// categoryRefs loads the descriptors for the given aggregates. Categories
// deleted since their expenses were recorded map to nil.
func (s *AnalyticsService) categoryRefs(ctx context.Context, aggs []categoryAgg) (map[uuid.UUID]*models.Category, error) {
	ids := make([]uuid.UUID, 0, len(aggs))
	for _, a := range aggs {
		ids = append(ids, a.id)
	}
	rows, err := s.categories.ListByIDs(ctx, ids)
	if err != nil {
		return nil, apperr.Internal("Failed to load categories", err)
	}
	out := map[uuid.UUID]*models.Category{}
	for i := range rows {
		out[rows[i].ID] = &rows[i]
	}
	return out, nil
}

// Summary computes count, sum, average, min and max over the matching
// expenses plus a per-category breakdown. Empty result sets yield zeros.
func (s *AnalyticsService) Summary(ctx context.Context, userID uuid.UUID, query AnalyticsQuery) (*dto.SummaryResponse, error) {
	start, end, err := parseRange(query)
	if err != nil {
		return nil, err
	}
	expenses, err := s.expenses.ListByDateRange(ctx, userID, start, end)
	if err != nil {
		return nil, apperr.Internal("Failed to load expenses", err)
	}

	total := decimal.Zero
	min := decimal.Zero
	max := decimal.Zero
	for i, e := range expenses {
		total = total.Add(e.Amount)
		if i == 0 || e.Amount.LessThan(min) {
			min = e.Amount
		}
		if e.Amount.GreaterThan(max) {
			max = e.Amount
		}
	}
	average := decimal.Zero
	if len(expenses) > 0 {
		average = total.Div(decimal.NewFromInt(int64(len(expenses))))
	}

	aggs := groupByCategory(expenses)
	refs, err := s.categoryRefs(ctx, aggs)
	if err != nil {
		return nil, err
	}
	byCategory := make([]dto.CategorySummary, 0, len(aggs))
	for _, a := range aggs {
		byCategory = append(byCategory, dto.CategorySummary{
			CategoryID: a.id.String(),
			Category:   dto.NewCategoryRef(refs[a.id]),
			Total:      a.total.String(),
			Count:      a.count,
		})
	}

	return &dto.SummaryResponse{
		Total:      total.String(),
		Count:      len(expenses),
		Average:    average.String(),
		Min:        min.String(),
		Max:        max.String(),
		ByCategory: byCategory,
	}, nil
}

// Trends buckets the matching expenses by period. The window defaults to
// the 30 days ending at endDate (now when absent).
func (s *AnalyticsService) Trends(ctx context.Context, userID uuid.UUID, query AnalyticsQuery) (*dto.TrendsResponse, error) {
	start, end, err := parseRange(query)
	if err != nil {
		return nil, err
	}
	period, err := parsePeriod(query.Period, PeriodDaily)
	if err != nil {
		return nil, err
	}

	windowEnd := s.now().UTC()
	if end != nil {
		windowEnd = *end
	}
	windowStart := windowEnd.AddDate(0, 0, -30)
	if start != nil {
		windowStart = *start
	}

	expenses, err := s.expenses.ListByDateRange(ctx, userID, &windowStart, &windowEnd)
	if err != nil {
		return nil, apperr.Internal("Failed to load expenses", err)
	}

	buckets := groupByPeriod(expenses, period)
	data := make([]dto.TrendPoint, 0, len(buckets))
	for _, b := range buckets {
		data = append(data, dto.TrendPoint{Date: b.key, Total: b.total.String(), Count: b.count})
	}

	return &dto.TrendsResponse{
		Period:    period,
		StartDate: utils.FormatTimestamp(windowStart),
		EndDate:   utils.FormatTimestamp(windowEnd),
		Data:      data,
	}, nil
}

// CategoryBreakdown aggregates per category with averages and each
// category's percentage of the grand total, sorted by total descending.
func (s *AnalyticsService) CategoryBreakdown(ctx context.Context, userID uuid.UUID, query AnalyticsQuery) (*dto.CategoryBreakdownResponse, error) {
	start, end, err := parseRange(query)
	if err != nil {
		return nil, err
	}
	expenses, err := s.expenses.ListByDateRange(ctx, userID, start, end)
	if err != nil {
		return nil, apperr.Internal("Failed to load expenses", err)
	}

	aggs := groupByCategory(expenses)
	grandTotal := decimal.Zero
	for _, a := range aggs {
		grandTotal = grandTotal.Add(a.total)
	}

	refs, err := s.categoryRefs(ctx, aggs)
	if err != nil {
		return nil, err
	}

	breakdown := make([]dto.CategoryBreakdownItem, 0, len(aggs))
	for _, a := range aggs {
		percentage := 0.0
		if grandTotal.IsPositive() {
			percentage = a.total.Div(grandTotal).Mul(decimal.NewFromInt(100)).InexactFloat64()
		}
		breakdown = append(breakdown, dto.CategoryBreakdownItem{
			CategoryID: a.id.String(),
			Category:   dto.NewCategoryRef(refs[a.id]),
			Total:      a.total.String(),
			Count:      a.count,
			Average:    a.total.Div(decimal.NewFromInt(int64(a.count))).String(),
			Percentage: percentage,
		})
	}

	return &dto.CategoryBreakdownResponse{
		Total:     grandTotal.String(),
		Breakdown: breakdown,
	}, nil
}

// TimePeriodAnalysis buckets expenses like Trends, then re-queries each
// bucket's own window for a per-category breakdown. Default windows depend
// on the period: 30 days, 12 weeks, 12 months or 5 years ending at endDate.
func (s *AnalyticsService) TimePeriodAnalysis(ctx context.Context, userID uuid.UUID, query AnalyticsQuery) (*dto.TimePeriodResponse, error) {
	start, end, err := parseRange(query)
	if err != nil {
		return nil, err
	}
	period, err := parsePeriod(query.Period, PeriodMonthly)
	if err != nil {
		return nil, err
	}

	windowEnd := s.now().UTC()
	if end != nil {
		windowEnd = *end
	}
	var windowStart time.Time
	if start != nil {
		windowStart = *start
	} else {
		switch period {
		case PeriodWeekly:
			windowStart = windowEnd.AddDate(0, 0, -12*7)
		case PeriodMonthly:
			windowStart = windowEnd.AddDate(0, -12, 0)
		case PeriodYearly:
			windowStart = windowEnd.AddDate(-5, 0, 0)
		default:
			windowStart = windowEnd.AddDate(0, 0, -30)
		}
	}

	expenses, err := s.expenses.ListByDateRange(ctx, userID, &windowStart, &windowEnd)
	if err != nil {
		return nil, apperr.Internal("Failed to load expenses", err)
	}

	buckets := groupByPeriod(expenses, period)
	data := make([]dto.TimePeriodPoint, 0, len(buckets))
	for _, b := range buckets {
		bucketStart, bucketEnd := bucketBounds(b.key, period)
		bucketExpenses, err := s.expenses.ListByDateRange(ctx, userID, &bucketStart, &bucketEnd)
		if err != nil {
			return nil, apperr.Internal("Failed to load expenses", err)
		}
		aggs := groupByCategory(bucketExpenses)
		byCategory := make([]dto.CategoryTotal, 0, len(aggs))
		for _, a := range aggs {
			byCategory = append(byCategory, dto.CategoryTotal{
				CategoryID: a.id.String(),
				Total:      a.total.String(),
			})
		}
		data = append(data, dto.TimePeriodPoint{
			Date:       b.key,
			Total:      b.total.String(),
			Count:      b.count,
			ByCategory: byCategory,
		})
	}

	return &dto.TimePeriodResponse{
		Period:    period,
		StartDate: utils.FormatTimestamp(windowStart),
		EndDate:   utils.FormatTimestamp(windowEnd),
		Data:      data,
	}, nil
}
