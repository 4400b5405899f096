package service

import (
	"time"

	"github.com/finintel/finintel/internal/model"
)

// CategoryBreakdown is a category's share of total spending.
type CategoryBreakdown struct {
	Amount     float64 `json:"amount"`
	Percentage float64 `json:"percentage"`
}

// Analysis summarizes spending by category.
type Analysis struct {
	TotalSpent float64                      `json:"total_spent"`
	Breakdown  map[string]CategoryBreakdown `json:"breakdown"`
}

// TrendPoint is one month of the trailing spending trend.
type TrendPoint struct {
	Month  string  `json:"month"`
	Amount float64 `json:"amount"`
}

// AnalyzeExpenses computes the total and per-category breakdown.
// Empty input yields a zero total and an empty breakdown.
func AnalyzeExpenses(expenses []*model.Expense) *Analysis {
	analysis := &Analysis{Breakdown: make(map[string]CategoryBreakdown)}
	if len(expenses) == 0 {
		return analysis
	}

	categories := make(map[string]float64)
	for _, e := range expenses {
		categories[e.Category] += e.Amount
		analysis.TotalSpent += e.Amount
	}

	for category, amount := range categories {
		var pct float64
		if analysis.TotalSpent > 0 {
			pct = amount / analysis.TotalSpent * 100
		}
		analysis.Breakdown[category] = CategoryBreakdown{Amount: amount, Percentage: pct}
	}

	return analysis
}

// MonthlyTrend builds the trailing 12-month spending series. Every
// calendar month in the window appears, zero-filled, in chronological
// order with "Jan 2006" labels.
func MonthlyTrend(expenses []*model.Expense, now time.Time) []TrendPoint {
	start := now.AddDate(0, 0, -365)

	// Keyed by "2006-01" so expenses in any time zone land in the right
	// calendar month.
	totals := make(map[string]float64)
	var keys []string
	for m := model.MonthStart(start); !m.After(now); m = m.AddDate(0, 1, 0) {
		key := m.Format("2006-01")
		totals[key] = 0
		keys = append(keys, key)
	}

	for _, e := range expenses {
		if e.Date.Before(start) || e.Date.After(now) {
			continue
		}
		totals[e.Date.Format("2006-01")] += e.Amount
	}

	trend := make([]TrendPoint, 0, len(keys))
	for _, key := range keys {
		m, _ := time.Parse("2006-01", key)
		trend = append(trend, TrendPoint{
			Month:  m.Format("Jan 2006"),
			Amount: totals[key],
		})
	}

	return trend
}
