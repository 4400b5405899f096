package service

import (
	"testing"
	"time"

	"github.com/finintel/finintel/internal/model"
)

func budgetFor(category string, amount float64) *model.Budget {
	return &model.Budget{
		ID:       "b-" + category,
		UserID:   "u1",
		Category: category,
		Amount:   amount,
		Month:    time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
	}
}

func expenseFor(category string, amount float64, date time.Time) *model.Expense {
	return &model.Expense{
		ID:       "e1",
		UserID:   "u1",
		Category: category,
		Amount:   amount,
		Date:     date,
	}
}

func TestEvaluateBudgetsThresholds(t *testing.T) {
	// Late in the month so the daily-average check stays quiet and the
	// percentage thresholds can be observed in isolation.
	now := time.Date(2025, 3, 28, 12, 0, 0, 0, time.UTC)
	date := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name         string
		spent        float64
		wantCount    int
		wantSeverity model.AlertSeverity
	}{
		{"at_danger_threshold", 9000, 1, model.AlertDanger},
		{"above_danger_threshold", 9500, 1, model.AlertDanger},
		{"at_warning_threshold", 7500, 1, model.AlertWarning},
		{"between_thresholds", 8000, 1, model.AlertWarning},
		{"below_warning_threshold", 5000, 0, ""},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			budgets := []*model.Budget{budgetFor("Food", 10000)}
			expenses := []*model.Expense{expenseFor("Food", test.spent, date)}

			alerts := EvaluateBudgets(budgets, expenses, now)
			if len(alerts) != test.wantCount {
				t.Fatalf("expected %d alerts, got %d: %+v", test.wantCount, len(alerts), alerts)
			}
			if test.wantCount > 0 && alerts[0].Severity != test.wantSeverity {
				t.Fatalf("expected severity %q, got %q", test.wantSeverity, alerts[0].Severity)
			}
		})
	}
}

func TestEvaluateBudgetsMessages(t *testing.T) {
	now := time.Date(2025, 3, 28, 12, 0, 0, 0, time.UTC)
	budgets := []*model.Budget{budgetFor("Food", 10000)}
	expenses := []*model.Expense{
		expenseFor("Food", 9000, time.Date(2025, 3, 5, 0, 0, 0, 0, time.UTC)),
	}

	alerts := EvaluateBudgets(budgets, expenses, now)
	if len(alerts) != 1 {
		t.Fatalf("expected 1 alert, got %d", len(alerts))
	}
	want := "Critical: You have spent 90.0% of your Food budget"
	if alerts[0].Message != want {
		t.Fatalf("expected message %q, got %q", want, alerts[0].Message)
	}
}

func TestEvaluateBudgetsDailyOverspend(t *testing.T) {
	// Early in the month: low percentage of the budget spent, but the
	// daily pace is well above the pro-rated limit.
	now := time.Date(2025, 3, 3, 12, 0, 0, 0, time.UTC)
	budgets := []*model.Budget{budgetFor("Food", 10000)}
	expenses := []*model.Expense{
		expenseFor("Food", 2000, time.Date(2025, 3, 2, 0, 0, 0, 0, time.UTC)),
	}

	alerts := EvaluateBudgets(budgets, expenses, now)
	if len(alerts) != 1 {
		t.Fatalf("expected 1 alert, got %d: %+v", len(alerts), alerts)
	}
	if alerts[0].Severity != model.AlertInfo {
		t.Fatalf("expected info severity, got %q", alerts[0].Severity)
	}
}

func TestEvaluateBudgetsBothChecksFire(t *testing.T) {
	// 90% spent by day 15 trips the danger threshold and the daily pace
	// check at once.
	now := time.Date(2025, 3, 15, 12, 0, 0, 0, time.UTC)
	budgets := []*model.Budget{budgetFor("Food", 10000)}
	expenses := []*model.Expense{
		expenseFor("Food", 9000, time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)),
	}

	alerts := EvaluateBudgets(budgets, expenses, now)
	if len(alerts) != 2 {
		t.Fatalf("expected 2 alerts, got %d: %+v", len(alerts), alerts)
	}
	if alerts[0].Severity != model.AlertDanger || alerts[1].Severity != model.AlertInfo {
		t.Fatalf("unexpected severities: %q, %q", alerts[0].Severity, alerts[1].Severity)
	}
}

func TestEvaluateBudgetsIgnoresOtherCategories(t *testing.T) {
	now := time.Date(2025, 3, 28, 12, 0, 0, 0, time.UTC)
	budgets := []*model.Budget{budgetFor("Food", 10000)}
	expenses := []*model.Expense{
		expenseFor("Travel", 9500, time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)),
	}

	if alerts := EvaluateBudgets(budgets, expenses, now); len(alerts) != 0 {
		t.Fatalf("expected no alerts, got %+v", alerts)
	}
}

func TestEvaluateBudgetsNoBudgets(t *testing.T) {
	now := time.Date(2025, 3, 28, 12, 0, 0, 0, time.UTC)
	expenses := []*model.Expense{
		expenseFor("Food", 9500, time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)),
	}

	alerts := EvaluateBudgets(nil, expenses, now)
	if alerts == nil || len(alerts) != 0 {
		t.Fatalf("expected empty non-nil slice, got %+v", alerts)
	}
}
