package service

import (
	"fmt"
	"time"

	"github.com/finintel/finintel/internal/model"
)

// Alert thresholds as fractions of the monthly budget.
const (
	dangerThreshold  = 90.0
	warningThreshold = 75.0
	// dailyOverspendFactor flags daily spending 20% above the pro-rated
	// daily budget (limit / 30).
	dailyOverspendFactor = 1.2
)

// EvaluateBudgets computes alerts for the current calendar month.
// expenses should be the user's expenses dated within the current
// month (day 1 through now); filtering by category happens here.
// The percentage and daily-average checks are independent, so a
// single budget can yield two alerts. Alerts are never persisted.
func EvaluateBudgets(budgets []*model.Budget, expenses []*model.Expense, now time.Time) []model.BudgetAlert {
	spentByCategory := make(map[string]float64)
	for _, e := range expenses {
		spentByCategory[e.Category] += e.Amount
	}

	alerts := make([]model.BudgetAlert, 0)
	dayOfMonth := float64(now.Day())

	for _, budget := range budgets {
		spent := spentByCategory[budget.Category]

		var spentPct float64
		if budget.Amount > 0 {
			spentPct = spent / budget.Amount * 100
		}

		switch {
		case spentPct >= dangerThreshold:
			alerts = append(alerts, model.BudgetAlert{
				Category: budget.Category,
				Severity: model.AlertDanger,
				Message:  fmt.Sprintf("Critical: You have spent %.1f%% of your %s budget", spentPct, budget.Category),
			})
		case spentPct >= warningThreshold:
			alerts = append(alerts, model.BudgetAlert{
				Category: budget.Category,
				Severity: model.AlertWarning,
				Message:  fmt.Sprintf("Warning: You have spent %.1f%% of your %s budget", spentPct, budget.Category),
			})
		}

		dailyAverage := spent / dayOfMonth
		dailyLimit := budget.Amount / 30

		if dailyAverage > dailyLimit*dailyOverspendFactor {
			alerts = append(alerts, model.BudgetAlert{
				Category: budget.Category,
				Severity: model.AlertInfo,
				Message:  fmt.Sprintf("Your daily spending in %s is higher than recommended", budget.Category),
			})
		}
	}

	return alerts
}
