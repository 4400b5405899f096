package advice

import (
	"fmt"
	"strings"
	"time"

	"github.com/finintel/finintel/internal/model"
)

// summaryWindow is the trailing period summarized for chat context.
const summaryWindow = 6 * 30 * 24 * time.Hour

// BuildSummary formats a user's recent financial picture as plain text
// suitable for prefixing a chat prompt. Expenses outside the trailing
// six-month window are ignored; budgets and goals are always included.
// Returns "" when there is nothing to summarize.
func BuildSummary(expenses []*model.Expense, budgets []*model.Budget, goals []*model.Goal, now time.Time) string {
	cutoff := now.Add(-summaryWindow)

	var total float64
	byCategory := make(map[string]float64)
	var order []string

	for _, e := range expenses {
		if e.Date.Before(cutoff) || e.Date.After(now) {
			continue
		}
		if _, ok := byCategory[e.Category]; !ok {
			order = append(order, e.Category)
		}
		byCategory[e.Category] += e.Amount
		total += e.Amount
	}

	if total == 0 && len(budgets) == 0 && len(goals) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString("Context: the user's financial summary for the last 6 months.\n")

	if total > 0 {
		fmt.Fprintf(&b, "Total spent: %.2f\n", total)
		b.WriteString("Spending by category:\n")
		for _, category := range order {
			fmt.Fprintf(&b, "- %s: %.2f\n", category, byCategory[category])
		}
	}

	if len(budgets) > 0 {
		b.WriteString("Monthly budgets:\n")
		for _, budget := range budgets {
			fmt.Fprintf(&b, "- %s: %.2f (%s)\n", budget.Category, budget.Amount, budget.Month.Format("Jan 2006"))
		}
	}

	if len(goals) > 0 {
		b.WriteString("Savings goals:\n")
		for _, goal := range goals {
			fmt.Fprintf(&b, "- %s: %.2f of %.2f by %s\n",
				goal.Name, goal.CurrentAmount, goal.TargetAmount, goal.TargetDate.Format("2006-01-02"))
		}
	}

	return b.String()
}
