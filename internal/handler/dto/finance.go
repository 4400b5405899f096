package dto

import (
	"errors"
	"time"

	"github.com/finintel/finintel/internal/model"
	"github.com/finintel/finintel/internal/service"
)

// Date layouts used across the finance API.
const (
	DateLayout  = "2006-01-02"
	MonthLayout = "2006-01"
)

// ErrInvalidDate indicates a date field that does not parse.
var ErrInvalidDate = errors.New("invalid date format, want YYYY-MM-DD")

// ParseDate parses a YYYY-MM-DD date field. Empty input yields the
// provided fallback.
func ParseDate(s string, fallback time.Time) (time.Time, error) {
	if s == "" {
		return fallback, nil
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return t, nil
}

// ExpenseRequest represents the request body for creating or updating
// an expense.
type ExpenseRequest struct {
	Amount      float64 `json:"amount"`
	Category    string  `json:"category"`
	Date        string  `json:"date,omitempty"`
	Description string  `json:"description,omitempty"`
}

// ExpenseResponse represents an expense in API responses.
type ExpenseResponse struct {
	ID          string    `json:"id"`
	Amount      float64   `json:"amount"`
	Category    string    `json:"category"`
	Date        string    `json:"date"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ToExpenseResponse converts an Expense model to ExpenseResponse DTO.
func ToExpenseResponse(expense *model.Expense) *ExpenseResponse {
	return &ExpenseResponse{
		ID:          expense.ID,
		Amount:      expense.Amount,
		Category:    expense.Category,
		Date:        expense.Date.Format(DateLayout),
		Description: expense.Description,
		CreatedAt:   expense.CreatedAt,
		UpdatedAt:   expense.UpdatedAt,
	}
}

// ToExpenseListResponse converts a slice of Expense models.
func ToExpenseListResponse(expenses []*model.Expense) []ExpenseResponse {
	responses := make([]ExpenseResponse, len(expenses))
	for i, expense := range expenses {
		responses[i] = *ToExpenseResponse(expense)
	}
	return responses
}

// BudgetRequest represents the request body for creating or updating a
// monthly category budget. Month is "YYYY-MM"; empty means the current
// month.
type BudgetRequest struct {
	Category string  `json:"category"`
	Amount   float64 `json:"amount"`
	Month    string  `json:"month,omitempty"`
}

// BudgetResponse represents a budget in API responses.
type BudgetResponse struct {
	ID        string    `json:"id"`
	Category  string    `json:"category"`
	Amount    float64   `json:"amount"`
	Month     string    `json:"month"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ToBudgetResponse converts a Budget model to BudgetResponse DTO.
func ToBudgetResponse(budget *model.Budget) *BudgetResponse {
	return &BudgetResponse{
		ID:        budget.ID,
		Category:  budget.Category,
		Amount:    budget.Amount,
		Month:     budget.Month.Format(MonthLayout),
		CreatedAt: budget.CreatedAt,
		UpdatedAt: budget.UpdatedAt,
	}
}

// ToBudgetListResponse converts a slice of Budget models.
func ToBudgetListResponse(budgets []*model.Budget) []BudgetResponse {
	responses := make([]BudgetResponse, len(budgets))
	for i, budget := range budgets {
		responses[i] = *ToBudgetResponse(budget)
	}
	return responses
}

// GoalRequest represents the request body for creating or updating a
// savings goal.
type GoalRequest struct {
	Name          string  `json:"name"`
	TargetAmount  float64 `json:"target_amount"`
	CurrentAmount float64 `json:"current_amount"`
	TargetDate    string  `json:"target_date"`
}

// GoalResponse represents a goal in API responses. SavingsPlan is nil
// when the target date is not in the future.
type GoalResponse struct {
	ID            string                   `json:"id"`
	Name          string                   `json:"name"`
	TargetAmount  float64                  `json:"target_amount"`
	CurrentAmount float64                  `json:"current_amount"`
	TargetDate    string                   `json:"target_date"`
	SavingsPlan   *service.GoalSavingsPlan `json:"savings_plan,omitempty"`
	CreatedAt     time.Time                `json:"created_at"`
	UpdatedAt     time.Time                `json:"updated_at"`
}

// ToGoalResponse converts a Goal model and its plan to GoalResponse.
func ToGoalResponse(goal *model.Goal, plan *service.GoalSavingsPlan) *GoalResponse {
	return &GoalResponse{
		ID:            goal.ID,
		Name:          goal.Name,
		TargetAmount:  goal.TargetAmount,
		CurrentAmount: goal.CurrentAmount,
		TargetDate:    goal.TargetDate.Format(DateLayout),
		SavingsPlan:   plan,
		CreatedAt:     goal.CreatedAt,
		UpdatedAt:     goal.UpdatedAt,
	}
}

// SIPRequest represents the request body for the SIP calculator.
type SIPRequest struct {
	MonthlyInvestment float64 `json:"monthly_investment"`
	ExpectedReturn    float64 `json:"expected_return"`
	Years             int     `json:"years"`
}
