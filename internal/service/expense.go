package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/finintel/finintel/internal/metrics"
	"github.com/finintel/finintel/internal/model"
	"github.com/finintel/finintel/internal/repository"
)

// Expense service errors.
var (
	ErrInvalidAmount   = errors.New("amount must be positive")
	ErrInvalidCategory = errors.New("category is required")
	ErrExpenseNotFound = errors.New("expense not found")
)

const maxCategoryLength = 50

// ExpenseService handles expense CRUD and analysis.
type ExpenseService struct {
	repo    *repository.Repository
	metrics metrics.Recorder
}

// NewExpenseService creates a new ExpenseService.
func NewExpenseService(repo *repository.Repository, recorder metrics.Recorder) *ExpenseService {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return &ExpenseService{repo: repo, metrics: recorder}
}

// ExpenseInput defines input for creating or updating an expense.
type ExpenseInput struct {
	Amount      float64
	Category    string
	Date        time.Time
	Description string
}

// validate checks the shared create/update constraints.
func (in *ExpenseInput) validate() error {
	if in.Amount <= 0 {
		return ErrInvalidAmount
	}
	in.Category = strings.TrimSpace(in.Category)
	if in.Category == "" || len(in.Category) > maxCategoryLength {
		return ErrInvalidCategory
	}
	return nil
}

// Create records a new expense for the user.
func (s *ExpenseService) Create(ctx context.Context, userID string, input ExpenseInput) (*model.Expense, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	expense := &model.Expense{
		ID:          newID(),
		UserID:      userID,
		Amount:      input.Amount,
		Category:    input.Category,
		Date:        input.Date,
		Description: input.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.CreateExpense(ctx, expense); err != nil {
		return nil, fmt.Errorf("create expense: %w", err)
	}

	s.metrics.IncExpenseCreated()

	return expense, nil
}

// Update replaces an expense's fields. Ownership is enforced: updating
// another user's expense reports not-found.
func (s *ExpenseService) Update(ctx context.Context, userID, id string, input ExpenseInput) (*model.Expense, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	expense, err := s.repo.GetExpense(ctx, id, userID)
	if err != nil {
		if errors.Is(err, repository.ErrExpenseNotFound) {
			return nil, ErrExpenseNotFound
		}
		return nil, err
	}

	expense.Amount = input.Amount
	expense.Category = input.Category
	expense.Date = input.Date
	expense.Description = input.Description

	if err := s.repo.UpdateExpense(ctx, expense); err != nil {
		if errors.Is(err, repository.ErrExpenseNotFound) {
			return nil, ErrExpenseNotFound
		}
		return nil, fmt.Errorf("update expense: %w", err)
	}

	s.metrics.IncExpenseUpdated()

	return expense, nil
}

// Delete removes an expense, scoped to the owner.
func (s *ExpenseService) Delete(ctx context.Context, userID, id string) error {
	if err := s.repo.DeleteExpense(ctx, id, userID); err != nil {
		if errors.Is(err, repository.ErrExpenseNotFound) {
			return ErrExpenseNotFound
		}
		return fmt.Errorf("delete expense: %w", err)
	}

	s.metrics.IncExpenseDeleted()

	return nil
}

// List returns the user's expenses, most recent first.
func (s *ExpenseService) List(ctx context.Context, userID string) ([]*model.Expense, error) {
	return s.repo.ListExpenses(ctx, userID, repository.SortDesc)
}

// AnalysisResult is the full analysis payload: category breakdown plus
// the trailing 12-month trend.
type AnalysisResult struct {
	TotalSpent   float64                      `json:"total_spent"`
	Breakdown    map[string]CategoryBreakdown `json:"breakdown"`
	MonthlyTrend []TrendPoint                 `json:"monthly_trend"`
}

// Analyze computes the user's spending breakdown and monthly trend.
func (s *ExpenseService) Analyze(ctx context.Context, userID string) (*AnalysisResult, error) {
	expenses, err := s.repo.ListExpenses(ctx, userID, repository.SortAsc)
	if err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}

	now := time.Now().UTC()
	analysis := AnalyzeExpenses(expenses)

	return &AnalysisResult{
		TotalSpent:   analysis.TotalSpent,
		Breakdown:    analysis.Breakdown,
		MonthlyTrend: MonthlyTrend(expenses, now),
	}, nil
}
