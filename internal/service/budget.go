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

// Budget service errors.
var (
	ErrBudgetNotFound = errors.New("budget not found")
	ErrBudgetExists   = errors.New("budget already set for this category and month")
)

// BudgetService handles budget CRUD and alert evaluation.
type BudgetService struct {
	repo    *repository.Repository
	metrics metrics.Recorder
}

// NewBudgetService creates a new BudgetService.
func NewBudgetService(repo *repository.Repository, recorder metrics.Recorder) *BudgetService {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return &BudgetService{repo: repo, metrics: recorder}
}

// BudgetInput defines input for creating or updating a budget.
type BudgetInput struct {
	Category string
	Amount   float64
	Month    time.Time
}

func (in *BudgetInput) validate() error {
	if in.Amount <= 0 {
		return ErrInvalidAmount
	}
	in.Category = strings.TrimSpace(in.Category)
	if in.Category == "" || len(in.Category) > maxCategoryLength {
		return ErrInvalidCategory
	}
	in.Month = model.MonthStart(in.Month)
	return nil
}

// Create sets a monthly budget for a category.
func (s *BudgetService) Create(ctx context.Context, userID string, input BudgetInput) (*model.Budget, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	budget := &model.Budget{
		ID:        newID(),
		UserID:    userID,
		Category:  input.Category,
		Amount:    input.Amount,
		Month:     input.Month,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.CreateBudget(ctx, budget); err != nil {
		if errors.Is(err, repository.ErrBudgetExists) {
			return nil, ErrBudgetExists
		}
		return nil, fmt.Errorf("create budget: %w", err)
	}

	return budget, nil
}

// Update replaces a budget's fields, scoped to the owner.
func (s *BudgetService) Update(ctx context.Context, userID, id string, input BudgetInput) (*model.Budget, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	budget, err := s.repo.GetBudget(ctx, id, userID)
	if err != nil {
		if errors.Is(err, repository.ErrBudgetNotFound) {
			return nil, ErrBudgetNotFound
		}
		return nil, err
	}

	budget.Category = input.Category
	budget.Amount = input.Amount
	budget.Month = input.Month

	if err := s.repo.UpdateBudget(ctx, budget); err != nil {
		switch {
		case errors.Is(err, repository.ErrBudgetNotFound):
			return nil, ErrBudgetNotFound
		case errors.Is(err, repository.ErrBudgetExists):
			return nil, ErrBudgetExists
		}
		return nil, fmt.Errorf("update budget: %w", err)
	}

	return budget, nil
}

// Delete removes a budget, scoped to the owner.
func (s *BudgetService) Delete(ctx context.Context, userID, id string) error {
	if err := s.repo.DeleteBudget(ctx, id, userID); err != nil {
		if errors.Is(err, repository.ErrBudgetNotFound) {
			return ErrBudgetNotFound
		}
		return fmt.Errorf("delete budget: %w", err)
	}
	return nil
}

// List returns the user's budgets.
func (s *BudgetService) List(ctx context.Context, userID string) ([]*model.Budget, error) {
	return s.repo.ListBudgets(ctx, userID)
}

// CheckBudgetStatus evaluates alerts for the current calendar month.
// Alerts are recomputed on every call and never stored.
func (s *BudgetService) CheckBudgetStatus(ctx context.Context, userID string) ([]model.BudgetAlert, error) {
	now := time.Now().UTC()

	budgets, err := s.repo.ListBudgets(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list budgets: %w", err)
	}

	expenses, err := s.repo.ListExpensesBetween(ctx, userID, model.MonthStart(now), now)
	if err != nil {
		return nil, fmt.Errorf("list current-month expenses: %w", err)
	}

	alerts := EvaluateBudgets(budgets, expenses, now)
	for _, alert := range alerts {
		s.metrics.IncBudgetAlertEmitted(string(alert.Severity))
	}

	return alerts, nil
}
