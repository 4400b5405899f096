package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/finintel/finintel/internal/model"
)

// Common errors for budget repository operations.
var (
	ErrBudgetNotFound = errors.New("budget not found")
	ErrBudgetExists   = errors.New("budget already set for this category and month")
)

const budgetColumns = "id, user_id, category, amount, month, created_at, updated_at"

// CreateBudget inserts a new budget.
// The (user_id, category, month) unique index enforces one budget per
// category per month.
func (r *Repository) CreateBudget(ctx context.Context, budget *model.Budget) error {
	query := `
		INSERT INTO budgets (id, user_id, category, amount, month, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.pool.Exec(ctx, query,
		budget.ID,
		budget.UserID,
		budget.Category,
		budget.Amount,
		budget.Month,
		budget.CreatedAt,
		budget.UpdatedAt,
	)

	if err != nil {
		if isUniqueViolation(err) {
			return ErrBudgetExists
		}
		return fmt.Errorf("failed to create budget: %w", err)
	}

	return nil
}

// GetBudget retrieves a budget owned by the given user.
func (r *Repository) GetBudget(ctx context.Context, id, userID string) (*model.Budget, error) {
	query := `SELECT ` + budgetColumns + ` FROM budgets WHERE id = $1 AND user_id = $2`

	budget, err := scanBudget(r.pool.QueryRow(ctx, query, id, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrBudgetNotFound
		}
		return nil, fmt.Errorf("failed to get budget: %w", err)
	}

	return budget, nil
}

// ListBudgets retrieves all budgets for a user.
func (r *Repository) ListBudgets(ctx context.Context, userID string) ([]*model.Budget, error) {
	query := `SELECT ` + budgetColumns + ` FROM budgets WHERE user_id = $1 ORDER BY month DESC, category ASC`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list budgets: %w", err)
	}
	defer rows.Close()

	var budgets []*model.Budget
	for rows.Next() {
		budget, err := scanBudget(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan budget: %w", err)
		}
		budgets = append(budgets, budget)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating budgets: %w", err)
	}

	return budgets, nil
}

// UpdateBudget updates a budget's mutable fields, scoped to the owner.
func (r *Repository) UpdateBudget(ctx context.Context, budget *model.Budget) error {
	query := `
		UPDATE budgets
		SET category = $3, amount = $4, month = $5, updated_at = NOW()
		WHERE id = $1 AND user_id = $2
	`

	result, err := r.pool.Exec(ctx, query,
		budget.ID,
		budget.UserID,
		budget.Category,
		budget.Amount,
		budget.Month,
	)

	if err != nil {
		if isUniqueViolation(err) {
			return ErrBudgetExists
		}
		return fmt.Errorf("failed to update budget: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrBudgetNotFound
	}

	return nil
}

// DeleteBudget removes a budget, scoped to the owner.
func (r *Repository) DeleteBudget(ctx context.Context, id, userID string) error {
	query := `DELETE FROM budgets WHERE id = $1 AND user_id = $2`

	result, err := r.pool.Exec(ctx, query, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete budget: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrBudgetNotFound
	}

	return nil
}

// scanBudget scans a single row into a Budget model.
func scanBudget(row pgx.Row) (*model.Budget, error) {
	var budget model.Budget
	err := row.Scan(
		&budget.ID,
		&budget.UserID,
		&budget.Category,
		&budget.Amount,
		&budget.Month,
		&budget.CreatedAt,
		&budget.UpdatedAt,
	)
	return &budget, err
}
