package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/finintel/finintel/internal/model"
)

// ErrExpenseNotFound indicates the expense does not exist or is not owned by the caller.
var ErrExpenseNotFound = errors.New("expense not found")

// SortOrder selects the date ordering for expense listings.
type SortOrder string

const (
	SortAsc  SortOrder = "ASC"
	SortDesc SortOrder = "DESC"
)

const expenseColumns = "id, user_id, amount, category, date, description, created_at, updated_at"

// CreateExpense inserts a new expense.
func (r *Repository) CreateExpense(ctx context.Context, expense *model.Expense) error {
	query := `
		INSERT INTO expenses (id, user_id, amount, category, date, description, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.pool.Exec(ctx, query,
		expense.ID,
		expense.UserID,
		expense.Amount,
		expense.Category,
		expense.Date,
		expense.Description,
		expense.CreatedAt,
		expense.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to create expense: %w", err)
	}

	return nil
}

// GetExpense retrieves an expense owned by the given user.
// Unowned rows are indistinguishable from missing ones.
func (r *Repository) GetExpense(ctx context.Context, id, userID string) (*model.Expense, error) {
	query := `SELECT ` + expenseColumns + ` FROM expenses WHERE id = $1 AND user_id = $2`

	expense, err := scanExpense(r.pool.QueryRow(ctx, query, id, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrExpenseNotFound
		}
		return nil, fmt.Errorf("failed to get expense: %w", err)
	}

	return expense, nil
}

// ListExpenses retrieves all expenses for a user ordered by date.
func (r *Repository) ListExpenses(ctx context.Context, userID string, order SortOrder) ([]*model.Expense, error) {
	if order != SortAsc {
		order = SortDesc
	}

	query := fmt.Sprintf("SELECT %s FROM expenses WHERE user_id = $1 ORDER BY date %s, id %s", expenseColumns, order, order)

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}
	defer rows.Close()

	return collectExpenses(rows)
}

// ListExpensesBetween retrieves a user's expenses dated within [from, to].
func (r *Repository) ListExpensesBetween(ctx context.Context, userID string, from, to time.Time) ([]*model.Expense, error) {
	query := `
		SELECT ` + expenseColumns + `
		FROM expenses
		WHERE user_id = $1 AND date BETWEEN $2 AND $3
		ORDER BY date ASC, id ASC
	`

	rows, err := r.pool.Query(ctx, query, userID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses between dates: %w", err)
	}
	defer rows.Close()

	return collectExpenses(rows)
}

// UpdateExpense updates an expense's mutable fields, scoped to the owner.
func (r *Repository) UpdateExpense(ctx context.Context, expense *model.Expense) error {
	query := `
		UPDATE expenses
		SET amount = $3, category = $4, date = $5, description = $6, updated_at = NOW()
		WHERE id = $1 AND user_id = $2
	`

	result, err := r.pool.Exec(ctx, query,
		expense.ID,
		expense.UserID,
		expense.Amount,
		expense.Category,
		expense.Date,
		expense.Description,
	)

	if err != nil {
		return fmt.Errorf("failed to update expense: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrExpenseNotFound
	}

	return nil
}

// DeleteExpense removes an expense, scoped to the owner.
func (r *Repository) DeleteExpense(ctx context.Context, id, userID string) error {
	query := `DELETE FROM expenses WHERE id = $1 AND user_id = $2`

	result, err := r.pool.Exec(ctx, query, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete expense: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrExpenseNotFound
	}

	return nil
}

// scanExpense scans a single row into an Expense model.
func scanExpense(row pgx.Row) (*model.Expense, error) {
	var expense model.Expense
	err := row.Scan(
		&expense.ID,
		&expense.UserID,
		&expense.Amount,
		&expense.Category,
		&expense.Date,
		&expense.Description,
		&expense.CreatedAt,
		&expense.UpdatedAt,
	)
	return &expense, err
}

// collectExpenses drains rows into a slice of expenses.
func collectExpenses(rows pgx.Rows) ([]*model.Expense, error) {
	var expenses []*model.Expense
	for rows.Next() {
		expense, err := scanExpense(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan expense: %w", err)
		}
		expenses = append(expenses, expense)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating expenses: %w", err)
	}

	return expenses, nil
}
