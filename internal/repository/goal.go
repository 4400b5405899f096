package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/finintel/finintel/internal/model"
)

// ErrGoalNotFound indicates the goal does not exist or is not owned by the caller.
var ErrGoalNotFound = errors.New("goal not found")

const goalColumns = "id, user_id, name, target_amount, current_amount, target_date, created_at, updated_at"

// CreateGoal inserts a new goal.
func (r *Repository) CreateGoal(ctx context.Context, goal *model.Goal) error {
	query := `
		INSERT INTO goals (id, user_id, name, target_amount, current_amount, target_date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.pool.Exec(ctx, query,
		goal.ID,
		goal.UserID,
		goal.Name,
		goal.TargetAmount,
		goal.CurrentAmount,
		goal.TargetDate,
		goal.CreatedAt,
		goal.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to create goal: %w", err)
	}

	return nil
}

// GetGoal retrieves a goal owned by the given user.
func (r *Repository) GetGoal(ctx context.Context, id, userID string) (*model.Goal, error) {
	query := `SELECT ` + goalColumns + ` FROM goals WHERE id = $1 AND user_id = $2`

	goal, err := scanGoal(r.pool.QueryRow(ctx, query, id, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrGoalNotFound
		}
		return nil, fmt.Errorf("failed to get goal: %w", err)
	}

	return goal, nil
}

// ListGoals retrieves all goals for a user ordered by target date.
func (r *Repository) ListGoals(ctx context.Context, userID string) ([]*model.Goal, error) {
	query := `SELECT ` + goalColumns + ` FROM goals WHERE user_id = $1 ORDER BY target_date ASC, id ASC`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list goals: %w", err)
	}
	defer rows.Close()

	var goals []*model.Goal
	for rows.Next() {
		goal, err := scanGoal(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan goal: %w", err)
		}
		goals = append(goals, goal)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating goals: %w", err)
	}

	return goals, nil
}

// UpdateGoal updates a goal's mutable fields, scoped to the owner.
func (r *Repository) UpdateGoal(ctx context.Context, goal *model.Goal) error {
	query := `
		UPDATE goals
		SET name = $3, target_amount = $4, current_amount = $5, target_date = $6, updated_at = NOW()
		WHERE id = $1 AND user_id = $2
	`

	result, err := r.pool.Exec(ctx, query,
		goal.ID,
		goal.UserID,
		goal.Name,
		goal.TargetAmount,
		goal.CurrentAmount,
		goal.TargetDate,
	)

	if err != nil {
		return fmt.Errorf("failed to update goal: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrGoalNotFound
	}

	return nil
}

// DeleteGoal removes a goal, scoped to the owner.
func (r *Repository) DeleteGoal(ctx context.Context, id, userID string) error {
	query := `DELETE FROM goals WHERE id = $1 AND user_id = $2`

	result, err := r.pool.Exec(ctx, query, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete goal: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrGoalNotFound
	}

	return nil
}

// scanGoal scans a single row into a Goal model.
func scanGoal(row pgx.Row) (*model.Goal, error) {
	var goal model.Goal
	err := row.Scan(
		&goal.ID,
		&goal.UserID,
		&goal.Name,
		&goal.TargetAmount,
		&goal.CurrentAmount,
		&goal.TargetDate,
		&goal.CreatedAt,
		&goal.UpdatedAt,
	)
	return &goal, err
}
