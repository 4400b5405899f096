package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/finintel/finintel/internal/model"
	"github.com/finintel/finintel/internal/repository"
)

// Goal service errors.
var (
	ErrGoalNotFound    = errors.New("goal not found")
	ErrInvalidGoalName = errors.New("goal name is required")
	ErrInvalidTarget   = errors.New("target amount must be positive")
	ErrNegativeCurrent = errors.New("current amount cannot be negative")
)

// GoalService handles savings-goal CRUD and savings planning.
type GoalService struct {
	repo *repository.Repository
}

// NewGoalService creates a new GoalService.
func NewGoalService(repo *repository.Repository) *GoalService {
	return &GoalService{repo: repo}
}

// GoalInput defines input for creating or updating a goal.
type GoalInput struct {
	Name          string
	TargetAmount  float64
	CurrentAmount float64
	TargetDate    time.Time
}

func (in *GoalInput) validate() error {
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" || len(in.Name) > 100 {
		return ErrInvalidGoalName
	}
	if in.TargetAmount <= 0 {
		return ErrInvalidTarget
	}
	if in.CurrentAmount < 0 {
		return ErrNegativeCurrent
	}
	return nil
}

// Create records a new goal and computes its savings plan.
// The plan is nil when the target date is not in the future; the goal
// is still created, matching the original product behavior.
func (s *GoalService) Create(ctx context.Context, userID string, input GoalInput) (*model.Goal, *GoalSavingsPlan, error) {
	if err := input.validate(); err != nil {
		return nil, nil, err
	}

	now := time.Now().UTC()
	goal := &model.Goal{
		ID:            newID(),
		UserID:        userID,
		Name:          input.Name,
		TargetAmount:  input.TargetAmount,
		CurrentAmount: input.CurrentAmount,
		TargetDate:    input.TargetDate,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.repo.CreateGoal(ctx, goal); err != nil {
		return nil, nil, fmt.Errorf("create goal: %w", err)
	}

	plan, _ := CalculateGoalSavings(goal.TargetAmount, goal.TargetDate, goal.CurrentAmount, now)

	return goal, plan, nil
}

// Update replaces a goal's fields and recomputes its savings plan,
// scoped to the owner.
func (s *GoalService) Update(ctx context.Context, userID, id string, input GoalInput) (*model.Goal, *GoalSavingsPlan, error) {
	if err := input.validate(); err != nil {
		return nil, nil, err
	}

	goal, err := s.repo.GetGoal(ctx, id, userID)
	if err != nil {
		if errors.Is(err, repository.ErrGoalNotFound) {
			return nil, nil, ErrGoalNotFound
		}
		return nil, nil, err
	}

	goal.Name = input.Name
	goal.TargetAmount = input.TargetAmount
	goal.CurrentAmount = input.CurrentAmount
	goal.TargetDate = input.TargetDate

	if err := s.repo.UpdateGoal(ctx, goal); err != nil {
		if errors.Is(err, repository.ErrGoalNotFound) {
			return nil, nil, ErrGoalNotFound
		}
		return nil, nil, fmt.Errorf("update goal: %w", err)
	}

	plan, _ := CalculateGoalSavings(goal.TargetAmount, goal.TargetDate, goal.CurrentAmount, time.Now().UTC())

	return goal, plan, nil
}

// Delete removes a goal, scoped to the owner.
func (s *GoalService) Delete(ctx context.Context, userID, id string) error {
	if err := s.repo.DeleteGoal(ctx, id, userID); err != nil {
		if errors.Is(err, repository.ErrGoalNotFound) {
			return ErrGoalNotFound
		}
		return fmt.Errorf("delete goal: %w", err)
	}
	return nil
}

// List returns the user's goals.
func (s *GoalService) List(ctx context.Context, userID string) ([]*model.Goal, error) {
	return s.repo.ListGoals(ctx, userID)
}
