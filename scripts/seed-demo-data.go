// Command seed-demo-data populates the database with a demo user and a
// year of plausible financial activity for local development.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/bxcodec/faker/v3"
	"github.com/oklog/ulid/v2"

	"github.com/finintel/finintel/internal/auth"
	"github.com/finintel/finintel/internal/model"
	"github.com/finintel/finintel/internal/repository"
)

var categories = []string{"Food", "Travel", "Rent", "Utilities", "Entertainment", "Healthcare", "Shopping"}

func main() {
	var (
		databaseURL = flag.String("database-url", os.Getenv("DATABASE_URL"), "PostgreSQL connection string")
		email       = flag.String("email", "demo@finintel.local", "Demo user email")
		password    = flag.String("password", "demo-password", "Demo user password")
		months      = flag.Int("months", 12, "Months of expense history to generate")
	)
	flag.Parse()

	if *databaseURL == "" {
		fmt.Fprintln(os.Stderr, "DATABASE_URL is required")
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	repo, err := repository.New(ctx, *databaseURL)
	if err != nil {
		fmt.Fprintln(os.Stderr, "connect database:", err)
		os.Exit(1)
	}
	defer repo.Close()

	user, err := seedUser(ctx, repo, *email, *password)
	if err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}

	expenseCount, err := seedExpenses(ctx, repo, user.ID, *months)
	if err != nil {
		fmt.Fprintln(os.Stderr, "seed expenses:", err)
		os.Exit(1)
	}

	budgetCount, err := seedBudgets(ctx, repo, user.ID)
	if err != nil {
		fmt.Fprintln(os.Stderr, "seed budgets:", err)
		os.Exit(1)
	}

	goalCount, err := seedGoals(ctx, repo, user.ID)
	if err != nil {
		fmt.Fprintln(os.Stderr, "seed goals:", err)
		os.Exit(1)
	}

	fmt.Printf("seeded user %s (%s): %d expenses, %d budgets, %d goals\n",
		user.Username, user.Email, expenseCount, budgetCount, goalCount)
}

func seedUser(ctx context.Context, repo *repository.Repository, email, password string) (*model.User, error) {
	if existing, err := repo.GetUserByEmail(ctx, email); err == nil {
		return existing, nil
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := time.Now().UTC()
	user := &model.User{
		ID:           ulid.Make().String(),
		Username:     faker.Username(),
		Email:        email,
		PasswordHash: hash,
		Watchlist:    "AAPL,GOOG,MSFT",
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := repo.CreateUser(ctx, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

func seedExpenses(ctx context.Context, repo *repository.Repository, userID string, months int) (int, error) {
	now := time.Now().UTC()
	count := 0

	for m := 0; m < months; m++ {
		perMonth := 8 + rand.Intn(12)
		for i := 0; i < perMonth; i++ {
			date := now.AddDate(0, -m, -rand.Intn(28))
			expense := &model.Expense{
				ID:          ulid.Make().String(),
				UserID:      userID,
				Amount:      float64(5+rand.Intn(200)) + rand.Float64(),
				Category:    categories[rand.Intn(len(categories))],
				Date:        date,
				Description: faker.Sentence(),
				CreatedAt:   date,
				UpdatedAt:   date,
			}
			if err := repo.CreateExpense(ctx, expense); err != nil {
				return count, err
			}
			count++
		}
	}

	return count, nil
}

func seedBudgets(ctx context.Context, repo *repository.Repository, userID string) (int, error) {
	now := time.Now().UTC()
	count := 0

	for _, category := range categories[:4] {
		budget := &model.Budget{
			ID:        ulid.Make().String(),
			UserID:    userID,
			Category:  category,
			Amount:    float64(500 + rand.Intn(1500)),
			Month:     model.MonthStart(now),
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := repo.CreateBudget(ctx, budget); err != nil {
			// Re-running the seeder against an existing month is fine.
			if errors.Is(err, repository.ErrBudgetExists) {
				continue
			}
			return count, err
		}
		count++
	}

	return count, nil
}

func seedGoals(ctx context.Context, repo *repository.Repository, userID string) (int, error) {
	now := time.Now().UTC()

	goals := []*model.Goal{
		{
			ID:            ulid.Make().String(),
			UserID:        userID,
			Name:          "Emergency fund",
			TargetAmount:  10000,
			CurrentAmount: float64(rand.Intn(5000)),
			TargetDate:    now.AddDate(1, 0, 0),
			CreatedAt:     now,
			UpdatedAt:     now,
		},
		{
			ID:            ulid.Make().String(),
			UserID:        userID,
			Name:          "Vacation",
			TargetAmount:  3000,
			CurrentAmount: float64(rand.Intn(1000)),
			TargetDate:    now.AddDate(0, 8, 0),
			CreatedAt:     now,
			UpdatedAt:     now,
		},
	}

	for _, goal := range goals {
		if err := repo.CreateGoal(ctx, goal); err != nil {
			return 0, err
		}
	}

	return len(goals), nil
}
