package service

import (
	"errors"
	"math"
	"testing"
	"time"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 0.01
}

func TestCalculateSIP(t *testing.T) {
	tests := []struct {
		name           string
		monthly        float64
		expectedReturn float64
		years          int
		wantInvested   float64
		wantFinal      float64
	}{
		{"ten_year_plan", 10000, 12, 10, 1200000, 2323390.76},
		{"five_year_plan", 5000, 10, 5, 300000, 390411.91},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			result, err := CalculateSIP(test.monthly, test.expectedReturn, test.years)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !almostEqual(result.TotalInvestment, test.wantInvested) {
				t.Errorf("expected invested %v, got %v", test.wantInvested, result.TotalInvestment)
			}
			if !almostEqual(result.FinalAmount, test.wantFinal) {
				t.Errorf("expected final %v, got %v", test.wantFinal, result.FinalAmount)
			}
			if !almostEqual(result.FinalAmount, result.TotalInvestment+result.TotalReturns) {
				t.Errorf("final %v != invested %v + returns %v",
					result.FinalAmount, result.TotalInvestment, result.TotalReturns)
			}
			if result.FinalAmount <= result.TotalInvestment {
				t.Error("expected final amount to exceed total investment")
			}
		})
	}
}

func TestCalculateSIPRejectsInvalidInput(t *testing.T) {
	tests := []struct {
		name           string
		monthly        float64
		expectedReturn float64
		years          int
		wantErr        error
	}{
		{"zero_investment", 0, 12, 10, ErrInvalidInvestment},
		{"negative_investment", -100, 12, 10, ErrInvalidInvestment},
		{"zero_return", 10000, 0, 10, ErrInvalidReturn},
		{"zero_years", 10000, 12, 0, ErrInvalidYears},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if _, err := CalculateSIP(test.monthly, test.expectedReturn, test.years); !errors.Is(err, test.wantErr) {
				t.Fatalf("expected %v, got %v", test.wantErr, err)
			}
		})
	}
}

func TestCalculateGoalSavings(t *testing.T) {
	now := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	targetDate := now.AddDate(0, 0, 360) // exactly 12 thirty-day months

	plan, err := CalculateGoalSavings(100000, targetDate, 20000, now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !almostEqual(plan.TotalAmountNeeded, 80000) {
		t.Errorf("expected amount needed 80000, got %v", plan.TotalAmountNeeded)
	}
	if !almostEqual(plan.MonthsRemaining, 12) {
		t.Errorf("expected 12 months remaining, got %v", plan.MonthsRemaining)
	}
	if !almostEqual(plan.MonthlySavingNeeded, 6666.67) {
		t.Errorf("expected monthly saving 6666.67, got %v", plan.MonthlySavingNeeded)
	}
}

func TestCalculateGoalSavingsPastDate(t *testing.T) {
	now := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)

	if _, err := CalculateGoalSavings(100000, now.AddDate(0, 0, -1), 0, now); !errors.Is(err, ErrTargetDatePast) {
		t.Fatalf("expected ErrTargetDatePast, got %v", err)
	}
	if _, err := CalculateGoalSavings(100000, now, 0, now); !errors.Is(err, ErrTargetDatePast) {
		t.Fatalf("expected ErrTargetDatePast for same-instant date, got %v", err)
	}
}

func TestCalculateGoalSavingsAlreadyFunded(t *testing.T) {
	now := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)

	plan, err := CalculateGoalSavings(50000, now.AddDate(0, 0, 300), 60000, now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if plan.TotalAmountNeeded >= 0 {
		t.Errorf("expected negative amount needed for overfunded goal, got %v", plan.TotalAmountNeeded)
	}
}
