// Package service provides business logic for the application.
package service

import (
	"errors"
	"math"
	"time"
)

// Calculator input errors.
var (
	ErrInvalidInvestment = errors.New("monthly investment must be positive")
	ErrInvalidReturn     = errors.New("expected return must be positive")
	ErrInvalidYears      = errors.New("years must be positive")
	ErrTargetDatePast    = errors.New("target date must be in the future")
)

// SIPResult holds a systematic-investment-plan projection.
type SIPResult struct {
	TotalInvestment float64 `json:"total_investment"`
	TotalReturns    float64 `json:"total_returns"`
	FinalAmount     float64 `json:"final_amount"`
}

// CalculateSIP projects the future value of a monthly investment.
// FV = P * ((1+r)^n - 1)/r * (1+r) with r the monthly rate and n the
// number of monthly installments.
func CalculateSIP(monthlyInvestment, expectedReturn float64, years int) (*SIPResult, error) {
	if monthlyInvestment <= 0 {
		return nil, ErrInvalidInvestment
	}
	if expectedReturn <= 0 {
		return nil, ErrInvalidReturn
	}
	if years <= 0 {
		return nil, ErrInvalidYears
	}

	monthlyRate := expectedReturn / (12 * 100)
	months := float64(years * 12)

	amount := monthlyInvestment * ((math.Pow(1+monthlyRate, months) - 1) / monthlyRate) * (1 + monthlyRate)
	totalInvestment := monthlyInvestment * months

	return &SIPResult{
		TotalInvestment: round2(totalInvestment),
		TotalReturns:    round2(amount - totalInvestment),
		FinalAmount:     round2(amount),
	}, nil
}

// GoalSavingsPlan holds the monthly saving required to reach a goal.
type GoalSavingsPlan struct {
	MonthlySavingNeeded float64 `json:"monthly_saving_needed"`
	TotalAmountNeeded   float64 `json:"total_amount_needed"`
	MonthsRemaining     float64 `json:"months_remaining"`
}

// CalculateGoalSavings computes the monthly saving needed to reach
// targetAmount by targetDate, starting from currentAmount. Months
// remaining are counted as fractional 30-day periods.
func CalculateGoalSavings(targetAmount float64, targetDate time.Time, currentAmount float64, now time.Time) (*GoalSavingsPlan, error) {
	monthsRemaining := targetDate.Sub(now).Hours() / 24 / 30
	if monthsRemaining <= 0 {
		return nil, ErrTargetDatePast
	}

	amountNeeded := targetAmount - currentAmount
	monthlySaving := amountNeeded / monthsRemaining

	return &GoalSavingsPlan{
		MonthlySavingNeeded: round2(monthlySaving),
		TotalAmountNeeded:   round2(amountNeeded),
		MonthsRemaining:     round1(monthsRemaining),
	}, nil
}

// round2 rounds to 2 decimal places.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// round1 rounds to 1 decimal place.
func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
