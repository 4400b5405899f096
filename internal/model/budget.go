package model

import "time"

// Budget represents a monthly spending limit for a category.
// Month is normalized to the first day of the applicable month.
type Budget struct {
	ID        string    `json:"id"`
	UserID    string    `json:"-"`
	Category  string    `json:"category"`
	Amount    float64   `json:"amount"`
	Month     time.Time `json:"month"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// MonthStart truncates t to the first day of its calendar month.
func MonthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}
