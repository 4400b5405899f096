package model

import "time"

// Expense represents a single recorded expense.
type Expense struct {
	ID          string    `json:"id"`
	UserID      string    `json:"-"`
	Amount      float64   `json:"amount"`
	Category    string    `json:"category"`
	Date        time.Time `json:"date"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
