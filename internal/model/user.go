// Package model defines domain entities for the application.
package model

import (
	"sort"
	"strings"
	"time"
)

// User represents a registered account.
// Watchlist is stored as a comma-separated list of uppercase tickers,
// matching the column layout of the users table.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Watchlist    string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// NormalizeTicker canonicalizes a ticker symbol for watchlist storage.
func NormalizeTicker(ticker string) string {
	return strings.ToUpper(strings.TrimSpace(ticker))
}

// WatchlistTickers returns the watchlist as a normalized, deduplicated,
// sorted slice. An empty watchlist yields an empty slice.
func (u *User) WatchlistTickers() []string {
	seen := make(map[string]struct{})
	tickers := make([]string, 0)

	for _, raw := range strings.Split(u.Watchlist, ",") {
		ticker := NormalizeTicker(raw)
		if ticker == "" {
			continue
		}
		if _, ok := seen[ticker]; ok {
			continue
		}
		seen[ticker] = struct{}{}
		tickers = append(tickers, ticker)
	}

	sort.Strings(tickers)
	return tickers
}

// HasTicker reports whether the ticker is on the watchlist.
func (u *User) HasTicker(ticker string) bool {
	ticker = NormalizeTicker(ticker)
	for _, t := range u.WatchlistTickers() {
		if t == ticker {
			return true
		}
	}
	return false
}

// AddTicker adds a ticker to the watchlist.
// Returns false without modifying the list if the ticker is already present.
func (u *User) AddTicker(ticker string) bool {
	ticker = NormalizeTicker(ticker)
	if ticker == "" {
		return false
	}

	tickers := u.WatchlistTickers()
	for _, t := range tickers {
		if t == ticker {
			return false
		}
	}

	tickers = append(tickers, ticker)
	sort.Strings(tickers)
	u.Watchlist = strings.Join(tickers, ",")
	return true
}

// RemoveTicker removes a ticker from the watchlist.
// Returns false without modifying the list if the ticker is not present.
func (u *User) RemoveTicker(ticker string) bool {
	ticker = NormalizeTicker(ticker)

	tickers := u.WatchlistTickers()
	kept := make([]string, 0, len(tickers))
	removed := false

	for _, t := range tickers {
		if t == ticker {
			removed = true
			continue
		}
		kept = append(kept, t)
	}

	if !removed {
		return false
	}

	u.Watchlist = strings.Join(kept, ",")
	return true
}
