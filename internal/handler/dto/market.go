package dto

import "github.com/finintel/finintel/internal/model"

// WatchlistResponse represents the user's watchlist with quotes for
// the tickers that could be fetched.
type WatchlistResponse struct {
	Tickers []string       `json:"tickers"`
	Quotes  []*model.Quote `json:"quotes"`
}

// AdviceResponse represents a generated advice answer.
type AdviceResponse struct {
	Topic      string `json:"topic"`
	Advice     string `json:"advice"`
	AdviceHTML string `json:"advice_html"`
}

// ChatResponse represents a chat answer.
type ChatResponse struct {
	Message  string `json:"message"`
	Response string `json:"response"`
}
