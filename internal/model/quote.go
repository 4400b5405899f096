package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Quote holds last-trade data for a single ticker.
type Quote struct {
	Ticker        string          `json:"ticker"`
	Price         decimal.Decimal `json:"price"`
	High          decimal.Decimal `json:"high"`
	Low           decimal.Decimal `json:"low"`
	Volume        int64           `json:"volume"`
	PreviousClose decimal.Decimal `json:"previous_close"`
	Change        decimal.Decimal `json:"change"`
	ChangePercent decimal.Decimal `json:"change_percent"`
	Date          time.Time       `json:"date_time"`
}

// IndexQuote is the broad-market index snapshot served on the market-data endpoint.
type IndexQuote struct {
	Price         decimal.Decimal `json:"price"`
	Change        decimal.Decimal `json:"change"`
	ChangePercent string          `json:"change_percent"`
	LastUpdated   string          `json:"last_updated"`
}
