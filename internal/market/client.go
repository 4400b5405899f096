// Package market fetches quote data from an eodhd-compatible real-time API.
package market

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"time"

	"github.com/shopspring/decimal"

	"github.com/finintel/finintel/internal/model"
)

const (
	// clientTimeout is the total request timeout for quote fetches.
	clientTimeout = 10 * time.Second
	// dialTimeout is the connection timeout.
	dialTimeout = 5 * time.Second

	// maxResponseBytes caps the quote API response size.
	maxResponseBytes = 1 << 20
)

// Common errors for quote fetching.
var (
	ErrTickerNotFound = errors.New("ticker not found")
	ErrUpstream       = errors.New("quote API request failed")
)

// Client talks to the real-time quote endpoint.
type Client struct {
	baseURL    string
	apiToken   string
	httpClient *http.Client
}

// NewClient creates a quote API client.
func NewClient(baseURL, apiToken string) *Client {
	return &Client{
		baseURL:  baseURL,
		apiToken: apiToken,
		httpClient: &http.Client{
			Timeout: clientTimeout,
			Transport: &http.Transport{
				DialContext: (&net.Dialer{
					Timeout:   dialTimeout,
					KeepAlive: 30 * time.Second,
				}).DialContext,
				MaxIdleConns:        10,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}
}

// realTimePayload is the wire shape of the real-time endpoint:
// GET {base}/api/real-time/{SYMBOL}?api_token=K&fmt=json
type realTimePayload struct {
	Code          string          `json:"code"`
	Timestamp     int64           `json:"timestamp"`
	Open          decimal.Decimal `json:"open"`
	High          decimal.Decimal `json:"high"`
	Low           decimal.Decimal `json:"low"`
	Close         decimal.Decimal `json:"close"`
	Volume        int64           `json:"volume"`
	PreviousClose decimal.Decimal `json:"previousClose"`
	Change        decimal.Decimal `json:"change"`
	ChangePercent decimal.Decimal `json:"change_p"`
}

// FetchQuote retrieves last-trade data for a single ticker.
func (c *Client) FetchQuote(ctx context.Context, ticker string) (*model.Quote, error) {
	ticker = model.NormalizeTicker(ticker)
	if ticker == "" {
		return nil, ErrTickerNotFound
	}

	addr := fmt.Sprintf("%s/api/real-time/%s?fmt=json&api_token=%s",
		c.baseURL, url.PathEscape(ticker), url.QueryEscape(c.apiToken))

	payload, err := c.get(ctx, addr)
	if err != nil {
		return nil, err
	}

	return &model.Quote{
		Ticker:        ticker,
		Price:         payload.Close,
		High:          payload.High,
		Low:           payload.Low,
		Volume:        payload.Volume,
		PreviousClose: payload.PreviousClose,
		Change:        payload.Change,
		ChangePercent: payload.ChangePercent,
		Date:          time.Unix(payload.Timestamp, 0).UTC(),
	}, nil
}

// FetchIndex retrieves the broad-market index snapshot for the given symbol.
func (c *Client) FetchIndex(ctx context.Context, symbol string) (*model.IndexQuote, error) {
	quote, err := c.FetchQuote(ctx, symbol)
	if err != nil {
		return nil, err
	}

	return &model.IndexQuote{
		Price:         quote.Price,
		Change:        quote.Change,
		ChangePercent: quote.ChangePercent.StringFixed(2) + "%",
		LastUpdated:   quote.Date.Format("2006-01-02"),
	}, nil
}

// get performs the HTTP request and decodes the JSON payload.
func (c *Client) get(ctx context.Context, addr string) (*realTimePayload, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, addr, nil)
	if err != nil {
		return nil, fmt.Errorf("build quote request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, ErrTickerNotFound
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("%w: status %d", ErrUpstream, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("read quote response: %w", err)
	}

	var payload realTimePayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("decode quote response: %w", err)
	}

	// The API answers 200 with "NA" fields for unknown symbols; an empty
	// code is the reliable signal.
	if payload.Code == "" {
		return nil, ErrTickerNotFound
	}

	return &payload, nil
}
