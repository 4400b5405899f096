package market

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

const samplePayload = `{
	"code": "AAPL.US",
	"timestamp": 1700000000,
	"open": 189.23,
	"high": 191.10,
	"low": 188.52,
	"close": 190.04,
	"volume": 52340000,
	"previousClose": 188.01,
	"change": 2.03,
	"change_p": 1.0797
}`

func TestFetchQuote(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/real-time/AAPL" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if r.URL.Query().Get("api_token") != "test-token" {
			t.Errorf("missing api_token, got query %q", r.URL.RawQuery)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(samplePayload))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "test-token")

	quote, err := client.FetchQuote(context.Background(), " aapl ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if quote.Ticker != "AAPL" {
		t.Errorf("expected normalized ticker AAPL, got %s", quote.Ticker)
	}
	if quote.Price.String() != "190.04" {
		t.Errorf("unexpected price: %s", quote.Price)
	}
	if quote.Volume != 52340000 {
		t.Errorf("unexpected volume: %d", quote.Volume)
	}
	if quote.Change.String() != "2.03" {
		t.Errorf("unexpected change: %s", quote.Change)
	}
	if quote.Date.Format("2006-01-02") != "2023-11-14" {
		t.Errorf("unexpected date: %s", quote.Date)
	}
}

func TestFetchQuoteNotFound(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			name: "404",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusNotFound)
			},
		},
		{
			name: "empty_code",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`{"code": "", "timestamp": 0}`))
			},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			srv := httptest.NewServer(test.handler)
			defer srv.Close()

			client := NewClient(srv.URL, "test-token")
			if _, err := client.FetchQuote(context.Background(), "NOPE"); !errors.Is(err, ErrTickerNotFound) {
				t.Fatalf("expected ErrTickerNotFound, got %v", err)
			}
		})
	}
}

func TestFetchQuoteUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "test-token")
	if _, err := client.FetchQuote(context.Background(), "AAPL"); !errors.Is(err, ErrUpstream) {
		t.Fatalf("expected ErrUpstream, got %v", err)
	}
}

func TestFetchQuoteEmptyTicker(t *testing.T) {
	client := NewClient("http://unused", "test-token")
	if _, err := client.FetchQuote(context.Background(), "   "); !errors.Is(err, ErrTickerNotFound) {
		t.Fatalf("expected ErrTickerNotFound, got %v", err)
	}
}

func TestFetchIndex(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{
			"code": "NSEI.INDX",
			"timestamp": 1700000000,
			"close": 19675.45,
			"previousClose": 19570.85,
			"change": 104.60,
			"change_p": 0.5345
		}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "test-token")

	index, err := client.FetchIndex(context.Background(), "NSEI.INDX")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if index.Price.String() != "19675.45" {
		t.Errorf("unexpected price: %s", index.Price)
	}
	if index.ChangePercent != "0.53%" {
		t.Errorf("unexpected change percent: %s", index.ChangePercent)
	}
	if index.LastUpdated != "2023-11-14" {
		t.Errorf("unexpected last updated: %s", index.LastUpdated)
	}
}
