//go:build integration

package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/finintel/finintel/internal/model"
	"github.com/finintel/finintel/internal/testutil"
)

func newTestCache(t *testing.T) (context.Context, *Cache) {
	t.Helper()

	redisURL := testutil.RequireEnv(t, "REDIS_URL")
	ctx := context.Background()

	c, err := New(ctx, redisURL)
	if err != nil {
		t.Fatalf("connect redis: %v", err)
	}
	t.Cleanup(func() { c.Close() })

	if err := testutil.FlushRedis(ctx, c.Client()); err != nil {
		t.Fatalf("flush redis: %v", err)
	}

	return ctx, c
}

func TestIntegrationSessionRoundTrip(t *testing.T) {
	ctx, c := newTestCache(t)

	auth := &model.AuthContext{
		SessionID: "sess-1",
		UserID:    "user-1",
		Username:  "alice",
		Email:     "alice@example.com",
	}

	if err := c.SetSession(ctx, "token-1", auth, time.Minute); err != nil {
		t.Fatalf("SetSession failed: %v", err)
	}

	got, err := c.GetSession(ctx, "token-1")
	if err != nil {
		t.Fatalf("GetSession failed: %v", err)
	}
	if got.UserID != auth.UserID || got.Email != auth.Email {
		t.Errorf("session mismatch: %+v", got)
	}

	if err := c.RefreshSession(ctx, "token-1", time.Hour); err != nil {
		t.Fatalf("RefreshSession failed: %v", err)
	}

	if err := c.DeleteSession(ctx, "token-1"); err != nil {
		t.Fatalf("DeleteSession failed: %v", err)
	}
	if _, err := c.GetSession(ctx, "token-1"); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("expected ErrSessionNotFound after delete, got %v", err)
	}
}

func TestIntegrationQuoteCache(t *testing.T) {
	ctx, c := newTestCache(t)

	if _, err := c.GetQuote(ctx, "AAPL"); !errors.Is(err, ErrCacheMiss) {
		t.Errorf("expected ErrCacheMiss on cold cache, got %v", err)
	}

	quote := &model.Quote{Ticker: "AAPL", Price: decimal.NewFromFloat(195.32)}
	if err := c.SetQuote(ctx, quote, time.Minute); err != nil {
		t.Fatalf("SetQuote failed: %v", err)
	}

	got, err := c.GetQuote(ctx, "AAPL")
	if err != nil {
		t.Fatalf("GetQuote failed: %v", err)
	}
	if !got.Price.Equal(quote.Price) {
		t.Errorf("price mismatch: got %v, want %v", got.Price, quote.Price)
	}
}

func TestIntegrationIPRateLimit(t *testing.T) {
	ctx, c := newTestCache(t)

	// Burst of 2: two requests pass, the third is limited.
	for i := 0; i < 2; i++ {
		result, err := c.CheckIPRateLimit(ctx, "10.0.0.1", 1, 2)
		if err != nil {
			t.Fatalf("CheckIPRateLimit failed: %v", err)
		}
		if !result.Allowed {
			t.Fatalf("request %d should be allowed", i+1)
		}
	}

	result, err := c.CheckIPRateLimit(ctx, "10.0.0.1", 1, 2)
	if err != nil {
		t.Fatalf("CheckIPRateLimit failed: %v", err)
	}
	if result.Allowed {
		t.Error("expected third request to be limited")
	}
	if result.RetryAfter <= 0 {
		t.Errorf("expected positive RetryAfter, got %v", result.RetryAfter)
	}

	// A different IP has its own bucket.
	other, err := c.CheckIPRateLimit(ctx, "10.0.0.2", 1, 2)
	if err != nil {
		t.Fatalf("CheckIPRateLimit failed: %v", err)
	}
	if !other.Allowed {
		t.Error("expected separate bucket for a different IP")
	}
}
