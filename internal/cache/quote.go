package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/finintel/finintel/internal/model"
)

// Cache key prefixes for quote data.
const (
	quoteKeyPrefix = "quote:"
	indexKey       = "quote:index"
)

// ErrCacheMiss indicates the requested entry is not cached.
var ErrCacheMiss = errors.New("cache miss")

// GetQuote retrieves a cached ticker quote.
// Returns ErrCacheMiss if not found.
func (c *Cache) GetQuote(ctx context.Context, ticker string) (*model.Quote, error) {
	data, err := c.client.Get(ctx, quoteKeyPrefix+ticker).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrCacheMiss
		}
		return nil, fmt.Errorf("failed to get cached quote: %w", err)
	}

	var quote model.Quote
	if err := json.Unmarshal(data, &quote); err != nil {
		return nil, ErrCacheMiss
	}

	return &quote, nil
}

// SetQuote caches a ticker quote with the given TTL.
func (c *Cache) SetQuote(ctx context.Context, quote *model.Quote, ttl time.Duration) error {
	data, err := json.Marshal(quote)
	if err != nil {
		return fmt.Errorf("marshal quote: %w", err)
	}

	if err := c.client.Set(ctx, quoteKeyPrefix+quote.Ticker, data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache quote: %w", err)
	}

	return nil
}

// GetIndexQuote retrieves the cached market index snapshot.
// Returns ErrCacheMiss if not found.
func (c *Cache) GetIndexQuote(ctx context.Context) (*model.IndexQuote, error) {
	data, err := c.client.Get(ctx, indexKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrCacheMiss
		}
		return nil, fmt.Errorf("failed to get cached index quote: %w", err)
	}

	var quote model.IndexQuote
	if err := json.Unmarshal(data, &quote); err != nil {
		return nil, ErrCacheMiss
	}

	return &quote, nil
}

// SetIndexQuote caches the market index snapshot with the given TTL.
func (c *Cache) SetIndexQuote(ctx context.Context, quote *model.IndexQuote, ttl time.Duration) error {
	data, err := json.Marshal(quote)
	if err != nil {
		return fmt.Errorf("marshal index quote: %w", err)
	}

	if err := c.client.Set(ctx, indexKey, data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache index quote: %w", err)
	}

	return nil
}
