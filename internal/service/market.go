package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/finintel/finintel/internal/cache"
	"github.com/finintel/finintel/internal/market"
	"github.com/finintel/finintel/internal/metrics"
	"github.com/finintel/finintel/internal/model"
	"github.com/finintel/finintel/internal/repository"
)

// Market service errors.
var (
	ErrTickerRequired       = errors.New("ticker is required")
	ErrTickerNotFound       = errors.New("ticker not found")
	ErrTickerAlreadyWatched = errors.New("ticker already in watchlist")
	ErrTickerNotWatched     = errors.New("ticker not in watchlist")
	ErrQuoteUnavailable     = errors.New("quote data unavailable")
)

// QuoteFetcher retrieves quote data from the upstream market API.
type QuoteFetcher interface {
	FetchQuote(ctx context.Context, ticker string) (*model.Quote, error)
	FetchIndex(ctx context.Context, symbol string) (*model.IndexQuote, error)
}

// MarketService serves market data and manages per-user watchlists.
// Quotes are cached in Redis with a bounded TTL so repeated page loads
// do not hammer the upstream API.
type MarketService struct {
	repo        *repository.Repository
	cache       *cache.Cache
	fetcher     QuoteFetcher
	indexSymbol string
	quoteTTL    time.Duration
	metrics     metrics.Recorder
}

// NewMarketService creates a new MarketService.
func NewMarketService(
	repo *repository.Repository,
	cacheClient *cache.Cache,
	fetcher QuoteFetcher,
	indexSymbol string,
	quoteTTL time.Duration,
	recorder metrics.Recorder,
) *MarketService {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return &MarketService{
		repo:        repo,
		cache:       cacheClient,
		fetcher:     fetcher,
		indexSymbol: indexSymbol,
		quoteTTL:    quoteTTL,
		metrics:     recorder,
	}
}

// MarketData returns the broad-market index snapshot, served from
// cache when fresh.
func (s *MarketService) MarketData(ctx context.Context) (*model.IndexQuote, error) {
	if s.cache != nil {
		if cached, err := s.cache.GetIndexQuote(ctx); err == nil {
			s.metrics.IncQuoteCacheHit()
			return cached, nil
		}
	}
	s.metrics.IncQuoteCacheMiss()

	start := time.Now()
	index, err := s.fetcher.FetchIndex(ctx, s.indexSymbol)
	s.metrics.ObserveQuoteFetchDuration(time.Since(start))
	if err != nil {
		return nil, s.mapFetchError(err)
	}

	if s.cache != nil {
		// Cache failures are not fatal; the quote is already in hand.
		_ = s.cache.SetIndexQuote(ctx, index, s.quoteTTL)
	}

	return index, nil
}

// StockInfo returns last-trade data for a single ticker, served from
// cache when fresh.
func (s *MarketService) StockInfo(ctx context.Context, ticker string) (*model.Quote, error) {
	ticker = model.NormalizeTicker(ticker)
	if ticker == "" {
		return nil, ErrTickerRequired
	}

	if s.cache != nil {
		if cached, err := s.cache.GetQuote(ctx, ticker); err == nil {
			s.metrics.IncQuoteCacheHit()
			return cached, nil
		}
	}
	s.metrics.IncQuoteCacheMiss()

	start := time.Now()
	quote, err := s.fetcher.FetchQuote(ctx, ticker)
	s.metrics.ObserveQuoteFetchDuration(time.Since(start))
	if err != nil {
		return nil, s.mapFetchError(err)
	}

	if s.cache != nil {
		_ = s.cache.SetQuote(ctx, quote, s.quoteTTL)
	}

	return quote, nil
}

// Watchlist returns the user's watchlist tickers with their quotes.
// Tickers whose quotes cannot be fetched are returned without quote
// data rather than failing the whole listing.
func (s *MarketService) Watchlist(ctx context.Context, userID string) ([]string, []*model.Quote, error) {
	user, err := s.repo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, nil, fmt.Errorf("load user: %w", err)
	}

	tickers := user.WatchlistTickers()
	quotes := make([]*model.Quote, 0, len(tickers))
	for _, ticker := range tickers {
		quote, err := s.StockInfo(ctx, ticker)
		if err != nil {
			continue
		}
		quotes = append(quotes, quote)
	}

	return tickers, quotes, nil
}

// AddToWatchlist adds a ticker to the user's persisted watchlist.
// Adding a ticker that is already present reports
// ErrTickerAlreadyWatched and leaves the list unchanged.
func (s *MarketService) AddToWatchlist(ctx context.Context, userID, ticker string) ([]string, error) {
	if model.NormalizeTicker(ticker) == "" {
		return nil, ErrTickerRequired
	}

	user, err := s.repo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load user: %w", err)
	}

	if !user.AddTicker(ticker) {
		return user.WatchlistTickers(), ErrTickerAlreadyWatched
	}

	if err := s.repo.UpdateUserWatchlist(ctx, userID, user.Watchlist); err != nil {
		return nil, fmt.Errorf("persist watchlist: %w", err)
	}

	return user.WatchlistTickers(), nil
}

// RemoveFromWatchlist removes a ticker from the user's watchlist.
// Removing an absent ticker reports ErrTickerNotWatched and leaves the
// list unchanged.
func (s *MarketService) RemoveFromWatchlist(ctx context.Context, userID, ticker string) ([]string, error) {
	user, err := s.repo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load user: %w", err)
	}

	if !user.RemoveTicker(ticker) {
		return user.WatchlistTickers(), ErrTickerNotWatched
	}

	if err := s.repo.UpdateUserWatchlist(ctx, userID, user.Watchlist); err != nil {
		return nil, fmt.Errorf("persist watchlist: %w", err)
	}

	return user.WatchlistTickers(), nil
}

// mapFetchError translates market client errors to service errors.
func (s *MarketService) mapFetchError(err error) error {
	switch {
	case errors.Is(err, market.ErrTickerNotFound):
		return ErrTickerNotFound
	case errors.Is(err, market.ErrUpstream):
		return fmt.Errorf("%w: %v", ErrQuoteUnavailable, err)
	default:
		return err
	}
}
