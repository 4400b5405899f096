package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/finintel/finintel/internal/auth"
	"github.com/finintel/finintel/internal/handler/dto"
	"github.com/finintel/finintel/internal/service"
)

// MarketHandler handles market data and watchlist endpoints.
type MarketHandler struct {
	svc    *service.MarketService
	logger *slog.Logger
}

// NewMarketHandler creates a new MarketHandler.
func NewMarketHandler(svc *service.MarketService, logger *slog.Logger) *MarketHandler {
	return &MarketHandler{
		svc:    svc,
		logger: logger,
	}
}

// MarketData handles GET /finance/market-data.
func (h *MarketHandler) MarketData(w http.ResponseWriter, r *http.Request) {
	index, err := h.svc.MarketData(r.Context())
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, index)
}

// StockInfo handles GET /finance/stock/{ticker}.
func (h *MarketHandler) StockInfo(w http.ResponseWriter, r *http.Request) {
	ticker := chi.URLParam(r, "ticker")

	quote, err := h.svc.StockInfo(r.Context(), ticker)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, quote)
}

// Watchlist handles GET /finance/watchlist.
func (h *MarketHandler) Watchlist(w http.ResponseWriter, r *http.Request) {
	tickers, quotes, err := h.svc.Watchlist(r.Context(), auth.UserIDFromContext(r.Context()))
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.WatchlistResponse{
		Tickers: tickers,
		Quotes:  quotes,
	})
}

// AddToWatchlist handles POST /finance/watchlist and
// POST /finance/watchlist/{ticker}. The body form takes
// {"ticker": "AAPL"}.
func (h *MarketHandler) AddToWatchlist(w http.ResponseWriter, r *http.Request) {
	ticker := chi.URLParam(r, "ticker")
	if ticker == "" {
		var req struct {
			Ticker string `json:"ticker"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
			return
		}
		ticker = req.Ticker
	}

	tickers, err := h.svc.AddToWatchlist(r.Context(), auth.UserIDFromContext(r.Context()), ticker)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.logger.Info("watchlist_ticker_added", "ticker", ticker)

	writeJSON(w, http.StatusOK, map[string]any{"tickers": tickers})
}

// RemoveFromWatchlist handles DELETE /finance/watchlist/{ticker}.
func (h *MarketHandler) RemoveFromWatchlist(w http.ResponseWriter, r *http.Request) {
	ticker := chi.URLParam(r, "ticker")

	tickers, err := h.svc.RemoveFromWatchlist(r.Context(), auth.UserIDFromContext(r.Context()), ticker)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.logger.Info("watchlist_ticker_removed", "ticker", ticker)

	writeJSON(w, http.StatusOK, map[string]any{"tickers": tickers})
}

// handleServiceError maps market service errors to HTTP responses.
func (h *MarketHandler) handleServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrTickerRequired):
		writeError(w, http.StatusBadRequest, "TICKER_REQUIRED", "Ticker is required")
	case errors.Is(err, service.ErrTickerNotFound):
		writeError(w, http.StatusNotFound, "TICKER_NOT_FOUND", "Ticker not found")
	case errors.Is(err, service.ErrTickerAlreadyWatched):
		writeError(w, http.StatusConflict, "ALREADY_WATCHED", "Ticker already in watchlist")
	case errors.Is(err, service.ErrTickerNotWatched):
		writeError(w, http.StatusNotFound, "NOT_WATCHED", "Ticker not in watchlist")
	case errors.Is(err, service.ErrQuoteUnavailable):
		writeError(w, http.StatusBadGateway, "QUOTE_UNAVAILABLE", "Quote data temporarily unavailable")
	default:
		h.logger.Error("internal_error", "error", err)
		writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "An internal error occurred")
	}
}
