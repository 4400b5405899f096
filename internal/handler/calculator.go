package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/finintel/finintel/internal/handler/dto"
	"github.com/finintel/finintel/internal/service"
)

// CalculatorHandler handles the investment calculator endpoints.
type CalculatorHandler struct {
	logger *slog.Logger
}

// NewCalculatorHandler creates a new CalculatorHandler.
func NewCalculatorHandler(logger *slog.Logger) *CalculatorHandler {
	return &CalculatorHandler{logger: logger}
}

// SIP handles GET|POST /finance/sip-calculator. GET reads query
// params, POST reads a JSON body; both feed the same calculation.
func (h *CalculatorHandler) SIP(w http.ResponseWriter, r *http.Request) {
	var req dto.SIPRequest

	if r.Method == http.MethodPost {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
			return
		}
	} else {
		query := r.URL.Query()
		req.MonthlyInvestment, _ = strconv.ParseFloat(query.Get("monthly_investment"), 64)
		req.ExpectedReturn, _ = strconv.ParseFloat(query.Get("expected_return"), 64)
		req.Years, _ = strconv.Atoi(query.Get("years"))
	}

	result, err := service.CalculateSIP(req.MonthlyInvestment, req.ExpectedReturn, req.Years)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// handleServiceError maps calculator errors to HTTP responses.
func (h *CalculatorHandler) handleServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidInvestment):
		writeError(w, http.StatusBadRequest, "INVALID_INVESTMENT", "Monthly investment must be positive")
	case errors.Is(err, service.ErrInvalidReturn):
		writeError(w, http.StatusBadRequest, "INVALID_RETURN", "Expected return must be positive")
	case errors.Is(err, service.ErrInvalidYears):
		writeError(w, http.StatusBadRequest, "INVALID_YEARS", "Years must be positive")
	default:
		h.logger.Error("internal_error", "error", err)
		writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "An internal error occurred")
	}
}
