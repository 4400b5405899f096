package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/finintel/finintel/internal/auth"
	"github.com/finintel/finintel/internal/handler/dto"
	"github.com/finintel/finintel/internal/service"
)

// BudgetHandler handles HTTP requests for budget operations.
type BudgetHandler struct {
	svc    *service.BudgetService
	logger *slog.Logger
}

// NewBudgetHandler creates a new BudgetHandler.
func NewBudgetHandler(svc *service.BudgetService, logger *slog.Logger) *BudgetHandler {
	return &BudgetHandler{
		svc:    svc,
		logger: logger,
	}
}

// Create handles POST /finance/budgets.
func (h *BudgetHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.BudgetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	input, ok := h.parseInput(w, req)
	if !ok {
		return
	}

	budget, err := h.svc.Create(r.Context(), auth.UserIDFromContext(r.Context()), input)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.logger.Info("budget_created",
		"budget_id", budget.ID,
		"category", budget.Category,
	)

	writeJSON(w, http.StatusCreated, dto.ToBudgetResponse(budget))
}

// List handles GET /finance/budgets.
func (h *BudgetHandler) List(w http.ResponseWriter, r *http.Request) {
	budgets, err := h.svc.List(r.Context(), auth.UserIDFromContext(r.Context()))
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToBudgetListResponse(budgets))
}

// Update handles PUT /finance/budgets/{id}.
func (h *BudgetHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req dto.BudgetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	input, ok := h.parseInput(w, req)
	if !ok {
		return
	}

	budget, err := h.svc.Update(r.Context(), auth.UserIDFromContext(r.Context()), id, input)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.logger.Info("budget_updated", "budget_id", budget.ID)

	writeJSON(w, http.StatusOK, dto.ToBudgetResponse(budget))
}

// Delete handles DELETE /finance/budgets/{id}.
func (h *BudgetHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.svc.Delete(r.Context(), auth.UserIDFromContext(r.Context()), id); err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.logger.Info("budget_deleted", "budget_id", id)

	w.WriteHeader(http.StatusNoContent)
}

// Alerts handles GET /finance/budget/alerts.
func (h *BudgetHandler) Alerts(w http.ResponseWriter, r *http.Request) {
	alerts, err := h.svc.CheckBudgetStatus(r.Context(), auth.UserIDFromContext(r.Context()))
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"alerts": alerts})
}

// parseInput converts a BudgetRequest into a service input, writing a
// 400 on a bad month. A missing month defaults to the current one.
func (h *BudgetHandler) parseInput(w http.ResponseWriter, req dto.BudgetRequest) (service.BudgetInput, bool) {
	month := time.Now().UTC()
	if req.Month != "" {
		parsed, err := time.Parse(dto.MonthLayout, req.Month)
		if err != nil {
			writeError(w, http.StatusBadRequest, "INVALID_MONTH", "Month must be formatted YYYY-MM")
			return service.BudgetInput{}, false
		}
		month = parsed
	}

	return service.BudgetInput{
		Category: req.Category,
		Amount:   req.Amount,
		Month:    month,
	}, true
}

// handleServiceError maps budget service errors to HTTP responses.
func (h *BudgetHandler) handleServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidAmount):
		writeError(w, http.StatusBadRequest, "INVALID_AMOUNT", "Amount must be positive")
	case errors.Is(err, service.ErrInvalidCategory):
		writeError(w, http.StatusBadRequest, "INVALID_CATEGORY", "Category is required")
	case errors.Is(err, service.ErrBudgetNotFound):
		writeError(w, http.StatusNotFound, "BUDGET_NOT_FOUND", "Budget not found")
	case errors.Is(err, service.ErrBudgetExists):
		writeError(w, http.StatusConflict, "BUDGET_EXISTS", "Budget already set for this category and month")
	default:
		h.logger.Error("internal_error", "error", err)
		writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "An internal error occurred")
	}
}
