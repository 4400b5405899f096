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

// ExpenseHandler handles HTTP requests for expense operations.
type ExpenseHandler struct {
	svc    *service.ExpenseService
	logger *slog.Logger
}

// NewExpenseHandler creates a new ExpenseHandler.
func NewExpenseHandler(svc *service.ExpenseService, logger *slog.Logger) *ExpenseHandler {
	return &ExpenseHandler{
		svc:    svc,
		logger: logger,
	}
}

// Create handles POST /finance/expenses.
func (h *ExpenseHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.ExpenseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	input, ok := h.parseInput(w, req)
	if !ok {
		return
	}

	expense, err := h.svc.Create(r.Context(), auth.UserIDFromContext(r.Context()), input)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.logger.Info("expense_created",
		"expense_id", expense.ID,
		"category", expense.Category,
	)

	writeJSON(w, http.StatusCreated, dto.ToExpenseResponse(expense))
}

// List handles GET /finance/expenses.
func (h *ExpenseHandler) List(w http.ResponseWriter, r *http.Request) {
	expenses, err := h.svc.List(r.Context(), auth.UserIDFromContext(r.Context()))
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToExpenseListResponse(expenses))
}

// Update handles PUT /finance/expenses/{id}.
func (h *ExpenseHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req dto.ExpenseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	input, ok := h.parseInput(w, req)
	if !ok {
		return
	}

	expense, err := h.svc.Update(r.Context(), auth.UserIDFromContext(r.Context()), id, input)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.logger.Info("expense_updated", "expense_id", expense.ID)

	writeJSON(w, http.StatusOK, dto.ToExpenseResponse(expense))
}

// Delete handles DELETE /finance/expenses/{id}.
func (h *ExpenseHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.svc.Delete(r.Context(), auth.UserIDFromContext(r.Context()), id); err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.logger.Info("expense_deleted", "expense_id", id)

	w.WriteHeader(http.StatusNoContent)
}

// Analysis handles GET /finance/expenses/analysis.
func (h *ExpenseHandler) Analysis(w http.ResponseWriter, r *http.Request) {
	result, err := h.svc.Analyze(r.Context(), auth.UserIDFromContext(r.Context()))
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// parseInput converts an ExpenseRequest into a service input, writing
// a 400 on bad dates. A missing date defaults to today.
func (h *ExpenseHandler) parseInput(w http.ResponseWriter, req dto.ExpenseRequest) (service.ExpenseInput, bool) {
	date, err := dto.ParseDate(req.Date, time.Now().UTC())
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_DATE", "Date must be formatted YYYY-MM-DD")
		return service.ExpenseInput{}, false
	}

	return service.ExpenseInput{
		Amount:      req.Amount,
		Category:    req.Category,
		Date:        date,
		Description: req.Description,
	}, true
}

// handleServiceError maps expense service errors to HTTP responses.
func (h *ExpenseHandler) handleServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidAmount):
		writeError(w, http.StatusBadRequest, "INVALID_AMOUNT", "Amount must be positive")
	case errors.Is(err, service.ErrInvalidCategory):
		writeError(w, http.StatusBadRequest, "INVALID_CATEGORY", "Category is required")
	case errors.Is(err, service.ErrExpenseNotFound):
		writeError(w, http.StatusNotFound, "EXPENSE_NOT_FOUND", "Expense not found")
	default:
		h.logger.Error("internal_error", "error", err)
		writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "An internal error occurred")
	}
}
