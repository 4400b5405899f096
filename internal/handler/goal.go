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

// GoalHandler handles HTTP requests for savings-goal operations.
type GoalHandler struct {
	svc    *service.GoalService
	logger *slog.Logger
}

// NewGoalHandler creates a new GoalHandler.
func NewGoalHandler(svc *service.GoalService, logger *slog.Logger) *GoalHandler {
	return &GoalHandler{
		svc:    svc,
		logger: logger,
	}
}

// Create handles POST /finance/goals. The response embeds the computed
// savings plan when the target date is in the future.
func (h *GoalHandler) Create(w http.ResponseWriter, r *http.Request) {
	input, ok := h.decodeInput(w, r)
	if !ok {
		return
	}

	goal, plan, err := h.svc.Create(r.Context(), auth.UserIDFromContext(r.Context()), input)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.logger.Info("goal_created", "goal_id", goal.ID)

	writeJSON(w, http.StatusCreated, dto.ToGoalResponse(goal, plan))
}

// List handles GET /finance/goals.
func (h *GoalHandler) List(w http.ResponseWriter, r *http.Request) {
	goals, err := h.svc.List(r.Context(), auth.UserIDFromContext(r.Context()))
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	responses := make([]dto.GoalResponse, len(goals))
	for i, goal := range goals {
		responses[i] = *dto.ToGoalResponse(goal, nil)
	}
	writeJSON(w, http.StatusOK, responses)
}

// Update handles PUT /finance/goals/{id}.
func (h *GoalHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	input, ok := h.decodeInput(w, r)
	if !ok {
		return
	}

	goal, plan, err := h.svc.Update(r.Context(), auth.UserIDFromContext(r.Context()), id, input)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.logger.Info("goal_updated", "goal_id", goal.ID)

	writeJSON(w, http.StatusOK, dto.ToGoalResponse(goal, plan))
}

// Delete handles DELETE /finance/goals/{id}.
func (h *GoalHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.svc.Delete(r.Context(), auth.UserIDFromContext(r.Context()), id); err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.logger.Info("goal_deleted", "goal_id", id)

	w.WriteHeader(http.StatusNoContent)
}

// decodeInput decodes and validates the shared create/update body.
func (h *GoalHandler) decodeInput(w http.ResponseWriter, r *http.Request) (service.GoalInput, bool) {
	var req dto.GoalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return service.GoalInput{}, false
	}

	targetDate, err := time.Parse(dto.DateLayout, req.TargetDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_DATE", "Target date must be formatted YYYY-MM-DD")
		return service.GoalInput{}, false
	}

	return service.GoalInput{
		Name:          req.Name,
		TargetAmount:  req.TargetAmount,
		CurrentAmount: req.CurrentAmount,
		TargetDate:    targetDate,
	}, true
}

// handleServiceError maps goal service errors to HTTP responses.
func (h *GoalHandler) handleServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidGoalName):
		writeError(w, http.StatusBadRequest, "INVALID_NAME", "Goal name is required")
	case errors.Is(err, service.ErrInvalidTarget):
		writeError(w, http.StatusBadRequest, "INVALID_TARGET", "Target amount must be positive")
	case errors.Is(err, service.ErrNegativeCurrent):
		writeError(w, http.StatusBadRequest, "INVALID_CURRENT", "Current amount cannot be negative")
	case errors.Is(err, service.ErrGoalNotFound):
		writeError(w, http.StatusNotFound, "GOAL_NOT_FOUND", "Goal not found")
	default:
		h.logger.Error("internal_error", "error", err)
		writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "An internal error occurred")
	}
}
