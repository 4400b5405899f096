package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/finintel/finintel/internal/advice"
	"github.com/finintel/finintel/internal/auth"
	"github.com/finintel/finintel/internal/handler/dto"
	"github.com/finintel/finintel/internal/repository"
)

// AdviceHandler handles AI advice and chat endpoints.
type AdviceHandler struct {
	svc    *advice.Service
	repo   *repository.Repository
	logger *slog.Logger
}

// NewAdviceHandler creates a new AdviceHandler.
func NewAdviceHandler(svc *advice.Service, repo *repository.Repository, logger *slog.Logger) *AdviceHandler {
	return &AdviceHandler{
		svc:    svc,
		repo:   repo,
		logger: logger,
	}
}

// Advice handles GET /finance/advice?topic= and
// GET /finance/advice_info/{topic}.
func (h *AdviceHandler) Advice(w http.ResponseWriter, r *http.Request) {
	topic := chi.URLParam(r, "topic")
	if topic == "" {
		topic = r.URL.Query().Get("topic")
	}
	if topic == "" {
		topic = "general financial planning"
	}

	result, err := h.svc.Advice(r.Context(), topic)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.AdviceResponse{
		Topic:      topic,
		Advice:     result.Text,
		AdviceHTML: result.HTML,
	})
}

// Chat handles GET /finance/chat?message=. The user's recent financial
// summary is attached as context so the model can reference actual
// spending, budgets, and goals.
func (h *AdviceHandler) Chat(w http.ResponseWriter, r *http.Request) {
	message := r.URL.Query().Get("message")
	if message == "" {
		writeError(w, http.StatusBadRequest, "MESSAGE_REQUIRED", "Message is required")
		return
	}

	response, err := h.svc.Chat(r.Context(), message, h.buildSummary(r))
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ChatResponse{
		Message:  message,
		Response: response,
	})
}

// buildSummary assembles the chat context from the user's data. Any
// load failure degrades to an uncontextualized chat rather than
// failing the request.
func (h *AdviceHandler) buildSummary(r *http.Request) string {
	userID := auth.UserIDFromContext(r.Context())
	if userID == "" {
		return ""
	}

	expenses, err := h.repo.ListExpenses(r.Context(), userID, repository.SortDesc)
	if err != nil {
		h.logger.Warn("chat_summary_expenses_failed", "error", err)
		return ""
	}
	budgets, err := h.repo.ListBudgets(r.Context(), userID)
	if err != nil {
		h.logger.Warn("chat_summary_budgets_failed", "error", err)
		budgets = nil
	}
	goals, err := h.repo.ListGoals(r.Context(), userID)
	if err != nil {
		h.logger.Warn("chat_summary_goals_failed", "error", err)
		goals = nil
	}

	return advice.BuildSummary(expenses, budgets, goals, time.Now().UTC())
}

// handleServiceError maps advice errors to HTTP responses.
func (h *AdviceHandler) handleServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, advice.ErrUnavailable):
		writeError(w, http.StatusServiceUnavailable, "ADVICE_UNAVAILABLE", "Advice service is not configured")
	case errors.Is(err, advice.ErrEmptyResponse):
		writeError(w, http.StatusBadGateway, "EMPTY_RESPONSE", "The model returned no usable answer")
	default:
		h.logger.Error("advice_error", "error", err)
		writeError(w, http.StatusBadGateway, "UPSTREAM_ERROR", "Advice generation failed")
	}
}
