// Package advice wraps the Gemini API for financial advice and chat.
package advice

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/genai"

	"github.com/finintel/finintel/internal/metrics"
)

// Common errors for the advice service.
var (
	// ErrUnavailable indicates no Gemini API key is configured.
	ErrUnavailable = errors.New("advice service not configured")
	// ErrEmptyResponse indicates the model returned no usable text.
	ErrEmptyResponse = errors.New("empty model response")
)

// Service generates financial advice and chat responses via Gemini.
type Service struct {
	client  *genai.Client
	model   string
	metrics metrics.Recorder
}

// NewService creates an advice Service. A nil client is allowed; calls
// then fail with ErrUnavailable so the rest of the API keeps working
// without a Gemini key.
func NewService(client *genai.Client, model string, recorder metrics.Recorder) *Service {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return &Service{
		client:  client,
		model:   model,
		metrics: recorder,
	}
}

// generationConfig mirrors the tuning the product shipped with.
func (s *Service) generationConfig() *genai.GenerateContentConfig {
	return &genai.GenerateContentConfig{
		Temperature:     genai.Ptr[float32](1),
		TopP:            genai.Ptr[float32](0.95),
		TopK:            genai.Ptr[float32](40),
		MaxOutputTokens: 8192,
	}
}

// Result holds a generated advice response in both raw markdown and HTML.
type Result struct {
	Text string `json:"text"`
	HTML string `json:"html"`
}

// Advice generates practical advice about a personal-finance topic.
// The model answers in markdown; the result carries both the markdown
// and its HTML rendering.
func (s *Service) Advice(ctx context.Context, topic string) (*Result, error) {
	if s.client == nil {
		return nil, ErrUnavailable
	}
	s.metrics.IncAdviceRequested("advice")

	prompt := fmt.Sprintf(
		"Provide concise, practical advice about %s in personal finance. "+
			"Focus on actionable steps. Use markdown formatting for better readability.",
		topic,
	)

	resp, err := s.client.Models.GenerateContent(ctx, s.model, genai.Text(prompt), s.generationConfig())
	if err != nil {
		return nil, fmt.Errorf("generate advice: %w", err)
	}

	text := resp.Text()
	if text == "" {
		return nil, ErrEmptyResponse
	}

	html, err := RenderMarkdown(text)
	if err != nil {
		return nil, fmt.Errorf("render advice: %w", err)
	}

	return &Result{Text: text, HTML: html}, nil
}

// Chat sends a free-form message to the model. When a financial summary
// is provided it is prefixed as context so answers can reference the
// user's actual spending, budgets, and goals. Stateless: no history is
// kept between calls.
func (s *Service) Chat(ctx context.Context, message, summary string) (string, error) {
	if s.client == nil {
		return "", ErrUnavailable
	}
	s.metrics.IncAdviceRequested("chat")

	chat, err := s.client.Chats.Create(ctx, s.model, s.generationConfig(), nil)
	if err != nil {
		return "", fmt.Errorf("create chat: %w", err)
	}

	input := message
	if summary != "" {
		input = summary + "\n\nUser question: " + message
	}

	resp, err := chat.Send(ctx, &genai.Part{Text: input})
	if err != nil {
		return "", fmt.Errorf("send chat message: %w", err)
	}

	text := resp.Text()
	if text == "" {
		return "", ErrEmptyResponse
	}

	return text, nil
}
