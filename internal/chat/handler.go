package chat

import (
	"encoding/json"
	"net/http"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/aimissoula/agency-platform/internal/llm"
	"github.com/aimissoula/agency-platform/internal/observability/metrics"
	"github.com/aimissoula/agency-platform/pkg/logging"
)

var chatTracer = otel.Tracer("aimissoula.internal.chat")

// Handler proxies website chat turns to the configured language model. The
// browser never sees an API key; it only ever talks to this endpoint.
type Handler struct {
	client      llm.Client
	logger      *logging.Logger
	metrics     *metrics.LeadMetrics
	maxTokens   int32
	temperature float32
}

// Config holds handler configuration.
type Config struct {
	Client      llm.Client
	Logger      *logging.Logger
	Metrics     *metrics.LeadMetrics
	MaxTokens   int32
	Temperature float32
}

// NewHandler creates the chat proxy handler.
func NewHandler(cfg Config) *Handler {
	if cfg.Logger == nil {
		cfg.Logger = logging.Default()
	}
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = 1000
	}
	if cfg.Temperature <= 0 {
		cfg.Temperature = 0.7
	}
	return &Handler{
		client:      cfg.Client,
		logger:      cfg.Logger,
		metrics:     cfg.Metrics,
		maxTokens:   cfg.MaxTokens,
		temperature: cfg.Temperature,
	}
}

// CompletionRequest is the body for POST /api/chat.
type CompletionRequest struct {
	Messages []llm.ChatMessage `json:"messages"`
	System   string            `json:"system"`
}

// CompletionResponse is the chat proxy result.
type CompletionResponse struct {
	Reply string `json:"reply,omitempty"`
	Error string `json:"error,omitempty"`
}

// Complete handles POST /api/chat.
func (h *Handler) Complete(w http.ResponseWriter, r *http.Request) {
	ctx, span := chatTracer.Start(r.Context(), "chat.complete")
	defer span.End()

	var req CompletionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.metrics.ObserveCompletion("chat", "bad_request")
		writeJSON(w, http.StatusBadRequest, CompletionResponse{Error: "invalid request body"})
		return
	}
	if err := validateMessages(req.Messages); err != nil {
		h.metrics.ObserveCompletion("chat", "bad_request")
		writeJSON(w, http.StatusBadRequest, CompletionResponse{Error: err.Error()})
		return
	}

	if h.client == nil {
		h.logger.Error("chat completion requested but no model is configured")
		h.metrics.ObserveCompletion("chat", "unconfigured")
		writeJSON(w, http.StatusInternalServerError, CompletionResponse{Error: "server not configured"})
		return
	}

	system := []string{DefaultSystemPrompt}
	if s := strings.TrimSpace(req.System); s != "" {
		system = append(system, s)
	}
	span.SetAttributes(attribute.Int("chat.turns", len(req.Messages)))

	resp, err := h.client.Complete(ctx, llm.Request{
		System:      system,
		Messages:    req.Messages,
		MaxTokens:   h.maxTokens,
		Temperature: h.temperature,
	})
	if err != nil {
		span.RecordError(err)
		h.metrics.ObserveCompletion("chat", "error")
		h.logger.Error("chat completion failed", "error", err)
		writeJSON(w, upstreamStatus(err), CompletionResponse{Error: "assistant is unavailable right now"})
		return
	}

	h.metrics.ObserveCompletion("chat", "ok")
	writeJSON(w, http.StatusOK, CompletionResponse{Reply: resp.Text})
}

func validateMessages(msgs []llm.ChatMessage) error {
	if len(msgs) == 0 {
		return errEmptyConversation
	}
	for _, m := range msgs {
		switch m.Role {
		case llm.ChatRoleUser, llm.ChatRoleAssistant:
		default:
			return errInvalidRole
		}
		if strings.TrimSpace(m.Content) == "" {
			return errEmptyMessage
		}
	}
	return nil
}

// upstreamStatus relays the model vendor's HTTP status when the failure
// carries one; transport failures map to 502.
func upstreamStatus(err error) int {
	if status := llm.ProviderStatus(err); status >= 400 {
		return status
	}
	return http.StatusBadGateway
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
