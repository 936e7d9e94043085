package adcopy

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/aimissoula/agency-platform/internal/llm"
	"github.com/aimissoula/agency-platform/internal/observability/metrics"
	"github.com/aimissoula/agency-platform/pkg/logging"
)

var adcopyTracer = otel.Tracer("aimissoula.internal.adcopy")

const (
	defaultBusinessName = "my business"
	defaultBusinessType = "small business"

	systemPrompt = `You are a direct-response copywriter for small local businesses. Write punchy, concrete ad copy that sounds like a real person wrote it. No hashtags, no exclamation-point pileups, no generic filler like "look no further".`

	// Shown when the model returns nothing usable. The demo should never
	// hand a visitor an empty box.
	fallbackCopy = "We couldn't generate copy just now. Try again in a moment, or book a free demo call and we'll write some with you."
)

// Handler generates sample ad copy for the website demo widget.
type Handler struct {
	client      llm.Client
	logger      *logging.Logger
	metrics     *metrics.LeadMetrics
	temperature float32
}

// Config holds handler configuration.
type Config struct {
	Client      llm.Client
	Logger      *logging.Logger
	Metrics     *metrics.LeadMetrics
	Temperature float32
}

// NewHandler creates the ad copy handler.
func NewHandler(cfg Config) *Handler {
	if cfg.Logger == nil {
		cfg.Logger = logging.Default()
	}
	if cfg.Temperature <= 0 {
		cfg.Temperature = 0.8
	}
	return &Handler{
		client:      cfg.Client,
		logger:      cfg.Logger,
		metrics:     cfg.Metrics,
		temperature: cfg.Temperature,
	}
}

// GenerateRequest is the body for POST /api/adcopy.
type GenerateRequest struct {
	BusinessName string `json:"businessName"`
	BusinessType string `json:"businessType"`
}

// GenerateResponse is the ad copy result.
type GenerateResponse struct {
	Copy  string `json:"copy,omitempty"`
	Error string `json:"error,omitempty"`
}

// Generate handles POST /api/adcopy.
func (h *Handler) Generate(w http.ResponseWriter, r *http.Request) {
	ctx, span := adcopyTracer.Start(r.Context(), "adcopy.generate")
	defer span.End()

	var req GenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.metrics.ObserveCompletion("adcopy", "bad_request")
		writeJSON(w, http.StatusBadRequest, GenerateResponse{Error: "invalid request body"})
		return
	}

	name := strings.TrimSpace(req.BusinessName)
	if name == "" {
		name = defaultBusinessName
	}
	kind := strings.TrimSpace(req.BusinessType)
	if kind == "" {
		kind = defaultBusinessType
	}
	span.SetAttributes(attribute.String("adcopy.business_type", kind))

	if h.client == nil {
		h.logger.Error("ad copy requested but no model is configured")
		h.metrics.ObserveCompletion("adcopy", "unconfigured")
		writeJSON(w, http.StatusInternalServerError, GenerateResponse{Error: "server not configured"})
		return
	}

	resp, err := h.client.Complete(ctx, llm.Request{
		System:      []string{systemPrompt},
		Messages:    []llm.ChatMessage{{Role: llm.ChatRoleUser, Content: userPrompt(name, kind)}},
		MaxTokens:   1000,
		Temperature: h.temperature,
	})
	if err != nil {
		span.RecordError(err)
		h.metrics.ObserveCompletion("adcopy", "error")
		h.logger.Error("ad copy generation failed", "error", err)
		writeJSON(w, upstreamStatus(err), GenerateResponse{Error: "copy generation is unavailable right now"})
		return
	}

	text := strings.TrimSpace(resp.Text)
	if text == "" {
		h.metrics.ObserveCompletion("adcopy", "empty")
		writeJSON(w, http.StatusOK, GenerateResponse{Copy: fallbackCopy})
		return
	}

	h.metrics.ObserveCompletion("adcopy", "ok")
	writeJSON(w, http.StatusOK, GenerateResponse{Copy: text})
}

func userPrompt(name, kind string) string {
	return fmt.Sprintf(`Write 3 short ad variations for %s, a %s.

For each variation give a headline (under 10 words) and one or two sentences of body copy. Make each take a different angle: one on saving the owner time, one on customer experience, one on standing out locally. Number them 1 to 3.`, name, kind)
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
