package calls

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/aimissoula/agency-platform/internal/observability/metrics"
	"github.com/aimissoula/agency-platform/internal/vapi"
	"github.com/aimissoula/agency-platform/pkg/logging"
)

// CallCreator places outbound calls on the voice platform.
type CallCreator interface {
	CreateCall(ctx context.Context, req vapi.CreateCallRequest) (*vapi.Call, error)
}

// Handler triggers outbound demo calls. The call itself is fire-and-forget:
// completion arrives later on the webhook receiver.
type Handler struct {
	client        CallCreator
	assistantID   string
	phoneNumberID string
	logger        *logging.Logger
	metrics       *metrics.LeadMetrics
}

// Config holds handler configuration.
type Config struct {
	Client        CallCreator
	AssistantID   string
	PhoneNumberID string
	Logger        *logging.Logger
	Metrics       *metrics.LeadMetrics
}

// NewHandler creates the call-trigger handler.
func NewHandler(cfg Config) *Handler {
	if cfg.Logger == nil {
		cfg.Logger = logging.Default()
	}
	return &Handler{
		client:        cfg.Client,
		assistantID:   cfg.AssistantID,
		phoneNumberID: cfg.PhoneNumberID,
		logger:        cfg.Logger,
		metrics:       cfg.Metrics,
	}
}

// TriggerRequest is the body for POST /api/call.
type TriggerRequest struct {
	Phone    string `json:"phone"`
	Name     string `json:"name"`
	Business string `json:"business"`
}

// TriggerResponse is the call-trigger result.
type TriggerResponse struct {
	Success bool   `json:"success"`
	CallID  string `json:"callId,omitempty"`
	Error   string `json:"error,omitempty"`
}

// TriggerCall handles POST /api/call.
func (h *Handler) TriggerCall(w http.ResponseWriter, r *http.Request) {
	var req TriggerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, TriggerResponse{Success: false, Error: "invalid request body"})
		return
	}

	if strings.TrimSpace(req.Phone) == "" {
		writeJSON(w, http.StatusBadRequest, TriggerResponse{Success: false, Error: "phone number is required"})
		return
	}
	e164 := NormalizeUSE164(req.Phone)
	if e164 == "" {
		writeJSON(w, http.StatusBadRequest, TriggerResponse{Success: false, Error: "phone number is required"})
		return
	}

	if h.client == nil || h.assistantID == "" {
		h.logger.Error("call trigger requested but voice platform is not configured")
		writeJSON(w, http.StatusInternalServerError, TriggerResponse{Success: false, Error: "server not configured"})
		return
	}

	name := strings.TrimSpace(req.Name)
	business := strings.TrimSpace(req.Business)

	call, err := h.client.CreateCall(r.Context(), vapi.CreateCallRequest{
		AssistantID:   h.assistantID,
		PhoneNumberID: h.phoneNumberID,
		AssistantOverrides: &vapi.AssistantOverrides{
			FirstMessage: greeting(name, business),
			Metadata: map[string]string{
				"source":       "website-demo",
				"callType":     "outbound-demo",
				"leadName":     orValue(name, "Unknown"),
				"leadPhone":    e164,
				"leadBusiness": orValue(business, "Not provided"),
			},
		},
		Customer: vapi.Customer{Number: e164, Name: name},
	})
	if err != nil {
		h.metrics.ObserveCallTrigger("rejected")
		var apiErr *vapi.APIError
		if errors.As(err, &apiErr) {
			h.logger.Error("voice platform rejected call", "status", apiErr.StatusCode)
			writeJSON(w, apiErr.StatusCode, TriggerResponse{Success: false, Error: "call could not be placed"})
			return
		}
		h.logger.Error("call trigger failed", "error", err)
		writeJSON(w, http.StatusBadGateway, TriggerResponse{Success: false, Error: "call could not be placed"})
		return
	}

	h.metrics.ObserveCallTrigger("created")
	h.logger.Info("outbound demo call created", "call_id", call.ID, "lead", orValue(name, "Unknown"))
	writeJSON(w, http.StatusOK, TriggerResponse{Success: true, CallID: call.ID})
}

// greeting personalizes the assistant's first message with whatever lead
// context the widget collected.
func greeting(name, business string) string {
	switch {
	case name != "" && business != "":
		return fmt.Sprintf("Hey %s! This is the AI assistant from AI Missoula. You just hit the demo button on our website, so here I am. I'd love to hear how things are going at %s. What's eating up most of your time these days?", name, business)
	case name != "":
		return fmt.Sprintf("Hey %s! This is the AI assistant from AI Missoula. You just hit the demo button on our website, so here I am. So tell me, what kind of business are you running?", name)
	default:
		return "Hey there! This is the AI assistant from AI Missoula. You just hit the demo button on our website, so here I am. So tell me, what kind of business are you running?"
	}
}

func orValue(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
