package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/aimissoula/agency-platform/internal/leadreport"
	"github.com/aimissoula/agency-platform/internal/notify"
	"github.com/aimissoula/agency-platform/internal/observability/metrics"
	"github.com/aimissoula/agency-platform/internal/vapi"
	"github.com/aimissoula/agency-platform/pkg/logging"
)

// reportNotifier dispatches an end-of-call lead report.
type reportNotifier interface {
	NotifyCallReport(ctx context.Context, report leadreport.Report) error
}

// VapiWebhookHandler receives server events from the voice platform. The
// provider retries on non-2xx and a retry storm helps nobody, so every
// request is acknowledged with 200 no matter what happens inside.
type VapiWebhookHandler struct {
	notifier reportNotifier
	logger   *logging.Logger
	metrics  *metrics.LeadMetrics
}

type VapiWebhookConfig struct {
	Notifier reportNotifier
	Logger   *logging.Logger
	Metrics  *metrics.LeadMetrics
}

func NewVapiWebhookHandler(cfg VapiWebhookConfig) *VapiWebhookHandler {
	if cfg.Logger == nil {
		cfg.Logger = logging.Default()
	}
	return &VapiWebhookHandler{
		notifier: cfg.Notifier,
		logger:   cfg.Logger,
		metrics:  cfg.Metrics,
	}
}

type webhookAck struct {
	OK         bool   `json:"ok"`
	EmailSent  bool   `json:"emailSent,omitempty"`
	Lead       string `json:"lead,omitempty"`
	Ignored    string `json:"ignored,omitempty"`
	Note       string `json:"note,omitempty"`
	EmailError string `json:"emailError,omitempty"`
}

// Handle processes POST /webhooks/vapi.
func (h *VapiWebhookHandler) Handle(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	if r.Method != http.MethodPost {
		ack(w, webhookAck{OK: true, Ignored: "non-POST"})
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		h.logger.Warn("webhook body read failed", "error", err)
		ack(w, webhookAck{OK: true, Note: "unreadable body"})
		return
	}

	env, err := vapi.ParseWebhook(body)
	if err != nil {
		h.metrics.ObserveWebhook("unparseable", "ignored")
		h.logger.Warn("webhook payload is not JSON", "error", err)
		ack(w, webhookAck{OK: true, Note: "unparseable payload"})
		return
	}

	eventType := env.Message.Type
	if eventType != vapi.EventEndOfCallReport {
		h.metrics.ObserveWebhook(eventType, "ignored")
		ack(w, webhookAck{OK: true, Ignored: eventType})
		return
	}

	report := leadreport.FromWebhook(env)
	h.logger.Info("end-of-call report received",
		"call_id", report.CallID,
		"call_type", report.CallType,
		"lead", report.LeadName,
		"interest", string(report.Lead.InterestLevel),
	)

	err = notify.ErrEmailNotConfigured
	if h.notifier != nil {
		err = h.notifier.NotifyCallReport(r.Context(), report)
	}
	h.metrics.ObserveWebhookLatency(eventType, time.Since(start).Seconds())
	switch {
	case err == nil:
		h.metrics.ObserveWebhook(eventType, "emailed")
		h.metrics.ObserveLeadEmail("sent")
		ack(w, webhookAck{OK: true, EmailSent: true, Lead: report.LeadName})
	case errors.Is(err, notify.ErrEmailNotConfigured):
		h.metrics.ObserveWebhook(eventType, "logged")
		ack(w, webhookAck{OK: true, Note: "email not configured; lead logged"})
	default:
		h.metrics.ObserveWebhook(eventType, "email_failed")
		h.metrics.ObserveLeadEmail("failed")
		h.logger.Error("lead email dispatch failed", "error", err, "call_id", report.CallID)
		ack(w, webhookAck{OK: true, EmailError: "lead email could not be sent"})
	}
}

func ack(w http.ResponseWriter, body webhookAck) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(body)
}
