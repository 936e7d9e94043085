package notify

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/aimissoula/agency-platform/internal/leadreport"
	"github.com/aimissoula/agency-platform/internal/leads"
	"github.com/aimissoula/agency-platform/pkg/logging"
)

// ErrEmailNotConfigured signals that the lead was logged instead of emailed
// because no email provider credential is present. This is the deliberate
// degrade-to-logging path, not a failure.
var ErrEmailNotConfigured = errors.New("notify: email provider not configured")

// Service dispatches lead notifications to the agency operator.
type Service struct {
	email  EmailSender
	to     string
	logger *logging.Logger
}

// NewService creates a notification service. A nil sender or empty recipient
// puts the service in degrade-to-logging mode.
func NewService(email EmailSender, to string, logger *logging.Logger) *Service {
	if logger == nil {
		logger = logging.Default()
	}
	return &Service{
		email:  email,
		to:     to,
		logger: logger,
	}
}

// EmailEnabled reports whether a real email channel is configured.
func (s *Service) EmailEnabled() bool {
	return s.email != nil && s.to != ""
}

// NotifyCallReport emails the end-of-call lead summary. When no email
// channel is configured the structured lead is logged and
// ErrEmailNotConfigured is returned so the caller can mark the delivery
// as processed-logged rather than processed-emailed.
func (s *Service) NotifyCallReport(ctx context.Context, report leadreport.Report) error {
	if !s.EmailEnabled() {
		s.logLead(report.Lead, "call_id", report.CallID, "summary", report.Summary)
		return ErrEmailNotConfigured
	}

	msg := ComposeLeadEmail(report)
	msg.To = s.to
	if err := s.email.Send(ctx, msg); err != nil {
		return fmt.Errorf("notify: lead report email: %w", err)
	}
	s.logger.Info("lead email sent",
		"lead", report.LeadName,
		"interest", string(report.Lead.InterestLevel),
		"call_id", report.CallID,
	)
	return nil
}

// NotifyNewLead emails a widget/contact-form capture. Degrades to logging
// without error: the capture endpoint treats notification as best-effort.
func (s *Service) NotifyNewLead(ctx context.Context, lead *leads.Lead) error {
	if !s.EmailEnabled() {
		s.logLead(*lead)
		return nil
	}

	msg := ComposeNewLeadEmail(lead)
	msg.To = s.to
	if err := s.email.Send(ctx, msg); err != nil {
		return fmt.Errorf("notify: new lead email: %w", err)
	}
	s.logger.Info("new lead email sent", "lead", lead.Name, "source", string(lead.Source))
	return nil
}

func (s *Service) logLead(lead leads.Lead, extra ...any) {
	payload, err := json.Marshal(lead)
	if err != nil {
		payload = []byte("{}")
	}
	args := append([]any{"lead", string(payload)}, extra...)
	s.logger.Info("no email provider configured, logging lead", args...)
}
