package notify

import (
	"context"
	"errors"
	"testing"

	"github.com/aimissoula/agency-platform/internal/leadreport"
	"github.com/aimissoula/agency-platform/internal/leads"
	"github.com/aimissoula/agency-platform/internal/vapi"
)

type recordingSender struct {
	got   EmailMessage
	err   error
	calls int
}

func (r *recordingSender) Send(ctx context.Context, msg EmailMessage) error {
	r.calls++
	r.got = msg
	return r.err
}

func reportFixture(t *testing.T) leadreport.Report {
	t.Helper()
	env, err := vapi.ParseWebhook([]byte(`{"message":{"type":"end-of-call-report","analysis":{"structuredData":{"lead_name":"Dana","interest_level":"hot"}}}}`))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	return leadreport.FromWebhook(env)
}

func TestNotifyCallReportSendsEmail(t *testing.T) {
	sender := &recordingSender{}
	svc := NewService(sender, "hello@aimissoula.com", nil)

	if err := svc.NotifyCallReport(context.Background(), reportFixture(t)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sender.calls != 1 {
		t.Fatalf("expected one send, got %d", sender.calls)
	}
	if sender.got.To != "hello@aimissoula.com" {
		t.Fatalf("recipient: got %q", sender.got.To)
	}
}

func TestNotifyCallReportDegradesToLogging(t *testing.T) {
	svc := NewService(nil, "", nil)
	err := svc.NotifyCallReport(context.Background(), reportFixture(t))
	if !errors.Is(err, ErrEmailNotConfigured) {
		t.Fatalf("expected ErrEmailNotConfigured, got %v", err)
	}
}

func TestNotifyCallReportSenderError(t *testing.T) {
	sender := &recordingSender{err: errors.New("rate limited")}
	svc := NewService(sender, "hello@aimissoula.com", nil)
	err := svc.NotifyCallReport(context.Background(), reportFixture(t))
	if err == nil || errors.Is(err, ErrEmailNotConfigured) {
		t.Fatalf("expected send error, got %v", err)
	}
}

func TestNotifyNewLeadWithoutSenderIsSilent(t *testing.T) {
	svc := NewService(nil, "", nil)
	lead := &leads.Lead{Name: "Sam", Email: "sam@example.com", Source: leads.SourceContactForm}
	if err := svc.NotifyNewLead(context.Background(), lead); err != nil {
		t.Fatalf("degrade-to-logging should not error: %v", err)
	}
}

func TestEmailEnabled(t *testing.T) {
	if NewService(nil, "x@y.com", nil).EmailEnabled() {
		t.Error("nil sender should disable email")
	}
	if NewService(&recordingSender{}, "", nil).EmailEnabled() {
		t.Error("empty recipient should disable email")
	}
	if !NewService(&recordingSender{}, "x@y.com", nil).EmailEnabled() {
		t.Error("sender plus recipient should enable email")
	}
}
