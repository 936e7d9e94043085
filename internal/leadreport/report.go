// Package leadreport normalizes end-of-call reports from the voice platform
// into a single typed value with the placeholder policy in one place. Every
// field the provider may omit gets a display placeholder here, so downstream
// formatting never has to null-check.
package leadreport

import (
	"fmt"
	"strings"
	"time"

	"github.com/aimissoula/agency-platform/internal/leads"
	"github.com/aimissoula/agency-platform/internal/vapi"
)

// Display placeholders substituted for missing provider fields.
const (
	PlaceholderUnknown      = "unknown"
	PlaceholderNotAvailable = "N/A"
	PlaceholderDash         = "—"
	PlaceholderNoSummary    = "No summary available"
	PlaceholderNoTranscript = "No transcript available"
	UnknownCallerName       = "Unknown Caller"
)

// reportTimezone is where the agency reads its lead emails.
const reportTimezone = "America/Denver"

// TranscriptTurn is one conversational turn, already filtered and labeled.
type TranscriptTurn struct {
	Role string // "assistant" or "user"
	Text string
}

// Report is the normalized end-of-call report. Every string field is
// guaranteed non-empty: absent values carry placeholders.
type Report struct {
	Lead         leads.Lead
	LeadName     string // display name, never empty
	Location     string
	Employees    string
	WantsTrial   *bool
	InterestedIn string

	CallID       string
	CallType     string
	CallerNumber string
	Duration     string
	EndedReason  string
	RecordingURL string
	EndedAt      string

	Summary           string
	SuccessEvaluation string
	Transcript        []TranscriptTurn
}

// FromWebhook builds a Report from a decoded webhook envelope. It tolerates
// any combination of missing nested fields.
func FromWebhook(env *vapi.WebhookEnvelope) Report {
	msg := env.Message
	data := msg.Analysis.StructuredData

	callerNumber := msg.Call.Customer.Number
	if callerNumber == "" {
		callerNumber = PlaceholderUnknown
	}

	leadPhone := data.Phone
	if leadPhone == "" && callerNumber != PlaceholderUnknown {
		leadPhone = callerNumber
	}

	r := Report{
		Lead: leads.Lead{
			Name:          data.LeadName,
			Email:         data.Email,
			Phone:         leadPhone,
			Business:      data.BusinessName,
			BusinessType:  data.BusinessType,
			PainPoints:    data.PainPoints,
			InterestLevel: leads.ParseInterestLevel(data.InterestLevel),
			NextSteps:     data.NextSteps,
			Source:        sourceForCallType(msg.Call.Type),
		},
		LeadName:     orDefault(data.LeadName, UnknownCallerName),
		Location:     orDefault(data.Location, PlaceholderDash),
		Employees:    orDefault(data.EmployeeCount, PlaceholderDash),
		WantsTrial:   data.WantsTrial,
		InterestedIn: orDefault(data.InterestedIn, PlaceholderDash),

		CallID:       orDefault(msg.Call.ID, PlaceholderUnknown),
		CallType:     orDefault(msg.Call.Type, PlaceholderUnknown),
		CallerNumber: callerNumber,
		Duration:     formatDuration(msg.DurationSeconds),
		EndedReason:  orDefault(firstNonEmpty(msg.EndedReason, msg.Call.EndedReason), PlaceholderUnknown),
		RecordingURL: orDefault(firstNonEmpty(msg.RecordingURL, msg.Artifact.RecordingURL, msg.Call.RecordingURL), PlaceholderNotAvailable),
		EndedAt:      formatTimestamp(msg.Timestamp.Time),

		Summary:           orDefault(msg.Analysis.Summary, PlaceholderNoSummary),
		SuccessEvaluation: orDefault(msg.Analysis.SuccessEvaluation, PlaceholderNotAvailable),
		Transcript:        buildTranscript(msg.Artifact.Messages),
	}
	return r
}

// CallTypeLabel returns the display label for the call type.
func (r Report) CallTypeLabel() string {
	switch r.CallType {
	case vapi.CallTypeInbound:
		return "📞 Inbound Call"
	case vapi.CallTypeOutbound:
		return "📱 Outbound Demo"
	case vapi.CallTypeWeb:
		return "🌐 Browser Voice Demo"
	default:
		return r.CallType
	}
}

// RenderTranscript joins the labeled turns into a plain-text block.
func (r Report) RenderTranscript() string {
	if len(r.Transcript) == 0 {
		return PlaceholderNoTranscript
	}
	lines := make([]string, 0, len(r.Transcript))
	for _, turn := range r.Transcript {
		speaker := "👤 Caller"
		if turn.Role == "assistant" {
			speaker = "🤖 AI"
		}
		lines = append(lines, speaker+": "+turn.Text)
	}
	return strings.Join(lines, "\n")
}

// buildTranscript keeps only conversational turns: system and tool traffic
// is dropped, empty turns are dropped.
func buildTranscript(msgs []vapi.ArtifactMessage) []TranscriptTurn {
	turns := make([]TranscriptTurn, 0, len(msgs))
	for _, m := range msgs {
		role := strings.ToLower(strings.TrimSpace(m.Role))
		if role != "assistant" && role != "user" && role != "bot" && role != "customer" {
			continue
		}
		text := strings.TrimSpace(m.Text())
		if text == "" {
			continue
		}
		if role == "bot" {
			role = "assistant"
		}
		if role == "customer" {
			role = "user"
		}
		turns = append(turns, TranscriptTurn{Role: role, Text: text})
	}
	return turns
}

func sourceForCallType(callType string) leads.Source {
	switch callType {
	case vapi.CallTypeInbound:
		return leads.SourceInboundCall
	case vapi.CallTypeWeb:
		return leads.SourceVoiceDemo
	default:
		return leads.SourcePhoneDemo
	}
}

func formatDuration(seconds float64) string {
	if seconds <= 0 {
		return PlaceholderUnknown
	}
	total := int(seconds)
	return fmt.Sprintf("%dm %ds", total/60, total%60)
}

func formatTimestamp(t time.Time) string {
	if t.IsZero() {
		t = time.Now()
	}
	if loc, err := time.LoadLocation(reportTimezone); err == nil {
		t = t.In(loc)
	}
	return t.Format("Jan 2, 2006 3:04 PM MST")
}

func orDefault(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
