package vapi

import (
	"bytes"
	"encoding/json"
	"strconv"
	"time"
)

// Webhook event type this system acts on. Vapi pushes every server event to
// the same URL; only the final report after a call ends matters here.
const EventEndOfCallReport = "end-of-call-report"

// Call types as reported by the platform.
const (
	CallTypeInbound  = "inboundPhoneCall"
	CallTypeOutbound = "outboundPhoneCall"
	CallTypeWeb      = "webCall"
)

// CreateCallRequest is the body for the call-creation API.
type CreateCallRequest struct {
	AssistantID        string              `json:"assistantId"`
	AssistantOverrides *AssistantOverrides `json:"assistantOverrides,omitempty"`
	PhoneNumberID      string              `json:"phoneNumberId"`
	Customer           Customer            `json:"customer"`
}

// AssistantOverrides customizes a saved assistant for a single call.
type AssistantOverrides struct {
	FirstMessage string            `json:"firstMessage,omitempty"`
	Metadata     map[string]string `json:"metadata,omitempty"`
}

// Customer identifies the callee.
type Customer struct {
	Number string `json:"number"`
	Name   string `json:"name,omitempty"`
}

// Call is the call object, both in API responses and webhook payloads.
type Call struct {
	ID           string   `json:"id"`
	Type         string   `json:"type"`
	Status       string   `json:"status"`
	Customer     Customer `json:"customer"`
	EndedReason  string   `json:"endedReason"`
	RecordingURL string   `json:"recordingUrl"`
}

// WebhookEnvelope is the outer shape of every server event Vapi pushes.
type WebhookEnvelope struct {
	Message ServerMessage `json:"message"`
}

// ServerMessage carries one server event. Every nested field may be absent
// depending on the event type; readers must tolerate zero values.
type ServerMessage struct {
	Type            string   `json:"type"`
	Call            Call     `json:"call"`
	Analysis        Analysis `json:"analysis"`
	Artifact        Artifact `json:"artifact"`
	DurationSeconds float64  `json:"durationSeconds"`
	EndedReason     string   `json:"endedReason"`
	RecordingURL    string   `json:"recordingUrl"`
	Timestamp       FlexTime `json:"timestamp"`
}

// Analysis is the post-call analysis block produced by the platform's
// analysis plan.
type Analysis struct {
	Summary           string         `json:"summary"`
	SuccessEvaluation string         `json:"successEvaluation"`
	StructuredData    StructuredData `json:"structuredData"`
}

// StructuredData is the lead-shaped extraction the assistant is configured
// to produce. Every field is optional.
type StructuredData struct {
	LeadName      string `json:"lead_name"`
	BusinessName  string `json:"business_name"`
	BusinessType  string `json:"business_type"`
	Phone         string `json:"phone"`
	Email         string `json:"email"`
	Location      string `json:"location"`
	EmployeeCount string `json:"employee_count"`
	InterestLevel string `json:"interest_level"`
	WantsTrial    *bool  `json:"wants_free_trial"`
	PainPoints    string `json:"pain_points"`
	InterestedIn  string `json:"interested_in"`
	NextSteps     string `json:"next_steps"`
}

// Artifact holds call artifacts: the recording and the raw message log.
type Artifact struct {
	RecordingURL string            `json:"recordingUrl"`
	Messages     []ArtifactMessage `json:"messages"`
}

// ArtifactMessage is one turn in the raw call log. Depending on provider
// version the text arrives as "message" or "content".
type ArtifactMessage struct {
	Role    string `json:"role"`
	Message string `json:"message"`
	Content string `json:"content"`
}

// Text returns whichever text field the provider populated.
func (m ArtifactMessage) Text() string {
	if m.Message != "" {
		return m.Message
	}
	return m.Content
}

// ParseWebhook decodes a webhook body. Unknown or extra fields are ignored;
// a body that is not JSON at all yields an error, but partial payloads
// decode to zero values rather than failing.
func ParseWebhook(body []byte) (*WebhookEnvelope, error) {
	var env WebhookEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, err
	}
	return &env, nil
}

// FlexTime accepts either an RFC3339 string or an epoch-milliseconds number,
// both of which the provider has been observed to send.
type FlexTime struct {
	time.Time
}

func (t *FlexTime) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return nil
		}
		if parsed, err := time.Parse(time.RFC3339, s); err == nil {
			t.Time = parsed
		}
		return nil
	}
	if millis, err := strconv.ParseFloat(string(data), 64); err == nil {
		t.Time = time.UnixMilli(int64(millis)).UTC()
	}
	return nil
}
