package leads

import (
	"strings"
	"time"
)

// InterestLevel is the closed triage vocabulary extracted from a demo
// interaction. Anything unrecognized maps to InterestUnknown.
type InterestLevel string

const (
	InterestHot     InterestLevel = "hot"
	InterestWarm    InterestLevel = "warm"
	InterestCold    InterestLevel = "cold"
	InterestUnknown InterestLevel = "unknown"
)

// ParseInterestLevel maps a free-form value onto the closed vocabulary.
// It never fails; unrecognized or missing values become InterestUnknown.
func ParseInterestLevel(value string) InterestLevel {
	switch InterestLevel(strings.ToLower(strings.TrimSpace(value))) {
	case InterestHot:
		return InterestHot
	case InterestWarm:
		return InterestWarm
	case InterestCold:
		return InterestCold
	default:
		return InterestUnknown
	}
}

// Label returns the display form used in notification subject lines.
func (l InterestLevel) Label() string {
	switch l {
	case InterestHot:
		return "🔥 HOT"
	case InterestWarm:
		return "🟡 WARM"
	case InterestCold:
		return "🔵 COLD"
	default:
		return "⚪ Unknown"
	}
}

// Source identifies which widget or channel produced a lead.
type Source string

const (
	SourceChatWidget    Source = "chat-widget"
	SourcePhoneDemo     Source = "phone-demo"
	SourceVoiceDemo     Source = "voice-demo"
	SourceAdCopyDemo    Source = "ad-copy-demo"
	SourceROICalculator Source = "roi-calculator"
	SourceContactForm   Source = "contact-form"
	SourceInboundCall   Source = "inbound-call"
)

// Lead is a prospective customer's contact and context information captured
// through a widget or call. Leads are not persisted; the terminal state is
// a notification email or a structured log line.
type Lead struct {
	Name          string        `json:"name,omitempty"`
	Email         string        `json:"email,omitempty"`
	Phone         string        `json:"phone,omitempty"`
	Business      string        `json:"business,omitempty"`
	BusinessType  string        `json:"businessType,omitempty"`
	PainPoints    string        `json:"painPoints,omitempty"`
	InterestLevel InterestLevel `json:"interestLevel,omitempty"`
	NextSteps     string        `json:"nextSteps,omitempty"`
	Source        Source        `json:"source"`
	CapturedAt    time.Time     `json:"capturedAt"`
}

// Validate checks the two mandatory gate fields. Widgets must not reveal
// full demo value until both are present; everything else is optional.
func (l *Lead) Validate() error {
	if strings.TrimSpace(l.Name) == "" {
		return ErrNameRequired
	}
	if strings.TrimSpace(l.Email) == "" {
		return ErrEmailRequired
	}
	return nil
}
