package widget

import (
	"time"

	"github.com/aimissoula/agency-platform/internal/leads"
)

// AdCopyWidget drives the ad copy demo. Generation is gated on the lead
// form; the business fields are optional and default server-side.
type AdCopyWidget struct {
	unlocked bool
	lead     *leads.Lead
	busy     bool
}

// NewAdCopyWidget creates an ad copy session.
func NewAdCopyWidget() *AdCopyWidget {
	return &AdCopyWidget{}
}

// Unlocked reports whether generation is available.
func (w *AdCopyWidget) Unlocked() bool {
	return w.unlocked
}

// Lead returns the captured lead, or nil before unlock.
func (w *AdCopyWidget) Lead() *leads.Lead {
	return w.lead
}

// Unlock passes the gate. Idempotent once passed.
func (w *AdCopyWidget) Unlock(form LeadForm) (*leads.Lead, error) {
	if w.unlocked {
		return w.lead, nil
	}
	lead := form.Lead(leads.SourceAdCopyDemo)
	lead.CapturedAt = time.Now().UTC()
	if err := lead.Validate(); err != nil {
		return nil, err
	}
	w.unlocked = true
	w.lead = lead
	return lead, nil
}

// BeginGeneration marks a generation request as in flight. It fails before
// the gate is passed or while a request is pending.
func (w *AdCopyWidget) BeginGeneration() error {
	if !w.unlocked {
		return ErrAwaitingLead
	}
	if w.busy {
		return ErrRequestInFlight
	}
	w.busy = true
	return nil
}

// FinishGeneration clears the in-flight flag.
func (w *AdCopyWidget) FinishGeneration() {
	w.busy = false
}
