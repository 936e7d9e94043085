// Package widget holds the server-side state machines behind the marketing
// site's demo widgets. Each widget is a small, single-session machine; the
// browser only renders what these machines decide, so the lead gate cannot
// be bypassed by poking at the DOM.
package widget

import (
	"errors"

	"github.com/aimissoula/agency-platform/internal/leads"
)

var (
	// ErrAwaitingLead means the widget is gated and needs name + email
	// before it will continue.
	ErrAwaitingLead = errors.New("widget: lead details required to continue")

	// ErrRequestInFlight means a previous request has not completed yet.
	ErrRequestInFlight = errors.New("widget: a request is already in flight")

	// ErrInvalidTransition means the operation does not apply in the
	// widget's current state.
	ErrInvalidTransition = errors.New("widget: invalid state transition")
)

// LeadForm is the gate form every widget shares. Name and email are the
// mandatory fields; everything else is optional color.
type LeadForm struct {
	Name     string
	Email    string
	Business string
	Phone    string
}

// Lead converts the form into a lead tagged with the given source. The
// returned lead still needs Validate before dispatch.
func (f LeadForm) Lead(source leads.Source) *leads.Lead {
	return &leads.Lead{
		Name:     f.Name,
		Email:    f.Email,
		Business: f.Business,
		Phone:    f.Phone,
		Source:   source,
	}
}
