package widget

import "github.com/aimissoula/agency-platform/internal/calls"

// PhoneState is the phone demo widget's lifecycle.
type PhoneState string

const (
	PhoneIdle    PhoneState = "idle"
	PhoneCalling PhoneState = "calling"
	PhoneSuccess PhoneState = "success"
	PhoneError   PhoneState = "error"
)

// PhoneWidget drives the "call me now" demo button.
type PhoneWidget struct {
	state  PhoneState
	number string
}

// NewPhoneWidget creates a phone demo session.
func NewPhoneWidget() *PhoneWidget {
	return &PhoneWidget{state: PhoneIdle}
}

// State returns the current lifecycle state.
func (w *PhoneWidget) State() PhoneState {
	return w.state
}

// Number returns the normalized dial target, once requested.
func (w *PhoneWidget) Number() string {
	return w.number
}

// Request moves idle to calling and returns the normalized number the
// backend should dial. Double-taps while calling are rejected.
func (w *PhoneWidget) Request(rawPhone string) (string, error) {
	if w.state == PhoneCalling {
		return "", ErrRequestInFlight
	}
	if w.state != PhoneIdle && w.state != PhoneError {
		return "", ErrInvalidTransition
	}
	e164 := calls.NormalizeUSE164(rawPhone)
	if e164 == "" {
		return "", ErrInvalidTransition
	}
	w.state = PhoneCalling
	w.number = e164
	return e164, nil
}

// Complete resolves the calling state based on the trigger result.
func (w *PhoneWidget) Complete(ok bool) error {
	if w.state != PhoneCalling {
		return ErrInvalidTransition
	}
	if ok {
		w.state = PhoneSuccess
	} else {
		w.state = PhoneError
	}
	return nil
}

// Reset returns the widget to idle so the visitor can try again.
func (w *PhoneWidget) Reset() {
	w.state = PhoneIdle
	w.number = ""
}
