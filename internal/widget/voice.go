package widget

import (
	"strings"
	"time"
)

// VoiceState is the browser voice demo's lifecycle.
type VoiceState string

const (
	VoiceIdle       VoiceState = "idle"
	VoiceConnecting VoiceState = "connecting"
	VoiceActive     VoiceState = "active"
	VoiceEnded      VoiceState = "ended"
)

// DefaultMaxCallDuration caps browser demo calls. Minutes on the voice
// platform are billed; nobody gets an open mic forever.
const DefaultMaxCallDuration = 300 * time.Second

// EndCallPhrases end the demo when the assistant says one of them.
var EndCallPhrases = []string{
	"goodbye",
	"bye for now",
	"talk to you soon",
	"have a great day",
}

// VoiceWidget drives the in-browser voice demo.
type VoiceWidget struct {
	state       VoiceState
	startedAt   time.Time
	endReason   string
	maxDuration time.Duration
}

// NewVoiceWidget creates a voice demo session. A non-positive cap falls
// back to the default.
func NewVoiceWidget(maxDuration time.Duration) *VoiceWidget {
	if maxDuration <= 0 {
		maxDuration = DefaultMaxCallDuration
	}
	return &VoiceWidget{state: VoiceIdle, maxDuration: maxDuration}
}

// State returns the current lifecycle state.
func (w *VoiceWidget) State() VoiceState {
	return w.state
}

// EndReason returns why the call ended, once it has.
func (w *VoiceWidget) EndReason() string {
	return w.endReason
}

// Start moves idle to connecting.
func (w *VoiceWidget) Start() error {
	if w.state != VoiceIdle {
		return ErrInvalidTransition
	}
	w.state = VoiceConnecting
	return nil
}

// Connected moves connecting to active and starts the duration clock.
func (w *VoiceWidget) Connected(now time.Time) error {
	if w.state != VoiceConnecting {
		return ErrInvalidTransition
	}
	w.state = VoiceActive
	w.startedAt = now
	return nil
}

// End terminates the call. Visitor hangups and provider-side ends land
// here alike; ending an already ended call is a no-op.
func (w *VoiceWidget) End(reason string) {
	if w.state == VoiceEnded || w.state == VoiceIdle {
		return
	}
	w.state = VoiceEnded
	w.endReason = reason
}

// CheckDuration ends the call when the cap is exceeded. It reports whether
// the call is still running.
func (w *VoiceWidget) CheckDuration(now time.Time) bool {
	if w.state != VoiceActive {
		return false
	}
	if now.Sub(w.startedAt) >= w.maxDuration {
		w.End("max-duration-reached")
		return false
	}
	return true
}

// IsEndPhrase reports whether the assistant's utterance should end the
// call.
func IsEndPhrase(utterance string) bool {
	u := strings.ToLower(utterance)
	for _, phrase := range EndCallPhrases {
		if strings.Contains(u, phrase) {
			return true
		}
	}
	return false
}
