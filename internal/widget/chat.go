package widget

import (
	"strings"
	"time"

	"github.com/aimissoula/agency-platform/internal/leads"
	"github.com/aimissoula/agency-platform/internal/llm"
)

// DefaultChatGateTurns is how many visitor messages flow before the lead
// gate appears.
const DefaultChatGateTurns = 3

// FallbackReply is shown when the model call fails. It stays in character;
// the widget never surfaces a raw error to a visitor.
const FallbackReply = "Hmm, I hit a snag on my end just now. Give me another try in a second, or grab a spot on a free demo call and a human will pick it up from here."

// ChatWidget drives one visitor's chat session. After the configured number
// of visitor turns it gates the conversation behind the lead form, exactly
// once per session. Only one completion may be in flight at a time.
type ChatWidget struct {
	gateAfter  int
	userTurns  int
	gateShown  bool
	gatePassed bool
	inFlight   bool
	lead       *leads.Lead
	history    []llm.ChatMessage
}

// NewChatWidget creates a chat session gating after gateAfter visitor
// turns. Non-positive values fall back to the default.
func NewChatWidget(gateAfter int) *ChatWidget {
	if gateAfter <= 0 {
		gateAfter = DefaultChatGateTurns
	}
	return &ChatWidget{gateAfter: gateAfter}
}

// Gated reports whether the widget is currently blocked on the lead form.
func (w *ChatWidget) Gated() bool {
	return w.gateShown && !w.gatePassed
}

// History returns the conversation so far, for forwarding to the model.
func (w *ChatWidget) History() []llm.ChatMessage {
	out := make([]llm.ChatMessage, len(w.history))
	copy(out, w.history)
	return out
}

// Lead returns the captured lead, or nil before the gate has been passed.
func (w *ChatWidget) Lead() *leads.Lead {
	return w.lead
}

// Send records a visitor message and marks a completion as in flight.
// It fails while gated, while a completion is pending, or on blank input.
func (w *ChatWidget) Send(content string) error {
	content = strings.TrimSpace(content)
	if content == "" {
		return ErrInvalidTransition
	}
	if w.Gated() {
		return ErrAwaitingLead
	}
	if w.inFlight {
		return ErrRequestInFlight
	}
	w.history = append(w.history, llm.ChatMessage{Role: llm.ChatRoleUser, Content: content})
	w.userTurns++
	w.inFlight = true
	return nil
}

// Resolve completes the in-flight turn with the model's reply, or with the
// in-character fallback when the model failed. It returns the text to show
// and whether the lead gate should now be presented.
func (w *ChatWidget) Resolve(reply string, modelErr error) (text string, gateNow bool) {
	if !w.inFlight {
		return "", false
	}
	w.inFlight = false

	text = strings.TrimSpace(reply)
	if modelErr != nil || text == "" {
		text = FallbackReply
	}
	w.history = append(w.history, llm.ChatMessage{Role: llm.ChatRoleAssistant, Content: text})

	// The gate fires after the Nth visitor turn is answered, once per
	// session. A session that already passed it is never re-gated.
	if !w.gateShown && !w.gatePassed && w.userTurns >= w.gateAfter {
		w.gateShown = true
		gateNow = true
	}
	return text, gateNow
}

// SubmitLead passes the gate. Name and email are mandatory; the captured
// lead is returned for dispatch. Submitting when not gated is an error.
func (w *ChatWidget) SubmitLead(form LeadForm) (*leads.Lead, error) {
	if !w.Gated() {
		return nil, ErrInvalidTransition
	}
	lead := form.Lead(leads.SourceChatWidget)
	lead.CapturedAt = time.Now().UTC()
	if err := lead.Validate(); err != nil {
		return nil, err
	}
	w.gatePassed = true
	w.lead = lead
	return lead, nil
}
