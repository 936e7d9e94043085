package widget

import (
	"errors"
	"testing"
)

func advanceTurn(t *testing.T, w *ChatWidget, msg, reply string) bool {
	t.Helper()
	if err := w.Send(msg); err != nil {
		t.Fatalf("send %q: %v", msg, err)
	}
	_, gateNow := w.Resolve(reply, nil)
	return gateNow
}

func TestChatGateFiresAfterConfiguredTurns(t *testing.T) {
	w := NewChatWidget(3)

	if advanceTurn(t, w, "hi", "hello") {
		t.Fatal("gate must not fire on turn 1")
	}
	if advanceTurn(t, w, "what do you do", "we build assistants") {
		t.Fatal("gate must not fire on turn 2")
	}
	if !advanceTurn(t, w, "how much", "depends on scope") {
		t.Fatal("gate should fire after turn 3")
	}
	if !w.Gated() {
		t.Fatal("widget should be gated")
	}
}

func TestChatGateBlocksUntilLeadSubmitted(t *testing.T) {
	w := NewChatWidget(1)
	advanceTurn(t, w, "hi", "hello")

	if err := w.Send("another question"); !errors.Is(err, ErrAwaitingLead) {
		t.Fatalf("expected ErrAwaitingLead, got %v", err)
	}

	if _, err := w.SubmitLead(LeadForm{Name: "Dana"}); err == nil {
		t.Fatal("email is mandatory at the gate")
	}
	if _, err := w.SubmitLead(LeadForm{Email: "dana@example.com"}); err == nil {
		t.Fatal("name is mandatory at the gate")
	}

	lead, err := w.SubmitLead(LeadForm{Name: "Dana", Email: "dana@example.com"})
	if err != nil {
		t.Fatalf("submit lead: %v", err)
	}
	if lead.Source != "chat-widget" {
		t.Fatalf("unexpected source: %v", lead.Source)
	}
	if err := w.Send("another question"); err != nil {
		t.Fatalf("chat should resume after the gate: %v", err)
	}
}

func TestChatGateFiresExactlyOnce(t *testing.T) {
	w := NewChatWidget(3)
	advanceTurn(t, w, "1", "a")
	advanceTurn(t, w, "2", "b")
	if !advanceTurn(t, w, "3", "c") {
		t.Fatal("gate should fire at turn 3")
	}
	if _, err := w.SubmitLead(LeadForm{Name: "Dana", Email: "dana@example.com"}); err != nil {
		t.Fatalf("submit lead: %v", err)
	}
	for turn := 4; turn <= 6; turn++ {
		if advanceTurn(t, w, "again", "reply") {
			t.Fatalf("gate re-fired at turn %d", turn)
		}
	}
}

func TestChatSingleRequestInFlight(t *testing.T) {
	w := NewChatWidget(3)
	if err := w.Send("first"); err != nil {
		t.Fatalf("send: %v", err)
	}
	if err := w.Send("second"); !errors.Is(err, ErrRequestInFlight) {
		t.Fatalf("expected ErrRequestInFlight, got %v", err)
	}
	w.Resolve("reply", nil)
	if err := w.Send("second"); err != nil {
		t.Fatalf("send after resolve: %v", err)
	}
}

func TestChatFallbackOnModelFailure(t *testing.T) {
	w := NewChatWidget(3)
	if err := w.Send("hi"); err != nil {
		t.Fatalf("send: %v", err)
	}
	text, _ := w.Resolve("", errors.New("upstream down"))
	if text != FallbackReply {
		t.Fatalf("expected in-character fallback, got %q", text)
	}
	history := w.History()
	if history[len(history)-1].Content != FallbackReply {
		t.Fatal("fallback must be recorded in the transcript")
	}
}

func TestChatRejectsBlankMessage(t *testing.T) {
	w := NewChatWidget(3)
	if err := w.Send("   "); err == nil {
		t.Fatal("blank messages should be rejected")
	}
}

func TestChatSubmitLeadWhenNotGated(t *testing.T) {
	w := NewChatWidget(3)
	if _, err := w.SubmitLead(LeadForm{Name: "Dana", Email: "dana@example.com"}); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}
}
