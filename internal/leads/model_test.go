package leads

import (
	"errors"
	"testing"
)

func TestParseInterestLevel(t *testing.T) {
	tests := []struct {
		in   string
		want InterestLevel
	}{
		{"hot", InterestHot},
		{"WARM", InterestWarm},
		{" cold ", InterestCold},
		{"lukewarm", InterestUnknown},
		{"", InterestUnknown},
	}
	for _, tt := range tests {
		if got := ParseInterestLevel(tt.in); got != tt.want {
			t.Errorf("ParseInterestLevel(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestInterestLabelNeverEmpty(t *testing.T) {
	for _, l := range []InterestLevel{InterestHot, InterestWarm, InterestCold, InterestUnknown, InterestLevel("bogus")} {
		if l.Label() == "" {
			t.Errorf("Label() for %q returned empty string", l)
		}
	}
	if InterestLevel("bogus").Label() != "⚪ Unknown" {
		t.Error("unrecognized level should map to the Unknown label")
	}
}

func TestLeadValidateGateFields(t *testing.T) {
	lead := &Lead{Email: "sam@example.com"}
	if err := lead.Validate(); !errors.Is(err, ErrNameRequired) {
		t.Fatalf("expected ErrNameRequired, got %v", err)
	}

	lead = &Lead{Name: "Sam"}
	if err := lead.Validate(); !errors.Is(err, ErrEmailRequired) {
		t.Fatalf("expected ErrEmailRequired, got %v", err)
	}

	lead = &Lead{Name: "Sam", Email: "sam@example.com"}
	if err := lead.Validate(); err != nil {
		t.Fatalf("expected valid lead with name+email only, got %v", err)
	}

	// Whitespace does not satisfy the gate.
	lead = &Lead{Name: "   ", Email: "sam@example.com"}
	if err := lead.Validate(); !errors.Is(err, ErrNameRequired) {
		t.Fatalf("expected ErrNameRequired for blank name, got %v", err)
	}
}
