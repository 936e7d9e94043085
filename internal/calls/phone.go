package calls

import "strings"

// NormalizeUSE164 canonicalizes a user-entered phone number to E.164,
// defaulting to the US country code. A ten-digit number gets a "1" prefix;
// an eleven-digit number starting with 1 is kept as-is, so "14067037627"
// and "4067037627" both normalize to "+14067037627".
func NormalizeUSE164(value string) string {
	digits := sanitizePhone(value)
	if digits == "" {
		return ""
	}
	if !strings.HasPrefix(digits, "1") {
		digits = "1" + digits
	}
	return "+" + digits
}

func sanitizePhone(value string) string {
	var b strings.Builder
	for _, r := range value {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
