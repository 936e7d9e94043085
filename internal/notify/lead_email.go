package notify

import (
	"fmt"
	"html"
	"strings"

	"github.com/aimissoula/agency-platform/internal/leadreport"
	"github.com/aimissoula/agency-platform/internal/leads"
)

// ComposeLeadEmail builds the operator notification for a finished call:
// a triage-friendly subject line, a plain-text body, and a scannable HTML
// body. The report is already placeholder-substituted, so composition never
// branches on missing data except for purely cosmetic pieces.
func ComposeLeadEmail(r leadreport.Report) EmailMessage {
	interest := r.Lead.InterestLevel.Label()

	subject := fmt.Sprintf("%s Lead: %s", interest, r.LeadName)
	if r.Lead.Business != "" {
		subject += fmt.Sprintf(" (%s)", r.Lead.Business)
	}
	subject += " — AI Missoula"

	business := r.Lead.Business
	if business == "" {
		business = leadreport.PlaceholderDash
	} else if r.Lead.BusinessType != "" {
		business += fmt.Sprintf(" (%s)", r.Lead.BusinessType)
	}

	trial := leadreport.PlaceholderDash
	if r.WantsTrial != nil {
		if *r.WantsTrial {
			trial = "✅ YES"
		} else {
			trial = "❌ No"
		}
	}

	transcript := r.RenderTranscript()

	body := fmt.Sprintf(`🤖 AI Missoula — New Lead
%s · %s

📋 Summary
%s

👤 Lead Details
Name: %s
Business: %s
Phone: %s
Email: %s
Location: %s
Employees: %s
Interest: %s
Free Trial: %s

💡 Insights
Pain Points: %s
Interested In: %s
Next Steps: %s

📝 Call Details
Duration: %s
Ended: %s
Success: %s
Recording: %s
Call ID: %s

💬 Transcript
%s
`,
		r.EndedAt, r.CallTypeLabel(),
		r.Summary,
		r.LeadName, business,
		orDash(r.Lead.Phone), orDash(r.Lead.Email),
		r.Location, r.Employees, interest, trial,
		orDash(r.Lead.PainPoints), r.InterestedIn, orDash(r.Lead.NextSteps),
		r.Duration, r.EndedReason, r.SuccessEvaluation, r.RecordingURL, r.CallID,
		transcript,
	)

	html := fmt.Sprintf(`<div style="font-family: sans-serif; max-width: 600px; margin: 0 auto;">
<h2 style="color: #0ea5e9;">🤖 AI Missoula — New Lead</h2>
<p style="color: #6b7280; font-size: 13px;">%s · %s</p>
<h3 style="color: #0ea5e9;">📋 Summary</h3>
<p>%s</p>
<h3 style="color: #0ea5e9;">👤 Lead Details</h3>
<table style="border-collapse: collapse;">
%s%s%s%s%s%s%s%s
</table>
<h3 style="color: #0ea5e9;">💡 Insights</h3>
<table style="border-collapse: collapse;">
%s%s%s
</table>
<h3 style="color: #0ea5e9;">📝 Call Details</h3>
<table style="border-collapse: collapse;">
%s%s%s%s
</table>
<details><summary style="color: #0ea5e9; cursor: pointer;">💬 Full Transcript</summary>
<pre style="white-space: pre-wrap; font-size: 13px;">%s</pre></details>
<p style="color: #6b7280; font-size: 12px;">Call ID: %s</p>
</div>`,
		r.EndedAt, html.EscapeString(r.CallTypeLabel()),
		html.EscapeString(r.Summary),
		htmlRow("Name", r.LeadName),
		htmlRow("Business", business),
		htmlRow("Phone", orDash(r.Lead.Phone)),
		htmlRow("Email", orDash(r.Lead.Email)),
		htmlRow("Location", r.Location),
		htmlRow("Employees", r.Employees),
		htmlRow("Interest", interest),
		htmlRow("Free Trial", trial),
		htmlRow("Pain Points", orDash(r.Lead.PainPoints)),
		htmlRow("Interested In", r.InterestedIn),
		htmlRow("Next Steps", orDash(r.Lead.NextSteps)),
		htmlRow("Duration", r.Duration),
		htmlRow("Ended", r.EndedReason),
		htmlRow("Success", r.SuccessEvaluation),
		htmlRow("Recording", r.RecordingURL),
		html.EscapeString(transcript),
		html.EscapeString(r.CallID),
	)

	return EmailMessage{
		Subject: subject,
		Body:    body,
		HTML:    html,
	}
}

// ComposeNewLeadEmail builds the notification for a widget or contact-form
// capture, which carries far less context than a call report.
func ComposeNewLeadEmail(lead *leads.Lead) EmailMessage {
	subject := fmt.Sprintf("🆕 New Lead: %s — AI Missoula", lead.Name)

	var b strings.Builder
	fmt.Fprintf(&b, "A new lead came in from the website.\n\n")
	fmt.Fprintf(&b, "Name: %s\n", lead.Name)
	fmt.Fprintf(&b, "Email: %s\n", lead.Email)
	fmt.Fprintf(&b, "Phone: %s\n", orDash(lead.Phone))
	fmt.Fprintf(&b, "Business: %s\n", orDash(lead.Business))
	if lead.BusinessType != "" {
		fmt.Fprintf(&b, "Business Type: %s\n", lead.BusinessType)
	}
	if lead.PainPoints != "" {
		fmt.Fprintf(&b, "Pain Points: %s\n", lead.PainPoints)
	}
	fmt.Fprintf(&b, "Interest: %s\n", lead.InterestLevel.Label())
	fmt.Fprintf(&b, "Source: %s\n", lead.Source)

	return EmailMessage{
		Subject: subject,
		Body:    b.String(),
	}
}

// htmlRow escapes the value: everything it renders came off the wire.
func htmlRow(label, value string) string {
	return fmt.Sprintf(`<tr><td style="padding: 4px 12px 4px 0; color: #6b7280;">%s:</td><td style="padding: 4px 0;">%s</td></tr>
`, label, html.EscapeString(value))
}

func orDash(value string) string {
	if strings.TrimSpace(value) == "" {
		return leadreport.PlaceholderDash
	}
	return value
}
