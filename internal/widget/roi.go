package widget

import (
	"strings"
	"time"

	"github.com/aimissoula/agency-platform/internal/leads"
	"github.com/aimissoula/agency-platform/internal/roi"
)

// ROIStep is the calculator wizard's position.
type ROIStep string

const (
	ROIStepIndustry ROIStep = "industry"
	ROIStepInputs   ROIStep = "inputs"
	ROIStepContact  ROIStep = "contact"
	ROIStepResult   ROIStep = "result"
)

// ROIWizard drives the savings calculator step by step. The projection is
// the last step and sits behind the contact gate.
type ROIWizard struct {
	step        ROIStep
	industry    string
	weeklyHours float64
	employees   int
	hourlyRate  float64
	lead        *leads.Lead
}

// NewROIWizard creates a calculator session at the given hourly rate.
func NewROIWizard(hourlyRate float64) *ROIWizard {
	return &ROIWizard{
		step:        ROIStepIndustry,
		weeklyHours: roi.DefaultWeeklyHours,
		employees:   roi.DefaultEmployeeCount,
		hourlyRate:  hourlyRate,
	}
}

// Step returns the wizard's current position.
func (w *ROIWizard) Step() ROIStep {
	return w.step
}

// Lead returns the captured lead, or nil before the contact step passes.
func (w *ROIWizard) Lead() *leads.Lead {
	return w.lead
}

// ChooseIndustry records the visitor's industry and advances to inputs.
func (w *ROIWizard) ChooseIndustry(industry string) error {
	if w.step != ROIStepIndustry {
		return ErrInvalidTransition
	}
	industry = strings.TrimSpace(industry)
	if industry == "" {
		return ErrInvalidTransition
	}
	w.industry = industry
	w.step = ROIStepInputs
	return nil
}

// SetInputs records the slider values and advances to the contact gate.
// Non-positive values keep the defaults.
func (w *ROIWizard) SetInputs(weeklyHours float64, employees int) error {
	if w.step != ROIStepInputs {
		return ErrInvalidTransition
	}
	if weeklyHours > 0 {
		w.weeklyHours = weeklyHours
	}
	if employees > 0 {
		w.employees = employees
	}
	w.step = ROIStepContact
	return nil
}

// Reveal passes the contact gate and returns the projection. Before a valid
// lead form is submitted there is no way to read the numbers.
func (w *ROIWizard) Reveal(form LeadForm) (roi.Estimate, error) {
	switch w.step {
	case ROIStepContact:
		lead := form.Lead(leads.SourceROICalculator)
		lead.BusinessType = w.industry
		lead.CapturedAt = time.Now().UTC()
		if err := lead.Validate(); err != nil {
			return roi.Estimate{}, err
		}
		w.lead = lead
		w.step = ROIStepResult
	case ROIStepResult:
		// Already revealed; recalculation is free.
	default:
		return roi.Estimate{}, ErrInvalidTransition
	}
	return roi.Calculate(w.weeklyHours, w.hourlyRate), nil
}
