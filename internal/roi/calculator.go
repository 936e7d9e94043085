package roi

import "math"

// Defaults used when the visitor leaves the sliders untouched.
const (
	DefaultWeeklyHours   = 10
	DefaultEmployeeCount = 3
	DefaultHourlyRate    = 28
)

// Automation reclaims roughly 70% of the repetitive hours, per the
// agency's observed results. Monthly figures use the average weeks
// per month (52 / 12).
const (
	automationShare = 0.7
	weeksPerMonth   = 4.3
)

// Estimate is the savings projection shown to the visitor.
type Estimate struct {
	WeeklyHoursSaved int `json:"weeklyHoursSaved"`
	MonthlySavings   int `json:"monthlySavings"`
	YearlySavings    int `json:"yearlySavings"`
}

// Calculate projects savings from weekly repetitive hours at the given
// hourly rate. Non-positive inputs fall back to the defaults.
func Calculate(weeklyHours, hourlyRate float64) Estimate {
	if weeklyHours <= 0 {
		weeklyHours = DefaultWeeklyHours
	}
	if hourlyRate <= 0 {
		hourlyRate = DefaultHourlyRate
	}

	weekly := math.Round(weeklyHours * automationShare)
	monthly := math.Round(weekly * weeksPerMonth * hourlyRate)
	yearly := monthly * 12

	return Estimate{
		WeeklyHoursSaved: int(weekly),
		MonthlySavings:   int(monthly),
		YearlySavings:    int(yearly),
	}
}
