package roi

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/aimissoula/agency-platform/internal/leads"
	"github.com/aimissoula/agency-platform/pkg/logging"
)

// Handler computes savings estimates and captures the lead that asked.
// The estimate is only handed back once the gate fields are present.
type Handler struct {
	notifier   leads.Notifier
	logger     *logging.Logger
	hourlyRate float64
}

// NewHandler creates the ROI handler. A non-positive rate falls back to
// the default.
func NewHandler(notifier leads.Notifier, hourlyRate float64, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	if hourlyRate <= 0 {
		hourlyRate = DefaultHourlyRate
	}
	return &Handler{notifier: notifier, logger: logger, hourlyRate: hourlyRate}
}

// EstimateRequest is the body for POST /api/roi.
type EstimateRequest struct {
	Name        string  `json:"name"`
	Email       string  `json:"email"`
	Business    string  `json:"business"`
	WeeklyHours float64 `json:"weeklyHours"`
	Employees   int     `json:"employees"`
}

// EstimateResponse wraps the projection, or the gate error.
type EstimateResponse struct {
	OK       bool      `json:"ok"`
	Estimate *Estimate `json:"estimate,omitempty"`
	Error    string    `json:"error,omitempty"`
}

// Estimate handles POST /api/roi.
func (h *Handler) Estimate(w http.ResponseWriter, r *http.Request) {
	var req EstimateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, EstimateResponse{Error: "invalid request body"})
		return
	}

	lead := leads.Lead{
		Name:       strings.TrimSpace(req.Name),
		Email:      strings.TrimSpace(req.Email),
		Business:   strings.TrimSpace(req.Business),
		Source:     leads.SourceROICalculator,
		CapturedAt: time.Now().UTC(),
	}
	if err := lead.Validate(); err != nil {
		writeJSON(w, http.StatusBadRequest, EstimateResponse{Error: err.Error()})
		return
	}

	employees := req.Employees
	if employees <= 0 {
		employees = DefaultEmployeeCount
	}
	est := Calculate(req.WeeklyHours, h.hourlyRate)
	lead.PainPoints = fmt.Sprintf("ROI calculator: %d employees, ~%d hrs/week reclaimable", employees, est.WeeklyHoursSaved)

	if h.notifier != nil {
		if err := h.notifier.NotifyNewLead(r.Context(), &lead); err != nil {
			h.logger.Error("roi lead notification failed", "error", err, "lead", lead.Email)
		}
	}

	writeJSON(w, http.StatusOK, EstimateResponse{OK: true, Estimate: &est})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
