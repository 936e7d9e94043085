package leads

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/aimissoula/agency-platform/pkg/logging"
)

// Notifier hands a captured lead to the notification channel.
type Notifier interface {
	NotifyNewLead(ctx context.Context, lead *Lead) error
}

// Handler handles HTTP requests for lead capture submissions.
type Handler struct {
	notifier Notifier
	logger   *logging.Logger
}

// NewHandler creates a new leads handler
func NewHandler(notifier Notifier, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{
		notifier: notifier,
		logger:   logger,
	}
}

// CreateLead handles POST /api/leads. Leads are not stored; a valid
// submission is dispatched to the notification channel and acknowledged.
func (h *Handler) CreateLead(w http.ResponseWriter, r *http.Request) {
	var lead Lead
	if err := json.NewDecoder(r.Body).Decode(&lead); err != nil {
		h.logger.Error("failed to decode lead request", "error", err)
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	if err := lead.Validate(); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	if lead.Source == "" {
		lead.Source = SourceContactForm
	}
	if lead.InterestLevel == "" {
		lead.InterestLevel = InterestUnknown
	}
	lead.CapturedAt = time.Now().UTC()

	if err := h.notifier.NotifyNewLead(r.Context(), &lead); err != nil {
		// The visitor already did their part; a notification failure is an
		// operator problem, logged server-side and not surfaced as a hard
		// error to the widget.
		h.logger.Error("lead notification failed", "error", err, "source", lead.Source)
	}

	h.logger.Info("lead captured", "name", lead.Name, "source", lead.Source)
	writeJSON(w, http.StatusCreated, map[string]any{"ok": true})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
