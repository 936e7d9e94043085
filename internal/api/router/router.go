package router

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/aimissoula/agency-platform/internal/adcopy"
	"github.com/aimissoula/agency-platform/internal/calls"
	"github.com/aimissoula/agency-platform/internal/chat"
	"github.com/aimissoula/agency-platform/internal/http/handlers"
	httpmiddleware "github.com/aimissoula/agency-platform/internal/http/middleware"
	"github.com/aimissoula/agency-platform/internal/leads"
	"github.com/aimissoula/agency-platform/internal/roi"
	"github.com/aimissoula/agency-platform/internal/webchat"
	"github.com/aimissoula/agency-platform/pkg/logging"
)

// Config holds router configuration
type Config struct {
	Logger             *logging.Logger
	ChatHandler        *chat.Handler
	AdCopyHandler      *adcopy.Handler
	CallsHandler       *calls.Handler
	LeadsHandler       *leads.Handler
	ROIHandler         *roi.Handler
	VapiWebhook        *handlers.VapiWebhookHandler
	WidgetConfig       *handlers.WidgetConfigHandler
	Webchat            *webchat.Handler
	MetricsHandler     http.Handler
	CORSAllowedOrigins []string
	RateLimitRPS       float64
	RateLimitBurst     int
}

// New creates a new Chi router with all routes configured
func New(cfg *Config) http.Handler {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(5))
	if len(cfg.CORSAllowedOrigins) > 0 {
		r.Use(httpmiddleware.CORS(cfg.CORSAllowedOrigins))
	}
	if cfg.Logger != nil {
		r.Use(httpmiddleware.RequestLogger(cfg.Logger))
	}

	r.Get("/health", healthCheck)

	if cfg.WidgetConfig != nil {
		r.Get("/api/widget-config", cfg.WidgetConfig.Handle)
	}

	// Webhooks and metrics sit outside the rate limit: the voice platform
	// retries on 429 and scrapes are internal. Registered for every method
	// since the provider probes with GET and OPTIONS and expects a 200.
	if cfg.VapiWebhook != nil {
		r.HandleFunc("/webhooks/vapi", cfg.VapiWebhook.Handle)
	}
	if cfg.MetricsHandler != nil {
		r.Handle("/metrics", cfg.MetricsHandler)
	}

	// Public widget API
	r.Group(func(api chi.Router) {
		if cfg.RateLimitRPS > 0 {
			api.Use(httpmiddleware.RateLimit(cfg.RateLimitRPS, cfg.RateLimitBurst))
		}
		if cfg.ChatHandler != nil {
			api.Post("/api/chat", cfg.ChatHandler.Complete)
		}
		if cfg.AdCopyHandler != nil {
			api.Post("/api/adcopy", cfg.AdCopyHandler.Generate)
		}
		if cfg.CallsHandler != nil {
			api.Post("/api/call", cfg.CallsHandler.TriggerCall)
		}
		if cfg.LeadsHandler != nil {
			api.Post("/api/leads", cfg.LeadsHandler.CreateLead)
		}
		if cfg.ROIHandler != nil {
			api.Post("/api/roi", cfg.ROIHandler.Estimate)
		}
		if cfg.Webchat != nil {
			api.Get("/api/webchat/ws", cfg.Webchat.HandleWebSocket)
			api.Post("/api/webchat/message", cfg.Webchat.HandleMessage)
			api.Post("/api/webchat/lead", cfg.Webchat.HandleLead)
		}
	})

	return r
}

func healthCheck(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}
