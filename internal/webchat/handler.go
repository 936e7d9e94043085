package webchat

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/net/websocket"

	"github.com/aimissoula/agency-platform/internal/chat"
	"github.com/aimissoula/agency-platform/internal/leads"
	"github.com/aimissoula/agency-platform/internal/llm"
	"github.com/aimissoula/agency-platform/internal/widget"
	"github.com/aimissoula/agency-platform/pkg/logging"
)

const defaultSessionTTL = 30 * time.Minute

var errNoModel = errors.New("webchat: no model configured")

// Handler manages web chat connections. Each session carries its own
// widget state machine, so the lead gate lives server-side.
type Handler struct {
	llm       llm.Client
	notifier  leads.Notifier
	logger    *logging.Logger
	gateTurns int
	ttl       time.Duration

	mu       sync.Mutex
	sessions map[string]*session

	stop     chan struct{}
	stopOnce sync.Once
}

type session struct {
	mu       sync.Mutex
	widget   *widget.ChatWidget
	lastSeen time.Time
}

// Config holds handler configuration.
type Config struct {
	LLM        llm.Client
	Notifier   leads.Notifier
	Logger     *logging.Logger
	GateTurns  int
	SessionTTL time.Duration
}

// NewHandler creates a web chat handler.
func NewHandler(cfg Config) *Handler {
	if cfg.Logger == nil {
		cfg.Logger = logging.Default()
	}
	if cfg.SessionTTL <= 0 {
		cfg.SessionTTL = defaultSessionTTL
	}
	h := &Handler{
		llm:       cfg.LLM,
		notifier:  cfg.Notifier,
		logger:    cfg.Logger,
		gateTurns: cfg.GateTurns,
		ttl:       cfg.SessionTTL,
		sessions:  make(map[string]*session),
		stop:      make(chan struct{}),
	}
	go h.evictStale()
	return h
}

// Close stops the session eviction loop. Safe to call more than once.
func (h *Handler) Close() {
	h.stopOnce.Do(func() { close(h.stop) })
}

// InboundMessage is what the widget sends.
type InboundMessage struct {
	Type     string `json:"type"` // "message", "lead", "ping"
	Text     string `json:"text"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Business string `json:"business"`
}

// OutboundMessage is what we send to the widget.
type OutboundMessage struct {
	Type      string `json:"type"` // "message", "typing", "gate", "session", "pong", "error"
	Text      string `json:"text,omitempty"`
	Role      string `json:"role,omitempty"`
	SessionID string `json:"session_id,omitempty"`
}

// generateSessionID creates a random session identifier.
func generateSessionID() string {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return uuid.New().String()
	}
	return hex.EncodeToString(b)
}

func (h *Handler) session(id string) *session {
	h.mu.Lock()
	defer h.mu.Unlock()
	s, ok := h.sessions[id]
	if !ok {
		s = &session{widget: widget.NewChatWidget(h.gateTurns)}
		h.sessions[id] = s
	}
	s.lastSeen = time.Now()
	return s
}

func (h *Handler) evictStale() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()
	for {
		select {
		case <-h.stop:
			return
		case <-ticker.C:
			cutoff := time.Now().Add(-h.ttl)
			h.mu.Lock()
			for id, s := range h.sessions {
				if s.lastSeen.Before(cutoff) {
					delete(h.sessions, id)
				}
			}
			h.mu.Unlock()
		}
	}
}

// HandleWebSocket upgrades to WebSocket and handles real-time messaging.
func (h *Handler) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	websocket.Handler(func(conn *websocket.Conn) {
		h.serveWS(conn, r)
	}).ServeHTTP(w, r)
}

func (h *Handler) serveWS(conn *websocket.Conn, r *http.Request) {
	sessionID := r.URL.Query().Get("session")
	if sessionID == "" {
		sessionID = generateSessionID()
	}

	_ = websocket.JSON.Send(conn, OutboundMessage{Type: "session", SessionID: sessionID})
	h.logger.Info("webchat: connection opened", "session_id", sessionID)

	for {
		var msg InboundMessage
		if err := websocket.JSON.Receive(conn, &msg); err != nil {
			h.logger.Debug("webchat: connection closed", "session_id", sessionID, "error", err)
			return
		}

		switch msg.Type {
		case "ping":
			_ = websocket.JSON.Send(conn, OutboundMessage{Type: "pong"})
		case "lead":
			for _, out := range h.submitLead(r.Context(), sessionID, msg) {
				_ = websocket.JSON.Send(conn, out)
			}
		case "message":
			if strings.TrimSpace(msg.Text) == "" {
				continue
			}
			_ = websocket.JSON.Send(conn, OutboundMessage{Type: "typing"})
			for _, out := range h.processMessage(r.Context(), sessionID, msg.Text) {
				_ = websocket.JSON.Send(conn, out)
			}
		}
	}
}

// processMessage runs one visitor turn through the session's state machine
// and returns the frames to send back, in order.
func (h *Handler) processMessage(ctx context.Context, sessionID, text string) []OutboundMessage {
	s := h.session(sessionID)
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.widget.Send(text); err != nil {
		switch err {
		case widget.ErrAwaitingLead:
			return []OutboundMessage{{Type: "gate"}}
		case widget.ErrRequestInFlight:
			return []OutboundMessage{{Type: "error", Text: "One moment, still thinking about your last message."}}
		default:
			return nil
		}
	}

	var reply string
	llmErr := errNoModel
	if h.llm != nil {
		var resp llm.Response
		resp, llmErr = h.llm.Complete(ctx, llm.Request{
			System:   []string{chat.DefaultSystemPrompt},
			Messages: s.widget.History(),
		})
		reply = resp.Text
	}
	if llmErr != nil {
		h.logger.Error("webchat: completion failed", "session_id", sessionID, "error", llmErr)
	}

	text, gateNow := s.widget.Resolve(reply, llmErr)
	out := []OutboundMessage{{Type: "message", Role: "assistant", Text: text}}
	if gateNow {
		out = append(out, OutboundMessage{Type: "gate"})
	}
	return out
}

func (h *Handler) submitLead(ctx context.Context, sessionID string, msg InboundMessage) []OutboundMessage {
	s := h.session(sessionID)
	s.mu.Lock()
	defer s.mu.Unlock()

	lead, err := s.widget.SubmitLead(widget.LeadForm{
		Name:     msg.Name,
		Email:    msg.Email,
		Business: msg.Business,
	})
	if err != nil {
		return []OutboundMessage{{Type: "error", Text: err.Error()}}
	}

	if h.notifier != nil {
		if err := h.notifier.NotifyNewLead(ctx, lead); err != nil {
			h.logger.Error("webchat: lead notification failed", "error", err, "lead", lead.Email)
		}
	}
	h.logger.Info("webchat: lead captured", "session_id", sessionID, "lead", lead.Email)

	return []OutboundMessage{{
		Type: "message",
		Role: "assistant",
		Text: "Thanks, " + lead.Name + "! You're all set. Where were we?",
	}}
}

// HandleMessage is the HTTP fallback for environments that block
// WebSockets. Same state machine, one turn per request.
func (h *Handler) HandleMessage(w http.ResponseWriter, r *http.Request) {
	var req struct {
		SessionID string `json:"session_id"`
		Text      string `json:"text"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		http.Error(w, "text is required", http.StatusBadRequest)
		return
	}
	if req.SessionID == "" {
		req.SessionID = generateSessionID()
	}

	frames := h.processMessage(r.Context(), req.SessionID, req.Text)

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"session_id": req.SessionID,
		"frames":     frames,
	})
}

// HandleLead is the HTTP fallback for the gate form.
func (h *Handler) HandleLead(w http.ResponseWriter, r *http.Request) {
	var req InboundMessage
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	sessionID := r.URL.Query().Get("session")
	if sessionID == "" {
		http.Error(w, "session is required", http.StatusBadRequest)
		return
	}

	frames := h.submitLead(r.Context(), sessionID, req)

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"session_id": sessionID,
		"frames":     frames,
	})
}
