package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/aimissoula/agency-platform/internal/widget"
)

// WidgetConfigHandler serves the behavior knobs the embedded widgets read
// at boot: gate threshold, voice call ceiling, end phrases.
type WidgetConfigHandler struct {
	chatGateTurns      int
	voiceMaxDurationMS int
}

func NewWidgetConfigHandler(chatGateTurns, voiceMaxDurationSeconds int) *WidgetConfigHandler {
	if chatGateTurns <= 0 {
		chatGateTurns = widget.DefaultChatGateTurns
	}
	if voiceMaxDurationSeconds <= 0 {
		voiceMaxDurationSeconds = int(widget.DefaultMaxCallDuration.Seconds())
	}
	return &WidgetConfigHandler{
		chatGateTurns:      chatGateTurns,
		voiceMaxDurationMS: voiceMaxDurationSeconds * 1000,
	}
}

type widgetConfig struct {
	ChatGateTurns       int      `json:"chatGateTurns"`
	VoiceMaxDurationMS  int      `json:"voiceMaxDurationMs"`
	VoiceEndPhrases     []string `json:"voiceEndPhrases"`
	VoiceStates         []string `json:"voiceStates"`
	PhoneStates         []string `json:"phoneStates"`
	ROISteps            []string `json:"roiSteps"`
	LeadGateRequired    []string `json:"leadGateRequired"`
	InCharacterFallback string   `json:"inCharacterFallback"`
}

// Handle serves GET /api/widget-config.
func (h *WidgetConfigHandler) Handle(w http.ResponseWriter, _ *http.Request) {
	cfg := widgetConfig{
		ChatGateTurns:      h.chatGateTurns,
		VoiceMaxDurationMS: h.voiceMaxDurationMS,
		VoiceEndPhrases:    widget.EndCallPhrases,
		VoiceStates: []string{
			string(widget.VoiceIdle), string(widget.VoiceConnecting),
			string(widget.VoiceActive), string(widget.VoiceEnded),
		},
		PhoneStates: []string{
			string(widget.PhoneIdle), string(widget.PhoneCalling),
			string(widget.PhoneSuccess), string(widget.PhoneError),
		},
		ROISteps: []string{
			string(widget.ROIStepIndustry), string(widget.ROIStepInputs),
			string(widget.ROIStepContact), string(widget.ROIStepResult),
		},
		LeadGateRequired:    []string{"name", "email"},
		InCharacterFallback: widget.FallbackReply,
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "public, max-age=300")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(cfg)
}
