package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("ENV", "")
	t.Setenv("LOG_LEVEL", "")
	t.Setenv("EMAIL_PROVIDER", "")
	t.Setenv("CORS_ALLOWED_ORIGINS", "")
	cfg := Load()
	if cfg.Port != "8080" {
		t.Fatalf("expected default port, got %s", cfg.Port)
	}
	if cfg.Env != "development" {
		t.Fatalf("expected default env, got %s", cfg.Env)
	}
	if cfg.EmailProvider != "log" {
		t.Fatalf("expected email provider to default to log, got %s", cfg.EmailProvider)
	}
	if cfg.OpenAIModel != "gpt-4o-mini" {
		t.Fatalf("expected default openai model, got %s", cfg.OpenAIModel)
	}
	if cfg.ChatGateTurns != 3 {
		t.Fatalf("expected default chat gate at 3 turns, got %d", cfg.ChatGateTurns)
	}
	if cfg.ROIHourlyRate != 28 {
		t.Fatalf("expected default hourly rate 28, got %d", cfg.ROIHourlyRate)
	}
	if cfg.VoiceMaxDurationSeconds != 300 {
		t.Fatalf("expected default voice ceiling 300s, got %d", cfg.VoiceMaxDurationSeconds)
	}
	if cfg.WidgetSessionTTL != 30*time.Minute {
		t.Fatalf("expected default widget session TTL, got %s", cfg.WidgetSessionTTL)
	}
	if len(cfg.CORSAllowedOrigins) != 1 || cfg.CORSAllowedOrigins[0] != "*" {
		t.Fatalf("expected wildcard CORS default, got %v", cfg.CORSAllowedOrigins)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("ENV", "production")
	t.Setenv("EMAIL_PROVIDER", "SendGrid")
	t.Setenv("CHAT_GATE_TURNS", "5")
	t.Setenv("ROI_HOURLY_RATE", "35")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://aimissoula.com, https://www.aimissoula.com")
	t.Setenv("WIDGET_SESSION_TTL", "15m")
	cfg := Load()
	if cfg.Port != "9090" {
		t.Fatalf("expected override port, got %s", cfg.Port)
	}
	if cfg.EmailProvider != "sendgrid" {
		t.Fatalf("expected lowercased email provider, got %s", cfg.EmailProvider)
	}
	if cfg.ChatGateTurns != 5 {
		t.Fatalf("expected gate override, got %d", cfg.ChatGateTurns)
	}
	if cfg.ROIHourlyRate != 35 {
		t.Fatalf("expected rate override, got %d", cfg.ROIHourlyRate)
	}
	if len(cfg.CORSAllowedOrigins) != 2 || cfg.CORSAllowedOrigins[1] != "https://www.aimissoula.com" {
		t.Fatalf("expected two trimmed origins, got %v", cfg.CORSAllowedOrigins)
	}
	if cfg.WidgetSessionTTL != 15*time.Minute {
		t.Fatalf("expected TTL override, got %s", cfg.WidgetSessionTTL)
	}
}
