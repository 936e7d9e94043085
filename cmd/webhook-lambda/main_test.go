package main

import (
	"context"
	"encoding/base64"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/aws/aws-lambda-go/events"
)

func webhookEvent(method, path, body string) events.APIGatewayV2HTTPRequest {
	return events.APIGatewayV2HTTPRequest{
		RawPath: path,
		Body:    body,
		RequestContext: events.APIGatewayV2HTTPRequestContext{
			HTTP: events.APIGatewayV2HTTPRequestContextHTTPDescription{
				Method: method,
				Path:   path,
			},
		},
	}
}

func TestHandleHealth(t *testing.T) {
	cfg := config{upstreamBaseURL: "http://example.com", upstreamTimeout: time.Second}
	client := &http.Client{Timeout: time.Second}

	resp, err := handle(context.Background(), cfg, client, webhookEvent(http.MethodGet, "/health", ""))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, resp.StatusCode)
	}
	if resp.Body != "ok" {
		t.Fatalf("expected ok body, got %q", resp.Body)
	}
}

func TestHandleForwardsWebhook(t *testing.T) {
	var gotBody string
	var gotPath string
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		gotBody = string(body)
		gotPath = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"ok":true,"emailSent":true}`))
	}))
	defer upstream.Close()

	cfg := config{upstreamBaseURL: upstream.URL, upstreamTimeout: time.Second}
	client := &http.Client{Timeout: time.Second}

	payload := `{"message":{"type":"end-of-call-report"}}`
	resp, err := handle(context.Background(), cfg, client, webhookEvent(http.MethodPost, "/webhooks/vapi", payload))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, resp.StatusCode)
	}
	if gotPath != "/webhooks/vapi" {
		t.Fatalf("forwarded to wrong path: %q", gotPath)
	}
	if gotBody != payload {
		t.Fatalf("body not forwarded intact: %q", gotBody)
	}
	if !strings.Contains(resp.Body, "emailSent") {
		t.Fatalf("upstream body not relayed: %q", resp.Body)
	}
}

func TestHandleDecodesBase64Body(t *testing.T) {
	var gotBody string
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		gotBody = string(body)
		w.WriteHeader(http.StatusOK)
	}))
	defer upstream.Close()

	cfg := config{upstreamBaseURL: upstream.URL, upstreamTimeout: time.Second}
	client := &http.Client{Timeout: time.Second}

	payload := `{"message":{"type":"end-of-call-report"}}`
	evt := webhookEvent(http.MethodPost, "/webhooks/vapi", base64.StdEncoding.EncodeToString([]byte(payload)))
	evt.IsBase64Encoded = true

	if _, err := handle(context.Background(), cfg, client, evt); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotBody != payload {
		t.Fatalf("base64 body not decoded: %q", gotBody)
	}
}

func TestHandleAcksWhenUpstreamDown(t *testing.T) {
	cfg := config{upstreamBaseURL: "http://127.0.0.1:1", upstreamTimeout: 200 * time.Millisecond}
	client := &http.Client{Timeout: 200 * time.Millisecond}

	resp, err := handle(context.Background(), cfg, client, webhookEvent(http.MethodPost, "/webhooks/vapi", "{}"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("provider must be acked even when upstream is down, got %d", resp.StatusCode)
	}
}

func TestHandleUnknownPath(t *testing.T) {
	cfg := config{upstreamBaseURL: "http://example.com", upstreamTimeout: time.Second}
	client := &http.Client{Timeout: time.Second}

	resp, err := handle(context.Background(), cfg, client, webhookEvent(http.MethodPost, "/other", "{}"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}
}

func TestLoadConfigRequiresBaseURL(t *testing.T) {
	t.Setenv("UPSTREAM_BASE_URL", "")
	if _, err := loadConfig(); err == nil {
		t.Fatal("expected error without UPSTREAM_BASE_URL")
	}

	t.Setenv("UPSTREAM_BASE_URL", "https://api.aimissoula.com/")
	cfg, err := loadConfig()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.upstreamBaseURL != "https://api.aimissoula.com" {
		t.Fatalf("trailing slash not trimmed: %q", cfg.upstreamBaseURL)
	}
}
