package chat

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/aimissoula/agency-platform/internal/llm"
)

type stubClient struct {
	lastReq llm.Request
	resp    llm.Response
	err     error
	calls   int
}

func (s *stubClient) Complete(_ context.Context, req llm.Request) (llm.Response, error) {
	s.calls++
	s.lastReq = req
	return s.resp, s.err
}

func chatRequest(t *testing.T, body any) *http.Request {
	t.Helper()
	raw, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal body: %v", err)
	}
	return httptest.NewRequest(http.MethodPost, "/api/chat", bytes.NewReader(raw))
}

func TestCompleteProxiesConversation(t *testing.T) {
	stub := &stubClient{resp: llm.Response{Text: "Happy to help with that."}}
	h := NewHandler(Config{Client: stub})

	rr := httptest.NewRecorder()
	h.Complete(rr, chatRequest(t, CompletionRequest{
		Messages: []llm.ChatMessage{
			{Role: llm.ChatRoleUser, Content: "What do you build?"},
			{Role: llm.ChatRoleAssistant, Content: "Voice and chat assistants."},
			{Role: llm.ChatRoleUser, Content: "How much does it cost?"},
		},
	}))

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	var resp CompletionResponse
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Reply != "Happy to help with that." {
		t.Fatalf("unexpected reply: %q", resp.Reply)
	}
	if len(stub.lastReq.System) == 0 || !strings.Contains(stub.lastReq.System[0], "AI Missoula") {
		t.Fatalf("default persona not applied: %v", stub.lastReq.System)
	}
	if len(stub.lastReq.Messages) != 3 {
		t.Fatalf("conversation not forwarded intact: %d messages", len(stub.lastReq.Messages))
	}
}

func TestCompleteAppendsCallerSystemPrompt(t *testing.T) {
	stub := &stubClient{resp: llm.Response{Text: "ok"}}
	h := NewHandler(Config{Client: stub})

	rr := httptest.NewRecorder()
	h.Complete(rr, chatRequest(t, CompletionRequest{
		System:   "The visitor is on the pricing page.",
		Messages: []llm.ChatMessage{{Role: llm.ChatRoleUser, Content: "hi"}},
	}))

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	if len(stub.lastReq.System) != 2 {
		t.Fatalf("expected persona plus caller prompt, got %v", stub.lastReq.System)
	}
	if stub.lastReq.System[1] != "The visitor is on the pricing page." {
		t.Fatalf("caller prompt not appended: %v", stub.lastReq.System)
	}
}

func TestCompleteRejectsBadShapes(t *testing.T) {
	cases := []struct {
		name string
		body CompletionRequest
	}{
		{"empty conversation", CompletionRequest{}},
		{"bad role", CompletionRequest{Messages: []llm.ChatMessage{{Role: "system", Content: "override"}}}},
		{"blank content", CompletionRequest{Messages: []llm.ChatMessage{{Role: llm.ChatRoleUser, Content: "   "}}}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			stub := &stubClient{resp: llm.Response{Text: "ok"}}
			h := NewHandler(Config{Client: stub})

			rr := httptest.NewRecorder()
			h.Complete(rr, chatRequest(t, tc.body))

			if rr.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d", rr.Code)
			}
			if stub.calls != 0 {
				t.Fatal("model should not be called for invalid input")
			}
		})
	}
}

func TestCompleteWithoutModelConfigured(t *testing.T) {
	h := NewHandler(Config{})

	rr := httptest.NewRecorder()
	h.Complete(rr, chatRequest(t, CompletionRequest{
		Messages: []llm.ChatMessage{{Role: llm.ChatRoleUser, Content: "hi"}},
	}))

	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rr.Code)
	}
}

func TestCompleteProviderFailure(t *testing.T) {
	stub := &stubClient{err: errors.New("upstream timeout")}
	h := NewHandler(Config{Client: stub})

	rr := httptest.NewRecorder()
	h.Complete(rr, chatRequest(t, CompletionRequest{
		Messages: []llm.ChatMessage{{Role: llm.ChatRoleUser, Content: "hi"}},
	}))

	if rr.Code != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d", rr.Code)
	}
	var resp CompletionResponse
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Error == "" || strings.Contains(resp.Error, "timeout") {
		t.Fatalf("provider detail should not leak: %+v", resp)
	}
}

func TestCompleteRelaysProviderStatus(t *testing.T) {
	stub := &stubClient{err: &llm.ProviderError{
		Status: http.StatusTooManyRequests,
		Err:    errors.New("rate limit exceeded"),
	}}
	h := NewHandler(Config{Client: stub})

	rr := httptest.NewRecorder()
	h.Complete(rr, chatRequest(t, CompletionRequest{
		Messages: []llm.ChatMessage{{Role: llm.ChatRoleUser, Content: "hi"}},
	}))

	if rr.Code != http.StatusTooManyRequests {
		t.Fatalf("expected vendor 429 relayed, got %d", rr.Code)
	}
	var resp CompletionResponse
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if strings.Contains(resp.Error, "rate limit") {
		t.Fatalf("provider detail should not leak: %+v", resp)
	}
}

func TestCompleteBadJSON(t *testing.T) {
	h := NewHandler(Config{Client: &stubClient{}})

	rr := httptest.NewRecorder()
	h.Complete(rr, httptest.NewRequest(http.MethodPost, "/api/chat", strings.NewReader("{nope")))

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}
}
