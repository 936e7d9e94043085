package webchat

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandleMessageRequiresText(t *testing.T) {
	h := newTestHandler(t, Config{LLM: &stubLLM{reply: "ok"}})

	rr := httptest.NewRecorder()
	h.HandleMessage(rr, httptest.NewRequest(http.MethodPost, "/api/webchat/message", bytes.NewReader([]byte(`{"session_id":"s1","text":"  "}`))))
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = httptest.NewRecorder()
	h.HandleMessage(rr, httptest.NewRequest(http.MethodPost, "/api/webchat/message", bytes.NewReader([]byte("{nope"))))
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestHandleLeadRequiresSession(t *testing.T) {
	h := newTestHandler(t, Config{LLM: &stubLLM{reply: "ok"}})

	rr := httptest.NewRecorder()
	h.HandleLead(rr, httptest.NewRequest(http.MethodPost, "/api/webchat/lead", bytes.NewReader([]byte(`{"name":"Dana","email":"dana@example.com"}`))))
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestSessionIDsAreUnique(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		id := generateSessionID()
		require.NotEmpty(t, id)
		require.False(t, seen[id], "session id collision: %s", id)
		seen[id] = true
	}
}
