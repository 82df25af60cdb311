package chat

import (
	"bytes"
	"context"
	"encoding/json"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/mindmate-ai/mindmate/backend/internal/analysis/emotion"
	"github.com/mindmate-ai/mindmate/backend/internal/model/reply"
	"github.com/mindmate-ai/mindmate/backend/internal/service/classifier"
	"github.com/mindmate-ai/mindmate/backend/internal/service/composer"
	"github.com/mindmate-ai/mindmate/backend/internal/service/engine"
	"github.com/mindmate-ai/mindmate/backend/internal/service/session"
	"github.com/mindmate-ai/mindmate/backend/internal/store/chatlog"
)

type discardLog struct{}

func (discardLog) Append(_ context.Context, name, message string, label emotion.Label, ts time.Time) (chatlog.Entry, error) {
	return chatlog.Entry{ID: 1, Name: name, Message: message, Emotion: label, Timestamp: ts}, nil
}

func setupRouter() *chi.Mux {
	eng := engine.New(
		classifier.NewLexicon(),
		session.NewService(),
		composer.New(reply.Default(), []string{"exam"}, rand.NewSource(1)),
		discardLog{},
		time.Second,
	)
	handler := New(eng)

	r := chi.NewRouter()
	handler.RegisterRoutes(r)
	return r
}

func postChat(t *testing.T, r http.Handler, body map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	payload, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPost, "/chat", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	return resp
}

func TestChatReturnsReplyAndTip(t *testing.T) {
	r := setupRouter()

	resp := postChat(t, r, map[string]string{"sessionId": "s1", "message": "I feel sad today"})
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}

	var body map[string]string
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if body["reply"] == "" || body["tip"] == "" {
		t.Fatalf("incomplete response: %v", body)
	}
}

func TestChatCrisisResponseHasNoTip(t *testing.T) {
	r := setupRouter()

	resp := postChat(t, r, map[string]string{"sessionId": "s1", "message": "I can't live like this"})
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}

	var body map[string]any
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if _, ok := body["tip"]; ok {
		t.Fatalf("crisis response must omit tip: %v", body)
	}
	if body["reply"] == "" {
		t.Fatal("crisis response must carry the safety message")
	}
}

func TestChatMissingMessage(t *testing.T) {
	r := setupRouter()

	resp := postChat(t, r, map[string]string{"sessionId": "s1"})
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
}

func TestChatMissingSessionID(t *testing.T) {
	r := setupRouter()

	resp := postChat(t, r, map[string]string{"message": "hello"})
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
}

func TestCreateSessionMintsID(t *testing.T) {
	r := setupRouter()

	req := httptest.NewRequest(http.MethodPost, "/session", nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if body["sessionId"] == "" {
		t.Fatal("expected a session id")
	}
}
