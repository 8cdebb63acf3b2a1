package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"studyhub_backend/internal/config"
	"sync/atomic"
	"testing"
)

func chatReply(content string) string {
	resp := ChatCompletionResponse{}
	resp.Choices = []struct {
		Message AIChatMessage `json:"message"`
	}{
		{Message: AIChatMessage{Role: "assistant", Content: content}},
	}
	data, _ := json.Marshal(resp)
	return string(data)
}

func testAIService(baseURL string) *AIService {
	return NewAIService(config.AIConfig{
		BaseURL:    baseURL,
		APIKey:     "test",
		Model:      "test-model",
		MaxRetries: 3,
		RetrySecs:  0,
	})
}

func TestChatReturnsContent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.Header.Get("Authorization") != "Bearer test" {
			t.Errorf("missing auth header")
		}
		w.Write([]byte(chatReply("hello")))
	}))
	defer server.Close()

	got, err := testAIService(server.URL).Chat(context.Background(), "sys", "user")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "hello" {
		t.Errorf("content = %q, want hello", got)
	}
}

func TestChatRetriesOnServerError(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) < 3 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte(chatReply("recovered")))
	}))
	defer server.Close()

	got, err := testAIService(server.URL).Chat(context.Background(), "sys", "user")
	if err != nil {
		t.Fatalf("unexpected error after retries: %v", err)
	}
	if got != "recovered" {
		t.Errorf("content = %q, want recovered", got)
	}
	if atomic.LoadInt32(&calls) != 3 {
		t.Errorf("calls = %d, want 3", calls)
	}
}

func TestChatDoesNotRetryClientError(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer server.Close()

	if _, err := testAIService(server.URL).Chat(context.Background(), "sys", "user"); err == nil {
		t.Fatal("expected error on 400")
	}
	if atomic.LoadInt32(&calls) != 1 {
		t.Errorf("calls = %d, want 1 (no retry on client error)", calls)
	}
}

func TestChatGivesUpAfterMaxRetries(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	if _, err := testAIService(server.URL).Chat(context.Background(), "sys", "user"); err == nil {
		t.Fatal("expected error after exhausting retries")
	}
	if atomic.LoadInt32(&calls) != 3 {
		t.Errorf("calls = %d, want 3", calls)
	}
}
