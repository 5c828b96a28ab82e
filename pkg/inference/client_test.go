package inference

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"
)

func TestClientChat(t *testing.T) {
	var got map[string]interface{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("Expected /chat/completions, got %s", r.URL.Path)
		}
		if r.Method != http.MethodPost {
			t.Errorf("Expected POST, got %s", r.Method)
		}
		if auth := r.Header.Get("Authorization"); auth != "Bearer test-key" {
			t.Errorf("Expected Bearer test-key, got %s", auth)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode request: %v", err)
		}

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"id": "test-id",
			"model": "gpt-4o-mini",
			"choices": [{"message": {"role": "assistant", "content": "PM-KISAN gives Rs 6000 per year."}, "finish_reason": "stop"}],
			"usage": {"prompt_tokens": 10, "completion_tokens": 5, "total_tokens": 15}
		}`))
	}))
	defer server.Close()

	client, err := NewClient(
		WithBaseURL(server.URL),
		WithAPIKey("test-key"),
		WithModel("gpt-4o-mini"),
	)
	if err != nil {
		t.Fatalf("Failed to create client: %v", err)
	}
	defer client.Close()

	resp, err := client.Chat(context.Background(), &ChatRequest{
		Messages: []Message{
			NewSystemMessage("You help with welfare schemes."),
			NewUserMessage("Tell me about PM-KISAN"),
		},
		Language: "hi",
	})
	if err != nil {
		t.Fatalf("Chat failed: %v", err)
	}

	if resp.Message.Content != "PM-KISAN gives Rs 6000 per year." {
		t.Errorf("Unexpected content: %s", resp.Message.Content)
	}
	if resp.Message.Role != RoleAssistant {
		t.Errorf("Expected assistant role, got %s", resp.Message.Role)
	}
	if resp.Usage.TotalTokens != 15 {
		t.Errorf("Expected 15 total tokens, got %d", resp.Usage.TotalTokens)
	}

	msgs, _ := got["messages"].([]interface{})
	if len(msgs) != 2 {
		t.Fatalf("Expected 2 messages sent, got %d", len(msgs))
	}
	last := msgs[1].(map[string]interface{})["content"].(string)
	if !strings.HasSuffix(last, "The user's preferred language is hi.") {
		t.Errorf("Expected language hint on last user message, got %q", last)
	}
	if got["model"] != "gpt-4o-mini" {
		t.Errorf("Expected model gpt-4o-mini, got %v", got["model"])
	}
}

func TestClientErrors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		check  func(t *testing.T, err error)
	}{
		{
			name:   "unauthorized",
			status: http.StatusUnauthorized,
			body:   `{"error": {"message": "Invalid API key", "code": "invalid_api_key"}}`,
			check: func(t *testing.T, err error) {
				var apiErr *APIError
				if !errors.As(err, &apiErr) {
					t.Fatalf("Expected APIError, got %T", err)
				}
				if !apiErr.IsUnauthorized() {
					t.Errorf("Expected unauthorized, got %d", apiErr.StatusCode)
				}
				if apiErr.Code != "invalid_api_key" {
					t.Errorf("Expected code invalid_api_key, got %s", apiErr.Code)
				}
			},
		},
		{
			name:   "malformed json",
			status: http.StatusOK,
			body:   `{"choices": [`,
			check: func(t *testing.T, err error) {
				var pErr *ProviderError
				if !errors.As(err, &pErr) {
					t.Fatalf("Expected ProviderError, got %T", err)
				}
			},
		},
		{
			name:   "empty content",
			status: http.StatusOK,
			body:   `{"choices": [{"message": {"role": "assistant", "content": "  "}}]}`,
			check: func(t *testing.T, err error) {
				if !errors.Is(err, ErrEmptyResponse) {
					t.Errorf("Expected ErrEmptyResponse, got %v", err)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer server.Close()

			client, _ := NewClient(WithBaseURL(server.URL), WithRetry(0, 0))
			_, err := client.Chat(context.Background(), &ChatRequest{
				Messages: []Message{NewUserMessage("test")},
			})
			if err == nil {
				t.Fatal("Expected error")
			}
			tt.check(t, err)
		})
	}
}

func TestClientRetry(t *testing.T) {
	var attempts atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if attempts.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte(`{"choices": [{"message": {"role": "assistant", "content": "ok"}, "finish_reason": "stop"}]}`))
	}))
	defer server.Close()

	client, _ := NewClient(
		WithBaseURL(server.URL),
		WithRetry(3, 10*time.Millisecond),
	)

	resp, err := client.Chat(context.Background(), &ChatRequest{
		Messages: []Message{NewUserMessage("test")},
	})
	if err != nil {
		t.Fatalf("Expected success after retry: %v", err)
	}
	if resp.Message.Content != "ok" {
		t.Errorf("Unexpected content: %s", resp.Message.Content)
	}
	if attempts.Load() != 3 {
		t.Errorf("Expected 3 attempts, got %d", attempts.Load())
	}
}

func TestClientDoesNotRetryClientErrors(t *testing.T) {
	var attempts atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts.Add(1)
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error": {"message": "bad key", "code": "invalid_api_key"}}`))
	}))
	defer server.Close()

	client, _ := NewClient(
		WithBaseURL(server.URL),
		WithRetry(3, time.Millisecond),
	)

	_, err := client.Chat(context.Background(), &ChatRequest{
		Messages: []Message{NewUserMessage("test")},
	})
	var apiErr *APIError
	if !errors.As(err, &apiErr) || !apiErr.IsUnauthorized() {
		t.Fatalf("Expected unauthorized APIError, got %v", err)
	}
	if attempts.Load() != 1 {
		t.Errorf("Expected 1 attempt, got %d", attempts.Load())
	}
}

func TestClientHealth(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/models" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Write([]byte(`{"data": []}`))
	}))
	defer server.Close()

	client, _ := NewClient(WithBaseURL(server.URL + "/"))
	if err := client.Health(context.Background()); err != nil {
		t.Errorf("Expected healthy, got %v", err)
	}
}

func TestClientRequiresModel(t *testing.T) {
	_, err := NewClient(WithModel(""))
	if !errors.Is(err, ErrNoModel) {
		t.Errorf("Expected ErrNoModel, got %v", err)
	}
}
