package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
)

func TestOpenAI_Send(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("Authorization = %q", got)
		}
		var req openaiRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decoding request: %v", err)
		}
		if len(req.Messages) != 2 || req.Messages[0].Role != "system" {
			t.Errorf("Messages = %+v", req.Messages)
		}

		resp := openaiResponse{
			Choices: []openaiChoice{
				{Message: openaiMessage{Role: "assistant", Content: "chore: bump deps"}},
			},
		}
		json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	o := &OpenAI{
		apiKey:  "test-key",
		model:   "gpt-4o-mini",
		baseURL: server.URL,
		client:  server.Client(),
	}

	msg, err := o.Send(context.Background(), Request{Diff: "+x := 1", Style: "conventional"})
	if err != nil {
		t.Fatalf("Send error: %v", err)
	}
	if msg != "chore: bump deps" {
		t.Errorf("message = %q", msg)
	}
}

func TestOpenAI_QuotaRetriesThenSucceeds(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			w.WriteHeader(429)
			return
		}
		resp := openaiResponse{
			Choices: []openaiChoice{{Message: openaiMessage{Content: "fix: retry"}}},
		}
		json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	o := &OpenAI{apiKey: "k", model: "gpt-4o-mini", baseURL: server.URL, client: server.Client()}
	msg, err := o.Send(context.Background(), Request{Diff: "+x"})
	if err != nil {
		t.Fatalf("Send error: %v", err)
	}
	if msg != "fix: retry" {
		t.Errorf("message = %q", msg)
	}
	if got := atomic.LoadInt32(&calls); got != 2 {
		t.Errorf("calls = %d, want 2", got)
	}
}

func TestOpenAI_NoChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(openaiResponse{})
	}))
	defer server.Close()

	o := &OpenAI{apiKey: "k", model: "gpt-4o-mini", baseURL: server.URL, client: server.Client()}
	if _, err := o.Send(context.Background(), Request{Diff: "+x"}); err == nil {
		t.Error("Expected error for a response with no choices")
	}
}

func TestNew_Providers(t *testing.T) {
	t.Setenv("ANTHROPIC_API_KEY", "k")
	t.Setenv("OPENAI_API_KEY", "k")

	tests := []struct {
		provider string
		name     string
	}{
		{"anthropic", "anthropic"},
		{"openai", "openai"},
		{"ollama", "ollama"},
		{"lmstudio", "ollama"},
	}
	for _, tt := range tests {
		t.Run(tt.provider, func(t *testing.T) {
			c, err := New(tt.provider, "m")
			if err != nil {
				t.Fatalf("New error: %v", err)
			}
			if c.Name() != tt.name {
				t.Errorf("Name = %q, want %q", c.Name(), tt.name)
			}
		})
	}

	if _, err := New("mystery", "m"); err == nil {
		t.Error("Expected error for unknown provider")
	}
}
