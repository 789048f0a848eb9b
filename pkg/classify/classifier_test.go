package classify

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/lurelab/decoy/pkg/persona"
)

func chatServer(t *testing.T, content string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		resp := map[string]any{
			"choices": []map[string]any{
				{"message": map[string]any{"role": "assistant", "content": content}},
			},
		}
		_ = json.NewEncoder(w).Encode(resp)
	}))
}

func testInput(msg string) Input {
	reg := persona.NewRegistry()
	return Input{
		Message:  msg,
		Victim:   reg.Select(""),
		Taxonomy: reg.Taxonomy(),
	}
}

func TestClassifyHappyPath(t *testing.T) {
	server := chatServer(t, `{"isScam": true, "justification": "OTP demand", "reply": "Why do you need my OTP?", "tactic": "KYC Scam", "isFinished": false}`)
	defer server.Close()

	c := NewClient(Config{Provider: ProviderOpenRouter, APIKey: "test-key", BaseURL: server.URL})
	v, err := c.Classify(context.Background(), testInput("share your otp to unblock your account"))
	if err != nil {
		t.Fatalf("Classify error: %v", err)
	}
	if !v.IsScam || v.Tactic != "KYC Scam" {
		t.Errorf("unexpected verdict: %+v", v)
	}
}

func TestClassifyGarbageContentIsNotAnError(t *testing.T) {
	server := chatServer(t, "sorry, as a language model I cannot produce JSON today")
	defer server.Close()

	c := NewClient(Config{Provider: ProviderOpenRouter, APIKey: "test-key", BaseURL: server.URL})
	v, err := c.Classify(context.Background(), testInput("hello"))
	if err != nil {
		t.Fatalf("garbage content must degrade, not error: %v", err)
	}
	if v.IsScam {
		t.Error("default verdict must be isScam=false")
	}
}

func TestClassifyProviderErrorIsUnavailable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream overloaded", http.StatusBadGateway)
	}))
	defer server.Close()

	c := NewClient(Config{Provider: ProviderOpenRouter, APIKey: "test-key", BaseURL: server.URL})
	_, err := c.Classify(context.Background(), testInput("hello"))
	if !errors.Is(err, ErrUnavailable) {
		t.Errorf("expected ErrUnavailable, got %v", err)
	}
}

func TestClassifyUnreachableProvider(t *testing.T) {
	// Closed server: connection refused.
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	c := NewClient(Config{Provider: ProviderOpenRouter, APIKey: "test-key", BaseURL: url})
	_, err := c.Classify(context.Background(), testInput("hello"))
	if !errors.Is(err, ErrUnavailable) {
		t.Errorf("expected ErrUnavailable, got %v", err)
	}
}

func TestClassifyRequiresAPIKeyForCloudProviders(t *testing.T) {
	c := NewClient(Config{Provider: ProviderOpenRouter})
	_, err := c.Classify(context.Background(), testInput("hello"))
	if !errors.Is(err, ErrUnavailable) {
		t.Errorf("missing key should be ErrUnavailable, got %v", err)
	}
}

func TestNewClientDefaults(t *testing.T) {
	tests := []struct {
		provider Provider
		wantBase string
	}{
		{ProviderOpenRouter, "https://openrouter.ai/api/v1"},
		{ProviderOpenAI, "https://api.openai.com/v1"},
		{ProviderGroq, "https://api.groq.com/openai/v1"},
		{ProviderOllama, "http://localhost:11434/v1"},
	}

	for _, tt := range tests {
		c := NewClient(Config{Provider: tt.provider})
		if c.baseURL != tt.wantBase {
			t.Errorf("%s baseURL = %q, want %q", tt.provider, c.baseURL, tt.wantBase)
		}
		if c.model == "" {
			t.Errorf("%s should get a default model", tt.provider)
		}
		if c.temperature != DefaultTemperature {
			t.Errorf("%s temperature = %v", tt.provider, c.temperature)
		}
	}
}
