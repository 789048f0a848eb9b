package classify

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/lurelab/decoy/pkg/httputil"
)

// Provider selects the chat-completions backend.
type Provider string

const (
	ProviderOpenRouter Provider = "openrouter"
	ProviderOpenAI     Provider = "openai"
	ProviderGroq       Provider = "groq"
	ProviderOllama     Provider = "ollama"
)

// ErrUnavailable marks transport-level classifier failures: the provider
// could not be reached or returned garbage at the protocol level. A turn
// cannot proceed without a verdict, so callers surface this as a generic
// turn failure.
var ErrUnavailable = errors.New("classifier unavailable")

// DefaultTemperature keeps verdicts near-deterministic while leaving the
// in-character reply a little room to vary.
const DefaultTemperature = 0.3

// Config holds the configuration for the verdict client.
type Config struct {
	Provider    Provider
	APIKey      string // Optional for Ollama
	Model       string
	BaseURL     string  // Optional override
	Temperature float64 // 0 means DefaultTemperature
}

// Client calls an OpenAI-compatible chat-completions endpoint for
// per-turn verdicts. One call per turn, no retries: latency matters more
// than a second opinion, and the caller already degrades safely.
type Client struct {
	client      *http.Client
	provider    Provider
	baseURL     string
	apiKey      string
	model       string
	temperature float64
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// NewClient creates a verdict client for the configured provider.
func NewClient(cfg Config) *Client {
	if cfg.Model == "" {
		if cfg.Provider == ProviderOllama {
			cfg.Model = "qwen2.5:7b"
		} else {
			cfg.Model = "openai/gpt-4o-mini"
		}
	}

	var baseURL string
	switch cfg.Provider {
	case ProviderOllama:
		baseURL = "http://localhost:11434/v1"
	case ProviderOpenAI:
		baseURL = "https://api.openai.com/v1"
	case ProviderGroq:
		baseURL = "https://api.groq.com/openai/v1"
	case ProviderOpenRouter:
		fallthrough
	default:
		baseURL = "https://openrouter.ai/api/v1"
	}
	if cfg.BaseURL != "" {
		baseURL = cfg.BaseURL
	}

	temperature := cfg.Temperature
	if temperature == 0 {
		temperature = DefaultTemperature
	}

	return &Client{
		client:      httputil.SlowClient(),
		provider:    cfg.Provider,
		baseURL:     baseURL,
		apiKey:      cfg.APIKey,
		model:       cfg.Model,
		temperature: temperature,
	}
}

// Classify runs one verdict turn. Transport failures return
// ErrUnavailable; a reachable model that produced unparsable output
// returns the safe default verdict with a nil error.
func (c *Client) Classify(ctx context.Context, in Input) (*Verdict, error) {
	if c.provider != ProviderOllama && c.apiKey == "" {
		return nil, fmt.Errorf("%w: API key not configured for %s", ErrUnavailable, c.provider)
	}

	system, user := BuildPrompt(in)
	reqBody := chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
		Temperature: c.temperature,
	}

	content, err := c.callLLM(ctx, reqBody)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	return ParseVerdict(content, in.Taxonomy), nil
}

func (c *Client) callLLM(ctx context.Context, reqBody chatRequest) (string, error) {
	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}

	endpoint := strings.TrimRight(c.baseURL, "/") + "/chat/completions"

	req, err := http.NewRequestWithContext(ctx, "POST", endpoint, bytes.NewBuffer(jsonBody))
	if err != nil {
		return "", err
	}
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", err
	}
	defer httputil.DrainAndClose(resp.Body)

	// External providers are untrusted; cap the body we'll buffer.
	body, err := httputil.ReadResponseBody(resp.Body, 2*1024*1024)
	if err != nil {
		return "", err
	}

	if resp.StatusCode != 200 {
		return "", fmt.Errorf("API error %d: %s", resp.StatusCode, string(body))
	}

	var result chatResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return "", fmt.Errorf("unmarshal error: %w", err)
	}
	if len(result.Choices) == 0 {
		return "", fmt.Errorf("no choices returned")
	}
	return result.Choices[0].Message.Content, nil
}
