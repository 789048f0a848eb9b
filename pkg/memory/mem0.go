package memory

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/lurelab/decoy/pkg/httputil"
)

// Mem0Client talks to the hosted Mem0 memory API.
type Mem0Client struct {
	client  *http.Client
	baseURL string
	apiKey  string
}

// NewMem0Client creates a client for the Mem0 API. An empty baseURL
// targets the hosted platform.
func NewMem0Client(apiKey, baseURL string) *Mem0Client {
	if baseURL == "" {
		baseURL = "https://api.mem0.ai"
	}
	return &Mem0Client{
		client:  httputil.MediumClient(),
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
	}
}

type mem0SearchRequest struct {
	Query  string `json:"query"`
	UserID string `json:"user_id"`
}

type mem0AddRequest struct {
	Messages []Entry           `json:"messages"`
	UserID   string            `json:"user_id"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

// Search queries the memory service for one session's prior
// intelligence. The sessionKey doubles as the Mem0 user id.
func (c *Mem0Client) Search(ctx context.Context, query, sessionKey string) ([]string, error) {
	body, err := c.post(ctx, "/v1/memories/search/", mem0SearchRequest{
		Query:  query,
		UserID: sessionKey,
	})
	if err != nil {
		return nil, fmt.Errorf("mem0 search: %w", err)
	}
	return normalizeSearchResults(body), nil
}

// Append stores the entries against the session.
func (c *Mem0Client) Append(ctx context.Context, sessionKey string, entries []Entry, metadata map[string]string) error {
	if len(entries) == 0 {
		return nil
	}
	_, err := c.post(ctx, "/v1/memories/", mem0AddRequest{
		Messages: entries,
		UserID:   sessionKey,
		Metadata: metadata,
	})
	if err != nil {
		return fmt.Errorf("mem0 add: %w", err)
	}
	return nil
}

func (c *Mem0Client) post(ctx context.Context, path string, payload any) ([]byte, error) {
	jsonBody, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+path, bytes.NewBuffer(jsonBody))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Token "+c.apiKey)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer httputil.DrainAndClose(resp.Body)

	body, err := httputil.ReadResponseBody(resp.Body, httputil.MaxResponseSize)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("API error %d: %s", resp.StatusCode, string(body))
	}
	return body, nil
}

// normalizeSearchResults flattens the two response shapes the API emits:
// a bare array of results, or {"results": [...]}. Each result may be a
// plain string or an object carrying a "memory" field.
func normalizeSearchResults(body []byte) []string {
	var wrapped struct {
		Results []json.RawMessage `json:"results"`
	}
	var items []json.RawMessage

	if err := json.Unmarshal(body, &wrapped); err == nil && wrapped.Results != nil {
		items = wrapped.Results
	} else if err := json.Unmarshal(body, &items); err != nil {
		return nil
	}

	out := make([]string, 0, len(items))
	for _, item := range items {
		var s string
		if err := json.Unmarshal(item, &s); err == nil {
			if s != "" {
				out = append(out, s)
			}
			continue
		}
		var obj struct {
			Memory string `json:"memory"`
		}
		if err := json.Unmarshal(item, &obj); err == nil && obj.Memory != "" {
			out = append(out, obj.Memory)
		}
	}
	return out
}
