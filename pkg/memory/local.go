package memory

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"

	chromem "github.com/philippgille/chromem-go"

	"github.com/lurelab/decoy/pkg/httputil"
)

// LocalStore keeps intelligence memories in an in-process chromem-go
// vector store. Suited to air-gapped deployments and tests; memories do
// not survive a restart.
type LocalStore struct {
	db         *chromem.DB
	collection *chromem.Collection

	mu         sync.Mutex
	perSession map[string]int // documents per session, clamps query size
}

// SearchLimit is how many remembered fragments a search returns at most.
const SearchLimit = 5

// NewLocalStore creates a store using the given embedding function.
func NewLocalStore(embed chromem.EmbeddingFunc) (*LocalStore, error) {
	db := chromem.NewDB()
	collection, err := db.CreateCollection("scam_intelligence", nil, embed)
	if err != nil {
		return nil, fmt.Errorf("create collection: %w", err)
	}
	return &LocalStore{db: db, collection: collection, perSession: make(map[string]int)}, nil
}

// NewLocalStoreWithOllama creates a store embedding via a local Ollama
// instance.
func NewLocalStoreWithOllama(model, baseURL string) (*LocalStore, error) {
	if model == "" {
		model = "embeddinggemma"
	}
	return NewLocalStore(newOllamaEmbeddingFunc(model, baseURL))
}

// Search returns up to SearchLimit fragments for the session, most
// similar first.
func (s *LocalStore) Search(ctx context.Context, query, sessionKey string) ([]string, error) {
	s.mu.Lock()
	n := s.perSession[sessionKey]
	s.mu.Unlock()
	if n == 0 {
		return nil, nil
	}
	if n > SearchLimit {
		n = SearchLimit
	}

	results, err := s.collection.Query(ctx, query, n, map[string]string{"session": sessionKey}, nil)
	if err != nil {
		return nil, fmt.Errorf("local memory search: %w", err)
	}

	out := make([]string, 0, len(results))
	for _, r := range results {
		out = append(out, r.Content)
	}
	return out, nil
}

// Append stores the entries scoped to the session. Metadata keys ride
// along on each document.
func (s *LocalStore) Append(ctx context.Context, sessionKey string, entries []Entry, metadata map[string]string) error {
	if len(entries) == 0 {
		return nil
	}

	s.mu.Lock()
	start := s.perSession[sessionKey]
	s.mu.Unlock()

	docs := make([]chromem.Document, 0, len(entries))
	for i, e := range entries {
		meta := map[string]string{
			"session": sessionKey,
			"role":    e.Role,
		}
		for k, v := range metadata {
			meta[k] = v
		}
		docs = append(docs, chromem.Document{
			ID:       fmt.Sprintf("%s-%d", sessionKey, start+i),
			Content:  e.Content,
			Metadata: meta,
		})
	}

	if err := s.collection.AddDocuments(ctx, docs, 1); err != nil {
		return fmt.Errorf("local memory add: %w", err)
	}

	s.mu.Lock()
	s.perSession[sessionKey] += len(docs)
	s.mu.Unlock()
	return nil
}

// newOllamaEmbeddingFunc embeds via Ollama's /api/embeddings endpoint.
func newOllamaEmbeddingFunc(model, baseURL string) chromem.EmbeddingFunc {
	client := httputil.MediumClient()

	return func(ctx context.Context, text string) ([]float32, error) {
		reqBody := map[string]string{
			"model":  model,
			"prompt": text,
		}
		jsonData, err := json.Marshal(reqBody)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request: %w", err)
		}

		req, err := http.NewRequestWithContext(ctx, "POST", baseURL+"/api/embeddings", bytes.NewBuffer(jsonData))
		if err != nil {
			return nil, fmt.Errorf("failed to create request: %w", err)
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := client.Do(req)
		if err != nil {
			return nil, fmt.Errorf("request failed: %w", err)
		}
		defer httputil.DrainAndClose(resp.Body)

		if resp.StatusCode != 200 {
			body, _ := httputil.ReadErrorBody(resp.Body)
			return nil, fmt.Errorf("ollama embedding error %d: %s", resp.StatusCode, string(body))
		}

		var result struct {
			Embedding []float32 `json:"embedding"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
			return nil, fmt.Errorf("failed to decode response: %w", err)
		}
		return result.Embedding, nil
	}
}
