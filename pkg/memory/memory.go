// Package memory abstracts the long-term intelligence store. Two
// backends ship: the hosted Mem0 service and a local chromem-go vector
// store for air-gapped or test deployments.
package memory

import "context"

// Entry is one conversational fragment worth remembering, in the
// role/content shape the memory service ingests.
type Entry struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Service is the orchestrator's view of the memory backend. Search is
// essential context for a turn and its failure fails the turn; Append
// is best-effort and the caller only logs its failure.
type Service interface {
	// Search returns remembered fragments relevant to the query,
	// scoped to one session.
	Search(ctx context.Context, query, sessionKey string) ([]string, error)

	// Append stores the entries under the session with the given
	// metadata attached to each.
	Append(ctx context.Context, sessionKey string, entries []Entry, metadata map[string]string) error
}

// TypeScamIntelligence is the metadata type tag attached to memories
// written from confirmed scam turns.
const TypeScamIntelligence = "scam_intelligence"
