package engage

import (
	"time"

	"github.com/lurelab/decoy/pkg/intel"
	"github.com/lurelab/decoy/pkg/session"
)

// Request is one inbound counterpart message plus optional steering.
type Request struct {
	// SessionKey identifies the engagement. Empty mints a new session.
	SessionKey string `json:"sessionKey"`

	// Message is the raw counterpart message for this turn.
	Message string `json:"message"`

	// PersonaID picks the victim persona for this turn. Empty keeps
	// the persona already on the session record.
	PersonaID string `json:"personaId,omitempty"`

	// AttackerPersonaID optionally biases suggested replies.
	AttackerPersonaID string `json:"attackerPersonaId,omitempty"`

	// ElevateVictim and ElevateAttacker activate the built-in
	// higher-sophistication overlay profiles. Independent; both may be
	// set on the same turn.
	ElevateVictim   bool `json:"elevateVictim,omitempty"`
	ElevateAttacker bool `json:"elevateAttacker,omitempty"`

	// VictimOverlay and AttackerOverlay are free-text refinements
	// layered on the registry profiles (and the elevated overlays) for
	// this turn.
	VictimOverlay   string `json:"victimOverlay,omitempty"`
	AttackerOverlay string `json:"attackerOverlay,omitempty"`
}

// Response is the full per-turn result.
type Response struct {
	SessionKey       string         `json:"sessionKey"`
	Reply            string         `json:"reply"`
	IsScam           bool           `json:"isScam"`
	Justification    string         `json:"justification,omitempty"`
	Tactic           string         `json:"tactic"`
	SafeguardTip     string         `json:"safeguardTip,omitempty"`
	SuggestedReplies []string       `json:"suggestedReplies,omitempty"`
	Notes            string         `json:"notes,omitempty"`
	TurnCount        int            `json:"turnCount"`
	Status           session.Status `json:"status"`
	Intelligence     intel.Record   `json:"intelligence"`
}

// CompletionReport is the payload dispatched to the completion callback
// when an engagement finishes.
type CompletionReport struct {
	SessionKey   string       `json:"sessionKey"`
	PersonaID    string       `json:"personaId"`
	ScamDetected bool         `json:"scamDetected"`
	Tactic       string       `json:"tactic"`
	TurnCount    int          `json:"turnCount"`
	Intelligence intel.Record `json:"intelligence"`
	Notes        string       `json:"notes"`
	FinishedAt   time.Time    `json:"finishedAt"`
}
