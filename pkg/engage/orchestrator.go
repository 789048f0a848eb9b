// Package engage runs the per-turn engagement pipeline: recall, verdict,
// extraction, state advance, persistence and completion dispatch.
package engage

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/lurelab/decoy/pkg/archive"
	"github.com/lurelab/decoy/pkg/classify"
	"github.com/lurelab/decoy/pkg/intel"
	"github.com/lurelab/decoy/pkg/memory"
	"github.com/lurelab/decoy/pkg/persona"
	"github.com/lurelab/decoy/pkg/session"
)

// ErrEmptyMessage rejects turns with no usable message text.
var ErrEmptyMessage = errors.New("message is empty")

// ErrTurnFailed wraps failures of essential turn dependencies (verdict
// model, memory recall). The turn produced no reply.
var ErrTurnFailed = errors.New("turn failed")

// memoryQuery is the recall query used for every turn. Broad on
// purpose: session scoping does the narrowing.
const memoryQuery = "scam"

// Classifier produces per-turn verdicts. Satisfied by
// *classify.Client; tests substitute fakes.
type Classifier interface {
	Classify(ctx context.Context, in classify.Input) (*classify.Verdict, error)
}

// Config wires an Orchestrator. Classifier, Memory, Store and Registry
// are required; the rest degrade to no-ops when absent.
type Config struct {
	Classifier Classifier
	Memory     memory.Service
	Store      session.Store
	Registry   *persona.Registry

	Extractor *intel.Extractor    // nil uses the default pattern set
	Prefilter *classify.Prefilter // optional local scam signal
	Notifier  *Notifier           // optional completion callback
	Archive   *archive.Archive    // optional Postgres report archive
}

// Orchestrator drives one engagement turn end to end.
type Orchestrator struct {
	classifier Classifier
	memory     memory.Service
	store      session.Store
	registry   *persona.Registry
	extractor  *intel.Extractor
	prefilter  *classify.Prefilter
	notifier   *Notifier
	archive    *archive.Archive
}

// New validates the wiring and returns an orchestrator.
func New(cfg Config) (*Orchestrator, error) {
	if cfg.Classifier == nil {
		return nil, fmt.Errorf("classifier is required")
	}
	if cfg.Memory == nil {
		return nil, fmt.Errorf("memory service is required")
	}
	if cfg.Store == nil {
		return nil, fmt.Errorf("session store is required")
	}
	if cfg.Registry == nil {
		return nil, fmt.Errorf("persona registry is required")
	}
	if cfg.Extractor == nil {
		cfg.Extractor = intel.Default()
	}
	return &Orchestrator{
		classifier: cfg.Classifier,
		memory:     cfg.Memory,
		store:      cfg.Store,
		registry:   cfg.Registry,
		extractor:  cfg.Extractor,
		prefilter:  cfg.Prefilter,
		notifier:   cfg.Notifier,
		archive:    cfg.Archive,
	}, nil
}

// Engage runs one turn. An empty message is rejected before any
// dependency is touched. Verdict-model or memory-recall failures fail
// the whole turn; everything downstream of the verdict is best-effort.
func (o *Orchestrator) Engage(ctx context.Context, req Request) (*Response, error) {
	if strings.TrimSpace(req.Message) == "" {
		return nil, ErrEmptyMessage
	}

	key := req.SessionKey
	if key == "" {
		key = uuid.NewString()
	}

	state, err := o.store.Get(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("%w: session load: %v", ErrTurnFailed, err)
	}
	if state == nil {
		resolved := o.registry.Select(req.PersonaID)
		state = session.NewState(key, resolved.ID)
		log.Printf("[ENGAGE] session %s started (persona=%s)", key, resolved.ID)
	}

	// Traits are read fresh each turn: a caller-supplied id switches
	// the persona, no id keeps the one on record. Unknown ids degrade
	// to the registry default like everywhere else.
	personaID := state.PersonaID
	if req.PersonaID != "" {
		personaID = req.PersonaID
	}
	victim := o.registry.Select(personaID)
	state.PersonaID = victim.ID

	// Recall is essential context: a turn judged without prior
	// intelligence would contradict what the honeypot already knows.
	memories, err := o.memory.Search(ctx, memoryQuery, key)
	if err != nil {
		return nil, fmt.Errorf("%w: memory recall: %v", ErrTurnFailed, err)
	}

	var prefilterNote string
	if o.prefilter.IsReady() {
		prefilterNote = o.prefilter.Note(ctx, req.Message)
	}

	verdict, err := o.classifier.Classify(ctx, classify.Input{
		Message:         req.Message,
		Victim:          victim,
		Attacker:        o.registry.SelectAttacker(req.AttackerPersonaID),
		MemoryContext:   memories,
		Taxonomy:        o.registry.Taxonomy(),
		ElevateVictim:   req.ElevateVictim,
		ElevateAttacker: req.ElevateAttacker,
		OverlayVictim:   req.VictimOverlay,
		OverlayAttacker: req.AttackerOverlay,
		PrefilterNote:   prefilterNote,
		TurnCount:       state.TurnCount,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: verdict: %v", ErrTurnFailed, err)
	}

	// The regex pass runs over both sides of the exchange; models
	// paraphrase identifiers, patterns do not.
	extracted := o.extractor.Extract(req.Message + "\n" + verdict.Reply)
	turnIntel := intel.Merge(verdict.Intelligence, extracted)

	transitioned := session.Advance(state, verdict.IsScam, verdict.IsFinished)
	state.Intelligence = intel.Merge(state.Intelligence, turnIntel)
	if verdict.Tactic != classify.NoTactic {
		state.Tactic = verdict.Tactic
	}
	if note := strings.TrimSpace(verdict.Notes); note != "" {
		if state.Notes != "" {
			state.Notes += "\n"
		}
		state.Notes += note
	}
	// The completion report must carry summary notes; a model that
	// never filled the notes field still gave a justification.
	if transitioned && state.Notes == "" {
		state.Notes = verdict.Justification
	}

	if err := o.store.Save(ctx, state); err != nil {
		log.Printf("[ENGAGE] session %s save failed: %v", key, err)
	}

	if verdict.IsScam {
		o.remember(ctx, state, req.Message, verdict, turnIntel)
	}

	if transitioned {
		log.Printf("[ENGAGE] session %s finished after %d turns (tactic=%s, intel=%d items)",
			key, state.TurnCount, state.Tactic, state.Intelligence.Total())
		o.complete(state)
	}

	resp := &Response{
		SessionKey:       key,
		Reply:            verdict.Reply,
		IsScam:           verdict.IsScam,
		Justification:    verdict.Justification,
		Tactic:           verdict.Tactic,
		SuggestedReplies: verdict.SuggestedReplies,
		Notes:            verdict.Notes,
		TurnCount:        state.TurnCount,
		Status:           state.Status,
		Intelligence:     state.Intelligence,
	}
	if verdict.IsScam && verdict.Tactic != classify.NoTactic {
		resp.SafeguardTip = o.registry.SafeguardTip(verdict.Tactic)
	}
	return resp, nil
}

// remember appends the scam turn's message pair, plus a summary of the
// intelligence it yielded, to long-term memory. Best-effort: the reply
// already happened, so a write failure only loses recall depth.
func (o *Orchestrator) remember(ctx context.Context, state *session.State, message string, verdict *classify.Verdict, turnIntel intel.Record) {
	entries := []memory.Entry{
		{Role: "user", Content: message},
		{Role: "assistant", Content: verdict.Reply},
	}
	if !turnIntel.IsEmpty() {
		entries = append(entries, memory.Entry{Role: "assistant", Content: summarize(turnIntel)})
	}
	metadata := map[string]string{
		"type":    memory.TypeScamIntelligence,
		"tactic":  verdict.Tactic,
		"persona": state.PersonaID,
	}
	if err := o.memory.Append(ctx, state.Key, entries, metadata); err != nil {
		log.Printf("[ENGAGE] session %s memory append failed: %v", state.Key, err)
	}
}

// summarize renders a turn's intelligence as one recallable line,
// non-empty categories only.
func summarize(rec intel.Record) string {
	var parts []string
	for _, cat := range intel.Categories() {
		if vals := rec[cat]; len(vals) > 0 {
			parts = append(parts, fmt.Sprintf("%s: %s", cat, strings.Join(vals, ", ")))
		}
	}
	return "captured intelligence - " + strings.Join(parts, "; ")
}

// complete fans the finished engagement out to the callback and the
// archive. Both are detached from the request path.
func (o *Orchestrator) complete(state *session.State) {
	report := CompletionReport{
		SessionKey:   state.Key,
		PersonaID:    state.PersonaID,
		ScamDetected: state.ScamDetected,
		Tactic:       state.Tactic,
		TurnCount:    state.TurnCount,
		Intelligence: state.Intelligence.Clone(),
		Notes:        state.Notes,
		FinishedAt:   time.Now(),
	}

	o.notifier.Dispatch(report)

	if o.archive != nil {
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()
			err := o.archive.Store(ctx, archive.Report{
				SessionKey:   report.SessionKey,
				PersonaID:    report.PersonaID,
				Tactic:       report.Tactic,
				TurnCount:    report.TurnCount,
				Intelligence: report.Intelligence,
				FinishedAt:   report.FinishedAt,
			})
			if err != nil {
				log.Printf("[ENGAGE] session %s archive failed: %v", report.SessionKey, err)
			}
		}()
	}
}
