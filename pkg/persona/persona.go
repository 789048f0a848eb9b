// Package persona holds the immutable victim persona, attacker persona
// and scam handbook registries, loaded once at process start. Selection
// never fails: unknown victim ids silently degrade to the registry
// default, unknown attacker ids resolve to nil (meaning a generic
// unnamed-attacker framing).
package persona

// Persona is a fixed behavioral profile the honeypot presents to the
// counterpart.
type Persona struct {
	ID               string   `yaml:"id" json:"id"`
	Name             string   `yaml:"name" json:"name"`
	Description      string   `yaml:"description" json:"description"`
	BehavioralTraits []string `yaml:"behavioral_traits" json:"behavioral_traits"`
	TypicalResponses []string `yaml:"typical_responses" json:"typical_responses"`
}

// AttackerPersona biases the classifier's suggested counterpart replies.
// It is prompt-only context, never stored as session state.
type AttackerPersona struct {
	ID          string `yaml:"id" json:"id"`
	Role        string `yaml:"role" json:"role"`
	Tactic      string `yaml:"tactic" json:"tactic"`
	Description string `yaml:"description" json:"description"`
}

// DefaultIndex is the position of the default victim persona. Index 0 is
// reserved as the baseline/fallback profile, so not-found lookups resolve
// to the second entry.
const DefaultIndex = 1

// Registry bundles the three static tables. Construct with NewRegistry
// (built-in tables) or Load (YAML overrides); treat as read-only after.
type Registry struct {
	victims   []Persona
	attackers []AttackerPersona
	handbook  []HandbookEntry
}

// NewRegistry returns a registry backed by the built-in tables.
func NewRegistry() *Registry {
	return &Registry{
		victims:   defaultPersonas,
		attackers: defaultAttackerPersonas,
		handbook:  defaultHandbook,
	}
}

// Select resolves a victim persona by id. An empty or unknown id returns
// the default persona (index 1). Never returns a zero Persona as long as
// the registry has at least two entries.
func (r *Registry) Select(id string) Persona {
	if id != "" {
		for _, p := range r.victims {
			if p.ID == id {
				return p
			}
		}
	}
	if len(r.victims) > DefaultIndex {
		return r.victims[DefaultIndex]
	}
	if len(r.victims) > 0 {
		return r.victims[0]
	}
	return Persona{}
}

// SelectAttacker resolves an attacker persona by id, or nil when absent.
// Nil is meaningful: the orchestrator falls back to a generic
// unnamed-attacker framing.
func (r *Registry) SelectAttacker(id string) *AttackerPersona {
	if id == "" {
		return nil
	}
	for i := range r.attackers {
		if r.attackers[i].ID == id {
			return &r.attackers[i]
		}
	}
	return nil
}

// Personas returns the victim registry in order.
func (r *Registry) Personas() []Persona {
	return r.victims
}

// Taxonomy returns the ordered closed set of scam-tactic category labels
// the classifier must choose among.
func (r *Registry) Taxonomy() []string {
	labels := make([]string, 0, len(r.handbook))
	for _, e := range r.handbook {
		labels = append(labels, e.Category)
	}
	return labels
}

// Lookup finds the handbook entry for a tactic label.
func (r *Registry) Lookup(category string) (HandbookEntry, bool) {
	for _, e := range r.handbook {
		if e.Category == category {
			return e, true
		}
	}
	return HandbookEntry{}, false
}

// SafeguardTip returns the leading recommended action for a detected
// tactic, or empty when the tactic is unknown or the sentinel "None".
func (r *Registry) SafeguardTip(category string) string {
	entry, ok := r.Lookup(category)
	if !ok || len(entry.Dos) == 0 {
		return ""
	}
	return entry.Dos[0]
}

// ValidTactic reports whether the label is in the taxonomy or is the
// sentinel "None".
func (r *Registry) ValidTactic(label string) bool {
	if label == "None" {
		return true
	}
	_, ok := r.Lookup(label)
	return ok
}
