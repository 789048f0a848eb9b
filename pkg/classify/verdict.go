package classify

import (
	"encoding/json"
	"strings"

	"github.com/lurelab/decoy/pkg/intel"
)

// MaxSuggestedReplies caps how many counterpart reply suggestions a
// verdict may carry. Extra entries from a verbose model are dropped.
const MaxSuggestedReplies = 3

// NoTactic is the sentinel label for a turn with no identified tactic.
const NoTactic = "None"

// Verdict is the per-turn judgment produced by the language model:
// scam determination, the persona's in-character reply, and anything the
// model noticed worth keeping.
type Verdict struct {
	IsScam           bool         `json:"isScam"`
	Justification    string       `json:"justification"`
	Reply            string       `json:"reply"`
	Tactic           string       `json:"tactic"`
	SuggestedReplies []string     `json:"suggestedReplies"`
	IsFinished       bool         `json:"isFinished"`
	Notes            string       `json:"notes"`
	Intelligence     intel.Record `json:"intelligence"`
}

// fallbackReply keeps the conversation alive when the model's output
// could not be understood. Vague enough to fit any persona.
const fallbackReply = "Sorry, I didn't quite get that. Could you explain once more?"

// DefaultVerdict is the safe verdict used when the model's reply cannot
// be parsed: not a scam, no tactic, conversation continues.
func DefaultVerdict() *Verdict {
	return &Verdict{
		IsScam:       false,
		Reply:        fallbackReply,
		Tactic:       NoTactic,
		Intelligence: intel.NewRecord(),
	}
}

// ParseVerdict extracts and normalizes a verdict from raw model output.
// The output may wrap the JSON in markdown fences or prose. Unparsable
// output degrades to DefaultVerdict rather than an error: a confused
// model must never take the honeypot offline mid-conversation.
//
// taxonomy is the closed set of valid tactic labels; anything outside it
// is coerced to NoTactic.
func ParseVerdict(raw string, taxonomy []string) *Verdict {
	clean := extractJSON(raw)

	var v Verdict
	if err := json.Unmarshal([]byte(clean), &v); err != nil {
		return DefaultVerdict()
	}

	if strings.TrimSpace(v.Reply) == "" {
		v.Reply = fallbackReply
	}
	v.Tactic = normalizeTactic(v.Tactic, taxonomy)
	if len(v.SuggestedReplies) > MaxSuggestedReplies {
		v.SuggestedReplies = v.SuggestedReplies[:MaxSuggestedReplies]
	}
	if v.Intelligence == nil {
		v.Intelligence = intel.NewRecord()
	}
	return &v
}

func normalizeTactic(label string, taxonomy []string) string {
	label = strings.TrimSpace(label)
	if label == "" || label == NoTactic {
		return NoTactic
	}
	for _, t := range taxonomy {
		if t == label {
			return label
		}
	}
	return NoTactic
}

// extractJSON strips markdown fences and surrounding prose, returning
// the outermost {...} span of the content.
func extractJSON(content string) string {
	clean := strings.TrimSpace(content)
	if start := strings.Index(clean, "{"); start != -1 {
		clean = clean[start:]
	}
	if end := strings.LastIndex(clean, "}"); end != -1 {
		clean = clean[:end+1]
	}
	return clean
}
