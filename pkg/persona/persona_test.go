package persona

import (
	"os"
	"path/filepath"
	"testing"
)

func TestSelectKnownID(t *testing.T) {
	reg := NewRegistry()

	p := reg.Select("reward-motivated")
	if p.ID != "reward-motivated" {
		t.Errorf("expected reward-motivated, got %q", p.ID)
	}
	if len(p.BehavioralTraits) == 0 || len(p.TypicalResponses) == 0 {
		t.Error("built-in persona should carry traits and typical responses")
	}
}

func TestSelectFallsBackToDefault(t *testing.T) {
	reg := NewRegistry()
	def := reg.Personas()[DefaultIndex]

	tests := []struct {
		name string
		id   string
	}{
		{"empty id", ""},
		{"unknown id", "no-such-persona"},
		{"case mismatch", "Trust-First"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := reg.Select(tt.id)
			if got.ID != def.ID {
				t.Errorf("Select(%q) = %q, want default %q", tt.id, got.ID, def.ID)
			}
		})
	}
}

func TestSelectAttacker(t *testing.T) {
	reg := NewRegistry()

	if got := reg.SelectAttacker(""); got != nil {
		t.Errorf("empty id should resolve to nil, got %q", got.ID)
	}
	if got := reg.SelectAttacker("no-such-attacker"); got != nil {
		t.Errorf("unknown id should resolve to nil, got %q", got.ID)
	}

	got := reg.SelectAttacker("bank-official")
	if got == nil {
		t.Fatal("expected bank-official attacker persona")
	}
	if got.Tactic != "KYC Scam" {
		t.Errorf("bank-official tactic = %q, want KYC Scam", got.Tactic)
	}
}

func TestTaxonomy(t *testing.T) {
	reg := NewRegistry()
	labels := reg.Taxonomy()

	if len(labels) != len(defaultHandbook) {
		t.Fatalf("taxonomy has %d labels, want %d", len(labels), len(defaultHandbook))
	}
	if labels[0] != "KYC Scam" {
		t.Errorf("first label = %q, want KYC Scam", labels[0])
	}

	seen := make(map[string]bool, len(labels))
	for _, l := range labels {
		if seen[l] {
			t.Errorf("duplicate taxonomy label %q", l)
		}
		seen[l] = true
	}
	for _, want := range []string{"Digital Arrest", "Quishing", "Money Mules"} {
		if !seen[want] {
			t.Errorf("taxonomy missing %q", want)
		}
	}
}

func TestSafeguardTip(t *testing.T) {
	reg := NewRegistry()

	tip := reg.SafeguardTip("KYC Scam")
	if tip != "Contact your bank directly to confirm KYC update requests." {
		t.Errorf("unexpected KYC tip: %q", tip)
	}
	if tip := reg.SafeguardTip("None"); tip != "" {
		t.Errorf("sentinel None should have no tip, got %q", tip)
	}
	if tip := reg.SafeguardTip("Unknown Category"); tip != "" {
		t.Errorf("unknown category should have no tip, got %q", tip)
	}
}

func TestValidTactic(t *testing.T) {
	reg := NewRegistry()

	tests := []struct {
		label string
		want  bool
	}{
		{"None", true},
		{"Phishing", true},
		{"Medicare Card Scam", true},
		{"phishing", false},
		{"Made Up Tactic", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := reg.ValidTactic(tt.label); got != tt.want {
			t.Errorf("ValidTactic(%q) = %v, want %v", tt.label, got, tt.want)
		}
	}
}

func TestLoadEmptyPathUsesBuiltins(t *testing.T) {
	reg, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\") error: %v", err)
	}
	if len(reg.Personas()) != len(defaultPersonas) {
		t.Errorf("expected %d built-in personas, got %d", len(defaultPersonas), len(reg.Personas()))
	}
}

func TestLoadOverridesPersonasOnly(t *testing.T) {
	path := filepath.Join(t.TempDir(), "personas.yaml")
	doc := `personas:
  - id: test-victim
    name: Test Victim
    description: A minimal profile for testing.
    behavioral_traits:
      - asks questions
    typical_responses:
      - "Oh really?"
  - id: other-victim
    name: Other Victim
    description: The default slot.
`
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}

	reg, err := Load(path)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if got := len(reg.Personas()); got != 2 {
		t.Fatalf("expected 2 personas, got %d", got)
	}
	if p := reg.Select("unknown"); p.ID != "other-victim" {
		t.Errorf("fallback should be the overridden index-1 persona, got %q", p.ID)
	}
	// Handbook section absent: built-in taxonomy survives.
	if len(reg.Taxonomy()) != len(defaultHandbook) {
		t.Error("handbook should be inherited when not overridden")
	}
}

func TestLoadRejectsBadFiles(t *testing.T) {
	dir := t.TempDir()

	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("personas: {not: [a, list"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(bad); err == nil {
		t.Error("expected parse error for malformed YAML")
	}

	noid := filepath.Join(dir, "noid.yaml")
	if err := os.WriteFile(noid, []byte("personas:\n  - name: Missing ID\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(noid); err == nil {
		t.Error("expected error for persona with empty id")
	}

	if _, err := Load(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("expected error for nonexistent file")
	}
}
