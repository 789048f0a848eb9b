package classify

import (
	"strings"
	"testing"

	"github.com/lurelab/decoy/pkg/persona"
)

func TestBuildPromptPersonaAndTaxonomy(t *testing.T) {
	reg := persona.NewRegistry()
	in := Input{
		Message:  "Your account will be blocked today!",
		Victim:   reg.Select("urgency-driven"),
		Taxonomy: reg.Taxonomy(),
	}

	system, user := BuildPrompt(in)

	if !strings.Contains(system, in.Victim.Name) {
		t.Error("system prompt should name the persona")
	}
	if !strings.Contains(system, "KYC Scam") || !strings.Contains(system, "Medicare Card Scam") {
		t.Error("system prompt should carry the full taxonomy")
	}
	if !strings.Contains(system, "Unity National Bank") {
		t.Error("system prompt should include the bait identity")
	}
	if !strings.Contains(user, in.Message) {
		t.Error("user prompt should carry the counterpart message")
	}
	if !strings.Contains(system, "Nothing is known about the counterpart") {
		t.Error("nil attacker should get the generic framing")
	}
}

func TestBuildPromptAttackerAndOverlays(t *testing.T) {
	reg := persona.NewRegistry()
	in := Input{
		Message:         "This is the cyber police.",
		Victim:          reg.Select(""),
		Attacker:        reg.SelectAttacker("police-officer"),
		Taxonomy:        reg.Taxonomy(),
		OverlayVictim:   "Recently moved cities, unsure of local procedures.",
		OverlayAttacker: "Calls from a spoofed landline number.",
	}

	system, _ := BuildPrompt(in)

	if in.Attacker == nil {
		t.Fatal("expected built-in police-officer attacker persona")
	}
	if !strings.Contains(system, in.Attacker.Role) {
		t.Error("system prompt should describe the attacker role")
	}
	if !strings.Contains(system, in.OverlayVictim) {
		t.Error("system prompt should include the victim overlay")
	}
	if !strings.Contains(system, in.OverlayAttacker) {
		t.Error("system prompt should include the attacker overlay")
	}
}

func TestBuildPromptCautiousScamPolicy(t *testing.T) {
	reg := persona.NewRegistry()
	system, _ := BuildPrompt(Input{
		Message:  "Hello, this is SBI calling",
		Victim:   reg.Select(""),
		Taxonomy: reg.Taxonomy(),
	})

	// The stated policy must default to non-scam and demand a concrete
	// trigger before flipping the flag.
	if !strings.Contains(system, "Default to isScam=false") {
		t.Error("policy must state the non-scam default")
	}
	if !strings.Contains(system, "no specific threat or request, is NOT a scam") {
		t.Error("policy must keep a bare bank-claim greeting non-scam")
	}
	for _, trigger := range []string{
		"financial urgency",
		"OTP, PIN, password",
		"a link the counterpart wants followed",
		"transfer money",
	} {
		if !strings.Contains(system, trigger) {
			t.Errorf("policy missing concrete trigger %q", trigger)
		}
	}
	if strings.Contains(system, "even at moderate confidence") {
		t.Error("policy must not instruct a scam-leaning bias")
	}
}

func TestBuildPromptElevatedOverlays(t *testing.T) {
	reg := persona.NewRegistry()
	base := Input{
		Message:  "This is your bank manager.",
		Victim:   reg.Select(""),
		Taxonomy: reg.Taxonomy(),
	}

	plain, _ := BuildPrompt(base)
	if strings.Contains(plain, elevatedVictimOverlay) || strings.Contains(plain, elevatedAttackerOverlay) {
		t.Fatal("elevated overlays must be off by default")
	}

	// The two flags compose independently.
	victimOnly := base
	victimOnly.ElevateVictim = true
	system, _ := BuildPrompt(victimOnly)
	if !strings.Contains(system, elevatedVictimOverlay) {
		t.Error("ElevateVictim should inject the elevated victim profile")
	}
	if strings.Contains(system, elevatedAttackerOverlay) {
		t.Error("ElevateVictim must not touch the adversary framing")
	}

	both := base
	both.ElevateVictim = true
	both.ElevateAttacker = true
	both.OverlayVictim = "Recently switched banks."
	system, _ = BuildPrompt(both)
	if !strings.Contains(system, elevatedVictimOverlay) || !strings.Contains(system, elevatedAttackerOverlay) {
		t.Error("both elevated overlays should be active together")
	}
	if !strings.Contains(system, both.OverlayVictim) {
		t.Error("free-text overlay should layer on top of the elevated profile")
	}
}

func TestBuildPromptMemoryAndPrefilter(t *testing.T) {
	reg := persona.NewRegistry()
	in := Input{
		Message:       "Send to this UPI now",
		Victim:        reg.Select(""),
		Taxonomy:      reg.Taxonomy(),
		MemoryContext: []string{"counterpart previously shared upi scam@ybl", "claims to be from the bank"},
		PrefilterNote: "local model flags this message as scam-like (label=scam, score=0.97)",
		TurnCount:     3,
	}

	_, user := BuildPrompt(in)

	for _, m := range in.MemoryContext {
		if !strings.Contains(user, m) {
			t.Errorf("user prompt missing memory line %q", m)
		}
	}
	if !strings.Contains(user, in.PrefilterNote) {
		t.Error("user prompt should carry the prefilter note")
	}
	if !strings.Contains(user, "TURNS SO FAR: 3") {
		t.Error("user prompt should carry the turn count")
	}
}
