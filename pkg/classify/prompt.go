package classify

import (
	"fmt"
	"strings"

	"github.com/lurelab/decoy/pkg/persona"
)

// Input carries everything the prompt assembler needs for one turn.
type Input struct {
	// Message is the raw inbound counterpart message.
	Message string

	// Victim is the resolved honeypot persona for this session.
	Victim persona.Persona

	// Attacker optionally biases suggested counterpart replies. Nil
	// means a generic unnamed-attacker framing.
	Attacker *persona.AttackerPersona

	// MemoryContext holds prior intelligence notes recalled for this
	// session, oldest first.
	MemoryContext []string

	// Taxonomy is the closed set of tactic labels the model must pick
	// from (plus the sentinel "None").
	Taxonomy []string

	// ElevateVictim and ElevateAttacker switch in the built-in
	// higher-sophistication overlay profiles. Independent flags; both
	// may be active at once.
	ElevateVictim   bool
	ElevateAttacker bool

	// OverlayVictim and OverlayAttacker are free-text per-request
	// refinements layered on top of the registry profiles (and on the
	// elevated overlays when those are active).
	OverlayVictim   string
	OverlayAttacker string

	// PrefilterNote carries the local model's advisory signal, empty
	// when the prefilter is disabled or degraded.
	PrefilterNote string

	// TurnCount is the number of turns completed before this one.
	TurnCount int
}

// elevatedVictimOverlay is the built-in higher-sophistication victim
// profile: still reachable bait, but harder to rush.
const elevatedVictimOverlay = `Heightened profile for this session: you are financially literate and
detail-oriented. You ask probing questions, notice inconsistencies in the
counterpart's story, and want references and case numbers before acting.
You remain polite and reachable; you slow the counterpart down rather
than hang up.`

// elevatedAttackerOverlay is the built-in higher-sophistication
// adversary framing.
const elevatedAttackerOverlay = `Assume a sophisticated adversary: they follow a rehearsed script, hold
plausible case numbers and partial personal details, may spoof caller
identities, and adapt quickly when challenged instead of giving up.`

// baitIdentity is the fictional financial identity the persona is
// allowed to "leak" to keep a scammer engaged. Everything here is fake.
const baitIdentity = `You hold a savings account at "Unity National Bank", account number 4521 0088 7733,
IFSC UNBK0004521, UPI handle ramesh.kumar77@unitybank, registered phone 9847 221 456.
This identity is entirely fictional; drip-feed pieces of it only when the
counterpart pressures you for them, never all at once.`

// BuildPrompt assembles the system and user messages for one
// classification turn.
func BuildPrompt(in Input) (system, user string) {
	var sb strings.Builder

	sb.WriteString(`You are operating a scam-baiting honeypot. You play a potential fraud victim
and simultaneously analyze the counterpart's message for scam intent.

PERSONA YOU PLAY:
`)
	sb.WriteString(fmt.Sprintf("Name: %s\n%s\n", in.Victim.Name, in.Victim.Description))
	if len(in.Victim.BehavioralTraits) > 0 {
		sb.WriteString("Traits: " + strings.Join(in.Victim.BehavioralTraits, "; ") + "\n")
	}
	if len(in.Victim.TypicalResponses) > 0 {
		sb.WriteString("Typical things you say: " + strings.Join(in.Victim.TypicalResponses, " | ") + "\n")
	}
	if in.ElevateVictim {
		sb.WriteString(elevatedVictimOverlay + "\n")
	}
	if in.OverlayVictim != "" {
		sb.WriteString("Additional persona guidance for this session: " + in.OverlayVictim + "\n")
	}

	sb.WriteString("\nBAIT IDENTITY:\n" + baitIdentity + "\n")

	sb.WriteString("\nCOUNTERPART:\n")
	if in.Attacker != nil {
		sb.WriteString(fmt.Sprintf("The counterpart is suspected to be a %s running a %s playbook. %s\n",
			in.Attacker.Role, in.Attacker.Tactic, in.Attacker.Description))
	} else {
		sb.WriteString("Nothing is known about the counterpart yet.\n")
	}
	if in.ElevateAttacker {
		sb.WriteString(elevatedAttackerOverlay + "\n")
	}
	if in.OverlayAttacker != "" {
		sb.WriteString("Additional counterpart context: " + in.OverlayAttacker + "\n")
	}

	sb.WriteString(`
SCAM POLICY (CAUTIOUS):
Default to isScam=false. A greeting, or a bare claim of calling from a
bank or official body with no specific threat or request, is NOT a scam
yet: respond in persona and keep the flag false. Set isScam=true ONLY
when the message carries a concrete trigger:
- financial urgency (account will be blocked, pending refund or fine),
- a request for an OTP, PIN, password or other credential,
- a link the counterpart wants followed,
- a request to transfer money or "verify" a payment/UPI.

TACTIC TAXONOMY (choose exactly one, or "None"):
`)
	sb.WriteString(strings.Join(in.Taxonomy, ", ") + "\n")

	sb.WriteString(`
YOUR TASKS each turn:
1. Decide whether the counterpart's message is part of a scam attempt.
2. Reply fully in character as the persona. Never reveal you are
   automated, never break character, never lecture the counterpart.
3. Extract any concrete intelligence the message exposes: UPI handles,
   URLs, bank account numbers, IFSC codes, phone numbers, pressure
   keywords.
4. Judge whether the engagement has run its course. A typical
   engagement yields its intelligence within 3-5 turns; once the
   counterpart repeats demands or the payment details are captured,
   mark it finished.
5. Optionally suggest up to ` + fmt.Sprintf("%d", MaxSuggestedReplies) + ` things the counterpart might say next.

Respond with STRICT JSON only, no markdown, matching exactly:
{"isScam": true|false, "justification": "...", "reply": "...",
"tactic": "<taxonomy label or None>", "suggestedReplies": ["..."],
"isFinished": true|false, "notes": "...",
"intelligence": {"upi_ids": [], "urls": [], "bank_accounts": [],
"ifsc_codes": [], "phone_numbers": [], "keywords": []}}`)

	system = sb.String()

	var ub strings.Builder
	if len(in.MemoryContext) > 0 {
		ub.WriteString("PRIOR INTELLIGENCE ON THIS SESSION:\n")
		for _, m := range in.MemoryContext {
			ub.WriteString("- " + m + "\n")
		}
		ub.WriteString("\n")
	}
	if in.PrefilterNote != "" {
		ub.WriteString("LOCAL PREFILTER: " + in.PrefilterNote + "\n\n")
	}
	ub.WriteString(fmt.Sprintf("TURNS SO FAR: %d\n\nCOUNTERPART MESSAGE:\n%s", in.TurnCount, in.Message))
	user = ub.String()

	return system, user
}
