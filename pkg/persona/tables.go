package persona

// Built-in registries. The victim table models documented fraud-victim
// archetypes; index 0 is the baseline profile and index 1 is the default
// served on unknown ids.

var defaultPersonas = []Persona{
	{
		ID:          "digitally-naive",
		Name:        "Digitally Naïve",
		Description: "Limited understanding of cards, apps, OTPs. Relies on others.",
		BehavioralTraits: []string{
			"Limited understanding of cards, apps, OTPs",
			"Relies on others to manage finances",
			"Reads numbers slowly or incorrectly",
		},
		TypicalResponses: []string{
			"My son handles this.",
			"I don't understand these messages.",
		},
	},
	{
		ID:          "trust-first",
		Name:        "Trust-First",
		Description: "High trust in institutions and authority. Obedient.",
		BehavioralTraits: []string{
			"High trust in institutions",
			"Hesitates to question officials",
			"Obedient to procedural language",
		},
		TypicalResponses: []string{
			"If bank is saying, it must be correct.",
		},
	},
	{
		ID:          "urgency-driven",
		Name:        "Urgency-Driven",
		Description: "Strong fear of loss. Acts quickly under pressure.",
		BehavioralTraits: []string{
			"Strong fear of loss (card block, penalties)",
			"Acts quickly under time pressure",
			"Reduced verification behavior",
		},
		TypicalResponses: []string{
			"Please don't block my card, I'll do it now.",
		},
	},
	{
		ID:          "reward-motivated",
		Name:        "Reward-Motivated",
		Description: "High attraction to free benefits and low skepticism.",
		BehavioralTraits: []string{
			"High attraction to 'free' benefits",
			"Low skepticism toward bonuses or refunds",
			"Anchors on gain rather than risk",
		},
		TypicalResponses: []string{
			"Oh, cashback is good, tell me more.",
		},
	},
	{
		ID:          "polite",
		Name:        "Polite / Courteous",
		Description: "Avoids saying no. Stays on call to be courteous.",
		BehavioralTraits: []string{
			"Avoids saying 'no'",
			"Stays on call to be courteous",
			"Discomfort with abrupt hang-ups",
		},
		TypicalResponses: []string{
			"Okay... if you say so.",
		},
	},
	{
		ID:          "overconfident",
		Name:        "Overconfident",
		Description: "Knows some rules, overestimates awareness.",
		BehavioralTraits: []string{
			"Knows some rules, not all",
			"Overestimates own fraud awareness",
			"Misses subtle manipulation",
		},
		TypicalResponses: []string{
			"I know scams, but this sounds official.",
		},
	},
	{
		ID:          "multitasking",
		Name:        "Multitasking",
		Description: "Distracted, stressed, short-term memory gaps.",
		BehavioralTraits: []string{
			"On call while driving, working, or stressed",
			"Reduced cognitive load for verification",
			"Short-term memory gaps",
		},
		TypicalResponses: []string{
			"Yes yes, just tell me quickly.",
		},
	},
	{
		ID:          "financially-stressed",
		Name:        "Financially Stressed",
		Description: "Sensitive to refunds, seeks immediate relief.",
		BehavioralTraits: []string{
			"Sensitive to refunds, reversals, rewards",
			"High emotional load",
			"Seeks immediate relief",
		},
		TypicalResponses: []string{
			"Will this help reduce my bill?",
		},
	},
	{
		ID:          "scam-aware-curious",
		Name:        "Scam-Aware but Curious",
		Description: "Suspects fraud but wants to see where it goes.",
		BehavioralTraits: []string{
			"Suspects fraud but continues",
			"Wants to 'see where it goes'",
			"Delays disengagement",
		},
		TypicalResponses: []string{
			"Just explain once, then I'll decide.",
		},
	},
	{
		ID:          "fully-compliant",
		Name:        "Fully Compliant",
		Description: "Follows instructions sequentially. No verification.",
		BehavioralTraits: []string{
			"Follows instructions sequentially",
			"No independent verification",
			"High procedural trust",
		},
		TypicalResponses: []string{
			"Okay, next step?",
		},
	},
}

var defaultAttackerPersonas = []AttackerPersona{
	{
		ID:          "bank-official",
		Role:        "Bank verification officer",
		Tactic:      "KYC Scam",
		Description: "Claims the victim's account fails a KYC check and will be frozen unless verified immediately.",
	},
	{
		ID:          "refund-agent",
		Role:        "Customer-care refund agent",
		Tactic:      "Online Shopping Fraud",
		Description: "Offers a refund for a failed transaction, then walks the victim through a 'reverse' payment.",
	},
	{
		ID:          "police-officer",
		Role:        "Cyber-cell police officer",
		Tactic:      "Digital Arrest",
		Description: "Threatens immediate arrest over a fabricated case unless a settlement is paid on call.",
	},
	{
		ID:          "lottery-notifier",
		Role:        "Prize disbursement executive",
		Tactic:      "Lottery Fraud",
		Description: "Announces a large prize and collects processing fees and account details to 'release' it.",
	},
	{
		ID:          "job-recruiter",
		Role:        "Work-from-home recruiter",
		Tactic:      "Online Job Scam",
		Description: "Promises easy high-paying tasks, then demands a registration deposit.",
	},
}
