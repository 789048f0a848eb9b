package intel

import (
	"regexp"
	"strings"
	"sync"

	"golang.org/x/text/unicode/norm"
)

// =============================================================================
// DETERMINISTIC ENTITY EXTRACTOR
// All patterns are compiled once at first use and shared across calls.
// Extraction is side-effect-free and idempotent: the same text always
// yields the same sets, and matches are non-exclusive (one substring may
// satisfy several categories).
// =============================================================================

// pattern holds a compiled regex with its target category.
// If the regex contains a capture group, group 1 is the extracted value;
// otherwise the full match is used. The group form exists for patterns
// that need a context guard RE2 cannot express with lookarounds.
type pattern struct {
	name     string
	regex    *regexp.Regexp
	category Category
}

// DefaultPhonePattern matches Indian mobile numbers: an optional country
// or trunk prefix followed by ten digits starting 6-9. The leading
// non-digit guard keeps it from firing inside longer digit runs such as
// account numbers.
const DefaultPhonePattern = `(?:^|[^0-9])((?:\+?91[\-\s]?|0)?[6-9][0-9]{9})(?:[^0-9]|$)`

// DefaultScamKeywords are the free-text triggers scanned into the
// keywords category. Matching is case-insensitive substring.
var DefaultScamKeywords = []string{
	"urgent", "refund", "verify", "kyc", "upi", "account blocked",
	"lottery", "prize", "click link", "limited time", "otp",
}

// ExtractorConfig tunes the locale-specific parts of the extractor.
type ExtractorConfig struct {
	// PhonePattern overrides the mobile-number regex. Must either match
	// the number directly or capture it in group 1.
	PhonePattern string

	// Keywords overrides the free-text keyword list.
	Keywords []string
}

// Extractor scans raw text for structured scam intelligence.
type Extractor struct {
	patterns []*pattern
	keywords []string
}

var (
	defaultExtractor *Extractor
	defaultOnce      sync.Once
)

// Default returns the shared extractor with default locale settings.
func Default() *Extractor {
	defaultOnce.Do(func() {
		defaultExtractor = NewExtractor(ExtractorConfig{})
	})
	return defaultExtractor
}

// NewExtractor compiles the category patterns. Panics on an invalid
// override pattern; configuration errors should surface at startup, not
// per message.
func NewExtractor(cfg ExtractorConfig) *Extractor {
	phone := cfg.PhonePattern
	if phone == "" {
		phone = DefaultPhonePattern
	}
	keywords := cfg.Keywords
	if keywords == nil {
		keywords = DefaultScamKeywords
	}

	e := &Extractor{keywords: keywords}
	e.register("upi_id", `\b[\w.-]+@[\w.-]+\b`, CategoryUPI)
	e.register("url", `https?://[^\s]+`, CategoryURL)
	e.register("bank_account", `\b[0-9]{9,18}\b`, CategoryBankAccount)
	e.register("ifsc_code", `\b[A-Z]{4}0[A-Z0-9]{6}\b`, CategoryIFSC)
	e.register("phone_number", phone, CategoryPhone)
	return e
}

func (e *Extractor) register(name, expr string, cat Category) {
	e.patterns = append(e.patterns, &pattern{
		name:     name,
		regex:    regexp.MustCompile(expr),
		category: cat,
	})
}

// Extract scans text and returns a Record with every canonical category
// present; categories with no matches hold empty sets. Input is NFKC
// normalized first so fullwidth digits and compatibility forms cannot
// hide identifiers from the patterns.
func (e *Extractor) Extract(text string) Record {
	out := NewRecord()
	if text == "" {
		return out
	}
	text = norm.NFKC.String(text)

	for _, p := range e.patterns {
		if p.regex.NumSubexp() > 0 {
			extractGroup(text, p.regex, func(v string) { out.Add(p.category, v) })
		} else {
			out.Add(p.category, p.regex.FindAllString(text, -1)...)
		}
	}

	lower := strings.ToLower(text)
	for _, kw := range e.keywords {
		if strings.Contains(lower, kw) {
			out.Add(CategoryKeyword, kw)
		}
	}

	return out
}

// extractGroup scans text for every capture-group match, resuming each
// scan at the end of group 1 rather than the end of the whole match.
// The trailing context guard otherwise consumes the separator, and
// non-overlapping matching would then skip a value that directly
// follows it.
func extractGroup(text string, re *regexp.Regexp, emit func(string)) {
	for offset := 0; offset < len(text); {
		loc := re.FindStringSubmatchIndex(text[offset:])
		if loc == nil {
			return
		}
		next := offset + loc[1]
		if loc[2] >= 0 {
			emit(text[offset+loc[2] : offset+loc[3]])
			next = offset + loc[3]
		}
		if next <= offset {
			next = offset + 1
		}
		offset = next
	}
}
