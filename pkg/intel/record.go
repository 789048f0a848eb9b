// Package intel defines the canonical intelligence record extracted from
// scam conversations, the deterministic entity extractor that populates it,
// and the merge algorithm that reconciles classifier-reported intelligence
// with extractor output.
package intel

import (
	"encoding/json"
	"sort"
)

// Category identifies one class of extracted intelligence.
type Category string

const (
	CategoryUPI         Category = "upi_ids"
	CategoryURL         Category = "urls"
	CategoryBankAccount Category = "bank_accounts"
	CategoryIFSC        Category = "ifsc_codes"
	CategoryPhone       Category = "phone_numbers"
	CategoryKeyword     Category = "keywords"
)

// Categories returns the canonical category set in its fixed order.
// Every Record carries all of these keys, populated or not, so downstream
// consumers can rely on a stable schema.
func Categories() []Category {
	return []Category{
		CategoryUPI,
		CategoryURL,
		CategoryBankAccount,
		CategoryIFSC,
		CategoryPhone,
		CategoryKeyword,
	}
}

// Record maps intelligence categories to deduplicated value sets.
// Values are case-sensitive exact strings; insertion order is preserved
// for reproducible output. Use NewRecord so all canonical categories are
// present as empty (never nil) slices.
type Record map[Category][]string

// NewRecord returns a Record with every canonical category initialized
// to an empty set.
func NewRecord() Record {
	r := make(Record, len(Categories()))
	for _, cat := range Categories() {
		r[cat] = []string{}
	}
	return r
}

// Add appends values to a category, skipping empty strings and values
// already present in that category.
func (r Record) Add(cat Category, values ...string) {
	set := r[cat]
	if set == nil {
		set = []string{}
	}
	for _, v := range values {
		if v == "" || contains(set, v) {
			continue
		}
		set = append(set, v)
	}
	r[cat] = set
}

// Has reports whether the category already contains the exact value.
func (r Record) Has(cat Category, value string) bool {
	return contains(r[cat], value)
}

// Total returns the number of values across all categories.
func (r Record) Total() int {
	n := 0
	for _, set := range r {
		n += len(set)
	}
	return n
}

// IsEmpty reports whether no category holds any value.
func (r Record) IsEmpty() bool {
	return r.Total() == 0
}

// Clone returns a deep copy of the record.
func (r Record) Clone() Record {
	out := make(Record, len(r))
	for cat, set := range r {
		cp := make([]string, len(set))
		copy(cp, set)
		out[cat] = cp
	}
	return out
}

// Merge reconciles the classifier-reported record with the extractor's
// record. For every category present in either input the output set is
// the union of both, reported values first, extractor values appended
// after, exact-string duplicates suppressed. The output always contains
// every canonical category, plus any non-canonical categories either
// input carried.
func Merge(reported, extracted Record) Record {
	out := NewRecord()
	for _, cat := range mergedCategories(reported, extracted) {
		out.Add(cat, reported[cat]...)
		out.Add(cat, extracted[cat]...)
	}
	return out
}

// mergedCategories returns the canonical categories followed by any extra
// categories from either input, extras sorted for determinism.
func mergedCategories(a, b Record) []Category {
	canonical := Categories()
	known := make(map[Category]bool, len(canonical))
	for _, cat := range canonical {
		known[cat] = true
	}

	var extras []Category
	for _, rec := range []Record{a, b} {
		for cat := range rec {
			if !known[cat] {
				known[cat] = true
				extras = append(extras, cat)
			}
		}
	}
	sort.Slice(extras, func(i, j int) bool { return extras[i] < extras[j] })

	return append(canonical, extras...)
}

// UnmarshalJSON accepts a loosely-shaped category map (as reported by the
// classifier) and normalizes it: missing categories become empty sets,
// null arrays become empty sets, duplicates are dropped.
func (r *Record) UnmarshalJSON(data []byte) error {
	var raw map[Category][]string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	out := NewRecord()
	for cat, values := range raw {
		out.Add(cat, values...)
	}
	*r = out
	return nil
}

func contains(set []string, value string) bool {
	for _, v := range set {
		if v == value {
			return true
		}
	}
	return false
}
