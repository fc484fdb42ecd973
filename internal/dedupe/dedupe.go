// Package dedupe merges near-duplicate bill items that arise when the
// model re-reads the same billed entry across pages or repeated calls.
package dedupe

import (
	"math"
	"strings"

	"github.com/pmezard/go-difflib/difflib"

	"billex/internal/domain"
)

// Default policy knobs. Two items are duplicates iff their names are at
// least NameThreshold similar AND their amounts differ by at most
// AmountTolerance.
const (
	DefaultNameThreshold   = 0.92
	DefaultAmountTolerance = 1.0
)

// Config holds the fuzzy-equality policy for item deduplication.
type Config struct {
	NameThreshold   float64
	AmountTolerance float64
}

// DefaultConfig returns the default deduplication policy.
func DefaultConfig() Config {
	return Config{
		NameThreshold:   DefaultNameThreshold,
		AmountTolerance: DefaultAmountTolerance,
	}
}

// Items performs a greedy order-preserving merge: items are processed in
// input order and each candidate is compared against every already-accepted
// item; the first occurrence wins. The result can depend on input order when
// a similarity lands near the threshold, which is accepted as part of the
// contract (input order is page order, then within-page order).
func Items(items []domain.BillItem, cfg Config) []domain.BillItem {
	unique := make([]domain.BillItem, 0, len(items))
	for _, it := range items {
		duplicate := false
		for _, u := range unique {
			if Similarity(it.ItemName, u.ItemName) >= cfg.NameThreshold &&
				math.Abs(it.ItemAmount-u.ItemAmount) <= cfg.AmountTolerance {
				duplicate = true
				break
			}
		}
		if !duplicate {
			unique = append(unique, it)
		}
	}
	return unique
}

// Similarity returns the case-insensitive sequence-match ratio between two
// names: twice the number of characters in the longest common matching-block
// alignment, divided by the combined length of both strings.
func Similarity(a, b string) float64 {
	sm := difflib.NewMatcher(splitChars(strings.ToLower(a)), splitChars(strings.ToLower(b)))
	return sm.Ratio()
}

// splitChars splits a string into per-rune elements so the line-oriented
// SequenceMatcher compares at character granularity.
func splitChars(s string) []string {
	return strings.Split(s, "")
}
