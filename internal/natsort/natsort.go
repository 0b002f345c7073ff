// Package natsort orders part names the way people expect to read them:
// integers by magnitude, English ordinal words by rank and everything else
// alphabetically without regard to case.
//
// Every name is first classified into a Key (see Classify). Two names of the
// same kind are compared inside that kind's domain; names of different kinds
// are ordered by the comparator's MixedOrder.
package natsort

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
)

// MixedOrder decides how two names of different kinds compare.
type MixedOrder int

const (
	// MixedByKind places integers before ordinals before strings.
	// Combined with the per-kind orders this is a strict total order.
	MixedByKind MixedOrder = iota
	// MixedLexical compares names of different kinds as raw bytes. Within a
	// kind the domain order still applies, so the order is not transitive:
	// for {9, 10, 1a} it gives 9 < 10 (integers), 10 < 1a and 1a < 9 (bytes),
	// and sorting such a set depends on the input order.
	MixedLexical
)

// String returns the config name of the order.
func (m MixedOrder) String() string {
	switch m {
	case MixedByKind:
		return "kind"
	case MixedLexical:
		return "lexical"
	default:
		return fmt.Sprintf("MixedOrder(%d)", int(m))
	}
}

// ParseMixedOrder resolves a config name ("kind" or "lexical").
func ParseMixedOrder(s string) (MixedOrder, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "kind":
		return MixedByKind, nil
	case "lexical":
		return MixedLexical, nil
	default:
		return MixedByKind, fmt.Errorf("unknown mixed order %q (want kind or lexical)", s)
	}
}

// Comparator compares part names. A Comparator is immutable after New and
// safe for concurrent use.
type Comparator struct {
	vocab map[string]int
	mixed MixedOrder
}

// Option configures a Comparator.
type Option func(*Comparator)

// WithOrdinals adds words to the ordinal vocabulary. Existing words are
// re-ranked. Words are matched case-insensitively; ranks below 1 are ignored.
func WithOrdinals(words map[string]int) Option {
	return func(c *Comparator) {
		for w, r := range words {
			if r < 1 {
				continue
			}
			if k := vocabKey(w); k != "" {
				c.vocab[k] = r
			}
		}
	}
}

// WithMixedOrder sets the cross-kind order.
func WithMixedOrder(m MixedOrder) Option {
	return func(c *Comparator) {
		c.mixed = m
	}
}

// New creates a Comparator with the English ordinal vocabulary.
func New(opts ...Option) *Comparator {
	c := &Comparator{
		vocab: EnglishOrdinals(),
		mixed: MixedByKind,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Default is the comparator used by the package-level functions.
var Default = New()

// Classify returns the key of name under the comparator's vocabulary.
func (c *Comparator) Classify(name string) Key {
	return classify(name, c.vocab)
}

// Compare returns -1 if a sorts before b, +1 if after and 0 only when a and b
// are the same string.
func (c *Comparator) Compare(a, b string) int {
	if a == b {
		return 0
	}
	return c.CompareKeys(c.Classify(a), c.Classify(b))
}

// CompareKeys compares two classified names.
func (c *Comparator) CompareKeys(a, b Key) int {
	if a.Kind != b.Kind {
		if c.mixed == MixedLexical {
			return strings.Compare(a.Raw, b.Raw)
		}
		return cmp.Compare(int(a.Kind), int(b.Kind))
	}

	var n int
	switch a.Kind {
	case KindInteger:
		n = compareDigits(a.Digits, b.Digits)
	case KindOrdinal:
		n = cmp.Compare(a.Rank, b.Rank)
	default:
		n = strings.Compare(a.Fold, b.Fold)
	}
	if n != 0 {
		return n
	}
	return strings.Compare(a.Raw, b.Raw)
}

// Sort sorts names in place.
func (c *Comparator) Sort(names []string) {
	keys := make(map[string]Key, len(names))
	for _, n := range names {
		if _, ok := keys[n]; !ok {
			keys[n] = c.Classify(n)
		}
	}
	slices.SortStableFunc(names, func(a, b string) int {
		if a == b {
			return 0
		}
		return c.CompareKeys(keys[a], keys[b])
	})
}

// Sorted returns a sorted copy of names.
func (c *Comparator) Sorted(names []string) []string {
	out := slices.Clone(names)
	c.Sort(out)
	return out
}

// Classify classifies name with the default comparator.
func Classify(name string) Key { return Default.Classify(name) }

// Compare compares a and b with the default comparator.
func Compare(a, b string) int { return Default.Compare(a, b) }

// Sort sorts names in place with the default comparator.
func Sort(names []string) { Default.Sort(names) }

// compareDigits compares two digit strings without leading zeros by magnitude.
func compareDigits(a, b string) int {
	if len(a) != len(b) {
		return cmp.Compare(len(a), len(b))
	}
	return strings.Compare(a, b)
}
