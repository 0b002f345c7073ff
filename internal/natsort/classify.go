package natsort

import (
	"strings"

	"golang.org/x/text/cases"
)

// Kind is the comparison domain a name falls into.
type Kind int

// Name kinds, declared in their cross-kind order.
const (
	KindInteger Kind = iota
	KindOrdinal
	KindString
)

// String returns the lowercase name of the kind.
func (k Kind) String() string {
	switch k {
	case KindInteger:
		return "integer"
	case KindOrdinal:
		return "ordinal"
	case KindString:
		return "string"
	default:
		return "unknown"
	}
}

// Key is the classified form of a name.
type Key struct {
	Kind Kind
	// Raw is the name exactly as given.
	Raw string
	// Fold is the case-folded name, used for string comparison.
	Fold string
	// Digits holds the digits of an integer with leading zeros removed.
	Digits string
	// Rank is the position of an ordinal word, starting at 1.
	Rank int
}

// classify tags raw with its kind and fills the key for that kind.
func classify(raw string, vocab map[string]int) Key {
	if isDigits(raw) {
		digits := strings.TrimLeft(raw, "0")
		if digits == "" {
			digits = "0"
		}
		return Key{Kind: KindInteger, Raw: raw, Digits: digits}
	}

	fold := cases.Fold().String(raw)
	if rank, ok := vocab[normalizeWord(fold)]; ok {
		return Key{Kind: KindOrdinal, Raw: raw, Fold: fold, Rank: rank}
	}
	return Key{Kind: KindString, Raw: raw, Fold: fold}
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// normalizeWord maps "twenty first" and "twenty_first" onto "twenty-first".
func normalizeWord(s string) string {
	s = strings.TrimSpace(s)
	return strings.Map(func(r rune) rune {
		if r == ' ' || r == '_' {
			return '-'
		}
		return r
	}, s)
}
