package natsort

import (
	"strings"

	"golang.org/x/text/cases"
)

var (
	unitOrdinals = []string{
		"first", "second", "third", "fourth", "fifth",
		"sixth", "seventh", "eighth", "ninth",
	}
	teenOrdinals = []string{
		"tenth", "eleventh", "twelfth", "thirteenth", "fourteenth",
		"fifteenth", "sixteenth", "seventeenth", "eighteenth", "nineteenth",
	}
	// Indexed by tens digit; 0 and 1 are covered by the tables above.
	decadeOrdinals = []string{
		"", "", "twentieth", "thirtieth", "fortieth",
		"fiftieth", "sixtieth", "seventieth", "eightieth", "ninetieth",
	}
	decadeCardinals = []string{
		"", "", "twenty", "thirty", "forty",
		"fifty", "sixty", "seventy", "eighty", "ninety",
	}
)

// englishOrdinals is the built-in vocabulary: first through hundredth,
// with hyphenated compounds such as "twenty-first".
var englishOrdinals = buildEnglishOrdinals()

func buildEnglishOrdinals() map[string]int {
	m := make(map[string]int, 100)
	for i, w := range unitOrdinals {
		m[w] = i + 1
	}
	for i, w := range teenOrdinals {
		m[w] = i + 10
	}
	for tens := 2; tens <= 9; tens++ {
		m[decadeOrdinals[tens]] = tens * 10
		for i, w := range unitOrdinals {
			m[decadeCardinals[tens]+"-"+w] = tens*10 + i + 1
		}
	}
	m["hundredth"] = 100
	return m
}

// EnglishOrdinals returns a copy of the built-in ordinal vocabulary.
func EnglishOrdinals() map[string]int {
	out := make(map[string]int, len(englishOrdinals))
	for w, r := range englishOrdinals {
		out[w] = r
	}
	return out
}

// vocabKey normalizes a vocabulary word the same way names are normalized
// before lookup.
func vocabKey(word string) string {
	return normalizeWord(cases.Fold().String(strings.TrimSpace(word)))
}
