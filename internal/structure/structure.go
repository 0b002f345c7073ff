// Package structure builds and writes the ordered manifest of a compound's
// parts.
package structure

import (
	"github.com/leapstack-labs/structgen/internal/natsort"
	"github.com/leapstack-labs/structgen/internal/scan"
)

// Record is one part at its position in the structure.
type Record struct {
	// Position is 1-based.
	Position int `json:"position" yaml:"position"`
	// Part is the part's directory name, unmodified.
	Part string `json:"part" yaml:"part"`
	// Content is the reference downstream tooling resolves: "<compound>/<part>".
	Content string `json:"content" yaml:"content"`
}

// Structure is the ordered list of a compound's parts.
type Structure struct {
	Compound string   `json:"compound" yaml:"compound"`
	Records  []Record `json:"children" yaml:"children"`
}

// Build sorts the compound's parts with sorter and numbers them from 1.
// A nil sorter means natsort.Default. The compound is not modified.
func Build(c scan.Compound, sorter *natsort.Comparator) Structure {
	if sorter == nil {
		sorter = natsort.Default
	}

	parts := sorter.Sorted(c.Parts)
	records := make([]Record, 0, len(parts))
	for i, p := range parts {
		records = append(records, Record{
			Position: i + 1,
			Part:     p,
			Content:  ContentRef(c.Name, p),
		})
	}
	return Structure{Compound: c.Name, Records: records}
}

// ContentRef joins a compound and part name into a content reference.
// Names are used verbatim so the reference always matches the directory.
func ContentRef(compound, part string) string {
	return compound + "/" + part
}

// Parts returns the part names in record order.
func (s Structure) Parts() []string {
	out := make([]string, len(s.Records))
	for i, r := range s.Records {
		out[i] = r.Part
	}
	return out
}
