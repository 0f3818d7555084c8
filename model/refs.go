package model

import (
	"strings"

	"golang.org/x/text/cases"
)

// RefDef is a reference-style link definition: a destination URL and an
// optional title.
type RefDef struct {
	URL   string
	Title string
}

// RefMap maps reference labels to link definitions. Labels match
// case-insensitively (Unicode case fold) with internal whitespace collapsed,
// following the usual Markdown label-matching rules.
//
// A RefMap is built once per document before the build phase and treated as
// immutable afterward.
type RefMap struct {
	defs map[string]RefDef
}

// NewRefMap creates an empty reference map.
func NewRefMap() *RefMap {
	return &RefMap{defs: make(map[string]RefDef)}
}

// NormalizeLabel returns the canonical matching form of a reference label:
// surrounding whitespace trimmed, internal runs of whitespace collapsed to a
// single space, and Unicode case folding applied.
func NormalizeLabel(label string) string {
	collapsed := strings.Join(strings.Fields(label), " ")
	return cases.Fold().String(collapsed)
}

// Define records a definition for label. The first definition for a given
// normalized label wins; later duplicates are ignored.
func (m *RefMap) Define(label, url, title string) {
	key := NormalizeLabel(label)
	if key == "" {
		return
	}
	if _, exists := m.defs[key]; exists {
		return
	}
	m.defs[key] = RefDef{URL: url, Title: title}
}

// Lookup returns the definition for label, matching case-insensitively.
func (m *RefMap) Lookup(label string) (RefDef, bool) {
	def, ok := m.defs[NormalizeLabel(label)]
	return def, ok
}

// Len returns the number of definitions.
func (m *RefMap) Len() int {
	return len(m.defs)
}
