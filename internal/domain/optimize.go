package domain

import "strings"

// Style is the tone directive passed to the generation backend. It is a
// best-effort hint, never enforced structurally.
type Style string

const (
	StyleSafe     Style = "safe"
	StyleBold     Style = "bold"
	StyleCreative Style = "creative"
)

// ParseStyle maps arbitrary input to a known style, defaulting to safe.
func ParseStyle(s string) Style {
	switch Style(strings.ToLower(strings.TrimSpace(s))) {
	case StyleBold:
		return StyleBold
	case StyleCreative:
		return StyleCreative
	default:
		return StyleSafe
	}
}

// Constraint is the character budget attached to one fragment by position.
type Constraint struct {
	MaxChars int `json:"max_chars"`
}

// Fragment is one editable unit of resume text (a bullet or paragraph).
// Index records source order; identity for patching is by exact text.
type Fragment struct {
	Text  string `json:"text"`
	Index int    `json:"index"`
}

// Replacement is one (original, replacement) pair for document patching.
type Replacement struct {
	Original    string `json:"original"`
	Replacement string `json:"replacement"`
}

// ReplacementMap is an ordered sequence of replacement pairs. Duplicate
// originals are legal; pairs are consumed in map order against runs in
// document order.
type ReplacementMap []Replacement

// NewReplacementMap pairs originals with their replacements positionally,
// dropping pairs where nothing changed.
func NewReplacementMap(originals, replacements []string) ReplacementMap {
	n := len(originals)
	if len(replacements) < n {
		n = len(replacements)
	}
	out := make(ReplacementMap, 0, n)
	for i := 0; i < n; i++ {
		if originals[i] == replacements[i] {
			continue
		}
		out = append(out, Replacement{Original: originals[i], Replacement: replacements[i]})
	}
	return out
}

// DedupeKeywords returns keywords with duplicates (case-insensitive) and
// blanks removed, preserving first-seen order.
func DedupeKeywords(keywords []string) []string {
	seen := map[string]bool{}
	out := make([]string, 0, len(keywords))
	for _, kw := range keywords {
		kw = strings.TrimSpace(kw)
		if kw == "" {
			continue
		}
		key := strings.ToLower(kw)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, kw)
	}
	return out
}
