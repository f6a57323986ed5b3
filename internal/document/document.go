// Package document holds the structured in-memory resume representation and
// the patching logic that rewrites run text while preserving presentation
// attributes.
package document

import (
	"strings"
	"unicode"
)

// Run is the smallest span of text sharing one uniform set of presentation
// attributes. The patcher only ever touches Text.
type Run struct {
	Text   string  `json:"text"`
	Font   string  `json:"font,omitempty"`
	Size   float64 `json:"size,omitempty"`
	Bold   bool    `json:"bold,omitempty"`
	Italic bool    `json:"italic,omitempty"`
	Color  string  `json:"color,omitempty"`
}

// Paragraph is an ordered group of runs; its visible text is the
// concatenation of run texts.
type Paragraph struct {
	Style string `json:"style,omitempty"`
	Runs  []Run  `json:"runs"`
}

// Text returns the paragraph's visible text.
func (p Paragraph) Text() string {
	var b strings.Builder
	for _, r := range p.Runs {
		b.WriteString(r.Text)
	}
	return b.String()
}

// Document is the structured resume supplied by the store collaborator.
type Document struct {
	Title      string      `json:"title,omitempty"`
	Paragraphs []Paragraph `json:"paragraphs"`
}

// Clone returns a deep copy so patching never mutates the caller's document.
func (d *Document) Clone() *Document {
	out := &Document{Title: d.Title, Paragraphs: make([]Paragraph, len(d.Paragraphs))}
	for i, p := range d.Paragraphs {
		cp := Paragraph{Style: p.Style, Runs: make([]Run, len(p.Runs))}
		copy(cp.Runs, p.Runs)
		out.Paragraphs[i] = cp
	}
	return out
}

// Fragments extracts the editable text units in source order: one entry per
// non-blank paragraph, cleaned of control characters.
func Fragments(d *Document) []string {
	out := []string{}
	for _, p := range d.Paragraphs {
		if t := CleanText(p.Text()); t != "" {
			out = append(out, t)
		}
	}
	return out
}

// FullText joins all non-blank paragraph texts with newlines.
func FullText(d *Document) string {
	return strings.Join(Fragments(d), "\n")
}

// CleanText strips control characters and collapses runs of whitespace so
// international resumes survive round-tripping.
func CleanText(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if unicode.IsControl(r) && r != '\n' && r != '\t' {
			continue
		}
		b.WriteRune(r)
	}
	return strings.TrimSpace(strings.Join(strings.Fields(b.String()), " "))
}
