// Package usecase implements the constrained rewrite-and-validate core:
// budget derivation, length validation and the batch rewrite orchestration.
package usecase

import (
	"unicode/utf8"

	"github.com/Rroopesh55/ResuForge/internal/domain"
)

const (
	// BufferChars is the additive headroom a rewrite may use beyond the
	// original fragment's length.
	BufferChars = 20
	// FloorChars keeps budgets usable even for very short originals such
	// as section headers.
	FloorChars = 140

	// DefaultMaxChars is applied when a fragment arrives without its own
	// constraint.
	DefaultMaxChars = 200
)

// BuildConstraints derives one character budget per fragment:
// max(chars(fragment)+BufferChars, FloorChars). Budgets count Unicode
// characters, matching the validator. Pure and total.
func BuildConstraints(fragments []string) []domain.Constraint {
	out := make([]domain.Constraint, len(fragments))
	for i, f := range fragments {
		max := utf8.RuneCountInString(f) + BufferChars
		if max < FloorChars {
			max = FloorChars
		}
		out[i] = domain.Constraint{MaxChars: max}
	}
	return out
}
