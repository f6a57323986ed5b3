package usecase

import (
	"unicode/utf8"

	"github.com/Rroopesh55/ResuForge/internal/domain"
)

// Validator is the correctness oracle for layout safety. The contract is
// abstracted so a width-aware implementation can replace the character
// counter without touching the rewrite orchestration.
type Validator interface {
	Valid(candidate string, c domain.Constraint) bool
}

// CharCountValidator accepts any candidate whose character count is within
// the budget, bound inclusive. Budgets are Unicode characters, not bytes,
// so accented text is not over-counted. A deliberate approximation: no
// font-metrics subsystem exists.
type CharCountValidator struct{}

func (CharCountValidator) Valid(candidate string, c domain.Constraint) bool {
	return utf8.RuneCountInString(candidate) <= c.MaxChars
}

// ValidateEdit checks a single ad hoc edit and reports by how many
// characters it overflows (0 when valid).
func ValidateEdit(newText string, maxChars int) (bool, int) {
	n := utf8.RuneCountInString(newText)
	diff := n - maxChars
	if diff < 0 {
		diff = 0
	}
	return n <= maxChars, diff
}
