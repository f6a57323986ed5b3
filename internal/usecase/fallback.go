package usecase

import (
	"sort"
	"strings"

	"github.com/Rroopesh55/ResuForge/internal/domain"
)

// FallbackStrategy produces the text used for a fragment when generation
// fails or never runs. Whatever it returns must fit the constraint; the
// rewriter does not re-validate fallback output.
type FallbackStrategy interface {
	Rewrite(bullet string, keywords []string, c domain.Constraint) string
}

// KeepOriginal is the default policy: a fragment that cannot be improved is
// returned untouched.
type KeepOriginal struct{}

func (KeepOriginal) Rewrite(bullet string, _ []string, _ domain.Constraint) string {
	return bullet
}

// KeywordInject is an opt-in enhancement that still gets keywords into a
// bullet when the backend is unavailable. It cascades: template-based
// injection, then a plain parenthesized append, then the original.
type KeywordInject struct{}

func (KeywordInject) Rewrite(bullet string, keywords []string, c domain.Constraint) string {
	selected := selectKeywords(keywords, bullet, 3)
	if out := templateInject(bullet, selected, c.MaxChars); out != bullet {
		return out
	}
	if out := keywordAppend(bullet, selectKeywords(keywords, bullet, 2), c.MaxChars); out != bullet {
		return out
	}
	return bullet
}

// selectKeywords prioritizes keywords not already present in the bullet,
// shortest first so more of them fit.
func selectKeywords(keywords []string, bullet string, maxCount int) []string {
	lower := strings.ToLower(bullet)
	fresh := []string{}
	for _, kw := range keywords {
		if kw == "" || strings.Contains(lower, strings.ToLower(kw)) {
			continue
		}
		fresh = append(fresh, kw)
	}
	if len(fresh) == 0 {
		if len(keywords) > maxCount {
			return keywords[:maxCount]
		}
		return keywords
	}
	sort.SliceStable(fresh, func(i, j int) bool { return len(fresh[i]) < len(fresh[j]) })
	if len(fresh) > maxCount {
		fresh = fresh[:maxCount]
	}
	return fresh
}

// templateInject appends "using kw1, kw2" after the bullet body, keeping
// only the keywords that fit the budget.
func templateInject(bullet string, keywords []string, maxChars int) string {
	if strings.TrimSpace(bullet) == "" || len(keywords) == 0 {
		return bullet
	}

	fitting := []string{}
	length := len(bullet)
	for _, kw := range keywords {
		// "using X, " costs the keyword plus separators
		if length+len(kw)+8 < maxChars {
			fitting = append(fitting, kw)
			length += len(kw) + 8
		}
	}
	if len(fitting) == 0 {
		return bullet
	}

	words := strings.Fields(bullet)
	var enhanced string
	if len(words) > 1 {
		enhanced = words[0] + " " + strings.Join(words[1:], " ") + " using " + strings.Join(fitting, ", ")
	} else {
		enhanced = bullet + " with " + strings.Join(fitting, ", ")
	}
	return truncateAtWord(enhanced, maxChars)
}

// keywordAppend tacks keywords onto the end in parentheses.
func keywordAppend(bullet string, keywords []string, maxChars int) string {
	if strings.TrimSpace(bullet) == "" || len(keywords) == 0 {
		return bullet
	}

	clean := strings.TrimSpace(strings.TrimRight(bullet, "."))
	fitting := []string{}
	length := len(clean)
	for _, kw := range keywords {
		if length+len(kw)+3 < maxChars-1 {
			fitting = append(fitting, kw)
			length += len(kw) + 3
		}
	}
	if len(fitting) == 0 {
		return bullet
	}
	out := clean + " (" + strings.Join(fitting, ", ") + ")."
	if len(out) > maxChars {
		return bullet
	}
	return out
}

func truncateAtWord(s string, maxChars int) string {
	if len(s) <= maxChars {
		return s
	}
	cut := s[:maxChars]
	if idx := strings.LastIndex(cut, " "); idx > 0 {
		cut = cut[:idx]
	}
	return cut
}
