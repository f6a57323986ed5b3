package document

import (
	"strings"

	"github.com/Rroopesh55/ResuForge/internal/domain"
)

// MatchPolicy decides when a replacement pair matches a run.
type MatchPolicy int

const (
	// MatchContains replaces substring occurrences inside a run. This is
	// the default and mirrors how bullets usually sit inside larger runs,
	// at the cost of possible over-matching on very short originals.
	MatchContains MatchPolicy = iota
	// MatchExact only replaces runs whose whole text equals the original.
	MatchExact
)

// Patcher applies a ReplacementMap onto a document. Stateless; one instance
// may be shared across requests, but Apply must not be called concurrently
// on the same document instance.
type Patcher struct {
	Policy MatchPolicy
}

func NewPatcher() *Patcher { return &Patcher{Policy: MatchContains} }

func (mp MatchPolicy) matches(runText, original string) bool {
	if original == "" {
		return false
	}
	if mp == MatchExact {
		return runText == original
	}
	return strings.Contains(runText, original)
}

// Apply walks runs in document order and pairs in map order. Each pair is
// consumed by its first matching run; within that run every occurrence of
// the original is replaced. Unmatched pairs are skipped, never fatal. The
// input document is left untouched; the patched copy is returned.
//
// A fragment split across two runs by a mid-run formatting change will not
// be found. That limitation is part of the contract, not something to paper
// over with merge heuristics.
func (pt *Patcher) Apply(doc *Document, replacements domain.ReplacementMap) *Document {
	out := doc.Clone()
	if len(replacements) == 0 {
		return out
	}

	consumed := make([]bool, len(replacements))
	for pi := range out.Paragraphs {
		for ri := range out.Paragraphs[pi].Runs {
			run := &out.Paragraphs[pi].Runs[ri]
			// all pairs match against the run's pre-patch text, so one
			// pair's replacement can never satisfy a later pair and Apply
			// agrees with FindUnmatched. Duplicate originals take one pair
			// per run; the next duplicate waits for the next matching run.
			orig := run.Text
			taken := map[string]bool{}
			for i, rep := range replacements {
				if consumed[i] || taken[rep.Original] {
					continue
				}
				if !pt.Policy.matches(orig, rep.Original) {
					continue
				}
				if pt.Policy == MatchExact {
					run.Text = rep.Replacement
				} else {
					run.Text = strings.ReplaceAll(run.Text, rep.Original, rep.Replacement)
				}
				consumed[i] = true
				taken[rep.Original] = true
			}
		}
	}
	return out
}

// FindUnmatched reports the original texts that no run would match under
// the patcher's policy, for diagnostics/logging.
func (pt *Patcher) FindUnmatched(doc *Document, replacements domain.ReplacementMap) []string {
	unmatched := []string{}
	for _, rep := range replacements {
		found := false
		for _, p := range doc.Paragraphs {
			for _, r := range p.Runs {
				if pt.Policy.matches(r.Text, rep.Original) {
					found = true
					break
				}
			}
			if found {
				break
			}
		}
		if !found {
			unmatched = append(unmatched, rep.Original)
		}
	}
	return unmatched
}
