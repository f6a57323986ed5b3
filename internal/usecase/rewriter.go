package usecase

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/Rroopesh55/ResuForge/internal/domain"
)

// Generator is the capability boundary to the text-generation backend. One
// call per fragment per style; the backend is unreliable and latency-bound,
// so implementations must honor ctx.
type Generator interface {
	RewriteBullet(ctx context.Context, bullet string, keywords []string, style domain.Style, maxChars int) (string, error)
}

// Rewriter drives the per-fragment rewrite-and-validate loop. Stateless
// across calls; one instance is constructed at process start and shared by
// request handlers.
type Rewriter struct {
	Gen       Generator
	Validator Validator
	Fallback  FallbackStrategy
	// Workers bounds concurrent backend calls. Fragments are mutually
	// independent, so parallel dispatch is purely a latency optimization.
	Workers int
}

func NewRewriter(gen Generator) *Rewriter {
	return &Rewriter{
		Gen:       gen,
		Validator: CharCountValidator{},
		Fallback:  KeepOriginal{},
		Workers:   4,
	}
}

// RewriteBatch rewrites each fragment independently and returns results in
// input order together with a per-fragment validity flag. A fragment's
// backend failure never aborts its siblings: the fragment falls back and
// the batch continues. validity[i]=false means the candidate overflowed the
// budget and the original was kept.
func (rw *Rewriter) RewriteBatch(ctx context.Context, fragments []string, keywords []string, constraints []domain.Constraint, style domain.Style) ([]string, []bool) {
	results := make([]string, len(fragments))
	validity := make([]bool, len(fragments))
	copy(results, fragments)
	for i := range validity {
		validity[i] = true
	}
	if len(fragments) == 0 {
		return results, validity
	}

	kws := domain.DedupeKeywords(keywords)

	workers := rw.Workers
	if workers < 1 {
		workers = 1
	}
	if workers > len(fragments) {
		workers = len(fragments)
	}

	// collect-by-index: output order matches input order regardless of
	// completion order
	idxCh := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range idxCh {
				results[i], validity[i] = rw.rewriteOne(ctx, fragments[i], kws, rw.constraintFor(constraints, i), style)
			}
		}()
	}

dispatch:
	for i := range fragments {
		select {
		case idxCh <- i:
		case <-ctx.Done():
			// abandoned fragments keep their originals
			break dispatch
		}
	}
	close(idxCh)
	wg.Wait()

	accepted := 0
	for _, v := range validity {
		if v {
			accepted++
		}
	}
	fmt.Printf("rewriter: batch complete %d/%d within budget (style=%s)\n", accepted, len(fragments), style)

	return results, validity
}

func (rw *Rewriter) constraintFor(constraints []domain.Constraint, i int) domain.Constraint {
	if i < len(constraints) && constraints[i].MaxChars > 0 {
		return constraints[i]
	}
	return domain.Constraint{MaxChars: DefaultMaxChars}
}

func (rw *Rewriter) rewriteOne(ctx context.Context, fragment string, keywords []string, c domain.Constraint, style domain.Style) (string, bool) {
	if len(keywords) == 0 || strings.TrimSpace(fragment) == "" {
		return fragment, true
	}

	candidate, err := rw.Gen.RewriteBullet(ctx, fragment, keywords, style, c.MaxChars)
	candidate = strings.TrimSpace(candidate)
	if err != nil || candidate == "" {
		// no usable candidate; recovered locally, never surfaced
		return rw.Fallback.Rewrite(fragment, keywords, c), true
	}

	// never trust the backend to obey the limit
	if rw.Validator.Valid(candidate, c) {
		return candidate, true
	}
	return fragment, false
}
