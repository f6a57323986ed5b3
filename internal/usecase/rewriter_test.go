package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/Rroopesh55/ResuForge/internal/domain"
)

// fakeGen routes each bullet through a per-test function.
type fakeGen struct {
	fn    func(bullet string, keywords []string, maxChars int) (string, error)
	calls int
}

func (g *fakeGen) RewriteBullet(_ context.Context, bullet string, keywords []string, _ domain.Style, maxChars int) (string, error) {
	g.calls++
	return g.fn(bullet, keywords, maxChars)
}

func newTestRewriter(fn func(string, []string, int) (string, error)) (*Rewriter, *fakeGen) {
	gen := &fakeGen{fn: fn}
	return NewRewriter(gen), gen
}

func TestRewriteBatchAcceptsCompliantCandidate(t *testing.T) {
	rw, _ := newTestRewriter(func(string, []string, int) (string, error) {
		return "Spearheaded a cross-functional team of 5", nil
	})

	results, validity := rw.RewriteBatch(context.Background(),
		[]string{"Led team of 5"}, []string{"cross-functional"},
		[]domain.Constraint{{MaxChars: 60}}, domain.StyleBold)

	if len(results) != 1 || len(validity) != 1 {
		t.Fatalf("result lengths: %d/%d, want 1/1", len(results), len(validity))
	}
	if !validity[0] {
		t.Error("41-char candidate under a 60-char budget should be valid")
	}
	if results[0] != "Spearheaded a cross-functional team of 5" {
		t.Errorf("result = %q", results[0])
	}
}

func TestRewriteBatchAcceptsMultibyteCandidateInBudget(t *testing.T) {
	// 40 characters but 44 bytes; the budget counts characters
	candidate := "Développé des APIs résilientes en équipe"
	rw, _ := newTestRewriter(func(string, []string, int) (string, error) {
		return candidate, nil
	})

	results, validity := rw.RewriteBatch(context.Background(),
		[]string{"Built APIs"}, []string{"équipe"},
		[]domain.Constraint{{MaxChars: 42}}, domain.StyleSafe)

	if !validity[0] {
		t.Error("40-character candidate under a 42-character budget must be valid")
	}
	if results[0] != candidate {
		t.Errorf("in-budget accented candidate must be kept, got %q", results[0])
	}
}

func TestRewriteBatchRevertsOnOverflow(t *testing.T) {
	rw, _ := newTestRewriter(func(string, []string, int) (string, error) {
		return strings.Repeat("x", 90), nil
	})

	results, validity := rw.RewriteBatch(context.Background(),
		[]string{"Led team of 5"}, []string{"cross-functional"},
		[]domain.Constraint{{MaxChars: 60}}, domain.StyleBold)

	if validity[0] {
		t.Error("90-char candidate over a 60-char budget must be flagged invalid")
	}
	if results[0] != "Led team of 5" {
		t.Errorf("invalid fragment must keep its original, got %q", results[0])
	}
}

func TestRewriteBatchOrderingAndLength(t *testing.T) {
	fragments := []string{
		"Built data pipelines for analytics",
		"Reduced costs by 30 percent",
		"Mentored junior engineers",
		"Shipped the billing rewrite",
		"Cut deploy time in half",
	}
	rw, _ := newTestRewriter(func(bullet string, _ []string, _ int) (string, error) {
		return "improved " + bullet, nil
	})
	rw.Workers = 3

	results, validity := rw.RewriteBatch(context.Background(),
		fragments, []string{"kubernetes"}, BuildConstraints(fragments), domain.StyleSafe)

	if len(results) != len(fragments) || len(validity) != len(fragments) {
		t.Fatalf("output lengths %d/%d, want %d", len(results), len(validity), len(fragments))
	}
	for i, frag := range fragments {
		if results[i] != "improved "+frag {
			t.Errorf("result %d out of order: %q", i, results[i])
		}
	}
}

func TestRewriteBatchFailureIsolation(t *testing.T) {
	fragments := []string{"first bullet text", "second bullet text", "third bullet text"}
	rw, _ := newTestRewriter(func(bullet string, _ []string, _ int) (string, error) {
		if bullet == fragments[1] {
			return "", errors.New("backend unreachable")
		}
		return "optimized " + bullet, nil
	})
	rw.Workers = 1

	results, validity := rw.RewriteBatch(context.Background(),
		fragments, []string{"golang"}, BuildConstraints(fragments), domain.StyleSafe)

	if results[0] != "optimized "+fragments[0] || results[2] != "optimized "+fragments[2] {
		t.Error("siblings of a failed fragment must still get their results")
	}
	if results[1] != fragments[1] {
		t.Errorf("failed fragment must fall back to its original, got %q", results[1])
	}
	if !validity[1] {
		t.Error("generation failure is recovery, not a constraint violation: validity must stay true")
	}
}

func TestRewriteBatchSkipsWithoutKeywords(t *testing.T) {
	rw, gen := newTestRewriter(func(string, []string, int) (string, error) {
		return "should never be called", nil
	})

	fragments := []string{"Led team of 5"}
	results, validity := rw.RewriteBatch(context.Background(),
		fragments, nil, BuildConstraints(fragments), domain.StyleSafe)

	if gen.calls != 0 {
		t.Errorf("no keywords: generator should not be called, got %d calls", gen.calls)
	}
	if results[0] != fragments[0] || !validity[0] {
		t.Errorf("no keywords: original kept and valid, got %q/%v", results[0], validity[0])
	}
}

func TestRewriteBatchSkipsBlankFragments(t *testing.T) {
	rw, gen := newTestRewriter(func(string, []string, int) (string, error) {
		return "nope", nil
	})
	rw.Workers = 1

	fragments := []string{"  ", "real bullet"}
	results, _ := rw.RewriteBatch(context.Background(),
		fragments, []string{"go"}, BuildConstraints(fragments), domain.StyleSafe)

	if results[0] != "  " {
		t.Errorf("blank fragment must pass through untouched, got %q", results[0])
	}
	if gen.calls != 1 {
		t.Errorf("only the real bullet should hit the generator, got %d calls", gen.calls)
	}
}

func TestRewriteBatchEmptyCandidateFallsBack(t *testing.T) {
	rw, _ := newTestRewriter(func(string, []string, int) (string, error) {
		return "   ", nil
	})

	fragments := []string{"Shipped the billing rewrite"}
	results, validity := rw.RewriteBatch(context.Background(),
		fragments, []string{"go"}, BuildConstraints(fragments), domain.StyleSafe)

	if results[0] != fragments[0] || !validity[0] {
		t.Errorf("empty candidate must fall back to original/valid, got %q/%v", results[0], validity[0])
	}
}

func TestRewriteBatchEchoCountsAsAccepted(t *testing.T) {
	rw, _ := newTestRewriter(func(bullet string, _ []string, _ int) (string, error) {
		return bullet, nil
	})

	fragments := []string{"Led team of 5"}
	results, validity := rw.RewriteBatch(context.Background(),
		fragments, []string{"go"}, BuildConstraints(fragments), domain.StyleSafe)

	// the contract measures length, not semantic change
	if !validity[0] || results[0] != fragments[0] {
		t.Errorf("echoed input is accepted: got %q/%v", results[0], validity[0])
	}
}

func TestRewriteBatchExactBudgetIsValid(t *testing.T) {
	candidate := strings.Repeat("y", 60)
	rw, _ := newTestRewriter(func(string, []string, int) (string, error) {
		return candidate, nil
	})

	results, validity := rw.RewriteBatch(context.Background(),
		[]string{"orig"}, []string{"go"}, []domain.Constraint{{MaxChars: 60}}, domain.StyleSafe)

	if !validity[0] || results[0] != candidate {
		t.Errorf("candidate exactly at maxChars is valid, got %q/%v", results[0], validity[0])
	}
}

func TestRewriteBatchMissingConstraintUsesDefault(t *testing.T) {
	var seenMax int
	rw, _ := newTestRewriter(func(_ string, _ []string, maxChars int) (string, error) {
		seenMax = maxChars
		return "ok", nil
	})

	rw.RewriteBatch(context.Background(), []string{"bullet"}, []string{"go"}, nil, domain.StyleSafe)
	if seenMax != DefaultMaxChars {
		t.Errorf("missing constraint should default to %d, got %d", DefaultMaxChars, seenMax)
	}
}

func TestRewriteBatchEmptyInput(t *testing.T) {
	rw, gen := newTestRewriter(func(string, []string, int) (string, error) {
		return "", nil
	})

	results, validity := rw.RewriteBatch(context.Background(), nil, []string{"go"}, nil, domain.StyleSafe)
	if len(results) != 0 || len(validity) != 0 {
		t.Errorf("empty batch should yield empty results, got %d/%d", len(results), len(validity))
	}
	if gen.calls != 0 {
		t.Error("empty batch should not call the generator")
	}
}

func TestRewriteBatchValidityImpliesBudget(t *testing.T) {
	// mixed outcomes: some accepted, some overflowing
	rw, _ := newTestRewriter(func(bullet string, _ []string, maxChars int) (string, error) {
		if strings.HasPrefix(bullet, "over") {
			return strings.Repeat("z", maxChars+1), nil
		}
		return "short rewrite", nil
	})
	rw.Workers = 2

	fragments := []string{"over the first", "fine second", "over the third", "fine fourth"}
	constraints := []domain.Constraint{{MaxChars: 50}, {MaxChars: 50}, {MaxChars: 50}, {MaxChars: 50}}
	results, validity := rw.RewriteBatch(context.Background(), fragments, []string{"go"}, constraints, domain.StyleSafe)

	for i := range fragments {
		if validity[i] && len(results[i]) > constraints[i].MaxChars {
			t.Errorf("fragment %d flagged valid but over budget", i)
		}
		if !validity[i] && results[i] != fragments[i] {
			t.Errorf("fragment %d flagged invalid but not reverted", i)
		}
	}
}
