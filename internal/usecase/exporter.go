package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Rroopesh55/ResuForge/internal/document"
	"github.com/Rroopesh55/ResuForge/internal/domain"

	"github.com/google/uuid"
)

type Renderer interface {
	RenderHTMLToPDF(ctx context.Context, html string) ([]byte, error)
}

type VersionsRepo interface {
	SaveVersion(ctx context.Context, v *domain.ResumeVersion) error
}

// Exporter composes the rewrite batch with document patching and optional
// PDF rendering. The document store and renderer stay behind interfaces.
type Exporter struct {
	rewriter *Rewriter
	patcher  *document.Patcher
	renderer Renderer
	repo     VersionsRepo
}

func NewExporter(rw *Rewriter, pt *document.Patcher, r Renderer, repo VersionsRepo) *Exporter {
	return &Exporter{rewriter: rw, patcher: pt, renderer: r, repo: repo}
}

// ExportRequest carries one optimize-and-export operation. FinalBullets, if
// supplied, skips generation entirely and is used as the replacement source
// after re-validating lengths.
type ExportRequest struct {
	Doc          *document.Document
	Bullets      []string
	Constraints  []domain.Constraint
	Keywords     []string
	Style        domain.Style
	FinalBullets []string
	ResumeID     uuid.UUID
}

type ExportResult struct {
	Doc       *document.Document
	Bullets   []string
	Validity  []bool
	Unmatched []string
}

// OptimizeAndPatch produces the final bullet set, applies it onto the
// document and reports per-bullet validity plus any pairs the patcher could
// not locate. Persistence of the patched version is best-effort: a down
// database never fails the export.
func (e *Exporter) OptimizeAndPatch(ctx context.Context, req ExportRequest) (*ExportResult, error) {
	if req.Doc == nil {
		return nil, fmt.Errorf("no document supplied")
	}

	var finals []string
	var validity []bool
	if len(req.FinalBullets) > 0 {
		finals, validity = e.applyOverride(req)
	} else {
		finals, validity = e.rewriter.RewriteBatch(ctx, req.Bullets, req.Keywords, req.Constraints, req.Style)
	}

	repl := domain.NewReplacementMap(req.Bullets, finals)
	unmatched := e.patcher.FindUnmatched(req.Doc, repl)
	for _, orig := range unmatched {
		fmt.Printf("exporter: replacement source not found in document, skipping: %.40s\n", orig)
	}
	patched := e.patcher.Apply(req.Doc, repl)

	e.saveVersion(ctx, req, patched, validity)

	return &ExportResult{Doc: patched, Bullets: finals, Validity: validity, Unmatched: unmatched}, nil
}

// applyOverride re-validates user-supplied final bullets; an over-budget
// entry reverts to its original, flagged invalid.
func (e *Exporter) applyOverride(req ExportRequest) ([]string, []bool) {
	finals := make([]string, len(req.Bullets))
	validity := make([]bool, len(req.Bullets))
	for i, orig := range req.Bullets {
		finals[i] = orig
		validity[i] = true
		if i >= len(req.FinalBullets) {
			continue
		}
		c := e.rewriter.constraintFor(req.Constraints, i)
		if e.rewriter.Validator.Valid(req.FinalBullets[i], c) {
			finals[i] = req.FinalBullets[i]
		} else {
			validity[i] = false
		}
	}
	return finals, validity
}

func (e *Exporter) saveVersion(ctx context.Context, req ExportRequest, patched *document.Document, validity []bool) {
	if e.repo == nil || req.ResumeID == uuid.Nil {
		return
	}
	accepted := 0
	for _, v := range validity {
		if v {
			accepted++
		}
	}
	v := &domain.ResumeVersion{
		ID:            uuid.New(),
		ResumeID:      req.ResumeID,
		ChangeSummary: fmt.Sprintf("%d/%d bullets optimized (style=%s)", accepted, len(validity), req.Style),
		CreatedAt:     time.Now(),
	}
	if b := docToMap(patched); b != nil {
		v.Document = b
	}
	if err := e.repo.SaveVersion(ctx, v); err != nil {
		fmt.Printf("exporter: unable to persist version (non-fatal): %v\n", err)
	}
}

func docToMap(doc *document.Document) map[string]interface{} {
	paras := make([]interface{}, 0, len(doc.Paragraphs))
	for _, p := range doc.Paragraphs {
		runs := make([]interface{}, 0, len(p.Runs))
		for _, r := range p.Runs {
			runs = append(runs, map[string]interface{}{
				"text": r.Text, "font": r.Font, "size": r.Size,
				"bold": r.Bold, "italic": r.Italic, "color": r.Color,
			})
		}
		paras = append(paras, map[string]interface{}{"style": p.Style, "runs": runs})
	}
	return map[string]interface{}{"title": doc.Title, "paragraphs": paras}
}

// RenderPDF renders the document to HTML and drives the PDF renderer with
// retry; output is rejected unless it carries a PDF signature.
func (e *Exporter) RenderPDF(ctx context.Context, doc *document.Document) ([]byte, error) {
	if e.renderer == nil {
		return nil, fmt.Errorf("no PDF renderer configured")
	}
	html, err := document.RenderHTML(doc)
	if err != nil {
		return nil, err
	}

	var pdfBytes []byte
	var renderErr error
	attempts := 3
	for i := 0; i < attempts; i++ {
		pdfBytes, renderErr = e.renderer.RenderHTMLToPDF(ctx, html)
		if renderErr == nil {
			if len(pdfBytes) > 0 && strings.HasPrefix(string(pdfBytes), "%PDF") {
				return pdfBytes, nil
			}
			renderErr = fmt.Errorf("invalid PDF output (len=%d)", len(pdfBytes))
		}
		fmt.Printf("exporter: render attempt %d failed: %v\n", i+1, renderErr)
		if i < attempts-1 {
			backoff := time.Duration(1<<i) * time.Second
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}
	}
	return nil, fmt.Errorf("rendering failed after %d attempts: %w", attempts, renderErr)
}
