package http

import (
	"context"
	"encoding/json"
	"log"

	"github.com/Rroopesh55/ResuForge/internal/adapter/repository"
	"github.com/Rroopesh55/ResuForge/internal/document"
	"github.com/Rroopesh55/ResuForge/internal/domain"
	"github.com/Rroopesh55/ResuForge/internal/usecase"
	"github.com/Rroopesh55/ResuForge/pkg/ai"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// JDAnalyzer is the slice of the AI client the handler needs for job
// description analysis.
type JDAnalyzer interface {
	AnalyzeJD(ctx context.Context, jdText string) (ai.JDAnalysis, error)
}

type Handler struct {
	rewriter *usecase.Rewriter
	exporter *usecase.Exporter
	patcher  *document.Patcher
	analyzer JDAnalyzer
	repo     *repository.VersionsRepo
}

func NewHandler(rw *usecase.Rewriter, ex *usecase.Exporter, pt *document.Patcher, analyzer JDAnalyzer, repo *repository.VersionsRepo) *Handler {
	return &Handler{rewriter: rw, exporter: ex, patcher: pt, analyzer: analyzer, repo: repo}
}

func (h *Handler) Register(app *fiber.App) {
	app.Get("/", h.Health)
	app.Post("/optimize", h.Optimize)
	app.Post("/validate-edit", h.ValidateEdit)
	app.Post("/update-content", h.UpdateContent)
	app.Post("/analyze-jd", h.AnalyzeJD)
	app.Post("/optimize-and-export", h.OptimizeAndExport)
	app.Get("/resumes/:id/versions", h.ListVersions)
}

func (h *Handler) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"message": "ResuForge API is running", "status": "healthy"})
}

type optimizeReq struct {
	Bullets     []string            `json:"bullets"`
	Keywords    []string            `json:"keywords"`
	Constraints []domain.Constraint `json:"constraints"`
	Style       string              `json:"style"`
}

// Optimize wraps the batch rewrite. An empty bullet list is "nothing to
// do", not an error: the caller gets empty arrays back.
func (h *Handler) Optimize(c *fiber.Ctx) error {
	var req optimizeReq
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid payload"})
	}

	results, validity := h.rewriter.RewriteBatch(c.Context(), req.Bullets, req.Keywords, req.Constraints, domain.ParseStyle(req.Style))
	return c.JSON(fiber.Map{
		"rewritten_bullets": results,
		"validation":        validity,
	})
}

type validateEditReq struct {
	OriginalText string `json:"original_text"`
	NewText      string `json:"new_text"`
	MaxChars     int    `json:"max_chars"`
}

// ValidateEdit checks a single ad hoc edit against a budget. diff reports
// by how many characters the edit overflows (0 when it fits).
func (h *Handler) ValidateEdit(c *fiber.Ctx) error {
	var req validateEditReq
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid payload"})
	}

	valid, diff := usecase.ValidateEdit(req.NewText, req.MaxChars)
	return c.JSON(fiber.Map{"valid": valid, "diff": diff})
}

type updateContentReq struct {
	Document     json.RawMessage `json:"document"`
	OriginalText string          `json:"original_text"`
	NewText      string          `json:"new_text"`
}

// UpdateContent applies one manual replacement pair onto a document.
func (h *Handler) UpdateContent(c *fiber.Ctx) error {
	var req updateContentReq
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid payload"})
	}
	doc, err := document.Decode(req.Document)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	repl := domain.ReplacementMap{{Original: req.OriginalText, Replacement: req.NewText}}
	patched := h.patcher.Apply(doc, repl)
	unmatched := h.patcher.FindUnmatched(doc, repl)

	return c.JSON(fiber.Map{"document": patched, "unmatched": unmatched})
}

type analyzeJDReq struct {
	Text   string `json:"text"`
	JobURL string `json:"job_url"`
}

func (h *Handler) AnalyzeJD(c *fiber.Ctx) error {
	var req analyzeJDReq
	if err := c.BodyParser(&req); err != nil || req.Text == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "missing job description text"})
	}

	analysis, err := h.analyzer.AnalyzeJD(c.Context(), req.Text)
	if err != nil {
		log.Printf("analyze-jd failed: %v", err)
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": "generation backend unavailable"})
	}
	analysis.Source = ai.SourceLabel(req.JobURL)
	return c.JSON(analysis)
}

type exportReq struct {
	Document     json.RawMessage     `json:"document"`
	Bullets      []string            `json:"bullets"`
	Constraints  []domain.Constraint `json:"constraints"`
	Keywords     []string            `json:"keywords"`
	Style        string              `json:"style"`
	FinalBullets []string            `json:"final_bullets"`
	OutputFormat string              `json:"output_format"`
	ResumeID     string              `json:"resume_id"`
}

// OptimizeAndExport rewrites the bullets (or re-validates the supplied
// final_bullets), patches the document and returns it as JSON or rendered
// PDF. Per-bullet validity travels in the X-Validation-Results header.
func (h *Handler) OptimizeAndExport(c *fiber.Ctx) error {
	var req exportReq
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid payload"})
	}
	doc, err := document.Decode(req.Document)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	exReq := usecase.ExportRequest{
		Doc:          doc,
		Bullets:      req.Bullets,
		Constraints:  req.Constraints,
		Keywords:     req.Keywords,
		Style:        domain.ParseStyle(req.Style),
		FinalBullets: req.FinalBullets,
	}
	if req.ResumeID != "" {
		rid, err := uuid.Parse(req.ResumeID)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid resume_id"})
		}
		exReq.ResumeID = rid
	}

	res, err := h.exporter.OptimizeAndPatch(c.Context(), exReq)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	validB, _ := json.Marshal(res.Validity)
	c.Set("X-Validation-Results", string(validB))

	if req.OutputFormat == "pdf" {
		pdf, err := h.exporter.RenderPDF(c.Context(), res.Doc)
		if err != nil {
			log.Printf("pdf export failed: %v", err)
			return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": "pdf rendering failed"})
		}
		c.Set(fiber.HeaderContentType, "application/pdf")
		return c.Send(pdf)
	}

	return c.JSON(fiber.Map{
		"document":          res.Doc,
		"rewritten_bullets": res.Bullets,
		"validation":        res.Validity,
		"unmatched":         res.Unmatched,
	})
}

func (h *Handler) ListVersions(c *fiber.Ctx) error {
	rid, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid resume id"})
	}
	versions, err := h.repo.ListVersions(c.Context(), rid)
	if err != nil {
		log.Printf("list versions failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "could not load versions"})
	}
	return c.JSON(fiber.Map{"versions": versions})
}
