package main

import (
	"context"
	"log"
	"os"

	httpadapter "github.com/Rroopesh55/ResuForge/internal/adapter/http"
	repo "github.com/Rroopesh55/ResuForge/internal/adapter/repository"
	"github.com/Rroopesh55/ResuForge/internal/document"
	"github.com/Rroopesh55/ResuForge/internal/infrastructure/migration"
	"github.com/Rroopesh55/ResuForge/internal/usecase"
	"github.com/Rroopesh55/ResuForge/pkg/ai"
	infra "github.com/Rroopesh55/ResuForge/pkg/infrastructure"

	"github.com/gofiber/fiber/v2"
)

func main() {
	ctx := context.Background()

	// infra setup
	pool, err := infra.NewPool(ctx)
	if err != nil {
		log.Printf("warning: versions DB not available: %v", err)
	}
	if pool != nil {
		if err := migration.RunMigrations(ctx, pool); err != nil {
			log.Printf("warning: migrations failed: %v", err)
		}
	}

	aiClient := ai.NewClient()
	renderer := infra.NewChromedpRenderer()
	versionsRepo := repo.NewVersionsRepo(pool)

	rewriter := usecase.NewRewriter(aiClient)
	patcher := document.NewPatcher()
	exporter := usecase.NewExporter(rewriter, patcher, renderer, versionsRepo)

	app := fiber.New(fiber.Config{
		BodyLimit: 50 * 1024 * 1024, // uploads capped at 50MB
	})

	h := httpadapter.NewHandler(rewriter, exporter, patcher, aiClient, versionsRepo)
	h.Register(app)

	port := os.Getenv("PORT")
	if port == "" {
		port = "3000"
	}

	if err := app.Listen(":" + port); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}
