// Package bootstrap constructs the application's dependencies once at
// startup and hands them to the router. Clients are passed down
// explicitly; no package-level singletons.
package bootstrap

import (
	"context"

	"github.com/gin-gonic/gin"

	"deckgen-backend/internal/auth"
	"deckgen-backend/internal/decks"
	"deckgen-backend/internal/gdocs"
	"deckgen-backend/internal/llm"
	"deckgen-backend/internal/llm/gemini"
	"deckgen-backend/internal/services/health"
	"deckgen-backend/internal/shared/config"
	"deckgen-backend/internal/shared/server"
	"deckgen-backend/internal/shared/server/middleware"
	"deckgen-backend/internal/slides"
)

// App holds shared dependencies.
type App struct {
	Config      config.Config
	Router      *gin.Engine
	LLM         llm.Client
	Fetcher     *gdocs.Fetcher
	Builder     *slides.Builder
	DeckService *decks.Service
	DeckHandler *decks.Handler
	GoogleAuth  *auth.GoogleService
}

// Build prepares dependencies and wires the router. A missing Gemini
// credential leaves the LLM client nil, which runs the summarizer in
// mock mode.
func Build(cfg config.Config) (*App, error) {
	var llmClient llm.Client
	if !cfg.MockMode() {
		client, err := gemini.NewClient(context.Background(), cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			return nil, err
		}
		llmClient = client
	}

	fetcher := gdocs.NewFetcher()
	builder := slides.NewBuilder()
	deckSvc := &decks.Service{LLM: llmClient}
	deckHandler := decks.NewHandler(deckSvc, fetcher, builder)
	googleAuth := auth.NewGoogleService(cfg.GoogleClientID)

	app := &App{
		Config:      cfg,
		LLM:         llmClient,
		Fetcher:     fetcher,
		Builder:     builder,
		DeckService: deckSvc,
		DeckHandler: deckHandler,
		GoogleAuth:  googleAuth,
	}

	app.Router = server.NewRouter(server.RouterDeps{
		Config:      cfg,
		DeckHandler: deckHandler,
		GoogleAuth:  googleAuth,
		Health:      health.NewService(cfg.Env, cfg.MockMode()),
		Limiter:     middleware.NewRateLimiter(nil),
	})

	return app, nil
}
