package decks

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"deckgen-backend/internal/gdocs"
	"deckgen-backend/internal/shared/metrics"
	"deckgen-backend/internal/shared/server/respond"
	"deckgen-backend/internal/slides"
	"deckgen-backend/internal/templates"
)

const (
	minSlideCount = 3
	maxSlideCount = 10
)

// ContentFetcher resolves a Google Docs URL with a delegated token.
type ContentFetcher interface {
	Fetch(ctx context.Context, rawURL, accessToken string) (gdocs.Content, error)
}

// Summarizer produces a deck outline from document text.
type Summarizer interface {
	Summarize(ctx context.Context, in Input) (Structure, error)
}

// DeckCreator materializes an outline as a real presentation.
type DeckCreator interface {
	Create(ctx context.Context, accessToken string, deck slides.Deck, tpl templates.Template) (slides.Result, error)
}

// Handler wires HTTP handlers to the deck services.
type Handler struct {
	Summarizer Summarizer
	Fetcher    ContentFetcher
	Creator    DeckCreator
}

// NewHandler constructs a Handler.
func NewHandler(summarizer Summarizer, fetcher ContentFetcher, creator DeckCreator) *Handler {
	return &Handler{Summarizer: summarizer, Fetcher: fetcher, Creator: creator}
}

// RegisterRoutes attaches deck routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/decks/templates", h.templates)
	rg.POST("/decks/preview", h.preview)
	rg.POST("/decks", h.generate)
}

type deckRequest struct {
	DocumentContent string `json:"documentContent"`
	DocumentTitle   string `json:"documentTitle"`
	GoogleDocsURL   string `json:"googleDocsUrl"`
	SlideCount      *int   `json:"slideCount"`
	CustomPrompt    string `json:"customPrompt"`
	Template        string `json:"template"`
	AccessToken     string `json:"accessToken"`
	UserEmail       string `json:"userEmail"`
}

func (h *Handler) templates(c *gin.Context) {
	list := templates.All()
	out := make([]gin.H, 0, len(list))
	for _, t := range list {
		out = append(out, gin.H{
			"id":          t.ID,
			"name":        t.Name,
			"description": t.Description,
		})
	}
	respond.OK(c, gin.H{"templates": out})
}

func (h *Handler) preview(c *gin.Context) {
	var req deckRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if !h.validateSlideCount(c, req) {
		return
	}

	content, title, ok := h.resolveContent(c, req)
	if !ok {
		return
	}

	structure, err := h.Summarizer.Summarize(c.Request.Context(), Input{
		Content:      content,
		Title:        title,
		SlideCount:   *req.SlideCount,
		CustomPrompt: req.CustomPrompt,
	})
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, err.Error())
		return
	}

	respond.OK(c, gin.H{
		"success":       true,
		"structure":     structure,
		"documentTitle": title,
	})
}

func (h *Handler) generate(c *gin.Context) {
	start := time.Now()
	var req deckRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(req.AccessToken) == "" {
		respond.Error(c, http.StatusUnauthorized, "accessToken is required")
		return
	}
	if strings.TrimSpace(req.UserEmail) == "" {
		respond.Error(c, http.StatusUnauthorized, "userEmail is required")
		return
	}
	if !h.validateSlideCount(c, req) {
		return
	}

	templateID := req.Template
	if templateID == "" {
		templateID = templates.DefaultID
	}
	tpl, ok := templates.ByID(templateID)
	if !ok {
		respond.Error(c, http.StatusBadRequest, "unknown template: "+templateID)
		return
	}

	c.Set("userEmail", req.UserEmail)

	content, title, ok := h.resolveContent(c, req)
	if !ok {
		metrics.IncDeckFailed()
		return
	}

	structure, err := h.Summarizer.Summarize(c.Request.Context(), Input{
		Content:      content,
		Title:        title,
		SlideCount:   *req.SlideCount,
		CustomPrompt: req.CustomPrompt,
	})
	if err != nil {
		metrics.IncDeckFailed()
		respond.Error(c, http.StatusInternalServerError, err.Error())
		return
	}

	result, err := h.Creator.Create(c.Request.Context(), req.AccessToken, toDeck(structure), tpl)
	if err != nil {
		metrics.IncDeckFailed()
		respond.Error(c, http.StatusInternalServerError, err.Error())
		return
	}

	c.Set("slidesId", result.SlidesID)
	metrics.IncDeckGenerated()
	metrics.ObserveGenerationDurationMs(float64(time.Since(start).Microseconds()) / 1000.0)

	respond.OK(c, gin.H{
		"success":   true,
		"slidesUrl": result.SlidesURL,
		"slidesId":  result.SlidesID,
	})
}

// validateSlideCount enforces presence and the [3,10] bound identically
// for preview and generate, before any external call.
func (h *Handler) validateSlideCount(c *gin.Context, req deckRequest) bool {
	if req.SlideCount == nil {
		respond.Error(c, http.StatusBadRequest, "slideCount is required")
		return false
	}
	if *req.SlideCount < minSlideCount || *req.SlideCount > maxSlideCount {
		respond.Error(c, http.StatusBadRequest, "slideCount must be between 3 and 10")
		return false
	}
	return true
}

// resolveContent returns the document text and title for either mode.
// On failure it has already written the response and returns ok=false.
func (h *Handler) resolveContent(c *gin.Context, req deckRequest) (string, string, bool) {
	if strings.TrimSpace(req.GoogleDocsURL) != "" {
		if strings.TrimSpace(req.AccessToken) == "" {
			respond.Error(c, http.StatusUnauthorized, "accessToken is required for Google Docs import")
			return "", "", false
		}
		fetched, err := h.Fetcher.Fetch(c.Request.Context(), req.GoogleDocsURL, req.AccessToken)
		if err != nil {
			var docsErr *gdocs.Error
			if errors.As(err, &docsErr) {
				respond.Error(c, docsErr.Status, docsErr.Message)
			} else {
				respond.Error(c, http.StatusInternalServerError, err.Error())
			}
			return "", "", false
		}
		title := strings.TrimSpace(req.DocumentTitle)
		if title == "" {
			title = fetched.Title
		}
		c.Set("documentId", req.GoogleDocsURL)
		return fetched.Body, title, true
	}

	if strings.TrimSpace(req.DocumentContent) == "" {
		respond.Error(c, http.StatusBadRequest, "documentContent or googleDocsUrl is required")
		return "", "", false
	}
	if strings.TrimSpace(req.DocumentTitle) == "" {
		respond.Error(c, http.StatusBadRequest, "documentTitle is required")
		return "", "", false
	}
	return req.DocumentContent, req.DocumentTitle, true
}

func toDeck(structure Structure) slides.Deck {
	out := slides.Deck{Title: structure.Title}
	for _, s := range structure.Slides {
		out.Slides = append(out.Slides, slides.SlideContent{
			Title:   s.Title,
			Bullets: s.Bullets,
		})
	}
	return out
}
