package decks_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"deckgen-backend/internal/decks"
	"deckgen-backend/internal/gdocs"
	"deckgen-backend/internal/slides"
	"deckgen-backend/internal/templates"
)

type fakeFetcher struct {
	content gdocs.Content
	err     error
	calls   int
}

func (f *fakeFetcher) Fetch(ctx context.Context, rawURL, accessToken string) (gdocs.Content, error) {
	f.calls++
	return f.content, f.err
}

type fakeCreator struct {
	result slides.Result
	err    error
	deck   slides.Deck
	tpl    templates.Template
	calls  int
}

func (f *fakeCreator) Create(ctx context.Context, accessToken string, deck slides.Deck, tpl templates.Template) (slides.Result, error) {
	f.calls++
	f.deck = deck
	f.tpl = tpl
	return f.result, f.err
}

func newTestRouter(fetcher *fakeFetcher, creator *fakeCreator) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	// nil LLM keeps the summarizer in mock mode
	h := decks.NewHandler(&decks.Service{}, fetcher, creator)
	h.RegisterRoutes(r.Group("/api/v1"))
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var parsed map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &parsed); err != nil {
		t.Fatalf("response is not JSON: %v (body %q)", err, w.Body.String())
	}
	return w, parsed
}

func TestListTemplates(t *testing.T) {
	r := newTestRouter(&fakeFetcher{}, &fakeCreator{})
	w, body := doJSON(t, r, http.MethodGet, "/api/v1/decks/templates", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	list, ok := body["templates"].([]any)
	if !ok || len(list) != len(templates.All()) {
		t.Fatalf("expected %d templates, got %v", len(templates.All()), body["templates"])
	}
	first, _ := list[0].(map[string]any)
	for _, field := range []string{"id", "name", "description"} {
		if _, ok := first[field]; !ok {
			t.Fatalf("template entry missing %q: %v", field, first)
		}
	}
}

func TestPreviewMockMode(t *testing.T) {
	r := newTestRouter(&fakeFetcher{}, &fakeCreator{})
	w, body := doJSON(t, r, http.MethodPost, "/api/v1/decks/preview",
		`{"documentContent":"Some long document.","documentTitle":"My Doc","slideCount":5}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d (%s)", w.Code, w.Body.String())
	}
	if body["success"] != true {
		t.Fatalf("expected success true, got %v", body["success"])
	}
	if body["documentTitle"] != "My Doc" {
		t.Fatalf("expected documentTitle echoed, got %v", body["documentTitle"])
	}
	structure, _ := body["structure"].(map[string]any)
	slideList, _ := structure["slides"].([]any)
	if len(slideList) != 5 {
		t.Fatalf("expected 5 slides, got %d", len(slideList))
	}
}

func TestPreviewSlideCountValidation(t *testing.T) {
	r := newTestRouter(&fakeFetcher{}, &fakeCreator{})
	cases := map[string]string{
		"missing":   `{"documentContent":"x","documentTitle":"T"}`,
		"too small": `{"documentContent":"x","documentTitle":"T","slideCount":2}`,
		"too large": `{"documentContent":"x","documentTitle":"T","slideCount":11}`,
	}
	for name, payload := range cases {
		w, body := doJSON(t, r, http.MethodPost, "/api/v1/decks/preview", payload)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("%s: expected 400, got %d", name, w.Code)
		}
		msg, _ := body["error"].(string)
		if !strings.Contains(msg, "slideCount") {
			t.Fatalf("%s: expected slideCount in error, got %q", name, msg)
		}
	}
}

func TestPreviewMissingContent(t *testing.T) {
	r := newTestRouter(&fakeFetcher{}, &fakeCreator{})
	w, body := doJSON(t, r, http.MethodPost, "/api/v1/decks/preview",
		`{"documentTitle":"T","slideCount":5}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	msg, _ := body["error"].(string)
	if !strings.Contains(msg, "documentContent or googleDocsUrl") {
		t.Fatalf("unexpected error message %q", msg)
	}
}

func TestPreviewMissingTitleInPasteMode(t *testing.T) {
	r := newTestRouter(&fakeFetcher{}, &fakeCreator{})
	w, body := doJSON(t, r, http.MethodPost, "/api/v1/decks/preview",
		`{"documentContent":"x","slideCount":5}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	msg, _ := body["error"].(string)
	if !strings.Contains(msg, "documentTitle") {
		t.Fatalf("unexpected error message %q", msg)
	}
}

func TestPreviewImportMode(t *testing.T) {
	fetcher := &fakeFetcher{content: gdocs.Content{Title: "Fetched Title", Body: "Fetched body"}}
	r := newTestRouter(fetcher, &fakeCreator{})
	w, body := doJSON(t, r, http.MethodPost, "/api/v1/decks/preview",
		`{"googleDocsUrl":"https://docs.google.com/document/d/abc/edit","accessToken":"tok","slideCount":3}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d (%s)", w.Code, w.Body.String())
	}
	if fetcher.calls != 1 {
		t.Fatalf("expected one fetch, got %d", fetcher.calls)
	}
	if body["documentTitle"] != "Fetched Title" {
		t.Fatalf("expected fetched title, got %v", body["documentTitle"])
	}
}

func TestPreviewImportModeRequiresToken(t *testing.T) {
	fetcher := &fakeFetcher{}
	r := newTestRouter(fetcher, &fakeCreator{})
	w, body := doJSON(t, r, http.MethodPost, "/api/v1/decks/preview",
		`{"googleDocsUrl":"https://docs.google.com/document/d/abc/edit","slideCount":3}`)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
	msg, _ := body["error"].(string)
	if !strings.Contains(msg, "accessToken") {
		t.Fatalf("unexpected error message %q", msg)
	}
	if fetcher.calls != 0 {
		t.Fatalf("fetcher should not be called without a token")
	}
}

func TestPreviewImportModePropagatesDocsError(t *testing.T) {
	fetcher := &fakeFetcher{err: &gdocs.Error{
		Kind:    gdocs.KindAccessDenied,
		Status:  http.StatusForbidden,
		Message: "access denied to document",
	}}
	r := newTestRouter(fetcher, &fakeCreator{})
	w, body := doJSON(t, r, http.MethodPost, "/api/v1/decks/preview",
		`{"googleDocsUrl":"https://docs.google.com/document/d/abc/edit","accessToken":"tok","slideCount":3}`)
	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", w.Code)
	}
	msg, _ := body["error"].(string)
	if !strings.Contains(msg, "access denied") {
		t.Fatalf("unexpected error message %q", msg)
	}
}

func TestGenerateRequiresAuthFields(t *testing.T) {
	r := newTestRouter(&fakeFetcher{}, &fakeCreator{})

	w, body := doJSON(t, r, http.MethodPost, "/api/v1/decks",
		`{"documentContent":"x","documentTitle":"T","slideCount":5}`)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without accessToken, got %d", w.Code)
	}
	msg, _ := body["error"].(string)
	if !strings.Contains(msg, "accessToken") {
		t.Fatalf("unexpected error message %q", msg)
	}

	w, body = doJSON(t, r, http.MethodPost, "/api/v1/decks",
		`{"documentContent":"x","documentTitle":"T","slideCount":5,"accessToken":"tok"}`)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without userEmail, got %d", w.Code)
	}
	msg, _ = body["error"].(string)
	if !strings.Contains(msg, "userEmail") {
		t.Fatalf("unexpected error message %q", msg)
	}
}

func TestGenerateUnknownTemplate(t *testing.T) {
	creator := &fakeCreator{}
	r := newTestRouter(&fakeFetcher{}, creator)
	w, body := doJSON(t, r, http.MethodPost, "/api/v1/decks",
		`{"documentContent":"x","documentTitle":"T","slideCount":5,
		  "accessToken":"tok","userEmail":"user@example.com","template":"neon"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	msg, _ := body["error"].(string)
	if !strings.Contains(msg, "unknown template: neon") {
		t.Fatalf("unexpected error message %q", msg)
	}
	if creator.calls != 0 {
		t.Fatalf("creator should not run for an unknown template")
	}
}

func TestGeneratePasteModeHappyPath(t *testing.T) {
	creator := &fakeCreator{result: slides.Result{
		SlidesURL: "https://docs.google.com/presentation/d/new123/edit",
		SlidesID:  "new123",
	}}
	r := newTestRouter(&fakeFetcher{}, creator)
	w, body := doJSON(t, r, http.MethodPost, "/api/v1/decks",
		`{"documentContent":"Quarterly numbers.","documentTitle":"Q3 Review","slideCount":4,
		  "accessToken":"tok","userEmail":"user@example.com"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d (%s)", w.Code, w.Body.String())
	}
	if body["success"] != true {
		t.Fatalf("expected success true, got %v", body["success"])
	}
	if body["slidesUrl"] != creator.result.SlidesURL || body["slidesId"] != "new123" {
		t.Fatalf("unexpected slides payload: %v", body)
	}
	if creator.calls != 1 {
		t.Fatalf("expected one create call, got %d", creator.calls)
	}
	if creator.deck.Title != "Q3 Review" || len(creator.deck.Slides) != 4 {
		t.Fatalf("unexpected deck passed to creator: %+v", creator.deck)
	}
	if creator.tpl.ID != templates.DefaultID {
		t.Fatalf("expected default template, got %q", creator.tpl.ID)
	}
}

func TestGenerateCreatorFailure(t *testing.T) {
	creator := &fakeCreator{err: errors.New("failed to create presentation")}
	r := newTestRouter(&fakeFetcher{}, creator)
	w, body := doJSON(t, r, http.MethodPost, "/api/v1/decks",
		`{"documentContent":"x","documentTitle":"T","slideCount":3,
		  "accessToken":"tok","userEmail":"user@example.com"}`)
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}
	msg, _ := body["error"].(string)
	if !strings.Contains(msg, "failed to create presentation") {
		t.Fatalf("unexpected error message %q", msg)
	}
}

func TestGenerateInvalidBody(t *testing.T) {
	r := newTestRouter(&fakeFetcher{}, &fakeCreator{})
	w, _ := doJSON(t, r, http.MethodPost, "/api/v1/decks", `{"slideCount":"five"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for malformed body, got %d", w.Code)
	}
}
