package decks

import (
	"context"
	"strings"
	"testing"
)

type fakeLLM struct {
	response string
	err      error
	prompts  []string
}

func (f *fakeLLM) Complete(ctx context.Context, prompt string) (string, error) {
	f.prompts = append(f.prompts, prompt)
	return f.response, f.err
}

func TestSummarizeParsesFencedAndBareJSON(t *testing.T) {
	raw := `{"slides":[{"title":"One","bullets":["a","b"]},{"title":"Two","bullets":["c"]}]}`
	fenced := "```json\n" + raw + "\n```"

	for name, response := range map[string]string{"bare": raw, "fenced": fenced} {
		svc := &Service{LLM: &fakeLLM{response: response}}
		structure, err := svc.Summarize(context.Background(), Input{
			Content:    "doc",
			Title:      "My Doc",
			SlideCount: 2,
		})
		if err != nil {
			t.Fatalf("%s: summarize: %v", name, err)
		}
		if len(structure.Slides) != 2 {
			t.Fatalf("%s: expected 2 slides, got %d", name, len(structure.Slides))
		}
		if structure.Slides[0].Title != "One" || structure.Slides[1].Title != "Two" {
			t.Fatalf("%s: unexpected slide titles %+v", name, structure.Slides)
		}
	}
}

func TestSummarizeStripsBareFence(t *testing.T) {
	raw := "```\n{\"slides\":[{\"title\":\"T\",\"bullets\":[\"x\"]}]}\n```"
	svc := &Service{LLM: &fakeLLM{response: raw}}
	structure, err := svc.Summarize(context.Background(), Input{Title: "T", SlideCount: 1, Content: "c"})
	if err != nil {
		t.Fatalf("summarize: %v", err)
	}
	if len(structure.Slides) != 1 {
		t.Fatalf("expected 1 slide, got %d", len(structure.Slides))
	}
}

func TestSummarizeFiltersBlankBullets(t *testing.T) {
	svc := &Service{LLM: &fakeLLM{response: `{"slides":[{"title":"T","bullets":["a","","  ","b"]}]}`}}
	structure, err := svc.Summarize(context.Background(), Input{Title: "T", SlideCount: 1, Content: "c"})
	if err != nil {
		t.Fatalf("summarize: %v", err)
	}
	bullets := structure.Slides[0].Bullets
	if len(bullets) != 2 || bullets[0] != "a" || bullets[1] != "b" {
		t.Fatalf("expected bullets [a b], got %v", bullets)
	}
}

func TestSummarizeUsesCallerTitle(t *testing.T) {
	svc := &Service{LLM: &fakeLLM{response: `{"slides":[{"title":"S","bullets":["x"]}]}`}}
	structure, err := svc.Summarize(context.Background(), Input{Title: "Caller Title", SlideCount: 1, Content: "c"})
	if err != nil {
		t.Fatalf("summarize: %v", err)
	}
	if structure.Title != "Caller Title" {
		t.Fatalf("expected caller title, got %q", structure.Title)
	}
}

func TestSummarizeEmptyResponse(t *testing.T) {
	svc := &Service{LLM: &fakeLLM{response: "   "}}
	_, err := svc.Summarize(context.Background(), Input{Title: "T", SlideCount: 3, Content: "c"})
	if err == nil || !strings.Contains(err.Error(), "no response from model") {
		t.Fatalf("expected no-response error, got %v", err)
	}
}

func TestSummarizeInvalidJSONIncludesRaw(t *testing.T) {
	svc := &Service{LLM: &fakeLLM{response: "here are your slides!"}}
	_, err := svc.Summarize(context.Background(), Input{Title: "T", SlideCount: 3, Content: "c"})
	if err == nil || !strings.Contains(err.Error(), "here are your slides!") {
		t.Fatalf("expected raw text in parse error, got %v", err)
	}
}

func TestSummarizeMissingSlidesArray(t *testing.T) {
	svc := &Service{LLM: &fakeLLM{response: `{"title":"T"}`}}
	_, err := svc.Summarize(context.Background(), Input{Title: "T", SlideCount: 3, Content: "c"})
	if err == nil || !strings.Contains(err.Error(), "missing slides array") {
		t.Fatalf("expected missing-slides error, got %v", err)
	}
}

func TestSummarizeMissingSlideFields(t *testing.T) {
	cases := map[string]struct {
		response string
		want     string
	}{
		"no title":   {`{"slides":[{"title":"ok","bullets":["x"]},{"bullets":["y"]}]}`, "slide 1 missing title"},
		"no bullets": {`{"slides":[{"title":"ok"}]}`, "slide 0 missing bullets"},
	}
	for name, tc := range cases {
		svc := &Service{LLM: &fakeLLM{response: tc.response}}
		_, err := svc.Summarize(context.Background(), Input{Title: "T", SlideCount: 2, Content: "c"})
		if err == nil || !strings.Contains(err.Error(), tc.want) {
			t.Fatalf("%s: expected error containing %q, got %v", name, tc.want, err)
		}
	}
}

func TestSummarizeMockMode(t *testing.T) {
	svc := &Service{}
	for _, count := range []int{3, 5, 10} {
		structure, err := svc.Summarize(context.Background(), Input{
			Content:    "doc",
			Title:      "Mock Deck",
			SlideCount: count,
		})
		if err != nil {
			t.Fatalf("mock summarize: %v", err)
		}
		if len(structure.Slides) != count {
			t.Fatalf("expected %d mock slides, got %d", count, len(structure.Slides))
		}
		if structure.Title != "Mock Deck" {
			t.Fatalf("expected supplied title, got %q", structure.Title)
		}
		for i, slide := range structure.Slides {
			if slide.Title == "" || len(slide.Bullets) == 0 {
				t.Fatalf("mock slide %d is empty: %+v", i, slide)
			}
		}
	}
}
