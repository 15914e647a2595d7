package decks

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"deckgen-backend/internal/llm"
)

// Input captures everything the summarizer needs for one deck.
type Input struct {
	Content      string
	Title        string
	SlideCount   int
	CustomPrompt string
}

// Service turns document text into a validated deck outline. A nil LLM
// client switches it to mock mode: canned slides, no network.
type Service struct {
	LLM llm.Client
}

// Summarize builds the prompt, runs the model, and validates the
// response. The returned title is always the caller's, never the
// model's.
func (s *Service) Summarize(ctx context.Context, in Input) (Structure, error) {
	if s.LLM == nil {
		return mockStructure(in), nil
	}

	text, err := s.LLM.Complete(ctx, BuildPrompt(in.Content, in.SlideCount, in.CustomPrompt))
	if err != nil {
		return Structure{}, fmt.Errorf("generate deck: %w", err)
	}

	slides, err := parseModelResponse(text)
	if err != nil {
		return Structure{}, err
	}

	return Structure{Title: in.Title, Slides: slides}, nil
}

func parseModelResponse(text string) ([]Slide, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil, errors.New("no response from model")
	}

	cleaned := stripCodeFence(trimmed)

	var parsed struct {
		Slides []Slide `json:"slides"`
	}
	if err := json.Unmarshal([]byte(cleaned), &parsed); err != nil {
		return nil, fmt.Errorf("model returned invalid JSON: %w; raw response: %s", err, trimmed)
	}
	if parsed.Slides == nil {
		return nil, errors.New("model response missing slides array")
	}

	out := make([]Slide, 0, len(parsed.Slides))
	for i, slide := range parsed.Slides {
		if strings.TrimSpace(slide.Title) == "" {
			return nil, fmt.Errorf("model response slide %d missing title", i)
		}
		if slide.Bullets == nil {
			return nil, fmt.Errorf("model response slide %d missing bullets", i)
		}
		bullets := make([]string, 0, len(slide.Bullets))
		for _, b := range slide.Bullets {
			if t := strings.TrimSpace(b); t != "" {
				bullets = append(bullets, t)
			}
		}
		out = append(out, Slide{Title: slide.Title, Bullets: bullets})
	}
	return out, nil
}

// stripCodeFence removes one wrapping markdown fence, with or without a
// json language tag.
func stripCodeFence(s string) string {
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

var mockSlides = []Slide{
	{Title: "Overview", Bullets: []string{
		"Sets the stage for the material that follows",
		"Highlights the main themes of the document",
		"Explains why the topic matters now",
	}},
	{Title: "Key Points", Bullets: []string{
		"Summarizes the strongest arguments made",
		"Groups related ideas into a single view",
		"Calls out supporting evidence",
	}},
	{Title: "Details", Bullets: []string{
		"Walks through the specifics step by step",
		"Notes caveats and edge conditions",
		"References the source material directly",
	}},
	{Title: "Analysis", Bullets: []string{
		"Weighs trade-offs between the options",
		"Compares against common alternatives",
		"Identifies open questions",
	}},
	{Title: "Next Steps", Bullets: []string{
		"Lists concrete follow-up actions",
		"Assigns rough priorities",
		"Closes with the expected outcome",
	}},
}

// mockStructure cycles the sample pool to the requested count. Used when
// no model credential is configured; never touches the network.
func mockStructure(in Input) Structure {
	slides := make([]Slide, 0, in.SlideCount)
	for i := 0; i < in.SlideCount; i++ {
		slides = append(slides, mockSlides[i%len(mockSlides)])
	}
	return Structure{Title: in.Title, Slides: slides}
}
