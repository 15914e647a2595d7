// Command prompttest runs the deck prompt against a local document and
// prints the resulting outline. Useful for iterating on the prompt
// without going through the HTTP API.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"deckgen-backend/internal/decks"
	"deckgen-backend/internal/llm"
	"deckgen-backend/internal/llm/gemini"
	"deckgen-backend/internal/shared/config"
)

func main() {
	cfg := config.Load()

	docPath := flag.String("doc", "", "Path to a plain-text or markdown document")
	title := flag.String("title", "", "Deck title (defaults to the file name)")
	slideCount := flag.Int("slides", 5, "Number of slides (3-10)")
	customPrompt := flag.String("custom", "", "Additional prompt instructions (optional)")
	model := flag.String("model", cfg.GeminiModel, "Gemini model")
	outPath := flag.String("out", "", "Path to write the outline JSON (optional)")
	flag.Parse()

	if strings.TrimSpace(*docPath) == "" {
		exitErr("doc path is required")
	}
	if *slideCount < 3 || *slideCount > 10 {
		exitErr("slides must be between 3 and 10")
	}

	docBytes, err := os.ReadFile(*docPath)
	if err != nil {
		exitErr(fmt.Sprintf("read document: %v", err))
	}

	deckTitle := strings.TrimSpace(*title)
	if deckTitle == "" {
		base := filepath.Base(*docPath)
		deckTitle = strings.TrimSuffix(base, filepath.Ext(base))
	}

	var client llm.Client
	if !cfg.MockMode() {
		geminiClient, err := gemini.NewClient(context.Background(), cfg.GeminiAPIKey, *model)
		if err != nil {
			exitErr(fmt.Sprintf("gemini client: %v", err))
		}
		defer geminiClient.Close()
		client = geminiClient
	} else {
		fmt.Fprintln(os.Stderr, "GEMINI_API_KEY not set, using mock outline")
	}

	svc := &decks.Service{LLM: client}
	structure, err := svc.Summarize(context.Background(), decks.Input{
		Content:      string(docBytes),
		Title:        deckTitle,
		SlideCount:   *slideCount,
		CustomPrompt: *customPrompt,
	})
	if err != nil {
		exitErr(fmt.Sprintf("summarize: %v", err))
	}

	raw, err := json.Marshal(structure)
	if err != nil {
		exitErr(fmt.Sprintf("encode outline: %v", err))
	}
	pretty, err := prettyJSON(raw)
	if err != nil {
		exitErr(fmt.Sprintf("format json: %v", err))
	}

	if *outPath != "" {
		if err := os.WriteFile(*outPath, pretty, 0o644); err != nil {
			exitErr(fmt.Sprintf("write output: %v", err))
		}
	}

	if _, err := os.Stdout.Write(pretty); err != nil {
		exitErr(fmt.Sprintf("write stdout: %v", err))
	}
	if len(pretty) == 0 || pretty[len(pretty)-1] != '\n' {
		_, _ = os.Stdout.Write([]byte("\n"))
	}
}

func prettyJSON(raw []byte) ([]byte, error) {
	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "  "); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func exitErr(msg string) {
	_, _ = fmt.Fprintln(os.Stderr, msg)
	os.Exit(1)
}
