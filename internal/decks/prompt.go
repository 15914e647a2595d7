package decks

import (
	_ "embed"
	"strconv"
	"strings"
)

//go:embed prompts/deck_v1.txt
var deckPromptV1 string

const customPromptHeading = "Additional instructions:"

// BuildPrompt renders the model instruction text. Pure string
// construction; the custom block only appears when customPrompt is
// non-blank.
func BuildPrompt(content string, slideCount int, customPrompt string) string {
	prompt := strings.NewReplacer(
		"{{SLIDE_COUNT}}", strconv.Itoa(slideCount),
		"{{DOCUMENT}}", content,
	).Replace(deckPromptV1)

	if trimmed := strings.TrimSpace(customPrompt); trimmed != "" {
		prompt += "\n" + customPromptHeading + "\n" + trimmed + "\n"
	}
	return prompt
}
