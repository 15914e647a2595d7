// Package templates holds the fixed set of visual styles a deck can be
// materialized with. Templates are immutable; handlers and the slides
// builder only ever read them.
package templates

// Template is a named visual style. Colors are hex strings (#RRGGBB).
// HeaderColor is optional; when empty the slide has no header bar.
type Template struct {
	ID          string
	Name        string
	Description string
	Background  string
	TitleColor  string
	BodyColor   string
	HeaderColor string
}

var all = []Template{
	{
		ID:          "modern",
		Name:        "Modern",
		Description: "Clean white background with a blue accent header",
		Background:  "#FFFFFF",
		TitleColor:  "#1A73E8",
		BodyColor:   "#3C4043",
		HeaderColor: "#1A73E8",
	},
	{
		ID:          "classic",
		Name:        "Classic",
		Description: "Ivory background with traditional dark serif tones",
		Background:  "#FDF6E3",
		TitleColor:  "#5B4636",
		BodyColor:   "#433422",
	},
	{
		ID:          "minimal",
		Name:        "Minimal",
		Description: "Plain white with near-black text and no ornament",
		Background:  "#FFFFFF",
		TitleColor:  "#202124",
		BodyColor:   "#5F6368",
	},
	{
		ID:          "dark",
		Name:        "Dark",
		Description: "Charcoal background with light text",
		Background:  "#202124",
		TitleColor:  "#8AB4F8",
		BodyColor:   "#E8EAED",
		HeaderColor: "#303134",
	},
	{
		ID:          "vibrant",
		Name:        "Vibrant",
		Description: "Warm background with bold contrasting colors",
		Background:  "#FFF8E1",
		TitleColor:  "#E65100",
		BodyColor:   "#4E342E",
		HeaderColor: "#FFB300",
	},
}

// DefaultID is applied when a request names no template.
const DefaultID = "modern"

// All returns the five templates in stable order.
func All() []Template {
	out := make([]Template, len(all))
	copy(out, all)
	return out
}

// ByID looks up a template by its identifier.
func ByID(id string) (Template, bool) {
	for _, t := range all {
		if t.ID == id {
			return t, true
		}
	}
	return Template{}, false
}
