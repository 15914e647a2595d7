package decks

// Structure is a generated deck outline. Slides are ordered; after
// validation every bullet is a non-empty trimmed string.
type Structure struct {
	Title  string  `json:"title"`
	Slides []Slide `json:"slides"`
}

// Slide is one slide's content.
type Slide struct {
	Title   string   `json:"title"`
	Bullets []string `json:"bullets"`
}
