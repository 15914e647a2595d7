package slides

import (
	"strconv"
	"strings"

	slidesapi "google.golang.org/api/slides/v1"
)

// rgbColor converts a #RRGGBB hex string into the API's 0..1 float
// color. Unparseable input degrades to black.
func rgbColor(hex string) *slidesapi.RgbColor {
	s := strings.TrimPrefix(strings.TrimSpace(hex), "#")
	if len(s) != 6 {
		return &slidesapi.RgbColor{}
	}
	val, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return &slidesapi.RgbColor{}
	}
	return &slidesapi.RgbColor{
		Red:   float64(val>>16&0xFF) / 255.0,
		Green: float64(val>>8&0xFF) / 255.0,
		Blue:  float64(val&0xFF) / 255.0,
	}
}

func solidFill(hex string) *slidesapi.SolidFill {
	return &slidesapi.SolidFill{
		Color: &slidesapi.OpaqueColor{RgbColor: rgbColor(hex)},
	}
}

func foreground(hex string) *slidesapi.OptionalColor {
	return &slidesapi.OptionalColor{
		OpaqueColor: &slidesapi.OpaqueColor{RgbColor: rgbColor(hex)},
	}
}
