// internal/models/card.go
package models

// Card colors. Wild cards carry no color until they are played.
const (
	ColorRed    = "RED"
	ColorGreen  = "GREEN"
	ColorYellow = "YELLOW"
	ColorBlue   = "BLUE"
)

// Card values beyond the numerals "0".."9".
const (
	ValueSkip         = "SKIP"
	ValueReverse      = "REVERSE"
	ValueDrawTwo      = "DRAW_TWO"
	ValueWild         = "WILD"
	ValueWildDrawFour = "WILD_DRAW_FOUR"
)

// Colors lists the four valid card colors.
var Colors = []string{ColorRed, ColorGreen, ColorYellow, ColorBlue}

// WildValues are the colorless special cards.
var WildValues = []string{ValueWild, ValueWildDrawFour}

// ColoredSpecialValues are the special cards that exist once per color pair.
var ColoredSpecialValues = []string{ValueDrawTwo, ValueSkip, ValueReverse}

// Card is a single card. Color is empty for WILD and WILD_DRAW_FOUR until
// the card is played with a chosen color.
type Card struct {
	ID    string `json:"id"`
	Value string `json:"value"`
	Color string `json:"color,omitempty"`
}

// IsWild reports whether the card is a WILD or WILD_DRAW_FOUR.
func (c *Card) IsWild() bool {
	return c.Value == ValueWild || c.Value == ValueWildDrawFour
}

// IsColoredSpecial reports whether the card is a colored special
// (DRAW_TWO, SKIP or REVERSE).
func (c *Card) IsColoredSpecial() bool {
	return c.Value == ValueDrawTwo || c.Value == ValueSkip || c.Value == ValueReverse
}

// ValidColor reports whether s names one of the four card colors.
func ValidColor(s string) bool {
	for _, c := range Colors {
		if c == s {
			return true
		}
	}
	return false
}
