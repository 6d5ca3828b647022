// Package measure provides text measurers for the layout engine that do
// not need a PDF document.
package measure

import (
	"unicode/utf8"

	"github.com/rigelrozanski/chordsheet/layout"
)

// CourierWidthToHeight is the advance of a Courier glyph relative to the
// font height.
const CourierWidthToHeight = 0.6

// Monospace measures every character with the same advance, a fixed share
// of the font height. It ignores the font family.
type Monospace struct {
	WidthToHeight float64
}

var _ layout.TextMeasurer = Monospace{}

// Courier measures like the PDF core Courier font.
func Courier() Monospace {
	return Monospace{WidthToHeight: CourierWidthToHeight}
}

func (m Monospace) Measure(text string, font layout.Font) (width, height float64) {
	height = font.Height()
	return m.CharWidth(font) * float64(utf8.RuneCountInString(text)), height
}

// CharWidth is the advance of one character.
func (m Monospace) CharWidth(font layout.Font) float64 {
	return m.WidthToHeight * font.Height()
}

// Chars is how many characters fit width.
func (m Monospace) Chars(width float64, font layout.Font) int {
	return int(width / m.CharWidth(font))
}
