package layout

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/rigelrozanski/chordsheet/song"
)

// Color is an sRGB color.
type Color struct {
	R, G, B uint8
}

func fromColorful(c colorful.Color) Color {
	r, g, b := c.Clamped().RGB255()
	return Color{r, g, b}
}

func (c Color) toColorful() colorful.Color {
	return colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
}

func (c Color) Hex() string { return c.toColorful().Hex() }

// Gray converts c to its luma with the Rec. 601 weights.
func (c Color) Gray() Color {
	l := 0.2989*float64(c.R) + 0.5870*float64(c.G) + 0.1140*float64(c.B)
	v := uint8(math.Round(l))
	return Color{v, v, v}
}

// Tint mixes c with white, amount 0 keeps c and 1 gives white.
func (c Color) Tint(amount float64) Color {
	return fromColorful(c.toColorful().BlendRgb(colorful.Color{R: 1, G: 1, B: 1}, amount))
}

// MaxPaletteSize is the largest palette, songs with more chords reuse
// its colors in order.
const MaxPaletteSize = 20

// palettes[n] holds n colors spread around the hue circle, alternating
// saturation and value so that neighbours stay apart on small palettes.
var palettes = buildPalettes()

func buildPalettes() [][]Color {
	out := make([][]Color, MaxPaletteSize+1)
	for n := 1; n <= MaxPaletteSize; n++ {
		p := make([]Color, n)
		for i := range p {
			s, v := 0.65, 0.95
			if i%2 == 1 {
				s, v = 0.85, 0.75
			}
			p[i] = fromColorful(colorful.Hsv(360*float64(i)/float64(n), s, v))
		}
		out[n] = p
	}
	return out
}

// Palette returns the palette used for a song of n distinct chords.
func Palette(n int) []Color {
	switch {
	case n < 1:
		return nil
	case n > MaxPaletteSize:
		n = MaxPaletteSize
	}
	return append([]Color(nil), palettes[n]...)
}

// AssignColors gives every chord a color in order of first appearance.
// The same chords in the same order always get the same colors.
func AssignColors(chords []song.ChordUse, grayscale bool) map[song.Identity]Color {
	palette := Palette(len(chords))
	out := make(map[song.Identity]Color, len(chords))
	for i, c := range chords {
		col := palette[i%len(palette)]
		if grayscale {
			col = col.Gray()
		}
		out[c.Chord.Identity()] = col
	}
	return out
}
