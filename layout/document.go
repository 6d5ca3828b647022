package layout

import "github.com/rigelrozanski/chordsheet/song"

// Document is a song laid out on pages, ready for a renderer.
type Document struct {
	Name   string
	Width  float64
	Height float64
	Pages  []Page
}

// Page is one page of a Document.
type Page struct {
	Number   int
	Title    *TitleBlock
	Diagrams []DiagramMarks
	Columns  []Column
	// Chords used by the verses placed on this page.
	Chords []song.ChordUse
}

// TitleBlock is the heading of the first page.
type TitleBlock struct {
	Bounds  Bounds
	Heading Glyph
	// Sub holds the composer and capo, nil when neither is set.
	Sub *Glyph
}

// Column is one lyric column of a page.
type Column struct {
	Bounds Bounds
	Lines  []Line
	// Verses are the indexes into Song.Verses placed in this column,
	// blank markers included.
	Verses []int
}

// Line is one wrapped line of a verse.
type Line struct {
	Verse int
	Text  string
	Font  Font
	// X is the left edge of the text, Y its vertical centre.
	X, Y   float64
	Width  float64
	Labels []Label
}

// Label is an inline chord name drawn in a tinted box.
type Label struct {
	Glyph
	Chord song.Chord
	Box   Rect
	Color Color
}

// Verses lists every verse index placed on the page.
func (p Page) Verses() []int {
	var out []int
	for _, c := range p.Columns {
		out = append(out, c.Verses...)
	}
	return out
}
