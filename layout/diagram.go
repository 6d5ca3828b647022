package layout

import (
	"strconv"

	"github.com/rigelrozanski/chordsheet/instrument"
)

// Diagram is the geometry of one chord diagram for an instrument.
type Diagram struct {
	strings int
	frets   int
	style   Style
}

func NewDiagram(inst instrument.Profile, style Style) Diagram {
	return Diagram{
		strings: inst.Strings(),
		frets:   inst.Frets(),
		style:   style,
	}
}

// Width of the fretboard.
func (d Diagram) Width() float64 {
	return float64(d.strings-1)*d.style.StringSpacing + d.style.StringWidth
}

// titleHeight is the band holding the chord name.
func (d Diagram) titleHeight() float64 {
	return d.style.ChordFont.Height()
}

// muteRowHeight is the band above the nut holding x and o marks.
func (d Diagram) muteRowHeight() float64 {
	return d.style.FretSpacing
}

// Height of the whole diagram, chord name included.
func (d Diagram) Height() float64 {
	return float64(d.frets)*d.style.FretSpacing + d.style.FirstFretHeight +
		d.muteRowHeight() + d.titleHeight()
}

// CellSize is the grid cell taken by one diagram, margins included.
func (d Diagram) CellSize() (width, height float64) {
	m := 2 * d.style.ChordsMargin
	return d.Width() + m, d.Height() + m
}

// Offset is how many frets the window is shifted so that f fits.
func (d Diagram) Offset(f instrument.Fingering) int {
	if over := f.MaxFret() - d.frets; over > 0 {
		return over
	}
	return 0
}

// fretZeroY is the centre of the first fret row below a diagram drawn at y.
func (d Diagram) fretZeroY(y float64) float64 {
	return y + d.titleHeight() + d.muteRowHeight() + d.style.FirstFretHeight -
		d.style.FretHeight/2 + d.style.FretSpacing/2
}

// FingerY is the centre of the dot for fret on a diagram drawn at y.
func (d Diagram) FingerY(y float64, fret, offset int) float64 {
	return d.fretZeroY(y) + float64(fret-1-offset)*d.style.FretSpacing
}

// Rect is a filled rectangle.
type Rect struct {
	X, Y, W, H float64
}

// Dot is a filled circle.
type Dot struct {
	X, Y, R float64
}

// Glyph is text centred on a point.
type Glyph struct {
	X, Y float64
	Text string
	Font Font
}

// DiagramMarks is everything drawn for one chord diagram.
type DiagramMarks struct {
	Name   string
	Color  Color
	Cell   Bounds
	Label  Glyph
	Nut    Rect
	Frets  []Rect
	Lines  []Rect // strings
	Dots   []Dot
	Marks  []Glyph // muted and open strings
	Offset *Glyph  // fret number of the first row when shifted
}

// Place lays out the diagram for f with its top left corner at x, y,
// inside the chord margins.
func (d Diagram) Place(x, y float64, name string, f instrument.Fingering) DiagramMarks {
	st := d.style
	if st.LeftHand {
		f = f.Reversed()
	}
	width := d.Width()
	m := DiagramMarks{
		Name: name,
		Cell: Bounds{
			Top:    y - st.ChordsMargin,
			Left:   x - st.ChordsMargin,
			Bottom: y + d.Height() + st.ChordsMargin,
			Right:  x + width + st.ChordsMargin,
		},
		Label: Glyph{X: x + width/2, Y: y + d.titleHeight()/2, Text: name, Font: st.ChordFont},
	}

	nutY := y + d.titleHeight() + d.muteRowHeight()
	m.Nut = Rect{x, nutY, width, st.FirstFretHeight}
	boardY := nutY + st.FirstFretHeight - st.FretHeight/2
	for k := 1; k <= d.frets; k++ {
		fy := boardY + st.FretSpacing*float64(k) - st.FretHeight/2
		m.Frets = append(m.Frets, Rect{x, fy, width, st.FretHeight})
	}
	for k := 0; k < d.strings; k++ {
		sx := x + st.StringSpacing*float64(k)
		m.Lines = append(m.Lines, Rect{sx, boardY, st.StringWidth, float64(d.frets) * st.FretSpacing})
	}

	offset := d.Offset(f)
	stringZeroX := x + st.StringWidth/2
	if offset > 0 {
		m.Offset = &Glyph{
			X:    stringZeroX - st.StringSpacing,
			Y:    d.FingerY(y, offset+1, offset),
			Text: strconv.Itoa(offset + 1),
			Font: st.ChordFont,
		}
	}
	markY := y + d.titleHeight() + d.muteRowHeight()/2
	for i, p := range f {
		sx := stringZeroX + float64(i)*st.StringSpacing
		switch {
		case p == instrument.Muted:
			m.Marks = append(m.Marks, Glyph{X: sx, Y: markY, Text: "x", Font: st.ChordFont})
		case p == instrument.Open:
			m.Marks = append(m.Marks, Glyph{X: sx, Y: markY, Text: "o", Font: st.ChordFont})
		default:
			m.Dots = append(m.Dots, Dot{X: sx, Y: d.FingerY(y, p, offset), R: st.FingerRadius})
		}
	}
	return m
}
