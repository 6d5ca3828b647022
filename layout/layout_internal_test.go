package layout

import (
	"errors"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rigelrozanski/chordsheet/instrument"
	"github.com/rigelrozanski/chordsheet/song"
)

// oneMM measures one millimetre per character.
type oneMM struct{ calls int }

func (m *oneMM) Measure(text string, font Font) (float64, float64) {
	m.calls++
	return float64(utf8.RuneCountInString(text)), font.Height()
}

func uke(t *testing.T) instrument.Profile {
	t.Helper()
	inst, err := instrument.Lookup("ukulele")
	require.NoError(t, err)
	return inst
}

func testEngine(t *testing.T) *Engine {
	t.Helper()
	e, err := NewEngine(uke(t), &oneMM{}, DefaultStyle())
	require.NoError(t, err)
	return e
}

func verse(t *testing.T, chords, text string) song.Verse {
	t.Helper()
	v, err := song.NewVerse(text, chords)
	require.NoError(t, err)
	return v
}

func TestStyle(t *testing.T) {
	assert := assert.New(t)

	st := DefaultStyle()
	assert.NoError(st.Validate())
	w, h, err := st.PageSize()
	assert.NoError(err)
	assert.Equal(210.0, w)
	assert.Equal(297.0, h)

	st.Landscape = true
	st.PageFormat = "letter"
	w, h, err = st.PageSize()
	assert.NoError(err)
	assert.Equal(279.4, w)
	assert.Equal(215.9, h)

	st.PageFormat = "B5"
	assert.Error(st.Validate())

	st = DefaultStyle()
	st.LyricsAlign = "justify"
	assert.Error(st.Validate())

	st = DefaultStyle()
	st.Notation = "syllabic"
	n, ok, err := st.ChordNotation()
	assert.NoError(err)
	assert.True(ok)
	assert.Equal(song.Syllabic, n)
}

func TestSplitColumns(t *testing.T) {
	cols := Bounds{Top: 10, Left: 0, Bottom: 100, Right: 90}.SplitColumns(3)
	require.Len(t, cols, 3)
	assert.Equal(t, Bounds{10, 30, 100, 60}, cols[1])
	assert.Equal(t, 30.0, cols[2].Width())
	assert.Equal(t, 90.0, cols[2].Height())
	assert.Equal(t, Bounds{12, 32, 98, 58}, cols[1].Inset(2))
}

func TestPackGrid(t *testing.T) {
	assert := assert.New(t)

	g, err := PackGrid(7, 10, 10, 50, 40, false)
	assert.NoError(err)
	assert.Equal(Grid{Rows: 2, Columns: 5}, g)

	g, err = PackGrid(7, 10, 10, 50, 40, true)
	assert.NoError(err)
	assert.Equal(Grid{Rows: 4, Columns: 2}, g)

	g, err = PackGrid(3, 10, 10, 50, 40, false)
	assert.NoError(err)
	assert.Equal(Grid{Rows: 1, Columns: 3}, g)

	g, err = PackGrid(20, 10, 10, 50, 40, false)
	assert.NoError(err)
	assert.Equal(20, g.Capacity())

	_, err = PackGrid(21, 10, 10, 50, 40, false)
	assert.True(errors.Is(err, ErrLayout))
	assert.ErrorContains(err, "21 chords, room for 20")

	g, err = PackGrid(0, 10, 10, 5, 5, false)
	assert.NoError(err)
	assert.Zero(g.Capacity())
}

func TestGridCells(t *testing.T) {
	g := Grid{Rows: 2, Columns: 3}
	x, y := g.cell(4, 0, 0, 10, 20, false)
	assert.Equal(t, 10.0, x)
	assert.Equal(t, 20.0, y)
	x, y = g.cell(4, 0, 0, 10, 20, true)
	assert.Equal(t, 20.0, x)
	assert.Equal(t, 0.0, y)
}

func TestDiagramSize(t *testing.T) {
	d := NewDiagram(uke(t), DefaultStyle())
	assert.InDelta(t, 11, d.Width(), 1e-9)
	assert.InDelta(t, 4*3.5+1.5+3.5+8*PointsToMM, d.Height(), 1e-9)
	w, h := d.CellSize()
	assert.InDelta(t, 19, w, 1e-9)
	assert.InDelta(t, d.Height()+8, h, 1e-9)
}

func TestDiagramPlace(t *testing.T) {
	assert := assert.New(t)
	st := DefaultStyle()
	d := NewDiagram(uke(t), st)

	m := d.Place(10, 20, "C", instrument.Fingering{0, 0, 0, 3})
	assert.Equal("C", m.Label.Text)
	assert.Len(m.Frets, 4)
	assert.Len(m.Lines, 4)
	assert.Len(m.Marks, 3)
	for _, g := range m.Marks {
		assert.Equal("o", g.Text)
	}
	require.Len(t, m.Dots, 1)
	assert.InDelta(10+0.25+3*3.5, m.Dots[0].X, 1e-9)
	assert.InDelta(d.FingerY(20, 3, 0), m.Dots[0].Y, 1e-9)
	assert.InDelta(d.FingerY(20, 1, 0)+2*st.FretSpacing, m.Dots[0].Y, 1e-9)
	assert.Nil(m.Offset)
	assert.Equal(Bounds{16, 6, 20 + d.Height() + 4, 10 + d.Width() + 4}, m.Cell)

	// the dot of the first fret sits between the nut and the first fret
	assert.Greater(d.FingerY(20, 1, 0), m.Nut.Y+m.Nut.H)
	assert.Less(d.FingerY(20, 1, 0), m.Frets[0].Y)
}

func TestDiagramOffset(t *testing.T) {
	assert := assert.New(t)
	d := NewDiagram(uke(t), DefaultStyle())

	f := instrument.Fingering{instrument.Muted, 7, 8, 10}
	assert.Equal(6, d.Offset(f))
	m := d.Place(0, 0, "X", f)
	require.NotNil(t, m.Offset)
	assert.Equal("7", m.Offset.Text)
	require.Len(t, m.Dots, 3)
	assert.InDelta(d.FingerY(0, 1, 0), m.Dots[0].Y, 1e-9)
	assert.InDelta(d.FingerY(0, 4, 0), m.Dots[2].Y, 1e-9)
	require.Len(t, m.Marks, 1)
	assert.Equal("x", m.Marks[0].Text)
}

func TestDiagramLeftHand(t *testing.T) {
	st := DefaultStyle()
	st.LeftHand = true
	d := NewDiagram(uke(t), st)

	m := d.Place(0, 0, "C", instrument.Fingering{0, 0, 0, 3})
	require.Len(t, m.Dots, 1)
	assert.InDelta(t, 0.25, m.Dots[0].X, 1e-9)
	// fret numbering is unchanged
	assert.InDelta(t, d.FingerY(0, 3, 0), m.Dots[0].Y, 1e-9)
}

func TestColors(t *testing.T) {
	assert := assert.New(t)

	assert.Len(Palette(3), 3)
	assert.Len(Palette(25), MaxPaletteSize)
	assert.Nil(Palette(0))

	var uses []song.ChordUse
	for _, name := range []string{"C", "G", "Am", "F"} {
		c, err := song.ParseChord(name)
		require.NoError(t, err)
		uses = append(uses, song.ChordUse{Name: name, Chord: c, Count: 1})
	}
	colors := AssignColors(uses, false)
	assert.Len(colors, 4)
	seen := map[Color]bool{}
	for _, u := range uses {
		seen[colors[u.Chord.Identity()]] = true
	}
	assert.Len(seen, 4)
	assert.Equal(colors, AssignColors(uses, false))

	for _, c := range AssignColors(uses, true) {
		assert.Equal(c.R, c.G)
		assert.Equal(c.G, c.B)
	}

	assert.Equal(Color{255, 255, 255}, Color{255, 255, 255}.Gray())
	assert.Equal(Color{0, 0, 0}, Color{0, 0, 0}.Gray())
	assert.Equal(Color{255, 255, 255}, Color{10, 20, 30}.Tint(1))
	assert.Equal("#0a141e", Color{10, 20, 30}.Hex())
	assert.Equal(Color{128, 128, 128}, Color{0, 0, 0}.Tint(0.5))
}

func TestPaletteHues(t *testing.T) {
	assert := assert.New(t)
	// red at full hue, then the opposite hue darker and more saturated
	assert.Equal([]Color{{242, 85, 85}}, Palette(1))
	assert.Equal([]Color{{242, 85, 85}, {29, 191, 191}}, Palette(2))
	// palettes differ by size, so two chords do not share the hues of three
	assert.NotEqual(Palette(2)[1], Palette(3)[1])
}

func TestPaletteCycles(t *testing.T) {
	keys := []string{"C", "D", "E", "F", "G", "A", "B"}
	var uses []song.ChordUse
	for _, sfx := range []string{"", "m", "7"} {
		for _, k := range keys {
			c, err := song.ParseChord(k + sfx)
			require.NoError(t, err)
			uses = append(uses, song.ChordUse{Name: k + sfx, Chord: c})
		}
	}
	require.Len(t, uses, 21)
	colors := AssignColors(uses, false)
	assert.Equal(t, colors[uses[0].Chord.Identity()], colors[uses[20].Chord.Identity()])
	assert.NotEqual(t, colors[uses[0].Chord.Identity()], colors[uses[19].Chord.Identity()])
}

func TestCachedMeasurer(t *testing.T) {
	inner := &oneMM{}
	c := NewCachedMeasurer(inner)
	f := Font{Family: "Helvetica", Size: 10}

	w, _ := c.Measure("hello", f)
	assert.Equal(t, 5.0, w)
	w, _ = c.Measure("hello", f)
	assert.Equal(t, 5.0, w)
	c.Measure("hello", Font{Family: "Helvetica", Size: 12})

	assert.Equal(t, 2, inner.calls)
	hits, misses := c.Stats()
	assert.Equal(t, 1, hits)
	assert.Equal(t, 2, misses)
}

func TestCachedMeasurerEvictsOldest(t *testing.T) {
	inner := &oneMM{}
	c := NewCachedMeasurerSize(inner, 2)
	f := Font{Family: "Helvetica", Size: 10}

	c.Measure("a", f)
	c.Measure("bb", f)
	c.Measure("a", f) // "bb" is now the oldest
	c.Measure("ccc", f)
	assert.Equal(t, 2, c.Len())
	assert.Equal(t, 3, inner.calls)

	c.Measure("a", f)
	assert.Equal(t, 3, inner.calls)
	w, _ := c.Measure("bb", f)
	assert.Equal(t, 2.0, w)
	assert.Equal(t, 4, inner.calls)
}

func TestMeasureLine(t *testing.T) {
	assert := assert.New(t)
	e := testEngine(t)
	pad := e.style.LyricsChordFont.Height() * labelPadding

	l := e.measureLine(verse(t, "C   G", "Hello world"))
	assert.Equal("Hello world", l.text)
	assert.Equal(11.0, l.width)
	require.Len(t, l.labels, 2)
	assert.Equal(0.0, l.labels[0].x)
	assert.Equal(4.0, l.labels[1].x)
	assert.InDelta(1+2*pad, l.labels[1].w, 1e-9)

	// past the end of the text
	l = e.measureLine(verse(t, "C        G", "Hi"))
	require.Len(t, l.labels, 2)
	assert.Equal(9.0, l.labels[1].x)
	assert.InDelta(10+2*pad, l.width, 1e-9)

	// labels do not overlap
	l = e.measureLine(verse(t, "Cmaj7 G", "one two three"))
	require.Len(t, l.labels, 2)
	assert.InDelta(l.labels[0].w, l.labels[1].x, 1e-9)
}

func TestWrapKeepsChordsWithWords(t *testing.T) {
	assert := assert.New(t)
	e := testEngine(t)

	lines, err := e.wrap(verse(t, "C     G     Am", "hello there world"), 12)
	require.NoError(t, err)
	require.Len(t, lines, 2)
	assert.Equal("hello there", lines[0].text)
	assert.Equal("world", lines[1].text)
	require.Len(t, lines[0].labels, 2)
	require.Len(t, lines[1].labels, 1)
	assert.Equal("Am", lines[1].labels[0].name)
	assert.Equal(0.0, lines[1].labels[0].x)

	lines, err = e.wrap(verse(t, "C     G     Am", "hello there world"), 40)
	require.NoError(t, err)
	assert.Len(lines, 1)
}

func TestWrapChordOnlyVerse(t *testing.T) {
	e := testEngine(t)
	lines, err := e.wrap(verse(t, "C G Am F", ""), 10)
	require.NoError(t, err)
	require.Len(t, lines, 2)
	assert.Len(t, lines[0].labels, 3)
	assert.Len(t, lines[1].labels, 1)
	assert.Equal(t, "F", lines[1].labels[0].name)
}

func TestWrapFailsFast(t *testing.T) {
	e := testEngine(t)
	_, err := e.wrap(verse(t, "", "supercalifragilistic"), 10)
	assert.True(t, errors.Is(err, errUnwrappable))
	assert.True(t, errors.Is(err, ErrLayout))
}

func TestRespelledNames(t *testing.T) {
	st := DefaultStyle()
	st.Notation = "german"
	e, err := NewEngine(uke(t), &oneMM{}, st)
	require.NoError(t, err)

	l := e.measureLine(verse(t, "Bb B", "one two"))
	require.Len(t, l.labels, 2)
	assert.Equal(t, "Hb", l.labels[0].name)
	assert.Equal(t, "H", l.labels[1].name)
}
