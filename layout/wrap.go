package layout

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/rigelrozanski/chordsheet/song"
)

// errUnwrappable marks a verse that has no cut point narrow enough.
var errUnwrappable = errors.New("no cut point fits the column")

// labelPadding is the space around a chord name inside its box, relative
// to the chord font height.
const labelPadding = 0.3

// measuredLabel is an inline chord, x relative to the start of its line.
type measuredLabel struct {
	name  string
	chord song.Chord
	x, w  float64
}

// measuredLine is one wrapped segment of a verse.
type measuredLine struct {
	text   string
	width  float64
	labels []measuredLabel
}

// chordName spells a chord for display.
func (e *Engine) chordName(name string, c song.Chord) string {
	if e.respell {
		return c.Name(e.notation)
	}
	return name
}

// measureLine measures v as a single line. A chord sits above the
// character at its offset. Past the end of the text the offset is
// measured as if the text went on with "x" characters, and a label never
// overlaps the label before it.
func (e *Engine) measureLine(v song.Verse) measuredLine {
	st := e.style
	l := measuredLine{text: v.Text()}
	if l.text != "" {
		l.width, _ = e.measurer.Measure(l.text, st.LyricsFont)
	}
	runes := []rune(l.text)
	pad := st.LyricsChordFont.Height() * labelPadding
	prevEnd := 0.0
	for i, c := range v.Chords() {
		prefix := ""
		if c.Index <= len(runes) {
			prefix = string(runes[:c.Index])
		} else {
			prefix = l.text + strings.Repeat("x", c.Index-len(runes))
		}
		var x float64
		if prefix != "" {
			x, _ = e.measurer.Measure(prefix, st.LyricsFont)
		}
		if i > 0 {
			x = maxOf(x, prevEnd)
		}
		name := e.chordName(c.Name, c.Chord)
		w, _ := e.measurer.Measure(name, st.LyricsChordFont)
		w += 2 * pad
		l.labels = append(l.labels, measuredLabel{name: name, chord: c.Chord, x: x, w: w})
		prevEnd = x + w
		l.width = maxOf(l.width, prevEnd)
	}
	return l
}

// wrap breaks v into lines no wider than width.
func (e *Engine) wrap(v song.Verse, width float64) ([]measuredLine, error) {
	var lines []measuredLine
	rest := v
	for {
		whole := e.measureLine(rest)
		if whole.width <= width {
			return append(lines, whole), nil
		}
		head, tail, ok := e.fitHead(rest, width)
		if !ok {
			return nil, &LayoutError{
				Msg: fmt.Sprintf("%q is wider than the column (%.1fmm)", excerpt(rest), width),
				Err: errUnwrappable,
			}
		}
		lines = append(lines, head)
		rest = tail
	}
}

// fitHead finds the longest head of v that fits width. Whole words are
// dropped from the end first, then every cut point is tried from the
// right.
func (e *Engine) fitHead(v song.Verse, width float64) (measuredLine, song.Verse, bool) {
	for n := 1; ; n++ {
		left, right, err := v.SplitByWords(n, true)
		if err != nil {
			break
		}
		if l := e.measureLine(left); l.width <= width {
			return l, right, true
		}
	}
	cuts := v.PossibleCutIndexes()
	for i := len(cuts) - 1; i >= 0; i-- {
		left, right := v.SplitByIndex(cuts[i])
		if l := e.measureLine(left); l.width <= width {
			return l, right, true
		}
	}
	return measuredLine{}, song.Verse{}, false
}

func excerpt(v song.Verse) string {
	s := strings.TrimSpace(v.Text())
	if s == "" {
		s = v.ChordLine()
	}
	if utf8.RuneCountInString(s) > 24 {
		s = string([]rune(s)[:24]) + "..."
	}
	return s
}
