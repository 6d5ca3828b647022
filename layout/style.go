package layout

import (
	"fmt"
	"sort"
	"strings"

	"github.com/rigelrozanski/chordsheet/song"
)

// PointsToMM converts a font size in points to millimetres.
const PointsToMM = 0.3527777778

// Font selects a typeface. Family and Style use the PDF core font names
// ("Helvetica", "B", "I", "BI").
type Font struct {
	Family string  `yaml:"family"`
	Style  string  `yaml:"style"`
	Size   float64 `yaml:"size"` // points
}

// Height is the nominal line height of the font in millimetres.
func (f Font) Height() float64 { return f.Size * PointsToMM }

// Alignment is the horizontal alignment of lyric lines in their column.
type Alignment string

const (
	AlignLeft   Alignment = "left"
	AlignCenter Alignment = "center"
	AlignRight  Alignment = "right"
)

// PageFormat is a paper size in millimetres, portrait.
type PageFormat struct {
	Name   string
	Width  float64
	Height float64
}

var pageFormats = map[string]PageFormat{
	"a0":     {"A0", 841, 1189},
	"a1":     {"A1", 594, 841},
	"a2":     {"A2", 420, 594},
	"a3":     {"A3", 297, 420},
	"a4":     {"A4", 210, 297},
	"a5":     {"A5", 148, 210},
	"a6":     {"A6", 105, 148},
	"letter": {"Letter", 215.9, 279.4},
	"legal":  {"Legal", 215.9, 355.6},
}

// PageFormats lists the known page format names.
func PageFormats() []string {
	var names []string
	for _, f := range pageFormats {
		names = append(names, f.Name)
	}
	sort.Strings(names)
	return names
}

// LookupPageFormat finds a page format by case-insensitive name.
func LookupPageFormat(name string) (PageFormat, error) {
	f, found := pageFormats[strings.ToLower(strings.TrimSpace(name))]
	if !found {
		return PageFormat{}, fmt.Errorf("unknown page format %q, want one of %s",
			name, strings.Join(PageFormats(), ", "))
	}
	return f, nil
}

// Style holds every setting of the layout. The zero value is not usable,
// start from DefaultStyle. Lengths are millimetres.
type Style struct {
	PageFormat string `yaml:"page_format"`
	Landscape  bool   `yaml:"landscape"`
	// Notation re-spells chord names, empty keeps them as written.
	Notation  string `yaml:"notation"`
	LeftHand  bool   `yaml:"lefthand"`
	Grayscale bool   `yaml:"grayscale"`
	// Vertical puts the chord grid in a band on the right of the page
	// instead of a band under the title.
	Vertical       bool `yaml:"vertical"`
	ChordsAllPages bool `yaml:"chords_all_pages"`
	DisableTitle   bool `yaml:"disable_title"`
	// Columns pins the number of lyric columns, 0 searches for it.
	Columns int `yaml:"columns"`

	TitleHeight  float64 `yaml:"title_height"`
	TitleFont    Font    `yaml:"title_font"`
	ComposerFont Font    `yaml:"composer_font"`

	ChordFont       Font    `yaml:"chords_font"`
	FretSpacing     float64 `yaml:"fret_spacing"`
	StringSpacing   float64 `yaml:"string_spacing"`
	FirstFretHeight float64 `yaml:"first_fret_height"`
	FretHeight      float64 `yaml:"fret_height"`
	StringWidth     float64 `yaml:"string_width"`
	FingerRadius    float64 `yaml:"finger_radius"`
	ChordsMargin    float64 `yaml:"chords_margin"`

	LyricsFont        Font      `yaml:"lyrics_font"`
	LyricsChordFont   Font      `yaml:"lyrics_chords_font"`
	LyricsLineSpacing float64   `yaml:"lyrics_line_spacing"`
	LyricsMargin      float64   `yaml:"lyrics_margin"`
	LyricsAlign       Alignment `yaml:"lyrics_ha"`
	// MaxWrapRatio is the share of extra wrapped lines per placed verse
	// above which an added column is refused.
	MaxWrapRatio float64 `yaml:"max_wrap_ratio"`
}

// DefaultStyle is an A4 portrait page with ukulele sized diagrams.
func DefaultStyle() Style {
	return Style{
		PageFormat: "A4",

		TitleHeight:  25,
		TitleFont:    Font{Family: "Times", Style: "B", Size: 30},
		ComposerFont: Font{Family: "Times", Style: "I", Size: 10},

		ChordFont:       Font{Family: "Helvetica", Style: "B", Size: 8},
		FretSpacing:     3.5,
		StringSpacing:   3.5,
		FirstFretHeight: 1.5,
		FretHeight:      0.5,
		StringWidth:     0.5,
		FingerRadius:    1,
		ChordsMargin:    4,

		LyricsFont:        Font{Family: "Helvetica", Size: 10},
		LyricsChordFont:   Font{Family: "Helvetica", Style: "B", Size: 6},
		LyricsLineSpacing: 10,
		LyricsMargin:      3,
		LyricsAlign:       AlignCenter,
		MaxWrapRatio:      0.2,
	}
}

// PageSize is the page width and height after orientation.
func (s Style) PageSize() (width, height float64, err error) {
	f, err := LookupPageFormat(s.PageFormat)
	if err != nil {
		return 0, 0, err
	}
	if s.Landscape {
		return f.Height, f.Width, nil
	}
	return f.Width, f.Height, nil
}

// ChordNotation resolves Notation. ok is false when names are kept as
// written.
func (s Style) ChordNotation() (n song.Notation, ok bool, err error) {
	if s.Notation == "" {
		return 0, false, nil
	}
	n, err = song.ParseNotation(s.Notation)
	return n, err == nil, err
}

// Validate reports the first setting that cannot be laid out.
func (s Style) Validate() error {
	if _, _, err := s.PageSize(); err != nil {
		return err
	}
	if _, _, err := s.ChordNotation(); err != nil {
		return err
	}
	switch s.LyricsAlign {
	case AlignLeft, AlignCenter, AlignRight:
	default:
		return fmt.Errorf("unknown lyrics alignment %q", s.LyricsAlign)
	}
	if s.Columns < 0 {
		return fmt.Errorf("columns must not be negative, have %d", s.Columns)
	}
	for _, c := range []struct {
		name string
		v    float64
	}{
		{"lyrics_line_spacing", s.LyricsLineSpacing},
		{"fret_spacing", s.FretSpacing},
		{"string_spacing", s.StringSpacing},
		{"lyrics_font.size", s.LyricsFont.Size},
		{"chords_font.size", s.ChordFont.Size},
	} {
		if c.v <= 0 {
			return fmt.Errorf("%s must be positive, have %v", c.name, c.v)
		}
	}
	return nil
}
