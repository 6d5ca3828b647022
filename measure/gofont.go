package measure

import (
	"fmt"
	"strings"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gobolditalic"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"

	"github.com/rigelrozanski/chordsheet/layout"
)

type faceKey struct {
	mono, bold, italic bool
	size               float64
}

// GoFont measures text with the outline metrics of the Go fonts. Courier
// maps to Go Mono, every other family to the proportional Go fonts, which
// is close enough to Helvetica and Times to lay a page out without a PDF.
type GoFont struct {
	regular    *opentype.Font
	bold       *opentype.Font
	italic     *opentype.Font
	boldItalic *opentype.Font
	mono       *opentype.Font

	mtx   sync.Mutex
	faces map[faceKey]font.Face
}

var _ layout.TextMeasurer = (*GoFont)(nil)

func NewGoFont() (*GoFont, error) {
	g := &GoFont{faces: map[faceKey]font.Face{}}
	for _, src := range []struct {
		dst **opentype.Font
		ttf []byte
		tag string
	}{
		{&g.regular, goregular.TTF, "regular"},
		{&g.bold, gobold.TTF, "bold"},
		{&g.italic, goitalic.TTF, "italic"},
		{&g.boldItalic, gobolditalic.TTF, "bold italic"},
		{&g.mono, gomono.TTF, "mono"},
	} {
		f, err := opentype.Parse(src.ttf)
		if err != nil {
			return nil, fmt.Errorf("parse go %s font: %w", src.tag, err)
		}
		*src.dst = f
	}
	return g, nil
}

func (g *GoFont) Measure(text string, f layout.Font) (width, height float64) {
	height = f.Height()
	if text == "" {
		return 0, height
	}
	face, err := g.face(f)
	if err != nil {
		return Courier().Measure(text, f)
	}
	g.mtx.Lock()
	adv := font.MeasureString(face, text)
	g.mtx.Unlock()
	// faces are opened at 72 dpi so one pixel is one point
	return float64(adv) / 64 * layout.PointsToMM, height
}

func (g *GoFont) face(f layout.Font) (font.Face, error) {
	style := strings.ToUpper(f.Style)
	key := faceKey{
		mono:   strings.EqualFold(f.Family, "courier"),
		bold:   strings.Contains(style, "B"),
		italic: strings.Contains(style, "I"),
		size:   f.Size,
	}

	g.mtx.Lock()
	defer g.mtx.Unlock()
	if face, found := g.faces[key]; found {
		return face, nil
	}
	var base *opentype.Font
	switch {
	case key.mono:
		base = g.mono
	case key.bold && key.italic:
		base = g.boldItalic
	case key.bold:
		base = g.bold
	case key.italic:
		base = g.italic
	default:
		base = g.regular
	}
	face, err := opentype.NewFace(base, &opentype.FaceOptions{
		Size:    f.Size,
		DPI:     72,
		Hinting: font.HintingNone,
	})
	if err != nil {
		return nil, err
	}
	g.faces[key] = face
	return face, nil
}
