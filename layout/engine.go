package layout

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/rigelrozanski/chordsheet/instrument"
	"github.com/rigelrozanski/chordsheet/song"
)

// Engine lays songs out on pages. An Engine holds no per-song state and
// may lay out several songs one after the other.
type Engine struct {
	style    Style
	inst     instrument.Profile
	measurer TextMeasurer
	logger   *slog.Logger

	notation song.Notation
	respell  bool
	diagram  Diagram
	pageW    float64
	pageH    float64
}

type Option func(*Engine)

// WithLogger sets the logger, nil discards.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

func NewEngine(inst instrument.Profile, m TextMeasurer, style Style, opts ...Option) (*Engine, error) {
	if err := style.Validate(); err != nil {
		return nil, fmt.Errorf("invalid style: %w", err)
	}
	e := &Engine{
		style:    style,
		inst:     inst,
		measurer: m,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		diagram:  NewDiagram(inst, style),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.pageW, e.pageH, _ = style.PageSize()
	e.notation, e.respell, _ = style.ChordNotation()
	return e, nil
}

type chordDiagram struct {
	name      string
	fingering instrument.Fingering
	color     Color
}

// Layout places the song on as many pages as it needs. name is used in
// errors only. Either every verse is placed or an error is returned.
func (e *Engine) Layout(name string, s *song.Song) (*Document, error) {
	chords := s.ChordsUsed()
	colors := AssignColors(chords, e.style.Grayscale)
	diagrams := make([]chordDiagram, 0, len(chords))
	for _, c := range chords {
		f, err := e.inst.Fingering(c.Chord)
		if err != nil {
			return nil, &LayoutError{Path: name, Msg: "no diagram for " + c.Name, Err: err}
		}
		diagrams = append(diagrams, chordDiagram{
			name:      e.chordName(c.Name, c.Chord),
			fingering: f,
			color:     colors[c.Chord.Identity()],
		})
	}

	doc := &Document{Name: name, Width: e.pageW, Height: e.pageH}
	placed, total := 0, len(s.Verses)
	for n := 1; n == 1 || placed < total; n++ {
		page, region, err := e.frame(n, s, diagrams)
		if err != nil {
			return nil, annotate(err, name, n)
		}
		body, err := e.layoutBody(s.Verses, placed, region, n)
		if err != nil {
			if !errors.Is(err, errUnwrappable) || !e.widerNext(n, s, diagrams, region) {
				return nil, annotate(err, name, n)
			}
			e.logger.Info("verse deferred to a wider page",
				"song", name, "page", n, "verse", placed+1, "width", region.Width())
			body = bodyResult{}
		}
		if body.placed == 0 && placed < total {
			_, next, err := e.frame(n+1, s, diagrams)
			if err != nil || !(next.Height() > region.Height() || next.Width() > region.Width()) {
				return nil, &LayoutError{
					Path:  name,
					Page:  n,
					Verse: placed + 1,
					Msg:   "verse does not fit on an empty page",
				}
			}
		}
		for _, col := range body.columns {
			for _, l := range col.Lines {
				for i := range l.Labels {
					l.Labels[i].Color = colors[l.Labels[i].Chord.Identity()]
				}
			}
		}
		page.Columns = body.columns
		page.Chords = song.ChordsUsedIn(s.Verses[placed : placed+body.placed])
		placed += body.placed
		doc.Pages = append(doc.Pages, page)

		e.logger.Info("page laid out",
			"song", name,
			"page", n,
			"columns", len(body.columns),
			"verses", body.placed,
			"wrap_ratio", body.wrapRatio())
	}
	return doc, nil
}

// widerNext reports whether page n+1 leaves a wider lyric region than
// region, as it does when only the first page carries a vertical grid.
func (e *Engine) widerNext(n int, s *song.Song, diagrams []chordDiagram, region Bounds) bool {
	_, next, err := e.frame(n+1, s, diagrams)
	return err == nil && next.Width() > region.Width()
}

// frame builds the fixed parts of page n and returns the region left for
// the lyrics.
func (e *Engine) frame(n int, s *song.Song, diagrams []chordDiagram) (Page, Bounds, error) {
	page := Page{Number: n}
	region := Bounds{Top: 0, Left: 0, Bottom: e.pageH, Right: e.pageW}
	if n == 1 && !e.style.DisableTitle {
		if tb := e.title(s); tb != nil {
			page.Title = tb
			region.Top = tb.Bounds.Bottom
		}
	}
	if (n == 1 || e.style.ChordsAllPages) && len(diagrams) > 0 {
		var err error
		region, page.Diagrams, err = e.placeGrid(region, diagrams)
		if err != nil {
			return Page{}, Bounds{}, err
		}
	}
	return page, region, nil
}

func (e *Engine) title(s *song.Song) *TitleBlock {
	heading := s.HeaderLine()
	var sub []string
	if s.Composer != "" {
		sub = append(sub, "Composed by: "+s.Composer)
	}
	if s.Capo > 0 {
		sub = append(sub, fmt.Sprintf("Capo %d", s.Capo))
	}
	if heading == "" && len(sub) == 0 {
		return nil
	}
	h := e.style.TitleHeight
	tb := &TitleBlock{
		Bounds:  Bounds{Top: 0, Left: 0, Bottom: h, Right: e.pageW},
		Heading: Glyph{X: e.pageW / 2, Y: h / 2, Text: heading, Font: e.style.TitleFont},
	}
	if len(sub) > 0 {
		text := sub[0]
		if len(sub) > 1 {
			text += "    " + sub[1]
		}
		tb.Sub = &Glyph{X: e.pageW / 2, Y: h * 4 / 5, Text: text, Font: e.style.ComposerFont}
	}
	return tb
}

// placeGrid packs the diagrams into region and returns what is left of it.
// Horizontal grids are centred in a band at the top, vertical grids take a
// band on the right.
func (e *Engine) placeGrid(region Bounds, diagrams []chordDiagram) (Bounds, []DiagramMarks, error) {
	cellW, cellH := e.diagram.CellSize()
	g, err := PackGrid(len(diagrams), cellW, cellH, region.Width(), region.Height(), e.style.Vertical)
	if err != nil {
		return Bounds{}, nil, err
	}
	gridW, gridH := float64(g.Columns)*cellW, float64(g.Rows)*cellH

	var x, y float64
	if e.style.Vertical {
		x, y = region.Right-gridW, region.Top
		region.Right = x
	} else {
		x, y = region.Left+(region.Width()-gridW)/2, region.Top
		region.Top += gridH
	}

	m := e.style.ChordsMargin
	marks := make([]DiagramMarks, 0, len(diagrams))
	for i, d := range diagrams {
		cx, cy := g.cell(i, x, y, cellW, cellH, e.style.Vertical)
		dm := e.diagram.Place(cx+m, cy+m, d.name, d.fingering)
		dm.Color = d.color
		marks = append(marks, dm)
	}
	return region, marks, nil
}

// bodyResult is one candidate layout of the lyric region of a page.
type bodyResult struct {
	columns []Column
	placed  int // verses placed, blank markers included
	wraps   int // extra lines caused by wrapping
}

func (r bodyResult) wrapRatio() float64 {
	if r.placed == 0 {
		return 0
	}
	return float64(r.wraps) / float64(r.placed)
}

// layoutBody places verses from start on in region. Unless the column
// count is pinned, columns are added one at a time while every added
// column places more verses without wrapping too much.
func (e *Engine) layoutBody(verses []song.Verse, start int, region Bounds, page int) (bodyResult, error) {
	if e.style.Columns > 0 {
		return e.placeColumns(verses, start, region, e.style.Columns)
	}
	remaining := len(verses) - start
	var accepted *bodyResult
	for cols := 1; ; cols++ {
		cand, err := e.placeColumns(verses, start, region, cols)
		if err != nil {
			if accepted != nil && errors.Is(err, errUnwrappable) {
				e.reject(page, cols, "verse does not fit the column width")
				return *accepted, nil
			}
			return bodyResult{}, err
		}
		switch {
		case cand.wrapRatio() > e.style.MaxWrapRatio:
			if accepted == nil {
				return cand, nil
			}
			e.reject(page, cols, fmt.Sprintf("wrap ratio %.2f", cand.wrapRatio()))
			return *accepted, nil
		case cand.placed == remaining:
			return cand, nil
		case accepted != nil && cand.placed <= accepted.placed:
			e.reject(page, cols, "no more verses placed")
			return *accepted, nil
		}
		accepted = &cand
	}
}

func (e *Engine) reject(page, cols int, reason string) {
	e.logger.Debug("column count rejected", "page", page, "columns", cols, "reason", reason)
}

// placeColumns fills cols columns of region with verses from start on and
// stops at the first verse that does not fit the last column.
func (e *Engine) placeColumns(verses []song.Verse, start int, region Bounds, cols int) (bodyResult, error) {
	spacing := e.style.LyricsLineSpacing
	res := bodyResult{}
	next := start
	for _, cb := range region.SplitColumns(cols) {
		inner := cb.Inset(e.style.LyricsMargin)
		col := Column{Bounds: inner}
		y := inner.Top
		for next < len(verses) {
			v := verses[next]
			if v.IsEmpty() {
				y += spacing / 2
				col.Verses = append(col.Verses, next)
				res.placed++
				next++
				continue
			}
			lines, err := e.wrap(v, inner.Width())
			if err != nil {
				var le *LayoutError
				if errors.As(err, &le) && le.Verse == 0 {
					le.Verse = next + 1
				}
				return bodyResult{}, err
			}
			if y+float64(len(lines))*spacing > inner.Bottom {
				break
			}
			for _, l := range lines {
				col.Lines = append(col.Lines, e.placeLine(l, next, inner, y))
				y += spacing
			}
			col.Verses = append(col.Verses, next)
			res.placed++
			res.wraps += len(lines) - 1
			next++
		}
		res.columns = append(res.columns, col)
	}
	return res, nil
}

// placeLine positions a measured line in the slot starting at y. The chord
// row takes the upper quarter of the slot and the text sits below it.
func (e *Engine) placeLine(l measuredLine, verse int, col Bounds, y float64) Line {
	st := e.style
	x := col.Left
	switch st.LyricsAlign {
	case AlignCenter:
		x += (col.Width() - l.width) / 2
	case AlignRight:
		x = col.Right - l.width
	}
	out := Line{
		Verse: verse,
		Text:  l.text,
		Font:  st.LyricsFont,
		X:     x,
		Y:     y + st.LyricsLineSpacing*0.7,
		Width: l.width,
	}
	boxH := st.LyricsChordFont.Height() * (1 + 2*labelPadding)
	labelY := y + st.LyricsLineSpacing/4
	for _, lb := range l.labels {
		out.Labels = append(out.Labels, Label{
			Glyph: Glyph{X: x + lb.x + lb.w/2, Y: labelY, Text: lb.name, Font: st.LyricsChordFont},
			Chord: lb.chord,
			Box:   Rect{X: x + lb.x, Y: labelY - boxH/2, W: lb.w, H: boxH},
		})
	}
	return out
}
