package main

import "github.com/rigelrozanski/chordsheet/layout"

const (
	padding = 5.0 // page edge to title rule, mm
	thinLW  = 0.2
)

// labelTint lightens chord colors behind inline chord names.
const labelTint = 0.55

// sheet draws laid out documents.
type sheet struct {
	pdf Pdf
	tr  func(string) string
}

func newSheet(pdf Pdf, tr func(string) string) *sheet {
	if tr == nil {
		tr = func(s string) string { return s }
	}
	return &sheet{pdf: pdf, tr: tr}
}

func (s *sheet) render(doc *layout.Document) {
	for _, p := range doc.Pages {
		s.pdf.AddPage()
		if p.Title != nil {
			s.printHeader(*p.Title)
		}
		for _, d := range p.Diagrams {
			s.printDiagram(d)
		}
		for _, col := range p.Columns {
			for _, l := range col.Lines {
				s.printLine(l)
			}
		}
	}
}

// glyph draws text centred on its point.
func (s *sheet) glyph(g layout.Glyph) {
	txt := s.tr(g.Text)
	s.pdf.SetFont(g.Font.Family, g.Font.Style, g.Font.Size)
	w := s.pdf.GetStringWidth(txt)
	s.pdf.Text(g.X-w/2, baseline(g.Y, g.Font), txt)
}

func (s *sheet) fill(c layout.Color) {
	s.pdf.SetFillColor(int(c.R), int(c.G), int(c.B))
}

func (s *sheet) rect(r layout.Rect) {
	s.pdf.Rect(r.X, r.Y, r.W, r.H, "F")
}

func (s *sheet) printDiagram(d layout.DiagramMarks) {
	// name on a tinted band the width of the board
	s.fill(d.Color.Tint(labelTint))
	h := d.Label.Font.Height()
	s.rect(layout.Rect{X: d.Nut.X, Y: d.Label.Y - h/2, W: d.Nut.W, H: h})
	s.pdf.SetTextColor(0, 0, 0)
	s.glyph(d.Label)

	s.fill(layout.Color{})
	s.rect(d.Nut)
	for _, r := range d.Frets {
		s.rect(r)
	}
	for _, r := range d.Lines {
		s.rect(r)
	}
	for _, g := range d.Marks {
		s.glyph(g)
	}
	if d.Offset != nil {
		s.glyph(*d.Offset)
	}
	s.fill(d.Color)
	for _, dot := range d.Dots {
		s.pdf.Circle(dot.X, dot.Y, dot.R, "F")
	}
}

func (s *sheet) printLine(l layout.Line) {
	for _, lb := range l.Labels {
		s.fill(lb.Color.Tint(labelTint))
		s.rect(lb.Box)
		s.pdf.SetTextColor(0, 0, 0)
		s.glyph(lb.Glyph)
	}
	if l.Text == "" {
		return
	}
	s.pdf.SetTextColor(0, 0, 0)
	s.pdf.SetFont(l.Font.Family, l.Font.Style, l.Font.Size)
	s.pdf.Text(l.X, baseline(l.Y, l.Font), s.tr(l.Text))
}
