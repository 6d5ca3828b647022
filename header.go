package main

import "github.com/rigelrozanski/chordsheet/layout"

// printHeader draws the title block with a thin rule under it.
func (s *sheet) printHeader(tb layout.TitleBlock) {
	s.pdf.SetTextColor(0, 0, 0)
	s.glyph(tb.Heading)
	if tb.Sub != nil {
		s.glyph(*tb.Sub)
	}
	s.pdf.SetLineWidth(thinLW)
	s.pdf.SetDrawColor(120, 120, 120)
	y := tb.Bounds.Bottom - thinLW
	s.pdf.Line(tb.Bounds.Left+padding, y, tb.Bounds.Right-padding, y)
}
