package main

import (
	"sync"

	"github.com/rigelrozanski/chordsheet/layout"
)

// empirically determined, the centre of lower case text sits this far
// above the baseline relative to the font height
const baselineToCentre = 0.35

// baseline converts the vertical centre of text to its baseline.
func baseline(centreY float64, f layout.Font) float64 {
	return centreY + baselineToCentre*f.Height()
}

// pdfMeasurer measures text with the metrics of the document's own fonts so
// that the layout matches what is drawn.
type pdfMeasurer struct {
	mtx sync.Mutex
	pdf Pdf
	tr  func(string) string
}

var _ layout.TextMeasurer = (*pdfMeasurer)(nil)

func newPdfMeasurer(pdf Pdf, tr func(string) string) *pdfMeasurer {
	if tr == nil {
		tr = func(s string) string { return s }
	}
	return &pdfMeasurer{pdf: pdf, tr: tr}
}

func (m *pdfMeasurer) Measure(text string, f layout.Font) (width, height float64) {
	m.mtx.Lock()
	defer m.mtx.Unlock()
	m.pdf.SetFont(f.Family, f.Style, f.Size)
	return m.pdf.GetStringWidth(m.tr(text)), f.Height()
}
