package main

import (
	"github.com/jung-kurt/gofpdf"

	"github.com/rigelrozanski/chordsheet/layout"
)

// Pdf is the part of gofpdf the sheet is drawn with.
type Pdf interface {
	AddPage()
	SetLineWidth(width float64)
	SetDrawColor(r, g, b int)
	SetFillColor(r, g, b int)
	SetTextColor(r, g, b int)
	SetFont(familyStr, styleStr string, size float64)
	GetStringWidth(s string) float64
	Rect(x, y, w, h float64, styleStr string)
	Circle(x, y, r float64, styleStr string)
	Line(x1, y1, x2, y2 float64)
	Text(x, y float64, txtStr string)
}

var _ Pdf = (*gofpdf.Fpdf)(nil)

// newPdf opens a document with pages of the given size in millimetres.
func newPdf(width, height float64) *gofpdf.Fpdf {
	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		UnitStr: "mm",
		Size:    gofpdf.SizeType{Wd: width, Ht: height},
	})
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	return pdf
}

// newPdfForStyle opens a document sized for the style's page format.
func newPdfForStyle(st layout.Style) (*gofpdf.Fpdf, error) {
	w, h, err := st.PageSize()
	if err != nil {
		return nil, err
	}
	return newPdf(w, h), nil
}
