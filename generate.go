package main

import (
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jung-kurt/gofpdf"

	"github.com/rigelrozanski/chordsheet/layout"
	"github.com/rigelrozanski/chordsheet/song"
)

// generator turns song text into pdf files, one job per song.
type generator struct {
	style    layout.Style
	logger   *slog.Logger
	measurer string // see newTextMeasurer, empty measures with the pdf
}

// songJob is one song to convert. output may be empty, the file is then
// named after the song title.
type songJob struct {
	name   string
	lines  []string
	output string
}

// run converts the song and returns the path written.
func (g *generator) run(job songJob) (string, error) {
	l := g.logger.With("job", uuid.NewString(), "song", job.name)

	parser, err := newParser(l)
	if err != nil {
		return "", err
	}
	s, err := parser.Parse(job.name, job.lines)
	if err != nil {
		return "", err
	}
	doc, pdf, err := g.render(l, job.name, s)
	if err != nil {
		return "", err
	}

	out := job.output
	if out == "" {
		out = fmt.Sprintf("chordsheet_%v.pdf", safeFilename(s.Title))
	}
	if err := pdf.OutputFileAndClose(out); err != nil {
		return "", fmt.Errorf("%s: %w", out, err)
	}
	l.Info("pdf written", "output", out, "pages", len(doc.Pages))
	return out, nil
}

// render lays the song out against the fonts of a new pdf and draws it.
func (g *generator) render(l *slog.Logger, name string, s *song.Song) (*layout.Document, *gofpdf.Fpdf, error) {
	inst, err := loadInstrument()
	if err != nil {
		return nil, nil, err
	}
	pdf, err := newPdfForStyle(g.style)
	if err != nil {
		return nil, nil, err
	}
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	tm, err := newTextMeasurer(g.measurer, pdf, tr)
	if err != nil {
		return nil, nil, err
	}
	m := layout.NewCachedMeasurer(tm)
	eng, err := layout.NewEngine(inst, m, g.style, layout.WithLogger(l))
	if err != nil {
		return nil, nil, err
	}
	doc, err := eng.Layout(name, s)
	if err != nil {
		return nil, nil, err
	}
	hits, misses := m.Stats()
	l.Debug("text measured", "cached", hits, "measured", misses)

	newSheet(pdf, tr).render(doc)
	if err := pdf.Error(); err != nil {
		return nil, nil, err
	}
	return doc, pdf, nil
}
