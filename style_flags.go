package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/rigelrozanski/chordsheet/instrument"
	"github.com/rigelrozanski/chordsheet/layout"
	"github.com/rigelrozanski/chordsheet/measure"
	"github.com/rigelrozanski/chordsheet/song"
)

var (
	styleFileFlag      string
	instrumentFlag     string
	fingeringsFlag     string
	modeFlag           string
	pageFormatFlag     string
	landscapeFlag      bool
	notationFlag       string
	leftHandFlag       bool
	grayscaleFlag      bool
	verticalFlag       bool
	chordsAllPagesFlag bool
	noTitleFlag        bool
	numColumnsFlag     int
	lyricsAlignFlag    string
	measurerFlag       string
)

const (
	measurerPdf    = "pdf"
	measurerGoFont = "gofont"
)

// addSongFlags registers the flags needed to read a song and pick its
// instrument.
func addSongFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVar(
		&instrumentFlag, "instrument", "ukulele",
		fmt.Sprintf("instrument the diagrams are drawn for (%v)", instrument.Names()))
	cmd.PersistentFlags().StringVar(
		&fingeringsFlag, "fingerings", "",
		"yaml file or text chart of fingerings overriding the computed ones")
	cmd.PersistentFlags().StringVar(
		&modeFlag, "mode", "chords-first",
		"line order of the input, chords-first or lyrics-first")
}

// addStyleFlags registers the flags that change the page.
func addStyleFlags(cmd *cobra.Command) {
	addSongFlags(cmd)
	fl := cmd.PersistentFlags()
	fl.StringVar(&styleFileFlag, "style", "",
		"yaml style file, flags given on the command line win over it")
	fl.StringVar(&pageFormatFlag, "page-format", "A4",
		fmt.Sprintf("page format (%v)", layout.PageFormats()))
	fl.BoolVar(&landscapeFlag, "landscape", false,
		"landscape pages")
	fl.StringVar(&notationFlag, "notation", "",
		"re-spell chords as alphabetical, syllabic or german")
	fl.BoolVar(&leftHandFlag, "lefthand", false,
		"mirror string positions")
	fl.BoolVar(&grayscaleFlag, "grayscale", false,
		"gray chord colors")
	fl.BoolVar(&verticalFlag, "vertical", false,
		"put the chord diagrams on the right of the page")
	fl.BoolVar(&chordsAllPagesFlag, "chords-all-pages", false,
		"repeat the chord diagrams on every page")
	fl.BoolVar(&noTitleFlag, "no-title", false,
		"do not print the title block")
	fl.IntVar(&numColumnsFlag, "columns", 0,
		"number of columns to print the lyrics into, 0 picks the best")
	fl.StringVar(&lyricsAlignFlag, "lyrics-align", "center",
		"lyrics alignment, left, center or right")
	fl.StringVar(&measurerFlag, "measurer", measurerPdf,
		"text metrics used for the layout, pdf (the document fonts) or gofont")
}

// loadStyle starts from the defaults, applies the style file and then every
// flag set on the command line.
func loadStyle(cmd *cobra.Command) (layout.Style, error) {
	st := layout.DefaultStyle()
	if styleFileFlag != "" {
		bz, err := os.ReadFile(styleFileFlag)
		if err != nil {
			return st, err
		}
		if err := yaml.Unmarshal(bz, &st); err != nil {
			return st, fmt.Errorf("%s: %w", styleFileFlag, err)
		}
	}

	fl := cmd.Flags()
	if fl.Changed("page-format") {
		st.PageFormat = pageFormatFlag
	}
	if fl.Changed("landscape") {
		st.Landscape = landscapeFlag
	}
	if fl.Changed("notation") {
		st.Notation = notationFlag
	}
	if fl.Changed("lefthand") {
		st.LeftHand = leftHandFlag
	}
	if fl.Changed("grayscale") {
		st.Grayscale = grayscaleFlag
	}
	if fl.Changed("vertical") {
		st.Vertical = verticalFlag
	}
	if fl.Changed("chords-all-pages") {
		st.ChordsAllPages = chordsAllPagesFlag
	}
	if fl.Changed("no-title") {
		st.DisableTitle = noTitleFlag
	}
	if fl.Changed("columns") {
		st.Columns = numColumnsFlag
	}
	if fl.Changed("lyrics-align") {
		st.LyricsAlign = layout.Alignment(lyricsAlignFlag)
	}
	return st, st.Validate()
}

// loadInstrument looks the instrument up and pins the fingering overrides.
func loadInstrument() (*instrument.Stringed, error) {
	inst, err := instrument.Lookup(instrumentFlag)
	if err != nil {
		return nil, err
	}
	if fingeringsFlag != "" {
		if _, err := instrument.LoadOverrides(fingeringsFlag, inst); err != nil {
			return nil, fmt.Errorf("fingerings: %w", err)
		}
	}
	return inst, nil
}

func newParser(l *slog.Logger) (*song.Parser, error) {
	mode, err := song.ParseMode(modeFlag)
	if err != nil {
		return nil, err
	}
	return song.NewParser(song.WithMode(mode), song.WithLogger(l)), nil
}

// newTextMeasurer returns the measurer named kind. The pdf measurer reads
// the metrics of the fonts of pdf, gofont needs no document.
func newTextMeasurer(kind string, pdf Pdf, tr func(string) string) (layout.TextMeasurer, error) {
	switch strings.ToLower(kind) {
	case "", measurerPdf:
		if pdf == nil {
			return nil, fmt.Errorf("the %s measurer needs a document", measurerPdf)
		}
		return newPdfMeasurer(pdf, tr), nil
	case measurerGoFont:
		g, err := measure.NewGoFont()
		if err != nil {
			return nil, err
		}
		return g, nil
	}
	return nil, fmt.Errorf("unknown measurer %q, want %s or %s", kind, measurerPdf, measurerGoFont)
}
