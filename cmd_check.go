package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rigelrozanski/chordsheet/layout"
	"github.com/rigelrozanski/chordsheet/song"
)

var (
	CheckCmd = &cobra.Command{
		Use:   "check [path]",
		Short: "parse song files and print what was found in them",
		Args:  cobra.ExactArgs(1),
		RunE:  checkCmd,
	}

	IsSongCmd = &cobra.Command{
		Use:   "is-song [filepath]",
		Short: "print TRUE or FALSE if the file is a song with chords",
		Args:  cobra.ExactArgs(1),
		RunE:  isSongCmd,
	}

	checkLayoutFlag bool
)

func init() {
	addStyleFlags(CheckCmd)
	CheckCmd.PersistentFlags().BoolVar(&checkLayoutFlag, "layout", false,
		"also lay every song out with the go font metrics and print its pages")
	addSongFlags(IsSongCmd)
	RootCmd.AddCommand(CheckCmd)
	RootCmd.AddCommand(IsSongCmd)
}

func checkCmd(cmd *cobra.Command, args []string) error {
	paths, err := gatherSongPaths(args[0])
	if err != nil {
		return err
	}
	parser, err := newParser(logger)
	if err != nil {
		return err
	}
	st, err := loadStyle(cmd)
	if err != nil {
		return err
	}
	failed := 0
	for _, path := range paths {
		s, err := parser.ParseFile(path)
		if err != nil {
			failed++
			fmt.Fprintln(cmd.OutOrStdout(), err)
			continue
		}
		printSummary(cmd.OutOrStdout(), path, s)
		if !checkLayoutFlag {
			continue
		}
		doc, err := checkLayout(path, s, st)
		if err != nil {
			failed++
			fmt.Fprintln(cmd.OutOrStdout(), err)
			continue
		}
		printPages(cmd.OutOrStdout(), doc)
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d songs failed", failed, len(paths))
	}
	return nil
}

func printSummary(w io.Writer, path string, s *song.Song) {
	blanks := 0
	for _, v := range s.Verses {
		if v.IsEmpty() {
			blanks++
		}
	}
	fmt.Fprintf(w, "%s: %q, %d verses in %d paragraphs", path, s.HeaderLine(), len(s.Verses)-blanks, blanks+1)
	if s.Capo > 0 {
		fmt.Fprintf(w, ", capo %d", s.Capo)
	}
	fmt.Fprintln(w)

	chords := s.ChordsUsed()
	if len(chords) == 0 {
		return
	}
	used := make([]string, len(chords))
	for i, c := range chords {
		used[i] = fmt.Sprintf("%s x%d", c.Name, c.Count)
	}
	fmt.Fprintf(w, "  chords: %s\n", strings.Join(used, ", "))
}

// checkLayout lays s out without drawing it, using the go font metrics
// instead of those of a pdf.
func checkLayout(name string, s *song.Song, st layout.Style) (*layout.Document, error) {
	inst, err := loadInstrument()
	if err != nil {
		return nil, err
	}
	m, err := newTextMeasurer(measurerGoFont, nil, nil)
	if err != nil {
		return nil, err
	}
	eng, err := layout.NewEngine(inst, layout.NewCachedMeasurer(m), st, layout.WithLogger(logger))
	if err != nil {
		return nil, err
	}
	return eng.Layout(name, s)
}

func printPages(w io.Writer, doc *layout.Document) {
	for _, p := range doc.Pages {
		fmt.Fprintf(w, "  page %d: %d columns, %d verses, %d diagrams\n",
			p.Number, len(p.Columns), len(p.Verses()), len(p.Diagrams))
	}
}

func isSongCmd(cmd *cobra.Command, args []string) error {
	if isSong(args[0]) {
		fmt.Fprint(cmd.OutOrStdout(), "TRUE")
		return nil
	}
	fmt.Fprint(cmd.OutOrStdout(), "FALSE")
	return nil
}

// isSong reports whether the file parses and uses at least one chord.
func isSong(path string) bool {
	parser, err := newParser(logger)
	if err != nil {
		return false
	}
	s, err := parser.ParseFile(path)
	if err != nil {
		return false
	}
	return len(s.ChordsUsed()) > 0
}
