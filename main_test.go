package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rigelrozanski/chordsheet/layout"
)

const testSong = `TITLE: Test
ARTIST: Me
CAPO: 2
// a comment

C   G
Hello world

Am      F
Sing it again
`

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestGatherSongPaths(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "b.TXT"), testSong)
	writeFile(t, filepath.Join(dir, "a.txt"), testSong)
	writeFile(t, filepath.Join(dir, "notes.md"), "nope")
	writeFile(t, filepath.Join(dir, "sub", "c.txt"), testSong)

	paths, err := gatherSongPaths(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "a.txt"), filepath.Join(dir, "b.TXT")}, paths)

	paths, err = gatherSongPaths(filepath.Join(dir, "notes.md"))
	require.NoError(t, err)
	assert.Len(t, paths, 1)

	_, err = gatherSongPaths(filepath.Join(dir, "sub", "missing"))
	assert.Error(t, err)

	_, err = gatherSongPaths(t.TempDir())
	assert.Error(t, err)
}

func TestOutputPath(t *testing.T) {
	assert.Equal(t, filepath.Join("songs", "wonderwall.pdf"), outputPath(filepath.Join("songs", "wonderwall.txt"), ""))
	assert.Equal(t, filepath.Join("out", "wonderwall.pdf"), outputPath(filepath.Join("songs", "wonderwall.txt"), "out"))
	assert.Equal(t, "AC_DC", safeFilename("AC/DC"))
	assert.Equal(t, "chordsheet", safeFilename("  "))
}

func TestLoadStyle(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "style.yaml")
	writeFile(t, path, `
page_format: A5
lyrics_ha: left
columns: 2
lyrics_font:
  family: Times
  size: 12
`)

	cmd := &cobra.Command{Use: "test"}
	addStyleFlags(cmd)
	require.NoError(t, cmd.ParseFlags([]string{"--style", path, "--columns", "3", "--landscape"}))

	st, err := loadStyle(cmd)
	require.NoError(t, err)
	assert := assert.New(t)
	assert.Equal("A5", st.PageFormat)
	assert.Equal(layout.AlignLeft, st.LyricsAlign)
	assert.Equal(3, st.Columns)
	assert.True(st.Landscape)
	assert.Equal(layout.Font{Family: "Times", Size: 12}, st.LyricsFont)
	// untouched settings keep their defaults
	assert.Equal(layout.DefaultStyle().FretSpacing, st.FretSpacing)
	assert.Equal(layout.DefaultStyle().ChordFont, st.ChordFont)

	cmd = &cobra.Command{Use: "test"}
	addStyleFlags(cmd)
	require.NoError(t, cmd.ParseFlags([]string{"--page-format", "B7"}))
	_, err = loadStyle(cmd)
	assert.Error(err)
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	l, err := newLogger(&buf, "debug", "json")
	require.NoError(t, err)
	l.Debug("hello", "page", 2)

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "hello", rec["msg"])
	assert.Equal(t, "DEBUG", rec["level"])
	assert.Equal(t, float64(2), rec["page"])

	buf.Reset()
	l, err = newLogger(&buf, "warn", "text")
	require.NoError(t, err)
	l.Info("quiet")
	assert.Empty(t, buf.String())

	_, err = newLogger(&buf, "loud", "text")
	assert.Error(t, err)
	_, err = newLogger(&buf, "info", "xml")
	assert.Error(t, err)
}

func TestIsSong(t *testing.T) {
	dir := t.TempDir()
	songPath := filepath.Join(dir, "song.txt")
	prosePath := filepath.Join(dir, "prose.txt")
	writeFile(t, songPath, testSong)
	writeFile(t, prosePath, "just some words\nand more words\n")

	assert.True(t, isSong(songPath))
	assert.False(t, isSong(prosePath))
	assert.False(t, isSong(filepath.Join(dir, "missing.txt")))
}

func TestGenerate(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "test.txt")
	writeFile(t, in, testSong)
	lines, err := readLines(in)
	require.NoError(t, err)

	g := &generator{style: layout.DefaultStyle(), logger: logger}
	out, err := g.run(songJob{name: in, lines: lines, output: outputPath(in, "")})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "test.pdf"), out)

	bz, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(bz, []byte("%PDF")))
}

func TestGenerateReportsParseErrors(t *testing.T) {
	g := &generator{style: layout.DefaultStyle(), logger: logger}
	_, err := g.run(songJob{name: "bad.txt", lines: []string{"CAPO: two"}, output: filepath.Join(t.TempDir(), "bad.pdf")})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad.txt:1")
}

func TestPrintSummary(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "test.txt")
	writeFile(t, in, testSong)
	parser, err := newParser(logger)
	require.NoError(t, err)
	s, err := parser.ParseFile(in)
	require.NoError(t, err)

	var buf bytes.Buffer
	printSummary(&buf, "test.txt", s)
	assert.Equal(t,
		"test.txt: \"Test - Me\", 2 verses in 2 paragraphs, capo 2\n"+
			"  chords: C x1, G x1, Am x1, F x1\n",
		buf.String())
}

func TestChordsChart(t *testing.T) {
	in := filepath.Join(t.TempDir(), "test.txt")
	writeFile(t, in, testSong)

	var buf bytes.Buffer
	ChordsCmd.SetOut(&buf)
	defer ChordsCmd.SetOut(nil)
	require.NoError(t, chordsCmd(ChordsCmd, []string{in}))

	lines := strings.Split(buf.String(), "\n")
	assert.Equal(t, "ukulele-gcea (G C E A)", lines[0])
	assert.Contains(t, lines, "  C  G  Am  F")
}

func TestCheckLayoutWithGoFont(t *testing.T) {
	in := filepath.Join(t.TempDir(), "test.txt")
	writeFile(t, in, testSong)
	parser, err := newParser(logger)
	require.NoError(t, err)
	s, err := parser.ParseFile(in)
	require.NoError(t, err)

	doc, err := checkLayout(in, s, layout.DefaultStyle())
	require.NoError(t, err)
	require.Len(t, doc.Pages, 1)

	var buf bytes.Buffer
	printPages(&buf, doc)
	assert.Equal(t, "  page 1: 1 columns, 3 verses, 4 diagrams\n", buf.String())
}

func TestGenerateWithGoFontMetrics(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "test.txt")
	writeFile(t, in, testSong)
	lines, err := readLines(in)
	require.NoError(t, err)

	g := &generator{style: layout.DefaultStyle(), logger: logger, measurer: measurerGoFont}
	out, err := g.run(songJob{name: in, lines: lines, output: outputPath(in, "")})
	require.NoError(t, err)
	bz, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(bz, []byte("%PDF")))

	g.measurer = "bitmap"
	_, err = g.run(songJob{name: in, lines: lines, output: outputPath(in, "")})
	assert.ErrorContains(t, err, "unknown measurer")
}
