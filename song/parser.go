package song

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
)

// Mode selects which line of a pair comes first in the input.
type Mode int

const (
	ChordsFirst Mode = iota
	LyricsFirst
)

func (m Mode) String() string {
	if m == LyricsFirst {
		return "lyrics-first"
	}
	return "chords-first"
}

// ParseMode reads "chords-first" or "lyrics-first".
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "chords-first", "chords":
		return ChordsFirst, nil
	case "lyrics-first", "lyrics":
		return LyricsFirst, nil
	}
	return ChordsFirst, fmt.Errorf("unknown mode %q, want chords-first or lyrics-first", s)
}

const commentPrefix = "//"

type metadataKey struct {
	prefix     string
	allowEmpty bool
}

var metadataKeys = []metadataKey{
	{"CAPO:", true},
	{"TITLE:", false},
	{"ARTIST:", false},
	{"COMPOSER:", false},
}

type lineKind int

const (
	kindNone lineKind = iota
	kindBlank
	kindChords
	kindLyrics
)

func (k lineKind) String() string {
	switch k {
	case kindBlank:
		return "blank"
	case kindChords:
		return "chords"
	case kindLyrics:
		return "lyrics"
	}
	return "none"
}

// sourceLine keeps the 1-based line number a line had in the raw input.
type sourceLine struct {
	num  int
	text string
}

// Parser turns song text into a Song.
type Parser struct {
	mode   Mode
	logger *slog.Logger
}

// Option configures a Parser.
type Option func(*Parser)

// WithMode sets the chord/lyric ordering, ChordsFirst by default.
func WithMode(m Mode) Option {
	return func(p *Parser) { p.mode = m }
}

// WithLogger sets the logger used for parse tracing.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Parser) {
		if logger != nil {
			p.logger = logger
		}
	}
}

func NewParser(opts ...Option) *Parser {
	p := &Parser{
		mode:   ChordsFirst,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// ParseFile reads and parses the song at path.
func (p *Parser) ParseFile(path string) (*Song, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return p.ParseReader(path, f)
}

// ParseReader parses the song read from r. name is used in errors only.
func (p *Parser) ParseReader(name string, r io.Reader) (*Song, error) {
	var lines []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading %s: %w", name, err)
	}
	return p.Parse(name, lines)
}

// Parse parses raw input lines. name is used in errors only.
func (p *Parser) Parse(name string, lines []string) (*Song, error) {
	src := trimBlankEdges(stripComments(lines))
	st := &parseState{
		name:   name,
		mode:   p.mode,
		logger: p.logger,
		song:   &Song{},
	}
	for _, ln := range src {
		if err := st.consume(ln); err != nil {
			return nil, err
		}
	}
	if err := st.flush(); err != nil {
		return nil, err
	}
	p.logger.Debug("song parsed",
		"path", name,
		"mode", p.mode.String(),
		"verses", len(st.song.Verses),
		"chords", len(st.song.ChordsUsed()))
	return st.song, nil
}

// stripComments drops whole-line comments and cuts trailing ones.
func stripComments(lines []string) (out []sourceLine) {
	for i, line := range lines {
		if strings.HasPrefix(strings.TrimSpace(line), commentPrefix) {
			continue
		}
		if before, _, found := strings.Cut(line, commentPrefix); found {
			line = before
		}
		out = append(out, sourceLine{num: i + 1, text: strings.TrimRight(line, "\r")})
	}
	return out
}

func trimBlankEdges(lines []sourceLine) []sourceLine {
	for len(lines) > 0 && strings.TrimSpace(lines[0].text) == "" {
		lines = lines[1:]
	}
	for len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1].text) == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

type parseState struct {
	name   string
	mode   Mode
	logger *slog.Logger
	song   *Song

	// pending is the single buffered line, kind is kindNone when empty
	pending     sourceLine
	pendingKind lineKind
}

func (st *parseState) errorf(line int, format string, args ...any) error {
	return &ParseError{Path: st.name, Line: line, Msg: fmt.Sprintf(format, args...)}
}

func (st *parseState) consume(ln sourceLine) error {
	handled, err := st.metadata(ln)
	if err != nil || handled {
		return err
	}

	kind := classify(ln.text)
	if kind == kindBlank {
		if err := st.flush(); err != nil {
			return err
		}
		st.add(Verse{}, ln.num, kind.String())
		return nil
	}

	if st.mode == LyricsFirst {
		return st.lyricsFirst(ln, kind)
	}
	return st.chordsFirst(ln, kind)
}

func (st *parseState) chordsFirst(ln sourceLine, kind lineKind) error {
	switch {
	case kind == kindChords && st.pendingKind == kindChords:
		if err := st.flush(); err != nil {
			return err
		}
		st.hold(ln, kind)
	case kind == kindChords:
		st.hold(ln, kind)
	case st.pendingKind == kindChords:
		return st.pair(ln, st.pending)
	default:
		return st.emit(ln.text, "", ln.num, kind.String())
	}
	return nil
}

func (st *parseState) lyricsFirst(ln sourceLine, kind lineKind) error {
	switch {
	case kind == kindLyrics && st.pendingKind == kindChords:
		return st.errorf(ln.num,
			"lyric line follows the chord line at line %d before it was paired",
			st.pending.num)
	case kind == kindLyrics && st.pendingKind == kindLyrics:
		// a lyric line never waits for a second chance at a chord line
		if err := st.flush(); err != nil {
			return err
		}
		st.hold(ln, kind)
	case kind == kindLyrics:
		st.hold(ln, kind)
	case st.pendingKind == kindLyrics:
		return st.pair(st.pending, ln)
	case st.pendingKind == kindChords:
		if err := st.flush(); err != nil {
			return err
		}
		st.hold(ln, kind)
	default:
		st.hold(ln, kind)
	}
	return nil
}

func (st *parseState) hold(ln sourceLine, kind lineKind) {
	st.pending = ln
	st.pendingKind = kind
}

func (st *parseState) clear() {
	st.pending = sourceLine{}
	st.pendingKind = kindNone
}

// pair emits a verse made of a lyric line and a chord line.
func (st *parseState) pair(lyrics, chords sourceLine) error {
	st.clear()
	return st.emit(lyrics.text, chords.text, lyrics.num, "paired")
}

// flush emits the pending line on its own.
func (st *parseState) flush() error {
	ln, kind := st.pending, st.pendingKind
	st.clear()
	switch kind {
	case kindChords:
		return st.emit("", ln.text, ln.num, kind.String())
	case kindLyrics:
		return st.emit(ln.text, "", ln.num, kind.String())
	}
	return nil
}

func (st *parseState) emit(text, chords string, line int, kind string) error {
	v, err := NewVerse(text, chords)
	if err != nil {
		var pe *ParseError
		if errors.As(err, &pe) {
			pe.Path, pe.Line = st.name, line
			return pe
		}
		return err
	}
	st.add(v, line, kind)
	return nil
}

func (st *parseState) add(v Verse, line int, kind string) {
	if !st.song.AddVerse(v) {
		st.logger.Debug("blank line ignored", "path", st.name, "line", line)
		return
	}
	st.logger.Debug("verse added", "path", st.name, "line", line, "kind", kind)
}

// metadata handles CAPO:, TITLE:, ARTIST: and COMPOSER: lines.
func (st *parseState) metadata(ln sourceLine) (bool, error) {
	for _, key := range metadataKeys {
		if len(ln.text) < len(key.prefix) || !strings.EqualFold(ln.text[:len(key.prefix)], key.prefix) {
			continue
		}
		value := strings.TrimSpace(ln.text[len(key.prefix):])
		if value == "" && !key.allowEmpty {
			return true, st.errorf(ln.num, "empty value for %s", strings.TrimSuffix(key.prefix, ":"))
		}
		switch key.prefix {
		case "CAPO:":
			capo := 0
			if value != "" {
				n, err := strconv.Atoi(value)
				if err != nil {
					return true, &ParseError{Path: st.name, Line: ln.num, Msg: "invalid capo", Err: err}
				}
				if n < 0 {
					return true, st.errorf(ln.num, "capo cannot be negative: %d", n)
				}
				capo = n
			}
			st.song.Capo = capo
		case "TITLE:":
			st.song.Title = value
		case "ARTIST:":
			st.song.Artist = value
		case "COMPOSER:":
			st.song.Composer = value
		}
		st.logger.Info("metadata", "path", st.name, "line", ln.num,
			"key", strings.ToLower(strings.TrimSuffix(key.prefix, ":")), "value", value)
		return true, nil
	}
	return false, nil
}

func classify(line string) lineKind {
	switch {
	case strings.TrimSpace(line) == "":
		return kindBlank
	case IsChordLine(line):
		return kindChords
	}
	return kindLyrics
}
