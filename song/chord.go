package song

import (
	"fmt"
	"strings"
)

// Notation is a display convention for note names.
type Notation int

const (
	Alphabetical Notation = iota
	Syllabic
	GermanAlphabetical
)

var notationNames = []string{"alphabetical", "syllabic", "german"}

func (n Notation) String() string {
	if n < 0 || int(n) >= len(notationNames) {
		return fmt.Sprintf("notation(%d)", int(n))
	}
	return notationNames[n]
}

// ParseNotation accepts the names used on the command line and in style
// files. The full "german alphabetical" form is accepted too.
func ParseNotation(s string) (Notation, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "alphabetical":
		return Alphabetical, nil
	case "syllabic":
		return Syllabic, nil
	case "german", "german alphabetical", "german-alphabetical":
		return GermanAlphabetical, nil
	}
	return Alphabetical, fmt.Errorf("unknown notation %q", s)
}

// Key is one of the seven natural pitch classes.
type Key int

const (
	C Key = iota
	D
	E
	F
	G
	A
	B
)

var keys = []Key{C, D, E, F, G, A, B}

type keyInfo struct {
	height    int
	spellings [3]string // indexed by Notation
}

var keyTable = map[Key]keyInfo{
	C: {0, [3]string{"C", "Do", "C"}},
	D: {2, [3]string{"D", "Re", "D"}},
	E: {4, [3]string{"E", "Mi", "E"}},
	F: {5, [3]string{"F", "Fa", "F"}},
	G: {7, [3]string{"G", "Sol", "G"}},
	A: {9, [3]string{"A", "La", "A"}},
	B: {11, [3]string{"B", "Si", "H"}},
}

// Height is the pitch class of the natural key, C = 0.
func (k Key) Height() int { return keyTable[k].height }

// Name spells the key under notation n.
func (k Key) Name(n Notation) string {
	if n < Alphabetical || n > GermanAlphabetical {
		n = Alphabetical
	}
	return keyTable[k].spellings[n]
}

// Alteration is an accidental applied to a key.
type Alteration int

const (
	Natural Alteration = iota
	Sharp
	Flat
)

var alterations = []Alteration{Natural, Sharp, Flat}

func (a Alteration) Delta() int {
	switch a {
	case Sharp:
		return 1
	case Flat:
		return -1
	}
	return 0
}

func (a Alteration) Symbol() string {
	switch a {
	case Sharp:
		return "#"
	case Flat:
		return "b"
	}
	return ""
}

// Suffix is the chord quality as written after the root.
type Suffix string

const (
	Major        Suffix = ""
	Minor        Suffix = "m"
	Augmented    Suffix = "aug"
	Diminished   Suffix = "dim"
	Seventh      Suffix = "7"
	MinorSeventh Suffix = "m7"
	MajorSeventh Suffix = "maj7"
	Sixth        Suffix = "6"
	MinorSixth   Suffix = "m6"
	AddNine      Suffix = "add9"
	MinorNinth   Suffix = "m9"
	Ninth        Suffix = "9"
	Sus2         Suffix = "sus2"
	Sus4         Suffix = "sus4"
	SeventhSus4  Suffix = "7sus4"
)

// Suffixes lists every supported chord quality.
var Suffixes = []Suffix{
	Major, Minor, Augmented, Diminished, Seventh, MinorSeventh, MajorSeventh,
	Sixth, MinorSixth, AddNine, MinorNinth, Ninth, Sus2, Sus4, SeventhSus4,
}

// Chord is a parsed chord name. The zero value is C major.
type Chord struct {
	Key        Key
	Alteration Alteration
	Suffix     Suffix

	HasBass        bool
	BassKey        Key
	BassAlteration Alteration
}

// Identity is what makes two chords the same chord regardless of spelling.
// BassHeight is -1 for chords without a slashed bass.
type Identity struct {
	Suffix     Suffix
	Height     int
	BassHeight int
}

func pitchClass(k Key, a Alteration) int {
	return (k.Height() + a.Delta() + 12) % 12
}

// Height is the pitch class of the root, 0 to 11.
func (c Chord) Height() int { return pitchClass(c.Key, c.Alteration) }

// BassHeight is the pitch class of the bass or -1 when there is none.
func (c Chord) BassHeight() int {
	if !c.HasBass {
		return -1
	}
	return pitchClass(c.BassKey, c.BassAlteration)
}

func (c Chord) Identity() Identity {
	return Identity{Suffix: c.Suffix, Height: c.Height(), BassHeight: c.BassHeight()}
}

// Equal compares chords by identity, so "A#" equals "Bb".
func (c Chord) Equal(o Chord) bool { return c.Identity() == o.Identity() }

// Name renders the chord under notation n.
func (c Chord) Name(n Notation) string {
	name := c.Key.Name(n) + c.Alteration.Symbol() + string(c.Suffix)
	if c.HasBass {
		name += "/" + c.BassKey.Name(n) + c.BassAlteration.Symbol()
	}
	return name
}

func (c Chord) String() string { return c.Name(Alphabetical) }

type chordHead struct {
	key        Key
	alteration Alteration
	suffix     Suffix
}

// chordLookup maps every uppercase spelling to its components. The first
// combination to produce a spelling wins.
var chordLookup = buildChordLookup()

func buildChordLookup() map[string]chordHead {
	lookup := make(map[string]chordHead)
	for _, k := range keys {
		for _, spelling := range keyTable[k].spellings {
			for _, alt := range alterations {
				for _, sfx := range Suffixes {
					name := strings.ToUpper(spelling + alt.Symbol() + string(sfx))
					if _, found := lookup[name]; found {
						continue
					}
					lookup[name] = chordHead{k, alt, sfx}
				}
			}
		}
	}
	return lookup
}

// ParseChord parses a chord token such as "Am7", "sol#", or "G/B".
func ParseChord(token string) (Chord, error) {
	name := strings.ToUpper(token)
	head, bass, slashed := strings.Cut(name, "/")

	h, found := chordLookup[head]
	if !found {
		return Chord{}, &ParseError{Msg: fmt.Sprintf("invalid chord %q", token)}
	}
	c := Chord{Key: h.key, Alteration: h.alteration, Suffix: h.suffix}
	if !slashed {
		return c, nil
	}
	if strings.Contains(bass, "/") {
		return Chord{}, &ParseError{Msg: fmt.Sprintf("invalid chord %q: more than one bass", token)}
	}
	b, err := ParseChord(bass)
	if err != nil {
		return Chord{}, &ParseError{Msg: fmt.Sprintf("invalid bass in chord %q", token)}
	}
	c.HasBass = true
	c.BassKey = b.Key
	c.BassAlteration = b.Alteration
	return c, nil
}

// IsChordToken reports whether token parses as a chord.
func IsChordToken(token string) bool {
	_, err := ParseChord(token)
	return err == nil
}

// IsChordLine reports whether every whitespace separated token of line is a
// chord. A line without tokens is not a chord line.
func IsChordLine(line string) bool {
	tokens := strings.Fields(line)
	if len(tokens) == 0 {
		return false
	}
	for _, t := range tokens {
		if !IsChordToken(t) {
			return false
		}
	}
	return true
}
