// Package instrument provides fretted instrument profiles: tunings, the
// diagram fret window and chord fingerings.
package instrument

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/rigelrozanski/chordsheet/song"
)

// Profile is what chord diagrams need to know about an instrument.
type Profile interface {
	Name() string
	// Strings is the number of strings.
	Strings() int
	// Frets is the number of frets a diagram shows.
	Frets() int
	// Fingering returns one position per string for the chord.
	Fingering(c song.Chord) (Fingering, error)
}

// Stringed is a fretted instrument described by its tuning. Fingerings are
// taken from overrides first and computed otherwise.
type Stringed struct {
	name string
	// tuning in semitones, MIDI numbering, lowest string first
	tuning []int
	frets  int
	// reentrant tunings have a high string on the bass side, so the first
	// string is not the lowest sounding one
	reentrant bool
	// maxMuted is how many strings on the bass side may be left unplayed
	maxMuted int

	mtx       sync.Mutex
	overrides map[song.Identity]Fingering
	computed  map[song.Identity]Fingering
}

var _ Profile = (*Stringed)(nil)

func newStringed(name string, tuning []int, frets int, reentrant bool, maxMuted int) *Stringed {
	return &Stringed{
		name:      name,
		tuning:    tuning,
		frets:     frets,
		reentrant: reentrant,
		maxMuted:  maxMuted,
		overrides: map[song.Identity]Fingering{},
		computed:  map[song.Identity]Fingering{},
	}
}

func (s *Stringed) Name() string    { return s.name }
func (s *Stringed) Strings() int    { return len(s.tuning) }
func (s *Stringed) Frets() int      { return s.frets }
func (s *Stringed) Tuning() []int   { return append([]int(nil), s.tuning...) }
func (s *Stringed) Reentrant() bool { return s.reentrant }

// TuningNames spells the open strings, e.g. "G C E A".
func (s *Stringed) TuningNames() string {
	names := make([]string, len(s.tuning))
	for i, t := range s.tuning {
		names[i] = pitchNames[t%12]
	}
	return strings.Join(names, " ")
}

var pitchNames = []string{"C", "C#", "D", "Eb", "E", "F", "F#", "G", "Ab", "A", "Bb", "B"}

// Override pins the fingering used for a chord.
func (s *Stringed) Override(c song.Chord, f Fingering) error {
	if len(f) != len(s.tuning) {
		return fmt.Errorf("%s: fingering %q has %d positions, want %d",
			c, f, len(f), len(s.tuning))
	}
	s.mtx.Lock()
	defer s.mtx.Unlock()
	s.overrides[c.Identity()] = append(Fingering(nil), f...)
	return nil
}

func (s *Stringed) Fingering(c song.Chord) (Fingering, error) {
	id := c.Identity()
	s.mtx.Lock()
	defer s.mtx.Unlock()
	if f, found := s.overrides[id]; found {
		return append(Fingering(nil), f...), nil
	}
	if f, found := s.computed[id]; found {
		return append(Fingering(nil), f...), nil
	}
	f, ok := s.voice(c)
	if !ok {
		return nil, fmt.Errorf("no %s fingering found for %s", s.name, c)
	}
	s.computed[id] = f
	return append(Fingering(nil), f...), nil
}

var profiles = map[string]func() *Stringed{
	"ukulele-gcea": func() *Stringed { return newStringed("ukulele-gcea", []int{67, 60, 64, 69}, 4, true, 0) },
	"ukulele-dgbe": func() *Stringed { return newStringed("ukulele-dgbe", []int{50, 55, 59, 64}, 4, false, 0) },
	"guitar":       func() *Stringed { return newStringed("guitar", []int{40, 45, 50, 55, 59, 64}, 4, false, 2) },
	"mandolin":     func() *Stringed { return newStringed("mandolin", []int{55, 62, 69, 76}, 5, false, 0) },
}

var aliases = map[string]string{
	"ukulele":     "ukulele-gcea",
	"ukulelegcea": "ukulele-gcea",
	"ukuleledgbe": "ukulele-dgbe",
	"baritone":    "ukulele-dgbe",
}

// Names lists the known profiles.
func Names() []string {
	names := make([]string, 0, len(profiles))
	for n := range profiles {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Lookup returns a fresh profile by name. Names are case-insensitive.
func Lookup(name string) (*Stringed, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if alias, found := aliases[key]; found {
		key = alias
	}
	newProfile, found := profiles[key]
	if !found {
		return nil, fmt.Errorf("unknown instrument %q, want one of %s",
			name, strings.Join(Names(), ", "))
	}
	return newProfile(), nil
}
