package instrument

import "github.com/rigelrozanski/chordsheet/song"

const (
	searchFrets = 12 // highest fret a computed fingering may use
	handReach   = 4  // frets covered without shifting
	maxFingers  = 4
)

// suffixIntervals are the chord tones above the root, in semitones.
var suffixIntervals = map[song.Suffix][]int{
	song.Major:        {0, 4, 7},
	song.Minor:        {0, 3, 7},
	song.Augmented:    {0, 4, 8},
	song.Diminished:   {0, 3, 6},
	song.Seventh:      {0, 4, 7, 10},
	song.MinorSeventh: {0, 3, 7, 10},
	song.MajorSeventh: {0, 4, 7, 11},
	song.Sixth:        {0, 4, 7, 9},
	song.MinorSixth:   {0, 3, 7, 9},
	song.AddNine:      {0, 4, 7, 2},
	song.MinorNinth:   {0, 3, 7, 10, 2},
	song.Ninth:        {0, 4, 7, 10, 2},
	song.Sus2:         {0, 2, 7},
	song.Sus4:         {0, 5, 7},
	song.SeventhSus4:  {0, 5, 7, 10},
}

type chordTones struct {
	root     int
	bass     int // -1 when the chord has no slashed bass
	allowed  map[int]bool
	required map[int]bool
}

// Requirement tiers, tried in order until a fingering is found.
const (
	// every tone but the fifth of chords with four tones or more
	tierFull = iota
	// the ninth of add9 and ninth chords may go too
	tierNoNinth
	// only the root and bass must sound
	tierRoot
	tierCount
)

// tonesOf collects the pitch classes of c and those that must sound at the
// given tier.
func tonesOf(c song.Chord, tier int) chordTones {
	t := chordTones{
		root:     c.Height(),
		bass:     c.BassHeight(),
		allowed:  map[int]bool{},
		required: map[int]bool{},
	}
	ivs := suffixIntervals[c.Suffix]
	hasThird := false
	for _, iv := range ivs {
		if iv == 3 || iv == 4 {
			hasThird = true
		}
	}
	for _, iv := range ivs {
		pc := (t.root + iv) % 12
		t.allowed[pc] = true
		switch {
		case tier == tierRoot && iv != 0:
		case iv == 7 && len(ivs) > 3:
		case tier == tierNoNinth && iv == 2 && hasThird:
		default:
			t.required[pc] = true
		}
	}
	if t.bass >= 0 {
		t.allowed[t.bass] = true
		t.required[t.bass] = true
	}
	return t
}

type voiceSearch struct {
	inst  *Stringed
	tones chordTones
	cur   Fingering

	best      Fingering
	bestScore int
}

// voice finds the most playable fingering for c: low on the neck, compact,
// with as few muted strings as possible and the root in the bass.
func (s *Stringed) voice(c song.Chord) (Fingering, bool) {
	for tier := tierFull; tier < tierCount; tier++ {
		vs := &voiceSearch{
			inst:      s,
			tones:     tonesOf(c, tier),
			cur:       make(Fingering, len(s.tuning)),
			bestScore: -1,
		}
		for base := 1; base+handReach-1 <= searchFrets; base++ {
			vs.walk(0, base)
		}
		if vs.best != nil {
			return vs.best, true
		}
	}
	return nil, false
}

func (vs *voiceSearch) walk(str, base int) {
	if str == len(vs.cur) {
		if score, ok := vs.score(); ok && (vs.bestScore < 0 || score < vs.bestScore) {
			vs.best = append(Fingering(nil), vs.cur...)
			vs.bestScore = score
		}
		return
	}

	open := vs.inst.tuning[str]
	if str < vs.inst.maxMuted && (str == 0 || vs.cur[str-1] == Muted) {
		vs.cur[str] = Muted
		vs.walk(str+1, base)
	}
	if vs.tones.allowed[open%12] {
		vs.cur[str] = Open
		vs.walk(str+1, base)
	}
	for fret := base; fret < base+handReach; fret++ {
		if vs.tones.allowed[(open+fret)%12] {
			vs.cur[str] = fret
			vs.walk(str+1, base)
		}
	}
}

// score rates the current fingering, lower is better. ok is false when the
// fingering misses a required tone, needs too many fingers, or puts the
// wrong note in the bass of a slash chord.
func (vs *voiceSearch) score() (score int, ok bool) {
	f := vs.cur
	covered := map[int]bool{}
	lowest, lowestPC := -1, -1
	muted, fretted := 0, 0
	for i, p := range f {
		if p == Muted {
			muted++
			continue
		}
		if p > 0 {
			fretted++
		}
		pitch := vs.inst.tuning[i] + p
		covered[pitch%12] = true
		if lowest < 0 || pitch < lowest {
			lowest, lowestPC = pitch, pitch%12
		}
	}
	for pc := range vs.tones.required {
		if !covered[pc] {
			return 0, false
		}
	}

	fingers := fretted
	if fingers > maxFingers {
		// barre across the lowest fret
		min := f.MinFret()
		fingers = 1
		for _, p := range f {
			if p > min {
				fingers++
			}
		}
		if fingers > maxFingers {
			return 0, false
		}
	}

	rootPenalty := 0
	if vs.tones.bass >= 0 {
		if !vs.inst.reentrant && lowestPC != vs.tones.bass {
			return 0, false
		}
	} else if !vs.inst.reentrant && lowestPC != vs.tones.root {
		rootPenalty = 12
	}

	span := f.MaxFret() - f.MinFret()
	return f.MaxFret()*10 + span*3 + muted*6 + rootPenalty + fingers, true
}
