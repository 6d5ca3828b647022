package song

import "fmt"

// Song is a parsed input file.
type Song struct {
	Title    string
	Artist   string
	Composer string
	Capo     int
	Verses   []Verse
}

// AddVerse appends v. A blank verse is dropped when it would open the song
// or follow another blank verse.
func (s *Song) AddVerse(v Verse) bool {
	if v.IsEmpty() {
		if len(s.Verses) == 0 || s.Verses[len(s.Verses)-1].IsEmpty() {
			return false
		}
	}
	s.Verses = append(s.Verses, v)
	return true
}

// HeaderLine is the "Title - Artist" line, or whichever half is set.
func (s *Song) HeaderLine() string {
	switch {
	case s.Title != "" && s.Artist != "":
		return fmt.Sprintf("%s - %s", s.Title, s.Artist)
	case s.Title != "":
		return s.Title
	}
	return s.Artist
}

// ChordUse is one distinct chord of a song.
type ChordUse struct {
	Name  string // spelling at first appearance
	Chord Chord
	Count int
}

// ChordsUsed lists the distinct chords of the song in order of first
// appearance.
func (s *Song) ChordsUsed() []ChordUse {
	return ChordsUsedIn(s.Verses)
}

// ChordsUsedIn lists the distinct chords of verses in order of first
// appearance. Chords are distinct by identity, not spelling.
func ChordsUsedIn(verses []Verse) []ChordUse {
	var out []ChordUse
	pos := map[Identity]int{}
	for _, v := range verses {
		for _, c := range v.chords {
			id := c.Chord.Identity()
			if i, found := pos[id]; found {
				out[i].Count++
				continue
			}
			pos[id] = len(out)
			out = append(out, ChordUse{Name: c.Name, Chord: c.Chord, Count: 1})
		}
	}
	return out
}
