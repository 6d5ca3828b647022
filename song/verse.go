package song

import (
	"fmt"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"
)

// WordLocation is a lyric word and the offset of its first character.
// Offsets count runes, not bytes.
type WordLocation struct {
	Word  string
	Index int
}

// LastLetter is the offset of the final character of the word.
func (w WordLocation) LastLetter() int {
	return w.Index + utf8.RuneCountInString(w.Word) - 1
}

// covers reports whether offset falls under the word.
func (w WordLocation) covers(offset int) bool {
	return offset >= w.Index && offset <= w.LastLetter()
}

// isTrueWord reports whether the word has at least one letter, which
// excludes tokens such as "-" or "...".
func (w WordLocation) isTrueWord() bool {
	for _, r := range w.Word {
		if unicode.IsLetter(r) {
			return true
		}
	}
	return false
}

// ChordLocation is a chord as written on the chord line and the offset
// it was written at.
type ChordLocation struct {
	Name  string
	Index int
	Chord Chord
}

// Verse is one lyric line with its chords, or a blank paragraph marker when
// it holds nothing. A Verse is never modified once built; splitting returns
// new verses.
type Verse struct {
	words  []WordLocation
	chords []ChordLocation
}

// NewVerse aligns a lyric line with a chord line. Either may be empty.
func NewVerse(text, chordLine string) (Verse, error) {
	var v Verse
	for _, tok := range tokenize(text) {
		v.words = append(v.words, WordLocation{Word: tok.Word, Index: tok.Index})
	}
	for _, tok := range tokenize(chordLine) {
		c, err := ParseChord(tok.Word)
		if err != nil {
			return Verse{}, err
		}
		v.chords = append(v.chords, ChordLocation{Name: tok.Word, Index: tok.Index, Chord: c})
	}
	v.resetIndex()
	return v, nil
}

// NewVerseFromLocations builds a verse from already located tokens. The
// locations are copied, sorted by offset and renormalized.
func NewVerseFromLocations(words []WordLocation, chords []ChordLocation) Verse {
	v := Verse{
		words:  append([]WordLocation(nil), words...),
		chords: append([]ChordLocation(nil), chords...),
	}
	sort.SliceStable(v.words, func(i, j int) bool { return v.words[i].Index < v.words[j].Index })
	sort.SliceStable(v.chords, func(i, j int) bool { return v.chords[i].Index < v.chords[j].Index })
	v.resetIndex()
	return v
}

// tokenize splits s on whitespace keeping the rune offset of each token.
func tokenize(s string) (out []WordLocation) {
	start := -1
	var b strings.Builder
	i := 0
	for _, r := range s {
		if unicode.IsSpace(r) {
			if start >= 0 {
				out = append(out, WordLocation{Word: b.String(), Index: start})
				b.Reset()
				start = -1
			}
		} else {
			if start < 0 {
				start = i
			}
			b.WriteRune(r)
		}
		i++
	}
	if start >= 0 {
		out = append(out, WordLocation{Word: b.String(), Index: start})
	}
	return out
}

// resetIndex shifts every offset so the smallest one is 0.
func (v *Verse) resetIndex() {
	if v.IsEmpty() {
		return
	}
	min := -1
	for _, w := range v.words {
		if min < 0 || w.Index < min {
			min = w.Index
		}
	}
	for _, c := range v.chords {
		if min < 0 || c.Index < min {
			min = c.Index
		}
	}
	if min == 0 {
		return
	}
	for i := range v.words {
		v.words[i].Index -= min
	}
	for i := range v.chords {
		v.chords[i].Index -= min
	}
}

// IsEmpty reports whether the verse is a paragraph marker.
func (v Verse) IsEmpty() bool { return len(v.words) == 0 && len(v.chords) == 0 }

func (v Verse) Words() []WordLocation { return append([]WordLocation(nil), v.words...) }

func (v Verse) Chords() []ChordLocation { return append([]ChordLocation(nil), v.chords...) }

// HasText reports whether the verse carries any lyric words.
func (v Verse) HasText() bool { return len(v.words) > 0 }

// Text lays the words out at their offsets.
func (v Verse) Text() string {
	if len(v.words) == 0 {
		return ""
	}
	line := make([]rune, v.words[len(v.words)-1].LastLetter()+1)
	for i := range line {
		line[i] = ' '
	}
	for _, w := range v.words {
		copy(line[w.Index:], []rune(w.Word))
	}
	return string(line)
}

// ChordLine lays the chord names out at their offsets. Names are written
// left to right so a long name may be overwritten by the next chord.
func (v Verse) ChordLine() string {
	var b strings.Builder
	n := 0
	for _, c := range v.chords {
		for ; n < c.Index; n++ {
			b.WriteByte(' ')
		}
		if n > c.Index {
			b.WriteByte(' ')
			n++
		}
		b.WriteString(c.Name)
		n += utf8.RuneCountInString(c.Name)
	}
	return b.String()
}

func (v Verse) String() string {
	if v.IsEmpty() {
		return "(blank)"
	}
	return fmt.Sprintf("%s\n%s", v.ChordLine(), v.Text())
}

// wordUnder returns the index of the word the chord sits under or -1.
func (v Verse) wordUnder(c ChordLocation) int {
	for i, w := range v.words {
		if w.covers(c.Index) {
			return i
		}
	}
	return -1
}

// SplitByIndex cuts the verse after offset cut. A word goes left when its
// last letter is at or before cut. A chord sitting under a word always
// follows that word; any other chord goes left when its offset is at or
// before cut. Both halves are renormalized. The receiver is not modified.
func (v Verse) SplitByIndex(cut int) (left, right Verse) {
	leftWord := make([]bool, len(v.words))
	for i, w := range v.words {
		if w.LastLetter() <= cut {
			leftWord[i] = true
			left.words = append(left.words, w)
		} else {
			right.words = append(right.words, w)
		}
	}
	for _, c := range v.chords {
		toLeft := c.Index <= cut
		if wi := v.wordUnder(c); wi >= 0 {
			toLeft = leftWord[wi]
		}
		if toLeft {
			left.chords = append(left.chords, c)
		} else {
			right.chords = append(right.chords, c)
		}
	}
	left.resetIndex()
	right.resetIndex()
	return left, right
}

// PossibleCutIndexes lists, in ascending order, the offsets at which
// SplitByIndex yields two non-empty verses.
func (v Verse) PossibleCutIndexes() []int {
	candidates := map[int]struct{}{}
	for i, w := range v.words {
		if i < len(v.words)-1 {
			candidates[w.LastLetter()] = struct{}{}
		}
	}
	for _, w := range v.words {
		for _, c := range v.chords {
			if c.Index > w.LastLetter() {
				candidates[w.LastLetter()] = struct{}{}
				break
			}
		}
	}
	for _, c := range v.chords {
		candidates[c.Index] = struct{}{}
	}

	cuts := make([]int, 0, len(candidates))
	for c := range candidates {
		left, right := v.SplitByIndex(c)
		if left.IsEmpty() || right.IsEmpty() {
			continue
		}
		cuts = append(cuts, c)
	}
	sort.Ints(cuts)
	return cuts
}

// TrueWordCount is the number of words holding at least one letter.
func (v Verse) TrueWordCount() int {
	n := 0
	for _, w := range v.words {
		if w.isTrueWord() {
			n++
		}
	}
	return n
}

// SplitByWords moves n true words to the right half when fromEnd is set,
// or keeps n true words in the left half otherwise. Tokens without letters
// stay with the word before them.
func (v Verse) SplitByWords(n int, fromEnd bool) (left, right Verse, err error) {
	total := v.TrueWordCount()
	if n <= 0 || n >= total {
		return Verse{}, Verse{}, fmt.Errorf("cannot split %d of %d words", n, total)
	}

	// boundary is the number of words kept on the left
	boundary := -1
	if fromEnd {
		count := 0
		for i := len(v.words) - 1; i >= 0; i-- {
			if v.words[i].isTrueWord() {
				count++
			}
			if count == n {
				boundary = i
				break
			}
		}
	} else {
		count := 0
		for i, w := range v.words {
			if w.isTrueWord() {
				count++
			}
			if count == n {
				boundary = i + 1
			}
			if count > n {
				break
			}
		}
	}
	if boundary <= 0 || boundary >= len(v.words) {
		return Verse{}, Verse{}, fmt.Errorf("cannot split %d of %d words", n, total)
	}
	left, right = v.SplitByIndex(v.words[boundary-1].LastLetter())
	return left, right, nil
}
