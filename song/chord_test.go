package song

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseChordComponents(t *testing.T) {
	tests := []struct {
		token  string
		key    Key
		alt    Alteration
		suffix Suffix
	}{
		{"Am7", A, Natural, MinorSeventh},
		{"C", C, Natural, Major},
		{"f#m", F, Sharp, Minor},
		{"Bbmaj7", B, Flat, MajorSeventh},
		{"Sol7sus4", G, Natural, SeventhSus4},
		{"Hm", B, Natural, Minor},
		{"Redim", D, Natural, Diminished},
		{"Ebadd9", E, Flat, AddNine},
	}
	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			c, err := ParseChord(tt.token)
			require.NoError(t, err)
			assert := assert.New(t)
			assert.Equal(tt.key, c.Key)
			assert.Equal(tt.alt, c.Alteration)
			assert.Equal(tt.suffix, c.Suffix)
			assert.False(c.HasBass)
			assert.Equal(-1, c.BassHeight())
		})
	}
}

func TestParseSlashChord(t *testing.T) {
	c, err := ParseChord("G/B")
	require.NoError(t, err)

	assert := assert.New(t)
	assert.Equal(G, c.Key)
	assert.True(c.HasBass)
	assert.Equal(B, c.BassKey)
	assert.Equal(11, c.BassHeight())
	assert.Equal("G/B", c.Name(Alphabetical))
	assert.Equal("Sol/Si", c.Name(Syllabic))
	assert.Equal("G/H", c.Name(GermanAlphabetical))

	c, err = ParseChord("Dm7/F#")
	require.NoError(t, err)
	assert.Equal(F, c.BassKey)
	assert.Equal(Sharp, c.BassAlteration)
	assert.Equal("Dm7/F#", c.String())
}

func TestParseChordErrors(t *testing.T) {
	for _, token := range []string{"", "X", "Glove", "Cmaj9", "C/", "/C", "C/Z", "G/B/D", "Hello"} {
		t.Run(token, func(t *testing.T) {
			_, err := ParseChord(token)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrParse))
			var pe *ParseError
			assert.True(t, errors.As(err, &pe))
		})
	}
}

func TestChordIdentity(t *testing.T) {
	assert := assert.New(t)

	sharp, err := ParseChord("A#")
	require.NoError(t, err)
	flat, err := ParseChord("Bb")
	require.NoError(t, err)
	assert.True(sharp.Equal(flat))
	assert.Equal(10, sharp.Height())

	cb, err := ParseChord("Cb")
	require.NoError(t, err)
	assert.Equal(11, cb.Height())

	minor, err := ParseChord("Bbm")
	require.NoError(t, err)
	assert.False(flat.Equal(minor))

	slash, err := ParseChord("Bb/D")
	require.NoError(t, err)
	assert.False(flat.Equal(slash))
	assert.NotEqual(flat.Identity(), slash.Identity())
}

func TestChordNameRoundTrip(t *testing.T) {
	for _, k := range keys {
		for _, alt := range alterations {
			for _, sfx := range Suffixes {
				c := Chord{Key: k, Alteration: alt, Suffix: sfx}
				for _, withBass := range []bool{false, true} {
					if withBass {
						c.HasBass, c.BassKey, c.BassAlteration = true, E, Flat
					}
					name := c.Name(Alphabetical)
					parsed, err := ParseChord(name)
					require.NoError(t, err, name)
					assert.True(t, c.Equal(parsed), name)
				}
			}
		}
	}
}

func TestIsChordLine(t *testing.T) {
	assert := assert.New(t)
	assert.True(IsChordLine("C G Am F"))
	assert.True(IsChordLine("   C   G/B  "))
	assert.False(IsChordLine("C Glove"))
	assert.False(IsChordLine(""))
	assert.False(IsChordLine("   \t "))
}

func TestParseNotation(t *testing.T) {
	assert := assert.New(t)
	n, err := ParseNotation("Syllabic")
	assert.NoError(err)
	assert.Equal(Syllabic, n)

	n, err = ParseNotation("German Alphabetical")
	assert.NoError(err)
	assert.Equal(GermanAlphabetical, n)

	_, err = ParseNotation("solfege")
	assert.Error(err)
}
