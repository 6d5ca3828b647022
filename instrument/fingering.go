package instrument

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	// Muted marks a string that is not played.
	Muted = -1
	// Open marks a string played without fretting.
	Open = 0
)

// Fingering holds one fret position per string, from the lowest string in
// the tuning to the highest.
type Fingering []int

// MaxFret is the highest fretted position, 0 when nothing is fretted.
func (f Fingering) MaxFret() int {
	max := 0
	for _, p := range f {
		if p > max {
			max = p
		}
	}
	return max
}

// MinFret is the lowest fretted position, 0 when nothing is fretted.
func (f Fingering) MinFret() int {
	min := 0
	for _, p := range f {
		if p > 0 && (min == 0 || p < min) {
			min = p
		}
	}
	return min
}

// Reversed mirrors the string order for left-handed players.
func (f Fingering) Reversed() Fingering {
	out := make(Fingering, len(f))
	for i, p := range f {
		out[len(f)-1-i] = p
	}
	return out
}

// Symbol is how a single position is written: "x", "0" or the fret.
func Symbol(p int) string {
	if p == Muted {
		return "x"
	}
	return strconv.Itoa(p)
}

func (f Fingering) String() string {
	parts := make([]string, len(f))
	for i, p := range f {
		parts[i] = Symbol(p)
	}
	return strings.Join(parts, " ")
}

// ParsePosition reads "x", "o", "0" or a fret number.
func ParsePosition(s string) (int, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "x", "-":
		return Muted, nil
	case "o":
		return Open, nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("invalid fret position %q", s)
	}
	if n < 0 {
		return 0, fmt.Errorf("invalid fret position %q", s)
	}
	return n, nil
}

// ParseFingering reads positions separated by spaces or commas, e.g.
// "x 3 2 0 1 0". A run of single digit positions such as "x32010" is also
// accepted.
func ParseFingering(s string) (Fingering, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool { return r == ' ' || r == ',' || r == '\t' })
	if len(fields) == 1 && len(fields[0]) > 1 {
		fields = strings.Split(fields[0], "")
	}
	if len(fields) == 0 {
		return nil, fmt.Errorf("empty fingering")
	}
	out := make(Fingering, len(fields))
	for i, field := range fields {
		p, err := ParsePosition(field)
		if err != nil {
			return nil, err
		}
		out[i] = p
	}
	return out, nil
}
