package measure

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rigelrozanski/chordsheet/layout"
)

func TestMonospace(t *testing.T) {
	assert := assert.New(t)
	f := layout.Font{Family: "Courier", Size: 10}
	m := Courier()

	w, h := m.Measure("hello", f)
	assert.InDelta(5*0.6*10*layout.PointsToMM, w, 1e-9)
	assert.InDelta(10*layout.PointsToMM, h, 1e-9)

	// runes, not bytes
	w2, _ := m.Measure("héllo", f)
	assert.Equal(w, w2)

	assert.Equal(3, m.Chars(3.5*m.CharWidth(f), f))
}

func TestGoFont(t *testing.T) {
	g, err := NewGoFont()
	require.NoError(t, err)
	assert := assert.New(t)

	regular := layout.Font{Family: "Helvetica", Size: 10}
	w, h := g.Measure("", regular)
	assert.Zero(w)
	assert.InDelta(regular.Height(), h, 1e-9)

	short, _ := g.Measure("Hello", regular)
	long, _ := g.Measure("Hello world", regular)
	assert.Greater(short, 0.0)
	assert.Greater(long, short)

	narrow, _ := g.Measure("iiii", regular)
	wide, _ := g.Measure("WWWW", regular)
	assert.Greater(wide, narrow)

	big, _ := g.Measure("Hello", layout.Font{Family: "Helvetica", Size: 20})
	assert.InDelta(2*short, big, 0.2)

	// mono advances do not depend on the text
	mono := layout.Font{Family: "Courier", Size: 10}
	mi, _ := g.Measure("iiii", mono)
	mw, _ := g.Measure("WWWW", mono)
	assert.InDelta(mi, mw, 1e-9)

	again, _ := g.Measure("Hello", regular)
	assert.Equal(short, again)
}
