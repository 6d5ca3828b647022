package instrument

import (
	"fmt"
	"strings"
)

const (
	chartRule      = '|'
	chartRowPrefix = "- "
	chartIndent    = "  "
)

// ChartEntry is one column of a text chord chart.
type ChartEntry struct {
	Name      string
	Fingering Fingering
}

// FormatChart writes fingerings as a fixed-width text chart, one row per
// string from the lowest string down, chord names under the closing rule:
//
//	  |  |  |
//	- 2  0  0
//	- 0  2  0
//	- 1  3  0
//	- 0  2  3
//	  |  |  |
//	  F  G  C
func FormatChart(entries []ChartEntry) string {
	if len(entries) == 0 {
		return ""
	}
	strs := 0
	widths := make([]int, len(entries))
	for i, e := range entries {
		w := len(e.Name)
		for _, p := range e.Fingering {
			if n := len(Symbol(p)); n > w {
				w = n
			}
		}
		widths[i] = w + 2
		if len(e.Fingering) > strs {
			strs = len(e.Fingering)
		}
	}

	var rule strings.Builder
	rule.WriteString(chartIndent)
	for i := range entries {
		rule.WriteRune(chartRule)
		if i < len(entries)-1 {
			rule.WriteString(strings.Repeat(" ", widths[i]-1))
		}
	}

	var b strings.Builder
	b.WriteString(rule.String() + "\n")
	for s := 0; s < strs; s++ {
		var row strings.Builder
		row.WriteString(chartRowPrefix)
		for i, e := range entries {
			cell := " "
			if s < len(e.Fingering) {
				cell = Symbol(e.Fingering[s])
			}
			row.WriteString(pad(cell, widths[i], i == len(entries)-1))
		}
		b.WriteString(row.String() + "\n")
	}
	b.WriteString(rule.String() + "\n")
	var names strings.Builder
	names.WriteString(chartIndent)
	for i, e := range entries {
		names.WriteString(pad(e.Name, widths[i], i == len(entries)-1))
	}
	b.WriteString(names.String() + "\n")
	return b.String()
}

func pad(s string, width int, last bool) string {
	if last {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}

// ParseChart reads a chart written by FormatChart. Columns are located by
// the rule characters of the first line.
func ParseChart(lines []string) ([]ChartEntry, error) {
	lines = trimBlank(lines)
	if len(lines) < 4 {
		return nil, fmt.Errorf("improper number of chart lines, want at least 4 have %d", len(lines))
	}
	if !strings.HasPrefix(lines[0], chartIndent+string(chartRule)) {
		return nil, fmt.Errorf("not a chord chart (line 1)")
	}
	var cols []int
	for i, r := range lines[0] {
		if r == chartRule {
			cols = append(cols, i)
		}
	}

	strs := 0
	for strs+1 < len(lines) && strings.HasPrefix(lines[strs+1], chartRowPrefix) {
		strs++
	}
	if strs == 0 {
		return nil, fmt.Errorf("not a chord chart (no string rows)")
	}
	if len(lines) < strs+3 || !strings.HasPrefix(lines[strs+1], chartIndent+string(chartRule)) {
		return nil, fmt.Errorf("not a chord chart (line %d)", strs+2)
	}
	names := lines[strs+2]

	var out []ChartEntry
	for _, col := range cols {
		name := cellAt(names, col)
		if name == "" {
			// an unlabelled column ends the chart
			break
		}
		e := ChartEntry{Name: name}
		for s := 1; s <= strs; s++ {
			cell := cellAt(lines[s], col)
			p, err := ParsePosition(cell)
			if err != nil {
				return nil, fmt.Errorf("chord %s, line %d: %w", name, s+1, err)
			}
			e.Fingering = append(e.Fingering, p)
		}
		out = append(out, e)
	}
	return out, nil
}

// cellAt reads the token starting at column col.
func cellAt(line string, col int) string {
	if col >= len(line) || line[col] == ' ' {
		return ""
	}
	end := strings.IndexByte(line[col:], ' ')
	if end < 0 {
		return line[col:]
	}
	return line[col : col+end]
}

func trimBlank(lines []string) []string {
	for len(lines) > 0 && strings.TrimSpace(lines[0]) == "" {
		lines = lines[1:]
	}
	for len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}
