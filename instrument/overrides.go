package instrument

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/rigelrozanski/chordsheet/song"
)

// position accepts either a YAML scalar ("x 3 2 0 1 0") or a sequence
// ([x, 3, 2, 0, 1, 0]).
type position Fingering

func (p *position) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		f, err := ParseFingering(value.Value)
		if err != nil {
			return fmt.Errorf("line %d: %w", value.Line, err)
		}
		*p = position(f)
		return nil
	case yaml.SequenceNode:
		out := make(position, 0, len(value.Content))
		for _, n := range value.Content {
			v, err := ParsePosition(n.Value)
			if err != nil {
				return fmt.Errorf("line %d: %w", n.Line, err)
			}
			out = append(out, v)
		}
		*p = out
		return nil
	}
	return fmt.Errorf("line %d: fingering must be a string or a list", value.Line)
}

// overrideFile is the YAML form of a fingering override file.
type overrideFile struct {
	Instrument string              `yaml:"instrument"`
	Fingerings map[string]position `yaml:"fingerings"`
}

// LoadOverrides reads fingerings from path and pins them on inst. Files
// ending in .yaml or .yml are YAML, anything else is read as a text chart.
func LoadOverrides(path string, inst *Stringed) (int, error) {
	bz, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return ApplyYAML(bz, inst)
	}
	entries, err := ParseChart(strings.Split(string(bz), "\n"))
	if err != nil {
		return 0, fmt.Errorf("%s: %w", path, err)
	}
	return applyEntries(entries, inst)
}

// ApplyYAML pins the fingerings of a YAML override document on inst.
func ApplyYAML(bz []byte, inst *Stringed) (int, error) {
	var f overrideFile
	if err := yaml.Unmarshal(bz, &f); err != nil {
		return 0, err
	}
	if f.Instrument != "" {
		want, err := Lookup(f.Instrument)
		if err != nil {
			return 0, err
		}
		if want.Name() != inst.Name() {
			return 0, fmt.Errorf("fingerings are for %s, not %s", want.Name(), inst.Name())
		}
	}
	entries := make([]ChartEntry, 0, len(f.Fingerings))
	for name, p := range f.Fingerings {
		entries = append(entries, ChartEntry{Name: name, Fingering: Fingering(p)})
	}
	return applyEntries(entries, inst)
}

func applyEntries(entries []ChartEntry, inst *Stringed) (int, error) {
	for _, e := range entries {
		c, err := song.ParseChord(e.Name)
		if err != nil {
			return 0, err
		}
		if err := inst.Override(c, e.Fingering); err != nil {
			return 0, err
		}
	}
	return len(entries), nil
}
