package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rigelrozanski/chordsheet/instrument"
)

var ChordsCmd = &cobra.Command{
	Use:   "chords [filepath]",
	Short: "print the fingering chart of the chords used in a song",
	Args:  cobra.ExactArgs(1),
	RunE:  chordsCmd,
}

func init() {
	addSongFlags(ChordsCmd)
	RootCmd.AddCommand(ChordsCmd)
}

func chordsCmd(cmd *cobra.Command, args []string) error {
	parser, err := newParser(logger)
	if err != nil {
		return err
	}
	s, err := parser.ParseFile(args[0])
	if err != nil {
		return err
	}
	inst, err := loadInstrument()
	if err != nil {
		return err
	}

	var entries []instrument.ChartEntry
	for _, c := range s.ChordsUsed() {
		f, err := inst.Fingering(c.Chord)
		if err != nil {
			return err
		}
		entries = append(entries, instrument.ChartEntry{Name: c.Name, Fingering: f})
	}
	if len(entries) == 0 {
		return fmt.Errorf("%s uses no chords", args[0])
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s (%s)\n%s", inst.Name(), inst.TuningNames(), instrument.FormatChart(entries))
	return nil
}
