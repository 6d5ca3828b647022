package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	GenerateCmd = &cobra.Command{
		Use:   "gen [path]",
		Short: "generate the pdf of a song file, or of every song in a directory",
		Args:  cobra.ExactArgs(1),
		RunE:  genCmd,
	}

	outputDirFlag string
)

func init() {
	addStyleFlags(GenerateCmd)
	GenerateCmd.PersistentFlags().StringVarP(
		&outputDirFlag, "output", "o", "",
		"directory to write the pdfs to, defaults to next to each input")
	RootCmd.AddCommand(GenerateCmd)
}

func genCmd(cmd *cobra.Command, args []string) error {
	st, err := loadStyle(cmd)
	if err != nil {
		return err
	}
	paths, err := gatherSongPaths(args[0])
	if err != nil {
		return err
	}
	if outputDirFlag != "" {
		if err := os.MkdirAll(outputDirFlag, 0o755); err != nil {
			return err
		}
	}

	g := &generator{style: st, logger: logger, measurer: measurerFlag}
	failed := 0
	for _, path := range paths {
		lines, err := readLines(path)
		if err == nil {
			var out string
			out, err = g.run(songJob{name: path, lines: lines, output: outputPath(path, outputDirFlag)})
			if err == nil {
				fmt.Fprintln(cmd.OutOrStdout(), out)
			}
		}
		if err != nil {
			// the remaining songs are still converted
			failed++
			logger.Error("song failed", "path", path, "err", err)
			if len(paths) == 1 {
				return err
			}
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d songs failed", failed, len(paths))
	}
	return nil
}
