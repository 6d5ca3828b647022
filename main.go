package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := RootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var (
	// RootCmd represents the base command when called without any subcommands
	RootCmd = &cobra.Command{
		Use:               "chordsheet",
		Short:             "lay lyrics and chords out as printable chord sheets",
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: setupLogger,
	}

	logLevelFlag  string
	logFormatFlag string

	logger = slog.New(slog.NewTextHandler(io.Discard, nil))
)

func init() {
	RootCmd.PersistentFlags().StringVar(
		&logLevelFlag, "log-level", "info",
		"log level, debug, info, warn or error")
	RootCmd.PersistentFlags().StringVar(
		&logFormatFlag, "log-format", "text",
		"log format, text or json")
}

func setupLogger(cmd *cobra.Command, args []string) error {
	l, err := newLogger(os.Stderr, logLevelFlag, logFormatFlag)
	if err != nil {
		return err
	}
	logger = l
	return nil
}
