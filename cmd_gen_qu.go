package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/rigelrozanski/thranch/quac"
	"github.com/spf13/cobra"
)

var GenerateQuCmd = &cobra.Command{
	Use:   "gen-qu [qu-id]",
	Short: "generate the pdf of the song stored at the qu-id",
	Args:  cobra.ExactArgs(1),
	RunE:  genQuCmd,
}

func init() {
	addStyleFlags(GenerateQuCmd)
	RootCmd.AddCommand(GenerateQuCmd)
}

func genQuCmd(cmd *cobra.Command, args []string) error {
	st, err := loadStyle(cmd)
	if err != nil {
		return err
	}
	quid, err := strconv.Atoi(args[0])
	if err != nil {
		return err
	}

	quac.Initialize(os.ExpandEnv("$HOME/.thranch_config"))
	content, found := quac.GetContentByID(uint32(quid))
	if !found {
		return fmt.Errorf("could not find anything under id: %v", quid)
	}

	g := &generator{style: st, logger: logger, measurer: measurerFlag}
	out, err := g.run(songJob{
		name:  "qu-" + args[0],
		lines: strings.Split(string(content), "\n"),
	})
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), out)
	return nil
}
