package classifycmd

import (
	"fmt"
	"strconv"

	rootcmd "github.com/illikainen/mirror/src/cmd/root"
	"github.com/illikainen/mirror/src/robocopy"

	"github.com/spf13/cobra"
)

var command = &cobra.Command{
	Use:   "classify <exit code>",
	Short: "Show the outcome category for a tool exit code",
	Args:  cobra.ExactArgs(1),
	RunE:  run,
}

func Command(_ *rootcmd.Options) *cobra.Command {
	return command
}

func run(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true

	code, err := strconv.Atoi(args[0])
	if err != nil {
		return err
	}

	outcome := robocopy.Classify(code)
	fmt.Printf("%s: %s\n", outcome, outcome.Format(code))
	return nil
}
