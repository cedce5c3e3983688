package validatecmd

import (
	"fmt"

	rootcmd "github.com/illikainen/mirror/src/cmd/root"
	"github.com/illikainen/mirror/src/manifest"

	"github.com/illikainen/go-utils/src/fn"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

var command = &cobra.Command{
	Use:   "validate",
	Short: "Validate a manifest without running it",
	RunE:  run,
}

var options struct {
	*rootcmd.Options
	file string
}

func Command(opts *rootcmd.Options) *cobra.Command {
	options.Options = opts
	return command
}

func init() {
	flags := command.Flags()
	flags.SortFlags = false

	flags.StringVarP(&options.file, "file", "f", "", "Manifest to validate")
	fn.Must(command.MarkFlagRequired("file"))
}

func run(cmd *cobra.Command, _ []string) error {
	cmd.SilenceUsage = true

	man, err := manifest.Load(options.file)
	if err != nil {
		return err
	}

	fmt.Printf("%s: %d tasks, concurrency %d, notify %s\n", options.file,
		len(man.Tasks), man.MaxConcurrency, man.Notify.When)

	for i, task := range man.Tasks {
		host := lo.Ternary(task.ComputerName != "", task.ComputerName, "localhost")
		fmt.Printf("task %d (%s) on %s\n", i, task.Label(), host)
	}

	return nil
}
