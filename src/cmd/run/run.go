package runcmd

import (
	rootcmd "github.com/illikainen/mirror/src/cmd/root"
	"github.com/illikainen/mirror/src/job"

	"github.com/illikainen/go-utils/src/fn"
	"github.com/spf13/cobra"
)

var command = &cobra.Command{
	Use:   "run",
	Short: "Run the tasks in a manifest",
	RunE:  run,
}

var options struct {
	*rootcmd.Options
	file   string
	logDir string
	dryRun bool
}

func Command(opts *rootcmd.Options) *cobra.Command {
	options.Options = opts
	return command
}

func init() {
	flags := command.Flags()
	flags.SortFlags = false

	flags.StringVarP(&options.file, "file", "f", "", "Manifest to run")
	fn.Must(command.MarkFlagRequired("file"))

	flags.StringVarP(&options.logDir, "log-dir", "", "",
		"Directory for log artifacts (overrides the configuration)")

	flags.BoolVarP(&options.dryRun, "dry-run", "d", false,
		"Resolve and show every task without executing anything")
}

func run(cmd *cobra.Command, _ []string) error {
	cmd.SilenceUsage = true

	return job.Run(&job.Options{
		Path:   options.file,
		LogDir: options.logDir,
		DryRun: options.dryRun,
		Config: options.Config,
	})
}
