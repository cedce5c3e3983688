package cmd

import (
	classifycmd "github.com/illikainen/mirror/src/cmd/classify"
	rootcmd "github.com/illikainen/mirror/src/cmd/root"
	runcmd "github.com/illikainen/mirror/src/cmd/run"
	validatecmd "github.com/illikainen/mirror/src/cmd/validate"

	"github.com/spf13/cobra"
)

func Command() *cobra.Command {
	c, opts := rootcmd.Command()
	c.AddCommand(runcmd.Command(opts))
	c.AddCommand(validatecmd.Command(opts))
	c.AddCommand(classifycmd.Command(opts))
	return c
}
