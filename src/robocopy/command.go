package robocopy

import (
	"github.com/kballard/go-shellquote"
	"github.com/pkg/errors"
	"github.com/samber/lo"
)

// Invocation is the fully resolved command for one task.  Either InputFile
// points at a pre-built job configuration, or Source/Destination/Switches
// describe the invocation (File defaults to all files).
type Invocation struct {
	Source      string
	Destination string
	File        string
	Switches    string
	InputFile   string
}

// Argv resolves the invocation to the argument vector for the tool binary.
// The switch string from the manifest is tokenized with shell-style quoting
// so that quoted switches with spaces survive.
func (inv *Invocation) Argv(bin string) ([]string, error) {
	if inv.InputFile != "" {
		return []string{bin, "/JOB:" + inv.InputFile}, nil
	}

	switches, err := shellquote.Split(inv.Switches)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid switches: %s", inv.Switches)
	}

	argv := []string{
		bin,
		inv.Source,
		inv.Destination,
		lo.Ternary(inv.File != "", inv.File, "*.*"),
	}
	return append(argv, switches...), nil
}
