package manifest

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// Task is one requested mirror operation.  Exactly one of InputFile and
// Arguments must be set: either the task points at a pre-built job
// configuration for the tool, or it spells out the invocation itself.
type Task struct {
	Name         string     `json:"name"`
	ComputerName string     `json:"computerName"`
	InputFile    string     `json:"inputFile"`
	Arguments    *Arguments `json:"arguments"`
}

type Arguments struct {
	Source      string `json:"source"`
	Destination string `json:"destination"`
	File        string `json:"file"`
	Switches    string `json:"switches"`
}

func (t *Task) Validate(idx int) error {
	path := fmt.Sprintf("Tasks[%d]", idx)

	if t.InputFile != "" && t.Arguments != nil {
		return errors.Errorf("%s.InputFile and %s.Arguments are mutually exclusive",
			path, path)
	}

	if t.InputFile == "" && t.Arguments == nil {
		return errors.Errorf("%s: either %s.InputFile or %s.Arguments must be set",
			path, path, path)
	}

	if t.Arguments != nil {
		err := t.Arguments.validate(path)
		if err != nil {
			return err
		}

		// Tasks without a remote host must use network paths so that it
		// is unambiguous which machine's disks are involved.  Tasks with
		// a remote host must not, because the remote end cannot reach a
		// third machine with delegated credentials (the double-hop
		// problem).
		for _, elt := range []struct {
			name string
			path string
		}{
			{name: path + ".Arguments.Source", path: t.Arguments.Source},
			{name: path + ".Arguments.Destination", path: t.Arguments.Destination},
		} {
			if t.ComputerName == "" && !IsUNC(elt.path) {
				return errors.Errorf("%s must be a UNC path when %s.ComputerName "+
					"is not set", elt.name, path)
			}

			if t.ComputerName != "" && IsUNC(elt.path) {
				return errors.Errorf("%s must not be a UNC path when %s.ComputerName "+
					"is set (double-hop authentication)", elt.name, path)
			}
		}
	}

	return nil
}

func (a *Arguments) validate(path string) error {
	if a.Source == "" {
		return errors.Errorf("%s.Arguments.Source must not be empty", path)
	}

	if a.Destination == "" {
		return errors.Errorf("%s.Arguments.Destination must not be empty", path)
	}

	if a.Switches == "" {
		return errors.Errorf("%s.Arguments.Switches must not be empty", path)
	}

	return nil
}

// Label returns a human-readable identifier for report rows and log file
// names.
func (t *Task) Label() string {
	if t.Name != "" {
		return t.Name
	}

	if t.InputFile != "" {
		return t.InputFile
	}

	return fmt.Sprintf("%s -> %s", t.Arguments.Source, t.Arguments.Destination)
}

func IsUNC(path string) bool {
	return strings.HasPrefix(path, `\\`) || strings.HasPrefix(path, "//")
}
