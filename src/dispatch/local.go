package dispatch

import (
	"os/exec"

	"github.com/illikainen/mirror/src/manifest"
	"github.com/illikainen/mirror/src/robocopy"

	"github.com/illikainen/go-utils/src/stringx"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// LocalRunner executes the tool on the local host.  A non-zero exit code is
// not an error at this level: the tool's exit codes up to 16 carry meaning
// and are interpreted by the classifier.
type LocalRunner struct {
	Bin string
}

func (r *LocalRunner) Run(task *manifest.Task) ([]string, int, error) {
	argv, err := Invocation(task).Argv(r.Bin)
	if err != nil {
		return nil, 0, err
	}

	log.Debugf("exec: %v", argv)
	cmd := exec.Command(argv[0], argv[1:]...) // #nosec G204
	out, err := cmd.CombinedOutput()
	lines := stringx.SplitLines(string(out))

	if err != nil {
		exitErr := &exec.ExitError{}
		if errors.As(err, &exitErr) {
			return lines, exitErr.ExitCode(), nil
		}
		return nil, 0, errors.WithStack(err)
	}

	return lines, 0, nil
}

// Invocation resolves a task to the tool invocation it describes.
func Invocation(task *manifest.Task) *robocopy.Invocation {
	if task.InputFile != "" {
		return &robocopy.Invocation{InputFile: task.InputFile}
	}

	return &robocopy.Invocation{
		Source:      task.Arguments.Source,
		Destination: task.Arguments.Destination,
		File:        task.Arguments.File,
		Switches:    task.Arguments.Switches,
	}
}
