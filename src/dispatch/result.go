package dispatch

import (
	"github.com/illikainen/mirror/src/manifest"
	"github.com/illikainen/mirror/src/robocopy"
)

// Result is the outcome of executing one task.  Output and ExitCode are only
// meaningful when Err is nil; Err is set when the task could not be executed
// at all, which is a different failure mode than the tool running and
// reporting a bad exit code.
type Result struct {
	Task     *manifest.Task
	Output   []string
	ExitCode int
	Err      error
}

func (r *Result) Outcome() robocopy.Outcome {
	if r.Err != nil {
		return robocopy.DispatchError
	}
	return robocopy.Classify(r.ExitCode)
}
