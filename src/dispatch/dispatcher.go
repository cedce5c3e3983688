package dispatch

import (
	"os"
	"strings"

	"github.com/illikainen/mirror/src/manifest"

	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// Runner executes one task on the local host.
type Runner interface {
	Run(task *manifest.Task) ([]string, int, error)
}

// RemoteRunner executes one task on a named remote host.
type RemoteRunner interface {
	Run(host string, task *manifest.Task) ([]string, int, error)
}

// Dispatcher fans out tasks to a worker pool of at most Limit concurrent
// executions.  Limit 1 degenerates to sequential execution with identical
// results.
type Dispatcher struct {
	Limit  int
	Local  Runner
	Remote RemoteRunner
}

// Dispatch executes every task and returns exactly one result per task, in
// submission order.  Each worker writes to its own pre-allocated slot, so
// the collection needs no locking.  A task failure is converted to data on
// its result and never affects sibling tasks.
func (d *Dispatcher) Dispatch(tasks []*manifest.Task) []*Result {
	results := make([]*Result, len(tasks))

	group := errgroup.Group{}
	group.SetLimit(d.Limit)

	for i, task := range tasks {
		idx := i
		t := task

		group.Go(func() error {
			results[idx] = d.run(t)
			return nil
		})
	}

	// Workers never return errors; failures are folded into the results.
	_ = group.Wait()

	return results
}

func (d *Dispatcher) run(task *manifest.Task) *Result {
	label := task.Label()
	log.Infof("%s: starting", label)

	var lines []string
	var code int
	var err error

	if isLocal(task.ComputerName) {
		lines, code, err = d.Local.Run(task)
	} else {
		lines, code, err = d.Remote.Run(task.ComputerName, task)
	}

	if err != nil {
		log.Warnf("%s: %s", label, err)
		return &Result{Task: task, Err: err}
	}

	log.Infof("%s: finished with exit code %d", label, code)
	return &Result{Task: task, Output: lines, ExitCode: code}
}

func isLocal(name string) bool {
	if name == "" || strings.EqualFold(name, "localhost") {
		return true
	}

	hostname, err := os.Hostname()
	if err != nil {
		return false
	}

	return strings.EqualFold(name, hostname)
}
