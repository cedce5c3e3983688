package dispatch

import (
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/illikainen/mirror/src/manifest"
	"github.com/illikainen/mirror/src/robocopy"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRunner struct {
	mutex    sync.Mutex
	delay    time.Duration
	exitFor  map[string]int
	failFor  map[string]error
	inflight int32
	maxSeen  int32
	calls    []string
}

func (r *fakeRunner) Run(task *manifest.Task) ([]string, int, error) {
	current := atomic.AddInt32(&r.inflight, 1)
	defer atomic.AddInt32(&r.inflight, -1)

	for {
		seen := atomic.LoadInt32(&r.maxSeen)
		if current <= seen || atomic.CompareAndSwapInt32(&r.maxSeen, seen, current) {
			break
		}
	}

	if r.delay != 0 {
		time.Sleep(r.delay)
	}

	r.mutex.Lock()
	r.calls = append(r.calls, task.Label())
	r.mutex.Unlock()

	if err := r.failFor[task.Label()]; err != nil {
		return nil, 0, err
	}

	return []string{"output for " + task.Label()}, r.exitFor[task.Label()], nil
}

type fakeRemote struct {
	runner fakeRunner
	hosts  []string
	mutex  sync.Mutex
}

func (r *fakeRemote) Run(host string, task *manifest.Task) ([]string, int, error) {
	r.mutex.Lock()
	r.hosts = append(r.hosts, host)
	r.mutex.Unlock()

	return r.runner.Run(task)
}

func localTask(name string) *manifest.Task {
	return &manifest.Task{
		Name: name,
		Arguments: &manifest.Arguments{
			Source:      `\\filer\` + name,
			Destination: `\\backup\` + name,
			Switches:    "/MIR",
		},
	}
}

func TestDispatchAccountsForEveryTask(t *testing.T) {
	tasks := []*manifest.Task{}
	for i := 0; i < 20; i++ {
		tasks = append(tasks, localTask(fmt.Sprintf("task%02d", i)))
	}

	runner := &fakeRunner{delay: time.Millisecond}
	dispatcher := &Dispatcher{Limit: 6, Local: runner, Remote: &fakeRemote{}}

	results := dispatcher.Dispatch(tasks)
	require.Len(t, results, 20)

	for i, result := range results {
		require.NotNil(t, result)
		assert.Equal(t, tasks[i], result.Task)
		assert.NoError(t, result.Err)
		assert.Equal(t, robocopy.NoChange, result.Outcome())
	}

	assert.LessOrEqual(t, runner.maxSeen, int32(6))
}

func TestDispatchSequentialEquivalence(t *testing.T) {
	tasks := []*manifest.Task{}
	exitFor := map[string]int{}
	for i := 0; i < 12; i++ {
		name := fmt.Sprintf("task%02d", i)
		tasks = append(tasks, localTask(name))
		exitFor[name] = i % 4
	}

	collect := func(limit int) map[string]*Result {
		runner := &fakeRunner{delay: time.Millisecond, exitFor: exitFor}
		dispatcher := &Dispatcher{Limit: limit, Local: runner, Remote: &fakeRemote{}}

		byLabel := map[string]*Result{}
		for _, result := range dispatcher.Dispatch(tasks) {
			byLabel[result.Task.Label()] = result
		}
		return byLabel
	}

	sequential := collect(1)
	parallel := collect(6)
	require.Len(t, parallel, len(sequential))

	for label, result := range sequential {
		other, ok := parallel[label]
		require.Truef(t, ok, "missing result for %s", label)
		assert.Equal(t, result.ExitCode, other.ExitCode)
		assert.Equal(t, result.Output, other.Output)
		assert.Equal(t, result.Outcome(), other.Outcome())
	}
}

func TestDispatchSequentialLimit(t *testing.T) {
	tasks := []*manifest.Task{
		localTask("a"),
		localTask("b"),
		localTask("c"),
	}

	runner := &fakeRunner{delay: 5 * time.Millisecond}
	dispatcher := &Dispatcher{Limit: 1, Local: runner, Remote: &fakeRemote{}}

	results := dispatcher.Dispatch(tasks)
	require.Len(t, results, 3)
	assert.Equal(t, int32(1), runner.maxSeen)
}

func TestDispatchIsolatesFailures(t *testing.T) {
	tasks := []*manifest.Task{
		localTask("good"),
		localTask("bad"),
		localTask("ugly"),
	}

	runner := &fakeRunner{
		failFor: map[string]error{"bad": errors.Errorf("host unreachable")},
		exitFor: map[string]int{"ugly": 8},
	}
	dispatcher := &Dispatcher{Limit: 2, Local: runner, Remote: &fakeRemote{}}

	results := dispatcher.Dispatch(tasks)
	require.Len(t, results, 3)

	byLabel := map[string]*Result{}
	for _, result := range results {
		byLabel[result.Task.Label()] = result
	}

	assert.Equal(t, robocopy.NoChange, byLabel["good"].Outcome())

	assert.Equal(t, robocopy.DispatchError, byLabel["bad"].Outcome())
	require.Error(t, byLabel["bad"].Err)
	assert.Empty(t, byLabel["bad"].Output)

	assert.Equal(t, robocopy.Fail, byLabel["ugly"].Outcome())
	assert.NoError(t, byLabel["ugly"].Err)
}

func TestDispatchRoutesRemoteTasks(t *testing.T) {
	local := localTask("local")

	remote := localTask("remote")
	remote.ComputerName = "filer01"
	remote.Arguments.Source = `D:\data`
	remote.Arguments.Destination = `E:\archive`

	localhost := localTask("localhost")
	localhost.ComputerName = "localhost"

	runner := &fakeRunner{}
	remoteRunner := &fakeRemote{}
	dispatcher := &Dispatcher{Limit: 2, Local: runner, Remote: remoteRunner}

	results := dispatcher.Dispatch([]*manifest.Task{local, remote, localhost})
	require.Len(t, results, 3)

	assert.ElementsMatch(t, []string{"local", "localhost"}, runner.calls)
	assert.Equal(t, []string{"filer01"}, remoteRunner.hosts)
	assert.ElementsMatch(t, []string{"remote"}, remoteRunner.runner.calls)
}
