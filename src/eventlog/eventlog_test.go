package eventlog

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileRecorder(t *testing.T) {
	path := filepath.Join(t.TempDir(), "events.log")

	recorder, err := NewFileRecorder(path, "run-1")
	require.NoError(t, err)

	recorder.Info("task %s finished", "archive")
	recorder.Error("task %s failed", "backup")
	require.NoError(t, recorder.Close())

	data, err := os.ReadFile(path) // #nosec G304
	require.NoError(t, err)

	assert.Contains(t, string(data), "run-1 INFO task archive finished")
	assert.Contains(t, string(data), "run-1 ERROR task backup failed")
}

func TestFileRecorderConcurrent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "events.log")

	recorder, err := NewFileRecorder(path, "run-1")
	require.NoError(t, err)

	wg := sync.WaitGroup{}
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			recorder.Info("event")
		}()
	}
	wg.Wait()
	require.NoError(t, recorder.Close())

	data, err := os.ReadFile(path) // #nosec G304
	require.NoError(t, err)
	assert.Len(t, splitNonEmpty(string(data)), 10)
}

func splitNonEmpty(s string) []string {
	lines := []string{}
	for _, line := range strings.Split(s, "\n") {
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

func TestFileRecorderBadPath(t *testing.T) {
	_, err := NewFileRecorder(filepath.Join(t.TempDir(), "missing", "events.log"), "run-1")
	require.Error(t, err)
}
