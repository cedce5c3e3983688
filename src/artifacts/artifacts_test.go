package artifacts

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStore(t *testing.T) {
	base := t.TempDir()

	store, err := NewStore(base)
	require.NoError(t, err)

	assert.NotEmpty(t, store.RunID)
	assert.DirExists(t, store.Dir)
	assert.True(t, strings.HasPrefix(store.Dir, base))
}

func TestNewStoreUncreatable(t *testing.T) {
	file := filepath.Join(t.TempDir(), "not-a-dir")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0600))

	_, err := NewStore(file)
	require.Error(t, err)
}

func TestTaskLogPathSanitized(t *testing.T) {
	store := &Store{Dir: "/logs"}

	path := store.TaskLogPath(3, `\\filer\data -> \\backup\data`)
	assert.Equal(t, "/logs/task-003-_filer_data_-_backup_data.log", path)
}

func TestWriteTaskLog(t *testing.T) {
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)

	path, err := store.WriteTaskLog(0, "archive", []string{"line1", "line2"})
	require.NoError(t, err)

	data, err := os.ReadFile(path) // #nosec G304
	require.NoError(t, err)
	assert.Equal(t, "line1\nline2\n", string(data))
}

func TestWriteReport(t *testing.T) {
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)

	path, err := store.WriteReport("<html></html>")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(store.Dir, "report.html"), path)
	assert.FileExists(t, path)
}

func TestWriteSystemErrors(t *testing.T) {
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)

	path, err := store.WriteSystemErrors(nil)
	require.NoError(t, err)
	assert.Empty(t, path)

	path, err = store.WriteSystemErrors([]string{"disk full"})
	require.NoError(t, err)
	assert.FileExists(t, path)
}
