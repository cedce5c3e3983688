package artifacts

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// Store is the per-run artifact directory: one raw tool log per task, the
// rendered report, the event trail and the system error list.  Task logs go
// to distinct paths derived from the task index, so concurrent writers never
// contend on a file.
type Store struct {
	RunID string
	Dir   string
}

var unsafeChars = regexp.MustCompile(`[^a-zA-Z0-9._-]+`)

func NewStore(base string) (*Store, error) {
	runID := uuid.New().String()
	dir := filepath.Join(base, fmt.Sprintf("%s-%s",
		time.Now().Format("20060102-150405"), runID[:8]))

	err := os.MkdirAll(dir, 0700)
	if err != nil {
		return nil, errors.Wrapf(err, "create log directory %s", dir)
	}

	log.Debugf("artifacts: %s", dir)
	return &Store{RunID: runID, Dir: dir}, nil
}

func (s *Store) TaskLogPath(idx int, label string) string {
	name := unsafeChars.ReplaceAllString(label, "_")
	return filepath.Join(s.Dir, fmt.Sprintf("task-%03d-%s.log", idx, name))
}

func (s *Store) WriteTaskLog(idx int, label string, lines []string) (string, error) {
	path := s.TaskLogPath(idx, label)

	err := os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0600)
	if err != nil {
		return "", errors.Wrapf(err, "write %s", path)
	}

	return path, nil
}

func (s *Store) WriteReport(body string) (string, error) {
	path := filepath.Join(s.Dir, "report.html")

	err := os.WriteFile(path, []byte(body), 0600)
	if err != nil {
		return "", errors.Wrapf(err, "write %s", path)
	}

	return path, nil
}

func (s *Store) WriteSystemErrors(errs []string) (string, error) {
	if len(errs) == 0 {
		return "", nil
	}

	path := filepath.Join(s.Dir, "errors.log")

	err := os.WriteFile(path, []byte(strings.Join(errs, "\n")+"\n"), 0600)
	if err != nil {
		return "", errors.Wrapf(err, "write %s", path)
	}

	return path, nil
}

func (s *Store) EventLogPath() string {
	return filepath.Join(s.Dir, "events.log")
}
