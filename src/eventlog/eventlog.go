package eventlog

import (
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/illikainen/go-utils/src/errorx"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// Recorder is the operating-system event trail.  The default implementation
// appends structured lines to a file and mirrors them to the log; platform
// event logs can be plugged in behind the same interface.
type Recorder interface {
	Info(format string, args ...any)
	Error(format string, args ...any)
	Close() error
}

// FileRecorder writes one line per event.  Safe for concurrent use.
type FileRecorder struct {
	runID string
	file  *os.File
	mutex sync.Mutex
}

func NewFileRecorder(path string, runID string) (*FileRecorder, error) {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600) // #nosec G304
	if err != nil {
		return nil, errors.Wrapf(err, "create %s", path)
	}

	return &FileRecorder{runID: runID, file: file}, nil
}

func (r *FileRecorder) Info(format string, args ...any) {
	log.Infof(format, args...)
	r.write("INFO", fmt.Sprintf(format, args...))
}

func (r *FileRecorder) Error(format string, args ...any) {
	log.Errorf(format, args...)
	r.write("ERROR", fmt.Sprintf(format, args...))
}

func (r *FileRecorder) write(severity string, msg string) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	_, err := fmt.Fprintf(r.file, "%s %s %s %s\n",
		time.Now().Format(time.RFC3339), r.runID, severity, msg)
	if err != nil {
		log.Warnf("event log: %s", err)
	}
}

func (r *FileRecorder) Close() (err error) {
	defer errorx.Defer(r.file.Close, &err)
	return nil
}

// Discard mirrors events to the log only.  Used as fallback when the event
// file cannot be created.
type Discard struct{}

func (Discard) Info(format string, args ...any)  { log.Infof(format, args...) }
func (Discard) Error(format string, args ...any) { log.Errorf(format, args...) }
func (Discard) Close() error                     { return nil }
