package manifest

import (
	"encoding/json"
	"os"

	"github.com/pkg/errors"
)

// Manifest describes one mirroring run: how many tasks may execute in
// parallel, who should be told about the outcome, and the tasks themselves.
// It is parsed once at startup and immutable afterwards.
type Manifest struct {
	MaxConcurrency int     `json:"maxConcurrency"`
	Notify         *Notify `json:"notify"`
	Tasks          []*Task `json:"tasks"`
}

func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path) // #nosec G304
	if err != nil {
		return nil, errors.Wrapf(err, "read %s", path)
	}

	manifest := &Manifest{}
	err = json.Unmarshal(data, manifest)
	if err != nil {
		return nil, errors.Wrapf(err, "parse %s", path)
	}

	err = manifest.Validate()
	if err != nil {
		return nil, err
	}

	return manifest, nil
}

// Validate checks the manifest fail-fast, in a fixed order: required
// top-level properties, the notification block, per-task rules and finally
// the concurrency bound.  Validation has no side effects and a failure here
// always aborts the run before any task is dispatched.
func (m *Manifest) Validate() error {
	if m.MaxConcurrency == 0 {
		return errors.Errorf("MaxConcurrency is required")
	}

	if len(m.Tasks) == 0 {
		return errors.Errorf("Tasks is required and must not be empty")
	}

	if m.Notify == nil {
		return errors.Errorf("Notify is required")
	}

	err := m.Notify.Validate()
	if err != nil {
		return err
	}

	for i, task := range m.Tasks {
		err := task.Validate(i)
		if err != nil {
			return err
		}
	}

	if m.MaxConcurrency < 0 {
		return errors.Errorf("MaxConcurrency must be a positive integer, got %d",
			m.MaxConcurrency)
	}

	return nil
}
