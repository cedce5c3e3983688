package robocopy

import "fmt"

// Outcome is the classification of one finished task.  Everything except
// DispatchError derives from the tool's exit code; DispatchError means the
// tool never ran (unreachable host, transport failure, invocation error).
type Outcome int

const (
	NoChange Outcome = iota
	CopyOk
	Mismatch
	Fail
	FatalError
	Unknown
	DispatchError
)

// Classify maps the tool's exit code to an outcome.  The exit code is a bit
// field: bit 0 means files were copied, bit 1 means extra files or
// directories were detected, bit 2 means mismatched files or directories and
// bit 3 means copy failures.  16 is a standalone fatal error marker.  The
// grouping below follows the tool's documentation and must not change.
func Classify(code int) Outcome {
	switch {
	case code == 0:
		return NoChange
	case code >= 1 && code <= 3:
		return CopyOk
	case code >= 4 && code <= 7:
		return Mismatch
	case code >= 8 && code <= 15:
		return Fail
	case code == 16:
		return FatalError
	}
	return Unknown
}

func (o Outcome) String() string {
	switch o {
	case NoChange:
		return "NoChange"
	case CopyOk:
		return "CopyOk"
	case Mismatch:
		return "Mismatch"
	case Fail:
		return "Fail"
	case FatalError:
		return "FatalError"
	case DispatchError:
		return "DispatchError"
	}
	return "Unknown"
}

// Message returns the operator-facing description used in report rows.
func (o Outcome) Message() string {
	switch o {
	case NoChange:
		return "no changes"
	case CopyOk:
		return "copied successfully"
	case Mismatch:
		return "mismatched files or directories, clean-up may be needed"
	case Fail:
		return "copy failed"
	case FatalError:
		return "fatal error"
	case DispatchError:
		return "task could not be executed"
	}
	return "unknown exit code"
}

// Bad reports whether the outcome counts towards the run's error total.
// Partial successes (Mismatch) count: they leave the destination in a state
// that needs operator attention.
func (o Outcome) Bad() bool {
	switch o {
	case NoChange, CopyOk:
		return false
	}
	return true
}

func (o Outcome) Format(code int) string {
	return fmt.Sprintf("%s (exit code %d)", o.Message(), code)
}
