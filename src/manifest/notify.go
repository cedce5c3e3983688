package manifest

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/samber/lo"
)

// When controls whether the user recipients are notified after a run.  The
// administrative channel is independent of this policy: administrators are
// always told about errors.
type When string

const (
	Never               When = "Never"
	Always              When = "Always"
	OnlyOnError         When = "OnlyOnError"
	OnlyOnErrorOrAction When = "OnlyOnErrorOrAction"
)

// Older manifest revisions used different names for the same policies.
var whenAliases = map[When]When{
	"OnlyOnErrorOrCopies": OnlyOnErrorOrAction,
}

var whenValues = []When{Never, Always, OnlyOnError, OnlyOnErrorOrAction}

type Notify struct {
	To         []string `json:"to"`
	When       When     `json:"when"`
	Subject    string   `json:"subject"`
	AttachLogs bool     `json:"attachLogs"`
}

func (n *Notify) Validate() error {
	if n.When == "" {
		return errors.Errorf("Notify.When is required")
	}

	for alias, canonical := range whenAliases {
		if strings.EqualFold(string(n.When), string(alias)) {
			n.When = canonical
		}
	}

	for _, value := range whenValues {
		if strings.EqualFold(string(n.When), string(value)) {
			n.When = value
		}
	}

	if !lo.Contains(whenValues, n.When) {
		values := lo.Map(whenValues, func(w When, _ int) string {
			return string(w)
		})
		return errors.Errorf("Notify.When must be one of %s, got \"%s\"",
			strings.Join(values, ", "), n.When)
	}

	if n.When != Never && len(n.To) == 0 {
		return errors.Errorf("Notify.To must not be empty unless Notify.When is %s",
			Never)
	}

	return nil
}
