package report

import (
	"github.com/illikainen/mirror/src/manifest"
)

// Decision is the result of the notification policy evaluation, computed
// once per run.  The administrative channel is independent of the user
// policy: whenever the run had errors the administrators are told, either as
// cc on the user notification or with a separate message when the user
// notification is suppressed.
type Decision struct {
	User          bool
	AdminCC       bool
	AdminSeparate bool
}

func Decide(when manifest.When, counters *Counters) Decision {
	decision := Decision{}

	switch when {
	case manifest.Never:
	case manifest.Always:
		decision.User = true
	case manifest.OnlyOnError:
		decision.User = counters.Errors() > 0
	case manifest.OnlyOnErrorOrAction:
		decision.User = counters.Errors() > 0 || counters.Copied > 0
	}

	if counters.Errors() > 0 {
		if decision.User {
			decision.AdminCC = true
		} else {
			decision.AdminSeparate = true
		}
	}

	return decision
}
