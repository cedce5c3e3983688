package report

// Counters accumulates run-wide totals during report assembly.  A fresh
// value is created for every run; it is owned by the aggregation stage and
// never shared between goroutines.
type Counters struct {
	Copied         int
	ExitErrors     int
	DispatchErrors int
	SystemErrors   int
}

// Errors is the total used by the notification decision and the report
// subject.  The value receiver keeps it callable from templates.
func (c Counters) Errors() int {
	return c.ExitErrors + c.DispatchErrors + c.SystemErrors
}
