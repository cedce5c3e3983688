package report

import (
	"bytes"
	"fmt"
	"html/template"
	"time"

	"github.com/illikainen/mirror/src/dispatch"
	"github.com/illikainen/mirror/src/robocopy"

	"github.com/pkg/errors"
	"github.com/samber/lo"
)

// Row is the per-task line of the report table.
type Row struct {
	Label   string
	Host    string
	Outcome robocopy.Outcome
	Message string
	Elapsed string
	Copied  int
	LogFile string
	Err     string
}

type Report struct {
	RunID        string
	Started      time.Time
	Subject      string
	Rows         []*Row
	Counters     Counters
	SystemErrors []string
}

// Build aggregates all task results into the report payload.  logFiles maps
// the result index to the persisted log artifact, when one was written.
func Build(runID string, subject string, results []*dispatch.Result,
	systemErrors []string, logFiles map[int]string) *Report {
	report := &Report{
		RunID:        runID,
		Started:      time.Now(),
		Rows:         make([]*Row, 0, len(results)),
		SystemErrors: systemErrors,
	}
	report.Counters.SystemErrors = len(systemErrors)

	for i, result := range results {
		outcome := result.Outcome()
		summary := robocopy.ParseSummary(result.Output)

		row := &Row{
			Label:   result.Task.Label(),
			Host:    lo.Ternary(result.Task.ComputerName != "", result.Task.ComputerName, "localhost"),
			Outcome: outcome,
			Elapsed: summary.Elapsed(),
			Copied:  summary.CopiedItems(),
			LogFile: logFiles[i],
		}

		if outcome == robocopy.DispatchError {
			row.Message = outcome.Message()
			row.Err = result.Err.Error()
			row.Elapsed = "NA"
			row.Copied = 0
			report.Counters.DispatchErrors++
		} else {
			row.Message = outcome.Format(result.ExitCode)
			report.Counters.Copied += row.Copied
			if outcome.Bad() {
				report.Counters.ExitErrors++
			}
		}

		report.Rows = append(report.Rows, row)
	}

	report.Subject = fmt.Sprintf("%s: %d tasks, %d items copied, %d errors",
		lo.Ternary(subject != "", subject, "mirror run"),
		len(report.Rows), report.Counters.Copied, report.Counters.Errors())

	return report
}

var bodyTmpl = template.Must(template.New("report").Parse(`<html>
<body>
<p>Run {{.RunID}} started {{.Started.Format "2006-01-02 15:04:05"}}: {{len .Rows}} tasks,
{{.Counters.Copied}} items copied, {{.Counters.Errors}} errors.</p>
<table border="1" cellpadding="4" cellspacing="0">
<tr><th>Task</th><th>Host</th><th>Result</th><th>Time</th><th>Copied</th><th>Log</th></tr>
{{range .Rows}}<tr>
<td>{{.Label}}</td>
<td>{{.Host}}</td>
<td>{{.Message}}{{if .Err}}: {{.Err}}{{end}}</td>
<td>{{.Elapsed}}</td>
<td>{{.Copied}}</td>
<td>{{.LogFile}}</td>
</tr>
{{end}}</table>
{{if .HasErrors}}<h3>Errors</h3>
<p>{{.Counters.ExitErrors}} bad exit codes, {{.Counters.DispatchErrors}} dispatch errors,
{{.Counters.SystemErrors}} system errors.</p>
{{if .SystemErrors}}<ul>
{{range .SystemErrors}}<li>{{.}}</li>
{{end}}</ul>{{end}}
{{end}}</body>
</html>
`))

func (r *Report) HasErrors() bool {
	return r.Counters.Errors() > 0
}

// Render produces the HTML body.  The data assembly in Build is independent
// of this markup so the aggregation logic can be tested without it.
func (r *Report) Render() (string, error) {
	buf := bytes.Buffer{}

	err := bodyTmpl.Execute(&buf, r)
	if err != nil {
		return "", errors.WithStack(err)
	}

	return buf.String(), nil
}
