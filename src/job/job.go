package job

import (
	"fmt"

	"github.com/illikainen/mirror/src/artifacts"
	"github.com/illikainen/mirror/src/configs"
	"github.com/illikainen/mirror/src/dispatch"
	"github.com/illikainen/mirror/src/eventlog"
	"github.com/illikainen/mirror/src/mail"
	"github.com/illikainen/mirror/src/manifest"
	"github.com/illikainen/mirror/src/report"

	"github.com/samber/lo"
	log "github.com/sirupsen/logrus"
)

type Options struct {
	Path   string
	LogDir string
	DryRun bool
	Config *configs.Config

	// Overridable for tests.  Nil means the real implementations built
	// from Config.
	Mailer mail.Mailer
	Local  dispatch.Runner
	Remote dispatch.RemoteRunner
}

// Run executes one manifest: validate, dispatch, aggregate, persist and
// notify.  An error return means the run failed before or outside task
// execution; individual task failures are folded into the report and do not
// fail the run.
func Run(opts *Options) error {
	config := opts.Config
	mailer := opts.Mailer
	if mailer == nil && config.SMTPHost != "" {
		mailer = &mail.SMTP{
			Host:     config.SMTPHost,
			Port:     config.SMTPPort,
			Username: config.SMTPUser,
			Password: config.SMTPPass,
			From:     config.MailFrom,
		}
	}

	man, err := manifest.Load(opts.Path)
	if err != nil {
		return fatal(mailer, config, err)
	}

	if opts.DryRun {
		return plan(man, config)
	}

	store, err := artifacts.NewStore(lo.Ternary(opts.LogDir != "", opts.LogDir, config.LogDir))
	if err != nil {
		return fatal(mailer, config, err)
	}

	systemErrors := []string{}

	var recorder eventlog.Recorder
	recorder, err = eventlog.NewFileRecorder(store.EventLogPath(), store.RunID)
	if err != nil {
		systemErrors = append(systemErrors, err.Error())
		recorder = eventlog.Discard{}
	}
	defer func() {
		err := recorder.Close()
		if err != nil {
			log.Warnf("event log: %s", err)
		}
	}()

	recorder.Info("run %s: %d tasks, concurrency %d", store.RunID, len(man.Tasks),
		man.MaxConcurrency)

	dispatcher := &dispatch.Dispatcher{
		Limit:  man.MaxConcurrency,
		Local:  lo.Ternary(opts.Local != nil, opts.Local, dispatch.Runner(&dispatch.LocalRunner{Bin: config.Tool})),
		Remote: lo.Ternary(opts.Remote != nil, opts.Remote, dispatch.RemoteRunner(&dispatch.SSHRunner{
			User:     config.SSHUser,
			Password: config.SSHPassword,
			Bin:      config.Tool,
		})),
	}
	results := dispatcher.Dispatch(man.Tasks)

	logFiles := map[int]string{}
	for i, result := range results {
		if len(result.Output) == 0 {
			continue
		}

		path, err := store.WriteTaskLog(i, result.Task.Label(), result.Output)
		if err != nil {
			systemErrors = append(systemErrors, err.Error())
			continue
		}
		logFiles[i] = path
	}

	rep := report.Build(store.RunID, man.Notify.Subject, results, systemErrors, logFiles)
	for _, row := range rep.Rows {
		if row.Outcome.Bad() {
			recorder.Error("%s on %s: %s", row.Label, row.Host, row.Message)
		} else {
			recorder.Info("%s on %s: %s, %d items copied", row.Label, row.Host,
				row.Message, row.Copied)
		}
	}

	body, err := rep.Render()
	if err != nil {
		recorder.Error("report rendering failed: %s", err)
		return fatal(mailer, config, err)
	}

	_, err = store.WriteReport(body)
	if err != nil {
		recorder.Error("%s", err)
	}

	_, err = store.WriteSystemErrors(rep.SystemErrors)
	if err != nil {
		recorder.Error("%s", err)
	}

	notify(mailer, config, man, rep, body, results, logFiles, recorder)

	recorder.Info("run %s: finished, %d items copied, %d errors", store.RunID,
		rep.Counters.Copied, rep.Counters.Errors())
	return nil
}

func notify(mailer mail.Mailer, config *configs.Config, man *manifest.Manifest,
	rep *report.Report, body string, results []*dispatch.Result,
	logFiles map[int]string, recorder eventlog.Recorder) {
	decision := report.Decide(man.Notify.When, &rep.Counters)
	if !decision.User && !decision.AdminSeparate {
		log.Debugf("notify: nothing to send for policy %s", man.Notify.When)
		return
	}

	if mailer == nil {
		log.Warnf("notify: no mailer configured, skipping notification")
		return
	}

	if decision.User {
		msg := &mail.Message{
			To:      man.Notify.To,
			Subject: rep.Subject,
			HTML:    body,
		}
		if decision.AdminCC {
			msg.Cc = config.Admin
		}
		if man.Notify.AttachLogs {
			for i := range results {
				if path, ok := logFiles[i]; ok {
					msg.Attachments = append(msg.Attachments, path)
				}
			}
		}

		err := mailer.Send(msg)
		if err != nil {
			recorder.Error("notify: %s", err)
		}
	}

	if decision.AdminSeparate {
		if len(config.Admin) == 0 {
			log.Warnf("notify: errors occurred but no admin recipients are configured")
			return
		}

		err := mailer.Send(&mail.Message{
			To:      config.Admin,
			Subject: rep.Subject,
			HTML:    body,
		})
		if err != nil {
			recorder.Error("notify: %s", err)
		}
	}
}

// plan resolves every task to its final invocation without running anything.
func plan(man *manifest.Manifest, config *configs.Config) error {
	for i, task := range man.Tasks {
		argv, err := dispatch.Invocation(task).Argv(config.Tool)
		if err != nil {
			return err
		}

		host := lo.Ternary(task.ComputerName != "", task.ComputerName, "localhost")
		fmt.Printf("task %d (%s) on %s: %v\n", i, task.Label(), host, argv)
	}

	return nil
}

// fatal sends a high-priority admin-only notice and propagates the error,
// bypassing normal report assembly.  The caller exits non-zero.
func fatal(mailer mail.Mailer, config *configs.Config, cause error) error {
	if mailer == nil || config == nil || len(config.Admin) == 0 {
		log.Warnf("fatal error, no admin notification possible: %s", cause)
		return cause
	}

	err := mailer.Send(&mail.Message{
		To:           config.Admin,
		Subject:      "mirror run failed",
		HTML:         fmt.Sprintf("<html><body><p>Run failed: %s</p></body></html>", cause),
		HighPriority: true,
	})
	if err != nil {
		log.Warnf("fatal error notification failed: %s", err)
	}

	return cause
}
