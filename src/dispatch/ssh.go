package dispatch

import (
	"bytes"

	"github.com/illikainen/mirror/src/manifest"

	"github.com/illikainen/go-netutils/src/sshx"
	"github.com/illikainen/go-utils/src/errorx"
	"github.com/illikainen/go-utils/src/stringx"
	"github.com/kballard/go-shellquote"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"golang.org/x/crypto/ssh"
)

// SSHRunner executes the tool on a remote host over SSH.  Connection and
// session failures surface as dispatch errors; a remote non-zero exit code
// is returned for classification just like a local one.
type SSHRunner struct {
	User     string
	Password string
	Bin      string
}

func (r *SSHRunner) Run(host string, task *manifest.Task) (lines []string, code int, err error) {
	argv, err := Invocation(task).Argv(r.Bin)
	if err != nil {
		return nil, 0, err
	}

	log.Debugf("ssh: connecting to %s", host)
	conn, err := sshx.Dial("tcp", host, &sshx.ClientConfig{
		User:     r.User,
		Password: r.Password,
	})
	if err != nil {
		return nil, 0, err
	}
	defer errorx.Defer(conn.Close, &err)

	session, err := conn.NewSession()
	if err != nil {
		return nil, 0, errors.WithStack(err)
	}
	// Close returns io.EOF when the session already ended with Run.
	defer func() { _ = session.Close() }()

	buf := bytes.Buffer{}
	session.Stdout = &buf
	session.Stderr = &buf

	cmd := shellquote.Join(argv...)
	log.Debugf("%s: exec: %s", host, cmd)

	err = session.Run(cmd)
	lines = stringx.SplitLines(buf.String())

	if err != nil {
		exitErr := &ssh.ExitError{}
		if errors.As(err, &exitErr) {
			return lines, exitErr.ExitStatus(), nil
		}
		return nil, 0, errors.WithStack(err)
	}

	return lines, 0, nil
}
