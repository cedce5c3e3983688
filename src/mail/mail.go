package mail

import (
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/wneessen/go-mail"
)

type Message struct {
	To           []string
	Cc           []string
	Subject      string
	HTML         string
	HighPriority bool
	Attachments  []string
}

// Mailer delivers run reports and administrative notices.
type Mailer interface {
	Send(msg *Message) error
}

// SMTP delivers messages over SMTP.
type SMTP struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

func (s *SMTP) Send(msg *Message) error {
	m := mail.NewMsg()

	err := m.From(s.From)
	if err != nil {
		return errors.WithStack(err)
	}

	err = m.To(msg.To...)
	if err != nil {
		return errors.WithStack(err)
	}

	if len(msg.Cc) > 0 {
		err = m.Cc(msg.Cc...)
		if err != nil {
			return errors.WithStack(err)
		}
	}

	m.Subject(msg.Subject)
	m.SetBodyString(mail.TypeTextHTML, msg.HTML)

	if msg.HighPriority {
		m.SetImportance(mail.ImportanceHigh)
	}

	for _, attachment := range msg.Attachments {
		m.AttachFile(attachment)
	}

	opts := []mail.Option{mail.WithPort(s.Port)}
	if s.Username != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(s.Username),
			mail.WithPassword(s.Password))
	}

	client, err := mail.NewClient(s.Host, opts...)
	if err != nil {
		return errors.WithStack(err)
	}

	log.Debugf("smtp: sending \"%s\" to %v", msg.Subject, msg.To)
	return errors.WithStack(client.DialAndSend(m))
}
