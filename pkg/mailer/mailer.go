package mailer

import (
	"context"
	"errors"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/wneessen/go-mail"
)

var ErrNoRecipients = errors.New("mailer: message has no recipients")

type Message struct {
	From    string
	To      []string
	Subject string
	Body    string
}

type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

type Options struct {
	Host     string
	Port     int
	Username string
	Password string
}

type SMTPMailer struct {
	client *mail.Client
}

func NewSMTPMailer(opts Options) (*SMTPMailer, error) {
	clientOpts := []mail.Option{
		mail.WithPort(opts.Port),
		mail.WithTLSPolicy(mail.TLSOpportunistic),
	}
	if opts.Username != "" {
		clientOpts = append(clientOpts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(opts.Username),
			mail.WithPassword(opts.Password),
		)
	}
	client, err := mail.NewClient(opts.Host, clientOpts...)
	if err != nil {
		return nil, err
	}
	return &SMTPMailer{client: client}, nil
}

func (m *SMTPMailer) Send(ctx context.Context, msg Message) error {
	if len(msg.To) == 0 {
		return ErrNoRecipients
	}
	out := mail.NewMsg()
	if err := out.From(msg.From); err != nil {
		return err
	}
	if err := out.To(msg.To...); err != nil {
		return err
	}
	out.Subject(msg.Subject)
	out.SetBodyString(mail.TypeTextPlain, msg.Body)
	return m.client.DialAndSendWithContext(ctx, out)
}

// LogMailer only logs outgoing messages. Used when no SMTP host is configured.
type LogMailer struct {
	logger *logrus.Logger
}

func NewLogMailer(logger *logrus.Logger) *LogMailer {
	return &LogMailer{logger: logger}
}

func (m *LogMailer) Send(_ context.Context, msg Message) error {
	if len(msg.To) == 0 {
		return ErrNoRecipients
	}
	m.logger.WithFields(logrus.Fields{
		"from":    msg.From,
		"to":      strings.Join(msg.To, ","),
		"subject": msg.Subject,
	}).Info("mail not sent: no SMTP host configured")
	return nil
}
