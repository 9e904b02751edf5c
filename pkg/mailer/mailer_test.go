package mailer

import (
	"bytes"
	"context"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

func TestLogMailer_Send(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := logrus.New()
	logger.SetOutput(buf)

	err := NewLogMailer(logger).Send(context.Background(), Message{
		From:    "backend@example.com",
		To:      []string{"team@example.com"},
		Subject: "hello",
	})
	require.NoError(t, err)
	require.Contains(t, buf.String(), "subject=hello")
}

func TestLogMailer_RequiresRecipients(t *testing.T) {
	err := NewLogMailer(logrus.New()).Send(context.Background(), Message{Subject: "x"})
	require.ErrorIs(t, err, ErrNoRecipients)
}

func TestSMTPMailer_RequiresRecipients(t *testing.T) {
	m, err := NewSMTPMailer(Options{Host: "localhost", Port: 2525})
	require.NoError(t, err)
	require.ErrorIs(t, m.Send(context.Background(), Message{Subject: "x"}), ErrNoRecipients)
}
