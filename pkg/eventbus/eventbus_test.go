package eventbus

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/retromat/retromat-backend/pkg/logging"
)

type args struct {
	data any
}

func TestPublisher_Publish_NoSubscribers(t *testing.T) {
	type other struct{}
	logBuffer := bytes.Buffer{}
	log := logrus.New()
	log.SetOutput(&logBuffer)
	log.SetLevel(logrus.WarnLevel)

	publisher := NewEventPublisher(log)
	publisher.Subscribe(func(e *args) {
		t.Error("should not be called")
	})
	publisher.Publish(&other{})

	if !strings.Contains(logBuffer.String(), "eventbus.Publish: no matching subscribers") {
		t.Errorf("expected warning, got %q", logBuffer.String())
	}
}

func TestPublisher_Subscribe(t *testing.T) {
	publisher := NewEventPublisher(logging.ConsoleLogger(logrus.WarnLevel))
	var data any
	publisher.Subscribe(func(e *args) {
		data = e.data
	})
	publisher.Publish(&args{data: "test"})
	require.Equal(t, "test", data)
	require.Equal(t, 1, publisher.SubscribersCount())
}

func TestPublisher_PanicIsRecovered(t *testing.T) {
	publisher := NewEventPublisher(logging.ConsoleLogger(logrus.PanicLevel))
	publisher.Subscribe(func(e *args) { panic("boom") })

	require.NotPanics(t, func() { publisher.Publish(&args{}) })
	require.ErrorContains(t, publisher.PublishE(&args{}), "panicked")
}

func TestPublisher_PublishE(t *testing.T) {
	publisher := NewEventPublisher(nil)
	require.ErrorIs(t, publisher.PublishE(&args{}), ErrNoSubscribers)

	boom := errors.New("boom")
	publisher.Subscribe(func(e *args) error { return boom })
	publisher.Subscribe(func(e *args) error { return nil })
	require.ErrorIs(t, publisher.PublishE(&args{}), boom)

	publisher.Subscribe(func(e *args) (int, error) { return 0, nil })
	require.ErrorIs(t, publisher.PublishE(&args{}), ErrInvalidHandlerReturn)
}

func TestPublisher_UnsubscribeAndClear(t *testing.T) {
	publisher := NewEventPublisher(nil)
	handler := func(e *args) {}
	publisher.Subscribe(handler)
	publisher.Subscribe(func(e string) {})

	publisher.Unsubscribe(handler)
	require.Equal(t, 1, publisher.SubscribersCount())

	publisher.Clear()
	require.Equal(t, 0, publisher.SubscribersCount())
}

func TestMatchSignature(t *testing.T) {
	require.True(t, MatchSignature(func(e *args) {}, []any{&args{}}))
	require.True(t, MatchSignature(func(e *args) {}, []any{nil}))
	require.False(t, MatchSignature(func(e args) {}, []any{nil}))
	require.False(t, MatchSignature("not a func", []any{}))
	require.False(t, MatchSignature(func(a, b int) {}, []any{1}))
}
