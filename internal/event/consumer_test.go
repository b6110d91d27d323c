package event

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgkafka "github.com/jaumet/avook-catalog/pkg/kafka"
)

// stubReloader counts reloads.
type stubReloader struct {
	calls int
	err   error
}

func (s *stubReloader) Load(context.Context) error {
	s.calls++
	return s.err
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func titleEvent(t *testing.T, eventType string) *pkgkafka.Event {
	t.Helper()
	event, err := pkgkafka.NewEvent(eventType, "contes-nit", "title", "cms", map[string]string{"machine_name": "contes-nit"})
	require.NoError(t, err)
	return event
}

func TestConsumer_AnyTitleEventReloads(t *testing.T) {
	reloader := &stubReloader{}
	c := NewConsumer(reloader, discardLogger())

	for _, eventType := range []string{"title.created", "title.updated", "title.deleted"} {
		require.NoError(t, c.Handle(context.Background(), titleEvent(t, eventType)))
	}
	assert.Equal(t, 3, reloader.calls)
}

func TestConsumer_ReloadFailurePropagates(t *testing.T) {
	reloader := &stubReloader{err: errors.New("source down")}
	c := NewConsumer(reloader, discardLogger())

	err := c.Handle(context.Background(), titleEvent(t, "title.updated"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reload catalog")
}

func TestTopics(t *testing.T) {
	assert.Equal(t, []string{
		"avook.title.created",
		"avook.title.updated",
		"avook.title.deleted",
	}, Topics())
}
