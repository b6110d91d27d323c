package kafka

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTopic(t *testing.T) {
	assert.Equal(t, "avook.title.updated", Topic("title", "updated"))
}

func TestNewEvent(t *testing.T) {
	event, err := NewEvent("title.updated", "contes-nit", "title", "cms", map[string]string{"machine_name": "contes-nit"})
	require.NoError(t, err)

	assert.NotEmpty(t, event.EventID)
	assert.Equal(t, "title.updated", event.EventType)
	assert.Equal(t, "contes-nit", event.AggregateID)
	assert.Equal(t, "title", event.AggregateType)
	assert.Equal(t, "cms", event.Source)
	assert.False(t, event.Timestamp.IsZero())
}

func TestNewEvent_UnmarshalableDataFails(t *testing.T) {
	_, err := NewEvent("title.updated", "x", "title", "cms", make(chan int))
	assert.Error(t, err)
}

func TestEvent_MarshalRoundTrip(t *testing.T) {
	event, err := NewEvent("title.updated", "contes-nit", "title", "cms", map[string]string{"k": "v"})
	require.NoError(t, err)
	event.WithCorrelationID("abc-123")

	raw, err := event.Marshal()
	require.NoError(t, err)

	parsed, err := UnmarshalEvent(raw)
	require.NoError(t, err)
	assert.Equal(t, event.EventID, parsed.EventID)
	assert.Equal(t, "abc-123", parsed.CorrelationID)
}

func TestUnmarshalEvent_RejectsMissingType(t *testing.T) {
	_, err := UnmarshalEvent([]byte(`{"event_id": "1"}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "event_type")

	_, err = UnmarshalEvent([]byte(`not json`))
	assert.Error(t, err)
}
