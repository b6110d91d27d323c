package checkout

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/jaumet/avook-catalog/pkg/errors"
	pkgkafka "github.com/jaumet/avook-catalog/pkg/kafka"
)

// stubProvider records calls and returns a fixed link or error.
type stubProvider struct {
	link  *Link
	err   error
	calls int
}

func (s *stubProvider) Name() string { return "stub" }

func (s *stubProvider) PaymentLink(context.Context, *LinkRequest) (*Link, error) {
	s.calls++
	return s.link, s.err
}

// stubPublisher captures published events.
type stubPublisher struct {
	topics []string
	events []*pkgkafka.Event
	err    error
}

func (s *stubPublisher) Publish(_ context.Context, topic string, event *pkgkafka.Event) error {
	s.topics = append(s.topics, topic)
	s.events = append(s.events, event)
	return s.err
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func linkRequest() *LinkRequest {
	return &LinkRequest{
		MachineName: "contes-nit",
		DisplayName: "Contes de la nit",
		Amount:      999,
		Currency:    "eur",
	}
}

func TestService_PaymentLink(t *testing.T) {
	provider := &stubProvider{link: &Link{Provider: "stub", SessionID: "sess_1", URL: "https://pay.test/sess_1"}}
	svc := NewService(provider, nil, nil, discardLogger())

	link, err := svc.PaymentLink(context.Background(), linkRequest())
	require.NoError(t, err)
	assert.Equal(t, "sess_1", link.SessionID)
	assert.Equal(t, 1, provider.calls)
}

func TestService_ProviderFailureMapsToCheckoutFailed(t *testing.T) {
	provider := &stubProvider{err: errors.New("card network down")}
	svc := NewService(provider, nil, nil, discardLogger())

	_, err := svc.PaymentLink(context.Background(), linkRequest())
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrCheckoutFailed))
	assert.NotContains(t, err.Error(), "card network down", "provider details stay out of the client error")
}

func TestService_AnnouncesFreshLinks(t *testing.T) {
	provider := &stubProvider{link: &Link{Provider: "stub", SessionID: "sess_1", URL: "https://pay.test/sess_1"}}
	publisher := &stubPublisher{}
	svc := NewService(provider, nil, publisher, discardLogger())

	_, err := svc.PaymentLink(context.Background(), linkRequest())
	require.NoError(t, err)

	require.Len(t, publisher.events, 1)
	assert.Equal(t, TopicLinkCreated, publisher.topics[0])
	assert.Equal(t, "checkout.link_created", publisher.events[0].EventType)
	assert.Equal(t, "contes-nit", publisher.events[0].AggregateID)
}

func TestService_PublishFailureDoesNotFailRequest(t *testing.T) {
	provider := &stubProvider{link: &Link{Provider: "stub", SessionID: "sess_1", URL: "https://pay.test/sess_1"}}
	publisher := &stubPublisher{err: errors.New("broker down")}
	svc := NewService(provider, nil, publisher, discardLogger())

	link, err := svc.PaymentLink(context.Background(), linkRequest())
	require.NoError(t, err)
	assert.NotNil(t, link)
}

func TestService_NoCacheCallsProviderEveryTime(t *testing.T) {
	provider := &stubProvider{link: &Link{Provider: "stub", SessionID: "sess_1", URL: "https://pay.test/sess_1"}}
	svc := NewService(provider, nil, nil, discardLogger())

	_, err := svc.PaymentLink(context.Background(), linkRequest())
	require.NoError(t, err)
	_, err = svc.PaymentLink(context.Background(), linkRequest())
	require.NoError(t, err)

	assert.Equal(t, 2, provider.calls)
}
