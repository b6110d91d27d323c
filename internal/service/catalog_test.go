package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/jaumet/avook-catalog/pkg/errors"

	"github.com/jaumet/avook-catalog/internal/domain"
	"github.com/jaumet/avook-catalog/internal/filter"
)

// stubSource returns a fixed payload or error per call.
type stubSource struct {
	payload *domain.Payload
	err     error
}

func (s *stubSource) Load(context.Context) (*domain.Payload, error) {
	return s.payload, s.err
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func testPayload(slugs ...string) *domain.Payload {
	titles := make([]domain.RawTitle, 0, len(slugs))
	for _, slug := range slugs {
		titles = append(titles, domain.RawTitle{
			MachineName: slug,
			HumanName:   slug,
			Collection:  "Club",
			Levels:      domain.StringOrList{"A1"},
		})
	}
	return &domain.Payload{Titles: titles}
}

func TestCatalog_IndexBeforeLoadUnavailable(t *testing.T) {
	svc := NewCatalog(&stubSource{payload: testPayload("a")}, discardLogger())

	_, err := svc.Index()
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrUnavailable))
}

func TestCatalog_LoadPublishesIndex(t *testing.T) {
	svc := NewCatalog(&stubSource{payload: testPayload("a", "b")}, discardLogger())
	require.NoError(t, svc.Load(context.Background()))

	idx, err := svc.Index()
	require.NoError(t, err)
	assert.Len(t, idx.Titles, 2)
}

func TestCatalog_FailedReloadKeepsPreviousIndex(t *testing.T) {
	src := &stubSource{payload: testPayload("a")}
	svc := NewCatalog(src, discardLogger())
	require.NoError(t, svc.Load(context.Background()))

	src.payload = nil
	src.err = errors.New("backend down")
	require.Error(t, svc.Load(context.Background()))

	idx, err := svc.Index()
	require.NoError(t, err)
	assert.Len(t, idx.Titles, 1, "stale index keeps serving after a failed reload")
}

func TestCatalog_InvalidPayloadKeepsPreviousIndex(t *testing.T) {
	src := &stubSource{payload: testPayload("a")}
	svc := NewCatalog(src, discardLogger())
	require.NoError(t, svc.Load(context.Background()))

	src.payload = testPayload("dup", "dup")
	require.Error(t, svc.Load(context.Background()))

	idx, err := svc.Index()
	require.NoError(t, err)
	assert.Equal(t, "a", idx.Titles[0].MachineName)
}

func TestCatalog_Evaluate(t *testing.T) {
	svc := NewCatalog(&stubSource{payload: testPayload("a")}, discardLogger())
	require.NoError(t, svc.Load(context.Background()))

	eval, err := svc.Evaluate(filter.SetCollection(domain.FilterState{}, "club"))
	require.NoError(t, err)
	assert.True(t, eval.Visible["a"])
}

func TestCatalog_Title(t *testing.T) {
	svc := NewCatalog(&stubSource{payload: testPayload("a")}, discardLogger())
	require.NoError(t, svc.Load(context.Background()))

	got, err := svc.Title("a")
	require.NoError(t, err)
	assert.Equal(t, "a", got.MachineName)

	_, err = svc.Title("missing")
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrNotFound))
}

func TestCatalog_PayloadRoundTrip(t *testing.T) {
	svc := NewCatalog(&stubSource{payload: testPayload("a")}, discardLogger())
	require.NoError(t, svc.Load(context.Background()))

	payload, err := svc.Payload()
	require.NoError(t, err)
	require.Len(t, payload.Titles, 1)
	assert.Equal(t, "a", payload.Titles[0].MachineName)
	assert.Equal(t, []string{"Club"}, payload.Collections)
	assert.Equal(t, []string{"A1"}, payload.Levels)
}
