package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/jaumet/avook-catalog/internal/domain"
)

// maxPayloadBytes caps the remote document size.
const maxPayloadBytes = 10 << 20

// Getter is the slice of the HTTP client the remote source needs; the
// breaker client from pkg/httpclient satisfies it.
type Getter interface {
	Get(ctx context.Context, url string) (*http.Response, error)
}

// RemoteSource fetches the catalog document from the storefront backend's
// catalog endpoint.
type RemoteSource struct {
	client Getter
	url    string
}

// NewRemoteSource builds a RemoteSource fetching from url.
func NewRemoteSource(client Getter, url string) *RemoteSource {
	return &RemoteSource{client: client, url: url}
}

// Load GETs the endpoint once. Transport-level retries and circuit breaking
// live in the client; nothing is retried here.
func (s *RemoteSource) Load(ctx context.Context) (*domain.Payload, error) {
	resp, err := s.client.Get(ctx, s.url)
	if err != nil {
		return nil, fmt.Errorf("fetch catalog from %s: %w", s.url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch catalog from %s: unexpected status %s", s.url, resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxPayloadBytes))
	if err != nil {
		return nil, fmt.Errorf("read catalog response: %w", err)
	}

	var p domain.Payload
	if err := json.Unmarshal(body, &p); err != nil {
		return nil, fmt.Errorf("parse catalog response: %w", err)
	}
	return &p, nil
}
