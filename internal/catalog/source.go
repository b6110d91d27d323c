package catalog

import (
	"context"

	"github.com/jaumet/avook-catalog/internal/domain"
)

// Source loads the raw catalog document. The service loads once at startup
// and again on reload events; sources do not watch or poll.
type Source interface {
	// Load fetches the payload. Implementations do not add retry policies
	// beyond what their transport already provides: a failed load surfaces
	// as an unrendered catalog.
	Load(ctx context.Context) (*domain.Payload, error)
}
