// Package mock is a checkout provider that always succeeds, for development
// and tests.
package mock

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/jaumet/avook-catalog/internal/checkout"
)

// Provider fabricates payment links without calling anyone.
type Provider struct{}

// New builds the mock provider.
func New() *Provider { return &Provider{} }

// Name returns "mock".
func (p *Provider) Name() string { return "mock" }

// PaymentLink returns a fake session with a deterministic-looking URL.
func (p *Provider) PaymentLink(_ context.Context, req *checkout.LinkRequest) (*checkout.Link, error) {
	id := "mock_sess_" + uuid.New().String()
	return &checkout.Link{
		Provider:  p.Name(),
		SessionID: id,
		URL:       fmt.Sprintf("https://checkout.example.test/%s?title=%s", id, req.MachineName),
	}, nil
}
