// Package checkout produces payment links for catalog titles through a
// pluggable provider. This is the storefront's checkout-button collaborator:
// the filtering core hands it a machine name, it hands back a URL.
package checkout

import (
	"context"
)

// LinkRequest asks a provider for a hosted payment page.
type LinkRequest struct {
	// MachineName of the title being bought; stored in provider metadata.
	MachineName string
	// DisplayName shown on the hosted payment page.
	DisplayName string
	// Amount in the currency's minor unit.
	Amount int64
	// Currency as a lower-case ISO code, e.g. "eur".
	Currency string
}

// Link is a hosted payment page created by a provider.
type Link struct {
	// Provider that produced the link.
	Provider string `json:"provider"`
	// SessionID identifies the session at the provider.
	SessionID string `json:"session_id"`
	// URL the storefront redirects the buyer to.
	URL string `json:"url"`
}

// Provider creates payment links.
type Provider interface {
	// Name identifies the provider, e.g. "stripe" or "mock".
	Name() string
	// PaymentLink creates a hosted payment page for the request.
	PaymentLink(ctx context.Context, req *LinkRequest) (*Link, error)
}
