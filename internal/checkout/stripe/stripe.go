// Package stripe implements the checkout provider on Stripe Checkout
// sessions.
package stripe

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/stripe/stripe-go/v78"
	"github.com/stripe/stripe-go/v78/client"

	"github.com/jaumet/avook-catalog/internal/checkout"
)

// sessionAPI is the slice of the Stripe client the provider uses; narrowed
// for tests.
type sessionAPI interface {
	New(params *stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error)
}

// Config for the Stripe provider.
type Config struct {
	// APIKey is the secret key. Required unless Sessions is injected.
	APIKey string
	// SuccessURL and CancelURL are where Checkout sends the buyer back.
	SuccessURL string
	CancelURL  string
	// Sessions overrides the real API, for tests.
	Sessions sessionAPI
}

// Provider creates Stripe Checkout sessions in payment mode.
type Provider struct {
	sessions   sessionAPI
	successURL string
	cancelURL  string
}

// New builds the provider.
func New(cfg Config) (*Provider, error) {
	sessions := cfg.Sessions
	if sessions == nil {
		key := strings.TrimSpace(cfg.APIKey)
		if key == "" {
			return nil, errors.New("stripe: api key is required")
		}
		sc := client.New(key, nil)
		sessions = sc.CheckoutSessions
	}
	if cfg.SuccessURL == "" || cfg.CancelURL == "" {
		return nil, errors.New("stripe: success and cancel URLs are required")
	}
	return &Provider{
		sessions:   sessions,
		successURL: cfg.SuccessURL,
		cancelURL:  cfg.CancelURL,
	}, nil
}

// Name returns "stripe".
func (p *Provider) Name() string { return "stripe" }

// PaymentLink creates a one-item Checkout session and returns its URL.
func (p *Provider) PaymentLink(ctx context.Context, req *checkout.LinkRequest) (*checkout.Link, error) {
	params := &stripe.CheckoutSessionParams{
		Mode:       stripe.String(string(stripe.CheckoutSessionModePayment)),
		SuccessURL: stripe.String(p.successURL),
		CancelURL:  stripe.String(p.cancelURL),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				Quantity: stripe.Int64(1),
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency:   stripe.String(strings.ToLower(req.Currency)),
					UnitAmount: stripe.Int64(req.Amount),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripe.String(req.DisplayName),
					},
				},
			},
		},
		Metadata: map[string]string{
			"machine_name": req.MachineName,
		},
	}
	params.Context = ctx

	sess, err := p.sessions.New(params)
	if err != nil {
		return nil, fmt.Errorf("create checkout session: %w", err)
	}

	return &checkout.Link{
		Provider:  p.Name(),
		SessionID: sess.ID,
		URL:       sess.URL,
	}, nil
}
