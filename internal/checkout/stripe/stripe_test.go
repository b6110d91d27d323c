package stripe

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	stripeapi "github.com/stripe/stripe-go/v78"

	"github.com/jaumet/avook-catalog/internal/checkout"
)

// stubSessions captures the params the provider builds.
type stubSessions struct {
	params  *stripeapi.CheckoutSessionParams
	session *stripeapi.CheckoutSession
	err     error
}

func (s *stubSessions) New(params *stripeapi.CheckoutSessionParams) (*stripeapi.CheckoutSession, error) {
	s.params = params
	return s.session, s.err
}

func testConfig(sessions sessionAPI) Config {
	return Config{
		Sessions:   sessions,
		SuccessURL: "https://shop.test/success",
		CancelURL:  "https://shop.test/cancel",
	}
}

func TestNew_RequiresKeyOrInjectedSessions(t *testing.T) {
	_, err := New(Config{SuccessURL: "https://s", CancelURL: "https://c"})
	assert.Error(t, err)

	_, err = New(testConfig(&stubSessions{}))
	assert.NoError(t, err)
}

func TestNew_RequiresRedirectURLs(t *testing.T) {
	_, err := New(Config{Sessions: &stubSessions{}})
	assert.Error(t, err)
}

func TestPaymentLink_BuildsSessionParams(t *testing.T) {
	sessions := &stubSessions{session: &stripeapi.CheckoutSession{
		ID:  "cs_test_1",
		URL: "https://checkout.stripe.com/pay/cs_test_1",
	}}
	provider, err := New(testConfig(sessions))
	require.NoError(t, err)

	link, err := provider.PaymentLink(context.Background(), &checkout.LinkRequest{
		MachineName: "contes-nit",
		DisplayName: "Contes de la nit",
		Amount:      999,
		Currency:    "EUR",
	})
	require.NoError(t, err)

	assert.Equal(t, "stripe", link.Provider)
	assert.Equal(t, "cs_test_1", link.SessionID)
	assert.Equal(t, "https://checkout.stripe.com/pay/cs_test_1", link.URL)

	params := sessions.params
	require.NotNil(t, params)
	assert.Equal(t, string(stripeapi.CheckoutSessionModePayment), *params.Mode)
	require.Len(t, params.LineItems, 1)
	assert.Equal(t, "eur", *params.LineItems[0].PriceData.Currency, "currency lower-cased for the API")
	assert.Equal(t, int64(999), *params.LineItems[0].PriceData.UnitAmount)
	assert.Equal(t, "Contes de la nit", *params.LineItems[0].PriceData.ProductData.Name)
	assert.Equal(t, "contes-nit", params.Metadata["machine_name"])
}

func TestPaymentLink_APIFailure(t *testing.T) {
	sessions := &stubSessions{err: errors.New("api down")}
	provider, err := New(testConfig(sessions))
	require.NoError(t, err)

	_, err = provider.PaymentLink(context.Background(), &checkout.LinkRequest{
		MachineName: "contes-nit",
		DisplayName: "Contes de la nit",
		Amount:      999,
		Currency:    "EUR",
	})
	assert.Error(t, err)
}
