package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jaumet/avook-catalog/internal/checkout"
	"github.com/jaumet/avook-catalog/internal/checkout/mock"
	"github.com/jaumet/avook-catalog/internal/service"
)

func newTestCheckoutHandler(t *testing.T, catalogSvc *service.Catalog) *CheckoutHandler {
	t.Helper()
	logger := testLogger()
	svc := checkout.NewService(mock.New(), nil, nil, logger)
	return NewCheckoutHandler(svc, catalogSvc, logger)
}

func postJSON(t *testing.T, router http.Handler, path, body string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var resp envelope
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	return w, resp
}

func TestCheckoutLink_CreatesLink(t *testing.T) {
	router := newTestRouter(t)

	w, resp := postJSON(t, router, "/api/v1/checkout/link",
		`{"machine_name": "contes-nit", "amount": 999, "currency": "eur"}`)
	require.Equal(t, http.StatusCreated, w.Code)

	var link checkout.Link
	require.NoError(t, json.Unmarshal(resp.Data, &link))
	assert.Equal(t, "mock", link.Provider)
	assert.NotEmpty(t, link.SessionID)
	assert.NotEmpty(t, link.URL)
}

func TestCheckoutLink_UnknownTitle404(t *testing.T) {
	router := newTestRouter(t)

	w, resp := postJSON(t, router, "/api/v1/checkout/link",
		`{"machine_name": "missing", "amount": 999}`)
	require.Equal(t, http.StatusNotFound, w.Code)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "NOT_FOUND", resp.Error.Code)
}

func TestCheckoutLink_ValidationFailures(t *testing.T) {
	router := newTestRouter(t)

	tests := []struct {
		name string
		body string
	}{
		{"missing machine_name", `{"amount": 999}`},
		{"zero amount", `{"machine_name": "contes-nit", "amount": 0}`},
		{"negative amount", `{"machine_name": "contes-nit", "amount": -5}`},
		{"bad currency", `{"machine_name": "contes-nit", "amount": 999, "currency": "euros"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, resp := postJSON(t, router, "/api/v1/checkout/link", tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			require.NotNil(t, resp.Error)
			assert.Equal(t, "VALIDATION_ERROR", resp.Error.Code)
		})
	}
}

func TestCheckoutLink_MalformedBody(t *testing.T) {
	router := newTestRouter(t)

	w, resp := postJSON(t, router, "/api/v1/checkout/link", `{"machine_name": `)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "INVALID_INPUT", resp.Error.Code)
}
