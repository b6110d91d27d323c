package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/jaumet/avook-catalog/pkg/httputil"
	"github.com/jaumet/avook-catalog/pkg/validator"

	"github.com/jaumet/avook-catalog/internal/checkout"
	"github.com/jaumet/avook-catalog/internal/service"

	apperrors "github.com/jaumet/avook-catalog/pkg/errors"
)

// CheckoutHandler turns a title purchase into a hosted payment link.
type CheckoutHandler struct {
	checkout *checkout.Service
	catalog  *service.Catalog
	logger   *slog.Logger
}

// NewCheckoutHandler builds the handler.
func NewCheckoutHandler(svc *checkout.Service, catalog *service.Catalog, logger *slog.Logger) *CheckoutHandler {
	return &CheckoutHandler{checkout: svc, catalog: catalog, logger: logger}
}

// LinkDTO is the POST /checkout/link request body. Amount is in the
// currency's minor unit.
type LinkDTO struct {
	MachineName string `json:"machine_name" validate:"required,min=1,max=200"`
	Amount      int64  `json:"amount" validate:"required,gt=0"`
	Currency    string `json:"currency" validate:"omitempty,len=3"`
}

// Link handles POST /api/v1/checkout/link.
func (h *CheckoutHandler) Link(w http.ResponseWriter, r *http.Request) {
	var dto LinkDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		httputil.WriteError(w, r, apperrors.InvalidInput("invalid request body"), h.logger)
		return
	}
	if err := validator.Validate(dto); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}
	if dto.Currency == "" {
		dto.Currency = "eur"
	}

	// Only cataloged titles can be bought.
	title, err := h.catalog.Title(dto.MachineName)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	link, err := h.checkout.PaymentLink(r.Context(), &checkout.LinkRequest{
		MachineName: title.MachineName,
		DisplayName: title.HumanName,
		Amount:      dto.Amount,
		Currency:    dto.Currency,
	})
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, httputil.Response{Data: link})
}
