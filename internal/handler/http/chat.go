package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/jaumet/avook-catalog/pkg/httputil"
	"github.com/jaumet/avook-catalog/pkg/validator"

	"github.com/jaumet/avook-catalog/internal/chat"

	apperrors "github.com/jaumet/avook-catalog/pkg/errors"
)

// ChatHandler relays visitor messages to the chat backend. A nil client
// means the backend is not configured for this deployment.
type ChatHandler struct {
	client *chat.Client
	logger *slog.Logger
}

// NewChatHandler builds the handler.
func NewChatHandler(client *chat.Client, logger *slog.Logger) *ChatHandler {
	return &ChatHandler{client: client, logger: logger}
}

// MessageDTO is the POST /chat request body.
type MessageDTO struct {
	Message string `json:"message" validate:"required,min=1,max=2000"`
}

// MessageResponse carries the backend's reply.
type MessageResponse struct {
	Reply string `json:"reply"`
}

// Send handles POST /api/v1/chat.
func (h *ChatHandler) Send(w http.ResponseWriter, r *http.Request) {
	if h.client == nil {
		httputil.WriteError(w, r, apperrors.Unavailable("chat backend", nil), h.logger)
		return
	}

	var dto MessageDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		httputil.WriteError(w, r, apperrors.InvalidInput("invalid request body"), h.logger)
		return
	}
	if err := validator.Validate(dto); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	reply, err := h.client.Send(r.Context(), dto.Message)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: MessageResponse{Reply: reply}})
}
