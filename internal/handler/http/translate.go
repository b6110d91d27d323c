package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/jaumet/avook-catalog/pkg/httputil"

	"github.com/jaumet/avook-catalog/internal/translate"
)

// TranslateHandler serves the per-language string catalogs.
type TranslateHandler struct {
	translator *translate.Translator
	logger     *slog.Logger
}

// NewTranslateHandler builds the handler.
func NewTranslateHandler(translator *translate.Translator, logger *slog.Logger) *TranslateHandler {
	return &TranslateHandler{translator: translator, logger: logger}
}

// Languages handles GET /api/v1/translations.
func (h *TranslateHandler) Languages(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{
		Data: map[string][]string{"languages": h.translator.Languages()},
	})
}

// Catalog handles GET /api/v1/translations/{lang}.
func (h *TranslateHandler) Catalog(w http.ResponseWriter, r *http.Request) {
	lang := chi.URLParam(r, "lang")
	catalog, err := h.translator.Catalog(lang)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: catalog})
}
