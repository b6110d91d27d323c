package http

import (
	"log/slog"
	"mime"
	"net/http"

	"github.com/jaumet/avook-catalog/pkg/httputil"

	apperrors "github.com/jaumet/avook-catalog/pkg/errors"
)

// ContentTypeJSON rejects bodies that are not application/json. Applied to
// the POST routes only; GETs carry no body worth policing.
func ContentTypeJSON(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ct := r.Header.Get("Content-Type")
			if ct != "" {
				mediaType, _, err := mime.ParseMediaType(ct)
				if err != nil || mediaType != "application/json" {
					httputil.WriteError(w, r,
						apperrors.InvalidInput("Content-Type must be application/json"), logger)
					return
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}
