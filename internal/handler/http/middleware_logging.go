package http

import (
	"net/http"
	"time"

	"github.com/MKhiriev/go-doc-vault/internal/logger"
)

// withLogging writes a structured access-log entry for every handled request:
// method, URI, status code, response size and duration.
func (h *Handler) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		rw := newResponseWriter(w)
		next.ServeHTTP(rw, r)

		log := logger.FromRequest(r)
		log.Info().
			Str("method", r.Method).
			Str("uri", r.RequestURI).
			Int("status", rw.Status()).
			Int("size", rw.Size()).
			Dur("duration", time.Since(start)).
			Msg("request handled")
	})
}
