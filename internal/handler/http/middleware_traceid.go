package http

import (
	"net/http"

	"github.com/MKhiriev/go-doc-vault/internal/utils"
	"github.com/rs/zerolog"
)

const traceIDHeader = "X-Trace-ID"

// withTraceID attaches a trace id to every incoming request. If the client
// supplied one in the X-Trace-ID header it is reused, otherwise a new UUID
// is generated. The id is stored in the request-scoped logger context and
// echoed back in the response header.
func (h *Handler) withTraceID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		traceID := r.Header.Get(traceIDHeader)
		if traceID == "" {
			traceID = utils.NewUUIDGenerator().Generate()
		}

		ctx := h.logger.WithContext(r.Context())
		zerolog.Ctx(ctx).UpdateContext(func(c zerolog.Context) zerolog.Context {
			return c.Str("trace_id", traceID)
		})

		w.Header().Set(traceIDHeader, traceID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
