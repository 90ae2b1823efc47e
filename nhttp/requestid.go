package nhttp

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

type requestIDKey struct{}

// RequestIDFromContext returns the request ID stored in the context
// by WithRequestID, or "" when request IDs are not enabled.  The
// pool builder sees the updated context, so a pool can carry the ID
// onward to handlers.
func RequestIDFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDKey{}).(string); ok {
		return id
	}
	return ""
}

// RequestIDConfig configures request ID handling.
type RequestIDConfig struct {
	// HeaderName overrides the header used to propagate the
	// request ID.  Defaults to "X-Request-ID".
	HeaderName string

	// Generate returns a new unique ID.  Defaults to random UUIDs.
	Generate func(r *http.Request) string

	// TrustIncoming reuses an ID already present on the incoming
	// request header instead of generating a fresh one.
	TrustIncoming bool
}

// WithRequestID gives every request an ID: echoed on the response
// header, set on the request header for anything downstream, and
// stored in the request context before the pool builder runs.
func WithRequestID(cfg RequestIDConfig) HandlerOpt {
	return func(c *config) {
		c.requestID = &cfg
	}
}

func stampRequestID(w http.ResponseWriter, r *http.Request, cfg *RequestIDConfig) *http.Request {
	header := cfg.HeaderName
	if header == "" {
		header = "X-Request-ID"
	}
	var id string
	if cfg.TrustIncoming {
		id = r.Header.Get(header)
	}
	if id == "" {
		if cfg.Generate != nil {
			id = cfg.Generate(r)
		} else {
			id = uuid.NewString()
		}
	}
	if id == "" {
		return r
	}
	r.Header.Set(header, id)
	w.Header().Set(header, id)
	return r.WithContext(context.WithValue(r.Context(), requestIDKey{}, id))
}
