package nhttp

import (
	"encoding/json"
	"fmt"
	"mime"
	"net/http"
	"reflect"
	"strings"
	"time"

	"github.com/muir/nroute"
)

// PoolFunc assembles the argument pool for one request.  It runs
// after the adapter has stamped the request (request ID, context),
// so the pool can pick those up from r.
type PoolFunc[TPool any] func(r *http.Request) (TPool, error)

// HandlerOpt configures the handler returned by Handler.
type HandlerOpt func(*config)

type config struct {
	log         BasicLogger
	encode      func(interface{}) ([]byte, error)
	contentType string
	maxBody     int64
	nil204      bool
	requestID   *RequestIDConfig
	metrics     *Metrics
	errorBody   func(status int, err error) interface{}
}

// WithLogger sets the logger.  The default discards everything.
func WithLogger(log BasicLogger) HandlerOpt {
	return func(c *config) {
		c.log = log
	}
}

// WithEncoder replaces the response encoder and the content type it
// is served under.  The default is json.Marshal as
// "application/json; charset=utf-8".
func WithEncoder(contentType string, encode func(interface{}) ([]byte, error)) HandlerOpt {
	return func(c *config) {
		c.encode = encode
		c.contentType = contentType
	}
}

// WithMaxBody caps request body reads.  Zero keeps the router's
// default limit.
func WithMaxBody(limit int64) HandlerOpt {
	return func(c *config) {
		c.maxBody = limit
	}
}

// WithErrorBody replaces the plain text error responses with an
// encoded model built from the status code and error.
func WithErrorBody(body func(status int, err error) interface{}) HandlerOpt {
	return func(c *config) {
		c.errorBody = body
	}
}

// Nil204 makes a nil handler result serve 204 No Content instead of
// an encoded null.
func Nil204() HandlerOpt {
	return func(c *config) {
		c.nil204 = true
	}
}

// Handler serves router over HTTP.  Each request is dispatched with
// the pool that pool builds for it; the handler result is encoded
// onto the response and dispatch failures become status codes via
// GetReturnCode.  Panics inside handlers surface as 500s.
func Handler[TPool any, TResult any](router *nroute.Router[TPool, TResult], pool PoolFunc[TPool], opts ...HandlerOpt) http.Handler {
	cfg := config{
		log:         NoLogger(),
		encode:      json.Marshal,
		contentType: "application/json; charset=utf-8",
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return &handler[TPool, TResult]{router: router, pool: pool, cfg: cfg}
}

type handler[TPool any, TResult any] struct {
	router *nroute.Router[TPool, TResult]
	pool   PoolFunc[TPool]
	cfg    config
}

func (h *handler[TPool, TResult]) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	if h.cfg.requestID != nil {
		r = stampRequestID(w, r, h.cfg.requestID)
	}
	status := http.StatusOK
	defer func() {
		if p := recover(); p != nil {
			h.cfg.log.Error("panic servicing request", map[string]interface{}{
				"method": r.Method,
				"path":   r.URL.Path,
				"panic":  fmt.Sprint(p),
			})
			status = http.StatusInternalServerError
			http.Error(w, "internal server error", status)
		}
		if h.cfg.metrics != nil {
			h.cfg.metrics.observe(r.Method, status, time.Since(start))
		}
	}()
	pool, err := h.pool(r)
	if err != nil {
		h.cfg.log.Error("assemble argument pool", map[string]interface{}{
			"method": r.Method,
			"path":   r.URL.Path,
			"error":  err.Error(),
		})
		status = http.StatusInternalServerError
		http.Error(w, "internal server error", status)
		return
	}
	result, err := h.router.Match(pool, nroute.Request{
		Method:      r.Method,
		Path:        r.URL.Path,
		Query:       r.URL.RawQuery,
		ContentType: mediaType(r.Header.Get("Content-Type")),
		BodyReader:  r.Body,
		MaxBody:     h.cfg.maxBody,
	})
	if err != nil {
		status = h.writeError(w, r, err)
		return
	}
	if h.cfg.nil204 && isNilResult(result) {
		status = http.StatusNoContent
		w.WriteHeader(status)
		return
	}
	data, err := h.cfg.encode(result)
	if err != nil {
		h.cfg.log.Error("encode response", map[string]interface{}{
			"method": r.Method,
			"path":   r.URL.Path,
			"error":  err.Error(),
		})
		status = http.StatusInternalServerError
		http.Error(w, "internal server error", status)
		return
	}
	w.Header().Set("Content-Type", h.cfg.contentType)
	w.WriteHeader(status)
	_, _ = w.Write(data)
}

func (h *handler[TPool, TResult]) writeError(w http.ResponseWriter, r *http.Request, err error) int {
	status := GetReturnCode(err)
	fields := map[string]interface{}{
		"method": r.Method,
		"path":   r.URL.Path,
		"status": status,
		"error":  err.Error(),
	}
	if status >= 500 {
		h.cfg.log.Error("request failed", fields)
	} else {
		h.cfg.log.Warn("request rejected", fields)
	}
	if h.cfg.errorBody != nil {
		if data, encErr := h.cfg.encode(h.cfg.errorBody(status, err)); encErr == nil {
			w.Header().Set("Content-Type", h.cfg.contentType)
			w.WriteHeader(status)
			_, _ = w.Write(data)
			return status
		}
	}
	http.Error(w, err.Error(), status)
	return status
}

// mediaType reduces a Content-Type header to the bare media type the
// router matches decoders against.
func mediaType(header string) string {
	if header == "" {
		return ""
	}
	mt, _, err := mime.ParseMediaType(header)
	if err != nil {
		if i := strings.IndexByte(header, ';'); i >= 0 {
			header = header[:i]
		}
		return strings.ToLower(strings.TrimSpace(header))
	}
	return mt
}

func isNilResult(v interface{}) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Ptr, reflect.Interface, reflect.Map, reflect.Slice:
		return rv.IsNil()
	}
	return false
}
