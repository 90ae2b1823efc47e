package nroute

import (
	"io"

	"github.com/pkg/errors"
)

// Role markers.  Embed one of these in a handler parameter struct to
// say which part of the request fills it.  A parameter type that is
// not found in the argument pool must embed exactly one marker.
type (
	// PathParams marks a struct whose fields are bound, in
	// declaration order, from the pattern's dynamic path segments.
	PathParams struct{}

	// QueryParams marks a struct whose fields are bound, in
	// declaration order, from the request's query string tokens.
	QueryParams struct{}

	// BodyModel marks a struct decoded from the request body by
	// the decoder registered for the request's content type.
	BodyModel struct{}
)

// Decoder deserializes a request body into target, a pointer to a
// body model struct.  Register decoders with WithDecoder.  The
// ncodec subpackage provides JSON, XML, and YAML decoders of this
// shape.
type Decoder func(data []byte, target interface{}) error

// DefaultMaxBody caps body reads from Request.BodyReader when the
// Request does not set its own limit.
const DefaultMaxBody = 10 << 20

// Request is the transport-neutral shape the Router dispatches on.
// The nhttp subpackage builds one from an *http.Request; tests and
// non-HTTP transports can build one by hand.
type Request struct {
	// Method is compared byte-exact against route methods.
	Method string

	// Path is the request path, already percent-decoded if the
	// transport does such things.
	Path string

	// Query is the raw query string, without the leading "?".
	Query string

	// ContentType selects the body decoder.  It should be just the
	// media type: lowercase, no parameters.
	ContentType string

	// Body is the materialized request body.  When nil, BodyReader
	// supplies the body instead.
	Body []byte

	// BodyReader is consulted lazily: it is read at most once per
	// dispatch, and only when the matched handler declares a body
	// model parameter.
	BodyReader io.Reader

	// MaxBody caps how many bytes may be read from BodyReader.
	// Zero means DefaultMaxBody.
	MaxBody int64
}

// body materializes the request body.
func (r *Request) body() ([]byte, error) {
	if r.Body != nil {
		return r.Body, nil
	}
	if r.BodyReader == nil {
		return nil, nil
	}
	max := r.MaxBody
	if max <= 0 {
		max = DefaultMaxBody
	}
	data, err := io.ReadAll(io.LimitReader(r.BodyReader, max+1))
	if err != nil {
		return nil, errors.Wrap(err, "read request body")
	}
	if int64(len(data)) > max {
		return nil, errors.Errorf("request body larger than %d bytes", max)
	}
	return data, nil
}
