package nroute

import (
	"fmt"

	"github.com/pkg/errors"
)

// Dispatch failures come in exactly two kinds.  Test with errors.Is.
var (
	// ErrNotFound reports that no route matched the request's
	// method and path.
	ErrNotFound = errors.New("no route matched")

	// ErrBadRequest reports that a route matched but the request's
	// path, query, or body could not be decoded into the handler's
	// parameters.
	ErrBadRequest = errors.New("request does not fit the handler's parameters")
)

// routeError ties a dispatch failure to its classification and, for
// binding failures, the underlying cause.
type routeError struct {
	kind   error // ErrNotFound or ErrBadRequest
	cause  error
	method string
	path   string
}

func (e *routeError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s %s: %s: %s", e.method, e.path, e.kind.Error(), e.cause.Error())
	}
	return fmt.Sprintf("%s %s: %s", e.method, e.path, e.kind.Error())
}

// Is lets errors.Is match the classification sentinel without
// cutting off the cause chain.
func (e *routeError) Is(target error) bool {
	return target == e.kind
}

func (e *routeError) Unwrap() error {
	if e.cause != nil {
		return e.cause
	}
	return e.kind
}

// Cause exists for github.com/pkg/errors style unwrapping.
func (e *routeError) Cause() error {
	return e.Unwrap()
}

func notFound(req Request) error {
	return &routeError{kind: ErrNotFound, method: req.Method, path: req.Path}
}

func badRequest(req Request, cause error) error {
	return &routeError{kind: ErrBadRequest, cause: cause, method: req.Method, path: req.Path}
}
