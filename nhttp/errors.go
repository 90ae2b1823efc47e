package nhttp

import (
	"net/http"

	"github.com/muir/nroute"
	"github.com/pkg/errors"
)

// ReturnCode associates an HTTP status code with an error.  If err
// is nil, nil is returned.
func ReturnCode(err error, code int) error {
	if err == nil {
		return nil
	}
	return returnCode{cause: err, code: code}
}

type returnCode struct {
	cause error
	code  int
}

func (err returnCode) Error() string { return err.cause.Error() }
func (err returnCode) Unwrap() error { return err.cause }
func (err returnCode) Cause() error  { return err.cause }

// NotFound annotates an error as giving a 404 HTTP return code.
func NotFound(err error) error {
	return ReturnCode(err, http.StatusNotFound)
}

// BadRequest annotates an error as giving a 400 HTTP return code.
func BadRequest(err error) error {
	return ReturnCode(err, http.StatusBadRequest)
}

// Unauthorized annotates an error as giving a 401 HTTP return code.
func Unauthorized(err error) error {
	return ReturnCode(err, http.StatusUnauthorized)
}

// Forbidden annotates an error as giving a 403 HTTP return code.
func Forbidden(err error) error {
	return ReturnCode(err, http.StatusForbidden)
}

// GetReturnCode maps an error to the HTTP status code to serve.  An
// explicit ReturnCode annotation anywhere in the chain wins.  After
// that, the router's classification decides: no matching route is a
// 404, a request that would not bind is a 400.  Everything else is a
// 500.
func GetReturnCode(err error) int {
	var rc returnCode
	if errors.As(err, &rc) {
		return rc.code
	}
	if errors.Is(err, nroute.ErrNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, nroute.ErrBadRequest) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
