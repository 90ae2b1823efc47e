package nroute

import (
	"net/http"
	"strings"

	"github.com/pkg/errors"
)

// Route declares one method and path pattern together with the
// handler that serves it.  Routes are plain data until they are
// handed to New, which is where patterns are parsed and handlers
// are bound.
type Route struct {
	Method  string
	Pattern string
	Handler interface{}

	// Tail lets the pattern's final dynamic segment capture the
	// whole remaining path, segments rejoined with "/".  Set it
	// with CaptureTail.
	Tail bool
}

// NewRoute declares a route for an arbitrary method.
func NewRoute(method, pattern string, handler interface{}) Route {
	return Route{Method: method, Pattern: pattern, Handler: handler}
}

// GET declares a GET route.
func GET(pattern string, handler interface{}) Route {
	return NewRoute(http.MethodGet, pattern, handler)
}

// POST declares a POST route.
func POST(pattern string, handler interface{}) Route {
	return NewRoute(http.MethodPost, pattern, handler)
}

// PUT declares a PUT route.
func PUT(pattern string, handler interface{}) Route {
	return NewRoute(http.MethodPut, pattern, handler)
}

// PATCH declares a PATCH route.
func PATCH(pattern string, handler interface{}) Route {
	return NewRoute(http.MethodPatch, pattern, handler)
}

// DELETE declares a DELETE route.
func DELETE(pattern string, handler interface{}) Route {
	return NewRoute(http.MethodDelete, pattern, handler)
}

// HEAD declares a HEAD route.
func HEAD(pattern string, handler interface{}) Route {
	return NewRoute(http.MethodHead, pattern, handler)
}

// OPTIONS declares an OPTIONS route.
func OPTIONS(pattern string, handler interface{}) Route {
	return NewRoute(http.MethodOptions, pattern, handler)
}

// CaptureTail returns a copy of the route with tail capture enabled.
// The route's pattern must end with a dynamic segment; New enforces
// that.
func (r Route) CaptureTail() Route {
	r.Tail = true
	return r
}

// parsePattern validates a route pattern and splits it into
// segments.  It reports whether any segment is dynamic.
func parsePattern(pattern string) ([]string, bool, error) {
	if pattern == "" || pattern[0] != '/' {
		return nil, false, errors.Errorf("pattern %q must begin with /", pattern)
	}
	if pattern != "/" && strings.HasSuffix(pattern, "/") {
		return nil, false, errors.Errorf("pattern %q must not end with /", pattern)
	}
	if strings.Contains(pattern, "//") {
		return nil, false, errors.Errorf("pattern %q has an empty segment", pattern)
	}
	segments := strings.Split(pattern, "/")
	var dynamic bool
	for _, seg := range segments[1:] {
		if strings.HasPrefix(seg, ":") {
			if len(seg) == 1 {
				return nil, false, errors.Errorf("pattern %q has an unnamed dynamic segment", pattern)
			}
			dynamic = true
		}
	}
	return segments, dynamic, nil
}
