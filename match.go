package nroute

// This file has the route matcher: given a request line, decide
// whether a compiled route accepts it.  Matching is a pure predicate
// over method and path; query and body never participate.

import (
	"reflect"
	"strings"
)

// boundRoute is a Route after New has parsed its pattern and bound
// its handler.
type boundRoute struct {
	method   string
	pattern  string
	segments []string
	dynamic  bool
	tail     bool
	plan     *plan
	handler  reflect.Value
}

// matches reports whether the request line selects this route.  The
// caller splits the request path once and shares the split across
// the whole route table.
//
// A purely literal pattern is matched by comparing whole strings.
// Otherwise segments are compared pairwise: literals byte-exact,
// dynamic markers against any single non-empty segment.  Segment
// counts must be equal unless the route captures a tail, in which
// case the request may be longer and dynamic markers only need some
// segment to exist.
func (rt *boundRoute) matches(method, path string, segments []string) bool {
	if method != rt.method {
		return false
	}
	if !rt.dynamic {
		return path == rt.pattern
	}
	if rt.tail {
		if len(segments) < len(rt.segments) {
			return false
		}
	} else if len(segments) != len(rt.segments) {
		return false
	}
	for i, pat := range rt.segments {
		if strings.HasPrefix(pat, ":") {
			if !rt.tail && segments[i] == "" {
				return false
			}
			continue
		}
		if segments[i] != pat {
			return false
		}
	}
	return true
}
