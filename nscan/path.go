package nscan

import (
	"strings"

	"github.com/pkg/errors"
)

// PathSource yields the request path segments that line up with the
// dynamic (":name") segments of a route pattern.  Pattern and path
// are walked in lock step: literal pattern segments advance both
// cursors without producing a token, dynamic segments produce the
// paired path segment.
//
// PathSource assumes the pattern already matched the path.  When the
// two disagree anyway, running out of segments mid-decode reports
// ErrUnexpectedEOF, and dynamic segments left unconsumed at End
// report ErrSyntax.
type PathSource struct {
	// Tail makes the final dynamic pattern segment capture the
	// entire remaining path suffix, rejoined with "/".
	Tail bool

	pattern []string
	path    []string
	pi      int
	ci      int
}

// NewPathSource pairs a route pattern with a concrete request path.
// Both are split on "/" keeping empty segments, so "/a/b" becomes
// ["", "a", "b"].
func NewPathSource(pattern, path string) *PathSource {
	return &PathSource{
		pattern: strings.Split(pattern, "/"),
		path:    strings.Split(path, "/"),
	}
}

// Field is a no-op: path binding is purely positional.
func (s *PathSource) Field(string) error { return nil }

// Flag reports flags as absent.  A path has no notion of a bare key.
func (s *PathSource) Flag(string) (bool, error) { return false, nil }

// Next advances past literal segments and returns the path segment
// paired with the next dynamic pattern segment.
func (s *PathSource) Next() (string, error) {
	for s.pi < len(s.pattern) {
		pat := s.pattern[s.pi]
		s.pi++
		if s.ci >= len(s.path) {
			if strings.HasPrefix(pat, ":") {
				return "", errors.Wrap(ErrUnexpectedEOF, "request path exhausted")
			}
			continue
		}
		seg := s.path[s.ci]
		s.ci++
		if !strings.HasPrefix(pat, ":") {
			continue
		}
		if s.Tail && s.pi == len(s.pattern) {
			tail := strings.Join(s.path[s.ci-1:], "/")
			s.ci = len(s.path)
			return tail, nil
		}
		return seg, nil
	}
	return "", errors.Wrap(ErrUnexpectedEOF, "route pattern exhausted")
}

// End reports ErrSyntax if dynamic pattern segments remain that no
// field consumed.
func (s *PathSource) End() error {
	for _, pat := range s.pattern[s.pi:] {
		if strings.HasPrefix(pat, ":") {
			return errors.Wrapf(ErrSyntax, "dynamic segment %s was not consumed", pat)
		}
	}
	return nil
}
