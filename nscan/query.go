package nscan

import (
	"strings"

	"github.com/pkg/errors"
)

// QuerySource yields the pieces of a raw query string in order.  The
// query "a=1&b=2" becomes the tokens "a", "1", "b", "2".  Keys are
// consumed by Field and their text discarded: binding is positional,
// not by name.  A bare key with no "=value" works as a presence flag
// when the matching field is a *struct{}.
type QuerySource struct {
	tokens []string
	i      int
}

// NewQuerySource splits query on "&" and "=" keeping empty tokens,
// so the empty query is a single empty token.
func NewQuerySource(query string) *QuerySource {
	return &QuerySource{tokens: splitQuery(query)}
}

func splitQuery(query string) []string {
	tokens := make([]string, 0, strings.Count(query, "&")+strings.Count(query, "=")+1)
	start := 0
	for i := 0; i < len(query); i++ {
		switch query[i] {
		case '&', '=':
			tokens = append(tokens, query[start:i])
			start = i + 1
		}
	}
	return append(tokens, query[start:])
}

// Field consumes the key token for the named field.  The key's text
// is ignored.
func (s *QuerySource) Field(name string) error {
	if s.i >= len(s.tokens) {
		return errors.Wrapf(ErrUnexpectedEOF, "no key left for %s", name)
	}
	s.i++
	return nil
}

// Flag consumes the key token for a presence flag field.  The flag
// is present when a non-empty key was available.  The lone empty
// token produced by an empty query does not set the flag, and a
// fully consumed query leaves the flag absent rather than failing.
func (s *QuerySource) Flag(string) (bool, error) {
	if s.i >= len(s.tokens) {
		return false, nil
	}
	tok := s.tokens[s.i]
	s.i++
	return tok != "", nil
}

// Next consumes and returns the next token.
func (s *QuerySource) Next() (string, error) {
	if s.i >= len(s.tokens) {
		return "", errors.Wrap(ErrUnexpectedEOF, "query exhausted")
	}
	tok := s.tokens[s.i]
	s.i++
	return tok, nil
}

// End reports ErrSyntax if tokens remain.  A single leftover empty
// token is tolerated: it is what splitting the empty query produces.
func (s *QuerySource) End() error {
	rest := s.tokens[s.i:]
	if len(rest) == 0 || (len(rest) == 1 && rest[0] == "") {
		return nil
	}
	return errors.Wrapf(ErrSyntax, "%d query tokens left over", len(rest))
}
