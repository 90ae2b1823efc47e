package nscan

import (
	"github.com/pkg/errors"
)

// Source is a stream of string tokens for Decode to consume.
type Source interface {
	// Field announces the name of the field that is about to be
	// decoded.  Sources with keyed input (like query strings) use
	// this to consume the key token.  Positional sources ignore it.
	Field(name string) error

	// Flag resolves a presence flag (*struct{}) field.  Flags have
	// a key but never a value token.  Sources for which flags make
	// no sense report them absent.
	Flag(name string) (bool, error)

	// Next returns the next value token.  When the stream is
	// exhausted it returns an error wrapping ErrUnexpectedEOF.
	Next() (string, error)

	// End is called once the target struct is fully decoded.  A
	// Source returns an error wrapping ErrSyntax if meaningful
	// input remains unconsumed.
	End() error
}

var (
	// ErrUnexpectedEOF indicates the Source ran out of tokens
	// before the target struct was filled.
	ErrUnexpectedEOF = errors.New("unexpected end of input")

	// ErrSyntax indicates the input does not have the shape the
	// target struct requires, for example tokens left over after
	// the last field was decoded.
	ErrSyntax = errors.New("input does not match target shape")
)
