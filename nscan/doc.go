// Package nscan decodes Go structs from ordered token streams.
//
// A Source produces string tokens one at a time.  Decode walks the
// exported fields of a target struct in declaration order and pulls
// tokens from the Source to fill them.  There are no names on the
// wire: a field is bound to whichever token comes next.  That makes
// nscan suitable for positional formats like URL path segments and,
// less obviously, for query strings treated as alternating key/value
// tokens where the keys are consumed but ignored.
//
// Two Sources are provided.  PathSource pairs a route pattern with a
// concrete request path and yields the path segments that line up
// with the pattern's dynamic (":name") segments.  QuerySource splits
// a raw query string on "&" and "=" and yields the pieces in order.
//
// Decode understands strings, booleans, integers, floats, nested
// structs, types implementing encoding.TextUnmarshaler, and pointers.
// A pointer field is optional: the literal token "null" leaves it
// nil, anything else is decoded into a freshly allocated value.  A
// *struct{} field is a presence flag: it consumes its key token but
// no value, and an exhausted stream leaves it absent rather than
// failing.
//
// After the target is filled, Decode calls the Source's End hook so
// the Source can reject leftover input.
package nscan
