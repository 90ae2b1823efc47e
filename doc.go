// Obligatory // comment

/*

Package nroute matches requests against declared routes and binds
handler arguments from the request by type.  It is transport neutral:
a Request is just a method, a path, a raw query string, a content
type, and an optional body.  The nhttp subpackage adapts a Router to
net/http; nothing in this package depends on it.

Declaring routes

A route pairs a method and a path pattern with a handler function.
Patterns are absolute paths whose segments are either literals or
dynamic markers:

	nroute.GET("/users/:id", getUser)
	nroute.POST("/users", createUser)
	nroute.GET("/files/:path", getFile).CaptureTail()

A dynamic segment (":id") matches exactly one non-empty path segment.
By default the request path must have exactly as many segments as the
pattern.  CaptureTail relaxes that for patterns ending in a dynamic
segment: the final marker swallows the rest of the path, so the route
above matches "/files/docs/2024/report.pdf" with the captured path
being "docs/2024/report.pdf".

Routes are tried strictly in declaration order and the first match
wins.  There is no scoring and no backtracking: once a route matches,
a failure to bind the handler's arguments fails the dispatch rather
than trying later routes.  Overlapping patterns are resolved by
declaring the more specific route first.

Handlers and the argument pool

Handlers are ordinary functions.  Every handler registered with a
Router[TPool, TResult] must return (TResult, error).  Its parameters
are resolved when the Router is built, each one either from the
argument pool or from the request:

	type Pool struct {
		Ctx context.Context
		DB  *sql.DB
		Log *log.Logger
	}

	router, err := nroute.New[Pool, any](
		nroute.WithRoutes(
			nroute.GET("/users/:id", func(db *sql.DB, p UserParams) (any, error) {
				...
			}),
		),
	)

A parameter whose type exactly matches a pool field is filled from
the pool value passed to Match.  Anything else must be a struct (or
pointer to struct) that embeds one of the role markers PathParams,
QueryParams, or BodyModel:

	type UserParams struct {
		nroute.PathParams
		ID int64
	}

Binding is positional, not by name: the fields of a path parameter
struct are filled in declaration order from the pattern's dynamic
segments, and query structs are filled in order from the query
string's key/value tokens (see the nscan subpackage for the exact
rules, including optional pointer fields and the "null" literal).
Body structs are filled by whichever registered decoder matches the
request's content type.

A handler whose parameters cannot all be resolved is a construction
error: New reports it and nothing is deferred to request time.
Router construction also rejects malformed patterns, duplicate
method/pattern pairs, and handlers with the wrong return shape.

Dispatching

Match finds the first route for the request and invokes its handler:

	result, err := router.Match(Pool{Ctx: ctx, DB: db, Log: log}, nroute.Request{
		Method: "GET",
		Path:   "/users/7",
	})

Errors from Match are classified: errors.Is(err, ErrNotFound) when no
route matched, errors.Is(err, ErrBadRequest) when a route matched but
the request's path, query, or body could not be decoded into the
handler's parameters.  Errors returned by the handler itself pass
through unchanged.

A Router is immutable after New and safe for concurrent use.

Bodies

Body decoding is pluggable.  Register decoders at construction:

	nroute.WithDecoder("application/json", ncodec.JSON)

The request's content type selects the decoder; a request without a
content type uses the first registered decoder.  The body is read at
most once per dispatch and only when the matched handler actually
declares a BodyModel parameter.
*/
package nroute
