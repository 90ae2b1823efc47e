// Package nhttp serves a nroute.Router over net/http.
//
// Handler turns a router plus a pool builder into an http.Handler.
// The pool builder runs once per request and assembles the argument
// pool handlers draw from; that is the place to put the request
// context, per-request loggers, and anything else handlers need
// beyond what the request itself carries.
//
// The adapter owns the HTTP-flavored concerns the router is neutral
// about: it maps dispatch failures to status codes (ErrNotFound to
// 404, ErrBadRequest to 400, ReturnCode annotations to whatever they
// say), encodes handler results (JSON unless told otherwise),
// recovers panics into 500s, and optionally stamps request IDs and
// publishes Prometheus metrics.
package nhttp
