package nroute

import (
	"reflect"
	"strings"

	"github.com/muir/nroute/nscan"
	"github.com/muir/reflectutils"
	"github.com/pkg/errors"
)

// Option configures a Router under construction.
type Option func(*settings)

type settings struct {
	routes   []Route
	decoders []decoderEntry
}

type decoderEntry struct {
	contentType string
	decode      Decoder
}

// WithRoutes adds routes, kept in the order given.  It may be used
// multiple times; later calls append.
func WithRoutes(routes ...Route) Option {
	return func(s *settings) {
		s.routes = append(s.routes, routes...)
	}
}

// WithDecoder registers a body decoder for a content type tag.
// Decoders are consulted in registration order and the first exact
// tag match wins, so registering a tag twice leaves the second
// registration unreachable.  The first registered decoder also
// serves requests that carry no content type at all.
func WithDecoder(contentType string, decode Decoder) Option {
	return func(s *settings) {
		s.decoders = append(s.decoders, decoderEntry{contentType: contentType, decode: decode})
	}
}

// Router matches requests against an ordered route table and invokes
// the winning route's handler.
//
// TPool is the argument pool: a struct whose fields are the values
// (database handles, loggers, contexts) that handlers may request by
// declaring a parameter of the exact field type.  TResult is the
// success type every handler returns.
//
// A Router is immutable once built and safe for concurrent Match
// calls.
type Router[TPool any, TResult any] struct {
	routes     []*boundRoute
	decoders   []decoderEntry
	resultType reflect.Type
}

// New builds a Router.  All validation happens here: patterns are
// parsed and every handler parameter is bound to the pool or to a
// request part.  A Router that New returns without error cannot fail
// at dispatch time except for request-shaped reasons.
func New[TPool any, TResult any](opts ...Option) (*Router[TPool, TResult], error) {
	var s settings
	for _, opt := range opts {
		opt(&s)
	}
	poolType := reflect.TypeOf((*TPool)(nil)).Elem()
	if poolType.Kind() != reflect.Struct {
		return nil, errors.Errorf("argument pool %s must be a struct",
			reflectutils.TypeName(poolType))
	}
	pool := poolFields(poolType)
	r := &Router[TPool, TResult]{
		routes:     make([]*boundRoute, 0, len(s.routes)),
		decoders:   s.decoders,
		resultType: reflect.TypeOf((*TResult)(nil)).Elem(),
	}
	type routeKey struct {
		method  string
		pattern string
	}
	declared := make(map[routeKey]struct{}, len(s.routes))
	for _, route := range s.routes {
		if route.Method == "" {
			return nil, errors.Errorf("route %q has no method", route.Pattern)
		}
		segments, dynamic, err := parsePattern(route.Pattern)
		if err != nil {
			return nil, err
		}
		key := routeKey{method: route.Method, pattern: route.Pattern}
		if _, dup := declared[key]; dup {
			return nil, errors.Errorf("route %s %s is declared twice", route.Method, route.Pattern)
		}
		declared[key] = struct{}{}
		if route.Tail && !strings.HasPrefix(segments[len(segments)-1], ":") {
			return nil, errors.Errorf("route %s %s captures a tail but does not end with a dynamic segment",
				route.Method, route.Pattern)
		}
		plan, handler, err := buildPlan(route.Handler, r.resultType, pool, dynamic, len(s.decoders) > 0)
		if err != nil {
			return nil, errors.Wrapf(err, "route %s %s", route.Method, route.Pattern)
		}
		r.routes = append(r.routes, &boundRoute{
			method:   route.Method,
			pattern:  route.Pattern,
			segments: segments,
			dynamic:  dynamic,
			tail:     route.Tail,
			plan:     plan,
			handler:  handler,
		})
	}
	return r, nil
}

// Must panics if err is not nil.  It wraps New for routers built at
// program initialization, where a bad route table should stop the
// program:
//
//	var router = nroute.Must(nroute.New[Pool, any](...))
func Must[TPool any, TResult any](r *Router[TPool, TResult], err error) *Router[TPool, TResult] {
	if err != nil {
		panic(err)
	}
	return r
}

// Match dispatches one request: the first route matching the
// request's method and path has its arguments bound and its handler
// invoked.  The pool value supplies every pool-bound parameter for
// this call.
//
// When no route matches, the returned error satisfies
// errors.Is(err, ErrNotFound).  When a route matches but binding
// fails, it satisfies errors.Is(err, ErrBadRequest) and wraps the
// binding failure.  Errors returned by the handler pass through
// unchanged, as does the handler's result.
func (r *Router[TPool, TResult]) Match(pool TPool, req Request) (TResult, error) {
	segments := strings.Split(req.Path, "/")
	for _, rt := range r.routes {
		if rt.matches(req.Method, req.Path, segments) {
			return r.dispatch(rt, pool, req)
		}
	}
	var zero TResult
	return zero, notFound(req)
}

func (r *Router[TPool, TResult]) dispatch(rt *boundRoute, pool TPool, req Request) (TResult, error) {
	var zero TResult
	var decode Decoder
	if rt.plan.wantBody {
		decode = r.decoderFor(req.ContentType)
		if decode == nil {
			return zero, badRequest(req, errors.Errorf(
				"no decoder registered for content type %q", req.ContentType))
		}
	}
	poolValue := reflect.ValueOf(pool)
	args := make([]reflect.Value, len(rt.plan.params))
	for i, p := range rt.plan.params {
		switch p.src {
		case bindPool:
			args[i] = poolValue.FieldByIndex(p.index)
		case bindPath:
			model := reflect.New(p.model)
			src := nscan.NewPathSource(rt.pattern, req.Path)
			src.Tail = rt.tail
			if err := nscan.Decode(model.Interface(), src); err != nil {
				return zero, badRequest(req, errors.Wrap(err, "path parameters"))
			}
			args[i] = argValue(model, p.ptr)
		case bindQuery:
			model := reflect.New(p.model)
			if err := nscan.Decode(model.Interface(), nscan.NewQuerySource(req.Query)); err != nil {
				return zero, badRequest(req, errors.Wrap(err, "query parameters"))
			}
			args[i] = argValue(model, p.ptr)
		case bindBody:
			data, err := req.body()
			if err != nil {
				return zero, badRequest(req, err)
			}
			model := reflect.New(p.model)
			if err := decode(data, model.Interface()); err != nil {
				return zero, badRequest(req, errors.Wrap(err, "request body"))
			}
			args[i] = argValue(model, p.ptr)
		}
	}
	out := rt.handler.Call(args)
	if !out[1].IsNil() {
		return zero, out[1].Interface().(error)
	}
	result, _ := out[0].Interface().(TResult)
	return result, nil
}

// decoderFor resolves the decoder for a content type tag: a linear
// first-match scan in registration order, with the first decoder as
// the fallback for requests without a content type.
func (r *Router[TPool, TResult]) decoderFor(contentType string) Decoder {
	if len(r.decoders) == 0 {
		return nil
	}
	if contentType == "" {
		return r.decoders[0].decode
	}
	for _, d := range r.decoders {
		if d.contentType == contentType {
			return d.decode
		}
	}
	return nil
}

func argValue(model reflect.Value, ptr bool) reflect.Value {
	if ptr {
		return model
	}
	return model.Elem()
}
