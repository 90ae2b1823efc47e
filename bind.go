package nroute

// Binding happens once, at router construction.  Each handler
// parameter is classified against the argument pool and the role
// markers, producing a plan that dispatch replays with no further
// decisions beyond running the decoders.

import (
	"reflect"

	"github.com/muir/reflectutils"
	"github.com/pkg/errors"
)

type bindSource int

const (
	bindPool bindSource = iota
	bindPath
	bindQuery
	bindBody
)

func (s bindSource) String() string {
	switch s {
	case bindPool:
		return "argument pool"
	case bindPath:
		return "path parameters"
	case bindQuery:
		return "query parameters"
	case bindBody:
		return "request body"
	}
	return "unknown"
}

// param is one handler parameter's binding decision.
type param struct {
	src   bindSource
	model reflect.Type // struct to decode into, for request-sourced params
	ptr   bool         // handler wants *model rather than model
	index []int        // pool field index, for pool-sourced params
}

// plan is the full binding decision for one handler.
type plan struct {
	params   []param
	wantBody bool
}

var (
	errorType       = reflect.TypeOf((*error)(nil)).Elem()
	pathMarkerType  = reflect.TypeOf(PathParams{})
	queryMarkerType = reflect.TypeOf(QueryParams{})
	bodyMarkerType  = reflect.TypeOf(BodyModel{})
)

// poolField is one type the argument pool can supply.
type poolField struct {
	typ   reflect.Type
	index []int
}

// poolFields lists what a pool struct offers, in declaration order.
// Embedded structs are offered both as themselves and flattened, so
// a pool can group common dependencies in a shared embedded struct.
func poolFields(t reflect.Type) []poolField {
	var fields []poolField
	reflectutils.WalkStructElements(t, func(field reflect.StructField) bool {
		if field.PkgPath != "" {
			return false
		}
		fields = append(fields, poolField{typ: field.Type, index: field.Index})
		return field.Anonymous
	})
	return fields
}

func poolLookup(pool []poolField, t reflect.Type) ([]int, bool) {
	for _, f := range pool {
		if f.typ == t {
			return f.index, true
		}
	}
	return nil, false
}

// roleOf finds the role marker a struct embeds.  At most one marker
// is allowed.
func roleOf(t reflect.Type) (bindSource, bool, error) {
	var roles []bindSource
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.Anonymous {
			continue
		}
		switch field.Type {
		case pathMarkerType:
			roles = append(roles, bindPath)
		case queryMarkerType:
			roles = append(roles, bindQuery)
		case bodyMarkerType:
			roles = append(roles, bindBody)
		}
	}
	switch len(roles) {
	case 0:
		return 0, false, nil
	case 1:
		return roles[0], true, nil
	default:
		return 0, false, errors.Errorf("%s embeds more than one role marker",
			reflectutils.TypeName(t))
	}
}

// buildPlan classifies every parameter of a handler.  The pool is
// consulted first: a parameter whose type exactly matches a pool
// field is filled from the pool even if the type also carries a role
// marker.  Everything else must be a struct, or pointer to struct,
// embedding exactly one marker, and each role may be claimed by only
// one parameter.
func buildPlan(fn interface{}, resultType reflect.Type, pool []poolField, dynamic, haveDecoders bool) (*plan, reflect.Value, error) {
	v := reflect.ValueOf(fn)
	if !v.IsValid() {
		return nil, reflect.Value{}, errors.New("handler must not be nil")
	}
	if v.Kind() != reflect.Func {
		return nil, reflect.Value{}, errors.Errorf("handler must be a func, got %s",
			reflectutils.TypeName(v.Type()))
	}
	if v.IsNil() {
		return nil, reflect.Value{}, errors.New("handler must not be nil")
	}
	t := v.Type()
	if t.IsVariadic() {
		return nil, reflect.Value{}, errors.New("handler must not be variadic")
	}
	if t.NumOut() != 2 || t.Out(0) != resultType || t.Out(1) != errorType {
		return nil, reflect.Value{}, errors.Errorf("handler must return (%s, error), got %s",
			reflectutils.TypeName(resultType), reflectutils.TypeName(t))
	}
	p := &plan{params: make([]param, t.NumIn())}
	claimed := make(map[bindSource]bool)
	for i := 0; i < t.NumIn(); i++ {
		pt := t.In(i)
		if index, ok := poolLookup(pool, pt); ok {
			p.params[i] = param{src: bindPool, index: index}
			continue
		}
		model := pt
		var isPtr bool
		if pt.Kind() == reflect.Ptr && pt.Elem().Kind() == reflect.Struct {
			model = pt.Elem()
			isPtr = true
		}
		if model.Kind() != reflect.Struct {
			return nil, reflect.Value{}, errors.Errorf(
				"parameter %d (%s) is not in the argument pool and cannot carry a role marker",
				i, reflectutils.TypeName(pt))
		}
		role, ok, err := roleOf(model)
		if err != nil {
			return nil, reflect.Value{}, errors.Wrapf(err, "parameter %d", i)
		}
		if !ok {
			return nil, reflect.Value{}, errors.Errorf(
				"parameter %d (%s) is not in the argument pool and embeds no role marker",
				i, reflectutils.TypeName(pt))
		}
		if claimed[role] {
			return nil, reflect.Value{}, errors.Errorf(
				"parameter %d (%s): the %s is already claimed by an earlier parameter",
				i, reflectutils.TypeName(pt), role)
		}
		claimed[role] = true
		switch role {
		case bindPath:
			if !dynamic {
				return nil, reflect.Value{}, errors.Errorf(
					"parameter %d (%s) wants path parameters but the pattern has no dynamic segments",
					i, reflectutils.TypeName(pt))
			}
		case bindBody:
			if !haveDecoders {
				return nil, reflect.Value{}, errors.Errorf(
					"parameter %d (%s) wants a request body but no decoder is registered",
					i, reflectutils.TypeName(pt))
			}
			p.wantBody = true
		}
		p.params[i] = param{src: role, model: model, ptr: isPtr}
	}
	return p, v, nil
}
