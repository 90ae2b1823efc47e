package nscan

import (
	"encoding"
	"reflect"
	"strconv"

	"github.com/muir/reflectutils"
	"github.com/pkg/errors"
)

var textUnmarshallerType = reflect.TypeOf((*encoding.TextUnmarshaler)(nil)).Elem()

// Decode fills target, which must be a non-nil pointer to a struct,
// with tokens drawn from src.  Fields are filled in declaration
// order.  Embedded structs are flattened so that their fields decode
// at the embed point.  After the last field, src.End reports whether
// meaningful input remains.
//
// Decode does not allocate names on the wire: the mapping from token
// to field is purely positional.
func Decode(target interface{}, src Source) error {
	if target == nil {
		return errors.New("decode target must be a non-nil pointer to a struct")
	}
	v := reflect.ValueOf(target)
	if v.Kind() != reflect.Ptr || v.IsNil() {
		return errors.Errorf("decode target must be a non-nil pointer to a struct, got %s",
			reflectutils.TypeName(v.Type()))
	}
	e := v.Elem()
	if e.Kind() != reflect.Struct {
		return errors.Errorf("decode target must point to a struct, got %s",
			reflectutils.TypeName(e.Type()))
	}
	d := decoder{src: src}
	if err := d.record(e); err != nil {
		return err
	}
	return src.End()
}

// decoder carries one token of lookahead so optional fields can probe
// for the "null" literal and put the token back when the value turns
// out to be present.
type decoder struct {
	src      Source
	pushback string
	buffered bool
}

func (d *decoder) next() (string, error) {
	if d.buffered {
		d.buffered = false
		return d.pushback, nil
	}
	return d.src.Next()
}

func (d *decoder) unread(tok string) {
	d.pushback = tok
	d.buffered = true
}

func (d *decoder) record(v reflect.Value) error {
	for _, field := range visibleFields(v.Type()) {
		fv := v.FieldByIndex(field.Index)
		// Nested records do not get a key of their own: only their
		// leaf fields request key/value pairs.
		if field.Type.Kind() == reflect.Struct && !isTextUnmarshaller(field.Type) {
			if err := d.record(fv); err != nil {
				return errors.Wrap(err, field.Name)
			}
			continue
		}
		if isFlagType(field.Type) {
			present, err := d.src.Flag(field.Name)
			if err != nil {
				return errors.Wrap(err, field.Name)
			}
			if present {
				fv.Set(reflect.New(field.Type.Elem()))
			}
			continue
		}
		if err := d.src.Field(field.Name); err != nil {
			return errors.Wrap(err, field.Name)
		}
		if err := d.value(fv); err != nil {
			return errors.Wrap(err, field.Name)
		}
	}
	return nil
}

// isFlagType reports whether t is a presence flag, a pointer to an
// empty struct.
func isFlagType(t reflect.Type) bool {
	return t.Kind() == reflect.Ptr &&
		t.Elem().Kind() == reflect.Struct &&
		t.Elem().NumField() == 0 &&
		!isTextUnmarshaller(t.Elem())
}

func (d *decoder) value(v reflect.Value) error {
	t := v.Type()
	if t.Kind() == reflect.Ptr {
		return d.optional(v)
	}
	if isTextUnmarshaller(t) {
		tok, err := d.next()
		if err != nil {
			return err
		}
		return errors.Wrapf(unmarshalText(v, tok), "cannot decode %q", tok)
	}
	switch t.Kind() {
	case reflect.String:
		tok, err := d.next()
		if err != nil {
			return err
		}
		v.SetString(tok)
	case reflect.Bool:
		tok, err := d.next()
		if err != nil {
			return err
		}
		switch tok {
		case "true":
			v.SetBool(true)
		case "false":
			v.SetBool(false)
		default:
			return errors.Errorf("cannot decode %q as bool", tok)
		}
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		tok, err := d.next()
		if err != nil {
			return err
		}
		i, err := strconv.ParseInt(tok, 10, t.Bits())
		if err != nil {
			return errors.Errorf("cannot decode %q as %s", tok, t)
		}
		v.SetInt(i)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		tok, err := d.next()
		if err != nil {
			return err
		}
		u, err := strconv.ParseUint(tok, 10, t.Bits())
		if err != nil {
			return errors.Errorf("cannot decode %q as %s", tok, t)
		}
		v.SetUint(u)
	case reflect.Float32, reflect.Float64:
		tok, err := d.next()
		if err != nil {
			return err
		}
		f, err := strconv.ParseFloat(tok, t.Bits())
		if err != nil {
			return errors.Errorf("cannot decode %q as %s", tok, t)
		}
		v.SetFloat(f)
	case reflect.Struct:
		return d.record(v)
	default:
		return errors.Errorf("cannot decode into %s", reflectutils.TypeName(t))
	}
	return nil
}

// optional handles pointer fields.  The token "null" leaves the
// pointer nil.  Any other token is put back and decoded into a newly
// allocated value of the pointed-to type.  A pointer to an empty
// struct is a pure presence flag and consumes no value token.
func (d *decoder) optional(v reflect.Value) error {
	elem := v.Type().Elem()
	if elem.Kind() == reflect.Struct && elem.NumField() == 0 && !isTextUnmarshaller(elem) {
		v.Set(reflect.New(elem))
		return nil
	}
	tok, err := d.next()
	if err != nil {
		return err
	}
	if tok == "null" {
		v.Set(reflect.Zero(v.Type()))
		return nil
	}
	d.unread(tok)
	fresh := reflect.New(elem)
	if err := d.value(fresh.Elem()); err != nil {
		return err
	}
	v.Set(fresh)
	return nil
}

// visibleFields lists the decodable fields of a struct type in
// declaration order.  Unexported fields are skipped.  Embedded
// structs that do not decode as a single value are flattened.  The
// returned fields have Index chained relative to t for use with
// FieldByIndex.
func visibleFields(t reflect.Type) []reflect.StructField {
	var fields []reflect.StructField
	reflectutils.WalkStructElements(t, func(field reflect.StructField) bool {
		if field.PkgPath != "" {
			return false
		}
		if field.Anonymous && field.Type.Kind() == reflect.Struct && !isTextUnmarshaller(field.Type) {
			return true
		}
		fields = append(fields, field)
		return false
	})
	return fields
}

func isTextUnmarshaller(t reflect.Type) bool {
	return t.Implements(textUnmarshallerType) || reflect.PtrTo(t).Implements(textUnmarshallerType)
}

func unmarshalText(v reflect.Value, tok string) error {
	if v.CanAddr() {
		if u, ok := v.Addr().Interface().(encoding.TextUnmarshaler); ok {
			return u.UnmarshalText([]byte(tok))
		}
	}
	u, ok := v.Interface().(encoding.TextUnmarshaler)
	if !ok {
		return errors.Errorf("%s does not implement encoding.TextUnmarshaler",
			reflectutils.TypeName(v.Type()))
	}
	return u.UnmarshalText([]byte(tok))
}
