package ncodec

import (
	"bytes"
	"encoding/json"
	"reflect"
	"strings"

	"github.com/muir/reflectutils"
	"github.com/pkg/errors"
)

// Content type tags in the form routers match against: lowercase,
// no parameters.
const (
	ContentTypeJSON = "application/json"
	ContentTypeXML  = "application/xml"
	ContentTypeYAML = "application/yaml"
)

// JSON decodes a JSON body into target.  Unknown fields, data
// trailing the top-level value, and missing non-pointer fields are
// all rejected.  Declare a field as a pointer to make it optional.
func JSON(data []byte, target interface{}) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(target); err != nil {
		return errors.Wrap(err, "decode json body")
	}
	if dec.More() {
		return errors.New("unexpected data after json body")
	}
	return checkRequired(data, target)
}

// checkRequired verifies that every non-pointer exported field of a
// struct target appeared as a key in the body's top-level object.
// encoding/json happily leaves absent fields at their zero value;
// for request models that silence hides caller mistakes.
func checkRequired(data []byte, target interface{}) error {
	t := reflect.TypeOf(target)
	for t != nil && t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t == nil || t.Kind() != reflect.Struct {
		return nil
	}
	trimmed := bytes.TrimLeft(data, " \t\r\n")
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil
	}
	var object map[string]json.RawMessage
	if err := json.Unmarshal(data, &object); err != nil {
		return nil
	}
	for _, key := range requiredKeys(t) {
		if _, ok := object[key]; ok {
			continue
		}
		// encoding/json matches keys case-insensitively
		found := false
		for k := range object {
			if strings.EqualFold(k, key) {
				found = true
				break
			}
		}
		if !found {
			return errors.Errorf("missing required field %q", key)
		}
	}
	return nil
}

func requiredKeys(t reflect.Type) []string {
	var keys []string
	reflectutils.WalkStructElements(t, func(field reflect.StructField) bool {
		if field.PkgPath != "" {
			return false
		}
		name := field.Name
		tag, tagged := field.Tag.Lookup("json")
		if tagged {
			base := tag
			if i := strings.IndexByte(tag, ','); i >= 0 {
				base = tag[:i]
			}
			if base == "-" && tag == "-" {
				return false
			}
			if base != "" {
				name = base
			}
		}
		if field.Anonymous && !tagged && field.Type.Kind() == reflect.Struct {
			return true
		}
		if field.Type.Kind() == reflect.Ptr {
			return false
		}
		keys = append(keys, name)
		return false
	})
	return keys
}
