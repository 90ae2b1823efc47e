package ncodec

import (
	"bytes"
	"io"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// YAML decodes a YAML body into target, rejecting keys the target
// has no field for.
func YAML(data []byte, target interface{}) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	err := dec.Decode(target)
	if err == io.EOF {
		return errors.New("empty yaml body")
	}
	return errors.Wrap(err, "decode yaml body")
}
