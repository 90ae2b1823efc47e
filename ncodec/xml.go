package ncodec

import (
	"encoding/xml"

	"github.com/pkg/errors"
)

// XML decodes an XML body into target.  encoding/xml ignores
// elements the target has no field for; there is no strict mode to
// inherit, so XML models do not get the unknown-field protection the
// JSON and YAML decoders provide.
func XML(data []byte, target interface{}) error {
	return errors.Wrap(xml.Unmarshal(data, target), "decode xml body")
}
