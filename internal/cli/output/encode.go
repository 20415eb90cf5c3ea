package output

import (
	"encoding/json"
	"io"

	"github.com/fxamacker/cbor/v2"
	"gopkg.in/yaml.v3"
)

// cborMode uses Core Deterministic Encoding so the same packet view always
// produces the same bytes.
var cborMode cbor.EncMode

func init() {
	opts := cbor.CoreDetEncOptions()
	opts.TextMarshaler = cbor.TextMarshalerTextString

	var err error
	cborMode, err = opts.EncMode()
	if err != nil {
		panic("output: CBOR encoder initialization failed: " + err.Error())
	}
}

// PrintJSON writes data as indented JSON.
func PrintJSON(w io.Writer, data any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

// PrintYAML writes data as YAML.
func PrintYAML(w io.Writer, data any) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	defer func() { _ = encoder.Close() }()
	return encoder.Encode(data)
}

// PrintCBOR writes data as a single deterministic CBOR item with no
// trailing newline.
func PrintCBOR(w io.Writer, data any) error {
	return cborMode.NewEncoder(w).Encode(data)
}
