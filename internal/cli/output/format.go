// Package output renders CLI results as tables, JSON, YAML or CBOR.
package output

import (
	"fmt"
	"strings"
)

// Format represents the output format type.
type Format string

const (
	// FormatTable outputs data in a formatted table.
	FormatTable Format = "table"
	// FormatJSON outputs data as indented JSON.
	FormatJSON Format = "json"
	// FormatYAML outputs data as YAML.
	FormatYAML Format = "yaml"
	// FormatCBOR outputs data as deterministic CBOR bytes.
	FormatCBOR Format = "cbor"
)

// ParseFormat parses a string into a Format, returning an error if invalid.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "table", "":
		return FormatTable, nil
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "cbor":
		return FormatCBOR, nil
	default:
		return "", fmt.Errorf("invalid output format: %q (valid: table, json, yaml, cbor)", s)
	}
}

// String returns the string representation of the format.
func (f Format) String() string {
	return string(f)
}

// IsBinary reports whether the format produces non-text output.
func (f Format) IsBinary() bool {
	return f == FormatCBOR
}
