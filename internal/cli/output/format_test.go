package output

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFormat(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Format
		wantErr bool
	}{
		{name: "table", input: "table", want: FormatTable},
		{name: "empty defaults to table", input: "", want: FormatTable},
		{name: "JSON uppercase", input: "JSON", want: FormatJSON},
		{name: "yml alias", input: "yml", want: FormatYAML},
		{name: "cbor", input: " cbor ", want: FormatCBOR},
		{name: "invalid format", input: "xml", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseFormat(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormatIsBinary(t *testing.T) {
	assert.True(t, FormatCBOR.IsBinary())
	assert.False(t, FormatTable.IsBinary())
	assert.False(t, FormatJSON.IsBinary())
}

type endView struct {
	Type     string `json:"type" yaml:"type" cbor:"type"`
	Sequence uint32 `json:"sequence_index" yaml:"sequence_index" cbor:"sequence_index"`
}

func (v endView) Headers() []string { return []string{"Field", "Value"} }

func (v endView) Rows() [][]string {
	return [][]string{{"type", v.Type}}
}

func TestPrinterPrint(t *testing.T) {
	view := endView{Type: "END", Sequence: 42}

	t.Run("TableUsesRenderer", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, NewPrinter(&buf, FormatTable, false).Print(view))
		assert.Contains(t, buf.String(), "FIELD")
		assert.Contains(t, buf.String(), "END")
	})

	t.Run("TableFallsBackToJSON", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, NewPrinter(&buf, FormatTable, false).Print(map[string]int{"n": 1}))
		assert.Contains(t, buf.String(), `"n": 1`)
	})

	t.Run("JSON", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, NewPrinter(&buf, FormatJSON, false).Print(view))
		assert.Contains(t, buf.String(), `"sequence_index": 42`)
	})

	t.Run("YAML", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, NewPrinter(&buf, FormatYAML, false).Print(view))
		assert.Contains(t, buf.String(), "sequence_index: 42")
	})

	t.Run("UnknownFormat", func(t *testing.T) {
		var buf bytes.Buffer
		assert.Error(t, NewPrinter(&buf, Format("xml"), false).Print(view))
	})
}

func TestPrinterSuccess(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf, FormatTable, false).Success("written")
	assert.Equal(t, "written\n", buf.String())

	buf.Reset()
	NewPrinter(&buf, FormatTable, true).Success("written")
	assert.Equal(t, "\033[32mwritten\033[0m\n", buf.String())
}
