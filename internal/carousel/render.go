package carousel

import (
	"bytes"
	"encoding/json"
)

// DownloadName is the file name documents are offered under.
const DownloadName = "template.json"

// Render encodes a document for display: two-space indentation, no HTML
// escaping, and a typed backslash-n collapsed into a newline escape.
func Render(v interface{}) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	out := bytes.TrimRight(buf.Bytes(), "\n")
	return bytes.ReplaceAll(out, []byte(`\\n`), []byte(`\n`)), nil
}

// MarshalUnescaped is json.Marshal without HTML escaping. Custom marshalers
// use it since the outer encoder copies their bytes without undoing escapes.
func MarshalUnescaped(v interface{}) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
