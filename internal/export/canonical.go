package export

import (
	"bytes"
	"encoding/json"
	"fmt"

	"golang.org/x/text/unicode/norm"
)

// MarshalCanonical produces a deterministic serialization of the exported
// document for fingerprinting: object keys sorted, strings NFC normalized,
// no HTML escaping. Two structurally equal documents always serialize to
// identical bytes, regardless of struct field order or map iteration order.
//
// This is a content-hash serialization, not the wire form written for the
// runtime; use plain encoding/json for that.
func MarshalCanonical(v any) ([]byte, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("canonical marshal: %w", err)
	}

	// Round-trip through a generic tree so the encoder sorts object keys and
	// struct field order stops mattering. json.Number preserves numeric
	// literals exactly.
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var tree any
	if err := dec.Decode(&tree); err != nil {
		return nil, fmt.Errorf("canonical marshal: decode: %w", err)
	}

	tree = normalizeTree(tree)

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false) // <, > and & stay literal
	if err := enc.Encode(tree); err != nil {
		return nil, fmt.Errorf("canonical marshal: encode: %w", err)
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// normalizeTree NFC-normalizes every string (keys and values) in a decoded
// JSON tree. Unicode-equal names must fingerprint identically even when the
// editor received them in different normal forms.
func normalizeTree(v any) any {
	switch val := v.(type) {
	case string:
		return norm.NFC.String(val)
	case []any:
		for i, elem := range val {
			val[i] = normalizeTree(elem)
		}
		return val
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, elem := range val {
			out[norm.NFC.String(k)] = normalizeTree(elem)
		}
		return out
	default:
		return v
	}
}
