package dynjson

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

var (
	// ErrInvalidJSON indicates the input is not a syntactically valid
	// JSON document, or carries trailing data after the first document.
	ErrInvalidJSON = errors.New("dynjson: invalid JSON document")

	// ErrScalarRoot indicates a syntactically valid document whose root
	// is a bare scalar or null rather than an object or array.
	ErrScalarRoot = errors.New("dynjson: document root is not an object or array")
)

// Parse decodes a complete JSON document. The root must be an object or
// an array; bare scalars at the root fail with ErrScalarRoot, and
// malformed input or trailing data fails with ErrInvalidJSON. Number
// literals are kept as source text, so integers beyond float64 precision
// survive intact.
func Parse(data []byte) (Value, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var raw any
	if err := dec.Decode(&raw); err != nil {
		return Value{}, fmt.Errorf("%w: %w", ErrInvalidJSON, err)
	}

	// A second decode must hit EOF; anything else means the payload
	// carries more than one document or stray bytes after the root.
	var rest any
	if err := dec.Decode(&rest); err != io.EOF {
		return Value{}, fmt.Errorf("%w: trailing data after document", ErrInvalidJSON)
	}

	v := fromDecoded(raw)
	switch v.kind {
	case KindObject, KindArray:
		return v, nil
	default:
		return Value{}, ErrScalarRoot
	}
}

// Encode renders the value as compact JSON. Object members are emitted
// in sorted key order, so equal trees encode to equal bytes. Encoding
// fails only when the tree holds an unparseable number literal, which
// cannot happen for values built by Parse or From.
func (v Value) Encode() ([]byte, error) {
	return json.Marshal(v)
}

// MarshalJSON implements json.Marshaler, letting a Value embed directly
// in other encodable structures.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindNull:
		return []byte("null"), nil
	case KindBool:
		if v.b {
			return []byte("true"), nil
		}
		return []byte("false"), nil
	case KindNumber:
		return json.Marshal(v.num)
	case KindString:
		return json.Marshal(v.str)
	case KindArray:
		if v.arr == nil {
			return []byte("[]"), nil
		}
		return json.Marshal(v.arr)
	case KindObject:
		if v.obj == nil {
			return []byte("{}"), nil
		}
		return json.Marshal(v.obj)
	default:
		return nil, fmt.Errorf("dynjson: cannot encode kind %d", v.kind)
	}
}

// UnmarshalJSON implements json.Unmarshaler. Unlike Parse it accepts any
// root kind, since a Value used as a struct field may legitimately hold
// a scalar.
func (v *Value) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var raw any
	if err := dec.Decode(&raw); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidJSON, err)
	}
	*v = fromDecoded(raw)
	return nil
}
