package dynjson

import (
	"encoding/json"
	"iter"
	"math"
)

// Kind identifies the JSON shape a Value holds.
type Kind uint8

const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindArray
	KindObject
)

// String returns the lowercase JSON name of the kind.
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	default:
		return "invalid"
	}
}

// Value is a single node of a JSON document tree. The zero Value is JSON
// null. Values are immutable: navigation and extraction never modify the
// tree, and accessors return copies where aliasing could leak internals.
type Value struct {
	kind Kind
	b    bool
	num  json.Number
	str  string
	arr  []Value
	obj  map[string]Value
}

// Null returns the JSON null value. Equivalent to the zero Value.
func Null() Value { return Value{} }

// Kind reports which JSON shape the value holds.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether the value is JSON null. Missing fields and
// out-of-range indexes also read as null.
func (v Value) IsNull() bool { return v.kind == KindNull }

// Field returns the named member of an object value. It returns the null
// Value when the value is not an object or the key is absent, so lookups
// can be chained safely across any document shape.
func (v Value) Field(key string) Value {
	if v.kind != KindObject {
		return Value{}
	}
	return v.obj[key]
}

// Index returns the i'th element of an array value. It returns the null
// Value when the value is not an array or i is out of range.
func (v Value) Index(i int) Value {
	if v.kind != KindArray || i < 0 || i >= len(v.arr) {
		return Value{}
	}
	return v.arr[i]
}

// Str returns the string payload. ok is false for any other kind.
func (v Value) Str() (string, bool) {
	if v.kind != KindString {
		return "", false
	}
	return v.str, true
}

// Bool returns the boolean payload. ok is false for any other kind.
func (v Value) Bool() (bool, bool) {
	if v.kind != KindBool {
		return false, false
	}
	return v.b, true
}

// Num returns the number payload with its original source text intact.
// ok is false for any other kind.
func (v Value) Num() (json.Number, bool) {
	if v.kind != KindNumber {
		return "", false
	}
	return v.num, true
}

// Float64 returns the number as a float64. ok is false when the value is
// not a number or the literal does not fit a float64.
func (v Value) Float64() (float64, bool) {
	if v.kind != KindNumber {
		return 0, false
	}
	f, err := v.num.Float64()
	if err != nil {
		return 0, false
	}
	return f, true
}

// Int64 returns the number as an int64. Integer literals convert exactly;
// fractional literals truncate toward zero, so 4.9 yields 4 and -4.9
// yields -4. ok is false when the value is not a number or the magnitude
// exceeds the int64 range.
func (v Value) Int64() (int64, bool) {
	if v.kind != KindNumber {
		return 0, false
	}
	if n, err := v.num.Int64(); err == nil {
		return n, true
	}
	f, err := v.num.Float64()
	if err != nil {
		return 0, false
	}
	t := math.Trunc(f)
	if t < math.MinInt64 || t >= math.MaxInt64 {
		return 0, false
	}
	return int64(t), true
}

// Array returns a copy of the elements of an array value. ok is false for
// any other kind.
func (v Value) Array() ([]Value, bool) {
	if v.kind != KindArray {
		return nil, false
	}
	out := make([]Value, len(v.arr))
	copy(out, v.arr)
	return out, true
}

// Values iterates over the elements of an array value in document order.
// The sequence is empty for any other kind.
func (v Value) Values() iter.Seq[Value] {
	return func(yield func(Value) bool) {
		if v.kind != KindArray {
			return
		}
		for _, el := range v.arr {
			if !yield(el) {
				return
			}
		}
	}
}

// Fields iterates over the members of an object value. Member order is
// unspecified. The sequence is empty for any other kind.
func (v Value) Fields() iter.Seq2[string, Value] {
	return func(yield func(string, Value) bool) {
		if v.kind != KindObject {
			return
		}
		for k, el := range v.obj {
			if !yield(k, el) {
				return
			}
		}
	}
}

// Len returns the element count for arrays, the member count for objects,
// and 0 for every other kind.
func (v Value) Len() int {
	switch v.kind {
	case KindArray:
		return len(v.arr)
	case KindObject:
		return len(v.obj)
	default:
		return 0
	}
}

// Equal reports deep structural equality. Numbers compare by numeric
// value when both literals parse, so 1.0 and 1 are equal; otherwise the
// source literals must match.
func (v Value) Equal(other Value) bool {
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case KindNull:
		return true
	case KindBool:
		return v.b == other.b
	case KindString:
		return v.str == other.str
	case KindNumber:
		if v.num == other.num {
			return true
		}
		a, errA := v.num.Float64()
		b, errB := other.num.Float64()
		return errA == nil && errB == nil && a == b
	case KindArray:
		if len(v.arr) != len(other.arr) {
			return false
		}
		for i := range v.arr {
			if !v.arr[i].Equal(other.arr[i]) {
				return false
			}
		}
		return true
	case KindObject:
		if len(v.obj) != len(other.obj) {
			return false
		}
		for k, el := range v.obj {
			o, ok := other.obj[k]
			if !ok || !el.Equal(o) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// String renders the value as compact JSON for logging and debugging.
// Use Str to extract a string payload.
func (v Value) String() string {
	data, err := v.Encode()
	if err != nil {
		return "<invalid:" + err.Error() + ">"
	}
	return string(data)
}
