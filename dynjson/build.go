package dynjson

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
)

// From converts a native Go value into a Value. It handles nil, bool,
// string, json.Number, common numeric types, []any, map[string]any, and
// existing Values directly. Anything else round-trips through
// encoding/json, so structs, typed slices, and json.Marshaler
// implementations all work. It fails when the input cannot be
// represented as JSON, for example a channel, a func, or a NaN float.
func From(v any) (Value, error) {
	switch x := v.(type) {
	case nil:
		return Value{}, nil
	case Value:
		return x, nil
	case bool:
		return Value{kind: KindBool, b: x}, nil
	case string:
		return Value{kind: KindString, str: x}, nil
	case json.Number:
		return Value{kind: KindNumber, num: x}, nil
	case int:
		return intValue(int64(x)), nil
	case int32:
		return intValue(int64(x)), nil
	case int64:
		return intValue(x), nil
	case float32:
		return floatValue(float64(x))
	case float64:
		return floatValue(x)
	case []any:
		arr := make([]Value, len(x))
		for i, el := range x {
			ev, err := From(el)
			if err != nil {
				return Value{}, err
			}
			arr[i] = ev
		}
		return Value{kind: KindArray, arr: arr}, nil
	case map[string]any:
		obj := make(map[string]Value, len(x))
		for k, el := range x {
			ev, err := From(el)
			if err != nil {
				return Value{}, err
			}
			obj[k] = ev
		}
		return Value{kind: KindObject, obj: obj}, nil
	default:
		data, err := json.Marshal(v)
		if err != nil {
			return Value{}, fmt.Errorf("dynjson: value of type %T is not representable as JSON: %w", v, err)
		}
		var out Value
		if err := out.UnmarshalJSON(data); err != nil {
			return Value{}, err
		}
		return out, nil
	}
}

// MustFrom is From for values known to be representable, such as
// literals in tests and request builders. It panics on conversion
// failure.
func MustFrom(v any) Value {
	out, err := From(v)
	if err != nil {
		panic(err)
	}
	return out
}

// Object builds an object value from native Go members. It is shorthand
// for MustFrom(map[string]any{...}) at call sites that assemble request
// bodies inline.
func Object(members map[string]any) (Value, error) {
	return From(map[string]any(members))
}

// Arr builds an array value from native Go elements.
func Arr(elements ...any) (Value, error) {
	return From(elements)
}

func intValue(n int64) Value {
	return Value{kind: KindNumber, num: json.Number(strconv.FormatInt(n, 10))}
}

func floatValue(f float64) (Value, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return Value{}, fmt.Errorf("dynjson: float value %v is not representable as JSON", f)
	}
	return Value{kind: KindNumber, num: json.Number(strconv.FormatFloat(f, 'g', -1, 64))}, nil
}

// fromDecoded converts output of a json.Decoder run with UseNumber. The
// decoder only ever produces nil, bool, string, json.Number, []any, and
// map[string]any, so no error path exists here.
func fromDecoded(raw any) Value {
	switch x := raw.(type) {
	case nil:
		return Value{}
	case bool:
		return Value{kind: KindBool, b: x}
	case string:
		return Value{kind: KindString, str: x}
	case json.Number:
		return Value{kind: KindNumber, num: x}
	case []any:
		arr := make([]Value, len(x))
		for i, el := range x {
			arr[i] = fromDecoded(el)
		}
		return Value{kind: KindArray, arr: arr}
	case map[string]any:
		obj := make(map[string]Value, len(x))
		for k, el := range x {
			obj[k] = fromDecoded(el)
		}
		return Value{kind: KindObject, obj: obj}
	default:
		return Value{}
	}
}
