// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

package value

import (
	"fmt"
	"math"
	"reflect"
	"slices"
	"strconv"

	json "github.com/goccy/go-json"
)

// FromAny converts a Go value into a Value. The input may be nil, a bool, a
// string, a json.Number, any built-in integer or floating-point type, a
// []any, a map[string]any, or a Value, and slices and maps may nest any of
// these. Map members are ordered by name, for determinism.
//
// FromAny reports an error for a non-finite float or an unsupported type.
func FromAny(v any) (Value, error) {
	switch t := v.(type) {
	case nil:
		return Null{}, nil
	case Value:
		return t, nil
	case bool:
		return Bool(t), nil
	case string:
		return String(t), nil
	case json.Number:
		return Number(t), nil
	case int:
		return Int(int64(t)), nil
	case int8:
		return Int(int64(t)), nil
	case int16:
		return Int(int64(t)), nil
	case int32:
		return Int(int64(t)), nil
	case int64:
		return Int(t), nil
	case uint:
		return Number(strconv.FormatUint(uint64(t), 10)), nil
	case uint8:
		return Int(int64(t)), nil
	case uint16:
		return Int(int64(t)), nil
	case uint32:
		return Int(int64(t)), nil
	case uint64:
		return Number(strconv.FormatUint(t, 10)), nil
	case float32:
		return fromFloat(float64(t))
	case float64:
		return fromFloat(t)
	case []any:
		arr := make(Array, len(t))
		for i, elt := range t {
			ev, err := FromAny(elt)
			if err != nil {
				return nil, fmt.Errorf("index %d: %w", i, err)
			}
			arr[i] = ev
		}
		return arr, nil
	case map[string]any:
		keys := make([]string, 0, len(t))
		for key := range t {
			keys = append(keys, key)
		}
		slices.Sort(keys)
		obj := make(Object, len(keys))
		for i, key := range keys {
			mv, err := FromAny(t[key])
			if err != nil {
				return nil, fmt.Errorf("member %q: %w", key, err)
			}
			obj[i] = Member{Name: key, Value: mv}
		}
		return obj, nil
	default:
		return nil, fmt.Errorf("unsupported type %v", reflect.TypeOf(v))
	}
}

func fromFloat(f float64) (Value, error) {
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return nil, fmt.Errorf("non-finite number %v", f)
	}
	return Float(f), nil
}

// ToValue converts v into a Value as [FromAny] does, but panics if the
// conversion fails. It is intended for constructing literals.
func ToValue(v any) Value {
	out, err := FromAny(v)
	if err != nil {
		panic(fmt.Sprintf("ToValue: %v", err))
	}
	return out
}

// ToAny converts v into plain Go values: nil, bool, string, json.Number,
// []any, and map[string]any. Numbers keep their literal text. If an object
// has members with duplicate names, the last one wins.
func ToAny(v Value) any {
	switch t := v.(type) {
	case nil, Null:
		return nil
	case Bool:
		return bool(t)
	case String:
		return string(t)
	case Number:
		return json.Number(t)
	case Array:
		out := make([]any, len(t))
		for i, elt := range t {
			out[i] = ToAny(elt)
		}
		return out
	case Object:
		out := make(map[string]any, len(t))
		for _, m := range t {
			out[m.Name] = ToAny(m.Value)
		}
		return out
	default:
		panic(fmt.Sprintf("unknown value type %T", v))
	}
}

// Unmarshal decodes the JSON encoding of v into the Go value pointed to by
// out, using the same rules as encoding/json.
func Unmarshal(v Value, out any) error {
	return json.Unmarshal(AppendJSON(nil, v), out)
}

// Marshal encodes the Go value in as JSON and parses the result as a Value.
// Numeric literals produced by the encoder are preserved.
func Marshal(in any) (Value, error) {
	data, err := json.Marshal(in)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}
