// Package model provides data models for the RabbitMQ collector.
package model

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
)

// Object is a decoded JSON object from the management API.
type Object map[string]any

// AsObject returns v as an Object if it is a JSON object.
func AsObject(v any) (Object, bool) {
	switch o := v.(type) {
	case map[string]any:
		return Object(o), true
	case Object:
		return o, true
	default:
		return nil, false
	}
}

// AsList returns v as a slice if it is a JSON array.
func AsList(v any) ([]any, bool) {
	l, ok := v.([]any)
	return l, ok
}

// Name returns the "name" attribute and whether it is a string.
func (o Object) Name() (string, bool) {
	name, ok := o["name"].(string)
	return name, ok
}

// Number returns the numeric value stored under key.
// It fails with ErrMissingField or ErrNotNumeric.
func (o Object) Number(key string) (float64, error) {
	raw, ok := o[key]
	if !ok {
		return 0, fmt.Errorf("%q: %w", key, ErrMissingField)
	}
	v, ok := ToFloat(raw)
	if !ok {
		return 0, fmt.Errorf("%q: %w (got %T)", key, ErrNotNumeric, raw)
	}
	return v, nil
}

// Child returns the object stored under key, if any.
func (o Object) Child(key string) (Object, bool) {
	return AsObject(o[key])
}

// ToFloat coerces a decoded JSON number into a float64.
// Booleans, strings, nulls and non-finite values are rejected.
func ToFloat(v any) (float64, bool) {
	var f float64
	switch n := v.(type) {
	case json.Number:
		parsed, err := strconv.ParseFloat(n.String(), 64)
		if err != nil {
			return 0, false
		}
		f = parsed
	case float64:
		f = n
	case float32:
		f = float64(n)
	case int:
		f = float64(n)
	case int64:
		f = float64(n)
	case int32:
		f = float64(n)
	case uint64:
		f = float64(n)
	default:
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}
