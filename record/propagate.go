package record

import (
	"errors"
	"fmt"
	"reflect"
	"sort"

	"struct-factory/utils"
)

// ErrInvalidPropagationInput is returned when PropagateArray or
// PropagateObject receive data of the wrong shape.
var ErrInvalidPropagationInput = errors.New("invalid propagation input")

var pairType = reflect.TypeFor[Pair]()

// PropagateArray sets fields from a list of [key, value] pairs.
//
// data may be a []Pair, a [][2]any, or any slice or array whose elements are
// two-element slices or arrays with a string key, e.g. []any{[]any{"c", 3}}.
// Keys of named string types are accepted in every shape.
// The whole input is checked before the record is modified: on error no field
// is written. Existing fields keep their position; new fields are appended.
func (r *Record) PropagateArray(data any) error {
	pairs, err := pairsFromArray(data)
	if err != nil {
		return err
	}

	r.apply(pairs)

	return nil
}

// PropagateObject sets fields from the entries of an object.
//
// data may be a map with string keys (applied in sorted key order), a Record
// (applied in insertion order), or a struct (exported fields in declaration
// order). Pointers are followed. nil is rejected. As with PropagateArray, the
// record is only modified when all entries are valid.
func (r *Record) PropagateObject(data any) error {
	pairs, err := pairsFromObject(data)
	if err != nil {
		return err
	}

	r.apply(pairs)

	return nil
}

func (r *Record) apply(pairs []Pair) {
	r.init()

	for _, p := range pairs {
		r.fields.Set(p.Key, p.Value)
	}
}

func pairsFromArray(data any) ([]Pair, error) {
	switch d := data.(type) {
	case []Pair:
		return checkPairs(append([]Pair(nil), d...))
	case [][2]any:
		pairs := make([]Pair, 0, len(d))
		for i, item := range d {
			if key, ok := item[0].(string); ok {
				pairs = append(pairs, Pair{Key: key, Value: item[1]})
				continue
			}

			p, ok := pairFromValue(reflect.ValueOf(item))
			if !ok {
				return nil, notKeyValue(i)
			}

			pairs = append(pairs, p)
		}

		return checkPairs(pairs)
	case []any:
		pairs := make([]Pair, 0, len(d))
		for i, item := range d {
			p, ok := pairFromItem(item)
			if !ok {
				return nil, notKeyValue(i)
			}

			pairs = append(pairs, p)
		}

		return checkPairs(pairs)
	}

	v := reflect.ValueOf(data)
	if !v.IsValid() || (v.Kind() != reflect.Slice && v.Kind() != reflect.Array) {
		return nil, fmt.Errorf("%w: must be an array, got %T", ErrInvalidPropagationInput, data)
	}

	pairs := make([]Pair, 0, v.Len())

	for i := range v.Len() {
		p, ok := pairFromValue(v.Index(i))
		if !ok {
			return nil, notKeyValue(i)
		}

		pairs = append(pairs, p)
	}

	return checkPairs(pairs)
}

func pairFromItem(item any) (Pair, bool) {
	switch it := item.(type) {
	case Pair:
		return it, true
	case []any:
		if len(it) != 2 {
			return Pair{}, false
		}

		k, value := utils.Unpack2(it)

		if key, ok := k.(string); ok {
			return Pair{Key: key, Value: value}, true
		}

		return pairFromValue(reflect.ValueOf(it))
	default:
		return pairFromValue(reflect.ValueOf(item))
	}
}

// pairFromValue accepts a Pair or a two-element slice or array whose first
// element is a string.
func pairFromValue(v reflect.Value) (Pair, bool) {
	v, ok := indirect(v)
	if !ok {
		return Pair{}, false
	}

	if v.Type() == pairType {
		return v.Interface().(Pair), true
	}

	if v.Kind() != reflect.Slice && v.Kind() != reflect.Array {
		return Pair{}, false
	}

	if v.Len() != 2 {
		return Pair{}, false
	}

	k, ok := indirect(v.Index(0))
	if !ok || k.Kind() != reflect.String {
		return Pair{}, false
	}

	return Pair{Key: k.String(), Value: v.Index(1).Interface()}, true
}

func pairsFromObject(data any) ([]Pair, error) {
	switch d := data.(type) {
	case *Record:
		if d == nil {
			return nil, notObject(data)
		}

		return d.ToArray(), nil
	case Record:
		return d.ToArray(), nil
	case map[string]any:
		if d == nil {
			return nil, notObject(data)
		}

		keys := make([]string, 0, len(d))
		for k := range d {
			keys = append(keys, k)
		}

		sort.Strings(keys)

		pairs := make([]Pair, 0, len(keys))
		for _, k := range keys {
			pairs = append(pairs, Pair{Key: k, Value: d[k]})
		}

		return checkPairs(pairs)
	}

	v, ok := indirect(reflect.ValueOf(data))
	if !ok {
		return nil, notObject(data)
	}

	switch v.Kind() {
	case reflect.Map:
		if v.Type().Key().Kind() != reflect.String || v.IsNil() {
			return nil, notObject(data)
		}

		keys := v.MapKeys()
		sort.Slice(keys, func(i, j int) bool { return keys[i].String() < keys[j].String() })

		pairs := make([]Pair, 0, len(keys))
		for _, k := range keys {
			pairs = append(pairs, Pair{Key: k.String(), Value: v.MapIndex(k).Interface()})
		}

		return checkPairs(pairs)
	case reflect.Struct:
		t := v.Type()

		pairs := make([]Pair, 0, t.NumField())
		for i := range t.NumField() {
			f := t.Field(i)
			if !f.IsExported() {
				continue
			}

			pairs = append(pairs, Pair{Key: f.Name, Value: v.Field(i).Interface()})
		}

		return checkPairs(pairs)
	default:
		return nil, notObject(data)
	}
}

// checkPairs rejects empty and reserved keys.
func checkPairs(pairs []Pair) ([]Pair, error) {
	for _, p := range pairs {
		if err := ValidateName(p.Key); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidPropagationInput, err)
		}
	}

	return pairs, nil
}

// indirect follows interfaces and pointers. It reports false for nil.
func indirect(v reflect.Value) (reflect.Value, bool) {
	for v.IsValid() && (v.Kind() == reflect.Interface || v.Kind() == reflect.Pointer) {
		if v.IsNil() {
			return reflect.Value{}, false
		}

		v = v.Elem()
	}

	return v, v.IsValid()
}

func notKeyValue(index int) error {
	return fmt.Errorf("%w: expected key-value array at index %d", ErrInvalidPropagationInput, index)
}

func notObject(data any) error {
	return fmt.Errorf("%w: must be a valid object, got %T", ErrInvalidPropagationInput, data)
}
