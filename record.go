package entity

import (
	"errors"
	"net/url"
	"reflect"
	"sort"

	"github.com/agext/levenshtein"

	ireflect "github.com/danpasecinic/entity/internal/reflect"
)

// maxSuggestionDistance bounds how far a record key may be from a missing key
// and still be offered as a suggestion.
const maxSuggestionDistance = 3

// Record is the canonical form of every input: a flat map from key to raw
// value. A key holding nil counts as absent.
type Record map[string]any

// Lookup returns the value under key, treating nil values as absent.
func (r Record) Lookup(key string) (any, bool) {
	v, ok := r[key]
	if !ok || ireflect.IsNil(v) {
		return nil, false
	}
	return v, true
}

func (r Record) Keys() []string {
	keys := make([]string, 0, len(r))
	for k := range r {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// closest returns the key nearest to missing by edit distance, or "" when no
// key is close enough.
func (r Record) closest(missing string) string {
	best := ""
	bestDistance := maxSuggestionDistance + 1

	for _, k := range r.Keys() {
		d := levenshtein.Distance(missing, k, nil)
		if d > 0 && d < bestDistance {
			best, bestDistance = k, d
		}
	}

	return best
}

// Normalize converts a build input into a Record. It accepts nil, a Record or
// any map keyed by strings, url.Values, and structs or pointers to structs.
// Struct fields are keyed the same way struct construction parameters are
// named, fields promoted through non-nil embedded pointers included; nil
// pointer fields are left out.
func (b *Builder) Normalize(input any) (Record, error) {
	switch v := input.(type) {
	case nil:
		return Record{}, nil
	case Record:
		return v, nil
	case map[string]any:
		return v, nil
	case url.Values:
		return formRecord(v), nil
	}

	rv := reflect.ValueOf(input)
	switch rv.Kind() {
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return nil, errInvalidInput(rv.Type().String(), nil)
		}
		rec := make(Record, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			rec[iter.Key().String()] = iter.Value().Interface()
		}
		return rec, nil

	case reflect.Ptr:
		if rv.IsNil() {
			return Record{}, nil
		}
		if rv.Elem().Kind() == reflect.Struct {
			return b.structRecord(rv.Elem())
		}
		return b.Normalize(rv.Elem().Interface())

	case reflect.Struct:
		return b.structRecord(rv)

	default:
		return nil, errInvalidInput(rv.Type().String(), nil)
	}
}

func (b *Builder) structRecord(rv reflect.Value) (Record, error) {
	fields, err := b.inputFields(rv.Type())
	if err != nil {
		return nil, err
	}

	rec := make(Record, len(fields))
	for _, f := range fields {
		fv, err := rv.FieldByIndexErr(f.Index)
		if err != nil {
			continue
		}
		if ireflect.IsNullable(fv.Type()) && fv.IsNil() {
			continue
		}
		rec[f.Name] = fv.Interface()
	}
	return rec, nil
}

// inputFields returns the readable fields of struct type t. Unlike a struct
// plan it keeps fields promoted through embedded pointers.
func (b *Builder) inputFields(t reflect.Type) ([]ireflect.Field, error) {
	if cached, ok := b.inputPlans.Load(t); ok {
		return cached.([]ireflect.Field), nil
	}

	fields, err := ireflect.StructFields(t, b.config.tagKey, b.config.keyNaming)
	if err != nil {
		return nil, errInvalidInput(t.String(), err)
	}
	if len(fields) == 0 && t.NumField() > 0 {
		return nil, errInvalidInput(t.String(), errors.New("struct has no exported fields"))
	}

	actual, _ := b.inputPlans.LoadOrStore(t, fields)
	return actual.([]ireflect.Field), nil
}

// formRecord flattens form values: a single value becomes a string, several
// stay a []string.
func formRecord(values url.Values) Record {
	rec := make(Record, len(values))
	for k, vs := range values {
		switch len(vs) {
		case 0:
		case 1:
			rec[k] = vs[0]
		default:
			rec[k] = vs
		}
	}
	return rec
}
