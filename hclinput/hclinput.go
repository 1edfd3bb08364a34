// Package hclinput turns HCL attributes and cty values into entity records, so
// configuration files can feed ByConstructor and ByStaticConstructor directly.
package hclinput

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/gocty"

	"github.com/danpasecinic/entity"
)

// Parse reads a body of flat HCL attributes. Expressions are evaluated with no
// variables or functions in scope.
func Parse(src []byte, filename string) (entity.Record, error) {
	file, diags := hclparse.NewParser().ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL %s: %w", filename, diags)
	}
	return fromBody(file.Body, filename)
}

// ParseFile is Parse for a file on disk.
func ParseFile(path string) (entity.Record, error) {
	file, diags := hclparse.NewParser().ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file %s: %w", path, diags)
	}
	return fromBody(file.Body, path)
}

func fromBody(body hcl.Body, filename string) (entity.Record, error) {
	attrs, diags := body.JustAttributes()
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to read attributes of %s: %w", filename, diags)
	}

	rec := make(entity.Record, len(attrs))
	for name, attr := range attrs {
		val, diags := attr.Expr.Value(nil)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to evaluate %s in %s: %w", name, filename, diags)
		}

		native, err := ToNative(val)
		if err != nil {
			return nil, fmt.Errorf("in attribute '%s': %w", name, err)
		}
		rec[name] = native
	}

	return rec, nil
}

// FromValue converts an object or map value into a record.
func FromValue(v cty.Value) (entity.Record, error) {
	if v.IsNull() || !v.IsKnown() {
		return entity.Record{}, nil
	}

	ty := v.Type()
	if !ty.IsObjectType() && !ty.IsMapType() {
		return nil, fmt.Errorf("expected an object or map, got %s", ty.FriendlyName())
	}

	native, err := ToNative(v)
	if err != nil {
		return nil, err
	}
	return entity.Record(native.(map[string]any)), nil
}

// ToNative converts a cty value to its natural Go counterpart. Whole numbers
// that fit become int, other numbers float64; null and unknown values become
// nil, which a record treats as absent.
func ToNative(v cty.Value) (any, error) {
	if v.IsNull() || !v.IsKnown() {
		return nil, nil
	}

	ty := v.Type()

	switch {
	case ty == cty.String:
		return v.AsString(), nil

	case ty == cty.Number:
		return numberToNative(v)

	case ty == cty.Bool:
		var b bool
		if err := gocty.FromCtyValue(v, &b); err != nil {
			return nil, fmt.Errorf("could not convert cty.Bool to bool: %w", err)
		}
		return b, nil

	case ty.IsListType() || ty.IsTupleType() || ty.IsSetType():
		slice := make([]any, 0, v.LengthInt())
		it := v.ElementIterator()
		for it.Next() {
			_, elem := it.Element()
			native, err := ToNative(elem)
			if err != nil {
				return nil, err
			}
			slice = append(slice, native)
		}
		return slice, nil

	case ty.IsObjectType() || ty.IsMapType():
		m := make(map[string]any)
		it := v.ElementIterator()
		for it.Next() {
			key, elem := it.Element()
			native, err := ToNative(elem)
			if err != nil {
				return nil, fmt.Errorf("in attribute '%s': %w", key.AsString(), err)
			}
			m[key.AsString()] = native
		}
		return m, nil

	default:
		return nil, fmt.Errorf("unsupported cty type: %s", ty.FriendlyName())
	}
}

func numberToNative(v cty.Value) (any, error) {
	if v.AsBigFloat().IsInt() {
		var i int
		if err := gocty.FromCtyValue(v, &i); err == nil {
			return i, nil
		}
	}

	var f float64
	if err := gocty.FromCtyValue(v, &f); err != nil {
		return nil, fmt.Errorf("could not convert cty.Number to float64: %w", err)
	}
	return f, nil
}
