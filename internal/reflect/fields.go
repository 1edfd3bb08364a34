package reflect

import (
	"fmt"
	"reflect"
)

type Field struct {
	Name     string
	GoName   string
	Index    []int
	Type     reflect.Type
	Optional bool
	// Indirect fields are promoted through an embedded pointer, which may be
	// nil on a fresh value.
	Indirect bool
}

// StructFields lists the exported fields of a struct type in declaration order,
// promoted fields of embedded structs and struct pointers included. Field names
// come from the tagKey tag, or from naming(GoName) when the tag carries no name.
func StructFields(t reflect.Type, tagKey string, naming func(string) string) ([]Field, error) {
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	if t.Kind() != reflect.Struct {
		return nil, fmt.Errorf("%s is not a struct type", t)
	}

	var fields []Field
	for _, sf := range reflect.VisibleFields(t) {
		if !sf.IsExported() {
			continue
		}

		raw, hasTag := sf.Tag.Lookup(tagKey)
		if sf.Anonymous && !hasTag && embedsStruct(sf.Type) {
			continue
		}

		tag := ParseTag(raw)
		if tag.Skip {
			continue
		}

		name := tag.Name
		if name == "" {
			name = naming(sf.Name)
		}

		fields = append(
			fields, Field{
				Name:     name,
				GoName:   sf.Name,
				Index:    sf.Index,
				Type:     sf.Type,
				Optional: tag.Optional || IsNullable(sf.Type),
				Indirect: throughPointer(t, sf.Index),
			},
		)
	}

	return fields, nil
}

func embedsStruct(t reflect.Type) bool {
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t.Kind() == reflect.Struct
}

// throughPointer reports whether a promoted field is reached through an
// embedded pointer, which may be nil on a fresh value.
func throughPointer(t reflect.Type, index []int) bool {
	for _, i := range index[:len(index)-1] {
		t = t.Field(i).Type
		if t.Kind() == reflect.Ptr {
			return true
		}
	}
	return false
}
