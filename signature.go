package entity

import (
	"reflect"

	ireflect "github.com/danpasecinic/entity/internal/reflect"
)

const (
	callableConstructor = "constructor"
	callableStruct      = "struct"
)

// parameter is one formal parameter of a callable. index is the field path
// when the callable is a struct literal.
type parameter struct {
	name     string
	typ      reflect.Type
	optional bool
	index    []int
}

type callable struct {
	target string
	name   string
	params []parameter

	fn         *ireflect.Func
	structType reflect.Type
}

func (c *callable) invoke(args []reflect.Value) (reflect.Value, error) {
	if c.fn != nil {
		return c.fn.Call(args)
	}

	t := c.structType
	isPtr := t.Kind() == reflect.Ptr
	if isPtr {
		t = t.Elem()
	}

	ptr := reflect.New(t)
	for i, p := range c.params {
		ptr.Elem().FieldByIndex(p.index).Set(args[i])
	}

	if isPtr {
		return ptr, nil
	}
	return ptr.Elem(), nil
}

func factoryKey(target, name string) string {
	return target + "#" + name
}
