package entity

import "reflect"

// Optional marks a parameter that may be absent from the input without the
// value type itself being nullable. Absent keys resolve to None.
type Optional[T any] struct {
	value   T
	present bool
}

func (o Optional[T]) Get() (T, bool) {
	return o.value, o.present
}

func (o Optional[T]) Value() T {
	return o.value
}

func (o Optional[T]) Present() bool {
	return o.present
}

func (o Optional[T]) OrElse(defaultValue T) T {
	if o.present {
		return o.value
	}
	return defaultValue
}

func (o Optional[T]) OrElseFunc(fn func() T) T {
	if o.present {
		return o.value
	}
	return fn()
}

func Some[T any](value T) Optional[T] {
	return Optional[T]{value: value, present: true}
}

func None[T any]() Optional[T] {
	return Optional[T]{}
}

type optionalSlot interface {
	valueType() reflect.Type
	fill(v reflect.Value)
}

func (o *Optional[T]) valueType() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}

func (o *Optional[T]) fill(v reflect.Value) {
	reflect.ValueOf(&o.value).Elem().Set(v)
	o.present = true
}

var optionalSlotType = reflect.TypeOf((*optionalSlot)(nil)).Elem()

func isOptionalType(t reflect.Type) bool {
	return t.Kind() == reflect.Struct && reflect.PointerTo(t).Implements(optionalSlotType)
}

func optionalElem(t reflect.Type) reflect.Type {
	return reflect.New(t).Interface().(optionalSlot).valueType()
}
