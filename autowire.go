package entity

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"time"

	ireflect "github.com/danpasecinic/entity/internal/reflect"
)

// ByConstructor builds a T from input through T's primary constructor: the
// constructor registered with RegisterConstructor, or else a struct literal
// over T's exported fields.
func ByConstructor[T any](b *Builder, input any, opts ...BuildOption) (result T, err error) {
	name := callableConstructor
	start := time.Now()
	defer func() {
		b.callBuildHooks(ireflect.TypeKey[T](), name, time.Since(start), err)
	}()

	c, err := b.constructorFor(ireflect.TypeOf[T]())
	if err != nil {
		return result, err
	}
	name = c.name
	return build[T](b, c, input, opts)
}

// ByStaticConstructor builds a T from input through the factory registered
// for T under name.
func ByStaticConstructor[T any](b *Builder, name string, input any, opts ...BuildOption) (result T, err error) {
	key := ireflect.TypeKey[T]()
	start := time.Now()
	defer func() {
		b.callBuildHooks(key, name, time.Since(start), err)
	}()

	c, ok := b.factories.Get(factoryKey(key, name))
	if !ok {
		return result, errFactoryNotFound(key, name)
	}
	return build[T](b, c, input, opts)
}

func MustByConstructor[T any](b *Builder, input any, opts ...BuildOption) T {
	v, err := ByConstructor[T](b, input, opts...)
	if err != nil {
		panic(err)
	}
	return v
}

func MustByStaticConstructor[T any](b *Builder, name string, input any, opts ...BuildOption) T {
	v, err := ByStaticConstructor[T](b, name, input, opts...)
	if err != nil {
		panic(err)
	}
	return v
}

func build[T any](b *Builder, c *callable, input any, opts []BuildOption) (result T, err error) {
	cfg := &buildConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	rec, err := b.Normalize(input)
	if err != nil {
		return result, err
	}

	b.logger.Debug("building entity", "target", c.target, "callable", c.name, "prefix", cfg.prefix)

	args, err := b.resolveArgs(c, rec, cfg.prefix)
	if err != nil {
		return result, err
	}

	out, err := c.invoke(args)
	if err != nil {
		return result, err
	}

	reflect.ValueOf(&result).Elem().Set(out)
	return result, nil
}

// resolveArgs resolves one argument per parameter of c, in order. Absent
// optional parameters become the zero value of their type.
func (b *Builder) resolveArgs(c *callable, rec Record, prefix string) ([]reflect.Value, error) {
	args := make([]reflect.Value, len(c.params))

	for i := range c.params {
		p := &c.params[i]
		key := b.key(prefix, p.name)

		raw, ok := rec.Lookup(key)
		if !ok {
			if !p.optional {
				return nil, errMissingParameter(c.target, p.name, key, rec.closest(key))
			}
			b.logger.Debug("optional parameter absent", "target", c.target, "parameter", p.name, "key", key)
			args[i] = reflect.Zero(p.typ)
			continue
		}

		v, err := b.resolveValue(c.target, p.typ, reflect.ValueOf(raw))
		if err != nil {
			var e *Error
			if errors.As(err, &e) && e.Code == ErrCodeTypeMismatch && e.Parameter == "" {
				e.withParameter(p.name, key)
			}
			return nil, err
		}
		args[i] = v
	}

	return args, nil
}

// resolveValue turns one present raw value into a value assignable to t.
func (b *Builder) resolveValue(target string, t reflect.Type, raw reflect.Value) (reflect.Value, error) {
	if isOptionalType(t) {
		slot := reflect.New(t)
		opt := slot.Interface().(optionalSlot)
		v, err := b.resolveValue(target, opt.valueType(), raw)
		if err != nil {
			return reflect.Value{}, err
		}
		opt.fill(v)
		return slot.Elem(), nil
	}

	if v, ok := passthrough(raw, t); ok {
		return v, nil
	}

	if b.isValueObject(t) {
		return b.coerce(target, t, raw)
	}

	if v, ok := b.convert(raw, t); ok {
		return v, nil
	}

	return reflect.Value{}, errTypeMismatch(target, "", "", raw.Type().String(), t.String())
}

// coerce builds value object t from raw through its registered factory or its
// ValueObject implementation. A pointer t receives the address of a fresh value.
func (b *Builder) coerce(target string, t reflect.Type, raw reflect.Value) (v reflect.Value, err error) {
	if v, ok := passthrough(raw, t); ok {
		return v, nil
	}

	key := ireflect.KeyOf(t)
	entry, registered := b.valueObjects.Get(key)

	if !registered && t.Kind() == reflect.Ptr {
		elem, err := b.coerce(target, t.Elem(), raw)
		if err != nil {
			return reflect.Value{}, err
		}
		ptr := reflect.New(t.Elem())
		ptr.Elem().Set(elem)
		return ptr, nil
	}

	start := time.Now()
	defer func() {
		b.callCoerceHooks(key, time.Since(start), err)
	}()

	if registered {
		arg, err := b.factoryArg(target, entry, raw)
		if err != nil {
			return reflect.Value{}, err
		}

		out, err := entry.fn.Call([]reflect.Value{arg})
		if err != nil {
			return reflect.Value{}, errCoercionFailed(target, key, err)
		}
		b.logger.Debug("coerced value object", "type", key, "via", "factory")
		return out, nil
	}

	ptr := reflect.New(t)
	if err := ptr.Interface().(ValueObject).FromPrimitive(raw.Interface()); err != nil {
		return reflect.Value{}, errCoercionFailed(target, key, err)
	}
	b.logger.Debug("coerced value object", "type", key, "via", "FromPrimitive")
	return ptr.Elem(), nil
}

func (b *Builder) factoryArg(target string, entry *valueObjectEntry, raw reflect.Value) (reflect.Value, error) {
	if v, ok := passthrough(raw, entry.arg); ok {
		return v, nil
	}

	if b.isValueObject(entry.arg) {
		return b.coerce(target, entry.arg, raw)
	}

	if v, ok := b.convert(raw, entry.arg); ok {
		return v, nil
	}

	return reflect.Value{}, errCoercionFailed(
		target, ireflect.KeyOf(entry.typ),
		fmt.Errorf("primitive of type %s does not fit factory argument %s", raw.Type(), entry.arg),
	)
}

// passthrough returns raw unchanged when it already fits t. A non-nil pointer
// whose element fits is dereferenced, and a value fitting the element of
// pointer t gets boxed.
func passthrough(raw reflect.Value, t reflect.Type) (reflect.Value, bool) {
	rt := raw.Type()

	if rt.AssignableTo(t) {
		return raw, true
	}

	if rt.Kind() == reflect.Ptr && !raw.IsNil() && rt.Elem().AssignableTo(t) {
		return raw.Elem(), true
	}

	if t.Kind() == reflect.Ptr && rt.AssignableTo(t.Elem()) {
		ptr := reflect.New(t.Elem())
		ptr.Elem().Set(raw)
		return ptr, true
	}

	return reflect.Value{}, false
}

// convert applies the lenient primitive conversions: numeric to numeric when
// no fraction is lost, and between types sharing a scalar kind.
func (b *Builder) convert(raw reflect.Value, t reflect.Type) (reflect.Value, bool) {
	if !b.config.lenient {
		return reflect.Value{}, false
	}

	target := t
	if t.Kind() == reflect.Ptr {
		target = t.Elem()
	}

	from, to := raw.Kind(), target.Kind()
	switch {
	case ireflect.IsNumeric(from) && ireflect.IsNumeric(to):
		if !fits(raw, target) {
			return reflect.Value{}, false
		}
	case from == to && ireflect.IsScalar(from):
	default:
		return reflect.Value{}, false
	}

	if !raw.Type().ConvertibleTo(target) {
		return reflect.Value{}, false
	}

	v := raw.Convert(target)
	if target == t {
		return v, true
	}

	ptr := reflect.New(target)
	ptr.Elem().Set(v)
	return ptr, true
}

// fits reports whether numeric raw converts to target without losing a
// fraction, a sign or high bits.
func fits(raw reflect.Value, target reflect.Type) bool {
	probe := reflect.New(target).Elem()

	switch {
	case raw.CanInt():
		n := raw.Int()
		switch {
		case probe.CanInt():
			return !probe.OverflowInt(n)
		case probe.CanUint():
			return n >= 0 && !probe.OverflowUint(uint64(n))
		case probe.CanFloat():
			return true
		}
	case raw.CanUint():
		n := raw.Uint()
		switch {
		case probe.CanInt():
			return n <= math.MaxInt64 && !probe.OverflowInt(int64(n))
		case probe.CanUint():
			return !probe.OverflowUint(n)
		case probe.CanFloat():
			return true
		}
	case raw.CanFloat():
		f := raw.Float()
		switch {
		case probe.CanInt():
			return f == math.Trunc(f) && f >= math.MinInt64 && f < math.MaxInt64 && !probe.OverflowInt(int64(f))
		case probe.CanUint():
			return f == math.Trunc(f) && f >= 0 && f < math.MaxUint64 && !probe.OverflowUint(uint64(f))
		case probe.CanFloat():
			return !probe.OverflowFloat(f)
		}
	}
	return false
}
