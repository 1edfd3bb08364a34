package entity

import (
	"fmt"
	"reflect"
	"slices"

	ireflect "github.com/danpasecinic/entity/internal/reflect"
)

const (
	kindValueObject = "value_object"
	kindConstructor = "constructor"
	kindFactory     = "factory"
)

// ValueObject is implemented (on the pointer receiver) by value objects that
// rebuild themselves from their primitive representation. It is the fallback
// when no factory was registered with RegisterValueObject.
type ValueObject interface {
	FromPrimitive(raw any) error
}

type valueObjectEntry struct {
	typ reflect.Type
	arg reflect.Type
	fn  *ireflect.Func
}

// RegisterValueObject registers the canonical factory of value object V.
// fromPrimitive must be shaped func(P) V or func(P) (V, error). P may itself be
// a value object, in which case raw input is coerced to P first. A factory
// between V and *V is a conversion, not a cycle, once its argument is buildable.
func RegisterValueObject[V any](b *Builder, fromPrimitive any) error {
	t := ireflect.TypeOf[V]()
	key := ireflect.KeyOf(t)

	fn, err := ireflect.InspectFunc(fromPrimitive)
	if err != nil {
		return errRegistrationFailed(key, err)
	}
	if len(fn.In) != 1 {
		return errRegistrationFailed(key, fmt.Errorf("factory must take exactly one argument, got %d", len(fn.In)))
	}
	if !fn.Out.AssignableTo(t) {
		return errRegistrationFailed(key, fmt.Errorf("factory returns %s, expected %s", fn.Out, t))
	}

	b.regMu.Lock()
	defer b.regMu.Unlock()

	entry := &valueObjectEntry{typ: t, arg: fn.In[0], fn: fn}
	if err := b.valueObjects.Register(key, entry); err != nil {
		return errRegistrationFailed(key, err)
	}

	// Graph nodes are keyed by the dereferenced type, so V and *V share one.
	node := ireflect.KeyOf(derefType(t))
	prevNeeds, hadNode := b.coercions.Needs(node), b.coercions.HasNode(node)

	needs := slices.Clone(prevNeeds)
	if argBase := derefType(entry.arg); argBase.Kind() == reflect.Struct || b.isValueObject(argBase) {
		needKey := ireflect.KeyOf(argBase)
		if needKey != node || !b.boxes(entry.arg, t) {
			if !slices.Contains(needs, needKey) {
				needs = append(needs, needKey)
			}
			if !b.coercions.HasNode(needKey) && implementsValueObject(argBase) {
				b.coercions.AddNode(needKey, nil)
			}
		}
	}
	b.coercions.AddNode(node, needs)

	if b.coercions.HasCycle() {
		chain := b.coercions.CyclePath(node)
		if hadNode {
			b.coercions.AddNode(node, prevNeeds)
		} else {
			b.coercions.RemoveNode(node)
		}
		b.valueObjects.Remove(key)
		return errCircularCoercion(chain)
	}

	b.logger.Debug("registered value object", "type", key, "primitive", entry.arg.String())
	b.callRegisterHooks(kindValueObject, key)
	return nil
}

// RegisterConstructor registers fn as the primary constructor of T. params
// names each formal parameter of fn in order, as "name" or "name,optional".
// fn must return T (or a type assignable to T), optionally with an error.
func RegisterConstructor[T any](b *Builder, fn any, params ...string) error {
	key := ireflect.TypeKey[T]()

	c, err := newCallable[T](key, callableConstructor, fn, params)
	if err != nil {
		return errRegistrationFailed(key, err)
	}

	if err := b.constructors.Register(key, c); err != nil {
		return errRegistrationFailed(key, err)
	}

	b.logger.Debug("registered constructor", "target", key, "params", len(c.params))
	b.callRegisterHooks(kindConstructor, key)
	return nil
}

// RegisterFactory registers fn as the named static factory of T, used by
// ByStaticConstructor. params follows the RegisterConstructor grammar.
func RegisterFactory[T any](b *Builder, name string, fn any, params ...string) error {
	key := ireflect.TypeKey[T]()
	if name == "" {
		return errRegistrationFailed(key, fmt.Errorf("factory name must not be empty"))
	}

	c, err := newCallable[T](key, name, fn, params)
	if err != nil {
		return errRegistrationFailed(key, err)
	}

	if err := b.factories.Register(factoryKey(key, name), c); err != nil {
		return errRegistrationFailed(key, err)
	}

	b.logger.Debug("registered factory", "target", key, "factory", name, "params", len(c.params))
	b.callRegisterHooks(kindFactory, factoryKey(key, name))
	return nil
}

func MustRegisterValueObject[V any](b *Builder, fromPrimitive any) {
	if err := RegisterValueObject[V](b, fromPrimitive); err != nil {
		panic(err)
	}
}

func MustRegisterConstructor[T any](b *Builder, fn any, params ...string) {
	if err := RegisterConstructor[T](b, fn, params...); err != nil {
		panic(err)
	}
}

func MustRegisterFactory[T any](b *Builder, name string, fn any, params ...string) {
	if err := RegisterFactory[T](b, name, fn, params...); err != nil {
		panic(err)
	}
}

func newCallable[T any](target, name string, fn any, descriptors []string) (*callable, error) {
	f, err := ireflect.InspectFunc(fn)
	if err != nil {
		return nil, err
	}

	expected := ireflect.TypeOf[T]()
	if !f.Out.AssignableTo(expected) {
		return nil, fmt.Errorf("%s returns %s, expected %s", name, f.Out, expected)
	}

	if len(descriptors) != len(f.In) {
		return nil, fmt.Errorf("%s takes %d parameters but %d were described", name, len(f.In), len(descriptors))
	}

	c := &callable{
		target: target,
		name:   name,
		fn:     f,
		params: make([]parameter, len(f.In)),
	}

	seen := make(map[string]bool, len(descriptors))
	for i, raw := range descriptors {
		tag := ireflect.ParseTag(raw)
		if tag.Skip || tag.Name == "" {
			return nil, fmt.Errorf("parameter %d of %s has no name", i, name)
		}
		if seen[tag.Name] {
			return nil, fmt.Errorf("parameter %q of %s is described twice", tag.Name, name)
		}
		seen[tag.Name] = true

		c.params[i] = parameter{
			name:     tag.Name,
			typ:      f.In[i],
			optional: tag.Optional || ireflect.IsNullable(f.In[i]) || isOptionalType(f.In[i]),
		}
	}

	return c, nil
}

func derefType(t reflect.Type) reflect.Type {
	if t.Kind() == reflect.Ptr {
		return t.Elem()
	}
	return t
}

// boxes reports whether a factory taking arg only converts between the value
// and pointer forms of t, with arg already buildable on its own.
func (b *Builder) boxes(arg, t reflect.Type) bool {
	if arg == t {
		return false
	}
	if b.valueObjects.Has(ireflect.KeyOf(arg)) {
		return true
	}
	return arg.Kind() != reflect.Ptr && implementsValueObject(arg)
}

func implementsValueObject(t reflect.Type) bool {
	return t.Kind() != reflect.Interface && ireflect.Implements[ValueObject](reflect.PointerTo(t))
}

// isValueObject reports whether t, or the element of pointer t, has a
// registered factory or implements ValueObject.
func (b *Builder) isValueObject(t reflect.Type) bool {
	if b.valueObjects.Has(ireflect.KeyOf(t)) || implementsValueObject(t) {
		return true
	}
	if t.Kind() == reflect.Ptr {
		e := t.Elem()
		return b.valueObjects.Has(ireflect.KeyOf(e)) || implementsValueObject(e)
	}
	return false
}
