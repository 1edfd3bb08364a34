package reflect

import (
	"errors"
	"fmt"
	"reflect"
)

var errorType = TypeOf[error]()

// Func is the introspected shape of a constructor-like function:
// func(In...) Out or func(In...) (Out, error).
type Func struct {
	Value    reflect.Value
	In       []reflect.Type
	Out      reflect.Type
	HasError bool
}

func InspectFunc(fn any) (*Func, error) {
	if fn == nil {
		return nil, errors.New("function is nil")
	}

	v := reflect.ValueOf(fn)
	t := v.Type()
	if t.Kind() != reflect.Func {
		return nil, fmt.Errorf("expected a function, got %s", t)
	}
	if v.IsNil() {
		return nil, errors.New("function is nil")
	}
	if t.IsVariadic() {
		return nil, fmt.Errorf("variadic function %s is not supported", t)
	}

	f := &Func{Value: v}

	switch {
	case t.NumOut() == 1:
	case t.NumOut() == 2 && t.Out(1) == errorType:
		f.HasError = true
	default:
		return nil, fmt.Errorf("function %s must return T or (T, error)", t)
	}
	f.Out = t.Out(0)

	f.In = make([]reflect.Type, t.NumIn())
	for i := range f.In {
		f.In[i] = t.In(i)
	}

	return f, nil
}

// Call invokes the function and splits its error result, if any.
func (f *Func) Call(args []reflect.Value) (reflect.Value, error) {
	results := f.Value.Call(args)

	if f.HasError && !results[1].IsNil() {
		return reflect.Value{}, results[1].Interface().(error)
	}

	return results[0], nil
}
