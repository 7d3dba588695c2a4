// Package method resolves callable methods on live values by name and
// argument compatibility, and emulates overloading through ordered
// function sets. Resolution is best-effort: the first compatible
// candidate wins, not the most specific one.
package method

import (
	"errors"
	"fmt"
	"reflect"
)

var (
	ErrNoMethod     = errors.New("no compatible method")
	ErrNotAFunction = errors.New("provided value is not a function")
)

// Callable is a resolved function, with the receiver already bound when
// it came from a method lookup.
type Callable struct {
	Name string

	fn reflect.Value
}

// Find resolves a method on instance by name and checks that args could
// be passed to it. Value receivers are retried through a boxed pointer
// copy, so pointer-receiver methods resolve on plain values too; note
// that mutations made by such a method land on the copy.
func Find(instance any, name string, args ...any) (Callable, error) {
	rv := reflect.ValueOf(instance)
	if !rv.IsValid() {
		return Callable{}, fmt.Errorf("%w: %q on nil instance", ErrNoMethod, name)
	}

	m := rv.MethodByName(name)
	if !m.IsValid() && rv.Kind() != reflect.Ptr {
		boxed := reflect.New(rv.Type())
		boxed.Elem().Set(rv)
		m = boxed.MethodByName(name)
	}
	if !m.IsValid() {
		return Callable{}, fmt.Errorf("%w: %q on %s", ErrNoMethod, name, rv.Type())
	}

	if !compatible(m.Type(), args) {
		return Callable{}, fmt.Errorf("%w: %q on %s does not accept given arguments", ErrNoMethod, name, rv.Type())
	}

	return Callable{Name: name, fn: m}, nil
}

// Invoke calls the resolved function with the given arguments. A panic
// inside the callee is recovered and returned as an error.
func (c Callable) Invoke(args ...any) (results []any, err error) {
	if !c.fn.IsValid() {
		return nil, ErrNoMethod
	}

	defer func() {
		if r := recover(); r != nil {
			results = nil
			err = fmt.Errorf("invoke %q: panic: %v", c.Name, r)
		}
	}()

	ft := c.fn.Type()
	in := make([]reflect.Value, len(args))
	for i, arg := range args {
		if arg == nil {
			in[i] = reflect.Zero(paramType(ft, i))
			continue
		}
		in[i] = reflect.ValueOf(arg)
	}

	out := c.fn.Call(in)

	results = make([]any, len(out))
	for i, v := range out {
		results[i] = v.Interface()
	}
	return results, nil
}

// Type exposes the resolved function signature.
func (c Callable) Type() reflect.Type { return c.fn.Type() }

// Invoke resolves a method and calls it in one step.
func Invoke(instance any, name string, args ...any) ([]any, error) {
	c, err := Find(instance, name, args...)
	if err != nil {
		return nil, err
	}
	return c.Invoke(args...)
}

// compatible reports whether args could be passed to a function of type
// ft. An untyped nil argument matches any parameter that can hold nil.
func compatible(ft reflect.Type, args []any) bool {
	fixed := ft.NumIn()
	if ft.IsVariadic() {
		fixed--
		if len(args) < fixed {
			return false
		}
	} else if len(args) != fixed {
		return false
	}

	for i, arg := range args {
		want := paramType(ft, i)
		if arg == nil {
			if !nilable(want.Kind()) {
				return false
			}
			continue
		}
		if !reflect.TypeOf(arg).AssignableTo(want) {
			return false
		}
	}

	return true
}

// paramType returns the declared type of the i-th argument, unrolling
// the variadic tail.
func paramType(ft reflect.Type, i int) reflect.Type {
	if ft.IsVariadic() && i >= ft.NumIn()-1 {
		return ft.In(ft.NumIn() - 1).Elem()
	}
	return ft.In(i)
}

func nilable(k reflect.Kind) bool {
	switch k {
	default:
		return false
	case reflect.Ptr, reflect.Map, reflect.Slice, reflect.Chan, reflect.Func, reflect.Interface:
		return true
	}
}
