package describe

import (
	"errors"
	"fmt"
	"reflect"
)

var (
	ErrNilBean        = errors.New("bean pointer is nil")
	ErrWrongBeanType  = errors.New("value is not of the descriptor's type")
	ErrNotAddressable = errors.New("bean value is not addressable")
)

// Read returns the current value of a property. The bean may be given as a
// struct value or any level of pointer to it.
func (d *Descriptor) Read(bean reflect.Value, p Property) (reflect.Value, error) {
	if !p.CanRead {
		return reflect.Value{}, fmt.Errorf("%w: %s.%s", ErrPropertyNotReadable, d.Type, p.Name)
	}

	if p.field != nil {
		sv, err := d.structValue(bean)
		if err != nil {
			return reflect.Value{}, err
		}
		return sv.FieldByIndex(p.field), nil
	}

	pv, err := d.pointerValue(bean)
	if err != nil {
		return reflect.Value{}, err
	}

	out, err := safeCall(pv.Method(p.getter), nil)
	if err != nil {
		return reflect.Value{}, fmt.Errorf("invoke %s.%s: %w", d.Type, p.Name, err)
	}

	return out[0], nil
}

// Write stores a value into a property. The bean must be reachable as an
// addressable struct, in practice a pointer. The value must already be
// assignable to the property type; callers coerce or conform beforehand.
func (d *Descriptor) Write(bean reflect.Value, p Property, value reflect.Value) error {
	if !p.CanWrite {
		return fmt.Errorf("%w: %s.%s", ErrPropertyNotWritable, d.Type, p.Name)
	}

	if !value.IsValid() {
		value = reflect.Zero(p.Type)
	}
	if !value.Type().AssignableTo(p.Type) {
		return fmt.Errorf("write %s.%s: cannot assign %s to %s", d.Type, p.Name, value.Type(), p.Type)
	}

	if p.field != nil {
		sv, err := d.structValue(bean)
		if err != nil {
			return err
		}
		if !sv.CanAddr() {
			return fmt.Errorf("%w: %s.%s", ErrNotAddressable, d.Type, p.Name)
		}

		sv.FieldByIndex(p.field).Set(value)
		return nil
	}

	pv, err := d.pointerValue(bean)
	if err != nil {
		return err
	}

	if _, err := safeCall(pv.Method(p.setter), []reflect.Value{value}); err != nil {
		return fmt.Errorf("invoke %s.Set%s: %w", d.Type, p.Name, err)
	}

	return nil
}

// structValue unwraps the bean to its struct value, preserving
// addressability when the caller handed in a pointer.
func (d *Descriptor) structValue(bean reflect.Value) (reflect.Value, error) {
	for bean.Kind() == reflect.Interface || bean.Kind() == reflect.Ptr {
		if bean.Kind() == reflect.Ptr && bean.IsNil() {
			return reflect.Value{}, fmt.Errorf("%w: %s", ErrNilBean, d.Type)
		}
		bean = bean.Elem()
	}

	if !bean.IsValid() || bean.Type() != d.Type {
		return reflect.Value{}, fmt.Errorf("%w: want %s", ErrWrongBeanType, d.Type)
	}

	return bean, nil
}

// pointerValue produces a *T for method-backed accessors, boxing a copy when
// the bean was handed in by value.
func (d *Descriptor) pointerValue(bean reflect.Value) (reflect.Value, error) {
	for bean.Kind() == reflect.Interface {
		bean = bean.Elem()
	}

	if bean.Kind() == reflect.Ptr {
		if bean.IsNil() {
			return reflect.Value{}, fmt.Errorf("%w: %s", ErrNilBean, d.Type)
		}
		if bean.Type().Elem() == d.Type {
			return bean, nil
		}
		return d.pointerValue(bean.Elem())
	}

	if !bean.IsValid() || bean.Type() != d.Type {
		return reflect.Value{}, fmt.Errorf("%w: want %s", ErrWrongBeanType, d.Type)
	}

	if bean.CanAddr() {
		return bean.Addr(), nil
	}

	boxed := reflect.New(d.Type)
	boxed.Elem().Set(bean)
	return boxed, nil
}

// safeCall invokes an accessor and converts panics into errors so that a
// misbehaving getter or setter surfaces with context instead of unwinding
// through the engine.
func safeCall(fn reflect.Value, args []reflect.Value) (out []reflect.Value, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("accessor panicked: %v", r)
		}
	}()

	return fn.Call(args), nil
}
