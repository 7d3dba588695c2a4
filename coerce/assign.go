package coerce

import (
	"errors"
	"fmt"
	"reflect"
)

var ErrIncompatible = errors.New("value is incompatible with target type")

// Assign conforms a runtime value to a destination type: nil becomes the
// zero value of nil-able destinations, assignable values pass through, and
// conversions are applied only where they cannot mangle data (between
// numeric kinds, or between identically kinded named types). Anything else
// is an error; notably int<->string conversions are refused because they are
// rune reinterpretations, not coercions.
func Assign(value any, want reflect.Type) (reflect.Value, error) {
	if value == nil {
		switch want.Kind() {
		case reflect.Ptr, reflect.Interface, reflect.Map, reflect.Slice, reflect.Chan, reflect.Func:
			return reflect.Zero(want), nil
		default:
			return reflect.Value{}, fmt.Errorf("%w: nil into %s", ErrIncompatible, want)
		}
	}

	rv := reflect.ValueOf(value)
	if rv.Type().AssignableTo(want) {
		return rv, nil
	}

	if rv.Type().ConvertibleTo(want) && conversionSafe(rv.Kind(), want.Kind()) {
		return rv.Convert(want), nil
	}

	return reflect.Value{}, fmt.Errorf("%w: %s into %s", ErrIncompatible, rv.Type(), want)
}

func conversionSafe(from, to reflect.Kind) bool {
	return from == to || (isNumeric(from) && isNumeric(to))
}

func isNumeric(k reflect.Kind) bool {
	switch k {
	default:
		return false
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	}
}
