// Package shape classifies runtime types into the structural categories the
// graph engine dispatches on: leaves, beans, lists, arrays and maps.
package shape

import (
	"reflect"
	"time"
)

//go:generate go tool stringer -type=Enum -output=shape_string.go

type Enum int

const (
	Unknown Enum = iota

	Leaf   // primitives, named basics (enums), strings, time values
	Bean   // struct or pointer-to-struct with named properties
	List   // slice
	Array  // fixed-size array
	Map    // map
	Opaque // channels, funcs and other iterables; treated as leaves

	// Total is a constant that represents the total number of shapes defined
	Total = int(iota)
)

// IsBase reports whether values of this shape contain further structure and
// may be recursed into.
func (e Enum) IsBase() bool {
	switch e {
	default:
		return false
	case Bean, List, Array, Map:
		return true
	}
}

var timeType = reflect.TypeOf(time.Time{})

// Of classifies a type, unwrapping any pointer indirections first.
// A nil type is Unknown.
func Of(rtype reflect.Type) Enum {
	for rtype != nil && rtype.Kind() == reflect.Ptr {
		rtype = rtype.Elem()
	}
	if rtype == nil {
		return Unknown
	}

	switch rtype.Kind() {
	case reflect.Slice:
		return List
	case reflect.Array:
		return Array
	case reflect.Map:
		return Map
	case reflect.Struct:
		if rtype == timeType {
			return Leaf
		}
		return Bean
	case reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64,
		reflect.Complex64, reflect.Complex128,
		reflect.String:
		return Leaf
	case reflect.Chan, reflect.Func, reflect.Interface, reflect.UnsafePointer, reflect.Uintptr:
		return Opaque
	default:
		return Unknown
	}
}

// OfValue classifies a value's dynamic type, looking through interfaces.
func OfValue(v reflect.Value) Enum {
	for v.Kind() == reflect.Interface && !v.IsNil() {
		v = v.Elem()
	}
	if !v.IsValid() {
		return Unknown
	}

	return Of(v.Type())
}

// IsLeafType reports whether values of the type are terminal: never recursed
// into by the walker and never vivified by the mutator. Opaque types count
// as leaves for traversal purposes.
func IsLeafType(rtype reflect.Type) bool {
	switch Of(rtype) {
	default:
		return true
	case Bean, List, Array, Map:
		return false
	}
}
