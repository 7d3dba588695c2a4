package path

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

var (
	ErrNilSegment   = errors.New("path segment cannot be nil")
	ErrBadKey       = errors.New("path key must be a basic comparable value")
	ErrNegative     = errors.New("path index cannot be negative")
	ErrEmptyName    = errors.New("path name cannot be empty")
	ErrUnknownShape = errors.New("value cannot serve as a path segment")
)

type KindEnum int

const (
	KindInvalid KindEnum = iota
	KindName
	KindIndex
	KindKey

	// KindTotal is a constant that represents the total number of kinds defined
	KindTotal = int(iota)
)

// Segment is a single step of a Path: a bean property name, a list/array
// index, or a map key. The zero Segment is invalid.
type Segment struct {
	kind  KindEnum
	name  string
	index int
	key   any
}

// Name builds a property-name segment.
func Name(name string) Segment {
	return Segment{kind: KindName, name: name}
}

// Index builds a list/array index segment.
func Index(i int) Segment {
	return Segment{kind: KindIndex, index: i}
}

// Key builds a map-key segment. The key must be a non-nil value of a basic
// comparable kind (bool, integer, float or string); anything else cannot be
// ordered or rendered stably and is rejected.
func Key(key any) (Segment, error) {
	if key == nil {
		return Segment{}, ErrNilSegment
	}

	switch reflect.TypeOf(key).Kind() {
	default:
		return Segment{}, fmt.Errorf("%w, got %T", ErrBadKey, key)
	case reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64,
		reflect.String:
		return Segment{kind: KindKey, key: key}, nil
	}
}

func (s Segment) Kind() KindEnum { return s.kind }

// Name returns the property name for name segments and "" otherwise.
func (s Segment) Name() string { return s.name }

// Index returns the index for index segments and 0 otherwise.
func (s Segment) Index() int { return s.index }

// Key returns the map key for key segments and nil otherwise.
func (s Segment) Key() any { return s.key }

// String renders the segment on its own, without brackets or dots.
func (s Segment) String() string {
	switch s.kind {
	default:
		return "<invalid>"
	case KindName:
		return s.name
	case KindIndex:
		return strconv.Itoa(s.index)
	case KindKey:
		return fmt.Sprint(s.key)
	}
}

// Compare orders two segments: natural order when both are of the same
// kind, otherwise each side falls back to its string rendering.
func (s Segment) Compare(o Segment) int {
	return compareSegments(s, o)
}

// compareSegments orders two segments: natural order when both are of the
// same kind, otherwise each side falls back to its string rendering.
func compareSegments(a, b Segment) int {
	if a.kind == b.kind {
		switch a.kind {
		case KindName:
			return strings.Compare(a.name, b.name)
		case KindIndex:
			switch {
			case a.index < b.index:
				return -1
			case a.index > b.index:
				return 1
			default:
				return 0
			}
		case KindKey:
			if c, ok := compareKeys(a.key, b.key); ok {
				return c
			}
		}
	}

	return strings.Compare(a.String(), b.String())
}

// compareKeys compares two map keys naturally when they are of the same
// dynamic type, reporting ok=false when only the string fallback applies.
func compareKeys(a, b any) (int, bool) {
	if reflect.TypeOf(a) != reflect.TypeOf(b) {
		return 0, false
	}

	av, bv := reflect.ValueOf(a), reflect.ValueOf(b)
	switch av.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return cmpOrdered(av.Int(), bv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return cmpOrdered(av.Uint(), bv.Uint()), true
	case reflect.Float32, reflect.Float64:
		return cmpOrdered(av.Float(), bv.Float()), true
	case reflect.String:
		return strings.Compare(av.String(), bv.String()), true
	case reflect.Bool:
		x, y := av.Bool(), bv.Bool()
		switch {
		case x == y:
			return 0, true
		case !x:
			return -1, true
		default:
			return 1, true
		}
	}

	return 0, false
}

func cmpOrdered[T int64 | uint64 | float64](a, b T) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
