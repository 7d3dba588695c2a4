// Package coerce converts textual input into typed values via a registry of
// per-type parsers, with built-in coverage for the basic kinds and the time
// types. It backs the lenient property-write path: string sources aimed at
// non-string destinations go through here.
package coerce

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"sync"
	"time"
)

var ErrNoParser = errors.New("no text parser registered for type")

// ParseFunc turns text into a value assignable or convertible to the type it
// was registered for.
type ParseFunc func(text string) (any, error)

var registry = struct {
	sync.RWMutex
	parsers map[reflect.Type]ParseFunc
}{parsers: make(map[reflect.Type]ParseFunc)}

// Register installs (or replaces) the parser for an exact target type.
func Register(rtype reflect.Type, fn ParseFunc) {
	if rtype == nil || fn == nil {
		panic("coerce: Register requires a type and a parser")
	}

	registry.Lock()
	defer registry.Unlock()
	registry.parsers[rtype] = fn
}

// Lookup returns the parser registered for the exact type, if any.
func Lookup(rtype reflect.Type) (ParseFunc, bool) {
	registry.RLock()
	defer registry.RUnlock()
	fn, ok := registry.parsers[rtype]
	return fn, ok
}

// Value parses text into a value of the target type. An exactly registered
// parser wins; otherwise named basic types fall back to the parser for their
// underlying kind, so string- and int-backed enum types work out of the box.
// A failed parse or an unparseable target type is an error, never a silent
// zero value.
func Value(text string, target reflect.Type) (reflect.Value, error) {
	if target == nil {
		return reflect.Value{}, fmt.Errorf("%w: <nil>", ErrNoParser)
	}

	if fn, ok := Lookup(target); ok {
		parsed, err := fn(text)
		if err != nil {
			return reflect.Value{}, fmt.Errorf("parse %q as %s: %w", text, target, err)
		}

		rv := reflect.ValueOf(parsed)
		if !rv.IsValid() || !rv.Type().ConvertibleTo(target) {
			return reflect.Value{}, fmt.Errorf("parser for %s returned incompatible %T", target, parsed)
		}
		return rv.Convert(target), nil
	}

	rv, err := parseKind(text, target)
	if err != nil {
		return reflect.Value{}, fmt.Errorf("parse %q as %s: %w", text, target, err)
	}

	return rv, nil
}

// parseKind handles the basic kinds shared by all named types.
func parseKind(text string, target reflect.Type) (reflect.Value, error) {
	switch target.Kind() {
	case reflect.String:
		return reflect.ValueOf(text).Convert(target), nil

	case reflect.Bool:
		b, err := parseBool(text)
		if err != nil {
			return reflect.Value{}, err
		}
		return reflect.ValueOf(b).Convert(target), nil

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := strconv.ParseInt(text, 10, target.Bits())
		if err != nil {
			return reflect.Value{}, err
		}
		return reflect.ValueOf(n).Convert(target), nil

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, err := strconv.ParseUint(text, 10, target.Bits())
		if err != nil {
			return reflect.Value{}, err
		}
		return reflect.ValueOf(n).Convert(target), nil

	case reflect.Float32, reflect.Float64:
		f, err := strconv.ParseFloat(text, target.Bits())
		if err != nil {
			return reflect.Value{}, err
		}
		return reflect.ValueOf(f).Convert(target), nil

	default:
		return reflect.Value{}, ErrNoParser
	}
}

// parseBool accepts the usual strconv spellings plus yes/no/on/off.
func parseBool(text string) (bool, error) {
	switch strings.ToLower(text) {
	case "yes", "on":
		return true, nil
	case "no", "off":
		return false, nil
	default:
		return strconv.ParseBool(text)
	}
}

func init() {
	Register(reflect.TypeOf(time.Time{}), func(text string) (any, error) {
		return time.Parse(time.RFC3339Nano, text)
	})
	Register(reflect.TypeOf(time.Duration(0)), func(text string) (any, error) {
		return time.ParseDuration(text)
	})
}
