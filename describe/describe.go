// Package describe discovers the named properties of bean types and caches
// the result per type. A property is an exported struct field, or an
// accessor pair of methods X() / SetX(v) on the pointer type. Descriptors
// are immutable once built and safe to share.
package describe

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"
	"sync"

	"beanpath/shape"
)

var (
	ErrNotABean            = errors.New("type is not a bean")
	ErrPropertyNotFound    = errors.New("no such property")
	ErrPropertyNotWritable = errors.New("property is not writable")
	ErrPropertyNotReadable = errors.New("property is not readable")
	ErrAccessorMismatch    = errors.New("accessor pair types disagree")
)

// Property is one named read/write capability of a bean type.
type Property struct {
	Name     string
	Type     reflect.Type
	CanRead  bool
	CanWrite bool

	field  []int // field index when field-backed, nil otherwise
	getter int   // method index on the pointer type, -1 when absent
	setter int
}

// Descriptor is the discovered capability table of one bean type.
type Descriptor struct {
	Type reflect.Type // the underlying struct type

	props  []Property
	byName map[string]int
}

var cache sync.Map // reflect.Type -> *Descriptor

// For returns the descriptor of a bean type, introspecting it at most once
// per process. Pointer indirections are unwrapped first. Concurrent first
// use may introspect redundantly, but every caller observes the same stored
// descriptor.
func For(rtype reflect.Type) (*Descriptor, error) {
	for rtype != nil && rtype.Kind() == reflect.Ptr {
		rtype = rtype.Elem()
	}
	if rtype == nil || shape.Of(rtype) != shape.Bean {
		return nil, fmt.Errorf("%w: %v", ErrNotABean, rtype)
	}

	if d, ok := cache.Load(rtype); ok {
		return d.(*Descriptor), nil
	}

	d, err := introspect(rtype)
	if err != nil {
		return nil, err
	}

	stored, _ := cache.LoadOrStore(rtype, d)
	return stored.(*Descriptor), nil
}

// Properties returns all discovered properties: fields in declaration
// order, then method-backed properties in name order.
func (d *Descriptor) Properties() []Property {
	out := make([]Property, len(d.props))
	copy(out, d.props)
	return out
}

// Property looks up a single property by name.
func (d *Descriptor) Property(name string) (Property, bool) {
	i, ok := d.byName[name]
	if !ok {
		return Property{}, false
	}
	return d.props[i], true
}

// methodSkip lists formatting methods that must not surface as properties.
var methodSkip = map[string]struct{}{
	"String":   {},
	"GoString": {},
	"Error":    {},
}

func introspect(rtype reflect.Type) (*Descriptor, error) {
	d := &Descriptor{Type: rtype, byName: make(map[string]int)}

	for i := 0; i < rtype.NumField(); i++ {
		f := rtype.Field(i)
		if !f.IsExported() {
			continue
		}

		d.byName[f.Name] = len(d.props)
		d.props = append(d.props, Property{
			Name:     f.Name,
			Type:     f.Type,
			CanRead:  true,
			CanWrite: true,
			field:    f.Index,
			getter:   -1,
			setter:   -1,
		})
	}

	viaMethods, err := accessorProperties(rtype)
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(viaMethods))
	for name := range viaMethods {
		if _, taken := d.byName[name]; taken {
			continue // fields shadow accessor pairs
		}
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		d.byName[name] = len(d.props)
		d.props = append(d.props, viaMethods[name])
	}

	return d, nil
}

// accessorProperties scans the pointer method set for X()/SetX(v) pairs.
func accessorProperties(rtype reflect.Type) (map[string]Property, error) {
	found := make(map[string]Property)
	ptype := reflect.PointerTo(rtype)

	for i := 0; i < ptype.NumMethod(); i++ {
		m := ptype.Method(i)

		if isSetter(m) {
			name := strings.TrimPrefix(m.Name, "Set")
			p := found[name]
			argType := m.Type.In(1)

			if p.CanRead && p.Type != argType {
				return nil, fmt.Errorf("%w: %s.%s takes %s, %s returns %s",
					ErrAccessorMismatch, rtype, m.Name, argType, name, p.Type)
			}

			p.Name, p.Type, p.CanWrite, p.setter = name, argType, true, i
			if !p.CanRead {
				p.getter = -1
			}
			found[name] = p
			continue
		}

		if isGetter(m) {
			p := found[m.Name]
			retType := m.Type.Out(0)

			if p.CanWrite && p.Type != retType {
				return nil, fmt.Errorf("%w: %s.%s returns %s, Set%s takes %s",
					ErrAccessorMismatch, rtype, m.Name, retType, m.Name, p.Type)
			}

			p.Name, p.Type, p.CanRead, p.getter = m.Name, retType, true, i
			if !p.CanWrite {
				p.setter = -1
			}
			found[m.Name] = p
		}
	}

	return found, nil
}

func isGetter(m reflect.Method) bool {
	if _, skip := methodSkip[m.Name]; skip {
		return false
	}

	return m.Type.NumIn() == 1 && // receiver only
		m.Type.NumOut() == 1 &&
		!isErrorType(m.Type.Out(0))
}

func isSetter(m reflect.Method) bool {
	return strings.HasPrefix(m.Name, "Set") && len(m.Name) > 3 &&
		m.Type.NumIn() == 2 &&
		m.Type.NumOut() == 0
}

var errorType = reflect.TypeOf((*error)(nil)).Elem()

func isErrorType(t reflect.Type) bool {
	return t != nil && t.Implements(errorType)
}
