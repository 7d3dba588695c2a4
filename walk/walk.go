// Package walk enumerates every structured sub-object reachable from a root
// value, tagging each with the first path that discovered it. Traversal is
// identity-aware, so cyclic graphs terminate and shared objects are listed
// once.
package walk

import (
	"errors"
	"fmt"
	"reflect"
	"sort"

	"beanpath/describe"
	"beanpath/path"
	"beanpath/shape"
)

var ErrNilRoot = errors.New("walk root is nil")

// Predicate decides whether the walker may recurse through a bean property.
// It receives the owning bean instance and the discovered property. A nil
// Predicate admits every readable property.
type Predicate func(owner any, prop describe.Property) bool

// Entry is one discovered base object together with the first path that
// reached it.
type Entry struct {
	Value any
	Path  path.Path
}

// ident is the identity key of a reference-shaped value. Pointers to the
// same struct and the struct itself unify on the struct's address. aux
// disambiguates overlapping subslices that share a backing pointer.
type ident struct {
	typ reflect.Type
	ptr uintptr
	aux int
}

// PathMap holds the walk result: base objects in discovery order plus an
// identity index for lookup.
type PathMap struct {
	entries []Entry
	index   map[ident]int
}

func (m *PathMap) Len() int { return len(m.entries) }

// Entries returns the discovered base objects in discovery order; the root
// is always first, at the empty path.
func (m *PathMap) Entries() []Entry { return m.entries }

// Paths returns just the discovered paths, in discovery order.
func (m *PathMap) Paths() []path.Path {
	out := make([]path.Path, len(m.entries))
	for i, e := range m.entries {
		out[i] = e.Path
	}
	return out
}

// At looks up the path of a previously discovered object by identity. Only
// reference values (pointers, maps, non-empty slices) have identity; bean
// values reached by copy cannot be looked up this way.
func (m *PathMap) At(obj any) (path.Path, bool) {
	id, ok := identityOf(reflect.ValueOf(obj))
	if !ok {
		return path.Empty, false
	}

	i, ok := m.index[id]
	if !ok {
		return path.Empty, false
	}

	return m.entries[i].Path, true
}

// Collect walks the object graph under root and returns every distinct base
// object keyed by the first path that reached it. The root itself is always
// included at the empty path, even when it is a plain leaf value. The input
// graph is never mutated.
func Collect(root any, pred Predicate) (*PathMap, error) {
	if root == nil {
		return nil, ErrNilRoot
	}

	w := &walker{
		pred: pred,
		out:  &PathMap{index: make(map[ident]int)},
	}

	if err := w.visit(reflect.ValueOf(root), path.Empty); err != nil {
		return nil, err
	}

	return w.out, nil
}

type walker struct {
	pred Predicate
	out  *PathMap
}

func (w *walker) visit(v reflect.Value, at path.Path) error {
	for v.Kind() == reflect.Interface && !v.IsNil() {
		v = v.Elem()
	}
	if !v.IsValid() || isNilRef(v) {
		return nil
	}

	// The root is recorded whatever its shape; children only when they
	// carry further structure.
	isBase := shape.Of(v.Type()).IsBase()
	if !isBase && !at.IsEmpty() {
		return nil
	}

	if id, ok := identityOf(v); ok {
		if _, seen := w.out.index[id]; seen {
			return nil
		}
		w.out.index[id] = len(w.out.entries)
	}

	w.out.entries = append(w.out.entries, Entry{Value: v.Interface(), Path: at})
	if !isBase {
		return nil
	}
	return w.recurse(v, at)
}

func (w *walker) recurse(v reflect.Value, at path.Path) error {
	switch v.Kind() {
	case reflect.Ptr:
		return w.recurse(v.Elem(), at)

	case reflect.Slice, reflect.Array:
		for i := 0; i < v.Len(); i++ {
			if err := w.visit(v.Index(i), at.With(path.Index(i))); err != nil {
				return err
			}
		}
		return nil

	case reflect.Map:
		return w.recurseMap(v, at)

	case reflect.Struct:
		return w.recurseBean(v, at)

	default:
		return nil
	}
}

// recurseMap visits entries in key order so results are deterministic.
// Entries whose key cannot serve as a path segment are skipped.
func (w *walker) recurseMap(v reflect.Value, at path.Path) error {
	type keyed struct {
		seg path.Segment
		key reflect.Value
	}

	entries := make([]keyed, 0, v.Len())
	iter := v.MapRange()
	for iter.Next() {
		seg, err := path.Key(iter.Key().Interface())
		if err != nil {
			continue
		}
		entries = append(entries, keyed{seg: seg, key: iter.Key()})
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].seg.Compare(entries[j].seg) < 0
	})

	for _, e := range entries {
		if err := w.visit(v.MapIndex(e.key), at.With(e.seg)); err != nil {
			return err
		}
	}

	return nil
}

func (w *walker) recurseBean(v reflect.Value, at path.Path) error {
	d, err := describe.For(v.Type())
	if err != nil {
		return fmt.Errorf("at %q: %w", at, err)
	}

	owner := v.Interface()
	if v.CanAddr() {
		owner = v.Addr().Interface()
	}

	for _, p := range d.Properties() {
		if !p.CanRead {
			continue
		}
		if w.pred != nil && !w.pred(owner, p) {
			continue
		}
		if shape.IsLeafType(p.Type) && p.Type.Kind() != reflect.Interface {
			continue // cheap skip; dynamic values are re-checked in visit
		}

		value, err := d.Read(v, p)
		if err != nil {
			return fmt.Errorf("at %q: %w", at.With(path.Name(p.Name)), err)
		}

		if err := w.visit(value, at.With(path.Name(p.Name))); err != nil {
			return err
		}
	}

	return nil
}

func isNilRef(v reflect.Value) bool {
	switch v.Kind() {
	default:
		return false
	case reflect.Ptr, reflect.Map, reflect.Slice, reflect.Interface:
		return v.IsNil()
	}
}

// identityOf derives the identity key of reference-shaped values. Pointers
// to structs unify with the pointed-to struct, and addressable structs with
// their address, so the same instance is recognized however it is reached.
func identityOf(v reflect.Value) (ident, bool) {
	switch v.Kind() {
	case reflect.Ptr:
		if v.IsNil() {
			return ident{}, false
		}
		return ident{typ: v.Type().Elem(), ptr: v.Pointer()}, true

	case reflect.Map:
		if v.IsNil() {
			return ident{}, false
		}
		return ident{typ: v.Type(), ptr: v.Pointer()}, true

	case reflect.Slice:
		// Every zero-size allocation shares one base address, so empty
		// slices carry no usable identity and are listed individually.
		if v.IsNil() || v.Len() == 0 {
			return ident{}, false
		}
		return ident{typ: v.Type(), ptr: v.Pointer(), aux: v.Len()}, true

	case reflect.Struct:
		if v.CanAddr() {
			return ident{typ: v.Type(), ptr: v.Addr().Pointer()}, true
		}
		return ident{}, false

	default:
		return ident{}, false
	}
}
