// Package mutate applies batches of path-addressed writes onto an object
// graph, creating or growing any missing intermediate containers and beans
// on the way down. Writes are sequenced longest-path-first so that every
// container is sized exactly once per batch.
package mutate

import (
	"errors"
	"fmt"
	"reflect"
	"sort"

	"beanpath/coerce"
	"beanpath/describe"
	"beanpath/path"
	"beanpath/shape"
)

var (
	ErrBadRoot     = errors.New("root must be a non-nil pointer or map")
	ErrEmptyWrite  = errors.New("write path is empty")
	ErrOutOfRange  = errors.New("array index out of range")
	ErrNotAList    = errors.New("index segment requires a list or array")
	ErrNotAMap     = errors.New("key segment requires a map")
	ErrNotABase    = errors.New("cannot descend into leaf value")
	ErrCannotBuild = errors.New("cannot create intermediate value")
)

// Write is one path-addressed assignment.
type Write struct {
	Path  path.Path
	Value any
}

// Apply performs every write in the batch against the root graph. The
// supplied order is irrelevant: writes are sorted in descending path order
// (longest first, ties reverse segment-wise) before anything is touched, so
// the highest index into each container is seen first and the container is
// grown to its final size in one step. Any failure aborts the batch;
// earlier writes stay applied.
func Apply(root any, writes []Write) error {
	rv := reflect.ValueOf(root)
	if !validRoot(rv) {
		return fmt.Errorf("%w, got %T", ErrBadRoot, root)
	}

	batch := make([]Write, len(writes))
	copy(batch, writes)
	sort.SliceStable(batch, func(i, j int) bool {
		return batch[i].Path.Compare(batch[j].Path) > 0
	})

	for _, w := range batch {
		if w.Path.IsEmpty() {
			return ErrEmptyWrite
		}
		if _, err := setAt(rv, w.Path.Segments(), w.Value); err != nil {
			return fmt.Errorf("apply %q: %w", w.Path, err)
		}
	}

	return nil
}

// ApplyValues is Apply for textual path keys, as delivered by parsed
// request or script data.
func ApplyValues(root any, values map[string]any) error {
	writes := make([]Write, 0, len(values))

	for text, value := range values {
		p, err := path.Parse(text)
		if err != nil {
			return fmt.Errorf("path %q: %w", text, err)
		}
		writes = append(writes, Write{Path: p, Value: value})
	}

	return Apply(root, writes)
}

func validRoot(rv reflect.Value) bool {
	switch rv.Kind() {
	default:
		return false
	case reflect.Ptr, reflect.Map:
		return !rv.IsNil()
	}
}

// setAt applies the remaining segments to the container v and returns the
// resulting container, which may be a replacement (grown slice, vivified
// pointer or map) that the caller must store back.
func setAt(v reflect.Value, segs []path.Segment, value any) (reflect.Value, error) {
	for v.Kind() == reflect.Interface && !v.IsNil() {
		v = v.Elem()
	}

	seg := segs[0]
	switch seg.Kind() {
	case path.KindName:
		if v.Kind() == reflect.Map {
			// Dotted paths address string-keyed maps too.
			return setInMap(v, seg.Name(), segs, value)
		}
		return setInBean(v, segs, value)

	case path.KindIndex:
		return setInSeq(v, segs, value)

	case path.KindKey:
		return setInMap(v, seg.Key(), segs, value)

	default:
		return reflect.Value{}, fmt.Errorf("invalid segment in path")
	}
}

func setInBean(v reflect.Value, segs []path.Segment, value any) (reflect.Value, error) {
	seg, rest := segs[0], segs[1:]

	wasPtr := v.Kind() == reflect.Ptr
	pv := v
	switch {
	case wasPtr && pv.IsNil():
		pv = reflect.New(pv.Type().Elem())
	case !wasPtr && v.Kind() == reflect.Struct:
		boxed := reflect.New(v.Type())
		boxed.Elem().Set(v)
		pv = boxed
	case !wasPtr:
		return reflect.Value{}, fmt.Errorf("%w: property %q on %s", ErrNotABase, seg.Name(), v.Type())
	}

	d, err := describe.For(pv.Type())
	if err != nil {
		return reflect.Value{}, err
	}

	p, ok := d.Property(seg.Name())
	if !ok {
		return reflect.Value{}, fmt.Errorf("%w: %q on %s", describe.ErrPropertyNotFound, seg.Name(), d.Type)
	}

	if len(rest) == 0 {
		val, err := finalValue(value, p.Type)
		if err != nil {
			return reflect.Value{}, fmt.Errorf("property %q: %w", p.Name, err)
		}
		if err := d.Write(pv, p, val); err != nil {
			return reflect.Value{}, err
		}
	} else {
		cur, err := d.Read(pv, p)
		if err != nil {
			return reflect.Value{}, err
		}

		child, err := childFor(cur, p.Type, rest[0])
		if err != nil {
			return reflect.Value{}, fmt.Errorf("property %q: %w", p.Name, err)
		}

		updated, err := setAt(child, rest, value)
		if err != nil {
			return reflect.Value{}, err
		}

		if err := d.Write(pv, p, updated); err != nil {
			return reflect.Value{}, err
		}
	}

	if wasPtr {
		return pv, nil
	}
	return pv.Elem(), nil
}

func setInSeq(v reflect.Value, segs []path.Segment, value any) (reflect.Value, error) {
	seg, rest := segs[0], segs[1:]
	idx := seg.Index()

	switch v.Kind() {
	case reflect.Ptr:
		// pointer to array or slice: apply through and store back
		if v.IsNil() {
			v = reflect.New(v.Type().Elem())
		}
		updated, err := setInSeq(v.Elem(), segs, value)
		if err != nil {
			return reflect.Value{}, err
		}
		v.Elem().Set(updated)
		return v, nil

	case reflect.Slice:
		if v.IsNil() || idx >= v.Len() {
			v = grow(v, idx+1)
		}

	case reflect.Array:
		if idx >= v.Len() {
			return reflect.Value{}, fmt.Errorf("%w: [%d] in %s", ErrOutOfRange, idx, v.Type())
		}
		if !v.CanAddr() {
			boxed := reflect.New(v.Type())
			boxed.Elem().Set(v)
			v = boxed.Elem()
		}

	default:
		return reflect.Value{}, fmt.Errorf("%w: [%d] on %s", ErrNotAList, idx, v.Type())
	}

	elemType := v.Type().Elem()
	if len(rest) == 0 {
		val, err := finalValue(value, elemType)
		if err != nil {
			return reflect.Value{}, fmt.Errorf("index [%d]: %w", idx, err)
		}
		v.Index(idx).Set(val)
		return v, nil
	}

	child, err := childFor(v.Index(idx), elemType, rest[0])
	if err != nil {
		return reflect.Value{}, fmt.Errorf("index [%d]: %w", idx, err)
	}

	updated, err := setAt(child, rest, value)
	if err != nil {
		return reflect.Value{}, err
	}

	conformed, err := coerce.Assign(updated.Interface(), elemType)
	if err != nil {
		return reflect.Value{}, fmt.Errorf("index [%d]: %w", idx, err)
	}
	v.Index(idx).Set(conformed)

	return v, nil
}

// grow returns a slice of length n carrying over the existing elements.
// Newly created slots of pointer-to-bean element types are filled with
// fresh default instances, since those slots exist only because a longer
// path will descend into them; leaf-typed slots stay zero-valued.
func grow(v reflect.Value, n int) reflect.Value {
	ns := reflect.MakeSlice(v.Type(), n, n)

	old := 0
	if !v.IsNil() {
		old = reflect.Copy(ns, v)
	}

	elemType := v.Type().Elem()
	if elemType.Kind() == reflect.Ptr && shape.Of(elemType) == shape.Bean {
		for i := old; i < n; i++ {
			ns.Index(i).Set(reflect.New(elemType.Elem()))
		}
	}

	return ns
}

func setInMap(v reflect.Value, key any, segs []path.Segment, value any) (reflect.Value, error) {
	seg, rest := segs[0], segs[1:]

	if v.Kind() != reflect.Map {
		return reflect.Value{}, fmt.Errorf("%w: [%v] on %s", ErrNotAMap, seg, v.Type())
	}
	if v.IsNil() {
		v = reflect.MakeMap(v.Type())
	}

	kv, err := coerce.Assign(key, v.Type().Key())
	if err != nil {
		return reflect.Value{}, fmt.Errorf("key [%v]: %w", key, err)
	}

	elemType := v.Type().Elem()
	if len(rest) == 0 {
		val, err := finalValue(value, elemType)
		if err != nil {
			return reflect.Value{}, fmt.Errorf("key [%v]: %w", key, err)
		}
		v.SetMapIndex(kv, val)
		return v, nil
	}

	cur := v.MapIndex(kv)
	if !cur.IsValid() {
		cur = reflect.Zero(elemType)
	}

	child, err := childFor(cur, elemType, rest[0])
	if err != nil {
		return reflect.Value{}, fmt.Errorf("key [%v]: %w", key, err)
	}

	updated, err := setAt(child, rest, value)
	if err != nil {
		return reflect.Value{}, err
	}

	conformed, err := coerce.Assign(updated.Interface(), elemType)
	if err != nil {
		return reflect.Value{}, fmt.Errorf("key [%v]: %w", key, err)
	}
	v.SetMapIndex(kv, conformed)

	return v, nil
}

// childFor produces the container the next segment will descend into: the
// current value when it is usable, otherwise a fresh default appropriate
// for the declared type. Interface-typed destinations (untyped graphs) get
// a container chosen by the next segment's kind.
func childFor(cur reflect.Value, declared reflect.Type, next path.Segment) (reflect.Value, error) {
	c := cur
	for c.Kind() == reflect.Interface && !c.IsNil() {
		c = c.Elem()
	}
	if c.Kind() == reflect.Interface {
		c = reflect.Value{} // nil interface is an absent value
	}
	if c.IsValid() && !needsVivify(c) {
		return c, nil
	}

	if declared.Kind() == reflect.Interface {
		if next.Kind() == path.KindIndex {
			return reflect.MakeSlice(reflect.TypeOf([]any{}), 0, 0), nil
		}
		return reflect.MakeMap(reflect.TypeOf(map[string]any{})), nil
	}

	switch shape.Of(declared) {
	case shape.List:
		return reflect.MakeSlice(declared, 0, 0), nil
	case shape.Map:
		return reflect.MakeMap(declared), nil
	case shape.Bean:
		if declared.Kind() == reflect.Ptr {
			return reflect.New(declared.Elem()), nil
		}
		return reflect.Zero(declared), nil
	case shape.Array:
		return reflect.Zero(declared), nil
	default:
		return reflect.Value{}, fmt.Errorf("%w: %s", ErrCannotBuild, declared)
	}
}

// needsVivify reports whether the current value is an absent reference that
// must be replaced before descending.
func needsVivify(v reflect.Value) bool {
	switch v.Kind() {
	default:
		return false
	case reflect.Ptr, reflect.Map, reflect.Slice:
		return v.IsNil()
	}
}

// finalValue conforms the terminal value of a write to the destination
// type, parsing string sources into non-string destinations the same way
// the lenient property setter does.
func finalValue(value any, want reflect.Type) (reflect.Value, error) {
	text, isText := value.(string)
	if isText && want.Kind() != reflect.String && want.Kind() != reflect.Interface {
		return coerce.Value(text, want)
	}

	return coerce.Assign(value, want)
}
