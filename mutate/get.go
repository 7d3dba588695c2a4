package mutate

import (
	"errors"
	"fmt"
	"reflect"

	"beanpath/describe"
	"beanpath/path"
)

var ErrNoValue = errors.New("no value at path")

// Get resolves a path against the root graph read-only and returns the
// value found there. Nothing is vivified: any missing intermediate is an
// error. The empty path returns the root itself.
func Get(root any, p path.Path) (any, error) {
	cur := reflect.ValueOf(root)

	for i, seg := range p.Segments() {
		next, err := step(cur, seg)
		if err != nil {
			return nil, fmt.Errorf("at %q: %w", prefix(p, i+1), err)
		}
		cur = next
	}

	if !cur.IsValid() {
		return nil, nil
	}
	return cur.Interface(), nil
}

// GetString is Get for textual paths.
func GetString(root any, text string) (any, error) {
	p, err := path.Parse(text)
	if err != nil {
		return nil, fmt.Errorf("path %q: %w", text, err)
	}
	return Get(root, p)
}

func step(cur reflect.Value, seg path.Segment) (reflect.Value, error) {
	for cur.Kind() == reflect.Interface || cur.Kind() == reflect.Ptr {
		if cur.IsNil() {
			return reflect.Value{}, fmt.Errorf("%w: nil on the way", ErrNoValue)
		}
		cur = cur.Elem()
	}
	if !cur.IsValid() {
		return reflect.Value{}, ErrNoValue
	}

	switch seg.Kind() {
	case path.KindName:
		if cur.Kind() == reflect.Map {
			return mapEntry(cur, seg.Name())
		}

		d, err := describe.For(cur.Type())
		if err != nil {
			return reflect.Value{}, err
		}

		p, ok := d.Property(seg.Name())
		if !ok {
			return reflect.Value{}, fmt.Errorf("%w: %q on %s", describe.ErrPropertyNotFound, seg.Name(), d.Type)
		}
		return d.Read(cur, p)

	case path.KindIndex:
		switch cur.Kind() {
		default:
			return reflect.Value{}, fmt.Errorf("%w: [%d] on %s", ErrNotAList, seg.Index(), cur.Type())
		case reflect.Slice, reflect.Array:
		}

		if seg.Index() >= cur.Len() {
			return reflect.Value{}, fmt.Errorf("%w: index %d, length %d", ErrNoValue, seg.Index(), cur.Len())
		}
		return cur.Index(seg.Index()), nil

	case path.KindKey:
		return mapEntry(cur, seg.Key())

	default:
		return reflect.Value{}, errors.New("invalid segment")
	}
}

func mapEntry(cur reflect.Value, key any) (reflect.Value, error) {
	if cur.Kind() != reflect.Map {
		return reflect.Value{}, fmt.Errorf("%w: [%v] on %s", ErrNotAMap, key, cur.Type())
	}

	kv := reflect.ValueOf(key)
	if !kv.Type().AssignableTo(cur.Type().Key()) {
		if !kv.Type().ConvertibleTo(cur.Type().Key()) {
			return reflect.Value{}, fmt.Errorf("%w: key %v", ErrNoValue, key)
		}
		kv = kv.Convert(cur.Type().Key())
	}

	out := cur.MapIndex(kv)
	if !out.IsValid() {
		return reflect.Value{}, fmt.Errorf("%w: key %v", ErrNoValue, key)
	}
	return out, nil
}

func prefix(p path.Path, n int) path.Path {
	out := path.Empty
	for i := 0; i < n && i < p.Len(); i++ {
		out = out.With(p.At(i))
	}
	return out
}
