package describe

import (
	"fmt"
	"reflect"
	"sort"

	"beanpath/coerce"
)

// SetProperties writes every entry of the value map onto the bean. Strict:
// a name with no matching writable property is an error, never skipped.
// No value coercion is applied; each value must conform to the property
// type as-is. Entries are applied in name order, so a failing batch always
// fails on the same entry.
func SetProperties(bean any, values map[string]any) error {
	rv, d, err := writableBean(bean)
	if err != nil {
		return err
	}

	names := make([]string, 0, len(values))
	for name := range values {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		p, ok := d.Property(name)
		if !ok {
			return fmt.Errorf("%w: %q on %s", ErrPropertyNotFound, name, d.Type)
		}

		value, err := coerce.Assign(values[name], p.Type)
		if err != nil {
			return fmt.Errorf("property %q on %s: %w", name, d.Type, err)
		}

		if err := d.Write(rv, p, value); err != nil {
			return err
		}
	}

	return nil
}

// SetPropertiesWithCoercion writes the value map onto the bean leniently: it
// iterates the bean's own writable properties and applies those present in
// the map, parsing string sources into non-string property types. Map
// entries that match no writable property are ignored; a failed coercion is
// still an error, never a dropped value.
func SetPropertiesWithCoercion(bean any, values map[string]any) error {
	rv, d, err := writableBean(bean)
	if err != nil {
		return err
	}

	for _, p := range d.Properties() {
		if !p.CanWrite {
			continue
		}

		raw, ok := values[p.Name]
		if !ok {
			continue
		}

		var value reflect.Value
		if text, isText := raw.(string); isText && p.Type.Kind() != reflect.String {
			value, err = coerce.Value(text, p.Type)
		} else {
			value, err = coerce.Assign(raw, p.Type)
		}
		if err != nil {
			return fmt.Errorf("property %q on %s: %w", p.Name, d.Type, err)
		}

		if err := d.Write(rv, p, value); err != nil {
			return err
		}
	}

	return nil
}

func writableBean(bean any) (reflect.Value, *Descriptor, error) {
	rv := reflect.ValueOf(bean)
	if rv.Kind() != reflect.Ptr || rv.IsNil() {
		return reflect.Value{}, nil, fmt.Errorf("%w: need a non-nil bean pointer, got %T", ErrNotABean, bean)
	}

	d, err := For(rv.Type())
	if err != nil {
		return reflect.Value{}, nil, err
	}

	return rv, d, nil
}
