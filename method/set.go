package method

import (
	"fmt"
	"path"
	"reflect"
	"runtime"
	"strings"

	"beanpath/utils"
)

// Set is an ordered registry of free functions grouped by name,
// emulating overloaded methods. Lookup walks candidates in registration
// order and takes the first whose signature accepts the arguments, so
// an ambiguous call (for example a nil argument matching several
// overloads) resolves deterministically by registration order.
type Set struct {
	entries []entry
}

type entry struct {
	name string
	fn   reflect.Value
}

// Register adds fn under its own name, recovered from the runtime
// symbol table. Methods and closures carry decorated symbol names; use
// RegisterAs for those.
func (s *Set) Register(fn any) (string, error) {
	fnVal := reflect.ValueOf(fn)
	if fnVal.Kind() != reflect.Func {
		return "", fmt.Errorf("%w: %T", ErrNotAFunction, fn)
	}

	fnPC := runtime.FuncForPC(fnVal.Pointer())
	qualified := utils.Second(path.Split(fnPC.Name()))
	name := utils.Second(utils.Unpack2(strings.SplitN(qualified, ".", 2)))
	name = strings.TrimSuffix(name, "-fm")

	return name, s.RegisterAs(name, fn)
}

// RegisterAs adds fn under an explicit name.
func (s *Set) RegisterAs(name string, fn any) error {
	fnVal := reflect.ValueOf(fn)
	if fnVal.Kind() != reflect.Func {
		return fmt.Errorf("%w: %T", ErrNotAFunction, fn)
	}

	s.entries = append(s.entries, entry{name: name, fn: fnVal})
	return nil
}

// Find returns the first registered function with the given name whose
// signature accepts the arguments.
func (s *Set) Find(name string, args ...any) (Callable, error) {
	for _, e := range s.entries {
		if e.name != name {
			continue
		}
		if compatible(e.fn.Type(), args) {
			return Callable{Name: name, fn: e.fn}, nil
		}
	}

	return Callable{}, fmt.Errorf("%w: %q with %d argument(s)", ErrNoMethod, name, len(args))
}

// Names lists the distinct registered names in first-seen order.
func (s *Set) Names() []string {
	seen := make(map[string]struct{}, len(s.entries))
	out := make([]string, 0, len(s.entries))
	for _, e := range s.entries {
		if _, ok := seen[e.name]; ok {
			continue
		}
		seen[e.name] = struct{}{}
		out = append(out, e.name)
	}
	return out
}
