// Package path models symbolic locations inside an object graph as ordered
// sequences of segments: bean property names, list indices and map keys.
// Paths are immutable and totally ordered; the order is length-first, then
// segment-by-segment, which callers rely on to sequence batched writes.
package path

import (
	"fmt"
	"math"
	"strings"

	"beanpath/utils"
)

// Empty is the zero-length path, addressing the root object itself.
var Empty = Path{}

// Path is an immutable sequence of segments. The zero value is Empty.
type Path struct {
	segs []Segment
}

// Of builds a path from the given parts. A string becomes a name segment,
// an int an index segment, a Segment passes through unchanged, and any other
// basic comparable value becomes a map-key segment. Nil parts and values of
// unstable kinds are rejected.
func Of(parts ...any) (Path, error) {
	segs := make([]Segment, 0, len(parts))

	for i, part := range parts {
		seg, err := asSegment(part)
		if err != nil {
			return Empty, fmt.Errorf("segment %d: %w", i, err)
		}
		segs = append(segs, seg)
	}

	return Path{segs: segs}, nil
}

// MustOf is Of for statically known segments; it panics on invalid parts.
func MustOf(parts ...any) Path {
	p, err := Of(parts...)
	if err != nil {
		panic(err)
	}
	return p
}

func asSegment(part any) (Segment, error) {
	switch v := part.(type) {
	case nil:
		return Segment{}, ErrNilSegment
	case Segment:
		if v.Kind() == KindInvalid {
			return Segment{}, ErrUnknownShape
		}
		return v, nil
	case string:
		if v == "" {
			return Segment{}, ErrEmptyName
		}
		return Name(v), nil
	case int:
		if !utils.IsInRange(0, v, math.MaxInt) {
			return Segment{}, fmt.Errorf("%w: %d", ErrNegative, v)
		}
		return Index(v), nil
	default:
		return Key(part)
	}
}

// With appends one segment and returns the extended path. The receiver is
// never modified and shares no mutable state with the result.
func (p Path) With(part any) Path {
	seg, err := asSegment(part)
	if err != nil {
		panic(err)
	}

	// The capped slice expression forces append to reallocate.
	return Path{segs: append(p.segs[:len(p.segs):len(p.segs)], seg)}
}

func (p Path) Len() int { return len(p.segs) }

func (p Path) IsEmpty() bool { return len(p.segs) == 0 }

// At returns the i-th segment.
func (p Path) At(i int) Segment { return p.segs[i] }

// Last returns the final segment, or the zero Segment for Empty.
func (p Path) Last() Segment {
	if len(p.segs) == 0 {
		return Segment{}
	}
	return p.segs[len(p.segs)-1]
}

// Parent returns the path without its final segment.
func (p Path) Parent() Path {
	if len(p.segs) == 0 {
		return Empty
	}
	return Path{segs: p.segs[:len(p.segs)-1:len(p.segs)-1]}
}

// Segments returns a copy of the segment sequence.
func (p Path) Segments() []Segment {
	out := make([]Segment, len(p.segs))
	copy(out, p.segs)
	return out
}

func (p Path) Equal(o Path) bool {
	return p.Compare(o) == 0
}

// Compare orders paths length-first: a shorter path sorts before any longer
// one, and equal-length paths compare segment by segment.
func (p Path) Compare(o Path) int {
	if len(p.segs) != len(o.segs) {
		if len(p.segs) < len(o.segs) {
			return -1
		}
		return 1
	}

	for i := range p.segs {
		if c := compareSegments(p.segs[i], o.segs[i]); c != 0 {
			return c
		}
	}

	return 0
}

// String renders the path in dotted/bracketed form, e.g. "persons[0].name".
// Empty renders as "".
func (p Path) String() string {
	var sb strings.Builder

	for i, seg := range p.segs {
		switch seg.Kind() {
		case KindName:
			if i > 0 {
				sb.WriteByte('.')
			}
			sb.WriteString(seg.Name())
		default:
			sb.WriteByte('[')
			sb.WriteString(seg.String())
			sb.WriteByte(']')
		}
	}

	return sb.String()
}
