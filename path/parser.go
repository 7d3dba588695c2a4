package path

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	ErrEmptyPath  = errors.New("empty path")
	ErrBadSyntax  = errors.New("invalid path syntax")
	ErrNoBracket  = errors.New("unterminated bracket")
	ErrEmptyIndex = errors.New("empty bracket")
)

// Parse parses the textual form produced by Path.String.
// Supported syntax:
//   - spec.template.spec
//   - containers[0]
//   - labels[app] (non-numeric bracket content is a string map key)
//   - env[2].name
func Parse(pathStr string) (Path, error) {
	if pathStr == "" {
		return Empty, ErrEmptyPath
	}

	var segs []Segment
	rest := pathStr
	first := true

	for rest != "" {
		switch {
		case rest[0] == '[':
			end := strings.IndexByte(rest, ']')
			if end < 0 {
				return Empty, fmt.Errorf("%w in %q", ErrNoBracket, pathStr)
			}

			seg, err := parseBracket(rest[1:end])
			if err != nil {
				return Empty, fmt.Errorf("%q: %w", pathStr, err)
			}

			segs = append(segs, seg)
			rest = rest[end+1:]

		case rest[0] == '.':
			if first {
				return Empty, fmt.Errorf("%w: %q starts with '.'", ErrBadSyntax, pathStr)
			}

			rest = rest[1:]
			if rest == "" || rest[0] == '.' || rest[0] == '[' {
				return Empty, fmt.Errorf("%w: dangling '.' in %q", ErrBadSyntax, pathStr)
			}

		default:
			end := strings.IndexAny(rest, ".[")
			if end < 0 {
				end = len(rest)
			}

			name := rest[:end]
			if strings.ContainsRune(name, ']') {
				return Empty, fmt.Errorf("%w: stray ']' in %q", ErrBadSyntax, pathStr)
			}

			segs = append(segs, Name(name))
			rest = rest[end:]
		}

		first = false
	}

	return Path{segs: segs}, nil
}

// parseBracket interprets bracket content: a non-negative integer is a list
// index, anything else is a string map key.
func parseBracket(content string) (Segment, error) {
	if content == "" {
		return Segment{}, ErrEmptyIndex
	}

	if idx, err := strconv.Atoi(content); err == nil {
		if idx < 0 {
			return Segment{}, fmt.Errorf("%w: %d", ErrNegative, idx)
		}
		return Index(idx), nil
	}

	return Key(content)
}
