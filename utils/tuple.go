package utils

// Second discards the first of two values, narrowing a two-value call
// inline.
func Second[T any](_ any, t T) T { return t }

// Unpack2 returns the first two elements of a slice, zero-filling
// whatever is missing.
func Unpack2[Slice ~[]T, T any](s Slice) (first T, second T) {
	if len(s) > 0 {
		first = s[0]
	}
	if len(s) > 1 {
		second = s[1]
	}
	return
}
