package coerce_test

import (
	"fmt"
	"reflect"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"beanpath/coerce"
)

type level string

type priority int

func TestValueBasicKinds(t *testing.T) {
	cases := []struct {
		text   string
		target any
		want   any
	}{
		{"42", int(0), int(42)},
		{"-7", int16(0), int16(-7)},
		{"255", uint8(0), uint8(255)},
		{"3.25", float64(0), float64(3.25)},
		{"true", false, true},
		{"yes", false, true},
		{"off", false, false},
		{"hello", "", "hello"},
		{"warn", level(""), level("warn")},
		{"3", priority(0), priority(3)},
		{"90s", time.Duration(0), 90 * time.Second},
	}

	for _, c := range cases {
		got, err := coerce.Value(c.text, reflect.TypeOf(c.target))
		require.NoError(t, err, "%q -> %T", c.text, c.target)
		assert.Equal(t, c.want, got.Interface())
	}
}

func TestValueTime(t *testing.T) {
	got, err := coerce.Value("2024-05-01T10:30:00Z", reflect.TypeOf(time.Time{}))
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 5, 1, 10, 30, 0, 0, time.UTC), got.Interface())
}

func TestValueFailures(t *testing.T) {
	_, err := coerce.Value("not-a-number", reflect.TypeFor[int]())
	assert.Error(t, err)

	_, err = coerce.Value("x", reflect.TypeFor[struct{ A int }]())
	assert.ErrorIs(t, err, coerce.ErrNoParser)

	_, err = coerce.Value("99999", reflect.TypeFor[int8]())
	assert.Error(t, err, "overflow must surface")
}

func TestRegisterCustomParser(t *testing.T) {
	type color struct{ R, G, B uint8 }

	coerce.Register(reflect.TypeFor[color](), func(text string) (any, error) {
		var c color
		_, err := fmt.Sscanf(text, "%d,%d,%d", &c.R, &c.G, &c.B)
		return c, err
	})

	got, err := coerce.Value("1,2,3", reflect.TypeFor[color]())
	require.NoError(t, err)
	assert.Equal(t, color{1, 2, 3}, got.Interface())

	_, err = coerce.Value("nope", reflect.TypeFor[color]())
	assert.Error(t, err)
}

func TestAssign(t *testing.T) {
	got, err := coerce.Assign(7, reflect.TypeFor[int64]())
	require.NoError(t, err)
	assert.Equal(t, int64(7), got.Interface())

	got, err = coerce.Assign("warn", reflect.TypeFor[level]())
	require.NoError(t, err)
	assert.Equal(t, level("warn"), got.Interface())

	got, err = coerce.Assign(nil, reflect.TypeFor[*int]())
	require.NoError(t, err)
	assert.True(t, got.IsNil())

	_, err = coerce.Assign(nil, reflect.TypeFor[int]())
	assert.ErrorIs(t, err, coerce.ErrIncompatible)

	_, err = coerce.Assign(65, reflect.TypeFor[string]())
	assert.ErrorIs(t, err, coerce.ErrIncompatible, "no rune reinterpretation")
}
