package method_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"beanpath/method"
)

type counter struct {
	n int
}

func (c counter) Value() int { return c.n }
func (c *counter) Add(d int) { c.n += d }
func (c *counter) Fail()     { panic("boom") }

func (c counter) Sum(ds ...int) int {
	total := c.n
	for _, d := range ds {
		total += d
	}
	return total
}

func TestFindOnValueAndPointer(t *testing.T) {
	c := &counter{n: 2}

	callable, err := method.Find(c, "Add", 3)
	require.NoError(t, err)

	_, err = callable.Invoke(3)
	require.NoError(t, err)
	assert.Equal(t, 5, c.n)

	callable, err = method.Find(*c, "Value")
	require.NoError(t, err)
	out, err := callable.Invoke()
	require.NoError(t, err)
	assert.Equal(t, []any{5}, out)
}

func TestFindPointerMethodOnValue(t *testing.T) {
	// Resolution boxes the value; the mutation lands on the copy.
	c := counter{n: 1}
	callable, err := method.Find(c, "Add", 1)
	require.NoError(t, err)

	_, err = callable.Invoke(1)
	require.NoError(t, err)
	assert.Equal(t, 1, c.n)
}

func TestFindVariadic(t *testing.T) {
	c := counter{n: 10}

	for _, args := range [][]any{{}, {1}, {1, 2, 3}} {
		callable, err := method.Find(c, "Sum", args...)
		require.NoError(t, err)

		out, err := callable.Invoke(args...)
		require.NoError(t, err)
		want := 10
		for _, a := range args {
			want += a.(int)
		}
		assert.Equal(t, want, out[0])
	}

	_, err := method.Find(c, "Sum", "not an int")
	assert.ErrorIs(t, err, method.ErrNoMethod)
}

func TestFindRejections(t *testing.T) {
	c := counter{}

	_, err := method.Find(c, "Missing")
	assert.ErrorIs(t, err, method.ErrNoMethod)

	_, err = method.Find(c, "Add", "two")
	assert.ErrorIs(t, err, method.ErrNoMethod, "argument type mismatch")

	_, err = method.Find(c, "Value", 1)
	assert.ErrorIs(t, err, method.ErrNoMethod, "arity mismatch")

	_, err = method.Find(nil, "Value")
	assert.ErrorIs(t, err, method.ErrNoMethod)
}

func TestInvokeConvenience(t *testing.T) {
	c := &counter{n: 3}

	out, err := method.Invoke(c, "Value")
	require.NoError(t, err)
	assert.Equal(t, []any{3}, out)

	_, err = method.Invoke(c, "Missing")
	assert.ErrorIs(t, err, method.ErrNoMethod)
}

func TestInvokeRecoversPanic(t *testing.T) {
	callable, err := method.Find(&counter{}, "Fail")
	require.NoError(t, err)

	_, err = callable.Invoke()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "boom")
}

func Describe(v fmt.Stringer) string { return "stringer:" + v.String() }

func TestSetRegisterRecoversName(t *testing.T) {
	var s method.Set

	name, err := s.Register(Describe)
	require.NoError(t, err)
	assert.Equal(t, "Describe", name)

	_, err = s.Register(42)
	assert.ErrorIs(t, err, method.ErrNotAFunction)
}

func TestSetOverloadResolution(t *testing.T) {
	var s method.Set
	require.NoError(t, s.RegisterAs("Format", func(v int) string { return fmt.Sprintf("int:%d", v) }))
	require.NoError(t, s.RegisterAs("Format", func(v string) string { return "str:" + v }))
	require.NoError(t, s.RegisterAs("Format", func(v *strings.Builder) string { return "builder" }))
	require.NoError(t, s.RegisterAs("Format", func(v []byte) string { return "bytes" }))

	callable, err := s.Find("Format", 7)
	require.NoError(t, err)
	out, err := callable.Invoke(7)
	require.NoError(t, err)
	assert.Equal(t, "int:7", out[0])

	callable, err = s.Find("Format", "x")
	require.NoError(t, err)
	out, err = callable.Invoke("x")
	require.NoError(t, err)
	assert.Equal(t, "str:x", out[0])

	// nil matches both the pointer and the slice overload; the first
	// registered one wins.
	callable, err = s.Find("Format", nil)
	require.NoError(t, err)
	out, err = callable.Invoke(nil)
	require.NoError(t, err)
	assert.Equal(t, "builder", out[0])

	_, err = s.Find("Format", 1.5)
	assert.ErrorIs(t, err, method.ErrNoMethod)

	_, err = s.Find("Missing")
	assert.ErrorIs(t, err, method.ErrNoMethod)

	assert.Equal(t, []string{"Format"}, s.Names())
}
