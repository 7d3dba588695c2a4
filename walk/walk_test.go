package walk_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"beanpath/describe"
	"beanpath/path"
	"beanpath/walk"
)

type node struct {
	Label string
	Self  *node
	Next  *node
}

type team struct {
	Name    string
	Lead    *person
	Members []*person
}

type person struct {
	Name string
	Home address
}

type address struct {
	City string
}

func pathStrings(m *walk.PathMap) []string {
	out := make([]string, 0, m.Len())
	for _, e := range m.Entries() {
		out = append(out, e.Path.String())
	}
	return out
}

func TestCollectRootAtEmptyPath(t *testing.T) {
	n := &node{Label: "root"}
	m, err := walk.Collect(n, nil)
	require.NoError(t, err)

	require.Equal(t, 1, m.Len())
	assert.Equal(t, path.Empty, m.Entries()[0].Path)
	assert.Same(t, n, m.Entries()[0].Value)
}

func TestCollectLeafRoot(t *testing.T) {
	for _, root := range []any{42, "text", 1.5} {
		m, err := walk.Collect(root, nil)
		require.NoError(t, err)

		require.Equal(t, 1, m.Len(), "%T root", root)
		assert.Equal(t, path.Empty, m.Entries()[0].Path)
		assert.Equal(t, root, m.Entries()[0].Value)
	}
}

func TestCollectDistinctEmptySlices(t *testing.T) {
	// Zero-size allocations all share one address; both fields must
	// still be listed.
	type bag struct {
		A []int
		B []int
	}

	m, err := walk.Collect(&bag{A: make([]int, 0), B: make([]int, 0)}, nil)
	require.NoError(t, err)

	assert.Equal(t, []string{"", "A", "B"}, pathStrings(m))
}

func TestCollectCycleSafety(t *testing.T) {
	a := &node{Label: "a"}
	a.Self = a

	m, err := walk.Collect(a, nil)
	require.NoError(t, err)

	require.Equal(t, 1, m.Len(), "self-referencing bean appears exactly once")
	got, ok := m.At(a)
	require.True(t, ok)
	assert.Equal(t, path.Empty, got)
}

func TestCollectLongerCycle(t *testing.T) {
	a := &node{Label: "a"}
	b := &node{Label: "b"}
	a.Next, b.Next = b, a

	m, err := walk.Collect(a, nil)
	require.NoError(t, err)

	assert.Equal(t, []string{"", "Next"}, pathStrings(m))
}

func TestCollectFirstPathWins(t *testing.T) {
	shared := &person{Name: "sam"}
	tm := &team{Name: "core", Lead: shared, Members: []*person{shared}}

	m, err := walk.Collect(tm, nil)
	require.NoError(t, err)

	got, ok := m.At(shared)
	require.True(t, ok)
	assert.Equal(t, "Lead", got.String(), "Lead precedes Members in declaration order")
}

func TestCollectContainers(t *testing.T) {
	tm := &team{
		Name: "infra",
		Members: []*person{
			{Name: "kim", Home: address{City: "Oslo"}},
			{Name: "lee"},
		},
	}

	m, err := walk.Collect(tm, nil)
	require.NoError(t, err)

	assert.Equal(t, []string{
		"",
		"Members",
		"Members[0]",
		"Members[0].Home",
		"Members[1]",
		"Members[1].Home",
	}, pathStrings(m))
}

func TestCollectMapsSortedAndFiltered(t *testing.T) {
	root := map[string]any{
		"b": map[string]any{"x": 1},
		"a": []any{"leaf", map[string]any{}},
	}

	m, err := walk.Collect(root, nil)
	require.NoError(t, err)

	assert.Equal(t, []string{
		"",
		"[a]",
		"[a][1]",
		"[b]",
	}, pathStrings(m))
}

func TestCollectSkipsUnsuitableMapKeys(t *testing.T) {
	type oddKey struct{ A, B int }
	root := map[any]any{
		oddKey{1, 2}: map[string]any{"unreachable": 1},
		"good":       map[string]any{},
	}

	m, err := walk.Collect(root, nil)
	require.NoError(t, err)

	assert.Equal(t, []string{"", "[good]"}, pathStrings(m))
}

func TestCollectPredicateFiltering(t *testing.T) {
	shared := &person{Name: "p"}
	tm := &team{Lead: shared, Members: []*person{shared}}

	rejectLead := func(owner any, prop describe.Property) bool {
		return prop.Name != "Lead"
	}

	m, err := walk.Collect(tm, rejectLead)
	require.NoError(t, err)

	for _, p := range m.Paths() {
		assert.NotContains(t, p.String(), "Lead")
	}

	got, ok := m.At(shared)
	require.True(t, ok, "object stays reachable via the permitted property")
	assert.Equal(t, "Members[0]", got.String())
}

func TestCollectLeavesAreNotRecursed(t *testing.T) {
	type bag struct {
		Name    string
		Count   int
		Signal  chan int
		Handler func()
	}

	m, err := walk.Collect(&bag{Signal: make(chan int)}, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, m.Len())
}

func TestCollectNilRoot(t *testing.T) {
	_, err := walk.Collect(nil, nil)
	assert.ErrorIs(t, err, walk.ErrNilRoot)
}

func ExampleCollect() {
	tm := &team{
		Name:    "demo",
		Lead:    &person{Name: "ada"},
		Members: []*person{{Name: "bob"}},
	}

	m, _ := walk.Collect(tm, nil)
	for _, p := range m.Paths() {
		fmt.Printf("%q\n", p.String())
	}
	// Output:
	// ""
	// "Lead"
	// "Lead.Home"
	// "Members"
	// "Members[0]"
	// "Members[0].Home"
}
