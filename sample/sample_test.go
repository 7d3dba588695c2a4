package sample_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"beanpath/mutate"
	"beanpath/sample"
	"beanpath/walk"
)

func TestGraphWalk(t *testing.T) {
	g := sample.Graph()

	m, err := walk.Collect(g, nil)
	require.NoError(t, err)

	got, ok := m.At(g.Referrer)
	require.True(t, ok)
	assert.Equal(t, "Referrer", got.String())

	// The referral cycle closes back on the root; nothing repeats.
	paths := make([]string, 0, m.Len())
	for _, p := range m.Paths() {
		paths = append(paths, p.String())
	}
	// uuid.UUID is a byte array, so ID properties show up as list bases.
	assert.Equal(t, []string{
		"",
		"ID",
		"Address",
		"Orders",
		"Orders[0]",
		"Orders[0].ID",
		"Orders[0].Lines",
		"Orders[0].Lines[0]",
		"Orders[0].Lines[1]",
		"Orders[0].Tags",
		"Referrer",
		"Referrer.ID",
		"Referrer.Address",
	}, paths)
}

func TestGraphMutation(t *testing.T) {
	g := sample.Graph()

	err := mutate.ApplyValues(g, map[string]any{
		"Orders[0].Status":        "shipped",
		"Orders[0].Lines[2].SKU":  "nut-5",
		"Orders[0].Tags[express]": "true",
		"Balance":                 "2000",
		"Referrer.Email":          "bob@shop.example",
	})
	require.NoError(t, err)

	assert.Equal(t, sample.StatusShipped, g.Orders[0].Status)
	require.Len(t, g.Orders[0].Lines, 3)
	assert.Equal(t, "nut-5", g.Orders[0].Lines[2].SKU)
	assert.Equal(t, "true", g.Orders[0].Tags["express"])
	assert.Equal(t, int64(2000), g.Balance())
	assert.Equal(t, "bob@shop.example", g.Referrer.Email)
}

func TestUUIDCoercion(t *testing.T) {
	g := sample.Graph()

	err := mutate.ApplyValues(g, map[string]any{
		"Orders[0].ID": "99999999-9999-4999-8999-999999999999",
	})
	require.NoError(t, err)
	assert.Equal(t, uuid.MustParse("99999999-9999-4999-8999-999999999999"), g.Orders[0].ID)

	err = mutate.ApplyValues(g, map[string]any{"ID": "not-a-uuid"})
	assert.Error(t, err)
}

func TestGetThroughAccessors(t *testing.T) {
	g := sample.Graph()

	got, err := mutate.GetString(g, "Referrer.Referrer.Name")
	require.NoError(t, err)
	assert.Equal(t, "Ada", got, "cycle resolves back to the root")

	got, err = mutate.GetString(g, "Balance")
	require.NoError(t, err)
	assert.Equal(t, int64(1200), got)
}
