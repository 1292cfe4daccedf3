package depref

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	t.Run("field reference", func(t *testing.T) {
		ref, err := Parse("field:amount")
		require.NoError(t, err)
		assert.Equal(t, Ref{Kind: KindField, Name: "amount"}, ref)
	})

	t.Run("entity reference", func(t *testing.T) {
		ref, err := Parse("entity:sales")
		require.NoError(t, err)
		assert.Equal(t, Ref{Kind: KindEntity, Name: "sales"}, ref)
	})

	t.Run("entity field reference", func(t *testing.T) {
		ref, err := Parse("entity:sales.total")
		require.NoError(t, err)
		assert.Equal(t, Ref{Kind: KindEntityField, Name: "sales", Field: "total"}, ref)
	})

	t.Run("named node reference keeps id verbatim", func(t *testing.T) {
		ref, err := Parse("node:sheet1.revenue[0]")
		require.NoError(t, err)
		assert.Equal(t, Ref{Kind: KindNamedNode, Name: "sheet1.revenue[0]"}, ref)
	})

	t.Run("volatile marker", func(t *testing.T) {
		ref, err := Parse("volatile")
		require.NoError(t, err)
		assert.Equal(t, KindVolatile, ref.Kind)
	})

	t.Run("error cases", func(t *testing.T) {
		cases := map[string]string{
			"empty":              "",
			"no prefix":          "amount",
			"empty reference":    "field:",
			"unknown kind":       "column:amount",
			"bad field name":     "field:9amount",
			"bad entity path":    "entity:sales.total.extra",
			"entity empty field": "entity:sales.",
		}
		for name, raw := range cases {
			t.Run(name, func(t *testing.T) {
				_, err := Parse(raw)
				assert.Error(t, err)
			})
		}
	})
}

func TestParseAll(t *testing.T) {
	refs, err := ParseAll([]string{"field:amount", "node:tax_rate", "volatile"})
	require.NoError(t, err)
	require.Len(t, refs, 3)
	assert.Equal(t, KindField, refs[0].Kind)
	assert.Equal(t, KindNamedNode, refs[1].Kind)
	assert.Equal(t, KindVolatile, refs[2].Kind)

	_, err = ParseAll([]string{"field:amount", "bogus"})
	assert.Error(t, err)

	refs, err = ParseAll(nil)
	require.NoError(t, err)
	assert.Nil(t, refs)
}

func TestRefString(t *testing.T) {
	for _, raw := range []string{
		"field:amount",
		"entity:sales",
		"entity:sales.total",
		"node:tax_rate",
		"volatile",
	} {
		ref, err := Parse(raw)
		require.NoError(t, err)
		assert.Equal(t, raw, ref.String())
	}
}
