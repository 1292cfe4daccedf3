package graph

import (
	"testing"

	"github.com/specialistvlad/recalcgo/internal/config"
	"github.com/specialistvlad/recalcgo/internal/depref"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chain builds x <- y <- z (y depends on x, z depends on y) with all three clean.
func chain(t *testing.T) *Graph {
	t.Helper()
	ctx := testCtx()
	g := New(Lookups{})
	g.SetNode(ctx, decl("x"))
	g.SetNode(ctx, decl("y", "x"))
	g.SetNode(ctx, decl("z", "y"))
	g.SetCached(ctx, "x", 1, 0)
	g.SetCached(ctx, "y", 2, 0)
	g.SetCached(ctx, "z", 3, 0)
	require.Empty(t, g.DirtyNodes())
	return g
}

func TestMarkDirty(t *testing.T) {
	ctx := testCtx()

	t.Run("propagates to every transitive dependent", func(t *testing.T) {
		g := chain(t)
		g.MarkDirty(ctx, "x")
		assert.Equal(t, []string{"x", "y", "z"}, g.DirtyNodes())
		assert.False(t, g.IsCacheValid("y"))
		assert.False(t, g.IsCacheValid("z"))
	})

	t.Run("leaves unrelated nodes untouched", func(t *testing.T) {
		g := chain(t)
		g.SetNode(ctx, decl("other"))
		g.SetCached(ctx, "other", 9, 0)

		g.MarkDirty(ctx, "y")

		assert.Equal(t, []string{"y", "z"}, g.DirtyNodes())
		x, _ := g.Node("x")
		assert.Equal(t, StatusClean, x.Status)
		other, _ := g.Node("other")
		assert.Equal(t, StatusClean, other.Status)
	})

	t.Run("no-op when already dirty", func(t *testing.T) {
		g := chain(t)
		g.MarkDirty(ctx, "z")
		g.MarkDirty(ctx, "z")
		assert.Equal(t, []string{"z"}, g.DirtyNodes())
	})

	t.Run("unknown id is ignored", func(t *testing.T) {
		g := New(Lookups{})
		g.MarkDirty(ctx, "ghost")
		assert.Empty(t, g.DirtyNodes())
	})

	t.Run("cycle-safe and repeatable across calls", func(t *testing.T) {
		g := New(Lookups{})
		g.SetNode(ctx, decl("a", "b"))
		g.SetNode(ctx, decl("b", "a")) // a <-> b cycle

		g.MarkDirty(ctx, "a")
		assert.Equal(t, []string{"a", "b"}, g.DirtyNodes())

		// A later, independent propagation must not be suppressed by the
		// earlier call's visitation state.
		g.SetCached(ctx, "a", 1, 0)
		g.SetCached(ctx, "b", 2, 0)
		g.MarkDirty(ctx, "b")
		assert.Equal(t, []string{"a", "b"}, g.DirtyNodes())
	})
}

func TestMarkAllDirty(t *testing.T) {
	ctx := testCtx()
	g := chain(t)
	g.MarkAllDirty(ctx)
	assert.Equal(t, []string{"x", "y", "z"}, g.DirtyNodes())
	for _, id := range []string{"x", "y", "z"} {
		n, _ := g.Node(id)
		assert.Equal(t, StatusDirty, n.Status)
		assert.Nil(t, n.CachedValue)
	}
}

func TestClearVolatileCache(t *testing.T) {
	ctx := testCtx()
	g := New(Lookups{})
	g.SetNode(ctx, &config.NodeDecl{
		Name:         "now",
		Dependencies: []depref.Ref{depref.Volatile()},
	})
	g.SetNode(ctx, decl("stamp", "now"))
	g.SetNode(ctx, decl("plain"))
	g.SetCached(ctx, "now", 1, 0)
	g.SetCached(ctx, "stamp", 2, 0)
	g.SetCached(ctx, "plain", 3, 0)

	g.ClearVolatileCache(ctx)

	assert.Equal(t, []string{"now", "stamp"}, g.DirtyNodes())
	plain, _ := g.Node("plain")
	assert.Equal(t, StatusClean, plain.Status)
}
