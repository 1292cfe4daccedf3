package graph

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/specialistvlad/recalcgo/internal/config"
	"github.com/specialistvlad/recalcgo/internal/ctxlog"
	"github.com/specialistvlad/recalcgo/internal/depref"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testCtx returns a context with a discard logger so tests stay quiet.
func testCtx() context.Context {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return ctxlog.WithLogger(context.Background(), logger)
}

// decl builds a minimal declaration for a node depending on the given ids.
func decl(name string, depIDs ...string) *config.NodeDecl {
	refs := make([]depref.Ref, 0, len(depIDs))
	for _, id := range depIDs {
		refs = append(refs, depref.NamedNode(id))
	}
	return &config.NodeDecl{Name: name, Formula: "=" + name, Dependencies: refs}
}

func TestNew(t *testing.T) {
	g := New(Lookups{})
	require.NotNil(t, g)
	assert.Zero(t, g.Len())
	assert.Empty(t, g.DirtyNodes())
}

func TestSetNode(t *testing.T) {
	ctx := testCtx()

	t.Run("creates dirty node without cache", func(t *testing.T) {
		g := New(Lookups{})
		n := g.SetNode(ctx, decl("a"))
		require.NotNil(t, n)
		assert.Equal(t, "a", n.ID)
		assert.Equal(t, StatusDirty, n.Status)
		assert.Nil(t, n.CachedValue)
		assert.Equal(t, []string{"a"}, g.DirtyNodes())
	})

	t.Run("links edges both directions", func(t *testing.T) {
		g := New(Lookups{})
		g.SetNode(ctx, decl("x"))
		g.SetNode(ctx, decl("y", "x"))

		y, ok := g.Node("y")
		require.True(t, ok)
		assert.Contains(t, y.DependsOn, "x")

		x, ok := g.Node("x")
		require.True(t, ok)
		assert.Contains(t, x.DependedBy, "y")
	})

	t.Run("update preserves statistics and dirties dependents", func(t *testing.T) {
		g := New(Lookups{})
		g.SetNode(ctx, decl("x"))
		g.SetNode(ctx, decl("y", "x"))
		g.SetCached(ctx, "x", 1, 0)
		g.SetCached(ctx, "y", 2, 0)

		g.SetNode(ctx, &config.NodeDecl{Name: "x", Formula: "=2"})

		x, _ := g.Node("x")
		assert.Equal(t, StatusDirty, x.Status)
		assert.Equal(t, 1, x.EvalCount)
		assert.Equal(t, "=2", x.Formula)

		y, _ := g.Node("y")
		assert.Equal(t, StatusDirty, y.Status)
		assert.Nil(t, y.CachedValue)
	})

	t.Run("update replaces edges", func(t *testing.T) {
		g := New(Lookups{})
		g.SetNode(ctx, decl("a"))
		g.SetNode(ctx, decl("b"))
		g.SetNode(ctx, decl("c", "a"))

		g.SetNode(ctx, decl("c", "b"))

		c, _ := g.Node("c")
		assert.NotContains(t, c.DependsOn, "a")
		assert.Contains(t, c.DependsOn, "b")

		a, _ := g.Node("a")
		assert.NotContains(t, a.DependedBy, "c")
		b, _ := g.Node("b")
		assert.Contains(t, b.DependedBy, "c")
	})

	t.Run("late registration relinks earlier declarations", func(t *testing.T) {
		g := New(Lookups{})
		g.SetNode(ctx, decl("a", "b")) // b does not exist yet

		a, _ := g.Node("a")
		assert.Empty(t, a.DependsOn)

		g.SetNode(ctx, decl("b"))

		a, _ = g.Node("a")
		assert.Contains(t, a.DependsOn, "b")
		b, _ := g.Node("b")
		assert.Contains(t, b.DependedBy, "a")
	})
}

func TestRemoveNode(t *testing.T) {
	ctx := testCtx()

	t.Run("missing id reports failure", func(t *testing.T) {
		g := New(Lookups{})
		assert.False(t, g.RemoveNode(ctx, "nope"))
	})

	t.Run("leaves no dangling references", func(t *testing.T) {
		g := New(Lookups{})
		g.SetNode(ctx, decl("x"))
		g.SetNode(ctx, decl("y", "x"))
		g.SetNode(ctx, decl("z", "y"))

		require.True(t, g.RemoveNode(ctx, "y"))

		_, ok := g.Node("y")
		assert.False(t, ok)
		x, _ := g.Node("x")
		assert.NotContains(t, x.DependedBy, "y")
		z, _ := g.Node("z")
		assert.NotContains(t, z.DependsOn, "y")
	})

	t.Run("former dependents become dirty", func(t *testing.T) {
		g := New(Lookups{})
		g.SetNode(ctx, decl("x"))
		g.SetNode(ctx, decl("y", "x"))
		g.SetCached(ctx, "x", 1, 0)
		g.SetCached(ctx, "y", 2, 0)

		require.True(t, g.RemoveNode(ctx, "x"))

		y, _ := g.Node("y")
		assert.Equal(t, StatusDirty, y.Status)
	})

	t.Run("re-registration relinks former dependents", func(t *testing.T) {
		g := New(Lookups{})
		g.SetNode(ctx, decl("x"))
		g.SetNode(ctx, decl("y", "x"))
		require.True(t, g.RemoveNode(ctx, "x"))

		g.SetNode(ctx, decl("x"))

		y, _ := g.Node("y")
		assert.Contains(t, y.DependsOn, "x")
		x, _ := g.Node("x")
		assert.Contains(t, x.DependedBy, "y")
	})
}
