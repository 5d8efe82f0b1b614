package params_test

import (
	"testing"
	"time"

	"github.com/pseudomuto/chbuilder/pkg/params"
	"github.com/stretchr/testify/require"
)

func TestRegistry_Auto(t *testing.T) {
	reg := params.NewRegistry()

	p0 := reg.Auto(42)
	p1 := reg.Auto("purchase")
	p2 := reg.Auto(false)

	require.Equal(t, "{p0:UInt8}", p0.Placeholder())
	require.Equal(t, "{p1:String}", p1.Placeholder())
	require.Equal(t, "{p2:UInt8}", p2.Placeholder())
	require.True(t, p0.Auto)
	require.Equal(t, 3, reg.Len())
	require.Equal(t, map[string]any{"p0": 42, "p1": "purchase", "p2": "0"}, reg.Bindings())
}

func TestRegistry_AutoSkipsTakenNames(t *testing.T) {
	reg := params.NewRegistry()
	reg.Bind("p0", "explicit")

	p := reg.Auto(1)
	require.Equal(t, "p1", p.Name)
}

func TestRegistry_Bind(t *testing.T) {
	reg := params.NewRegistry()

	p := reg.Bind("id", 42)
	require.Equal(t, "UInt8", p.Type)

	// Upserts keep the same instance so existing placeholders stay valid.
	same := reg.Bind("id", 70000)
	require.Same(t, p, same)
	require.Equal(t, "UInt32", p.Type)
	require.Equal(t, 1, reg.Len())

	typed := reg.BindTyped("id", 1, "UInt64")
	require.Same(t, p, typed)
	require.Equal(t, "UInt64", p.Type)

	// Explicit types survive later untyped binds.
	reg.Bind("id", 2)
	require.Equal(t, "UInt64", p.Type)
	require.Equal(t, 2, p.Value)
}

func TestRegistry_BindKeepsPlaceholderType(t *testing.T) {
	reg := params.NewRegistry()

	shell, ok := params.FromPlaceholder("{user_id:UInt64}")
	require.True(t, ok)
	reg.Add(shell)

	reg.Bind("user_id", 5)
	require.Equal(t, "{user_id:UInt64}", shell.Placeholder())
	require.Equal(t, map[string]any{"user_id": 5}, reg.Bindings())
}

func TestRegistry_Add(t *testing.T) {
	reg := params.NewRegistry()
	p := params.New("status", "active")

	require.Same(t, p, reg.Add(p))
	require.Same(t, p, reg.Add(p))

	replacement := params.New("status", "archived")
	require.Same(t, p, reg.Add(replacement))
	require.Equal(t, "archived", p.Value)
	require.Equal(t, 1, reg.Len())
}

func TestRegistry_Merge(t *testing.T) {
	parent := params.NewRegistry()
	parent.Auto(1)
	parent.Bind("shared", "parent")

	child := params.NewRegistry()
	c0 := child.Auto("a")
	c1 := child.Auto("b")
	child.Bind("shared", "child")
	child.Bind("only_child", 3.5)

	parent.Merge(child)

	require.Equal(t, "p1", c0.Name)
	require.Equal(t, "p2", c1.Name)
	require.Equal(t, map[string]any{
		"p0":         1,
		"p1":         "a",
		"p2":         "b",
		"shared":     "child",
		"only_child": 3.5,
	}, parent.Bindings())

	names := make([]string, 0, parent.Len())
	for _, p := range parent.Parameters() {
		names = append(names, p.Name)
	}
	require.Equal(t, []string{"p0", "shared", "p1", "p2", "only_child"}, names)

	// Merging into itself or from nil is a no-op.
	parent.Merge(parent)
	parent.Merge(nil)
	require.Equal(t, 5, parent.Len())
}

func TestRegistry_MergeRenamesExplicitNamesHeldByAutoParameters(t *testing.T) {
	parent := params.NewRegistry()
	p0 := parent.Auto(7)

	child := params.NewRegistry()
	named := child.Bind("p0", "paid")

	parent.Merge(child)

	require.Equal(t, "p0", p0.Name)
	require.Equal(t, "p1", named.Name)
	require.Equal(t, map[string]any{"p0": 7, "p1": "paid"}, parent.Bindings())

	// Explicit names held by explicit parameters are still upserted.
	other := params.NewRegistry()
	other.Bind("p1", "refunded")
	parent.Merge(other)
	require.Equal(t, 2, parent.Len())
	require.Equal(t, "refunded", named.Value)
}

func TestRegistry_Clear(t *testing.T) {
	reg := params.NewRegistry()
	reg.Auto(1)
	reg.Bind("x", 2)

	reg.Clear()
	require.Zero(t, reg.Len())
	require.Empty(t, reg.Bindings())
	require.Equal(t, "p0", reg.Auto(3).Name)
}

func TestRegistry_Strings(t *testing.T) {
	reg := params.NewRegistry()
	reg.Bind("flag", true)
	reg.Bind("count", 42)
	reg.Bind("ratio", 0.5)
	reg.Bind("name", "it's")
	reg.Bind("ids", []int{1, 2})
	reg.Bind("tags", []string{"a", "b'c"})
	reg.Bind("missing", nil)
	reg.Bind("at", time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC))

	require.Equal(t, map[string]string{
		"flag":    "1",
		"count":   "42",
		"ratio":   "0.5",
		"name":    "it's",
		"ids":     "[1,2]",
		"tags":    `['a','b\'c']`,
		"missing": `\N`,
		"at":      "2024-01-02 03:04:05",
	}, reg.Strings())

	values := reg.HTTPValues()
	require.Equal(t, "42", values.Get("param_count"))
	require.Equal(t, "[1,2]", values.Get("param_ids"))
	require.Empty(t, values.Get("count"))
}
