package params_test

import (
	"testing"

	"github.com/pseudomuto/chbuilder/pkg/params"
	"github.com/stretchr/testify/require"
)

func TestFromPlaceholder(t *testing.T) {
	tests := []struct {
		name  string
		input string
		pName string
		pType string
		ok    bool
	}{
		{name: "simple", input: "{p0:UInt8}", pName: "p0", pType: "UInt8", ok: true},
		{name: "underscore name", input: "{_user_id:UInt64}", pName: "_user_id", pType: "UInt64", ok: true},
		{name: "parametric type", input: "{ids:Array(UInt32)}", pName: "ids", pType: "Array(UInt32)", ok: true},
		{name: "nested type", input: "{v:Array(Nullable(String))}", pName: "v", pType: "Array(Nullable(String))", ok: true},
		{name: "numeric type arg", input: "{s:FixedString(16)}", pName: "s", pType: "FixedString(16)", ok: true},
		{name: "missing braces", input: "p0:UInt8", ok: false},
		{name: "missing type", input: "{p0:}", ok: false},
		{name: "name starting with digit", input: "{0p:UInt8}", ok: false},
		{name: "space in type", input: "{p0:Map(String, UInt8)}", ok: false},
		{name: "underscore in type", input: "{p0:U_Int8}", ok: false},
		{name: "trailing text", input: "{p0:UInt8} AND", ok: false},
		{name: "empty", input: "", ok: false},
		{name: "plain column", input: "`id`", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, ok := params.FromPlaceholder(tt.input)
			require.Equal(t, tt.ok, ok)
			if !tt.ok {
				require.Nil(t, p)
				return
			}

			require.Equal(t, tt.pName, p.Name)
			require.Equal(t, tt.pType, p.Type)
			require.Nil(t, p.Value)
		})
	}
}

func TestPlaceholderRoundTrip(t *testing.T) {
	values := []any{true, 42, 70000, -5, 1.25, "purchase", nil, []int{1, 2}, []string{}, [][]int{{1}}}

	for _, value := range values {
		p := params.New("value", value)
		parsed, ok := params.FromPlaceholder(p.Placeholder())
		require.True(t, ok, p.Placeholder())
		require.Equal(t, p.Name, parsed.Name)
		require.Equal(t, p.Type, parsed.Type)
	}
}

func TestNewTyped(t *testing.T) {
	p := params.NewTyped("id", 42, "UInt64")
	require.Equal(t, "{id:UInt64}", p.Placeholder())

	p = params.NewTyped("id", 42, "")
	require.Equal(t, "{id:UInt8}", p.String())
}
