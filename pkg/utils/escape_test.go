package utils_test

import (
	"testing"

	"github.com/pseudomuto/chbuilder/pkg/utils"
	"github.com/stretchr/testify/require"
)

func TestQuoteString(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "plain", input: "value", expected: "'value'"},
		{name: "empty", input: "", expected: "''"},
		{name: "apostrophe", input: "it's", expected: `'it\'s'`},
		{name: "backslash", input: `C:\tmp`, expected: `'C:\\tmp'`},
		{name: "escaped apostrophe", input: `\'`, expected: `'\\\''`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.expected, utils.QuoteString(tt.input))
		})
	}
}

func TestIsNumeric(t *testing.T) {
	require.True(t, utils.IsNumeric(42))
	require.True(t, utils.IsNumeric(uint8(1)))
	require.True(t, utils.IsNumeric(int64(-7)))
	require.True(t, utils.IsNumeric(1.5))
	require.True(t, utils.IsNumeric(float32(2)))
	require.False(t, utils.IsNumeric("42"))
	require.False(t, utils.IsNumeric(true))
	require.False(t, utils.IsNumeric(nil))
	require.False(t, utils.IsNumeric([]int{1}))
}

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		name     string
		input    any
		expected string
	}{
		{name: "int", input: 42, expected: "42"},
		{name: "negative int", input: int8(-5), expected: "-5"},
		{name: "uint64", input: uint64(18446744073709551615), expected: "18446744073709551615"},
		{name: "float", input: -1.5, expected: "-1.5"},
		{name: "large float", input: 1e6, expected: "1000000"},
		{name: "float32", input: float32(0.25), expected: "0.25"},
		{name: "not a number", input: "42", expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.expected, utils.FormatNumber(tt.input))
		})
	}
}
