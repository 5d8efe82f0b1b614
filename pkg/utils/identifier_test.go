package utils_test

import (
	"testing"

	"github.com/pseudomuto/chbuilder/pkg/utils"
	"github.com/stretchr/testify/require"
)

func TestBacktickIdentifier(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "simple identifier",
			input:    "table",
			expected: "`table`",
		},
		{
			name:     "qualified identifier with two parts",
			input:    "database.table",
			expected: "`database`.`table`",
		},
		{
			name:     "qualified identifier with three parts",
			input:    "database.table.column",
			expected: "`database`.`table`.`column`",
		},
		{
			name:     "already backticked simple identifier",
			input:    "`table`",
			expected: "`table`",
		},
		{
			name:     "partially backticked qualified identifier",
			input:    "`database`.table",
			expected: "`database`.`table`",
		},
		{
			name:     "empty string",
			input:    "",
			expected: "",
		},
		{
			name:     "wildcard",
			input:    "*",
			expected: "*",
		},
		{
			name:     "qualified wildcard",
			input:    "events.*",
			expected: "`events`.*",
		},
		{
			name:     "identifier with special characters",
			input:    "table-name",
			expected: "`table-name`",
		},
		{
			name:     "identifier with dots in backticks",
			input:    "`db.table`",
			expected: "`db.table`",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.expected, utils.BacktickIdentifier(tt.input))
		})
	}
}

func TestBacktickAlias(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		alias    string
		expected string
	}{
		{
			name:     "without alias",
			input:    "db.table",
			expected: "`db`.`table`",
		},
		{
			name:     "with alias",
			input:    "db.table.column",
			alias:    "c",
			expected: "`db`.`table`.`column` AS `c`",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.expected, utils.BacktickAlias(tt.input, tt.alias))
		})
	}
}

func TestIsBackticked(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected bool
	}{
		{
			name:     "backticked identifier",
			input:    "`table`",
			expected: true,
		},
		{
			name:     "not backticked",
			input:    "table",
			expected: false,
		},
		{
			name:     "qualified backticked identifier",
			input:    "`database`.`table`",
			expected: false,
		},
		{
			name:     "single backtick",
			input:    "`",
			expected: false,
		},
		{
			name:     "just two backticks",
			input:    "``",
			expected: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.expected, utils.IsBackticked(tt.input))
		})
	}
}
