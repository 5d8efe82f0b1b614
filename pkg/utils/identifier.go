package utils

import "strings"

// BacktickIdentifier adds backticks around an identifier, handling nested identifiers.
// It properly handles database.table.column style identifiers by backticking each part.
// The wildcard `*` is never quoted, neither on its own nor as the last segment of a
// qualified name.
//
// Examples:
//   - "table" -> "`table`"
//   - "database.table" -> "`database`.`table`"
//   - "db.schema.table" -> "`db`.`schema`.`table`"
//   - "`table`" -> "`table`" (already backticked, not double-backticked)
//   - "*" -> "*"
//   - "events.*" -> "`events`.*"
//   - "" -> ""
func BacktickIdentifier(name string) string {
	if name == "" || name == "*" {
		return name
	}

	// A single backticked identifier may legitimately contain dots.
	if IsBackticked(name) {
		return name
	}

	parts := strings.Split(name, ".")
	for i, part := range parts {
		if part == "*" || IsBackticked(part) {
			continue
		}
		parts[i] = "`" + part + "`"
	}
	return strings.Join(parts, ".")
}

// BacktickAlias formats an identifier with an optional alias.
//
// Examples:
//   - ("db.table", "") -> "`db`.`table`"
//   - ("db.table", "t") -> "`db`.`table` AS `t`"
func BacktickAlias(name, alias string) string {
	if alias == "" {
		return BacktickIdentifier(name)
	}
	return BacktickIdentifier(name) + " AS " + BacktickIdentifier(alias)
}

// IsBackticked checks if a string is already wrapped in backticks.
//
// Examples:
//   - "`table`" -> true
//   - "table" -> false
//   - "`db`.`table`" -> false (qualified name, not a single backticked identifier)
//   - "" -> false
func IsBackticked(s string) bool {
	return len(s) >= 2 && s[0] == '`' && s[len(s)-1] == '`' && !strings.Contains(s[1:len(s)-1], "`")
}
