package utils

import "strings"

var stringEscaper = strings.NewReplacer(`\`, `\\`, `'`, `\'`)

// EscapeString escapes backslashes and single quotes with a backslash, which is the
// only escaping style used in compiled statements.
//
// Examples:
//   - "it's" -> "it\'s"
//   - `C:\tmp` -> `C:\\tmp`
func EscapeString(s string) string {
	return stringEscaper.Replace(s)
}

// QuoteString wraps an escaped string in single quotes.
//
// Examples:
//   - "value" -> "'value'"
//   - "it's" -> "'it\'s'"
func QuoteString(s string) string {
	return "'" + EscapeString(s) + "'"
}
