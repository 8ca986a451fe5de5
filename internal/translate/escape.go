package translate

import "strings"

// EscapeLiteral doubles every single quote in s for use inside a SQL
// string literal.
func EscapeLiteral(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}

// QuoteLiteral wraps s in single quotes with proper escaping.
func QuoteLiteral(s string) string {
	return "'" + EscapeLiteral(s) + "'"
}

// QuoteIdentifier wraps s in double quotes, doubling embedded double quotes.
func QuoteIdentifier(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}
