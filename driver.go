package sqlforge

import (
	"encoding/hex"
	"strings"
)

// Driver is the escaping capability normally provided by a database client
// library. Values pass through here exactly once, on their way into a literal.
type Driver interface {
	// EscapeText escapes the body of a string literal. The result is bare,
	// without surrounding quotes.
	EscapeText(s string) string
	// EscapeBinary renders a blob as a complete literal, quotes included.
	EscapeBinary(b []byte) string
}

// DriverFor returns the Driver implementation matching the dialect.
func DriverFor(dialect Dialect) (Driver, error) {
	switch dialect {
	case DialectPostgres:
		return postgresDriver{}, nil
	case DialectMySQL, DialectMariaDB:
		return mysqlDriver{}, nil
	case DialectSQLite:
		return sqliteDriver{}, nil
	default:
		return nil, ErrUnknownDialect
	}
}

type postgresDriver struct{}

func (postgresDriver) EscapeText(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}

func (postgresDriver) EscapeBinary(b []byte) string {
	return `'\x` + hex.EncodeToString(b) + "'"
}

type mysqlDriver struct{}

func (mysqlDriver) EscapeText(s string) string {
	// MySQL treats backslash as an escape character inside string literals.
	if !strings.ContainsAny(s, `'\`) {
		return s
	}
	s = strings.ReplaceAll(s, `\`, `\\`)
	return strings.ReplaceAll(s, "'", "''")
}

func (mysqlDriver) EscapeBinary(b []byte) string {
	return "x'" + hex.EncodeToString(b) + "'"
}

type sqliteDriver struct{}

func (sqliteDriver) EscapeText(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}

func (sqliteDriver) EscapeBinary(b []byte) string {
	return "X'" + hex.EncodeToString(b) + "'"
}
