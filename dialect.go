package sqlforge

import (
	"fmt"
	"strings"
	"time"
)

// Dialect represents supported database dialects
// This type is shared across all packages
type Dialect string

const (
	DialectPostgres Dialect = "postgres"
	DialectMySQL    Dialect = "mysql"
	DialectSQLite   Dialect = "sqlite"
	DialectMariaDB  Dialect = "mariadb"
)

// LikeSide selects where wildcard characters are inserted around a LIKE pattern.
type LikeSide int

const (
	LikeExact LikeSide = iota
	LikeRight          // value%
	LikeLeft           // %value
	LikeBoth           // %value%
)

// Engine is the dialect capability consumed by the translation engine.
// It covers everything that differs between databases at the text level:
// identifier quoting, literal syntax and paging rewrite.
type Engine interface {
	Dialect() Dialect

	EscapeIdentifier(name string) string
	BoolLiteral(v bool) string
	DateLiteral(t time.Time) string
	DateTimeLiteral(t time.Time) string
	DateIntervalLiteral(d time.Duration) string

	// EscapeLike escapes LIKE metacharacters in value and inserts wildcards
	// according to side. The result is a bare pattern, not yet quoted.
	EscapeLike(value string, side LikeSide) string

	// ApplyLimit rewrites sql to return at most limit rows starting at offset.
	// A negative limit or offset means "not set".
	ApplyLimit(sql string, limit, offset int) string
}

// EngineFor returns the Engine implementation for the given dialect.
func EngineFor(dialect Dialect) (Engine, error) {
	switch dialect {
	case DialectPostgres:
		return postgresEngine{}, nil
	case DialectMySQL, DialectMariaDB:
		return mysqlEngine{dialect: dialect}, nil
	case DialectSQLite:
		return sqliteEngine{}, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownDialect, dialect)
	}
}

// baseEngine carries the dialect-independent parts of Engine.
type baseEngine struct{}

func (baseEngine) DateLiteral(t time.Time) string {
	return "'" + t.Format("2006-01-02") + "'"
}

func (baseEngine) DateTimeLiteral(t time.Time) string {
	return "'" + t.Format("2006-01-02 15:04:05") + "'"
}

func (baseEngine) EscapeLike(value string, side LikeSide) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	escaped := r.Replace(value)
	switch side {
	case LikeRight:
		return escaped + "%"
	case LikeLeft:
		return "%" + escaped
	case LikeBoth:
		return "%" + escaped + "%"
	default:
		return escaped
	}
}

type postgresEngine struct{ baseEngine }

func (postgresEngine) Dialect() Dialect { return DialectPostgres }

func (postgresEngine) EscapeIdentifier(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

func (postgresEngine) BoolLiteral(v bool) string {
	if v {
		return "TRUE"
	}
	return "FALSE"
}

func (postgresEngine) DateIntervalLiteral(d time.Duration) string {
	return fmt.Sprintf("INTERVAL '%d seconds'", int64(d.Seconds()))
}

func (e postgresEngine) ApplyLimit(sql string, limit, offset int) string {
	if Capabilities[DialectPostgres][FeatureFetchFirst] && offset >= 0 {
		sql += fmt.Sprintf(" OFFSET %d ROWS", offset)
		if limit >= 0 {
			sql += fmt.Sprintf(" FETCH FIRST %d ROWS ONLY", limit)
		}
		return sql
	}
	if limit >= 0 {
		sql += fmt.Sprintf(" LIMIT %d", limit)
	}
	if offset >= 0 {
		sql += fmt.Sprintf(" OFFSET %d", offset)
	}
	return sql
}

type mysqlEngine struct {
	baseEngine
	dialect Dialect
}

func (e mysqlEngine) Dialect() Dialect { return e.dialect }

func (mysqlEngine) EscapeIdentifier(name string) string {
	return "`" + strings.ReplaceAll(name, "`", "``") + "`"
}

func (mysqlEngine) BoolLiteral(v bool) string {
	if v {
		return "1"
	}
	return "0"
}

func (mysqlEngine) DateIntervalLiteral(d time.Duration) string {
	return fmt.Sprintf("INTERVAL %d SECOND", int64(d.Seconds()))
}

func (mysqlEngine) ApplyLimit(sql string, limit, offset int) string {
	// MySQL has no OFFSET without LIMIT; use the documented huge-limit idiom.
	switch {
	case limit >= 0 && offset >= 0:
		return fmt.Sprintf("%s LIMIT %d, %d", sql, offset, limit)
	case limit >= 0:
		return fmt.Sprintf("%s LIMIT %d", sql, limit)
	case offset >= 0:
		return fmt.Sprintf("%s LIMIT %d, 18446744073709551615", sql, offset)
	default:
		return sql
	}
}

type sqliteEngine struct{ baseEngine }

func (sqliteEngine) Dialect() Dialect { return DialectSQLite }

func (sqliteEngine) EscapeIdentifier(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

func (sqliteEngine) BoolLiteral(v bool) string {
	if v {
		return "1"
	}
	return "0"
}

func (sqliteEngine) DateIntervalLiteral(d time.Duration) string {
	return fmt.Sprintf("'%d seconds'", int64(d.Seconds()))
}

func (sqliteEngine) ApplyLimit(sql string, limit, offset int) string {
	if limit < 0 && offset >= 0 {
		// SQLite requires LIMIT before OFFSET; -1 disables the limit.
		return fmt.Sprintf("%s LIMIT -1 OFFSET %d", sql, offset)
	}
	if limit >= 0 {
		sql += fmt.Sprintf(" LIMIT %d", limit)
	}
	if offset >= 0 {
		sql += fmt.Sprintf(" OFFSET %d", offset)
	}
	return sql
}
