// Package query executes translated SQL against a live database. The
// translation engine only produces text; everything connection-shaped lives
// here, behind database/sql.
package query

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	_ "github.com/go-sql-driver/mysql" // MySQL driver
	_ "github.com/jackc/pgx/v5/stdlib" // PostgreSQL driver
	_ "github.com/mattn/go-sqlite3"    // SQLite driver

	"github.com/sqlforge/sqlforge"
	"github.com/sqlforge/sqlforge/translate"
)

// Error definitions
var (
	ErrDatabaseConnection  = errors.New("database connection failed")
	ErrQueryExecution      = errors.New("query execution failed")
	ErrInvalidOutputFormat = errors.New("invalid output format")
	ErrDangerousQuery      = errors.New("dangerous query detected")
)

// NormalizeDriverName maps dialect-ish names onto registered sql drivers.
func NormalizeDriverName(driver string) string {
	switch strings.ToLower(strings.TrimSpace(driver)) {
	case "postgres", "postgresql", "pgx":
		return "pgx"
	case "mysql", "mariadb":
		return "mysql"
	case "sqlite", "sqlite3":
		return "sqlite3"
	default:
		return strings.ToLower(strings.TrimSpace(driver))
	}
}

// DialectFromDriver maps a sql driver name back to the translation dialect.
func DialectFromDriver(driver string) sqlforge.Dialect {
	switch NormalizeDriverName(driver) {
	case "pgx":
		return sqlforge.DialectPostgres
	case "mysql":
		return sqlforge.DialectMySQL
	default:
		return sqlforge.DialectSQLite
	}
}

// Open connects to the database named by driver and connection string.
func Open(driver, connection string) (*sql.DB, error) {
	db, err := sql.Open(NormalizeDriverName(driver), connection)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDatabaseConnection, err)
	}
	return db, nil
}

// QueryResult represents the result of a query execution
type QueryResult struct {
	SQL      string        `json:"sql"`
	Duration time.Duration `json:"duration"`
	Columns  []string      `json:"columns"`
	Rows     [][]any       `json:"rows"`
	Count    int           `json:"count"`
	Affected int64         `json:"affected,omitempty"`
}

// Options contains execution options.
type Options struct {
	Timeout time.Duration
	MaxRows int

	// ExecuteDangerousQuery permits UPDATE/DELETE without a WHERE clause.
	ExecuteDangerousQuery bool
}

// Executor runs translated argument lists against one database handle.
type Executor struct {
	db         *sql.DB
	translator *translate.Translator
	options    Options
}

// NewExecutor creates an executor over an open handle.
func NewExecutor(db *sql.DB, translator *translate.Translator, options Options) *Executor {
	return &Executor{db: db, translator: translator, options: options}
}

// Query translates the argument list and runs it, collecting rows.
func (e *Executor) Query(ctx context.Context, args ...any) (*QueryResult, error) {
	sqlText, err := e.translator.Translate(args...)
	if err != nil {
		return nil, err
	}
	return e.QuerySQL(ctx, sqlText)
}

// QuerySQL runs an already-translated statement.
func (e *Executor) QuerySQL(ctx context.Context, sqlText string) (*QueryResult, error) {
	if err := e.checkDangerous(sqlText); err != nil {
		return nil, err
	}

	ctx, cancel := e.withTimeout(ctx)
	defer cancel()

	start := time.Now()
	rows, err := e.db.QueryContext(ctx, sqlText)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrQueryExecution, err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrQueryExecution, err)
	}

	result := &QueryResult{SQL: sqlText, Columns: columns}
	for rows.Next() {
		if e.options.MaxRows > 0 && result.Count >= e.options.MaxRows {
			break
		}
		values := make([]any, len(columns))
		scan := make([]any, len(columns))
		for i := range values {
			scan[i] = &values[i]
		}
		if err := rows.Scan(scan...); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrQueryExecution, err)
		}
		for i, v := range values {
			if b, ok := v.([]byte); ok {
				values[i] = string(b)
			}
		}
		result.Rows = append(result.Rows, values)
		result.Count++
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrQueryExecution, err)
	}

	result.Duration = time.Since(start)

	return result, nil
}

// Exec translates and executes a statement that returns no rows.
func (e *Executor) Exec(ctx context.Context, args ...any) (*QueryResult, error) {
	sqlText, err := e.translator.Translate(args...)
	if err != nil {
		return nil, err
	}
	if err := e.checkDangerous(sqlText); err != nil {
		return nil, err
	}

	ctx, cancel := e.withTimeout(ctx)
	defer cancel()

	start := time.Now()
	res, err := e.db.ExecContext(ctx, sqlText)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrQueryExecution, err)
	}

	affected, _ := res.RowsAffected()

	return &QueryResult{SQL: sqlText, Duration: time.Since(start), Affected: affected}, nil
}

func (e *Executor) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if e.options.Timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, e.options.Timeout)
}

// checkDangerous rejects UPDATE/DELETE statements without a WHERE clause
// unless explicitly permitted.
func (e *Executor) checkDangerous(sqlText string) error {
	if e.options.ExecuteDangerousQuery {
		return nil
	}
	upper := strings.ToUpper(strings.TrimSpace(sqlText))
	if !strings.HasPrefix(upper, "UPDATE") && !strings.HasPrefix(upper, "DELETE") {
		return nil
	}
	if !strings.Contains(upper, " WHERE ") {
		return fmt.Errorf("%w: %s without WHERE", ErrDangerousQuery, strings.Fields(upper)[0])
	}
	return nil
}
