package sqlforge

import (
	"errors"
	"testing"
	"time"

	"github.com/alecthomas/assert/v2"
)

func TestEngineForUnknownDialect(t *testing.T) {
	_, err := EngineFor("oracle")
	assert.True(t, errors.Is(err, ErrUnknownDialect))
}

func TestIdentifierQuoting(t *testing.T) {
	for _, tc := range []struct {
		dialect  Dialect
		name     string
		expected string
	}{
		{DialectPostgres, "user name", `"user name"`},
		{DialectPostgres, `we"ird`, `"we""ird"`},
		{DialectMySQL, "user name", "`user name`"},
		{DialectMySQL, "back`tick", "`back``tick`"},
		{DialectSQLite, "col", `"col"`},
	} {
		engine, err := EngineFor(tc.dialect)
		assert.NoError(t, err)
		assert.Equal(t, tc.expected, engine.EscapeIdentifier(tc.name))
	}
}

func TestBoolLiterals(t *testing.T) {
	pg, _ := EngineFor(DialectPostgres)
	my, _ := EngineFor(DialectMySQL)

	assert.Equal(t, "TRUE", pg.BoolLiteral(true))
	assert.Equal(t, "FALSE", pg.BoolLiteral(false))
	assert.Equal(t, "1", my.BoolLiteral(true))
	assert.Equal(t, "0", my.BoolLiteral(false))
}

func TestDateLiterals(t *testing.T) {
	engine, _ := EngineFor(DialectPostgres)
	ts := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	assert.Equal(t, "'2026-01-02'", engine.DateLiteral(ts))
	assert.Equal(t, "'2026-01-02 03:04:05'", engine.DateTimeLiteral(ts))
}

func TestEscapeLike(t *testing.T) {
	engine, _ := EngineFor(DialectPostgres)

	for _, tc := range []struct {
		side     LikeSide
		expected string
	}{
		{LikeExact, `a\%b\_c`},
		{LikeRight, `a\%b\_c%`},
		{LikeLeft, `%a\%b\_c`},
		{LikeBoth, `%a\%b\_c%`},
	} {
		assert.Equal(t, tc.expected, engine.EscapeLike("a%b_c", tc.side))
	}
}

func TestApplyLimitPostgres(t *testing.T) {
	engine, _ := EngineFor(DialectPostgres)

	assert.Equal(t, "SELECT 1 OFFSET 5 ROWS FETCH FIRST 10 ROWS ONLY", engine.ApplyLimit("SELECT 1", 10, 5))
	assert.Equal(t, "SELECT 1 LIMIT 10", engine.ApplyLimit("SELECT 1", 10, -1))
	assert.Equal(t, "SELECT 1 OFFSET 5 ROWS", engine.ApplyLimit("SELECT 1", -1, 5))
}

func TestApplyLimitMySQL(t *testing.T) {
	engine, _ := EngineFor(DialectMySQL)

	assert.Equal(t, "SELECT 1 LIMIT 5, 10", engine.ApplyLimit("SELECT 1", 10, 5))
	assert.Equal(t, "SELECT 1 LIMIT 10", engine.ApplyLimit("SELECT 1", 10, -1))
	assert.Equal(t, "SELECT 1 LIMIT 5, 18446744073709551615", engine.ApplyLimit("SELECT 1", -1, 5))
	assert.Equal(t, "SELECT 1", engine.ApplyLimit("SELECT 1", -1, -1))
}

func TestApplyLimitSQLite(t *testing.T) {
	engine, _ := EngineFor(DialectSQLite)

	assert.Equal(t, "SELECT 1 LIMIT 10 OFFSET 5", engine.ApplyLimit("SELECT 1", 10, 5))
	assert.Equal(t, "SELECT 1 LIMIT -1 OFFSET 5", engine.ApplyLimit("SELECT 1", -1, 5))
}

func TestDriverEscaping(t *testing.T) {
	pg, err := DriverFor(DialectPostgres)
	assert.NoError(t, err)
	my, err := DriverFor(DialectMySQL)
	assert.NoError(t, err)
	lite, err := DriverFor(DialectSQLite)
	assert.NoError(t, err)

	assert.Equal(t, "it''s", pg.EscapeText("it's"))
	assert.Equal(t, `a\\b''c`, my.EscapeText(`a\b'c`))
	assert.Equal(t, "it''s", lite.EscapeText("it's"))

	assert.Equal(t, `'\xdeadbeef'`, pg.EscapeBinary([]byte{0xde, 0xad, 0xbe, 0xef}))
	assert.Equal(t, "x'00ff'", my.EscapeBinary([]byte{0x00, 0xff}))
	assert.Equal(t, "X'00ff'", lite.EscapeBinary([]byte{0x00, 0xff}))
}

func TestCapabilities(t *testing.T) {
	assert.True(t, Capabilities[DialectPostgres][FeatureFetchFirst])
	assert.False(t, Capabilities[DialectMySQL][FeatureFetchFirst])
	assert.True(t, Capabilities[DialectMySQL][FeatureBacktickQuote])
	assert.True(t, Capabilities[DialectMariaDB][FeatureReturning])
	assert.False(t, Capabilities[DialectMySQL][FeatureReturning])
}
