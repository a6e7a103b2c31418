package translate

import (
	"errors"
	"testing"
	"time"

	"github.com/alecthomas/assert/v2"

	"github.com/sqlforge/sqlforge"
)

func TestBacktickIdentifier(t *testing.T) {
	tr := newTestTranslator(t)

	sql, err := tr.Translate("SELECT `user name` FROM t")
	assert.NoError(t, err)
	assert.Equal(t, `SELECT "user name" FROM t`, sql)
}

func TestBracketIdentifier(t *testing.T) {
	tr := newTestTranslator(t)

	sql, err := tr.Translate("SELECT [user name] FROM [app.users]")
	assert.NoError(t, err)
	assert.Equal(t, `SELECT "user name" FROM "app"."users"`, sql)
}

func TestQuotedStringsAreReescaped(t *testing.T) {
	tr := newTestTranslator(t)

	// Doubled-quote escapes are decoded and the body re-escaped through the
	// active driver, so both quoting styles converge on single quotes.
	sql, err := tr.Translate("SELECT 'it''s', \"o'clock\", \"he said \"\"hi\"\"\"")
	assert.NoError(t, err)
	assert.Equal(t, `SELECT 'it''s', 'o''clock', 'he said "hi"'`, sql)
}

func TestAloneQuoteIsAnError(t *testing.T) {
	tr := newTestTranslator(t)

	_, err := tr.Translate("SELECT 'oops FROM t")
	assert.True(t, errors.Is(err, sqlforge.ErrAloneQuote))
}

func TestSubstitution(t *testing.T) {
	tr := newTestTranslator(t, WithResolver(MapResolver{"table": "app_users"}))

	sql, err := tr.Translate("SELECT * FROM :table: WHERE active")
	assert.NoError(t, err)
	assert.Equal(t, "SELECT * FROM app_users WHERE active", sql)
}

func TestSubstitutionMissing(t *testing.T) {
	tr := newTestTranslator(t)

	_, err := tr.Translate("SELECT * FROM :table:")
	assert.True(t, errors.Is(err, sqlforge.ErrSubstitutionNotFound))
}

func TestPlaceholderSplicesInPlace(t *testing.T) {
	tr := newTestTranslator(t)

	sql, err := tr.Translate("WHERE a = ? AND b = ?", 1, "x")
	assert.NoError(t, err)
	assert.Equal(t, "WHERE a = 1 AND b = 'x'", sql)
}

func TestLikeModifierInFragment(t *testing.T) {
	tr := newTestTranslator(t)

	sql, err := tr.Translate("WHERE name LIKE %~like~", "Jo")
	assert.NoError(t, err)
	assert.Equal(t, "WHERE name LIKE '%Jo%'", sql)
}

func TestLongestModifierTagWins(t *testing.T) {
	tr := newTestTranslator(t)
	ts := time.Date(2026, 8, 30, 13, 45, 0, 0, time.UTC)

	sql, err := tr.Translate("WHERE created < %dt", ts)
	assert.NoError(t, err)
	assert.Equal(t, "WHERE created < '2026-08-30 13:45:00'", sql)
}

func TestUnknownModifierTag(t *testing.T) {
	tr := newTestTranslator(t)

	_, err := tr.Translate("SELECT %zz", 1)
	assert.True(t, errors.Is(err, sqlforge.ErrUnknownModifier))
}

func TestUnknownModifierStillConsumesArgument(t *testing.T) {
	tr := newTestTranslator(t)

	// The argument after a bad tag is consumed, so later placeholders keep
	// their positions.
	_, err := tr.Translate("SELECT %zz, ?", 1, 2)
	var terr *TranslationError
	assert.True(t, errors.As(err, &terr))
	assert.Equal(t, "SELECT , 2", terr.SQL)
}

func TestLimitAcceptsNumericString(t *testing.T) {
	tr := newTestTranslator(t)

	sql, err := tr.Translate("SELECT * FROM t %lmt %ofs", "10", "5")
	assert.NoError(t, err)
	assert.Equal(t, "SELECT * FROM t OFFSET 5 ROWS FETCH FIRST 10 ROWS ONLY", sql)
}

func TestLimitRejectsNonNumericArgument(t *testing.T) {
	tr := newTestTranslator(t)

	_, err := tr.Translate("SELECT 1 %lmt", "ten")
	assert.True(t, errors.Is(err, sqlforge.ErrTypeMismatch))

	_, err = tr.Translate("SELECT 1 %ofs", []any{5})
	assert.True(t, errors.Is(err, sqlforge.ErrTypeMismatch))
}
