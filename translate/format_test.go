package translate

import (
	"errors"
	"testing"
	"time"

	"github.com/alecthomas/assert/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/sqlforge/sqlforge"
)

func TestFormatString(t *testing.T) {
	tr := newTestTranslator(t)

	for _, tc := range []struct {
		name     string
		value    any
		mod      Modifier
		expected string
	}{
		{"plain", "hello", ModString, "'hello'"},
		{"quote escaped", "it's", ModString, "'it''s'"},
		{"null passthrough", nil, ModString, "NULL"},
		{"number to string", 42, ModString, "'42'"},
		{"sN empty", "", ModStringNull, "NULL"},
		{"sN zero", 0, ModStringNull, "NULL"},
		{"sN value", "x", ModStringNull, "'x'"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			got, err := tr.FormatValue(tc.value, tc.mod)
			assert.NoError(t, err)
			assert.Equal(t, tc.expected, got)
		})
	}
}

func TestFormatInteger(t *testing.T) {
	tr := newTestTranslator(t)

	for _, tc := range []struct {
		name     string
		value    any
		mod      Modifier
		expected string
	}{
		{"int", 5, ModInt, "5"},
		{"negative", -5, ModInt, "-5"},
		{"unsigned", uint64(18446744073709551615), ModUint, "18446744073709551615"},
		{"numeric string passthrough", "123456789012345678901234567890", ModInt, "123456789012345678901234567890"},
		{"iN zero", 0, ModIntNull, "NULL"},
		{"iN empty string", "", ModIntNull, "NULL"},
		{"iN nil", nil, ModIntNull, "NULL"},
		{"iN value", 7, ModIntNull, "7"},
		{"whole float", 3.0, ModInt, "3"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			got, err := tr.FormatValue(tc.value, tc.mod)
			assert.NoError(t, err)
			assert.Equal(t, tc.expected, got)
		})
	}
}

func TestFormatIntegerErrors(t *testing.T) {
	tr := newTestTranslator(t)

	_, err := tr.FormatValue("abc", ModInt)
	assert.True(t, errors.Is(err, sqlforge.ErrTypeMismatch))

	_, err = tr.FormatValue(-1, ModUint)
	assert.True(t, errors.Is(err, sqlforge.ErrTypeMismatch))

	_, err = tr.FormatValue(1.5, ModInt)
	assert.True(t, errors.Is(err, sqlforge.ErrTypeMismatch))

	_, err = tr.FormatValue(1e300, ModInt)
	assert.True(t, errors.Is(err, sqlforge.ErrNumericOverflow))
}

func TestFormatFloatTrimsTrailingZeros(t *testing.T) {
	tr := newTestTranslator(t)

	got, err := tr.FormatValue(1.230000000, ModFloat)
	assert.NoError(t, err)
	assert.Equal(t, "1.23", got)

	got, err = tr.FormatValue(2.000000000, ModFloat)
	assert.NoError(t, err)
	assert.Equal(t, "2", got)

	got, err = tr.FormatValue("0.500", ModFloat)
	assert.NoError(t, err)
	assert.Equal(t, "0.5", got)
}

func TestFormatBool(t *testing.T) {
	tr := newTestTranslator(t)

	got, err := tr.FormatValue(true, ModBool)
	assert.NoError(t, err)
	assert.Equal(t, "TRUE", got)

	got, err = tr.FormatValue(0, ModBool)
	assert.NoError(t, err)
	assert.Equal(t, "FALSE", got)
}

func TestFormatDate(t *testing.T) {
	tr := newTestTranslator(t)
	ts := time.Date(2026, 8, 30, 13, 45, 0, 0, time.UTC)

	got, err := tr.FormatValue(ts, ModDate)
	assert.NoError(t, err)
	assert.Equal(t, "'2026-08-30'", got)

	got, err = tr.FormatValue(ts, ModDateTime)
	assert.NoError(t, err)
	assert.Equal(t, "'2026-08-30 13:45:00'", got)
}

func TestFormatIdentifiers(t *testing.T) {
	tr := newTestTranslator(t)

	got, err := tr.FormatValue("users.name", ModName)
	assert.NoError(t, err)
	assert.Equal(t, `"users"."name"`, got)

	// %N never splits on dots.
	got, err = tr.FormatValue("users.name", ModNameRaw)
	assert.NoError(t, err)
	assert.Equal(t, `"users.name"`, got)

	got, err = tr.FormatValue([]string{"id", "name"}, ModName)
	assert.NoError(t, err)
	assert.Equal(t, `"id", "name"`, got)

	_, err = tr.FormatValue("", ModName)
	assert.True(t, errors.Is(err, sqlforge.ErrEmptyIdentifier))
}

func TestFormatLike(t *testing.T) {
	tr := newTestTranslator(t)

	for _, tc := range []struct {
		mod      Modifier
		expected string
	}{
		{ModLike, `'50\%'`},
		{ModLikeRight, `'50\%%'`},
		{ModLikeLeft, `'%50\%'`},
		{ModLikeBoth, `'%50\%%'`},
	} {
		got, err := tr.FormatValue("50%", tc.mod)
		assert.NoError(t, err)
		assert.Equal(t, tc.expected, got)
	}
}

func TestFormatPredicatesEmptyIsTautology(t *testing.T) {
	tr := newTestTranslator(t)

	got, err := tr.FormatValue([]KV{}, ModAnd)
	assert.NoError(t, err)
	assert.Equal(t, "1=1", got)
}

func TestFormatPredicatesKeyModifierOverride(t *testing.T) {
	tr := newTestTranslator(t)

	got, err := tr.FormatValue([]KV{{K: "score%f", V: 1.50}}, ModAnd)
	assert.NoError(t, err)
	assert.Equal(t, `("score" = 1.5)`, got)

	_, err = tr.FormatValue([]KV{{K: "score%zz", V: 1}}, ModAnd)
	assert.True(t, errors.Is(err, sqlforge.ErrUnknownModifier))
}

func TestFormatLists(t *testing.T) {
	tr := newTestTranslator(t)

	got, err := tr.FormatValue([]any{1, "a", nil}, ModList)
	assert.NoError(t, err)
	assert.Equal(t, "(1, 'a', NULL)", got)

	got, err = tr.FormatValue([]any{}, ModList)
	assert.NoError(t, err)
	assert.Equal(t, "()", got)

	got, err = tr.FormatValue([]any{}, ModIn)
	assert.NoError(t, err)
	assert.Equal(t, "(NULL)", got)

	// Scalars are one-element lists under %in.
	got, err = tr.FormatValue(5, ModIn)
	assert.NoError(t, err)
	assert.Equal(t, "(5)", got)
}

func TestFormatInsertValues(t *testing.T) {
	tr := newTestTranslator(t)

	got, err := tr.FormatValue([]KV{{K: "a", V: 1}, {K: "b", V: "x"}}, ModValues)
	assert.NoError(t, err)
	assert.Equal(t, `("a", "b") VALUES (1, 'x')`, got)
}

func TestFormatOrderBy(t *testing.T) {
	tr := newTestTranslator(t)

	got, err := tr.FormatValue([]KV{{K: "name", V: "desc"}, {K: "age", V: true}}, ModBy)
	assert.NoError(t, err)
	assert.Equal(t, `"name" DESC, "age" ASC`, got)

	got, err = tr.FormatValue([]any{"name", KV{K: "age", V: false}}, ModBy)
	assert.NoError(t, err)
	assert.Equal(t, `"name", "age" DESC`, got)
}

func TestDefaultFormatting(t *testing.T) {
	tr := newTestTranslator(t)
	id := uuid.MustParse("a2f1b8c0-0000-4000-8000-000000000001")

	for _, tc := range []struct {
		name     string
		value    any
		expected string
	}{
		{"nil", nil, "NULL"},
		{"bool", true, "TRUE"},
		{"int", 42, "42"},
		{"float", 2.50, "2.5"},
		{"string", "o'clock", "'o''clock'"},
		{"uuid", id, "'a2f1b8c0-0000-4000-8000-000000000001'"},
		{"decimal", decimal.RequireFromString("10.010"), "10.010"},
		{"binary", []byte{0xde, 0xad}, `'\xdead'`},
		{"raw", Raw("now()"), "now()"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			got, err := tr.FormatValue(tc.value, ModNone)
			assert.NoError(t, err)
			assert.Equal(t, tc.expected, got)
		})
	}
}

func TestMapKeysAreSorted(t *testing.T) {
	tr := newTestTranslator(t)

	// Map ordering must be deterministic across runs.
	got, err := tr.FormatValue(map[string]any{"b": 2, "a": 1, "c": 3}, ModAssign)
	assert.NoError(t, err)
	assert.Equal(t, `"a" = 1, "b" = 2, "c" = 3`, got)
}
