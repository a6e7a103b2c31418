package translate

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/sqlforge/sqlforge"
)

// FormatValue renders one value under the given modifier, standalone. It is
// the public face of the Value Formatter; the engine calls the internal
// variant which can report row-shape errors into the running session.
func (t *Translator) FormatValue(v any, mod Modifier) (string, error) {
	return t.formatValue(v, mod, nil)
}

func (t *Translator) formatValue(v any, mod Modifier, s *session) (string, error) {
	switch mod {
	case ModNone:
		return t.defaultFormat(v, s)
	case ModString:
		return t.formatString(v)
	case ModStringNull:
		if emptyish(v) {
			return "NULL", nil
		}
		return t.formatString(v)
	case ModBinary:
		return t.formatBinary(v)
	case ModBool:
		return t.formatBool(v)
	case ModInt:
		return t.formatInt(v, false)
	case ModUint:
		return t.formatInt(v, true)
	case ModIntNull:
		if emptyish(v) {
			return "NULL", nil
		}
		return t.formatInt(v, false)
	case ModFloat:
		return t.formatFloat(v)
	case ModDate:
		return t.formatDate(v, t.engine.DateLiteral)
	case ModTime, ModDateTime:
		return t.formatDate(v, t.engine.DateTimeLiteral)
	case ModName:
		return t.formatName(v, true)
	case ModNameRaw:
		return t.formatName(v, false)
	case ModExpr, ModExprSQL:
		return t.formatExpr(v)
	case ModRawSQL:
		return rawString(v), nil
	case ModLike:
		return t.formatLike(v, sqlforge.LikeExact)
	case ModLikeRight:
		return t.formatLike(v, sqlforge.LikeRight)
	case ModLikeLeft:
		return t.formatLike(v, sqlforge.LikeLeft)
	case ModLikeBoth:
		return t.formatLike(v, sqlforge.LikeBoth)
	case ModAnd:
		return t.formatPredicates(v, "AND", s)
	case ModOr:
		return t.formatPredicates(v, "OR", s)
	case ModAssign:
		pairs, ok := pairsOf(v)
		if !ok {
			return "", fmt.Errorf("%w: %%a needs a string-keyed array, got %T", sqlforge.ErrTypeMismatch, v)
		}
		return t.formatAssignments(pairs, s)
	case ModList:
		return t.formatList(v, false, s)
	case ModIn:
		return t.formatList(v, true, s)
	case ModValues:
		pairs, ok := pairsOf(v)
		if !ok {
			return "", fmt.Errorf("%w: %%v needs a string-keyed array, got %T", sqlforge.ErrTypeMismatch, v)
		}
		return t.formatInsertValues(pairs, s)
	case ModMulti:
		return t.formatMultiRows(v, s)
	case ModBy:
		return t.formatOrderBy(v, s)
	case ModLimit, ModOffset:
		// Side-effect modifiers render nothing on their own.
		return "", nil
	default:
		return "", fmt.Errorf("%w: %q", sqlforge.ErrUnknownModifier, string(mod))
	}
}

// defaultFormat is the no-modifier, type-directed mapping.
func (t *Translator) defaultFormat(v any, s *session) (string, error) {
	switch val := v.(type) {
	case nil:
		return "NULL", nil
	case bool:
		return t.engine.BoolLiteral(val), nil
	case string:
		return "'" + t.driver.EscapeText(val) + "'", nil
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return fmt.Sprint(val), nil
	case float64:
		return decimal.NewFromFloat(val).String(), nil
	case float32:
		return decimal.NewFromFloat32(val).String(), nil
	case []byte:
		return t.driver.EscapeBinary(val), nil
	case time.Time:
		return t.engine.DateTimeLiteral(val), nil
	case time.Duration:
		return t.engine.DateIntervalLiteral(val), nil
	case uuid.UUID:
		return "'" + val.String() + "'", nil
	case decimal.Decimal:
		return val.String(), nil
	case Raw:
		return string(val), nil
	case Expr:
		return t.formatExpr(val)
	default:
		if list, ok := listOf(v); ok {
			return t.formatListValues(list, false, s)
		}
		if stringer, ok := v.(fmt.Stringer); ok {
			return "'" + t.driver.EscapeText(stringer.String()) + "'", nil
		}
		return "", fmt.Errorf("%w: no default rendering for %T", sqlforge.ErrTypeMismatch, v)
	}
}

func (t *Translator) formatString(v any) (string, error) {
	switch val := v.(type) {
	case nil:
		return "NULL", nil
	case string:
		return "'" + t.driver.EscapeText(val) + "'", nil
	case Raw:
		return string(val), nil
	case fmt.Stringer:
		return "'" + t.driver.EscapeText(val.String()) + "'", nil
	case bool, int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, float32, float64:
		return "'" + t.driver.EscapeText(fmt.Sprint(val)) + "'", nil
	default:
		return "", fmt.Errorf("%w: %%s cannot render %T", sqlforge.ErrTypeMismatch, v)
	}
}

func (t *Translator) formatBinary(v any) (string, error) {
	switch val := v.(type) {
	case nil:
		return "NULL", nil
	case []byte:
		return t.driver.EscapeBinary(val), nil
	case string:
		return t.driver.EscapeBinary([]byte(val)), nil
	default:
		return "", fmt.Errorf("%w: %%bin cannot render %T", sqlforge.ErrTypeMismatch, v)
	}
}

func (t *Translator) formatBool(v any) (string, error) {
	switch val := v.(type) {
	case nil:
		return "NULL", nil
	case bool:
		return t.engine.BoolLiteral(val), nil
	case int:
		return t.engine.BoolLiteral(val != 0), nil
	case int64:
		return t.engine.BoolLiteral(val != 0), nil
	default:
		return "", fmt.Errorf("%w: %%b cannot render %T", sqlforge.ErrTypeMismatch, v)
	}
}

var (
	signedIntRe   = regexp.MustCompile(`^[+-]?[0-9]+$`)
	unsignedIntRe = regexp.MustCompile(`^\+?[0-9]+$`)
)

// formatInt renders integer literals. Numeric strings of arbitrary length
// pass through unchanged so values beyond the native integer range survive.
func (t *Translator) formatInt(v any, unsigned bool) (string, error) {
	switch val := v.(type) {
	case nil:
		return "NULL", nil
	case int, int8, int16, int32, int64:
		text := fmt.Sprint(val)
		if unsigned && strings.HasPrefix(text, "-") {
			return "", fmt.Errorf("%w: %%u cannot render negative %s", sqlforge.ErrTypeMismatch, text)
		}
		return text, nil
	case uint, uint8, uint16, uint32, uint64:
		return fmt.Sprint(val), nil
	case string:
		re := signedIntRe
		if unsigned {
			re = unsignedIntRe
		}
		if !re.MatchString(val) {
			return "", fmt.Errorf("%w: %q is not an integer", sqlforge.ErrTypeMismatch, val)
		}
		return val, nil
	case float64:
		if val != math.Trunc(val) {
			return "", fmt.Errorf("%w: %v has a fractional part", sqlforge.ErrTypeMismatch, val)
		}
		if val > math.MaxInt64 || val < math.MinInt64 {
			return "", fmt.Errorf("%w: %v", sqlforge.ErrNumericOverflow, val)
		}
		if unsigned && val < 0 {
			return "", fmt.Errorf("%w: %%u cannot render negative %v", sqlforge.ErrTypeMismatch, val)
		}
		return strconv.FormatInt(int64(val), 10), nil
	case decimal.Decimal:
		if !val.IsInteger() {
			return "", fmt.Errorf("%w: %s has a fractional part", sqlforge.ErrTypeMismatch, val)
		}
		return val.String(), nil
	default:
		return "", fmt.Errorf("%w: %%i cannot render %T", sqlforge.ErrTypeMismatch, v)
	}
}

// formatFloat renders fixed-point literals with trailing zeros and a
// trailing decimal point stripped, independent of locale.
func (t *Translator) formatFloat(v any) (string, error) {
	switch val := v.(type) {
	case nil:
		return "NULL", nil
	case float64:
		return decimal.NewFromFloat(val).String(), nil
	case float32:
		return decimal.NewFromFloat32(val).String(), nil
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return fmt.Sprint(val), nil
	case decimal.Decimal:
		return trimFixed(val.String()), nil
	case string:
		dec, err := decimal.NewFromString(val)
		if err != nil {
			return "", fmt.Errorf("%w: %q is not a number", sqlforge.ErrTypeMismatch, val)
		}
		return trimFixed(dec.String()), nil
	default:
		return "", fmt.Errorf("%w: %%f cannot render %T", sqlforge.ErrTypeMismatch, v)
	}
}

// trimFixed drops trailing fractional zeros and a dangling decimal point.
func trimFixed(text string) string {
	if !strings.Contains(text, ".") {
		return text
	}
	text = strings.TrimRight(text, "0")
	return strings.TrimRight(text, ".")
}

func (t *Translator) formatDate(v any, literal func(time.Time) string) (string, error) {
	switch val := v.(type) {
	case nil:
		return "NULL", nil
	case time.Time:
		return literal(val), nil
	case string:
		return "'" + t.driver.EscapeText(val) + "'", nil
	case int64:
		return literal(time.Unix(val, 0).UTC()), nil
	case int:
		return literal(time.Unix(int64(val), 0).UTC()), nil
	default:
		return "", fmt.Errorf("%w: date modifier cannot render %T", sqlforge.ErrTypeMismatch, v)
	}
}

// formatName renders identifier modifiers. Lists are comma-joined so column
// name arrays work with a single %n.
func (t *Translator) formatName(v any, composed bool) (string, error) {
	switch val := v.(type) {
	case string:
		if val == "" {
			return "", sqlforge.ErrEmptyIdentifier
		}
		return t.escapeName(val, composed), nil
	case Raw:
		return string(val), nil
	default:
		if list, ok := listOf(v); ok {
			names := make([]string, 0, len(list))
			for _, item := range list {
				name, err := t.formatName(item, composed)
				if err != nil {
					return "", err
				}
				names = append(names, name)
			}
			return strings.Join(names, ", "), nil
		}
		return "", fmt.Errorf("%w: identifier modifier cannot render %T", sqlforge.ErrTypeMismatch, v)
	}
}

func (t *Translator) formatExpr(v any) (string, error) {
	switch val := v.(type) {
	case Expr:
		return t.Translate([]any(val)...)
	case []any:
		return t.Translate(val...)
	default:
		return "", fmt.Errorf("%w: %%ex needs a nested expression, got %T", sqlforge.ErrTypeMismatch, v)
	}
}

func (t *Translator) formatLike(v any, side sqlforge.LikeSide) (string, error) {
	switch val := v.(type) {
	case nil:
		return "NULL", nil
	case string:
		return "'" + t.driver.EscapeText(t.engine.EscapeLike(val, side)) + "'", nil
	default:
		return "", fmt.Errorf("%w: LIKE modifier cannot render %T", sqlforge.ErrTypeMismatch, v)
	}
}

// splitKeyModifier separates an embedded per-key modifier override, as in
// "score%f" => 1.5.
func splitKeyModifier(key string) (string, Modifier, error) {
	name, tag, found := strings.Cut(key, "%")
	if !found {
		return key, ModNone, nil
	}
	mod, ok := ParseModifier(tag)
	if !ok {
		return "", ModNone, fmt.Errorf("%w: %%%s in key %q", sqlforge.ErrUnknownModifier, tag, key)
	}
	return name, mod, nil
}

// formatPredicates renders %and / %or arrays. Each element becomes
// (key = value), nil values become (key IS NULL), and an empty array renders
// the tautology 1=1.
func (t *Translator) formatPredicates(v any, op string, s *session) (string, error) {
	pairs, ok := pairsOf(v)
	if !ok {
		return "", fmt.Errorf("%w: %%%s needs a string-keyed array, got %T", sqlforge.ErrTypeMismatch, strings.ToLower(op), v)
	}
	if len(pairs) == 0 {
		return "1=1", nil
	}

	parts := make([]string, 0, len(pairs))
	for _, pair := range pairs {
		name, mod, err := splitKeyModifier(pair.K)
		if err != nil {
			return "", err
		}
		ident := t.escapeName(name, true)
		if pair.V == nil {
			parts = append(parts, "("+ident+" IS NULL)")
			continue
		}
		value, err := t.formatValue(pair.V, mod, s)
		if err != nil {
			return "", err
		}
		parts = append(parts, "("+ident+" = "+value+")")
	}

	return strings.Join(parts, " "+op+" "), nil
}

// formatAssignments renders %a arrays: key = value, ...
func (t *Translator) formatAssignments(pairs []KV, s *session) (string, error) {
	parts := make([]string, 0, len(pairs))
	for _, pair := range pairs {
		name, mod, err := splitKeyModifier(pair.K)
		if err != nil {
			return "", err
		}
		value, err := t.formatValue(pair.V, mod, s)
		if err != nil {
			return "", err
		}
		parts = append(parts, t.escapeName(name, true)+" = "+value)
	}

	return strings.Join(parts, ", "), nil
}

// formatList renders %l and %in value lists.
func (t *Translator) formatList(v any, inShape bool, s *session) (string, error) {
	list, ok := listOf(v)
	if !ok {
		// Scalars are accepted as one-element lists for %in convenience.
		if inShape && v != nil {
			list = []any{v}
		} else {
			return "", fmt.Errorf("%w: list modifier needs a sequence, got %T", sqlforge.ErrTypeMismatch, v)
		}
	}
	return t.formatListValues(list, inShape, s)
}

func (t *Translator) formatListValues(list []any, inShape bool, s *session) (string, error) {
	if len(list) == 0 {
		if inShape {
			return "(NULL)", nil
		}
		return "()", nil
	}

	parts := make([]string, 0, len(list))
	for _, item := range list {
		value, err := t.defaultFormat(item, s)
		if err != nil {
			return "", err
		}
		parts = append(parts, value)
	}

	return "(" + strings.Join(parts, ", ") + ")", nil
}

// formatInsertValues renders %v: (keys) VALUES (values) from one keyed array.
func (t *Translator) formatInsertValues(pairs []KV, s *session) (string, error) {
	keys := make([]string, 0, len(pairs))
	for _, pair := range pairs {
		name, _, err := splitKeyModifier(pair.K)
		if err != nil {
			return "", err
		}
		keys = append(keys, t.escapeName(name, false))
	}

	tuple, err := t.formatValueTuple(pairs, s)
	if err != nil {
		return "", err
	}

	return "(" + strings.Join(keys, ", ") + ") VALUES " + tuple, nil
}

func (t *Translator) formatValueTuple(pairs []KV, s *session) (string, error) {
	values := make([]string, 0, len(pairs))
	for _, pair := range pairs {
		_, mod, err := splitKeyModifier(pair.K)
		if err != nil {
			return "", err
		}
		value, err := t.formatValue(pair.V, mod, s)
		if err != nil {
			return "", err
		}
		values = append(values, value)
	}

	return "(" + strings.Join(values, ", ") + ")", nil
}

// formatMultiRows renders %m: every row must share the first row's key
// shape. A mismatched row contributes one error naming the offending key and
// the remaining rows still render, so scanning stays cursor-correct.
func (t *Translator) formatMultiRows(v any, s *session) (string, error) {
	rows, err := multiRows(v)
	if err != nil {
		return "", err
	}
	if len(rows) == 0 {
		return "", fmt.Errorf("%w: %%m needs at least one row", sqlforge.ErrTypeMismatch)
	}

	shape := rows[0]
	keys := make([]string, 0, len(shape))
	for _, pair := range shape {
		name, _, err := splitKeyModifier(pair.K)
		if err != nil {
			return "", err
		}
		keys = append(keys, t.escapeName(name, false))
	}

	var firstErr error
	report := func(err error) {
		if s != nil {
			s.errors = append(s.errors, err)
		} else if firstErr == nil {
			firstErr = err
		}
	}

	tuples := make([]string, 0, len(rows))
	for i, row := range rows {
		if key, ok := shapeMismatch(shape, row); !ok {
			report(fmt.Errorf("%w: row %d, key %q", sqlforge.ErrRowShapeMismatch, i, key))
			continue
		}
		tuple, err := t.formatValueTuple(reorder(shape, row), s)
		if err != nil {
			report(err)
			continue
		}
		tuples = append(tuples, tuple)
	}

	if firstErr != nil {
		return "", firstErr
	}

	return "(" + strings.Join(keys, ", ") + ") VALUES " + strings.Join(tuples, ", "), nil
}

func multiRows(v any) ([][]KV, error) {
	switch rows := v.(type) {
	case [][]KV:
		return rows, nil
	case []map[string]any:
		out := make([][]KV, 0, len(rows))
		for _, row := range rows {
			pairs, _ := pairsOf(row)
			out = append(out, pairs)
		}
		return out, nil
	case []any:
		out := make([][]KV, 0, len(rows))
		for _, row := range rows {
			pairs, ok := pairsOf(row)
			if !ok {
				return nil, fmt.Errorf("%w: %%m row must be a string-keyed array, got %T", sqlforge.ErrTypeMismatch, row)
			}
			out = append(out, pairs)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("%w: %%m needs an array of rows, got %T", sqlforge.ErrTypeMismatch, v)
	}
}

// shapeMismatch reports the first key by which row differs from shape.
func shapeMismatch(shape, row []KV) (string, bool) {
	have := make(map[string]bool, len(row))
	for _, pair := range row {
		have[pair.K] = true
	}
	for _, pair := range shape {
		if !have[pair.K] {
			return pair.K, false
		}
	}
	want := make(map[string]bool, len(shape))
	for _, pair := range shape {
		want[pair.K] = true
	}
	for _, pair := range row {
		if !want[pair.K] {
			return pair.K, false
		}
	}
	return "", true
}

// reorder returns row pairs in the shape's key order.
func reorder(shape, row []KV) []KV {
	byKey := make(map[string]any, len(row))
	for _, pair := range row {
		byKey[pair.K] = pair.V
	}
	out := make([]KV, 0, len(shape))
	for _, pair := range shape {
		out = append(out, KV{K: pair.K, V: byKey[pair.K]})
	}
	return out
}

// formatOrderBy renders %by arrays. Keyed entries direct by the value's
// truthiness or leading letter; plain entries are bare identifiers.
func (t *Translator) formatOrderBy(v any, s *session) (string, error) {
	if pairs, ok := pairsOf(v); ok {
		parts := make([]string, 0, len(pairs))
		for _, pair := range pairs {
			parts = append(parts, t.escapeName(pair.K, true)+" "+direction(pair.V))
		}
		return strings.Join(parts, ", "), nil
	}

	list, ok := listOf(v)
	if !ok {
		return "", fmt.Errorf("%w: %%by needs an array, got %T", sqlforge.ErrTypeMismatch, v)
	}

	parts := make([]string, 0, len(list))
	for _, item := range list {
		switch entry := item.(type) {
		case string:
			parts = append(parts, t.escapeName(entry, true))
		case KV:
			parts = append(parts, t.escapeName(entry.K, true)+" "+direction(entry.V))
		default:
			return "", fmt.Errorf("%w: %%by entry cannot be %T", sqlforge.ErrTypeMismatch, item)
		}
	}

	return strings.Join(parts, ", "), nil
}

func direction(v any) string {
	if text, ok := v.(string); ok {
		if strings.HasPrefix(text, "d") || strings.HasPrefix(text, "D") {
			return "DESC"
		}
		return "ASC"
	}
	if truthy(v) {
		return "ASC"
	}
	return "DESC"
}

func rawString(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case Raw:
		return string(val)
	default:
		return fmt.Sprint(val)
	}
}

// emptyish implements the iN/sN rule: '', numeric 0 and nil are all NULL.
func emptyish(v any) bool {
	switch val := v.(type) {
	case nil:
		return true
	case string:
		return val == ""
	case int:
		return val == 0
	case int8:
		return val == 0
	case int16:
		return val == 0
	case int32:
		return val == 0
	case int64:
		return val == 0
	case uint:
		return val == 0
	case uint8:
		return val == 0
	case uint16:
		return val == 0
	case uint32:
		return val == 0
	case uint64:
		return val == 0
	case float64:
		return val == 0
	case float32:
		return val == 0
	default:
		return false
	}
}
