// Package translate implements the SQL templating engine: it turns an ordered
// list of literal SQL fragments, typed values, arrays and nested expressions
// into one correctly escaped SQL string.
//
// String elements of the argument list are literal fragments scanned for
// tokens (quoted identifiers, quoted strings, :name: substitutions, %tag
// modifiers and ? placeholders); every other element is a value. Modifier and
// placeholder tokens consume arguments strictly left to right.
package translate

import (
	"fmt"
	"strings"

	"github.com/sqlforge/sqlforge"
)

// Translator owns the dialect engine, the driver escaping primitives, the
// substitution resolver and the identifier cache. It is stateless across
// calls: every Translate invocation runs on a fresh single-use session.
type Translator struct {
	engine   sqlforge.Engine
	driver   sqlforge.Driver
	resolver Resolver
	idents   *IdentCache
}

// Option configures a Translator.
type Option func(*Translator)

// WithResolver installs the :name: substitution resolver.
func WithResolver(r Resolver) Option {
	return func(t *Translator) { t.resolver = r }
}

// WithIdentCache shares an identifier cache between translators. The cache
// must belong to the same substitution snapshot as the resolver.
func WithIdentCache(c *IdentCache) Option {
	return func(t *Translator) { t.idents = c }
}

// WithEngine overrides the dialect engine, for callers with a custom SQL
// flavor.
func WithEngine(e sqlforge.Engine) Option {
	return func(t *Translator) { t.engine = e }
}

// WithDriver overrides the text/binary escaping primitives.
func WithDriver(d sqlforge.Driver) Option {
	return func(t *Translator) { t.driver = d }
}

// New creates a Translator for the given dialect.
func New(dialect sqlforge.Dialect, opts ...Option) (*Translator, error) {
	engine, err := sqlforge.EngineFor(dialect)
	if err != nil {
		return nil, err
	}
	driver, err := sqlforge.DriverFor(dialect)
	if err != nil {
		return nil, err
	}

	t := &Translator{engine: engine, driver: driver}
	for _, opt := range opts {
		opt(t)
	}
	if t.idents == nil {
		t.idents = NewIdentCache()
	}

	return t, nil
}

// TranslationError aggregates every problem detected during one translation.
// Only the first is reported in the message; the SQL assembled up to the
// failure is attached as diagnostic context.
type TranslationError struct {
	SQL    string
	Errors []error
}

func (e *TranslationError) Error() string {
	if len(e.Errors) == 0 {
		return "translation failed"
	}
	return fmt.Sprintf("%v (generated so far: %q)", e.Errors[0], e.SQL)
}

// Unwrap exposes all recorded errors for errors.Is matching.
func (e *TranslationError) Unwrap() []error { return e.Errors }

// session is the single-use translation state. One session corresponds to
// exactly one Translate call; the cursor only ever advances.
type session struct {
	tr   *Translator
	args []any

	cursor       int
	command      string
	comment      bool
	ifLevel      int
	ifLevelStart int
	limit        int
	offset       int
	errors       []error

	out      []string
	lastAuto bool
}

// Translate assembles the final SQL string from the argument list. A single
// []any argument is unwrapped, so pre-built argument slices can be passed
// directly.
func (t *Translator) Translate(args ...any) (string, error) {
	if len(args) == 1 {
		if sub, ok := args[0].([]any); ok {
			args = sub
		}
	}

	s := &session{tr: t, args: args, limit: -1, offset: -1}
	s.detectCommand()

	for s.cursor < len(s.args) {
		arg := s.args[s.cursor]
		s.cursor++
		s.processArg(arg)
	}
	if s.comment {
		s.closeComment()
	}

	sql := strings.TrimSpace(strings.Join(s.out, " "))
	if s.limit >= 0 || s.offset >= 0 {
		sql = t.engine.ApplyLimit(sql, s.limit, s.offset)
	}
	if len(s.errors) > 0 {
		return "", &TranslationError{SQL: sql, Errors: s.errors}
	}

	return sql, nil
}

// detectCommand records the leading keyword of the first literal fragment,
// unwrapping Raw and skipping fragments that open with a modifier token (a
// hoisted %lmt/%ofs pair precedes the command keyword). It decides the auto
// shape of bare keyed arrays (SET vs VALUES).
func (s *session) detectCommand() {
	for _, arg := range s.args {
		var text string
		switch v := arg.(type) {
		case string:
			text = v
		case Raw:
			text = string(v)
		default:
			continue
		}
		fields := strings.Fields(text)
		if len(fields) == 0 || strings.HasPrefix(fields[0], "%") {
			continue
		}
		s.command = strings.ToUpper(fields[0])
		return
	}
}

func (s *session) processArg(arg any) {
	switch v := arg.(type) {
	case string:
		s.scanFragment(v)
	case Raw:
		s.emit(string(v))
	case Expr:
		sql, err := s.tr.Translate([]any(v)...)
		if err != nil {
			s.errors = append(s.errors, err)
			return
		}
		s.emit(sql)
	default:
		if pairs, ok := pairsOf(arg); ok {
			s.autoArray(pairs)
			return
		}
		text, err := s.tr.formatValue(v, ModNone, s)
		if err != nil {
			s.errors = append(s.errors, err)
			return
		}
		s.emit(text)
	}
}

// autoArray renders a bare string-keyed array. INSERT and REPLACE commands get
// VALUES shape, everything else assignment shape. Consecutive bare arrays are
// comma-joined; for VALUES shape the followers contribute only their value
// tuple, producing a multi-row insert.
func (s *session) autoArray(pairs []KV) {
	insert := s.command == "INSERT" || s.command == "REPLACE"

	var text string
	var err error
	if insert && s.lastAuto {
		text, err = s.tr.formatValueTuple(pairs, s)
	} else if insert {
		text, err = s.tr.formatInsertValues(pairs, s)
	} else {
		text, err = s.tr.formatAssignments(pairs, s)
	}
	if err != nil {
		s.errors = append(s.errors, err)
		return
	}

	if s.lastAuto && !s.comment && len(s.out) > 0 {
		s.out[len(s.out)-1] += ", " + text
	} else {
		s.emit(text)
	}
	s.lastAuto = true
}

// takeArg consumes the next argument; missing host arguments surface as
// sentinel errors while keeping the cursor monotonic.
func (s *session) takeArg(missing error) (any, bool) {
	if s.cursor >= len(s.args) {
		s.errorf("%w", missing)
		return nil, false
	}
	v := s.args[s.cursor]
	s.cursor++

	return v, true
}

func (s *session) errorf(format string, args ...any) {
	s.errors = append(s.errors, fmt.Errorf(format, args...))
}

// emit appends one output fragment. Fragments are joined with single spaces
// at the end of the pass; a fragment opening with a comma attaches to its
// predecessor so separators do not float. Inside a commented-out conditional
// branch nothing is emitted; the span already shows one ellipsis.
func (s *session) emit(text string) {
	s.lastAuto = false
	text = strings.TrimSpace(text)
	if s.comment || text == "" {
		return
	}
	if strings.HasPrefix(text, ",") && len(s.out) > 0 {
		s.out[len(s.out)-1] += text
		return
	}
	s.out = append(s.out, text)
}

// openComment starts a comment span at the given nesting depth. The span
// closes only when the conditional stack returns to that depth, so fully
// nested %if/%end pairs inside it stay invisible.
func (s *session) openComment(depth int) {
	s.out = append(s.out, "/*", "...")
	s.comment = true
	s.ifLevelStart = depth
}

func (s *session) closeComment() {
	s.comment = false
	s.out = append(s.out, "*/")
}
