package translate

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/sqlforge/sqlforge"
)

// triggerChars is the fast-reject set: a literal fragment containing none of
// these bytes cannot hold a token and is copied verbatim. Most SQL text takes
// this path.
const triggerChars = "`['\":%?"

// tokenRe recognizes, in priority order: backtick identifier, bracket
// identifier, single-quoted string ('' escape), double-quoted string (""
// escape), a lone quote, a :name: substitution, a %tag modifier, and a ?
// placeholder.
var tokenRe = regexp.MustCompile("`([^`]+)`" +
	`|\[([a-zA-Z_][a-zA-Z0-9_. ]*)\]` +
	`|'((?:[^']|'')*)'` +
	`|"((?:[^"]|"")*)"` +
	`|['"]` +
	`|:([a-zA-Z_][a-zA-Z0-9._]*):` +
	`|%(~?[a-zA-Z][a-zA-Z0-9_]{0,5}~?)` +
	`|\?`)

// scanFragment copies a literal fragment into the output, replacing each
// token in place. Consumed values are spliced at the exact token position so
// fragment-internal spacing survives untouched.
func (s *session) scanFragment(text string) {
	if !strings.ContainsAny(text, triggerChars) {
		s.emit(text)
		return
	}

	s.lastAuto = false

	var buf strings.Builder
	flush := func() {
		s.emit(buf.String())
		buf.Reset()
	}
	write := func(str string) {
		if !s.comment && str != "" {
			buf.WriteString(str)
		}
	}

	pos := 0
	for _, m := range tokenRe.FindAllStringSubmatchIndex(text, -1) {
		write(text[pos:m[0]])
		pos = m[1]

		group := func(i int) (string, bool) {
			if m[2*i] < 0 {
				return "", false
			}
			return text[m[2*i]:m[2*i+1]], true
		}

		switch {
		case has(m, 1): // `ident`
			name, _ := group(1)
			write(s.tr.escapeName(name, true))
		case has(m, 2): // [ident]
			name, _ := group(2)
			write(s.tr.escapeName(name, true))
		case has(m, 3): // '...'
			body, _ := group(3)
			write("'" + s.tr.driver.EscapeText(strings.ReplaceAll(body, "''", "'")) + "'")
		case has(m, 4): // "..."
			body, _ := group(4)
			write("'" + s.tr.driver.EscapeText(strings.ReplaceAll(body, `""`, `"`)) + "'")
		case has(m, 5): // :name:
			name, _ := group(5)
			if s.tr.resolver == nil {
				s.errorf("%w: %s", sqlforge.ErrSubstitutionNotFound, name)
				break
			}
			value, ok := s.tr.resolver.Substitute(name)
			if !ok {
				s.errorf("%w: %s", sqlforge.ErrSubstitutionNotFound, name)
				break
			}
			write(value)
		case has(m, 6): // %tag
			tag, _ := group(6)
			s.handleTag(tag, flush, write)
		default:
			tok := text[m[0]:m[1]]
			switch tok {
			case "'", `"`:
				s.errorf("%w near %q", sqlforge.ErrAloneQuote, clip(text, m[0]))
			case "?":
				v, ok := s.takeArg(sqlforge.ErrExtraPlaceholder)
				if !ok {
					break
				}
				s.writeValue(v, ModNone, write)
			}
		}
	}
	write(text[pos:])
	flush()
}

// handleTag dispatches one %tag match: either a conditional-compilation
// control tag or a value modifier consuming the next argument.
func (s *session) handleTag(tag string, flush func(), write func(string)) {
	switch tag {
	case tagIf:
		test, ok := s.takeArg(sqlforge.ErrMissingArgument)
		if ok && !s.comment && !truthy(test) {
			flush()
			s.openComment(s.ifLevel)
		}
		s.ifLevel++
	case tagElse:
		if s.comment && s.ifLevel-1 == s.ifLevelStart {
			s.closeComment()
		} else if !s.comment {
			flush()
			s.openComment(s.ifLevel - 1)
		}
	case tagEnd:
		s.ifLevel--
		if s.comment && s.ifLevel == s.ifLevelStart {
			s.closeComment()
		}
	default:
		mod, known := ParseModifier(tag)
		v, ok := s.takeArg(sqlforge.ErrMissingArgument)
		if !known {
			s.errorf("%w: %%%s", sqlforge.ErrUnknownModifier, tag)
			return
		}
		if !ok {
			return
		}
		switch mod {
		case ModLimit:
			if !s.comment {
				s.capturePaging(&s.limit, v)
			}
		case ModOffset:
			if !s.comment {
				s.capturePaging(&s.offset, v)
			}
		default:
			s.writeValue(v, mod, write)
		}
	}
}

// writeValue formats one consumed value and splices it at the token position.
// Formatting errors are recorded and produce no output.
func (s *session) writeValue(v any, mod Modifier, write func(string)) {
	if s.comment {
		return
	}
	text, err := s.tr.formatValue(v, mod, s)
	if err != nil {
		s.errors = append(s.errors, err)
		return
	}
	write(text)
}

func has(m []int, group int) bool { return m[2*group] >= 0 }

// clip returns a short window of text around pos for error context.
func clip(text string, pos int) string {
	end := pos + 20
	if end > len(text) {
		end = len(text)
	}
	return text[pos:end]
}

// capturePaging stores a %lmt/%ofs argument. Numeric strings are accepted
// the way %i accepts them; anything else is a recorded type error.
func (s *session) capturePaging(dst *int, v any) {
	n, err := intArg(v)
	if err != nil {
		s.errors = append(s.errors, err)
		return
	}
	*dst = n
}

func intArg(v any) (int, error) {
	switch n := v.(type) {
	case int:
		return n, nil
	case int64:
		return int(n), nil
	case uint64:
		return int(n), nil
	case float64:
		return int(n), nil
	case string:
		parsed, err := strconv.Atoi(n)
		if err != nil {
			return 0, fmt.Errorf("%w: %q is not an integer", sqlforge.ErrTypeMismatch, n)
		}
		return parsed, nil
	default:
		return 0, fmt.Errorf("%w: limit/offset cannot be %T", sqlforge.ErrTypeMismatch, v)
	}
}
