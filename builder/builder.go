// Package builder provides the fluent clause accumulator that feeds the
// translation engine. Chained calls are recorded into a named-clause tree in
// command-mask order; Export flattens the tree into the ordered argument list
// consumed by translate.Translate.
package builder

import (
	"fmt"
	"regexp"
	"sort"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/sqlforge/sqlforge"
	"github.com/sqlforge/sqlforge/translate"
)

// Remove is the sentinel that, passed as the sole argument of a clause call,
// deletes the clause instead of appending to it.
var Remove = &removeSentinel{}

type removeSentinel struct{}

// group is one recorded call's contribution to a clause.
type group struct {
	join  bool // redirected join call; joined with a space, not the separator
	frags []any
}

// Builder accumulates one logical query. It is not safe for concurrent use;
// share across goroutines by Clone. Export is idempotent and may be called
// any number of times.
type Builder struct {
	command string
	mask    []string
	clauses map[string][]group
	flags   map[string]bool
	active  string
	err     error
}

// New creates an empty Builder. The command is inferred from the first
// clause call.
func New() *Builder {
	return &Builder{
		clauses: map[string][]group{},
		flags:   map[string]bool{},
	}
}

var (
	camelBoundaryRe = regexp.MustCompile(`([a-z0-9])([A-Z])`)
	identifierRe    = regexp.MustCompile(`^[a-zA-Z_:][0-9a-zA-Z_.:]*$`)

	upper = cases.Upper(language.Und)
)

// normalize turns a call name into its canonical clause keyword:
// orderBy -> ORDER BY, insertInto -> INSERT INTO.
func normalize(name string) string {
	return upper.String(camelBoundaryRe.ReplaceAllString(name, "$1 $2"))
}

// Call records one chained call. The name is normalized into a clause
// keyword; the first call decides the command and initializes its mask.
// Join-family keywords accumulate into FROM. Unknown names that are
// recognized trailing keywords (AS, ON, ASC, ...) append to the active
// clause; anything else is an error surfaced by Export.
func (b *Builder) Call(name string, args ...any) *Builder {
	if b.err != nil {
		return b
	}
	keyword := normalize(name)

	if b.command == "" {
		command, clause, ok := commandFor(keyword)
		if !ok {
			b.err = fmt.Errorf("%w: %q", sqlforge.ErrUnknownCommand, keyword)
			return b
		}
		b.command = command
		b.mask = commandMasks[command]
		keyword = clause
	} else {
		keyword = aliasClause(b.command, keyword)
	}

	switch {
	case joinKeywords[keyword]:
		b.append("FROM", group{join: true, frags: b.fragments("FROM", append([]any{translate.Raw(keyword)}, args...))})
		b.active = "FROM"
	case b.inMask(keyword):
		if len(args) == 1 {
			if _, ok := args[0].(*removeSentinel); ok {
				delete(b.clauses, keyword)
				b.active = keyword
				return b
			}
		}
		b.append(keyword, group{frags: b.fragments(keyword, args)})
		b.active = keyword
	case trailingKeywords[keyword]:
		b.appendTrailing(keyword, args)
	default:
		b.err = fmt.Errorf("%w: %q in %s", sqlforge.ErrUnknownClause, keyword, b.command)
	}

	return b
}

func (b *Builder) inMask(keyword string) bool {
	for _, name := range b.mask {
		if name == keyword {
			return true
		}
	}
	return false
}

func (b *Builder) append(keyword string, g group) {
	if clauseRules[keyword].replace {
		b.clauses[keyword] = []group{g}
		return
	}
	b.clauses[keyword] = append(b.clauses[keyword], g)
}

// appendTrailing adds a keyword plus its arguments to the last group of the
// active clause, re-resolving the active key on every call.
func (b *Builder) appendTrailing(keyword string, args []any) {
	if b.active == "" {
		b.err = fmt.Errorf("%w: %q with no active clause", sqlforge.ErrUnknownClause, keyword)
		return
	}
	groups := b.clauses[b.active]
	if len(groups) == 0 {
		groups = []group{{}}
	}
	last := &groups[len(groups)-1]
	last.frags = append(last.frags, translate.Raw(keyword))
	last.frags = append(last.frags, b.fragments(b.active, args)...)
	b.clauses[b.active] = groups
}

// fragments applies the single-argument shape rules and wraps nested
// builders as parenthesized expressions.
func (b *Builder) fragments(clause string, args []any) []any {
	rule := clauseRules[clause]

	if len(args) == 1 {
		switch v := args[0].(type) {
		case bool:
			if v {
				// A lone true is a pure flag call; no SQL text.
				return nil
			}
		case string:
			if identifierRe.MatchString(v) || v == "*" {
				return []any{"%n", v}
			}
		default:
			if tag, ok := arrayModifier(rule, args[0]); ok {
				return []any{"%" + tag, args[0]}
			}
		}
	}

	// Several keyed arrays in one VALUES call form the rows of one
	// multi-row insert.
	if rule.defMod == "v" && len(args) > 1 && allKeyed(args) {
		return []any{"%m", append([]any(nil), args...)}
	}

	out := make([]any, 0, len(args))
	for _, arg := range args {
		if nested, ok := arg.(*Builder); ok {
			inner, err := nested.Export("")
			if err != nil {
				b.err = err
				continue
			}
			out = append(out, translate.Raw("("), translate.Expr(inner), translate.Raw(")"))
			continue
		}
		out = append(out, arg)
	}
	return out
}

func allKeyed(args []any) bool {
	for _, arg := range args {
		switch arg.(type) {
		case map[string]any, map[string]string, []translate.KV:
		default:
			return false
		}
	}
	return true
}

// arrayModifier picks the clause's default modifier for a bare keyed array,
// upgrading to multi-row shape when a row list is supplied to VALUES.
func arrayModifier(rule clauseRule, v any) (string, bool) {
	switch v.(type) {
	case map[string]any, map[string]string, []translate.KV:
		if rule.defMod == "" {
			return "", false
		}
		return rule.defMod, true
	case []map[string]any, [][]translate.KV:
		if rule.defMod == "v" {
			return "m", true
		}
		return "", false
	default:
		return "", false
	}
}

// Clause navigates to a named slot, creating it empty if needed.
func (b *Builder) Clause(name string) *Builder {
	if b.err != nil {
		return b
	}
	keyword := aliasClause(b.command, normalize(name))
	if !b.inMask(keyword) {
		b.err = fmt.Errorf("%w: %q in %s", sqlforge.ErrUnknownClause, keyword, b.command)
		return b
	}
	b.active = keyword
	return b
}

// RemoveClause deletes a named slot.
func (b *Builder) RemoveClause(name string) *Builder {
	keyword := aliasClause(b.command, normalize(name))
	delete(b.clauses, keyword)
	if b.active == keyword {
		b.active = ""
	}
	return b
}

// SetFlag toggles a command-level flag such as DISTINCT. Flags render once,
// immediately after the command keyword.
func (b *Builder) SetFlag(name string, value bool) *Builder {
	keyword := normalize(name)
	if value {
		b.flags[keyword] = true
	} else {
		delete(b.flags, keyword)
	}
	return b
}

// GetFlag reports a command-level flag.
func (b *Builder) GetFlag(name string) bool {
	return b.flags[normalize(name)]
}

// Err returns the first recorded builder error, if any.
func (b *Builder) Err() error { return b.err }

// Export flattens the builder into the argument list consumed by the
// translation engine. With a clause name, only that clause is serialized;
// with an empty name the whole command is, in mask order. For SELECT the
// LIMIT and OFFSET slots are hoisted into a %lmt/%ofs directive pair at the
// front of the stream so the dialect engine can rewrite paging.
func (b *Builder) Export(clauseName string) ([]any, error) {
	if b.err != nil {
		return nil, b.err
	}
	if b.command == "" {
		return nil, sqlforge.ErrNoCommand
	}

	if clauseName != "" {
		keyword := aliasClause(b.command, normalize(clauseName))
		if !b.inMask(keyword) {
			return nil, fmt.Errorf("%w: %q in %s", sqlforge.ErrUnknownClause, keyword, b.command)
		}
		return b.exportClause(keyword, nil), nil
	}

	var args []any
	hoist := b.command == "SELECT"
	if hoist {
		args = b.pagingDirectives(args)
	}

	for i, keyword := range b.mask {
		if hoist && (keyword == "LIMIT" || keyword == "OFFSET") {
			continue
		}
		groups, ok := b.clauses[keyword]
		if (!ok || len(groups) == 0) && i > 0 {
			continue
		}
		var flagText []string
		if i == 0 {
			flagText = b.flagList()
		}
		args = b.exportClauseInto(args, keyword, groups, flagText)
	}

	return args, nil
}

// SQL is a convenience wrapper exporting the full command and translating it.
func (b *Builder) SQL(t *translate.Translator) (string, error) {
	args, err := b.Export("")
	if err != nil {
		return "", err
	}
	return t.Translate(args...)
}

func (b *Builder) exportClause(keyword string, args []any) []any {
	return b.exportClauseInto(args, keyword, b.clauses[keyword], nil)
}

func (b *Builder) exportClauseInto(args []any, keyword string, groups []group, flags []string) []any {
	if !keywordCarried(keyword, groups) {
		args = append(args, translate.Raw(keyword))
	}
	for _, flag := range flags {
		args = append(args, translate.Raw(flag))
	}

	sep := clauseRules[keyword].sep
	for i, g := range groups {
		if i > 0 && !g.join && sep != "" {
			args = append(args, translate.Raw(sep))
		}
		args = append(args, g.frags...)
	}
	return args
}

// keywordCarried reports whether the clause's content renders its own
// keyword. %v and %m emit "(keys) VALUES (tuples)" themselves.
func keywordCarried(keyword string, groups []group) bool {
	if keyword != "VALUES" || len(groups) == 0 || len(groups[0].frags) == 0 {
		return false
	}
	tag, ok := groups[0].frags[0].(string)
	return ok && (tag == "%v" || tag == "%m")
}

// pagingDirectives prepends the combined limit/offset directive captured
// from the LIMIT and OFFSET slots.
func (b *Builder) pagingDirectives(args []any) []any {
	if v, ok := b.clauseValue("LIMIT"); ok {
		args = append(args, "%lmt", v)
	}
	if v, ok := b.clauseValue("OFFSET"); ok {
		args = append(args, "%ofs", v)
	}
	return args
}

func (b *Builder) clauseValue(keyword string) (any, bool) {
	for _, g := range b.clauses[keyword] {
		for _, frag := range g.frags {
			switch frag.(type) {
			case int, int64, uint64, float64, string:
				return frag, true
			}
		}
	}
	return nil, false
}

func (b *Builder) flagList() []string {
	flags := make([]string, 0, len(b.flags))
	for flag := range b.flags {
		flags = append(flags, flag)
	}
	sort.Strings(flags)
	return flags
}

// Clone deep-copies clause storage so the copy can be mutated independently.
func (b *Builder) Clone() *Builder {
	clone := &Builder{
		command: b.command,
		mask:    b.mask,
		clauses: make(map[string][]group, len(b.clauses)),
		flags:   make(map[string]bool, len(b.flags)),
		active:  b.active,
		err:     b.err,
	}
	for name, groups := range b.clauses {
		copied := make([]group, len(groups))
		for i, g := range groups {
			copied[i] = group{join: g.join, frags: append([]any(nil), g.frags...)}
		}
		clone.clauses[name] = copied
	}
	for name, value := range b.flags {
		clone.flags[name] = value
	}
	return clone
}
