package translate

import "sort"

// Raw marks a string that must be inlined into the SQL output without any
// escaping. The caller vouches for its content.
type Raw string

// Expr is a nested argument list. The engine translates it recursively and
// inlines the result wherever the expression appears.
type Expr []any

// KV is an ordered key/value pair. Every modifier that accepts a string-keyed
// map also accepts []KV for callers that need a specific key order; Go maps
// are rendered in sorted key order instead.
type KV struct {
	K string
	V any
}

// Resolver resolves :name: substitutions and identifier-segment bindings.
type Resolver interface {
	Substitute(name string) (string, bool)
}

// MapResolver is a map-backed Resolver.
type MapResolver map[string]string

func (m MapResolver) Substitute(name string) (string, bool) {
	v, ok := m[name]
	return v, ok
}

// pairsOf normalizes the accepted keyed-array shapes into an ordered pair
// slice. Maps are sorted by key so output is deterministic.
func pairsOf(v any) ([]KV, bool) {
	switch val := v.(type) {
	case []KV:
		return val, true
	case map[string]any:
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		pairs := make([]KV, 0, len(keys))
		for _, k := range keys {
			pairs = append(pairs, KV{K: k, V: val[k]})
		}
		return pairs, true
	case map[string]string:
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		pairs := make([]KV, 0, len(keys))
		for _, k := range keys {
			pairs = append(pairs, KV{K: k, V: val[k]})
		}
		return pairs, true
	default:
		return nil, false
	}
}

// listOf normalizes the accepted sequence shapes into []any.
func listOf(v any) ([]any, bool) {
	switch val := v.(type) {
	case []any:
		return val, true
	case []string:
		out := make([]any, len(val))
		for i, s := range val {
			out[i] = s
		}
		return out, true
	case []int:
		out := make([]any, len(val))
		for i, n := range val {
			out[i] = n
		}
		return out, true
	case []int64:
		out := make([]any, len(val))
		for i, n := range val {
			out[i] = n
		}
		return out, true
	default:
		return nil, false
	}
}

// truthy reports the boolean interpretation used by %if tests and %by
// directions.
func truthy(v any) bool {
	switch val := v.(type) {
	case nil:
		return false
	case bool:
		return val
	case int:
		return val != 0
	case int64:
		return val != 0
	case uint64:
		return val != 0
	case float64:
		return val != 0
	case string:
		return val != "" && val != "0"
	default:
		return true
	}
}
