package translate

import (
	"strings"
	"sync"
)

// IdentCache memoizes delimited identifiers per (name, composed) key. One
// cache corresponds to one substitution snapshot: callers that change their
// substitution map must supply a fresh cache. Reads may happen concurrently
// from independent translators; writes are serialized.
type IdentCache struct {
	mu      sync.RWMutex
	entries map[string]string
}

// NewIdentCache creates an empty identifier cache.
func NewIdentCache() *IdentCache {
	return &IdentCache{entries: map[string]string{}}
}

func (c *IdentCache) get(key string) (string, bool) {
	c.mu.RLock()
	v, ok := c.entries[key]
	c.mu.RUnlock()

	return v, ok
}

func (c *IdentCache) put(key, value string) {
	c.mu.Lock()
	c.entries[key] = value
	c.mu.Unlock()
}

// escapeName delimits an identifier. When composed, the name is split on
// dots and each segment except a bare * is substituted and escaped
// independently, so schema.table.col becomes "schema"."table"."col".
func (t *Translator) escapeName(name string, composed bool) string {
	key := name
	if !composed {
		key = "\x00" + name
	}
	if v, ok := t.idents.get(key); ok {
		return v
	}

	var segments []string
	if composed {
		segments = strings.Split(name, ".")
	} else {
		segments = []string{name}
	}

	for i, segment := range segments {
		if segment == "*" {
			continue
		}
		if t.resolver != nil {
			if sub, ok := t.resolver.Substitute(segment); ok {
				segment = sub
			}
		}
		segments[i] = t.engine.EscapeIdentifier(segment)
	}

	result := strings.Join(segments, ".")
	t.idents.put(key, result)

	return result
}
