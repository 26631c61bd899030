package config

import (
	"fmt"
	"os"
	"strings"
	"unicode"
)

// DefaultEnvPrefix is the prefix of every settings environment variable.
const DefaultEnvPrefix = "UNITLENS_"

// EnvLoader overrides settings from environment variables. Each key maps to
// its upper snake case name under the prefix, e.g. precision is read from
// UNITLENS_PRECISION.
type EnvLoader struct {
	prefix string
	lookup func(string) (string, bool)
}

// NewEnvLoader creates an environment loader reading the process
// environment. The prefix should include the trailing underscore.
func NewEnvLoader(prefix string) *EnvLoader {
	return &EnvLoader{prefix: prefix, lookup: os.LookupEnv}
}

// NewEnvLoaderWithLookup creates a loader over a custom lookup function.
func NewEnvLoaderWithLookup(prefix string, lookup func(string) (string, bool)) *EnvLoader {
	return &EnvLoader{prefix: prefix, lookup: lookup}
}

// EnvName returns the variable name for a setting key.
func (l *EnvLoader) EnvName(key string) string {
	var b strings.Builder
	b.WriteString(l.prefix)
	for i, r := range key {
		if unicode.IsUpper(r) && i > 0 {
			b.WriteByte('_')
		}
		b.WriteRune(unicode.ToUpper(r))
	}
	return b.String()
}

// Apply returns s with every set variable applied.
// Note: empty values are treated as set.
func (l *EnvLoader) Apply(s Settings) (Settings, error) {
	for _, key := range Keys() {
		name := l.EnvName(key)
		val, ok := l.lookup(name)
		if !ok {
			continue
		}
		next, err := s.With(key, val)
		if err != nil {
			return s, fmt.Errorf("%s: %w", name, err)
		}
		s = next
	}
	return s, nil
}
