// Package dialects converts named-placeholder SQL into the placeholder form each
// database/sql driver understands. Builders always emit :name tokens; a dialect
// decides how those tokens and their values travel to the driver.
package dialects

import (
	"errors"
	"regexp"
	"sort"
	"sync"
)

// ErrUnsupportedDialect is returned when no dialect is registered for a driver name.
var ErrUnsupportedDialect = errors.New("unsupported database dialect")

// Dialect defines database-specific placeholder binding.
type Dialect interface {
	// Name returns the canonical dialect name (mysql, postgres, sqlite).
	Name() string
	// Bind rewrites :name tokens for the driver and returns the argument list.
	// values maps placeholder names (without the leading colon) to bound values.
	Bind(query string, names []string, values map[string]interface{}) (string, []interface{})
}

// Registry maps driver names to dialects.
type Registry struct {
	mu       sync.RWMutex
	dialects map[string]Dialect
}

// NewRegistry creates a registry pre-loaded with the MySQL, PostgreSQL and SQLite dialects.
func NewRegistry() *Registry {
	r := &Registry{dialects: make(map[string]Dialect)}
	r.Register("mysql", &MySQLDialect{})
	r.Register("postgres", &PostgresDialect{})
	r.Register("postgresql", &PostgresDialect{})
	r.Register("pgx", &PostgresDialect{})
	r.Register("sqlite", &SQLiteDialect{})
	r.Register("sqlite3", &SQLiteDialect{})
	return r
}

// Register registers a dialect by driver name, replacing any previous entry.
func (r *Registry) Register(name string, d Dialect) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.dialects[name] = d
}

// Get retrieves a registered dialect by driver name.
func (r *Registry) Get(name string) (Dialect, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if d, ok := r.dialects[name]; ok {
		return d, nil
	}
	return nil, ErrUnsupportedDialect
}

// Names returns the registered driver names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.dialects))
	for name := range r.dialects {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// placeholderRegex matches :name tokens and :: cast sequences.
// Casts are matched so they can be skipped as a whole.
var placeholderRegex = regexp.MustCompile(`::?[A-Za-z_][A-Za-z0-9_]*`)

// ReplaceNamed calls fn for every :name token whose name is present in values
// and substitutes the returned string. Unknown tokens and :: casts are kept.
func ReplaceNamed(query string, values map[string]interface{}, fn func(name string) string) string {
	return placeholderRegex.ReplaceAllStringFunc(query, func(match string) string {
		if len(match) > 1 && match[1] == ':' {
			return match
		}
		name := match[1:]
		if _, ok := values[name]; !ok {
			return match
		}
		return fn(name)
	})
}
