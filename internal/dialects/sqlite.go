package dialects

import "database/sql"

// SQLiteDialect implements SQLite placeholder binding.
// SQLite accepts :name tokens natively, so the query is passed through and
// values travel as sql.NamedArg in bind-map order.
type SQLiteDialect struct{}

// Name returns "sqlite".
func (d *SQLiteDialect) Name() string {
	return "sqlite"
}

// Bind returns the query unchanged with one sql.Named argument per bind.
func (d *SQLiteDialect) Bind(query string, names []string, values map[string]interface{}) (string, []interface{}) {
	args := make([]interface{}, 0, len(names))
	for _, name := range names {
		args = append(args, sql.Named(name, values[name]))
	}
	return query, args
}
