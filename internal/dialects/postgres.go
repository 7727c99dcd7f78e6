package dialects

import "strconv"

// PostgresDialect implements PostgreSQL placeholder binding ($1, $2, ...).
type PostgresDialect struct{}

// Name returns "postgres".
func (d *PostgresDialect) Name() string {
	return "postgres"
}

// Bind rewrites :name tokens to $n. Each distinct name gets one index, so a
// repeated token reuses its argument.
func (d *PostgresDialect) Bind(query string, _ []string, values map[string]interface{}) (string, []interface{}) {
	index := make(map[string]int, len(values))
	args := make([]interface{}, 0, len(values))
	out := ReplaceNamed(query, values, func(name string) string {
		n, ok := index[name]
		if !ok {
			args = append(args, values[name])
			n = len(args)
			index[name] = n
		}
		return "$" + strconv.Itoa(n)
	})
	return out, args
}
