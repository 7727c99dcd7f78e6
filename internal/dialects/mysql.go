package dialects

// MySQLDialect implements MySQL placeholder binding.
// go-sql-driver/mysql only understands positional "?" placeholders, so every
// token becomes "?" and its value is appended in order of appearance.
type MySQLDialect struct{}

// Name returns "mysql".
func (d *MySQLDialect) Name() string {
	return "mysql"
}

// Bind rewrites :name tokens to "?" and returns values in token order.
// A name used twice is bound twice.
func (d *MySQLDialect) Bind(query string, _ []string, values map[string]interface{}) (string, []interface{}) {
	args := make([]interface{}, 0, len(values))
	out := ReplaceNamed(query, values, func(name string) string {
		args = append(args, values[name])
		return "?"
	})
	return out, args
}
