package core

import (
	"database/sql"
	"fmt"
	"sort"
	"strconv"
)

// Row is one fetched row keyed by column name. NULL columns hold nil and
// text or blob columns hold string.
//
// Example:
//
//	row, err := db.From("users").Select("id", "email").Equal("id", 1).First(ctx)
//	email := row.String("email") // "" if NULL
//	if !row.IsNull("deleted_at") {
//	    ...
//	}
type Row map[string]interface{}

// String returns the value for key formatted as a string, or "" if NULL or missing.
func (r Row) String(key string) string {
	v, ok := r[key]
	if !ok || v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", v)
}

// Int64 returns the value for key as an int64. Strings are parsed; anything
// else that is not an integer returns 0.
func (r Row) Int64(key string) int64 {
	switch v := r[key].(type) {
	case int64:
		return v
	case int:
		return int64(v)
	case int32:
		return int64(v)
	case uint64:
		return int64(v)
	case float64:
		return int64(v)
	case string:
		n, _ := strconv.ParseInt(v, 10, 64)
		return n
	default:
		return 0
	}
}

// IsNull checks if the value for the given key is NULL or doesn't exist.
func (r Row) IsNull(key string) bool {
	v, ok := r[key]
	return !ok || v == nil
}

// Has checks if the key exists in the row (regardless of NULL status).
func (r Row) Has(key string) bool {
	_, ok := r[key]
	return ok
}

// Keys returns all column names in sorted order.
func (r Row) Keys() []string {
	keys := make([]string, 0, len(r))
	for k := range r {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// scanRows reads every row into a Row and closes rows.
func scanRows(rows *sql.Rows) ([]Row, error) {
	defer func() { _ = rows.Close() }()

	columns, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	var out []Row
	for rows.Next() {
		values := make([]interface{}, len(columns))
		ptrs := make([]interface{}, len(columns))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, err
		}

		row := make(Row, len(columns))
		for i, column := range columns {
			if b, ok := values[i].([]byte); ok {
				row[column] = string(b)
				continue
			}
			row[column] = values[i]
		}
		out = append(out, row)
	}
	return out, rows.Err()
}
