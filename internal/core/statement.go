package core

import (
	"context"
	"database/sql"
)

// Statement is any builder that renders to SQL: Select, Insert, Replace,
// Update and Delete. Statements can be nested as subqueries and derived tables.
type Statement interface {
	// String returns the SQL with :name placeholders.
	String() string
	// QueryBind returns the SQL with values inlined. For logs and debugging only.
	QueryBind() string
	// Binds returns the bind map of the placeholder render.
	Binds() *Binds
	// SQL returns the placeholder SQL and its binds from a single render.
	SQL() (string, *Binds)
	// Execute runs the statement against its connection.
	Execute(ctx context.Context) (sql.Result, error)

	render(mode renderMode) (string, *Binds)
}

// output implements the public render entry points on top of a builder's render.
type output struct {
	fn func(mode renderMode) (string, *Binds)
}

// String returns the SQL with :name placeholders.
func (o output) String() string {
	query, _ := o.fn(modePlaceholder)
	return query
}

// QueryBind returns the SQL with every value inlined. Strings are quoted but
// not escaped, so the result must never be executed.
func (o output) QueryBind() string {
	query, _ := o.fn(modeLiteral)
	return query
}

// Binds returns the bind map of the placeholder render.
func (o output) Binds() *Binds {
	_, binds := o.fn(modePlaceholder)
	return binds
}

// SQL returns the placeholder SQL together with its binds.
func (o output) SQL() (string, *Binds) {
	return o.fn(modePlaceholder)
}
