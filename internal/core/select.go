package core

import (
	"context"
	"database/sql"
	"strings"
)

// SelectQuery builds a SELECT statement.
//
//	From("users", db).Select("id", "name").
//	    Equal("status", "active").
//	    Order("created_at", DESC).
//	    Limit(0, 10)
type SelectQuery struct {
	output
	clause
	conditionBuilder[*SelectQuery]
	orderBuilder[*SelectQuery]
	joinBuilder[*SelectQuery]

	columns []string
}

func newSelectQuery(target tableRef, db *DB, columns []string) *SelectQuery {
	s := &SelectQuery{clause: newClause(SelectKind, target, db), columns: columns}
	s.output = output{fn: s.render}
	s.conditionBuilder = conditionBuilder[*SelectQuery]{self: s, where: &s.clause.where}
	s.orderBuilder = orderBuilder[*SelectQuery]{self: s, c: &s.clause}
	s.joinBuilder = joinBuilder[*SelectQuery]{self: s, joins: &s.clause.joins}
	return s
}

// Columns replaces the projection. Expressions such as "COUNT(*) AS n" are emitted verbatim.
func (s *SelectQuery) Columns(columns ...string) *SelectQuery {
	s.columns = columns
	return s
}

// GroupBy appends GROUP BY columns. They are emitted verbatim.
func (s *SelectQuery) GroupBy(columns ...string) *SelectQuery {
	s.groupBy = append(s.groupBy, columns...)
	return s
}

func (s *SelectQuery) render(mode renderMode) (string, *Binds) {
	ctx := newRenderContext(mode, s.ref())
	s.clause.reserve(ctx)

	projection := "*"
	if len(s.columns) > 0 {
		projection = strings.Join(s.columns, ", ")
	}

	query := joinNonEmpty(" ",
		"SELECT "+projection,
		"FROM "+s.target.render(ctx),
		s.renderJoins(ctx),
		s.clause.where.renderWhere(ctx),
		s.renderGroupBy(),
		s.renderOrder(),
		s.renderLimit(),
	)
	return query, ctx.binds
}

// Execute runs the SELECT through ExecContext, discarding the rows.
func (s *SelectQuery) Execute(ctx context.Context) (sql.Result, error) {
	return s.db.execute(ctx, s, s.Table())
}

// Get runs the SELECT and returns every row.
func (s *SelectQuery) Get(ctx context.Context) ([]Row, error) {
	return s.db.fetch(ctx, s, s.Table())
}

// First runs the SELECT and returns the first row, or ErrNoRows.
// The statement is executed as built; add Limit(0, 1) to restrict the fetch.
func (s *SelectQuery) First(ctx context.Context) (Row, error) {
	rows, err := s.Get(ctx)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrNoRows
	}
	return rows[0], nil
}
