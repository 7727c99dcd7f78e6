package core

import (
	"context"
	"database/sql"
)

// DeleteQuery builds a DELETE statement.
//
// With an alias the multi-table form is used:
//
//	DELETE u FROM users AS u INNER JOIN bans ON u.id = bans.user_id
type DeleteQuery struct {
	output
	clause
	conditionBuilder[*DeleteQuery]
	orderBuilder[*DeleteQuery]
	joinBuilder[*DeleteQuery]
}

func newDeleteQuery(target tableRef, db *DB) *DeleteQuery {
	q := &DeleteQuery{clause: newClause(DeleteKind, target, db)}
	q.output = output{fn: q.render}
	q.conditionBuilder = conditionBuilder[*DeleteQuery]{self: q, where: &q.clause.where}
	q.orderBuilder = orderBuilder[*DeleteQuery]{self: q, c: &q.clause}
	q.joinBuilder = joinBuilder[*DeleteQuery]{self: q, joins: &q.clause.joins}
	return q
}

// Alias names the target table. Columns and joins are then qualified with the alias.
func (q *DeleteQuery) Alias(alias string) *DeleteQuery {
	q.alias = alias
	return q
}

func (q *DeleteQuery) render(mode renderMode) (string, *Binds) {
	ctx := newRenderContext(mode, q.ref())
	q.clause.reserve(ctx)

	head := "DELETE FROM " + q.target.render(ctx)
	if q.alias != "" {
		head = "DELETE " + q.alias + " FROM " + q.target.render(ctx) + " AS " + q.alias
	}

	query := joinNonEmpty(" ",
		head,
		q.renderJoins(ctx),
		q.clause.where.renderWhere(ctx),
		q.renderOrder(),
		q.renderLimit(),
	)
	return query, ctx.binds
}

// Execute runs the DELETE.
func (q *DeleteQuery) Execute(ctx context.Context) (sql.Result, error) {
	return q.db.execute(ctx, q, q.Table())
}
