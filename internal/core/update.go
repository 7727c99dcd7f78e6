package core

import (
	"context"
	"database/sql"
)

// UpdateQuery builds an UPDATE statement.
//
// An update without any Value renders "UPDATE t SET" and fails in the driver.
type UpdateQuery struct {
	output
	clause
	conditionBuilder[*UpdateQuery]
	orderBuilder[*UpdateQuery]
	joinBuilder[*UpdateQuery]
	valueBuilder[*UpdateQuery]

	set valueSet
}

func newUpdateQuery(target tableRef, db *DB) *UpdateQuery {
	q := &UpdateQuery{clause: newClause(UpdateKind, target, db)}
	q.output = output{fn: q.render}
	q.conditionBuilder = conditionBuilder[*UpdateQuery]{self: q, where: &q.clause.where}
	q.orderBuilder = orderBuilder[*UpdateQuery]{self: q, c: &q.clause}
	q.joinBuilder = joinBuilder[*UpdateQuery]{self: q, joins: &q.clause.joins}
	q.valueBuilder = valueBuilder[*UpdateQuery]{self: q, set: &q.set}
	return q
}

func (q *UpdateQuery) render(mode renderMode) (string, *Binds) {
	ctx := newRenderContext(mode, q.ref())
	q.clause.reserve(ctx)

	set := "SET"
	if body := q.set.renderSet(ctx); body != "" {
		set += " " + body
	}

	query := joinNonEmpty(" ",
		"UPDATE "+q.target.render(ctx),
		q.renderJoins(ctx),
		set,
		q.clause.where.renderWhere(ctx),
		q.renderOrder(),
		q.renderLimit(),
	)
	return query, ctx.binds
}

// Execute runs the UPDATE.
func (q *UpdateQuery) Execute(ctx context.Context) (sql.Result, error) {
	return q.db.execute(ctx, q, q.Table())
}
