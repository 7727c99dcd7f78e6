package core

import (
	"context"
	"database/sql"
	"sort"
	"strconv"
	"strings"
)

// valueSet is the column list of Insert, Replace and Update.
// A single pending row keeps call order; Rows switches to multi-row mode.
type valueSet struct {
	columns []string
	values  map[string]interface{}
	rows    []map[string]interface{}
}

func (v *valueSet) set(column string, value interface{}) {
	if v.values == nil {
		v.values = make(map[string]interface{})
	}
	if _, ok := v.values[column]; !ok {
		v.columns = append(v.columns, column)
	}
	v.values[column] = value
}

func (v *valueSet) merge(values map[string]interface{}) {
	for _, column := range sortedKeys(values) {
		v.set(column, values[column])
	}
}

func (v *valueSet) multi() bool {
	return len(v.rows) > 0
}

// rowColumns returns the columns of a multi-row set: the first row's sorted keys.
func (v *valueSet) rowColumns() []string {
	if len(v.rows) == 0 {
		return nil
	}
	return sortedKeys(v.rows[0])
}

func sortedKeys(m map[string]interface{}) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// renderValues renders "(a, b) VALUES (:bind_a, :bind_b)".
// Multi-row sets use :bind_{row}_{column}; a value missing from a row binds NULL.
func (v *valueSet) renderValues(ctx *renderContext) string {
	if !v.multi() {
		tokens := make([]string, len(v.columns))
		for i, column := range v.columns {
			tokens[i] = ctx.bind(ctx.generate("bind_"+bindName(column)), v.values[column])
		}
		return "(" + strings.Join(v.columns, ", ") + ") VALUES (" + strings.Join(tokens, ", ") + ")"
	}

	columns := v.rowColumns()
	tuples := make([]string, len(v.rows))
	for r, row := range v.rows {
		tokens := make([]string, len(columns))
		prefix := "bind_" + strconv.Itoa(r) + "_"
		for i, column := range columns {
			tokens[i] = ctx.bind(ctx.generate(prefix+bindName(column)), row[column])
		}
		tuples[r] = "(" + strings.Join(tokens, ", ") + ")"
	}
	return "(" + strings.Join(columns, ", ") + ") VALUES " + strings.Join(tuples, ", ")
}

// renderSet renders "a = :bind_a, b = :bind_b" for UPDATE.
func (v *valueSet) renderSet(ctx *renderContext) string {
	parts := make([]string, len(v.columns))
	for i, column := range v.columns {
		parts[i] = column + " = " + ctx.bind(ctx.generate("bind_"+bindName(column)), v.values[column])
	}
	return strings.Join(parts, ", ")
}

// valueBuilder promotes Value and Values onto a statement builder.
type valueBuilder[T any] struct {
	self T
	set  *valueSet
}

// Value sets one column of the pending row. Setting a column again replaces its value.
func (b valueBuilder[T]) Value(column string, value interface{}) T {
	b.set.set(column, value)
	return b.self
}

// Values sets several columns of the pending row, in sorted key order.
func (b valueBuilder[T]) Values(values map[string]interface{}) T {
	b.set.merge(values)
	return b.self
}

// InsertQuery builds an INSERT statement.
type InsertQuery struct {
	output
	clause
	valueBuilder[*InsertQuery]

	set      valueSet
	onUpdate []string
}

func newInsertQuery(target tableRef, db *DB) *InsertQuery {
	q := &InsertQuery{clause: newClause(InsertKind, target, db)}
	q.output = output{fn: q.render}
	q.valueBuilder = valueBuilder[*InsertQuery]{self: q, set: &q.set}
	return q
}

// Rows replaces the pending rows. Columns come from the first row's sorted keys.
func (q *InsertQuery) Rows(rows []map[string]interface{}) *InsertQuery {
	q.set.rows = rows
	return q
}

// On appends "column = VALUES(column)" to ON DUPLICATE KEY UPDATE.
func (q *InsertQuery) On(column string) *InsertQuery {
	q.onUpdate = append(q.onUpdate, column)
	return q
}

func (q *InsertQuery) render(mode renderMode) (string, *Binds) {
	ctx := newRenderContext(mode, q.ref())
	q.clause.reserve(ctx)

	query := "INSERT INTO " + q.target.render(ctx) + " " + q.set.renderValues(ctx)
	if len(q.onUpdate) > 0 {
		parts := make([]string, len(q.onUpdate))
		for i, column := range q.onUpdate {
			parts[i] = column + " = VALUES(" + column + ")"
		}
		query += " ON DUPLICATE KEY UPDATE " + strings.Join(parts, ", ")
	}
	return query, ctx.binds
}

// Execute runs the INSERT.
func (q *InsertQuery) Execute(ctx context.Context) (sql.Result, error) {
	return q.db.execute(ctx, q, q.Table())
}

// ReplaceQuery builds a REPLACE INTO statement. It has no ON DUPLICATE KEY form.
type ReplaceQuery struct {
	output
	clause
	valueBuilder[*ReplaceQuery]

	set valueSet
}

func newReplaceQuery(target tableRef, db *DB) *ReplaceQuery {
	q := &ReplaceQuery{clause: newClause(ReplaceKind, target, db)}
	q.output = output{fn: q.render}
	q.valueBuilder = valueBuilder[*ReplaceQuery]{self: q, set: &q.set}
	return q
}

// Rows replaces the pending rows. Columns come from the first row's sorted keys.
func (q *ReplaceQuery) Rows(rows []map[string]interface{}) *ReplaceQuery {
	q.set.rows = rows
	return q
}

func (q *ReplaceQuery) render(mode renderMode) (string, *Binds) {
	ctx := newRenderContext(mode, q.ref())
	q.clause.reserve(ctx)
	return "REPLACE INTO " + q.target.render(ctx) + " " + q.set.renderValues(ctx), ctx.binds
}

// Execute runs the REPLACE.
func (q *ReplaceQuery) Execute(ctx context.Context) (sql.Result, error) {
	return q.db.execute(ctx, q, q.Table())
}
