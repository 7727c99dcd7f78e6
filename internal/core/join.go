package core

import (
	"fmt"
	"strings"
)

// JoinKind selects the join keyword.
type JoinKind int

// Join kinds.
const (
	InnerJoinKind JoinKind = iota
	LeftJoinKind
	RightJoinKind
	FullJoinKind
	CrossJoinKind
)

// String returns the SQL keyword for the join kind.
func (k JoinKind) String() string {
	switch k {
	case LeftJoinKind:
		return "LEFT JOIN"
	case RightJoinKind:
		return "RIGHT JOIN"
	case FullJoinKind:
		return "FULL OUTER JOIN"
	case CrossJoinKind:
		return "CROSS JOIN"
	default:
		return "INNER JOIN"
	}
}

// InnerQuery is a statement used as a derived table under an alias.
type InnerQuery struct {
	sub   Statement
	alias string
}

// NewInnerQuery wraps sub as a derived table named alias.
func NewInnerQuery(sub Statement, alias string) *InnerQuery {
	return &InnerQuery{sub: sub, alias: alias}
}

// Alias returns the derived table alias.
func (iq *InnerQuery) Alias() string {
	return iq.alias
}

// Statement returns the wrapped statement.
func (iq *InnerQuery) Statement() Statement {
	return iq.sub
}

func (iq *InnerQuery) render(ctx *renderContext) string {
	return "(" + ctx.embed(iq.sub) + ") AS " + iq.alias
}

// tableRef is either a literal table name or a derived table.
type tableRef struct {
	table string
	inner *InnerQuery
}

// newTableRef accepts a table name or *InnerQuery and panics on anything else.
func newTableRef(ref interface{}) tableRef {
	switch r := ref.(type) {
	case string:
		return tableRef{table: r}
	case *InnerQuery:
		return tableRef{inner: r}
	default:
		panic(fmt.Sprintf("myquery: table reference must be string or *InnerQuery, got %T", ref))
	}
}

// name is how columns refer to the target.
func (r tableRef) name() string {
	if r.inner != nil {
		return r.inner.alias
	}
	return r.table
}

func (r tableRef) reserve(ctx *renderContext) {
	if r.inner != nil {
		ctx.sub(r.inner.sub)
	}
}

func (r tableRef) render(ctx *renderContext) string {
	if r.inner != nil {
		return r.inner.render(ctx)
	}
	return r.table
}

type joinPair struct {
	left, right string
}

// Join describes one joined table.
type Join struct {
	kind  JoinKind
	ref   tableRef
	pairs []joinPair
}

func newJoin(kind JoinKind, ref interface{}, left, right string) *Join {
	j := &Join{kind: kind, ref: newTableRef(ref)}
	if kind != CrossJoinKind {
		j.pairs = append(j.pairs, joinPair{left: left, right: right})
	}
	return j
}

// InnerJoin joins ref ON base.left = ref.right. ref is a table name or *InnerQuery.
func InnerJoin(ref interface{}, left, right string) *Join {
	return newJoin(InnerJoinKind, ref, left, right)
}

// LeftJoin joins ref with LEFT JOIN.
func LeftJoin(ref interface{}, left, right string) *Join {
	return newJoin(LeftJoinKind, ref, left, right)
}

// RightJoin joins ref with RIGHT JOIN.
func RightJoin(ref interface{}, left, right string) *Join {
	return newJoin(RightJoinKind, ref, left, right)
}

// FullJoin joins ref with FULL OUTER JOIN.
func FullJoin(ref interface{}, left, right string) *Join {
	return newJoin(FullJoinKind, ref, left, right)
}

// CrossJoin joins ref with CROSS JOIN. It never renders an ON clause.
func CrossJoin(ref interface{}) *Join {
	return newJoin(CrossJoinKind, ref, "", "")
}

// And adds another column pair to the ON clause. Ignored for cross joins.
func (j *Join) And(left, right string) *Join {
	if j.kind != CrossJoinKind {
		j.pairs = append(j.pairs, joinPair{left: left, right: right})
	}
	return j
}

// Kind returns the join kind.
func (j *Join) Kind() JoinKind {
	return j.kind
}

func (j *Join) render(ctx *renderContext, base string) string {
	sql := j.kind.String() + " " + j.ref.render(ctx)
	if j.kind == CrossJoinKind || len(j.pairs) == 0 {
		return sql
	}

	ref := j.ref.name()
	on := make([]string, len(j.pairs))
	for i, p := range j.pairs {
		on[i] = qualify(base, p.left) + " = " + qualify(ref, p.right)
	}
	return sql + " ON " + strings.Join(on, " AND ")
}

// joinBuilder promotes Join onto a statement builder.
type joinBuilder[T any] struct {
	self  T
	joins *[]*Join
}

// Join appends a join; joins render in call order.
func (b joinBuilder[T]) Join(j *Join) T {
	*b.joins = append(*b.joins, j)
	return b.self
}
