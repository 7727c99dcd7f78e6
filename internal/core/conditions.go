// Copyright (c) 2025 COREGX. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package core

import (
	"strconv"
	"strings"
)

// node is one predicate of a condition group.
type node interface {
	render(ctx *renderContext) string
	// reserve registers caller-chosen bind names and nested statements
	// before any name is generated.
	reserve(ctx *renderContext)
}

// compareNode covers Equal, Compare and Like.
type compareNode struct {
	column   string
	operator string
	value    interface{}
}

func (n *compareNode) reserve(_ *renderContext) {}

func (n *compareNode) render(ctx *renderContext) string {
	name := ctx.generate(bindName(n.column))
	return "(" + ctx.column(n.column) + " " + n.operator + " " + ctx.bind(name, n.value) + ")"
}

type betweenNode struct {
	column     string
	start, end interface{}
}

func (n *betweenNode) reserve(_ *renderContext) {}

func (n *betweenNode) render(ctx *renderContext) string {
	start := ctx.bind(ctx.generate("b_start"), n.start)
	end := ctx.bind(ctx.generate("b_end"), n.end)
	return "(" + ctx.column(n.column) + " BETWEEN " + start + " AND " + end + ")"
}

type inNode struct {
	column string
	values []interface{}
}

func (n *inNode) reserve(_ *renderContext) {}

func (n *inNode) render(ctx *renderContext) string {
	tokens := make([]string, len(n.values))
	for i, v := range n.values {
		tokens[i] = ctx.bind(ctx.generate("in_"+strconv.Itoa(i)), v)
	}
	return "(" + ctx.column(n.column) + " IN (" + strings.Join(tokens, ", ") + "))"
}

type rawNode struct {
	fragment string
	params   Params
}

func (n *rawNode) reserve(ctx *renderContext) {
	for _, name := range n.params.sortedNames() {
		ctx.reserve(name)
	}
}

func (n *rawNode) render(ctx *renderContext) string {
	return ctx.raw(n.fragment, n.params)
}

// subqueryNode covers EXISTS, NOT EXISTS and WhereClause.
type subqueryNode struct {
	prefix string
	sub    Statement
}

func (n *subqueryNode) reserve(ctx *renderContext) {
	ctx.sub(n.sub)
}

func (n *subqueryNode) render(ctx *renderContext) string {
	return n.prefix + " (" + ctx.embed(n.sub) + ")"
}

type groupNode struct {
	conds *Conditions
}

func (n *groupNode) reserve(ctx *renderContext) {
	n.conds.reserve(ctx)
}

func (n *groupNode) render(ctx *renderContext) string {
	return n.conds.renderNested(ctx)
}

type condItem struct {
	node   node
	simple bool
}

// Conditions is an ordered group of predicates joined by AND (strict, the
// default) or OR. Simple predicates (Equal, Compare, Like) render together in
// one parenthesized group; every other predicate follows as its own clause.
type Conditions struct {
	items  []condItem
	strict bool
}

// NewConditions returns an empty strict group.
func NewConditions() *Conditions {
	return &Conditions{strict: true}
}

func (c *Conditions) add(n node, simple bool) *Conditions {
	c.items = append(c.items, condItem{node: n, simple: simple})
	return c
}

// Equal adds (column = :column).
func (c *Conditions) Equal(column string, value interface{}) *Conditions {
	return c.add(&compareNode{column: column, operator: "=", value: value}, true)
}

// Compare adds (column <operator> :column). The operator is emitted verbatim.
func (c *Conditions) Compare(column, operator string, value interface{}) *Conditions {
	return c.add(&compareNode{column: column, operator: operator, value: value}, true)
}

// Like adds (column LIKE :column). Wildcards are the caller's business.
func (c *Conditions) Like(column string, pattern interface{}) *Conditions {
	return c.add(&compareNode{column: column, operator: "LIKE", value: pattern}, true)
}

// Between adds (column BETWEEN :b_start AND :b_end).
// Start and end are not validated or reordered.
func (c *Conditions) Between(column string, start, end interface{}) *Conditions {
	return c.add(&betweenNode{column: column, start: start, end: end}, false)
}

// In adds (column IN (:in_0, :in_1, ...)). An empty list renders IN ().
func (c *Conditions) In(column string, values ...interface{}) *Conditions {
	return c.add(&inNode{column: column, values: values}, false)
}

// Where adds a raw fragment. Its params are bound under the names the fragment uses.
func (c *Conditions) Where(fragment string, params ...Params) *Conditions {
	merged := Params{}
	for _, p := range params {
		for k, v := range p {
			merged[k] = v
		}
	}
	return c.add(&rawNode{fragment: fragment, params: merged}, false)
}

// WhereExist adds EXISTS (<sub>).
func (c *Conditions) WhereExist(sub Statement) *Conditions {
	return c.WhereClause("EXISTS", sub)
}

// WhereNotExist adds NOT EXISTS (<sub>).
func (c *Conditions) WhereNotExist(sub Statement) *Conditions {
	return c.WhereClause("NOT EXISTS", sub)
}

// WhereClause adds <prefix> (<sub>), e.g. WhereClause("user_id IN", sub).
func (c *Conditions) WhereClause(prefix string, sub Statement) *Conditions {
	return c.add(&subqueryNode{prefix: prefix, sub: sub}, false)
}

// Group adds a nested group built by fn and joined by its own glue.
func (c *Conditions) Group(strict bool, fn func(g *Conditions)) *Conditions {
	g := NewConditions().StrictMode(strict)
	fn(g)
	return c.add(&groupNode{conds: g}, false)
}

// StrictMode sets the glue of this group: true joins with AND, false with OR.
func (c *Conditions) StrictMode(strict bool) *Conditions {
	c.strict = strict
	return c
}

// IsEmpty reports whether the group holds no predicates.
func (c *Conditions) IsEmpty() bool {
	return len(c.items) == 0
}

func (c *Conditions) glue() string {
	if c.strict {
		return " AND "
	}
	return " OR "
}

func (c *Conditions) reserve(ctx *renderContext) {
	for _, item := range c.items {
		item.node.reserve(ctx)
	}
}

// render returns the top-level predicate list without the WHERE keyword.
func (c *Conditions) render(ctx *renderContext) string {
	var simple, clauses []string
	for _, item := range c.items {
		sql := item.node.render(ctx)
		if sql == "" {
			continue
		}
		if item.simple {
			simple = append(simple, sql)
		} else {
			clauses = append(clauses, sql)
		}
	}

	parts := make([]string, 0, len(clauses)+1)
	if len(simple) > 0 {
		parts = append(parts, "( "+strings.Join(simple, c.glue())+" )")
	}
	parts = append(parts, clauses...)
	return strings.Join(parts, c.glue())
}

// renderNested renders every predicate in call order inside one paren pair.
func (c *Conditions) renderNested(ctx *renderContext) string {
	parts := make([]string, 0, len(c.items))
	for _, item := range c.items {
		if sql := item.node.render(ctx); sql != "" {
			parts = append(parts, sql)
		}
	}
	if len(parts) == 0 {
		return ""
	}
	return "( " + strings.Join(parts, c.glue()) + " )"
}

// renderWhere returns "WHERE ..." or "" for an empty group.
func (c *Conditions) renderWhere(ctx *renderContext) string {
	if body := c.render(ctx); body != "" {
		return "WHERE " + body
	}
	return ""
}

// conditionBuilder promotes the Conditions API onto a statement builder so each
// call returns the concrete builder for chaining.
type conditionBuilder[T any] struct {
	self  T
	where *Conditions
}

// Equal adds (column = :column).
func (b conditionBuilder[T]) Equal(column string, value interface{}) T {
	b.where.Equal(column, value)
	return b.self
}

// Compare adds (column <operator> :column).
func (b conditionBuilder[T]) Compare(column, operator string, value interface{}) T {
	b.where.Compare(column, operator, value)
	return b.self
}

// Like adds (column LIKE :column).
func (b conditionBuilder[T]) Like(column string, pattern interface{}) T {
	b.where.Like(column, pattern)
	return b.self
}

// Between adds (column BETWEEN :b_start AND :b_end).
func (b conditionBuilder[T]) Between(column string, start, end interface{}) T {
	b.where.Between(column, start, end)
	return b.self
}

// In adds (column IN (:in_0, ...)).
func (b conditionBuilder[T]) In(column string, values ...interface{}) T {
	b.where.In(column, values...)
	return b.self
}

// Where adds a raw fragment with optional named params.
func (b conditionBuilder[T]) Where(fragment string, params ...Params) T {
	b.where.Where(fragment, params...)
	return b.self
}

// WhereExist adds EXISTS (<sub>).
func (b conditionBuilder[T]) WhereExist(sub Statement) T {
	b.where.WhereExist(sub)
	return b.self
}

// WhereNotExist adds NOT EXISTS (<sub>).
func (b conditionBuilder[T]) WhereNotExist(sub Statement) T {
	b.where.WhereNotExist(sub)
	return b.self
}

// WhereClause adds <prefix> (<sub>).
func (b conditionBuilder[T]) WhereClause(prefix string, sub Statement) T {
	b.where.WhereClause(prefix, sub)
	return b.self
}

// Group adds a nested predicate group.
func (b conditionBuilder[T]) Group(strict bool, fn func(g *Conditions)) T {
	b.where.Group(strict, fn)
	return b.self
}

// StrictMode sets the glue of the statement's condition group.
func (b conditionBuilder[T]) StrictMode(strict bool) T {
	b.where.StrictMode(strict)
	return b.self
}
