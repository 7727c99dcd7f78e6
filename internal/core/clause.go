package core

import (
	"strconv"
	"strings"
)

// Kind is the statement type.
type Kind int

// Statement kinds.
const (
	SelectKind Kind = iota
	InsertKind
	UpdateKind
	DeleteKind
	ReplaceKind
)

// String returns the SQL verb of the statement kind.
func (k Kind) String() string {
	switch k {
	case InsertKind:
		return "INSERT"
	case UpdateKind:
		return "UPDATE"
	case DeleteKind:
		return "DELETE"
	case ReplaceKind:
		return "REPLACE"
	default:
		return "SELECT"
	}
}

// Direction is an ORDER BY direction.
type Direction int

// Order directions.
const (
	ASC Direction = iota
	DESC
)

// String returns ASC or DESC.
func (d Direction) String() string {
	if d == DESC {
		return "DESC"
	}
	return "ASC"
}

type orderTerm struct {
	column    string
	direction Direction
}

// clause is the state shared by all statement builders.
type clause struct {
	kind   Kind
	target tableRef
	alias  string
	db     *DB

	where   Conditions
	joins   []*Join
	groupBy []string
	orders  []orderTerm

	limitStart int
	limitEnd   int
	offset     int
}

func newClause(kind Kind, target tableRef, db *DB) clause {
	return clause{
		kind:   kind,
		target: target,
		db:     db,
		where:  Conditions{strict: true},
	}
}

// ref is the name used to qualify columns: the alias when set, else the target name.
func (c *clause) ref() string {
	if c.alias != "" {
		return c.alias
	}
	return c.target.name()
}

// Table returns the target table name, or the derived table alias.
func (c *clause) Table() string {
	return c.target.name()
}

// Kind returns the statement kind.
func (c *clause) Kind() Kind {
	return c.kind
}

// reserve walks every caller-named bind and nested statement.
func (c *clause) reserve(ctx *renderContext) {
	c.target.reserve(ctx)
	for _, j := range c.joins {
		j.ref.reserve(ctx)
	}
	c.where.reserve(ctx)
}

func (c *clause) renderJoins(ctx *renderContext) string {
	if len(c.joins) == 0 {
		return ""
	}
	base := c.ref()
	parts := make([]string, len(c.joins))
	for i, j := range c.joins {
		parts[i] = j.render(ctx, base)
	}
	return strings.Join(parts, " ")
}

func (c *clause) renderGroupBy() string {
	if len(c.groupBy) == 0 {
		return ""
	}
	return "GROUP BY " + strings.Join(c.groupBy, ", ")
}

func (c *clause) renderOrder() string {
	if len(c.orders) == 0 {
		return ""
	}
	ref := c.ref()
	parts := make([]string, len(c.orders))
	for i, o := range c.orders {
		parts[i] = qualify(ref, o.column) + " " + o.direction.String()
	}
	return "ORDER BY " + strings.Join(parts, ", ")
}

// renderLimit: an offset selects LIMIT n OFFSET m; a start selects LIMIT s, n;
// a bare length selects LIMIT n; all zero renders nothing.
func (c *clause) renderLimit() string {
	switch {
	case c.offset > 0:
		return "LIMIT " + strconv.Itoa(c.limitEnd) + " OFFSET " + strconv.Itoa(c.offset)
	case c.limitStart > 0:
		return "LIMIT " + strconv.Itoa(c.limitStart) + ", " + strconv.Itoa(c.limitEnd)
	case c.limitEnd > 0:
		return "LIMIT " + strconv.Itoa(c.limitEnd)
	default:
		return ""
	}
}

func clampZero(n int) int {
	if n < 0 {
		return 0
	}
	return n
}

// orderBuilder promotes ordering and limits onto a statement builder.
type orderBuilder[T any] struct {
	self T
	c    *clause
}

// Order appends column with direction; bare columns are qualified with the table.
func (b orderBuilder[T]) Order(column string, direction Direction) T {
	b.c.orders = append(b.c.orders, orderTerm{column: column, direction: direction})
	return b.self
}

// OrderIfNull orders by "column IS NULL".
func (b orderBuilder[T]) OrderIfNull(column string, direction Direction) T {
	return b.Order(column+" IS NULL", direction)
}

// OrderIfNotNull orders by "column IS NOT NULL".
func (b orderBuilder[T]) OrderIfNotNull(column string, direction Direction) T {
	return b.Order(column+" IS NOT NULL", direction)
}

// Limit sets LIMIT start, length. Negative values clamp to zero, so a negative
// start renders LIMIT length and two negatives render no LIMIT at all.
func (b orderBuilder[T]) Limit(start, length int) T {
	b.c.limitStart = clampZero(start)
	b.c.limitEnd = clampZero(length)
	return b.self
}

// LimitStart sets the start of LIMIT start, length.
func (b orderBuilder[T]) LimitStart(start int) T {
	b.c.limitStart = clampZero(start)
	return b.self
}

// LimitEnd sets the row count.
func (b orderBuilder[T]) LimitEnd(length int) T {
	b.c.limitEnd = clampZero(length)
	return b.self
}

// Offset switches to LIMIT length OFFSET offset.
func (b orderBuilder[T]) Offset(offset int) T {
	b.c.offset = clampZero(offset)
	return b.self
}
