package core

// Query selects the statement type for one table.
//
//	q := From("users", db)
//	q.Select("id").Equal("id", 1).Get(ctx)
//	q.Update().Value("name", "x").Equal("id", 1).Execute(ctx)
type Query struct {
	target tableRef
	db     *DB
}

// From starts a statement on table, which is a table name or an *InnerQuery.
// Any other type panics. db may be nil for statements that are only rendered.
func From(table interface{}, db *DB) *Query {
	return &Query{target: newTableRef(table), db: db}
}

// Select starts a SELECT. No columns means "*".
func (q *Query) Select(columns ...string) *SelectQuery {
	return newSelectQuery(q.target, q.db, columns)
}

// Insert starts an INSERT INTO.
func (q *Query) Insert() *InsertQuery {
	return newInsertQuery(q.target, q.db)
}

// Replace starts a REPLACE INTO.
func (q *Query) Replace() *ReplaceQuery {
	return newReplaceQuery(q.target, q.db)
}

// Update starts an UPDATE.
func (q *Query) Update() *UpdateQuery {
	return newUpdateQuery(q.target, q.db)
}

// Delete starts a DELETE.
func (q *Query) Delete() *DeleteQuery {
	return newDeleteQuery(q.target, q.db)
}
