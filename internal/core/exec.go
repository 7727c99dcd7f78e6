package core

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/coregx/myquery/internal/tracer"
)

// call is one statement prepared for the driver.
type call struct {
	id     string
	query  string // driver SQL
	names  []string
	values []interface{}
	args   []interface{}
	table  string
}

// newCall renders st, binds it for the dialect and runs the validator.
func (db *DB) newCall(st Statement, table string) (*call, error) {
	raw, binds := st.SQL()
	names, values := binds.Names(), binds.Values()

	if db.validator != nil {
		if err := db.validator.ValidateQuery(raw); err != nil {
			return nil, err
		}
		if err := db.validator.ValidateBinds(names, values); err != nil {
			return nil, err
		}
	}

	query, args := db.dialect.Bind(raw, names, binds.Map())
	return &call{
		id:     uuid.NewString(),
		query:  query,
		names:  names,
		values: values,
		args:   args,
		table:  table,
	}, nil
}

// prepareStatement prepares a SQL statement, using transaction or statement cache.
// For transactions, bypasses cache to avoid conflicts.
func (db *DB) prepareStatement(ctx context.Context, query string) (*sql.Stmt, bool, error) {
	if db.tx != nil {
		stmt, err := db.tx.PrepareContext(ctx, query)
		if err != nil {
			return nil, false, err
		}
		return stmt, true, nil // true = needs close
	}

	stmt, err := db.stmtCache.Prepare(ctx, db.sqlDB, query)
	return stmt, false, err
}

// execute runs st through ExecContext.
func (db *DB) execute(ctx context.Context, st Statement, table string) (sql.Result, error) {
	if db == nil || db.sqlDB == nil {
		return nil, ErrNoConnection
	}

	c, err := db.newCall(st, table)
	if err != nil {
		db.logger.Warn("query rejected", "table", table, "error", err)
		return nil, err
	}

	ctx, span := db.tracer.StartSpan(ctx, "myquery.execute")
	defer span.End()

	start := time.Now()
	var result sql.Result
	stmt, needsClose, err := db.prepareStatement(ctx, c.query)
	if err == nil {
		if needsClose {
			defer func() { _ = stmt.Close() }()
		}
		result, err = stmt.ExecContext(ctx, c.args...)
	}
	elapsed := time.Since(start)

	var rowsAffected int64
	if result != nil {
		rowsAffected, _ = result.RowsAffected()
	}
	db.finish(ctx, span, c, elapsed, rowsAffected, err)
	return result, err
}

// fetch runs st through QueryContext and scans every row.
func (db *DB) fetch(ctx context.Context, st Statement, table string) ([]Row, error) {
	if db == nil || db.sqlDB == nil {
		return nil, ErrNoConnection
	}

	c, err := db.newCall(st, table)
	if err != nil {
		db.logger.Warn("query rejected", "table", table, "error", err)
		return nil, err
	}

	ctx, span := db.tracer.StartSpan(ctx, "myquery.get")
	defer span.End()

	start := time.Now()
	var out []Row
	stmt, needsClose, err := db.prepareStatement(ctx, c.query)
	if err == nil {
		if needsClose {
			defer func() { _ = stmt.Close() }()
		}
		var rows *sql.Rows
		rows, err = stmt.QueryContext(ctx, c.args...)
		if err == nil {
			out, err = scanRows(rows)
		}
	}
	elapsed := time.Since(start)

	db.finish(ctx, span, c, elapsed, int64(len(out)), err)
	return out, err
}

// finish logs the execution, annotates the span and calls the hook.
func (db *DB) finish(ctx context.Context, span tracer.Span, c *call, elapsed time.Duration, rows int64, err error) {
	operation := tracer.DetectOperation(c.query)
	params := db.sanitizer.FormatNamed(c.names, c.values)

	if err != nil {
		db.logger.Error("query execution failed",
			"sql", c.query,
			"params", params,
			"duration_ms", elapsed.Milliseconds(),
			"database", db.driverName,
			"query_id", c.id,
			"error", err,
		)
	} else {
		db.logger.Info("query executed",
			"sql", c.query,
			"params", params,
			"duration_ms", elapsed.Milliseconds(),
			"rows_affected", rows,
			"database", db.driverName,
			"query_id", c.id,
		)
	}

	tracer.AddQueryAttributes(span, &tracer.QueryMetadata{
		QueryID:      c.id,
		SQL:          c.query,
		BindCount:    len(c.names),
		Duration:     elapsed,
		RowsAffected: rows,
		Error:        err,
		Database:     db.driverName,
		Operation:    operation,
		Table:        c.table,
	})

	db.invokeHook(ctx, QueryEvent{
		QueryID:      c.id,
		SQL:          c.query,
		Args:         c.args,
		Table:        c.table,
		Duration:     elapsed,
		RowsAffected: rows,
		Error:        err,
		Operation:    operation,
	})
}
