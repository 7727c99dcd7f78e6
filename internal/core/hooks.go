package core

import (
	"context"
	"time"
)

// QueryEvent contains information about an executed statement.
// This is passed to QueryHook callbacks for logging, metrics, or tracing.
type QueryEvent struct {
	// QueryID identifies this execution in logs and spans.
	QueryID string
	// SQL is the statement as sent to the driver.
	SQL string
	// Args are the driver arguments, in driver order.
	Args []interface{}
	// Table is the statement's target table or derived table alias.
	Table string
	// Duration is how long the statement took to execute
	Duration time.Duration
	// RowsAffected is the number of rows affected, or returned for fetches.
	RowsAffected int64
	// Error is any error that occurred during execution (nil on success)
	Error error
	// Operation is SELECT, INSERT, REPLACE, UPDATE, DELETE or UNKNOWN.
	Operation string
}

// QueryHook is a callback function invoked after each execution.
//
// Example:
//
//	db, _ := myquery.Open("mysql", dsn,
//	    myquery.WithQueryHook(func(ctx context.Context, e myquery.QueryEvent) {
//	        slog.Info("query", "sql", e.SQL, "duration", e.Duration, "err", e.Error)
//	    }))
type QueryHook func(ctx context.Context, event QueryEvent)

// invokeHook calls the query hook if set.
func (db *DB) invokeHook(ctx context.Context, event QueryEvent) {
	if db.queryHook != nil {
		db.queryHook(ctx, event)
	}
}
