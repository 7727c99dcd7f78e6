package core

import (
	"database/sql"
	"errors"

	"github.com/coregx/myquery/internal/dialects"
	"github.com/coregx/myquery/internal/security"
)

// Predefined errors returned by myquery operations.
var (
	// ErrNoRows is returned by First when the query matched nothing.
	ErrNoRows = sql.ErrNoRows
	// ErrTxDone is returned when operating on an already committed or rolled back transaction.
	ErrTxDone = sql.ErrTxDone
	// ErrUnsupportedDialect is returned when no dialect is registered for the driver name.
	ErrUnsupportedDialect = dialects.ErrUnsupportedDialect
	// ErrNoConnection is returned when a statement built without a DB is executed.
	ErrNoConnection = errors.New("statement has no database connection")
	// ErrUnsafeQuery is returned when the validator rejects a statement.
	ErrUnsafeQuery = security.ErrUnsafeQuery
)

// WrapError wraps an error with additional context message.
// It is used for setup failures only; driver errors are returned as-is.
func WrapError(err error, message string) error {
	if err == nil {
		return nil
	}
	return &wrappedError{
		msg: message,
		err: err,
	}
}

type wrappedError struct {
	msg string
	err error
}

func (e *wrappedError) Error() string {
	return e.msg + ": " + e.err.Error()
}

func (e *wrappedError) Unwrap() error {
	return e.err
}
