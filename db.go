// Package myquery is a fluent builder for MySQL-flavored SQL with named
// placeholders. Every statement renders two ways: with :name placeholders and a
// bind map for execution, or with values inlined for logs. Execution goes
// through database/sql with a dialect that adapts placeholders to the driver.
//
//	db, err := myquery.Open("mysql", dsn)
//	rows, err := db.From("users").Select("id", "name").
//	    Equal("status", "active").
//	    Order("created_at", myquery.DESC).
//	    Limit(0, 10).
//	    Get(ctx)
package myquery

import (
	"github.com/coregx/myquery/internal/cache"
	"github.com/coregx/myquery/internal/core"
	"github.com/coregx/myquery/internal/dialects"
	"github.com/coregx/myquery/internal/logger"
	"github.com/coregx/myquery/internal/security"
	"github.com/coregx/myquery/internal/tracer"
)

type (
	// DB represents the main database connection with caching and tracing capabilities.
	DB = core.DB
	// Option is a functional option for configuring DB.
	Option = core.Option
	// Tx represents a database transaction.
	Tx = core.Tx
	// TxOptions represents transaction options including isolation level.
	TxOptions = core.TxOptions

	// Query selects the statement type for one table.
	Query = core.Query
	// Statement is any renderable, executable builder.
	Statement = core.Statement
	// SelectQuery builds SELECT statements.
	SelectQuery = core.SelectQuery
	// InsertQuery builds INSERT statements.
	InsertQuery = core.InsertQuery
	// ReplaceQuery builds REPLACE INTO statements.
	ReplaceQuery = core.ReplaceQuery
	// UpdateQuery builds UPDATE statements.
	UpdateQuery = core.UpdateQuery
	// DeleteQuery builds DELETE statements.
	DeleteQuery = core.DeleteQuery

	// Conditions is a nested predicate group passed to Group.
	Conditions = core.Conditions
	// Params holds named values for raw WHERE fragments.
	Params = core.Params
	// Binds is the ordered bind map of a placeholder render.
	Binds = core.Binds
	// Bind is one placeholder name and value.
	Bind = core.Bind
	// Join describes one joined table.
	Join = core.Join
	// InnerQuery wraps a statement as an aliased derived table.
	InnerQuery = core.InnerQuery
	// Direction is an ORDER BY direction.
	Direction = core.Direction
	// Kind is the statement type.
	Kind = core.Kind
	// Row is one fetched row keyed by column name.
	Row = core.Row

	// QueryEvent is passed to QueryHook after every execution.
	QueryEvent = core.QueryEvent
	// QueryHook is called after every execution.
	QueryHook = core.QueryHook
	// CacheStats holds prepared statement cache counters.
	CacheStats = cache.Stats

	// Logger is the logging interface used for execution logs.
	Logger = logger.Logger
	// Sanitizer masks sensitive bind values in logs.
	Sanitizer = logger.Sanitizer
	// Tracer creates spans for executions.
	Tracer = tracer.Tracer
	// Validator rejects unsafe statements before execution.
	Validator = security.Validator
	// Dialect adapts :name placeholders to a driver.
	Dialect = dialects.Dialect
	// DialectRegistry maps driver names to dialects.
	DialectRegistry = dialects.Registry
)

// Order directions.
const (
	ASC  = core.ASC
	DESC = core.DESC
)

// Re-export core functions.
var (
	Open                  = core.Open
	WrapDB                = core.WrapDB
	WithMaxOpenConns      = core.WithMaxOpenConns
	WithMaxIdleConns      = core.WithMaxIdleConns
	WithStmtCacheCapacity = core.WithStmtCacheCapacity
	WithLogger            = core.WithLogger
	WithSanitizer         = core.WithSanitizer
	WithTracer            = core.WithTracer
	WithValidator         = core.WithValidator
	WithQueryHook         = core.WithQueryHook
	WithDialectRegistry   = core.WithDialectRegistry

	// Builders
	From           = core.From
	NewInnerQuery  = core.NewInnerQuery
	NewConditions  = core.NewConditions
	InnerJoin      = core.InnerJoin
	LeftJoin       = core.LeftJoin
	RightJoin      = core.RightJoin
	FullJoin       = core.FullJoin
	CrossJoin      = core.CrossJoin
	IsDuplicateKey = core.IsDuplicateKey

	// Ambient helpers
	NewSlogAdapter     = logger.NewSlogAdapter
	NewLogger          = logger.New
	LoadLoggerConfig   = logger.LoadConfig
	NewSanitizer       = logger.NewSanitizer
	NewOtelTracer      = tracer.NewOtelTracer
	NewValidator       = security.NewValidator
	NewDialectRegistry = dialects.NewRegistry
)

// Predefined errors.
var (
	ErrNoRows             = core.ErrNoRows
	ErrTxDone             = core.ErrTxDone
	ErrUnsupportedDialect = core.ErrUnsupportedDialect
	ErrNoConnection       = core.ErrNoConnection
	ErrUnsafeQuery        = core.ErrUnsafeQuery
)
