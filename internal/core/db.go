package core

import (
	"context"
	"database/sql"

	"github.com/coregx/myquery/internal/cache"
	"github.com/coregx/myquery/internal/dialects"
	"github.com/coregx/myquery/internal/logger"
	"github.com/coregx/myquery/internal/security"
	"github.com/coregx/myquery/internal/tracer"
)

// DB is a connection handle that executes built statements.
// It owns the prepared statement cache and the logging and tracing setup.
type DB struct {
	sqlDB      *sql.DB
	tx         *sql.Tx // set on the copy held by a Tx
	driverName string
	dialect    dialects.Dialect
	registry   *dialects.Registry
	stmtCache  *cache.StmtCache
	logger     logger.Logger
	sanitizer  *logger.Sanitizer
	tracer     tracer.Tracer
	validator  *security.Validator
	queryHook  QueryHook
}

// Tx represents a database transaction.
// Statements started from a Tx run on its connection and bypass the statement cache.
type Tx struct {
	tx *sql.Tx
	db *DB
}

// TxOptions represents transaction options including isolation level.
type TxOptions struct {
	// Isolation level for the transaction (e.g., sql.LevelReadCommitted)
	Isolation sql.IsolationLevel
	// ReadOnly indicates whether the transaction is read-only
	ReadOnly bool
}

// Option is a functional option for configuring DB.
type Option func(*DB)

// WithMaxOpenConns sets the maximum number of open connections.
func WithMaxOpenConns(n int) Option {
	return func(db *DB) {
		db.sqlDB.SetMaxOpenConns(n)
	}
}

// WithMaxIdleConns sets the maximum number of idle connections.
func WithMaxIdleConns(n int) Option {
	return func(db *DB) {
		db.sqlDB.SetMaxIdleConns(n)
	}
}

// WithStmtCacheCapacity sets the prepared statement cache capacity.
func WithStmtCacheCapacity(capacity int) Option {
	return func(db *DB) {
		db.stmtCache = cache.NewStmtCacheWithCapacity(capacity)
	}
}

// WithLogger enables execution logging.
func WithLogger(l logger.Logger) Option {
	return func(db *DB) {
		if l != nil {
			db.logger = l
		}
	}
}

// WithSanitizer replaces the sanitizer that masks bind values in logs.
func WithSanitizer(s *logger.Sanitizer) Option {
	return func(db *DB) {
		if s != nil {
			db.sanitizer = s
		}
	}
}

// WithTracer enables span creation for every execution.
func WithTracer(t tracer.Tracer) Option {
	return func(db *DB) {
		if t != nil {
			db.tracer = t
		}
	}
}

// WithValidator rejects statements the validator considers unsafe before they reach the driver.
func WithValidator(v *security.Validator) Option {
	return func(db *DB) {
		db.validator = v
	}
}

// WithQueryHook sets a callback invoked after every execution.
func WithQueryHook(hook QueryHook) Option {
	return func(db *DB) {
		db.queryHook = hook
	}
}

// WithDialectRegistry resolves the driver name against r instead of the default registry.
func WithDialectRegistry(r *dialects.Registry) Option {
	return func(db *DB) {
		if r != nil {
			db.registry = r
		}
	}
}

// Open opens a connection pool and configures it with opts.
// The driver must be registered with database/sql by the caller.
func Open(driverName, dsn string, opts ...Option) (*DB, error) {
	sqlDB, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, WrapError(err, "myquery: open "+driverName)
	}

	db, err := newDB(sqlDB, driverName, opts)
	if err != nil {
		_ = sqlDB.Close()
		return nil, err
	}
	return db, nil
}

// WrapDB wraps an existing *sql.DB. The pool stays owned by the caller:
// Close on the returned DB clears the statement cache and closes sqlDB.
func WrapDB(sqlDB *sql.DB, driverName string, opts ...Option) (*DB, error) {
	if sqlDB == nil {
		return nil, ErrNoConnection
	}
	return newDB(sqlDB, driverName, opts)
}

func newDB(sqlDB *sql.DB, driverName string, opts []Option) (*DB, error) {
	db := &DB{
		sqlDB:      sqlDB,
		driverName: driverName,
		registry:   dialects.NewRegistry(),
		stmtCache:  cache.NewStmtCache(),
		logger:     &logger.NoopLogger{},
		sanitizer:  logger.NewSanitizer(nil),
		tracer:     &tracer.NoopTracer{},
	}

	for _, opt := range opts {
		opt(db)
	}

	dialect, err := db.registry.Get(driverName)
	if err != nil {
		return nil, WrapError(err, "myquery: dialect "+driverName)
	}
	db.dialect = dialect
	return db, nil
}

// Close releases all database resources.
func (db *DB) Close() error {
	db.stmtCache.Clear()
	return db.sqlDB.Close()
}

// From starts a statement on table bound to this connection.
func (db *DB) From(table interface{}) *Query {
	return From(table, db)
}

// DriverName returns the database/sql driver name.
func (db *DB) DriverName() string {
	return db.driverName
}

// Dialect returns the placeholder dialect used for execution.
func (db *DB) Dialect() dialects.Dialect {
	return db.dialect
}

// SQLDB returns the underlying pool.
func (db *DB) SQLDB() *sql.DB {
	return db.sqlDB
}

// Stats returns the pool statistics.
func (db *DB) Stats() sql.DBStats {
	return db.sqlDB.Stats()
}

// CacheStats returns the prepared statement cache counters.
func (db *DB) CacheStats() cache.Stats {
	return db.stmtCache.Stats()
}

// PingContext verifies the connection is alive.
func (db *DB) PingContext(ctx context.Context) error {
	return db.sqlDB.PingContext(ctx)
}

// Begin starts a transaction with default options.
func (db *DB) Begin(ctx context.Context) (*Tx, error) {
	return db.BeginTx(ctx, nil)
}

// BeginTx starts a transaction with specified options.
func (db *DB) BeginTx(ctx context.Context, opts *TxOptions) (*Tx, error) {
	var sqlOpts *sql.TxOptions
	if opts != nil {
		sqlOpts = &sql.TxOptions{
			Isolation: opts.Isolation,
			ReadOnly:  opts.ReadOnly,
		}
	}

	tx, err := db.sqlDB.BeginTx(ctx, sqlOpts)
	if err != nil {
		return nil, err
	}

	txDB := *db
	txDB.tx = tx
	return &Tx{tx: tx, db: &txDB}, nil
}

// From starts a statement on table that runs inside the transaction.
func (tx *Tx) From(table interface{}) *Query {
	return From(table, tx.db)
}

// Commit commits the transaction.
func (tx *Tx) Commit() error {
	return tx.tx.Commit()
}

// Rollback rolls back the transaction.
func (tx *Tx) Rollback() error {
	return tx.tx.Rollback()
}
