package core

import (
	"bytes"
	"context"
	"database/sql"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/coregx/myquery/internal/dialects"
	"github.com/coregx/myquery/internal/logger"
	"github.com/coregx/myquery/internal/security"
	"github.com/coregx/myquery/internal/tracer"
)

// openTestDB opens a single-connection in-memory SQLite database with a users table.
func openTestDB(t *testing.T, opts ...Option) *DB {
	t.Helper()

	opts = append([]Option{WithMaxOpenConns(1)}, opts...)
	db, err := Open("sqlite", ":memory:", opts...)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.SQLDB().Exec(`
		CREATE TABLE users (
			id INTEGER PRIMARY KEY,
			name TEXT NOT NULL,
			email TEXT NOT NULL UNIQUE,
			status TEXT DEFAULT 'active',
			age INTEGER,
			password TEXT
		)
	`)
	require.NoError(t, err)
	return db
}

func seedUsers(t *testing.T, db *DB) {
	t.Helper()

	_, err := db.From("users").Insert().Rows([]map[string]interface{}{
		{"name": "Alice", "email": "alice@example.com", "status": "active", "age": 25},
		{"name": "Bob", "email": "bob@example.com", "status": "active", "age": 30},
		{"name": "Charlie", "email": "charlie@example.com", "status": "inactive", "age": 35},
	}).Execute(context.Background())
	require.NoError(t, err)
}

func TestExecute_InsertAndGet(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)

	result, err := db.From("users").Insert().
		Value("name", "Alice").
		Value("email", "alice@example.com").
		Value("age", 25).
		Execute(ctx)
	require.NoError(t, err)

	affected, err := result.RowsAffected()
	require.NoError(t, err)
	assert.Equal(t, int64(1), affected)

	id, err := result.LastInsertId()
	require.NoError(t, err)
	assert.Equal(t, int64(1), id)

	rows, err := db.From("users").Select("id", "name", "email", "status").Equal("id", 1).Get(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 1)

	assert.Equal(t, int64(1), rows[0].Int64("id"))
	assert.Equal(t, "Alice", rows[0].String("name"))
	assert.Equal(t, "active", rows[0].String("status"))
	assert.Equal(t, []string{"email", "id", "name", "status"}, rows[0].Keys())
}

func TestExecute_MultiRowInsert(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	seedUsers(t, db)

	rows, err := db.From("users").Select("name").Order("age", ASC).Get(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "Alice", rows[0].String("name"))
	assert.Equal(t, "Charlie", rows[2].String("name"))
}

func TestExecute_SelectConditions(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	seedUsers(t, db)

	tests := []struct {
		name     string
		build    func() *SelectQuery
		expected []string
	}{
		{
			name:     "equal",
			build:    func() *SelectQuery { return db.From("users").Select("name").Equal("status", "active") },
			expected: []string{"Alice", "Bob"},
		},
		{
			name:     "or mode",
			build:    func() *SelectQuery { return db.From("users").Select("name").StrictMode(false).Equal("name", "Alice").Equal("age", 35) },
			expected: []string{"Alice", "Charlie"},
		},
		{
			name:     "between",
			build:    func() *SelectQuery { return db.From("users").Select("name").Between("age", 26, 40) },
			expected: []string{"Bob", "Charlie"},
		},
		{
			name:     "in",
			build:    func() *SelectQuery { return db.From("users").Select("name").In("name", "Bob", "Zoe") },
			expected: []string{"Bob"},
		},
		{
			name:     "like",
			build:    func() *SelectQuery { return db.From("users").Select("name").Like("email", "%li%") },
			expected: []string{"Alice", "Charlie"},
		},
		{
			name: "raw with params",
			build: func() *SelectQuery {
				return db.From("users").Select("name").Where("age > :min_age", Params{"min_age": 28})
			},
			expected: []string{"Bob", "Charlie"},
		},
		{
			name:     "limit",
			build:    func() *SelectQuery { return db.From("users").Select("name").Limit(1, 1) },
			expected: []string{"Bob"},
		},
		{
			name:     "offset",
			build:    func() *SelectQuery { return db.From("users").Select("name").LimitEnd(2).Offset(1) },
			expected: []string{"Bob", "Charlie"},
		},
		{
			name: "exists",
			build: func() *SelectQuery {
				sub := From("users AS u2", nil).Select("1").Where("u2.age > users.age")
				return db.From("users").Select("name").WhereNotExist(sub)
			},
			expected: []string{"Charlie"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows, err := tt.build().Order("id", ASC).Get(ctx)
			require.NoError(t, err)

			names := make([]string, len(rows))
			for i, row := range rows {
				names[i] = row.String("name")
			}
			assert.Equal(t, tt.expected, names)
		})
	}
}

func TestExecute_First(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	seedUsers(t, db)

	row, err := db.From("users").Select().Equal("email", "bob@example.com").First(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Bob", row.String("name"))
	assert.True(t, row.IsNull("password"))
	assert.True(t, row.Has("password"))

	_, err = db.From("users").Select().Equal("email", "nobody@example.com").First(ctx)
	assert.ErrorIs(t, err, ErrNoRows)
}

func TestExecute_UpdateDeleteReplace(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	seedUsers(t, db)

	result, err := db.From("users").Update().Value("status", "banned").Equal("status", "active").Execute(ctx)
	require.NoError(t, err)
	affected, _ := result.RowsAffected()
	assert.Equal(t, int64(2), affected)

	result, err = db.From("users").Delete().Equal("name", "Charlie").Execute(ctx)
	require.NoError(t, err)
	affected, _ = result.RowsAffected()
	assert.Equal(t, int64(1), affected)

	_, err = db.From("users").Replace().
		Value("id", 1).
		Value("name", "Alicia").
		Value("email", "alice@example.com").
		Execute(ctx)
	require.NoError(t, err)

	rows, err := db.From("users").Select("name", "status").Order("id", ASC).Get(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Alicia", rows[0].String("name"))
	assert.Equal(t, "active", rows[0].String("status"))
	assert.Equal(t, "banned", rows[1].String("status"))
}

func TestExecute_DriverErrorsUnwrapped(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	seedUsers(t, db)

	_, err := db.From("users").Insert().
		Value("name", "Alice again").
		Value("email", "alice@example.com").
		Execute(ctx)
	require.Error(t, err)
	assert.True(t, IsDuplicateKey(err))

	_, err = db.From("users").Update().Execute(ctx)
	require.Error(t, err, "empty SET is left to the driver")
	assert.False(t, IsDuplicateKey(err))
}

func TestExecute_NoConnection(t *testing.T) {
	ctx := context.Background()

	_, err := From("users", nil).Insert().Value("name", "x").Execute(ctx)
	assert.ErrorIs(t, err, ErrNoConnection)

	_, err = From("users", nil).Select().Get(ctx)
	assert.ErrorIs(t, err, ErrNoConnection)
}

func TestExecute_Transaction(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)

	t.Run("commit", func(t *testing.T) {
		tx, err := db.Begin(ctx)
		require.NoError(t, err)

		_, err = tx.From("users").Insert().Value("name", "Tx").Value("email", "tx@example.com").Execute(ctx)
		require.NoError(t, err)

		rows, err := tx.From("users").Select().Equal("email", "tx@example.com").Get(ctx)
		require.NoError(t, err)
		assert.Len(t, rows, 1)

		require.NoError(t, tx.Commit())
		assert.ErrorIs(t, tx.Commit(), ErrTxDone)
	})

	t.Run("rollback", func(t *testing.T) {
		tx, err := db.BeginTx(ctx, &TxOptions{Isolation: sql.LevelDefault})
		require.NoError(t, err)

		_, err = tx.From("users").Delete().Execute(ctx)
		require.NoError(t, err)
		require.NoError(t, tx.Rollback())
	})

	rows, err := db.From("users").Select().Get(ctx)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

func TestExecute_StatementCache(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	seedUsers(t, db)

	for i := 0; i < 3; i++ {
		_, err := db.From("users").Select().Equal("id", i).Get(ctx)
		require.NoError(t, err)
	}

	stats := db.CacheStats()
	assert.GreaterOrEqual(t, stats.Hits, uint64(2))
}

func TestExecute_QueryHook(t *testing.T) {
	ctx := context.Background()

	var events []QueryEvent
	db := openTestDB(t, WithQueryHook(func(_ context.Context, e QueryEvent) {
		events = append(events, e)
	}))

	_, err := db.From("users").Insert().Value("name", "Hook").Value("email", "hook@example.com").Execute(ctx)
	require.NoError(t, err)
	_, err = db.From("users").Select().Equal("name", "Hook").Get(ctx)
	require.NoError(t, err)

	require.Len(t, events, 2)
	assert.Equal(t, "INSERT", events[0].Operation)
	assert.Equal(t, "users", events[0].Table)
	assert.Equal(t, int64(1), events[0].RowsAffected)
	assert.Equal(t, "INSERT INTO users (name, email) VALUES (:bind_name, :bind_email)", events[0].SQL)
	assert.Len(t, events[0].Args, 2)
	assert.NotEmpty(t, events[0].QueryID)

	assert.Equal(t, "SELECT", events[1].Operation)
	assert.Equal(t, int64(1), events[1].RowsAffected)
	assert.NotEqual(t, events[0].QueryID, events[1].QueryID)
}

func TestExecute_LoggingMasksSensitiveBinds(t *testing.T) {
	ctx := context.Background()
	var buf bytes.Buffer

	db := openTestDB(t, WithLogger(logger.New(logger.Config{
		Level:  slog.LevelInfo,
		Format: "json",
		Writer: &buf,
	})))

	_, err := db.From("users").Insert().
		Value("name", "Secret").
		Value("email", "s@example.com").
		Value("password", "hunter2").
		Execute(ctx)
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "query executed")
	assert.Contains(t, out, "bind_name=Secret")
	assert.Contains(t, out, logger.DefaultMask)
	assert.NotContains(t, out, "hunter2")
	assert.Contains(t, out, `"query_id"`)
}

func TestExecute_Tracing(t *testing.T) {
	ctx := context.Background()
	recorder := tracetest.NewSpanRecorder()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))

	db := openTestDB(t, WithTracer(tracer.NewOtelTracer(provider.Tracer("myquery-test"))))

	_, err := db.From("users").Insert().Value("name", "Span").Value("email", "span@example.com").Execute(ctx)
	require.NoError(t, err)
	_, err = db.From("users").Select().Get(ctx)
	require.NoError(t, err)

	spans := recorder.Ended()
	require.Len(t, spans, 2)
	assert.Equal(t, "myquery.execute", spans[0].Name())
	assert.Equal(t, "myquery.get", spans[1].Name())

	attrs := make(map[string]string)
	for _, kv := range spans[0].Attributes() {
		attrs[string(kv.Key)] = kv.Value.Emit()
	}
	assert.Equal(t, "sqlite", attrs["db.system"])
	assert.Equal(t, "INSERT", attrs["db.operation"])
	assert.Equal(t, "users", attrs["db.sql.table"])
}

func TestExecute_Validator(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t, WithValidator(security.NewValidator()))

	_, err := db.From("users").Select().Where("1 = 1; DROP TABLE users").Get(ctx)
	assert.ErrorIs(t, err, ErrUnsafeQuery)

	_, err = db.From("users").Select().Equal("name", "x' UNION SELECT password FROM users --").Get(ctx)
	assert.ErrorIs(t, err, ErrUnsafeQuery)

	_, err = db.From("users").Select().Equal("name", "O'Brien").Get(ctx)
	assert.NoError(t, err)
}

func TestOpen_DialectResolution(t *testing.T) {
	sqlDB, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	defer sqlDB.Close()

	_, err = WrapDB(sqlDB, "oracle")
	assert.ErrorIs(t, err, ErrUnsupportedDialect)

	registry := dialects.NewRegistry()
	registry.Register("oracle", &dialects.SQLiteDialect{})
	db, err := WrapDB(sqlDB, "oracle", WithDialectRegistry(registry))
	require.NoError(t, err)
	assert.Equal(t, "sqlite", db.Dialect().Name())
	assert.Equal(t, "oracle", db.DriverName())

	_, err = WrapDB(nil, "sqlite")
	assert.ErrorIs(t, err, ErrNoConnection)
}
