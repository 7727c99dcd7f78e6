package myquery_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/coregx/myquery"
)

func openSQLite(t *testing.T, opts ...myquery.Option) *myquery.DB {
	t.Helper()

	opts = append([]myquery.Option{myquery.WithMaxOpenConns(1)}, opts...)
	db, err := myquery.Open("sqlite", ":memory:", opts...)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.SQLDB().Exec(`CREATE TABLE posts (id INTEGER PRIMARY KEY, title TEXT, author_id INTEGER, views INTEGER DEFAULT 0)`)
	require.NoError(t, err)
	_, err = db.SQLDB().Exec(`CREATE TABLE authors (id INTEGER PRIMARY KEY, name TEXT)`)
	require.NoError(t, err)
	return db
}

// TestDB_Wrapper tests the DB wrapper functions.
func TestDB_Wrapper(t *testing.T) {
	t.Run("Open", func(t *testing.T) {
		db, err := myquery.Open("sqlite", ":memory:")
		require.NoError(t, err)
		defer db.Close()
		assert.Equal(t, "sqlite", db.DriverName())
	})

	t.Run("Open unsupported dialect", func(t *testing.T) {
		_, err := myquery.Open("sqlite", ":memory:", myquery.WithDialectRegistry(emptyRegistry()))
		assert.ErrorIs(t, err, myquery.ErrUnsupportedDialect)
	})

	t.Run("WrapDB", func(t *testing.T) {
		sqlDB, err := sql.Open("sqlite", ":memory:")
		require.NoError(t, err)
		defer sqlDB.Close()

		db, err := myquery.WrapDB(sqlDB, "sqlite", myquery.WithStmtCacheCapacity(8))
		require.NoError(t, err)
		assert.Same(t, sqlDB, db.SQLDB())
		assert.Equal(t, 8, db.CacheStats().Capacity)
	})

	t.Run("Ping", func(t *testing.T) {
		db := openSQLite(t)
		assert.NoError(t, db.PingContext(context.Background()))
		assert.Equal(t, 1, db.Stats().MaxOpenConnections)
	})
}

func emptyRegistry() *myquery.DialectRegistry {
	return &myquery.DialectRegistry{}
}

// TestRender_Wrapper checks the package-level builders render without a connection.
func TestRender_Wrapper(t *testing.T) {
	sub := myquery.From("comments", nil).Select("post_id").Compare("score", ">", 3)

	q := myquery.From("posts", nil).Select("id", "title").
		Join(myquery.LeftJoin(myquery.NewInnerQuery(sub, "c"), "id", "post_id")).
		Equal("author_id", 7).
		Order("id", myquery.DESC).
		Limit(0, 20)

	assert.Equal(t,
		"SELECT id, title FROM posts LEFT JOIN (SELECT post_id FROM comments WHERE ( (comments.score > :score) )) AS c ON posts.id = c.post_id WHERE ( (posts.author_id = :author_id) ) ORDER BY posts.id DESC LIMIT 20",
		q.String())
	assert.Equal(t,
		"SELECT id, title FROM posts LEFT JOIN (SELECT post_id FROM comments WHERE ( (comments.score > 3) )) AS c ON posts.id = c.post_id WHERE ( (posts.author_id = 7) ) ORDER BY posts.id DESC LIMIT 20",
		q.QueryBind())

	var stmt myquery.Statement = q
	query, binds := stmt.SQL()
	assert.Equal(t, q.String(), query)
	assert.Equal(t, []myquery.Bind{{Name: "score", Value: 3}, {Name: "author_id", Value: 7}}, binds.List())
}

// TestExecute_Wrapper runs every statement type through the public API.
func TestExecute_Wrapper(t *testing.T) {
	ctx := context.Background()
	db := openSQLite(t)

	_, err := db.From("authors").Insert().Rows([]map[string]interface{}{
		{"id": 1, "name": "Ann"},
		{"id": 2, "name": "Ben"},
	}).Execute(ctx)
	require.NoError(t, err)

	_, err = db.From("posts").Insert().Values(map[string]interface{}{
		"title":     "Hello",
		"author_id": 1,
	}).Execute(ctx)
	require.NoError(t, err)

	_, err = db.From("posts").Replace().Value("id", 2).Value("title", "World").Value("author_id", 2).Execute(ctx)
	require.NoError(t, err)

	_, err = db.From("posts").Update().Value("views", 10).Equal("title", "Hello").Execute(ctx)
	require.NoError(t, err)

	rows, err := db.From("posts").Select("posts.title", "authors.name").
		Join(myquery.InnerJoin("authors", "author_id", "id")).
		Compare("views", ">", 5).
		Get(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Hello", rows[0].String("title"))
	assert.Equal(t, "Ann", rows[0].String("name"))

	_, err = db.From("posts").Delete().Equal("author_id", 2).Execute(ctx)
	require.NoError(t, err)

	_, err = db.From("posts").Select().Equal("author_id", 2).First(ctx)
	assert.ErrorIs(t, err, myquery.ErrNoRows)
}

// TestTx_Wrapper tests transaction wrapping.
func TestTx_Wrapper(t *testing.T) {
	ctx := context.Background()
	db := openSQLite(t)

	tx, err := db.Begin(ctx)
	require.NoError(t, err)
	_, err = tx.From("authors").Insert().Value("name", "Cat").Execute(ctx)
	require.NoError(t, err)
	require.NoError(t, tx.Rollback())

	rows, err := db.From("authors").Select().Get(ctx)
	require.NoError(t, err)
	assert.Empty(t, rows)
}

// TestWrapper_NilSafety checks statements built without a DB fail cleanly.
func TestWrapper_NilSafety(t *testing.T) {
	_, err := myquery.From("posts", nil).Delete().Execute(context.Background())
	assert.ErrorIs(t, err, myquery.ErrNoConnection)
}
