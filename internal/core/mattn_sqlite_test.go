//go:build cgo

package core

import (
	"context"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExecute_MattnSQLite3(t *testing.T) {
	ctx := context.Background()

	db, err := Open("sqlite3", ":memory:", WithMaxOpenConns(1))
	require.NoError(t, err)
	defer db.Close()

	_, err = db.SQLDB().Exec(`CREATE TABLE items (id INTEGER PRIMARY KEY, label TEXT, qty INTEGER)`)
	require.NoError(t, err)

	_, err = db.From("items").Insert().Rows([]map[string]interface{}{
		{"label": "bolt", "qty": 10},
		{"label": "nut", "qty": 0},
	}).Execute(ctx)
	require.NoError(t, err)

	rows, err := db.From("items").Select("label").
		Compare("qty", ">", 5).
		Where("label <> :skip", Params{"skip": "washer"}).
		Get(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "bolt", rows[0].String("label"))
}
