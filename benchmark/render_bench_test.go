package benchmark

import (
	"context"
	"fmt"
	"testing"

	_ "modernc.org/sqlite"

	"github.com/coregx/myquery"
)

func BenchmarkRender(b *testing.B) {
	b.Run("SimpleSelect", func(b *testing.B) {
		q := myquery.From("items", nil).Select("id", "name").Equal("id", 1)
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			_, _ = q.SQL()
		}
	})

	b.Run("ComplexSelect", func(b *testing.B) {
		sub := myquery.From("orders", nil).Select("user_id").Equal("status", "paid")
		q := myquery.From("users", nil).Select().
			Join(myquery.InnerJoin(myquery.NewInnerQuery(sub, "o"), "id", "user_id")).
			Equal("status", "active").
			Between("age", 18, 65).
			In("role", "admin", "owner", "member").
			Group(false, func(g *myquery.Conditions) {
				g.Like("name", "%a%").Compare("score", ">", 10)
			}).
			Order("id", myquery.DESC).
			Limit(0, 20)
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			_, _ = q.SQL()
		}
	})

	b.Run("QueryBind", func(b *testing.B) {
		q := myquery.From("users", nil).Select().Equal("name", "x").In("id", 1, 2, 3)
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			_ = q.QueryBind()
		}
	})

	for _, n := range []int{10, 100} {
		b.Run(fmt.Sprintf("MultiRowInsert_%d", n), func(b *testing.B) {
			rows := make([]map[string]interface{}, n)
			for i := range rows {
				rows[i] = map[string]interface{}{"id": i, "name": "item", "qty": i * 2}
			}
			q := myquery.From("items", nil).Insert().Rows(rows)
			b.ReportAllocs()
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				_, _ = q.SQL()
			}
		})
	}
}

func BenchmarkExecute(b *testing.B) {
	ctx := context.Background()
	db, err := myquery.Open("sqlite", ":memory:", myquery.WithMaxOpenConns(1))
	if err != nil {
		b.Fatal(err)
	}
	defer db.Close()

	if _, err := db.SQLDB().ExecContext(ctx, `CREATE TABLE items (id INTEGER PRIMARY KEY, name TEXT)`); err != nil {
		b.Fatal(err)
	}
	if _, err := db.From("items").Insert().Value("id", 1).Value("name", "test").Execute(ctx); err != nil {
		b.Fatal(err)
	}

	b.Run("Get", func(b *testing.B) {
		q := db.From("items").Select("id", "name").Equal("id", 1)
		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			_, _ = q.Get(ctx)
		}
	})

	b.Run("Update", func(b *testing.B) {
		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			_, _ = db.From("items").Update().Value("name", "x").Equal("id", 1).Execute(ctx)
		}
	})
}
