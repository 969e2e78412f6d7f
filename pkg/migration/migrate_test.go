package migration

import (
	"database/sql"
	"testing"
	"testing/fstest"

	_ "modernc.org/sqlite"
)

// openTestDB はテスト用のインメモリSQLiteデータベースを開く。
func openTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("インメモリDBの作成に失敗: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

// TestRun はマイグレーションの適用を検証する。
func TestRun(t *testing.T) {
	t.Parallel()

	t.Run("マイグレーションがバージョン順に適用されること", func(t *testing.T) {
		t.Parallel()

		db := openTestDB(t)
		fsys := fstest.MapFS{
			"migrations/000002_add_column.up.sql": &fstest.MapFile{
				Data: []byte("ALTER TABLE items ADD COLUMN note TEXT;"),
			},
			"migrations/000001_init.up.sql": &fstest.MapFile{
				Data: []byte("CREATE TABLE items (id INTEGER PRIMARY KEY, name TEXT NOT NULL);"),
			},
		}

		if err := Run(db, fsys, "migrations"); err != nil {
			t.Fatalf("Run()でエラーが発生: %v", err)
		}

		// 2つ目のマイグレーションで追加されたカラムに書き込めること
		if _, err := db.Exec("INSERT INTO items (name, note) VALUES ('a', 'b')"); err != nil {
			t.Fatalf("マイグレーション後のINSERTに失敗: %v", err)
		}
	})

	t.Run("適用済みマイグレーションは再実行されないこと", func(t *testing.T) {
		t.Parallel()

		db := openTestDB(t)
		fsys := fstest.MapFS{
			"migrations/000001_init.up.sql": &fstest.MapFile{
				// 再実行すると "table already exists" で失敗するSQL
				Data: []byte("CREATE TABLE items (id INTEGER PRIMARY KEY);"),
			},
		}

		if err := Run(db, fsys, "migrations"); err != nil {
			t.Fatalf("1回目のRun()でエラーが発生: %v", err)
		}
		if err := Run(db, fsys, "migrations"); err != nil {
			t.Fatalf("2回目のRun()でエラーが発生: %v", err)
		}

		var count int
		if err := db.QueryRow("SELECT COUNT(*) FROM schema_migrations").Scan(&count); err != nil {
			t.Fatalf("schema_migrationsの取得に失敗: %v", err)
		}
		if count != 1 {
			t.Errorf("適用済みバージョン数 = %d, want 1", count)
		}
	})

	t.Run("命名規則に合わないファイルは無視されること", func(t *testing.T) {
		t.Parallel()

		db := openTestDB(t)
		fsys := fstest.MapFS{
			"migrations/000001_init.up.sql": &fstest.MapFile{
				Data: []byte("CREATE TABLE items (id INTEGER PRIMARY KEY);"),
			},
			"migrations/README.md": &fstest.MapFile{
				Data: []byte("not sql"),
			},
			"migrations/noversion.up.sql": &fstest.MapFile{
				Data: []byte("SELECT 1;"),
			},
		}

		if err := Run(db, fsys, "migrations"); err != nil {
			t.Fatalf("Run()でエラーが発生: %v", err)
		}

		var count int
		if err := db.QueryRow("SELECT COUNT(*) FROM schema_migrations").Scan(&count); err != nil {
			t.Fatalf("schema_migrationsの取得に失敗: %v", err)
		}
		if count != 1 {
			t.Errorf("適用済みバージョン数 = %d, want 1", count)
		}
	})

	t.Run("不正なSQLを含むマイグレーションでエラーが返ること", func(t *testing.T) {
		t.Parallel()

		db := openTestDB(t)
		fsys := fstest.MapFS{
			"migrations/000001_broken.up.sql": &fstest.MapFile{
				Data: []byte("THIS IS NOT SQL;"),
			},
		}

		if err := Run(db, fsys, "migrations"); err == nil {
			t.Fatal("Run()がエラーを返すべきだが、nilが返った")
		}
	})

	t.Run("存在しないディレクトリでエラーが返ること", func(t *testing.T) {
		t.Parallel()

		db := openTestDB(t)
		fsys := fstest.MapFS{}

		if err := Run(db, fsys, "missing"); err == nil {
			t.Fatal("Run()がエラーを返すべきだが、nilが返った")
		}
	})
}
