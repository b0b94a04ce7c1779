package repository

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/hitoshi/maqalat/internal/database"
)

func TestKVRepos_ImplementInterface(t *testing.T) {
	var _ KeyValueRepository = (*MemoryKVRepo)(nil)
	var _ KeyValueRepository = (*SQLiteKVRepo)(nil)
	var _ KeyValueRepository = (*PostgresKVRepo)(nil)
	var _ Pinger = (*MemoryKVRepo)(nil)
}

// newSQLiteRepo は一時ディレクトリ上のSQLiteでリポジトリを生成する。
func newSQLiteRepo(t *testing.T) *SQLiteKVRepo {
	t.Helper()
	db, err := database.OpenSQLite(filepath.Join(t.TempDir(), "kv.db"))
	if err != nil {
		t.Fatalf("OpenSQLite failed: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return NewSQLiteKVRepo(db)
}

// 各実装に共通の振る舞いを検証する
func TestKVRepos_Contract(t *testing.T) {
	impls := map[string]func(t *testing.T) KeyValueRepository{
		"memory": func(t *testing.T) KeyValueRepository { return NewMemoryKVRepo() },
		"sqlite": func(t *testing.T) KeyValueRepository { return newSQLiteRepo(t) },
	}

	for name, newRepo := range impls {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			t.Run("未保存キーはok=false", func(t *testing.T) {
				repo := newRepo(t)
				v, ok, err := repo.Get(ctx, "@missing")
				if err != nil {
					t.Fatalf("Get returned error: %v", err)
				}
				if ok {
					t.Errorf("ok = true, want false (value %q)", v)
				}
			})

			t.Run("保存した値を取得できる", func(t *testing.T) {
				repo := newRepo(t)
				if err := repo.Set(ctx, "@ai_articles_theme", `"dark"`); err != nil {
					t.Fatalf("Set returned error: %v", err)
				}
				v, ok, err := repo.Get(ctx, "@ai_articles_theme")
				if err != nil || !ok {
					t.Fatalf("Get = (%q, %v, %v), want value", v, ok, err)
				}
				if v != `"dark"` {
					t.Errorf("value = %q, want %q", v, `"dark"`)
				}
			})

			t.Run("上書き保存される", func(t *testing.T) {
				repo := newRepo(t)
				_ = repo.Set(ctx, "k", "first")
				if err := repo.Set(ctx, "k", "second"); err != nil {
					t.Fatalf("Set returned error: %v", err)
				}
				v, _, _ := repo.Get(ctx, "k")
				if v != "second" {
					t.Errorf("value = %q, want %q", v, "second")
				}
			})

			t.Run("アラビア語の値を保持する", func(t *testing.T) {
				repo := newRepo(t)
				want := "برمجة، صحة"
				_ = repo.Set(ctx, "@ai_articles_interests", want)
				v, _, _ := repo.Get(ctx, "@ai_articles_interests")
				if v != want {
					t.Errorf("value = %q, want %q", v, want)
				}
			})

			t.Run("削除後は取得できない", func(t *testing.T) {
				repo := newRepo(t)
				_ = repo.Set(ctx, "k", "v")
				if err := repo.Delete(ctx, "k"); err != nil {
					t.Fatalf("Delete returned error: %v", err)
				}
				if _, ok, _ := repo.Get(ctx, "k"); ok {
					t.Error("key still present after Delete")
				}
				if err := repo.Delete(ctx, "k"); err != nil {
					t.Errorf("Delete of missing key returned error: %v", err)
				}
			})
		})
	}
}

// 閉じたDBではエラーが返ることを検証する
func TestSQLiteKVRepo_ClosedDB(t *testing.T) {
	db, err := database.OpenSQLite(filepath.Join(t.TempDir(), "kv.db"))
	if err != nil {
		t.Fatalf("OpenSQLite failed: %v", err)
	}
	repo := NewSQLiteKVRepo(db)
	db.Close()

	ctx := context.Background()
	if _, _, err := repo.Get(ctx, "k"); err == nil {
		t.Error("Get on closed db: expected error")
	}
	if err := repo.Set(ctx, "k", "v"); err == nil {
		t.Error("Set on closed db: expected error")
	}
}

func TestNewPostgresKVRepo_Initializes(t *testing.T) {
	repo := NewPostgresKVRepo(nil)
	if repo == nil {
		t.Fatal("expected non-nil repo")
	}
}
