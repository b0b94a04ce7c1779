package feed

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/hitoshi/maqalat/internal/model"
)

// mockCategorySource はテスト用のCategorySourceモック。
type mockCategorySource struct {
	categories []model.Category
}

func (m *mockCategorySource) Categories(_ context.Context) []model.Category {
	if m.categories == nil {
		return []model.Category{}
	}
	return m.categories
}

// mockArticleSource はテスト用のArticleSourceモック。
type mockArticleSource struct {
	articles []model.Article
}

func (m *mockArticleSource) Articles() []model.Article {
	return m.articles
}

func (m *mockArticleSource) ByID(id string) (model.Article, bool) {
	for _, a := range m.articles {
		if a.ID == id {
			return a, true
		}
	}
	return model.Article{}, false
}

func newTestService(categories []model.Category) *Service {
	return NewService(
		&mockCategorySource{categories: categories},
		&mockArticleSource{articles: testArticles()},
		nil,
	)
}

// 保存済みカテゴリがない場合は全件表示になることを検証する
func TestService_Home_NoCategoriesShowsAll(t *testing.T) {
	svc := newTestService(nil)

	home := svc.Home(context.Background(), nil)

	if !home.Selection.IsAll() {
		t.Errorf("Selection = %s, want all", home.Selection)
	}
	if len(home.Articles) != 5 {
		t.Errorf("len(Articles) = %d, want 5", len(home.Articles))
	}
	if home.AllLabel != "الكل" {
		t.Errorf("AllLabel = %q", home.AllLabel)
	}
}

// 既定の選択は先頭の保存済みカテゴリになることを検証する
func TestService_Home_DefaultsToFirstCategory(t *testing.T) {
	svc := newTestService([]model.Category{
		{ID: "cat-2", Name: "الصحة", Slug: "الصحة", IsActive: true, SortOrder: 1},
		{ID: "cat-1", Name: "التكنولوجيا", Slug: "التكنولوجيا", IsActive: true, SortOrder: 0},
	})

	home := svc.Home(context.Background(), nil)

	if slug, ok := home.Selection.Slug(); !ok || slug != "الصحة" {
		t.Errorf("Selection = %s, want slug:الصحة", home.Selection)
	}
	if diff := cmp.Diff([]string{"3"}, ids(home.Articles)); diff != "" {
		t.Errorf("articles mismatch (-want +got):\n%s", diff)
	}
	if len(home.Categories) != 2 {
		t.Errorf("len(Categories) = %d, want 2", len(home.Categories))
	}
}

func TestService_Home_ExplicitSelection(t *testing.T) {
	svc := newTestService([]model.Category{{ID: "cat-1", Slug: "الصحة"}})

	all := All()
	if home := svc.Home(context.Background(), &all); len(home.Articles) != 5 {
		t.Errorf("explicit all: len(Articles) = %d, want 5", len(home.Articles))
	}

	tech := BySlug("التكنولوجيا")
	home := svc.Home(context.Background(), &tech)
	if diff := cmp.Diff([]string{"1", "2"}, ids(home.Articles)); diff != "" {
		t.Errorf("articles mismatch (-want +got):\n%s", diff)
	}
}

func TestService_Article(t *testing.T) {
	svc := newTestService(nil)

	t.Run("存在する記事", func(t *testing.T) {
		a, err := svc.Article(context.Background(), "3")
		if err != nil {
			t.Fatalf("Article returned error: %v", err)
		}
		if a.CategorySlug != "الصحة" {
			t.Errorf("CategorySlug = %q", a.CategorySlug)
		}
	})

	t.Run("存在しない記事はARTICLE_NOT_FOUND", func(t *testing.T) {
		_, err := svc.Article(context.Background(), "999")
		var apiErr *model.APIError
		if !errors.As(err, &apiErr) {
			t.Fatalf("expected *model.APIError, got %T", err)
		}
		if apiErr.Code != model.ErrCodeArticleNotFound {
			t.Errorf("Code = %q, want %q", apiErr.Code, model.ErrCodeArticleNotFound)
		}
	})
}

func TestDefaultSelection(t *testing.T) {
	if !DefaultSelection(nil).IsAll() {
		t.Error("DefaultSelection(nil) should be all")
	}
	sel := DefaultSelection([]model.Category{{Slug: "a"}, {Slug: "b"}})
	if slug, _ := sel.Slug(); slug != "a" {
		t.Errorf("DefaultSelection slug = %q, want a", slug)
	}
}
