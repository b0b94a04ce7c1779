package model

import (
	"errors"
	"fmt"
	"testing"
)

func TestAPIError_ErrorFormat(t *testing.T) {
	err := NewArticleNotFoundError("42")
	want := "[ARTICLE_NOT_FOUND] المقال غير موجود: 42"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestAPIError_Constructors(t *testing.T) {
	tests := []struct {
		name     string
		err      *APIError
		code     string
		category string
	}{
		{"関心事未入力", NewEmptyInterestsError(), ErrCodeEmptyInterests, "validation"},
		{"有効カテゴリなし", NewNoActiveCategoryError(), ErrCodeNoActiveCategory, "validation"},
		{"カテゴリ未検出", NewCategoryNotFoundError("cat-9"), ErrCodeCategoryNotFound, "validation"},
		{"記事未検出", NewArticleNotFoundError("9"), ErrCodeArticleNotFound, "feed"},
		{"保存失敗", NewSaveFailedError(), ErrCodeSaveFailed, "storage"},
		{"無効なテーマ", NewInvalidThemeError("blue"), ErrCodeInvalidTheme, "validation"},
		{"無効なリクエスト", NewInvalidRequestError(), ErrCodeInvalidRequest, "validation"},
		{"内部エラー", NewInternalError(), ErrCodeInternal, "system"},
		{"レート制限超過", NewRateLimitExceededError(), ErrCodeRateLimitExceeded, "system"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Code != tt.code {
				t.Errorf("Code = %q, want %q", tt.err.Code, tt.code)
			}
			if tt.err.Category != tt.category {
				t.Errorf("Category = %q, want %q", tt.err.Category, tt.category)
			}
			if tt.err.Message == "" || tt.err.Action == "" {
				t.Error("Message and Action must not be empty")
			}
		})
	}
}

func TestAPIError_UnwrapsThroughFmtErrorf(t *testing.T) {
	wrapped := fmt.Errorf("保存処理: %w", NewSaveFailedError())

	var apiErr *APIError
	if !errors.As(wrapped, &apiErr) {
		t.Fatal("errors.As should find the wrapped APIError")
	}
	if apiErr.Code != ErrCodeSaveFailed {
		t.Errorf("Code = %q, want %q", apiErr.Code, ErrCodeSaveFailed)
	}
}

func TestParseTheme(t *testing.T) {
	tests := []struct {
		in     string
		want   Theme
		wantOK bool
	}{
		{"dark", ThemeDark, true},
		{"light", ThemeLight, true},
		{"Dark", "", false},
		{"", "", false},
		{"blue", "", false},
	}
	for _, tt := range tests {
		got, ok := ParseTheme(tt.in)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("ParseTheme(%q) = (%q, %v), want (%q, %v)", tt.in, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestTheme_Opposite(t *testing.T) {
	if ThemeDark.Opposite() != ThemeLight {
		t.Errorf("dark.Opposite() = %q, want light", ThemeDark.Opposite())
	}
	if ThemeLight.Opposite() != ThemeDark {
		t.Errorf("light.Opposite() = %q, want dark", ThemeLight.Opposite())
	}
}

func TestActiveCategories_PreservesOrder(t *testing.T) {
	cats := []Category{
		{ID: "cat-1", IsActive: false},
		{ID: "cat-2", IsActive: true},
		{ID: "cat-3", IsActive: false},
		{ID: "cat-4", IsActive: true},
	}

	got := ActiveCategories(cats)
	if len(got) != 2 || got[0].ID != "cat-2" || got[1].ID != "cat-4" {
		t.Errorf("ActiveCategories = %+v, want cat-2, cat-4", got)
	}
}

func TestActiveCategories_NoneActiveReturnsEmpty(t *testing.T) {
	got := ActiveCategories([]Category{{ID: "cat-1"}})
	if got == nil || len(got) != 0 {
		t.Errorf("ActiveCategories = %#v, want empty non-nil slice", got)
	}
}
