package feed

import (
	"encoding/json"
)

// AllLabel は全件表示タブの表示名。
const AllLabel = "الكل"

// Selection はホーム画面で選択中のカテゴリを表す。
// 全件表示とスラッグ指定のどちらか一方を取る。空文字列のスラッグは全件表示を意味しない。
type Selection struct {
	all  bool
	slug string
}

// All は全件表示の選択を返す。
func All() Selection {
	return Selection{all: true}
}

// BySlug は指定スラッグのカテゴリの選択を返す。
func BySlug(slug string) Selection {
	return Selection{slug: slug}
}

// IsAll は全件表示かどうかを返す。
func (s Selection) IsAll() bool {
	return s.all
}

// Slug はスラッグ指定の場合にスラッグを返す。全件表示の場合はokがfalseになる。
func (s Selection) Slug() (slug string, ok bool) {
	if s.all {
		return "", false
	}
	return s.slug, true
}

func (s Selection) String() string {
	if s.all {
		return "all"
	}
	return "slug:" + s.slug
}

type selectionJSON struct {
	All  bool    `json:"all"`
	Slug *string `json:"slug,omitempty"`
}

// MarshalJSON は {"all":true} または {"all":false,"slug":"..."} を出力する。
func (s Selection) MarshalJSON() ([]byte, error) {
	if s.all {
		return json.Marshal(selectionJSON{All: true})
	}
	slug := s.slug
	return json.Marshal(selectionJSON{Slug: &slug})
}
