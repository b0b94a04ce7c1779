// Package model はドメインモデルを定義する。
package model

// Category はユーザーが選択できる記事カテゴリを表す。
// JSONフィールド名は端末ストレージに保存済みのデータと互換性を保つため固定する。
type Category struct {
	ID        string `json:"id"`
	Name      string `json:"name"` // 表示名（アラビア語）
	Slug      string `json:"slug"`
	IsActive  bool   `json:"isActive"`
	SortOrder int    `json:"sortOrder"`
}

// ActiveCategories はisActiveがtrueのカテゴリのみを元の順序で返す。
func ActiveCategories(categories []Category) []Category {
	active := make([]Category, 0, len(categories))
	for _, c := range categories {
		if c.IsActive {
			active = append(active, c)
		}
	}
	return active
}
