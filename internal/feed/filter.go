// Package feed はホーム画面のフィード表示を提供する。
//
// Filter は記事一覧を選択中のカテゴリで絞り込む純粋関数で、
// Service は保存済みカテゴリと既定の選択を組み合わせてホーム画面の内容を組み立てる。
package feed

import (
	"github.com/hitoshi/maqalat/internal/model"
)

// Filter は選択に応じて記事を絞り込む。
// 全件表示の場合は引数のスライスをそのまま返す。
// スラッグ指定の場合はcategorySlugが完全一致する記事のみを元の順序で返し、
// 一致がなければ空スライスを返す。
func Filter(all []model.Article, sel Selection) []model.Article {
	slug, ok := sel.Slug()
	if !ok {
		return all
	}

	filtered := make([]model.Article, 0, len(all))
	for _, a := range all {
		if a.CategorySlug == slug {
			filtered = append(filtered, a)
		}
	}
	return filtered
}
