// Package classifier は関心事の自由記述テキストからカテゴリを生成する。
//
// 生成はキーワード表による完全一致のみで行い、外部サービスは使用しない。
// 同じ入力には常に同じ結果を返す純粋関数として実装する。
package classifier

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/hitoshi/maqalat/internal/model"
)

// Generate は関心事テキストからカテゴリ一覧を生成する。
//
// 処理手順:
//  1. 小文字化し、空白またはカンマ（ASCIIの「,」とアラビア語の「،」）で分割する
//  2. 各トークンをトリムし、空トークンを除外する
//  3. キーワード表で照合し、一致したカテゴリ名を初出順・重複なしで収集する
//  4. 一致が0件の場合は既定の3カテゴリを使用する
//
// 先頭のカテゴリのみisActive=trueとなる。エラーは返さない。
func Generate(interests string) []model.Category {
	names := matchCategoryNames(Tokenize(interests))
	if len(names) == 0 {
		names = DefaultCategoryNames()
	}

	categories := make([]model.Category, len(names))
	for i, name := range names {
		categories[i] = model.Category{
			ID:        fmt.Sprintf("cat-%d", i+1),
			Name:      name,
			Slug:      Slugify(name),
			IsActive:  i == 0,
			SortOrder: i,
		}
	}
	return categories
}

// Tokenize は関心事テキストを小文字化したトークン列に分割する。
// 空白とカンマを区切りとし、空トークンは含めない。
func Tokenize(interests string) []string {
	fields := strings.FieldsFunc(strings.ToLower(interests), isSeparator)

	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		if tok := strings.TrimSpace(f); tok != "" {
			tokens = append(tokens, tok)
		}
	}
	return tokens
}

// Slugify は表示名からスラッグを生成する。
// 小文字化し、連続する空白を1つのハイフンに置換する。
// 先頭・末尾の空白もハイフンとして残す。
func Slugify(name string) string {
	var b strings.Builder
	inSpace := false
	for _, r := range strings.ToLower(name) {
		if unicode.IsSpace(r) {
			if !inSpace {
				b.WriteByte('-')
				inSpace = true
			}
			continue
		}
		inSpace = false
		b.WriteRune(r)
	}
	return b.String()
}

// matchCategoryNames はトークン列に一致したカテゴリ名を初出順に重複なく返す。
// 同一呼び出し内で複数のトークンが一致した場合はすべてのカテゴリを結果に含める。
func matchCategoryNames(tokens []string) []string {
	seen := make(map[string]bool)
	var names []string
	for _, tok := range tokens {
		name, ok := keywordTable[tok]
		if !ok || seen[name] {
			continue
		}
		seen[name] = true
		names = append(names, name)
	}
	return names
}

func isSeparator(r rune) bool {
	return unicode.IsSpace(r) || r == ',' || r == '،'
}
