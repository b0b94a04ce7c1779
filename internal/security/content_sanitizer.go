// Package security はアプリケーションのセキュリティ機能を提供する。
//
// ContentSanitizer は記事本文のHTMLを閲覧画面向けにサニタイズする。
// bluemondayの許可リストベースのポリシーで、安全なタグと属性のみを通過させる。
package security

import (
	"html"
	"net/url"
	"regexp"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// ContentSanitizer はHTMLコンテンツのサニタイズ機能のインターフェース。
// カタログ読み込み時に使用される。
type ContentSanitizer interface {
	// Sanitize は閲覧画面で表示できる安全なHTMLを返す。
	// 許可タグ（p, br, a, ul, ol, li, blockquote, pre, code, strong, em, h2, h3, img）のみを通過させる。
	// imgのsrcはhttpsのみ許可し、aにはtarget="_blank"とrel="noopener noreferrer"を付与する。
	// 段落系の要素ではdir属性（rtl, ltr, auto）を保持する。
	Sanitize(rawHTML string) string

	// PlainText はタグをすべて除去し、エンティティを復元したテキストを返す。
	// 一覧表示用の抜粋に使用する。
	PlainText(rawHTML string) string
}

var dirValue = regexp.MustCompile(`^(rtl|ltr|auto)$`)

// contentSanitizer はContentSanitizerの実装。
// bluemondayのポリシーはスレッドセーフに使用できる。
type contentSanitizer struct {
	policy *bluemonday.Policy
	strict *bluemonday.Policy
}

// NewContentSanitizer はContentSanitizerの新しいインスタンスを生成する。
func NewContentSanitizer() ContentSanitizer {
	p := bluemonday.NewPolicy()

	p.AllowElements(
		"p", "br", "ul", "ol", "li",
		"blockquote", "pre", "code",
		"strong", "em", "h2", "h3",
	)

	// アラビア語本文の中に英語のコードなどが混ざるため、書字方向を保持する
	p.AllowAttrs("dir").Matching(dirValue).OnElements("p", "blockquote", "li", "h2", "h3")

	p.AllowAttrs("href").OnElements("a")
	p.AllowRelativeURLs(false)
	p.AddTargetBlankToFullyQualifiedLinks(true)
	p.RequireNoReferrerOnLinks(true)

	p.AllowAttrs("src", "alt").OnElements("img")
	p.AllowURLSchemeWithCustomPolicy("https", func(u *url.URL) bool {
		return true
	})

	return &contentSanitizer{
		policy: p,
		strict: bluemonday.StrictPolicy(),
	}
}

// Sanitize はHTMLコンテンツをサニタイズして安全なHTMLを返す。
func (s *contentSanitizer) Sanitize(rawHTML string) string {
	return s.policy.Sanitize(rawHTML)
}

// PlainText はHTMLからテキストのみを取り出す。
func (s *contentSanitizer) PlainText(rawHTML string) string {
	text := s.strict.Sanitize(rawHTML)
	return strings.Join(strings.Fields(html.UnescapeString(text)), " ")
}
