// Package catalog は組み込みの記事コレクションを提供する。
//
// 記事はRSS 2.0文書として埋め込まれており、起動時にgofeedで一度だけ読み込む。
// 本文はサニタイズ済みのHTMLとして保持し、以後は変更しない。
package catalog

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"strings"

	"github.com/mmcdole/gofeed"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/hitoshi/maqalat/internal/model"
	"github.com/hitoshi/maqalat/internal/security"
)

//go:embed articles.xml
var articlesXML []byte

// extensionPrefix は表示用の相対時刻を格納する独自名前空間のプレフィックス。
const extensionPrefix = "maqalat"

// Catalog は読み込み済みの記事一覧を保持する。
type Catalog struct {
	articles []model.Article
	index    map[string]int
}

// Default は組み込みの記事コレクションを読み込む。
func Default(sanitizer security.ContentSanitizer) (*Catalog, error) {
	return Load(bytes.NewReader(articlesXML), sanitizer)
}

// Load はRSS文書から記事コレクションを読み込む。
// guidが空または重複している記事がある場合はエラーを返す。
func Load(r io.Reader, sanitizer security.ContentSanitizer) (*Catalog, error) {
	parsed, err := gofeed.NewParser().Parse(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}

	c := &Catalog{
		articles: make([]model.Article, 0, len(parsed.Items)),
		index:    make(map[string]int, len(parsed.Items)),
	}

	for i, item := range parsed.Items {
		id := strings.TrimSpace(item.GUID)
		if id == "" {
			return nil, fmt.Errorf("catalog item %d has no guid", i)
		}
		if _, dup := c.index[id]; dup {
			return nil, fmt.Errorf("duplicate catalog guid %q", id)
		}

		c.index[id] = len(c.articles)
		c.articles = append(c.articles, convertItem(id, item, sanitizer))
	}

	return c, nil
}

// Articles は全記事をカタログ順で返す。
// 返り値は共有されるため、呼び出し元で変更してはならない。
func (c *Catalog) Articles() []model.Article {
	return c.articles
}

// ByID は指定IDの記事を返す。
func (c *Catalog) ByID(id string) (model.Article, bool) {
	i, ok := c.index[id]
	if !ok {
		return model.Article{}, false
	}
	return c.articles[i], true
}

// Len は記事数を返す。
func (c *Catalog) Len() int {
	return len(c.articles)
}

// convertItem はgofeedの記事をmodel.Articleに変換する。
func convertItem(id string, item *gofeed.Item, sanitizer security.ContentSanitizer) model.Article {
	content := item.Content
	if content == "" {
		content = item.Description
	}

	a := model.Article{
		ID:      id,
		Title:   strings.TrimSpace(item.Title),
		Excerpt: sanitizer.PlainText(item.Description),
		Content: sanitizer.Sanitize(content),
		Image:   itemImage(item),
		Time:    extensionValue(item, extensionPrefix, "time"),
	}

	if len(item.Categories) > 0 {
		a.CategorySlug = strings.TrimSpace(item.Categories[0])
	}
	if item.DublinCoreExt != nil && len(item.DublinCoreExt.Source) > 0 {
		a.Source = strings.TrimSpace(item.DublinCoreExt.Source[0])
	}
	if a.Image == "" {
		a.Image = firstImageSrc(a.Content)
	}

	return a
}

// itemImage は画像のenclosureまたはitem画像のURLを返す。
func itemImage(item *gofeed.Item) string {
	for _, enc := range item.Enclosures {
		if enc != nil && strings.HasPrefix(enc.Type, "image/") && enc.URL != "" {
			return enc.URL
		}
	}
	if item.Image != nil {
		return item.Image.URL
	}
	return ""
}

// extensionValue は独自名前空間の要素の値を返す。存在しない場合は空文字列。
func extensionValue(item *gofeed.Item, prefix, name string) string {
	ns, ok := item.Extensions[prefix]
	if !ok {
		return ""
	}
	values := ns[name]
	if len(values) == 0 {
		return ""
	}
	return strings.TrimSpace(values[0].Value)
}

// firstImageSrc は本文HTML中の最初のimg要素のsrcを返す。
func firstImageSrc(content string) string {
	doc, err := html.Parse(strings.NewReader(content))
	if err != nil {
		return ""
	}

	var walk func(n *html.Node) string
	walk = func(n *html.Node) string {
		if n.Type == html.ElementNode && n.DataAtom == atom.Img {
			for _, attr := range n.Attr {
				if attr.Key == "src" && attr.Val != "" {
					return attr.Val
				}
			}
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			if src := walk(child); src != "" {
				return src
			}
		}
		return ""
	}
	return walk(doc)
}
