package feed

import (
	"context"
	"log/slog"

	"github.com/hitoshi/maqalat/internal/model"
)

// CategorySource は保存済みカテゴリの取得元。storage.Gateway がこれを満たす。
type CategorySource interface {
	Categories(ctx context.Context) []model.Category
}

// ArticleSource は記事の取得元。catalog.Catalog がこれを満たす。
type ArticleSource interface {
	Articles() []model.Article
	ByID(id string) (model.Article, bool)
}

// Home はホーム画面に表示する内容。
type Home struct {
	AllLabel   string           `json:"allLabel"`
	Categories []model.Category `json:"categories"`
	Selection  Selection        `json:"selection"`
	Articles   []model.Article  `json:"articles"`
}

// Service はホーム画面と閲覧画面のサービス層。
type Service struct {
	categories CategorySource
	articles   ArticleSource
	logger     *slog.Logger
}

// NewService はServiceの新しいインスタンスを生成する。
func NewService(categories CategorySource, articles ArticleSource, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		categories: categories,
		articles:   articles,
		logger:     logger,
	}
}

// Home はホーム画面の内容を返す。
// selがnilの場合、保存済みカテゴリがあれば先頭のカテゴリ、なければ全件表示を選択する。
func (s *Service) Home(ctx context.Context, sel *Selection) Home {
	categories := s.categories.Categories(ctx)

	selection := DefaultSelection(categories)
	if sel != nil {
		selection = *sel
	}

	articles := Filter(s.articles.Articles(), selection)

	s.logger.Debug("home feed built",
		slog.String("selection", selection.String()),
		slog.Int("categories", len(categories)),
		slog.Int("articles", len(articles)),
	)

	return Home{
		AllLabel:   AllLabel,
		Categories: categories,
		Selection:  selection,
		Articles:   articles,
	}
}

// Article は閲覧画面に表示する記事を返す。
// 存在しないIDの場合はARTICLE_NOT_FOUNDエラーを返す。
func (s *Service) Article(ctx context.Context, id string) (model.Article, error) {
	a, ok := s.articles.ByID(id)
	if !ok {
		return model.Article{}, model.NewArticleNotFoundError(id)
	}
	return a, nil
}

// DefaultSelection は保存済みカテゴリから既定の選択を決める。
func DefaultSelection(categories []model.Category) Selection {
	if len(categories) == 0 {
		return All()
	}
	return BySlug(categories[0].Slug)
}
