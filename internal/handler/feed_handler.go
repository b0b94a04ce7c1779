package handler

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/hitoshi/maqalat/internal/classifier"
	"github.com/hitoshi/maqalat/internal/feed"
	"github.com/hitoshi/maqalat/internal/model"
)

// FeedServiceInterface はフィードハンドラーが必要とするサービスインターフェース。
type FeedServiceInterface interface {
	// Home はselに応じて絞り込んだホーム画面の内容を返す。selがnilなら既定の選択を使う。
	Home(ctx context.Context, sel *feed.Selection) feed.Home
	// Article はIDに対応する記事を返す。
	Article(ctx context.Context, id string) (model.Article, error)
}

// CategoryLister は保存済みカテゴリを返すインターフェース。
type CategoryLister interface {
	Categories(ctx context.Context) []model.Category
}

// FeedHandler はホーム画面・閲覧画面・カテゴリ参照のHTTPハンドラー。
type FeedHandler struct {
	service    FeedServiceInterface
	categories CategoryLister
}

// NewFeedHandler はFeedHandlerを生成する。
func NewFeedHandler(service FeedServiceInterface, categories CategoryLister) *FeedHandler {
	return &FeedHandler{
		service:    service,
		categories: categories,
	}
}

type categoriesResponse struct {
	Categories []model.Category `json:"categories"`
}

type keywordsResponse struct {
	Keywords map[string]string `json:"keywords"`
	Defaults []string          `json:"defaults"`
}

// Home はホーム画面の内容を返す。
// GET /api/feed?category=<slug> または GET /api/feed?all=true
func (h *FeedHandler) Home(w http.ResponseWriter, r *http.Request) {
	sel, err := parseSelection(r)
	if err != nil {
		writeAPIErrorResponse(w, http.StatusBadRequest, model.NewInvalidRequestError())
		return
	}
	writeJSON(w, http.StatusOK, h.service.Home(r.Context(), sel))
}

// GetArticle は記事詳細を返す。
// GET /api/articles/{id}
func (h *FeedHandler) GetArticle(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	article, err := h.service.Article(r.Context(), id)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, article)
}

// ListCategories は保存済みカテゴリを返す。
// GET /api/categories
func (h *FeedHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, categoriesResponse{Categories: h.categories.Categories(r.Context())})
}

// ListKeywords は分類に使うキーワード表と既定カテゴリを返す。
// GET /api/keywords
func (h *FeedHandler) ListKeywords(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, keywordsResponse{
		Keywords: classifier.Keywords(),
		Defaults: classifier.DefaultCategoryNames(),
	})
}

// parseSelection はクエリパラメータから選択を組み立てる。
// all=true が category より優先され、どちらもなければnilを返す。
func parseSelection(r *http.Request) (*feed.Selection, error) {
	q := r.URL.Query()

	if raw := q.Get("all"); raw != "" {
		all, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, err
		}
		if all {
			sel := feed.All()
			return &sel, nil
		}
	}

	if slug := strings.TrimSpace(q.Get("category")); slug != "" {
		sel := feed.BySlug(slug)
		return &sel, nil
	}
	return nil, nil
}
