// Package onboarding は初回起動時およびカテゴリ編集時の入力フローを提供する。
//
// 単一プロファイルで運用するため、編集中の下書きはサービス内に1つだけ保持する。
// 保存時はアクティブなカテゴリのみを永続化し、1つもなければ保存しない。
package onboarding

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/hitoshi/maqalat/internal/classifier"
	"github.com/hitoshi/maqalat/internal/model"
)

// Store は興味テキストとカテゴリの保存先。storage.Gateway がこれを満たす。
type Store interface {
	Categories(ctx context.Context) []model.Category
	SaveCategories(ctx context.Context, categories []model.Category) error
	Interests(ctx context.Context) (string, bool)
	SaveInterests(ctx context.Context, interests string) error
}

// Recorder はフローの結果を記録する。metrics.Collector がこれを満たす。
type Recorder interface {
	RecordCategoriesGenerated(count int)
	RecordSave(result string)
}

// 保存結果のラベル。
const (
	SaveResultSaved      = "saved"
	SaveResultNoneActive = "none_active"
	SaveResultFailed     = "failed"
)

// Draft は編集中の入力内容。
type Draft struct {
	Interests      string           `json:"interests"`
	Categories     []model.Category `json:"categories"`
	ShowCategories bool             `json:"showCategories"`
	Editing        bool             `json:"editing"`
}

func (d Draft) clone() Draft {
	c := d
	c.Categories = make([]model.Category, len(d.Categories))
	copy(c.Categories, d.Categories)
	return c
}

// Service はオンボーディングのサービス層。
type Service struct {
	store    Store
	recorder Recorder
	logger   *slog.Logger

	mu    sync.Mutex
	draft Draft
}

// NewService はServiceの新しいインスタンスを生成する。
// recorderはnilでもよい。
func NewService(store Store, recorder Recorder, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		store:    store,
		recorder: recorder,
		logger:   logger,
		draft:    Draft{Categories: []model.Category{}},
	}
}

// Status はオンボーディングが完了しているかを返す。
// 保存済みカテゴリが1つ以上あれば完了とみなす。
func (s *Service) Status(ctx context.Context) bool {
	return len(s.store.Categories(ctx)) > 0
}

// Begin は新しい下書きを開始する。
// 編集モードでは保存済みの興味テキストとカテゴリを並行して読み込み、
// カテゴリは保存時の状態のまま表示する。
func (s *Service) Begin(ctx context.Context, editing bool) (Draft, error) {
	draft := Draft{Categories: []model.Category{}, Editing: editing}

	if editing {
		var (
			interests  string
			hasSaved   bool
			categories []model.Category
		)

		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			interests, hasSaved = s.store.Interests(gctx)
			return gctx.Err()
		})
		g.Go(func() error {
			categories = s.store.Categories(gctx)
			return gctx.Err()
		})
		if err := g.Wait(); err != nil {
			return Draft{}, fmt.Errorf("failed to load saved preferences: %w", err)
		}

		if hasSaved {
			draft.Interests = interests
		}
		if len(categories) > 0 {
			draft.Categories = categories
			draft.ShowCategories = true
		}
	}

	s.mu.Lock()
	s.draft = draft
	s.mu.Unlock()

	s.logger.Info("onboarding draft started",
		slog.Bool("editing", editing),
		slog.Int("categories", len(draft.Categories)),
	)
	return draft.clone(), nil
}

// Current は現在の下書きを返す。
func (s *Service) Current(ctx context.Context) Draft {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.draft.clone()
}

// Generate は興味テキストからカテゴリを生成し、下書きのカテゴリを置き換える。
// 空白のみの入力はEMPTY_INTERESTSエラーとし、下書きを変更しない。
func (s *Service) Generate(ctx context.Context, interests string) (Draft, error) {
	if strings.TrimSpace(interests) == "" {
		return Draft{}, model.NewEmptyInterestsError()
	}

	categories := classifier.Generate(interests)

	s.mu.Lock()
	s.draft.Interests = interests
	s.draft.Categories = categories
	s.draft.ShowCategories = true
	draft := s.draft.clone()
	s.mu.Unlock()

	if s.recorder != nil {
		s.recorder.RecordCategoriesGenerated(len(categories))
	}
	s.logger.Info("categories generated", slog.Int("count", len(categories)))

	return draft, nil
}

// Toggle は指定カテゴリのアクティブ状態を反転する。
// 下書きに存在しないIDの場合はCATEGORY_NOT_FOUNDエラーを返す。
func (s *Service) Toggle(ctx context.Context, categoryID string) (Draft, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.draft.Categories {
		if s.draft.Categories[i].ID == categoryID {
			s.draft.Categories[i].IsActive = !s.draft.Categories[i].IsActive
			return s.draft.clone(), nil
		}
	}
	return Draft{}, model.NewCategoryNotFoundError(categoryID)
}

// Save は興味テキストとアクティブなカテゴリを保存し、保存したカテゴリを返す。
// アクティブなカテゴリがなければNO_ACTIVE_CATEGORYエラーとし、何も保存しない。
// 書き込みに失敗した場合はSAVE_FAILEDエラーを返す。
func (s *Service) Save(ctx context.Context) ([]model.Category, error) {
	s.mu.Lock()
	draft := s.draft.clone()
	s.mu.Unlock()

	active := model.ActiveCategories(draft.Categories)
	if len(active) == 0 {
		s.record(SaveResultNoneActive)
		return nil, model.NewNoActiveCategoryError()
	}

	if err := s.store.SaveInterests(ctx, draft.Interests); err != nil {
		return nil, s.saveFailed(err)
	}
	if err := s.store.SaveCategories(ctx, active); err != nil {
		return nil, s.saveFailed(err)
	}

	s.record(SaveResultSaved)
	s.logger.Info("preferences saved", slog.Int("categories", len(active)))
	return active, nil
}

func (s *Service) saveFailed(err error) error {
	s.record(SaveResultFailed)
	s.logger.Error("failed to save preferences", slog.String("error", err.Error()))
	return fmt.Errorf("%w: %v", model.NewSaveFailedError(), err)
}

func (s *Service) record(result string) {
	if s.recorder != nil {
		s.recorder.RecordSave(result)
	}
}
