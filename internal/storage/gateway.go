// Package storage は端末ローカルストレージに相当する3つのレコードの読み書きを提供する。
//
// キーは固定で、カテゴリ（JSON配列）、興味テキスト（生の文字列）、テーマ（"light" | "dark"）を保持する。
// 読み込み失敗はログに記録したうえで既定値に縮退し、書き込み失敗は呼び出し元へ返す。
package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/hitoshi/maqalat/internal/model"
	"github.com/hitoshi/maqalat/internal/repository"
)

const (
	// KeyCategories はアクティブカテゴリのJSON配列を保存するキー。
	KeyCategories = "@ai_articles_categories"
	// KeyInterests は入力された興味テキストを保存するキー。
	KeyInterests = "@ai_articles_interests"
	// KeyTheme は表示テーマを保存するキー。
	KeyTheme = "@ai_articles_theme"
)

// FailureRecorder はストレージ操作の失敗を記録する。
// metrics.Collector がこれを満たす。
type FailureRecorder interface {
	RecordStorageFailure(operation string)
}

// Gateway はKeyValueRepository上に型付きの読み書きを提供する。
type Gateway struct {
	repo     repository.KeyValueRepository
	logger   *slog.Logger
	recorder FailureRecorder
}

// NewGateway はGatewayを生成する。loggerがnilの場合はslog.Default()を使用する。
func NewGateway(repo repository.KeyValueRepository, logger *slog.Logger) *Gateway {
	if logger == nil {
		logger = slog.Default()
	}
	return &Gateway{repo: repo, logger: logger}
}

// WithFailureRecorder は失敗記録先を設定したGatewayを返す。
func (g *Gateway) WithFailureRecorder(r FailureRecorder) *Gateway {
	g.recorder = r
	return g
}

// SaveCategories はカテゴリ一覧をJSONで保存する。
func (g *Gateway) SaveCategories(ctx context.Context, categories []model.Category) error {
	if categories == nil {
		categories = []model.Category{}
	}
	data, err := json.Marshal(categories)
	if err != nil {
		return fmt.Errorf("failed to encode categories: %w", err)
	}
	if err := g.repo.Set(ctx, KeyCategories, string(data)); err != nil {
		g.fail("save_categories", err)
		return fmt.Errorf("failed to save categories: %w", err)
	}
	return nil
}

// Categories は保存済みカテゴリを返す。
// 未保存・読み込み失敗・破損データの場合は空スライスを返す。
func (g *Gateway) Categories(ctx context.Context) []model.Category {
	raw, ok, err := g.repo.Get(ctx, KeyCategories)
	if err != nil {
		g.fail("load_categories", err)
		return []model.Category{}
	}
	if !ok || raw == "" {
		return []model.Category{}
	}

	var categories []model.Category
	if err := json.Unmarshal([]byte(raw), &categories); err != nil {
		g.fail("decode_categories", err)
		return []model.Category{}
	}
	if categories == nil {
		return []model.Category{}
	}
	return categories
}

// SaveInterests は興味テキストをそのまま保存する。
func (g *Gateway) SaveInterests(ctx context.Context, interests string) error {
	if err := g.repo.Set(ctx, KeyInterests, interests); err != nil {
		g.fail("save_interests", err)
		return fmt.Errorf("failed to save interests: %w", err)
	}
	return nil
}

// Interests は保存済みの興味テキストを返す。未保存または読み込み失敗の場合はokがfalseになる。
func (g *Gateway) Interests(ctx context.Context) (string, bool) {
	v, ok, err := g.repo.Get(ctx, KeyInterests)
	if err != nil {
		g.fail("load_interests", err)
		return "", false
	}
	return v, ok
}

// SaveTheme はテーマを保存する。
func (g *Gateway) SaveTheme(ctx context.Context, t model.Theme) error {
	if err := g.repo.Set(ctx, KeyTheme, string(t)); err != nil {
		g.fail("save_theme", err)
		return fmt.Errorf("failed to save theme: %w", err)
	}
	return nil
}

// Theme は保存済みのテーマを返す。
// 未保存・不正値・読み込み失敗の場合はokがfalseになる。
func (g *Gateway) Theme(ctx context.Context) (model.Theme, bool) {
	v, ok, err := g.repo.Get(ctx, KeyTheme)
	if err != nil {
		g.fail("load_theme", err)
		return "", false
	}
	if !ok {
		return "", false
	}
	t, valid := model.ParseTheme(v)
	if !valid {
		g.logger.Warn("ignoring invalid stored theme", slog.String("value", v))
		return "", false
	}
	return t, true
}

func (g *Gateway) fail(op string, err error) {
	g.logger.Error("storage operation failed",
		slog.String("operation", op),
		slog.String("error", err.Error()),
	)
	if g.recorder != nil {
		g.recorder.RecordStorageFailure(op)
	}
}
