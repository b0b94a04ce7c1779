// Package handler はHTTPハンドラーとルーティングを提供する。
package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/hitoshi/maqalat/internal/metrics"
	"github.com/hitoshi/maqalat/internal/middleware"
	"github.com/prometheus/client_golang/prometheus"
)

// RouterDeps はNewRouterに必要な依存関係をまとめた構造体。
type RouterDeps struct {
	// ミドルウェア依存
	Logger            *slog.Logger
	CORSAllowedOrigin string
	RateLimiter       *middleware.RateLimiter
	HTTPMetrics       middleware.HTTPMetricsRecorder

	// 監視
	HealthChecker   HealthChecker
	MetricsGatherer prometheus.Gatherer

	// オンボーディング
	OnboardingService OnboardingServiceInterface

	// ホーム・閲覧
	FeedService FeedServiceInterface
	Categories  CategoryLister

	// テーマ
	ThemeStore ThemeStore
}

// NewRouter は全APIエンドポイントのルーティングとミドルウェアチェーンを構成したchi.Routerを返す。
//
// ミドルウェアスタックの実行順序:
//
//	RequestID → Logging → Metrics → Recovery → SecurityHeaders → CORS → RateLimit(General)
//
// /health と /metrics はレート制限の外に配置する。
// カテゴリ生成には生成専用のレート制限を追加する。
func NewRouter(deps *RouterDeps) http.Handler {
	r := chi.NewRouter()

	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	r.Use(middleware.NewRequestIDMiddleware())
	r.Use(middleware.NewLoggingMiddleware(logger))
	if deps.HTTPMetrics != nil {
		r.Use(middleware.NewMetricsMiddleware(deps.HTTPMetrics))
	}
	r.Use(middleware.NewRecoveryMiddleware())
	r.Use(middleware.NewSecurityHeadersMiddleware())
	r.Use(middleware.NewCORSMiddleware(deps.CORSAllowedOrigin))

	// --- 監視用ルート ---
	r.Get("/health", NewHealthHandler(deps.HealthChecker))
	if deps.MetricsGatherer != nil {
		r.Method(http.MethodGet, "/metrics", metrics.Handler(deps.MetricsGatherer))
	}

	onboardingHandler := NewOnboardingHandler(deps.OnboardingService)
	feedHandler := NewFeedHandler(deps.FeedService, deps.Categories)
	themeHandler := NewThemeHandler(deps.ThemeStore)

	// --- APIルート ---
	r.Route("/api", func(r chi.Router) {
		if deps.RateLimiter != nil {
			r.Use(deps.RateLimiter.GeneralMiddleware())
		}

		// オンボーディング
		r.Get("/onboarding/status", onboardingHandler.Status)
		r.Route("/onboarding/draft", func(r chi.Router) {
			r.Post("/", onboardingHandler.Begin)
			r.Get("/", onboardingHandler.Current)

			// POST /api/onboarding/draft/generate - カテゴリ生成（生成専用レート制限を追加）
			if deps.RateLimiter != nil {
				r.With(deps.RateLimiter.GenerateMiddleware()).Post("/generate", onboardingHandler.Generate)
			} else {
				r.Post("/generate", onboardingHandler.Generate)
			}

			r.Post("/categories/{id}/toggle", onboardingHandler.Toggle)
			r.Post("/save", onboardingHandler.Save)
		})

		// カテゴリ・キーワード
		r.Get("/categories", feedHandler.ListCategories)
		r.Get("/keywords", feedHandler.ListKeywords)

		// ホーム・閲覧
		r.Get("/feed", feedHandler.Home)
		r.Get("/articles/{id}", feedHandler.GetArticle)

		// テーマ
		r.Route("/theme", func(r chi.Router) {
			r.Get("/", themeHandler.GetTheme)
			r.Put("/", themeHandler.SetTheme)
			r.Post("/toggle", themeHandler.Toggle)
		})

		// プロフィール
		r.Get("/profile", GetProfile)
	})

	return r
}
