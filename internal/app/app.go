package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hitoshi/maqalat/internal/catalog"
	"github.com/hitoshi/maqalat/internal/config"
	"github.com/hitoshi/maqalat/internal/database"
	"github.com/hitoshi/maqalat/internal/feed"
	"github.com/hitoshi/maqalat/internal/handler"
	"github.com/hitoshi/maqalat/internal/logger"
	"github.com/hitoshi/maqalat/internal/metrics"
	"github.com/hitoshi/maqalat/internal/middleware"
	"github.com/hitoshi/maqalat/internal/onboarding"
	"github.com/hitoshi/maqalat/internal/repository"
	"github.com/hitoshi/maqalat/internal/security"
	"github.com/hitoshi/maqalat/internal/storage"
	"github.com/hitoshi/maqalat/internal/theme"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Init はアプリケーションの初期化を行う。
// 環境変数からConfigを読み込み、JSON構造化ログをセットアップする。
// writerが指定された場合はログ出力先としてそのwriterを使用する。
func Init(w io.Writer) (*config.Config, error) {
	// 1. ログの初期化（設定読み込み前にログを使えるようにする）
	logger.SetupDefault(w, slog.LevelInfo)

	// 2. 環境変数から設定を読み込む
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	// 3. 設定されたログレベルで再構成する
	logger.SetupDefault(w, logger.ParseLevel(cfg.LogLevel))

	return cfg, nil
}

// Run はアプリケーションのメインエントリーポイント。
// コマンドライン引数からサブコマンドを解析し、対応するモードで起動する。
// argsにはos.Args[1:]を渡す。
func Run(w io.Writer, args []string) error {
	cmd := ParseCommand(args)

	// healthcheck は軽量サブコマンドのため、フル初期化をスキップする
	if cmd == CommandHealthcheck {
		port := os.Getenv("SERVER_PORT")
		if port == "" {
			port = "8080"
		}
		return runHealthcheck(port)
	}

	cfg, err := Init(w)
	if err != nil {
		return fmt.Errorf("initialization failed: %w", err)
	}

	slog.Info("starting application",
		slog.String("command", string(cmd)),
		slog.String("port", cfg.ServerPort),
		slog.String("storage_driver", cfg.StorageDriver),
	)

	switch cmd {
	case CommandMigrate:
		return runMigrate(cfg)
	default:
		return runServe(cfg)
	}
}

// backend はストレージドライバごとに開いたKVストアと後始末をまとめる。
type backend struct {
	repo    repository.KeyValueRepository
	checker handler.HealthChecker
	close   func() error
}

// openBackend は設定されたストレージドライバでKVストアを開く。
// postgresの場合は起動時に未適用のマイグレーションを適用する。
func openBackend(cfg *config.Config) (*backend, error) {
	switch cfg.StorageDriver {
	case config.DriverMemory:
		repo := repository.NewMemoryKVRepo()
		return &backend{repo: repo, checker: repo, close: func() error { return nil }}, nil

	case config.DriverPostgres:
		if err := database.RunMigrations(cfg.DatabaseURL); err != nil {
			return nil, fmt.Errorf("migration failed: %w", err)
		}
		db, err := database.Open(cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("failed to open database: %w", err)
		}
		if err := db.Ping(); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		slog.Info("database connection established",
			slog.String("database_url", maskDatabaseURL(cfg.DatabaseURL)),
		)
		return &backend{repo: repository.NewPostgresKVRepo(db), checker: db, close: db.Close}, nil

	default:
		db, err := database.OpenSQLite(cfg.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("failed to open sqlite database: %w", err)
		}
		slog.Info("sqlite database opened", slog.String("path", cfg.SQLitePath))
		return &backend{repo: repository.NewSQLiteKVRepo(db), checker: db, close: db.Close}, nil
	}
}

// server はHTTPハンドラーと、シャットダウン時に後始末が必要なコンポーネントを保持する。
type server struct {
	handler     http.Handler
	theme       *theme.Store
	rateLimiter *middleware.RateLimiter
}

// shutdown はレート制限のクリーンアップを止め、実行中のテーマ書き込みの完了を待つ。
func (s *server) shutdown() {
	s.rateLimiter.Stop()
	s.theme.Wait()
}

// newServer は全依存関係をワイヤリングしたserverを構築する。
func newServer(ctx context.Context, cfg *config.Config, b *backend, reg *prometheus.Registry) (*server, error) {
	log := slog.Default()

	// 1. メトリクス
	collector := metrics.NewCollector(reg)

	// 2. 永続化ゲートウェイ
	gateway := storage.NewGateway(b.repo, log).WithFailureRecorder(collector)

	// 3. テーマ状態（保存済みのテーマを復元し、変更をメトリクスに記録する）
	themeStore := theme.New(gateway,
		theme.WithLogger(log),
		theme.WithWriteTimeout(cfg.ThemeWriteTimeout),
	)
	themeStore.LoadSaved(ctx)
	themeStore.Subscribe(func() {
		collector.RecordThemeChange(string(themeStore.Current()))
	})

	// 4. 組み込みカタログ
	articles, err := catalog.Default(security.NewContentSanitizer())
	if err != nil {
		return nil, fmt.Errorf("failed to load article catalog: %w", err)
	}
	slog.Info("article catalog loaded", slog.Int("articles", articles.Len()))

	// 5. ドメインサービス
	feedService := feed.NewService(gateway, articles, log)
	onboardingService := onboarding.NewService(gateway, collector, log)

	// 6. ルーター
	rl := middleware.NewRateLimiter(middleware.RateLimiterConfigPerMinute(cfg.RateLimitGeneral, cfg.RateLimitGenerate))

	router := handler.NewRouter(&handler.RouterDeps{
		Logger:            log,
		CORSAllowedOrigin: cfg.CORSAllowedOrigin,
		RateLimiter:       rl,
		HTTPMetrics:       collector,
		HealthChecker:     b.checker,
		MetricsGatherer:   reg,
		OnboardingService: onboardingService,
		FeedService:       feedService,
		Categories:        gateway,
		ThemeStore:        themeStore,
	})

	slog.Info("application wired",
		slog.String("theme", string(themeStore.Current())),
		slog.Bool("onboarding_completed", onboardingService.Status(ctx)),
	)

	return &server{handler: router, theme: themeStore, rateLimiter: rl}, nil
}

// newRegistry はプロセスとGoランタイムのメトリクスを含むレジストリを生成する。
func newRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return reg
}

// runServe はAPIサーバーモードで起動する。
// ストレージを開き、全依存関係をワイヤリングし、HTTPサーバーを起動する。
// SIGINTまたはSIGTERMシグナルを受信するとグレースフルシャットダウンを行う。
func runServe(cfg *config.Config) error {
	b, err := openBackend(cfg)
	if err != nil {
		return err
	}
	defer b.close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	srv, err := newServer(ctx, cfg, b, newRegistry())
	if err != nil {
		return err
	}

	httpServer := &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      srv.handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("API server starting", slog.String("addr", httpServer.Addr))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		srv.shutdown()
		if err != nil {
			return fmt.Errorf("server listen error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	slog.Info("shutting down API server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	err = httpServer.Shutdown(shutdownCtx)
	srv.shutdown()
	if err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	slog.Info("API server stopped gracefully",
		slog.String("theme", string(srv.theme.Current())),
	)
	return nil
}

// runMigrate はデータベースマイグレーションを実行する。
// postgres以外のドライバではスキーマを起動時に作成するため何もしない。
func runMigrate(cfg *config.Config) error {
	if cfg.StorageDriver != config.DriverPostgres {
		slog.Info("migrations are only required for postgres; skipping",
			slog.String("storage_driver", cfg.StorageDriver),
		)
		return nil
	}

	slog.Info("running database migrations",
		slog.String("database_url", maskDatabaseURL(cfg.DatabaseURL)),
	)

	if err := database.RunMigrations(cfg.DatabaseURL); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	slog.Info("database migrations completed successfully")
	return nil
}

// runHealthcheck はヘルスチェックを実行する。
// distroless環境でのDockerヘルスチェック用サブコマンド。
// /health エンドポイントにHTTPリクエストを送り、結果を返す。
func runHealthcheck(port string) error {
	url := fmt.Sprintf("http://localhost:%s/health", port)
	client := &http.Client{Timeout: 5 * time.Second}

	resp, err := client.Get(url)
	if err != nil {
		return fmt.Errorf("health check failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("health check returned status %d", resp.StatusCode)
	}

	return nil
}

// maskDatabaseURL はデータベースURLの認証情報をマスクする。
func maskDatabaseURL(url string) string {
	if len(url) > 20 {
		return url[:12] + "***@..."
	}
	return "***"
}
