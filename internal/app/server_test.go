package app

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/hitoshi/maqalat/internal/config"
	"github.com/hitoshi/maqalat/internal/model"
	"github.com/hitoshi/maqalat/internal/repository"
	"github.com/hitoshi/maqalat/internal/storage"
	"github.com/prometheus/client_golang/prometheus"
)

func testConfig(driver string) *config.Config {
	return &config.Config{
		StorageDriver:     driver,
		ThemeWriteTimeout: time.Second,
		RateLimitGeneral:  600,
		RateLimitGenerate: 600,
		CORSAllowedOrigin: "http://localhost:8081",
		ServerPort:        "0",
		ShutdownTimeout:   time.Second,
	}
}

func TestOpenBackend_Drivers(t *testing.T) {
	t.Run("memory", func(t *testing.T) {
		b, err := openBackend(testConfig(config.DriverMemory))
		if err != nil {
			t.Fatalf("openBackend: %v", err)
		}
		defer b.close()
		if err := b.checker.PingContext(context.Background()); err != nil {
			t.Errorf("ping: %v", err)
		}
	})

	t.Run("sqlite", func(t *testing.T) {
		cfg := testConfig(config.DriverSQLite)
		cfg.SQLitePath = filepath.Join(t.TempDir(), "maqalat.db")

		b, err := openBackend(cfg)
		if err != nil {
			t.Fatalf("openBackend: %v", err)
		}
		defer b.close()

		ctx := context.Background()
		if err := b.repo.Set(ctx, storage.KeyTheme, "light"); err != nil {
			t.Fatalf("Set: %v", err)
		}
		v, ok, err := b.repo.Get(ctx, storage.KeyTheme)
		if err != nil || !ok || v != "light" {
			t.Errorf("Get = %q, %v, %v", v, ok, err)
		}
	})
}

func TestNewServer_RestoresSavedTheme(t *testing.T) {
	repo := repository.NewMemoryKVRepo()
	if err := repo.Set(context.Background(), storage.KeyTheme, "light"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	b := &backend{repo: repo, checker: repo, close: func() error { return nil }}

	srv, err := newServer(context.Background(), testConfig(config.DriverMemory), b, prometheus.NewRegistry())
	if err != nil {
		t.Fatalf("newServer: %v", err)
	}
	defer srv.shutdown()

	if got := srv.theme.Current(); got != model.ThemeLight {
		t.Errorf("theme = %q, want %q", got, model.ThemeLight)
	}
}

func TestNewServer_ServesAPI(t *testing.T) {
	repo := repository.NewMemoryKVRepo()
	b := &backend{repo: repo, checker: repo, close: func() error { return nil }}
	reg := prometheus.NewRegistry()

	srv, err := newServer(context.Background(), testConfig(config.DriverMemory), b, reg)
	if err != nil {
		t.Fatalf("newServer: %v", err)
	}

	ts := httptest.NewServer(srv.handler)
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/health")
	if err != nil {
		t.Fatalf("GET /health: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("health status = %d, want %d", resp.StatusCode, http.StatusOK)
	}

	req, _ := http.NewRequest(http.MethodPut, ts.URL+"/api/theme", bytes.NewBufferString(`{"theme":"light"}`))
	resp, err = http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("PUT /api/theme: %v", err)
	}
	var body struct {
		Theme  model.Theme   `json:"theme"`
		Colors model.Palette `json:"colors"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	resp.Body.Close()
	if body.Theme != model.ThemeLight || body.Colors.Background == "" {
		t.Errorf("theme response = %+v", body)
	}

	// シャットダウンで書き込みの完了を待つ
	srv.shutdown()

	if v, ok, _ := repo.Get(context.Background(), storage.KeyTheme); !ok || v != "light" {
		t.Errorf("persisted theme = %q, %v", v, ok)
	}

	// テーマ変更がメトリクスに記録される
	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("Gather: %v", err)
	}
	found := false
	for _, mf := range families {
		if mf.GetName() == "maqalat_theme_changes_total" {
			found = true
		}
	}
	if !found {
		t.Error("theme change should be recorded in metrics")
	}
}
