// Package metrics はPrometheusメトリクスの収集と公開を提供する。
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsCollector はメトリクス収集のインターフェース。
// サービス層、ストレージ、HTTPミドルウェアから利用する。
type MetricsCollector interface {
	RecordCategoriesGenerated(count int)
	RecordSave(result string)
	RecordThemeChange(theme string)
	RecordStorageFailure(operation string)
	RecordHTTPStatus(statusCode int)
	RecordRequestLatency(duration time.Duration)
}

// Collector はPrometheusメトリクスを収集する実装。
type Collector struct {
	generations     prometheus.Counter
	generatedCount  prometheus.Histogram
	saves           *prometheus.CounterVec
	themeChanges    *prometheus.CounterVec
	storageFailures *prometheus.CounterVec
	httpStatus      *prometheus.CounterVec
	requestLatency  prometheus.Histogram
}

// NewCollector は新しいCollectorを生成し、指定されたレジストリにメトリクスを登録する。
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		generations: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "maqalat_category_generations_total",
			Help: "カテゴリ生成の実行回数",
		}),
		generatedCount: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "maqalat_generated_categories",
			Help:    "1回の生成で得られたカテゴリ数",
			Buckets: prometheus.LinearBuckets(1, 1, 10),
		}),
		saves: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "maqalat_preference_saves_total",
			Help: "設定保存の結果別の回数",
		}, []string{"result"}),
		themeChanges: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "maqalat_theme_changes_total",
			Help: "テーマ変更の回数",
		}, []string{"theme"}),
		storageFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "maqalat_storage_failures_total",
			Help: "ストレージ操作の失敗回数",
		}, []string{"operation"}),
		httpStatus: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "maqalat_http_status_total",
			Help: "HTTPステータスコード別のレスポンス数",
		}, []string{"status_code"}),
		requestLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "maqalat_http_request_duration_seconds",
			Help:    "HTTPリクエストの処理時間（秒）",
			Buckets: prometheus.DefBuckets,
		}),
	}

	reg.MustRegister(
		c.generations,
		c.generatedCount,
		c.saves,
		c.themeChanges,
		c.storageFailures,
		c.httpStatus,
		c.requestLatency,
	)

	return c
}

// RecordCategoriesGenerated はカテゴリ生成を記録する。
func (c *Collector) RecordCategoriesGenerated(count int) {
	c.generations.Inc()
	c.generatedCount.Observe(float64(count))
}

// RecordSave は設定保存の結果を記録する。
func (c *Collector) RecordSave(result string) {
	c.saves.WithLabelValues(result).Inc()
}

// RecordThemeChange はテーマ変更を記録する。
func (c *Collector) RecordThemeChange(theme string) {
	c.themeChanges.WithLabelValues(theme).Inc()
}

// RecordStorageFailure はストレージ操作の失敗を記録する。
func (c *Collector) RecordStorageFailure(operation string) {
	c.storageFailures.WithLabelValues(operation).Inc()
}

// RecordHTTPStatus はHTTPステータスコードを記録する。
func (c *Collector) RecordHTTPStatus(statusCode int) {
	c.httpStatus.WithLabelValues(strconv.Itoa(statusCode)).Inc()
}

// RecordRequestLatency はリクエストの処理時間を記録する。
func (c *Collector) RecordRequestLatency(duration time.Duration) {
	c.requestLatency.Observe(duration.Seconds())
}

// Handler はPrometheusスクレイプ用のHTTPハンドラーを返す。
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

// compile-time interface check
var _ MetricsCollector = (*Collector)(nil)
