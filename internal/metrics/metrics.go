// Package metrics содержит Prometheus-метрики файлового хранилища.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics собирает метрики сервиса. Все методы допускают nil-получатель.
type Metrics struct {
	// Request metrics
	RequestsTotal   *prometheus.CounterVec   // vault_http_requests_total{route,status}
	RequestDuration *prometheus.HistogramVec // vault_http_request_duration_seconds{route}

	// Operation metrics
	UploadsTotal *prometheus.CounterVec // vault_uploads_total{result}
	DeletesTotal *prometheus.CounterVec // vault_deletes_total{result}

	// Transfer metrics
	BytesUploaded   prometheus.Counter // vault_bytes_uploaded_total
	BytesDownloaded prometheus.Counter // vault_bytes_downloaded_total

	// Storage metrics
	FilesTotal   prometheus.Gauge   // vault_files_total
	StorageBytes prometheus.Gauge   // vault_storage_bytes
	QuotaBytes   prometheus.Gauge   // vault_quota_bytes
	QuotaUsedPct prometheus.Gauge   // vault_quota_used_percent
	OrphansSwept prometheus.Counter // vault_orphans_removed_total
}

// New регистрирует метрики в registry; nil означает prometheus.DefaultRegisterer.
func New(registry prometheus.Registerer) *Metrics {
	if registry == nil {
		registry = prometheus.DefaultRegisterer
	}
	f := promauto.With(registry)

	return &Metrics{
		RequestsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name: "vault_http_requests_total",
			Help: "Total HTTP requests by route and status",
		}, []string{"route", "status"}),

		RequestDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "vault_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"route"}),

		UploadsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name: "vault_uploads_total",
			Help: "Upload attempts by result",
		}, []string{"result"}),

		DeletesTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name: "vault_deletes_total",
			Help: "Delete attempts by result",
		}, []string{"result"}),

		BytesUploaded: f.NewCounter(prometheus.CounterOpts{
			Name: "vault_bytes_uploaded_total",
			Help: "Total bytes accepted by uploads",
		}),

		BytesDownloaded: f.NewCounter(prometheus.CounterOpts{
			Name: "vault_bytes_downloaded_total",
			Help: "Total bytes served by downloads",
		}),

		FilesTotal: f.NewGauge(prometheus.GaugeOpts{
			Name: "vault_files_total",
			Help: "Number of stored files",
		}),

		StorageBytes: f.NewGauge(prometheus.GaugeOpts{
			Name: "vault_storage_bytes",
			Help: "Bytes accounted against the quota",
		}),

		QuotaBytes: f.NewGauge(prometheus.GaugeOpts{
			Name: "vault_quota_bytes",
			Help: "Storage capacity in bytes",
		}),

		QuotaUsedPct: f.NewGauge(prometheus.GaugeOpts{
			Name: "vault_quota_used_percent",
			Help: "Percentage of capacity in use",
		}),

		OrphansSwept: f.NewCounter(prometheus.CounterOpts{
			Name: "vault_orphans_removed_total",
			Help: "Unreferenced blobs removed by the sweeper",
		}),
	}
}

// RecordRequest учитывает один HTTP-запрос.
func (m *Metrics) RecordRequest(route, status string, durationSeconds float64) {
	if m == nil {
		return
	}
	m.RequestsTotal.WithLabelValues(route, status).Inc()
	m.RequestDuration.WithLabelValues(route).Observe(durationSeconds)
}

// RecordUpload учитывает попытку загрузки; bytes считаются только для принятых.
func (m *Metrics) RecordUpload(result string, bytes int64) {
	if m == nil {
		return
	}
	m.UploadsTotal.WithLabelValues(result).Inc()
	if bytes > 0 {
		m.BytesUploaded.Add(float64(bytes))
	}
}

// RecordDelete учитывает попытку удаления.
func (m *Metrics) RecordDelete(result string) {
	if m == nil {
		return
	}
	m.DeletesTotal.WithLabelValues(result).Inc()
}

// RecordDownload учитывает отданные байты.
func (m *Metrics) RecordDownload(bytes int64) {
	if m == nil {
		return
	}
	m.BytesDownloaded.Add(float64(bytes))
}

// RecordSweep учитывает удалённые сборщиком блобы.
func (m *Metrics) RecordSweep(removed int) {
	if m == nil || removed <= 0 {
		return
	}
	m.OrphansSwept.Add(float64(removed))
}

// UpdateStorage обновляет показатели заполнения.
func (m *Metrics) UpdateStorage(files int, usedBytes, quotaBytes int64) {
	if m == nil {
		return
	}
	m.FilesTotal.Set(float64(files))
	m.StorageBytes.Set(float64(usedBytes))
	m.QuotaBytes.Set(float64(quotaBytes))
	if quotaBytes > 0 {
		m.QuotaUsedPct.Set(float64(usedBytes) / float64(quotaBytes) * 100)
	} else {
		m.QuotaUsedPct.Set(0)
	}
}
