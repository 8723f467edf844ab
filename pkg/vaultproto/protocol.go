// Package vaultproto описывает HTTP-протокол хранилища: пути, заголовки и тела ответов.
package vaultproto

import "github.com/yourname/vault_lite/internal/models"

// Пути REST API.
const (
	FilesPath      = "/api/files"
	FilePathFormat = "/api/files/%d"
	UsagePath      = "/api/usage"
	HealthPath     = "/health"
	MetricsPath    = "/metrics"
	GCPath         = "/admin/gc"
	ConfigPath     = "/admin/config"

	// FormField задаёт имя поля формы, в котором клиент отправляет файл.
	FormField = "file"
)

// Служебные заголовки ответа на скачивание.
const (
	HeaderFileID   = "X-File-Id"
	HeaderFileSize = "X-File-Size"
)

// Стабильные коды ошибок в теле ответа.
const (
	CodeMalformedRequest  = "malformed_request"
	CodeQuotaExceeded     = "quota_exceeded"
	CodeNotFound          = "not_found"
	CodeBlobNotFound      = "blob_not_found"
	CodePersistenceFailed = "persistence_failed"
	CodeInternal          = "internal"
)

// ListResponse описывает тело ответа GET /api/files.
type ListResponse struct {
	Files []models.FileRecord `json:"files"`
}

// DeleteResponse описывает тело ответа DELETE /api/files/{id}.
type DeleteResponse struct {
	Deleted int64 `json:"deleted"`
}

// ErrorResponse описывает тело любого ответа с ошибкой.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// HealthResponse описывает тело ответа /health.
type HealthResponse struct {
	OK    bool         `json:"ok"`
	Usage models.Usage `json:"usage"`
}
