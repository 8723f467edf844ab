package vaultsvc

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"

	"github.com/yourname/vault_lite/internal/blobstore"
	"github.com/yourname/vault_lite/internal/models"
	"github.com/yourname/vault_lite/internal/multipart"
	"github.com/yourname/vault_lite/pkg/bytesize"
)

const dateLayout = "2006-01-02"

// Upload разбирает multipart-тело, пишет блоб, проверяет квоту и сохраняет запись.
// Любой отказ после записи блоба удаляет его (best effort).
func (s *Vault) Upload(ctx context.Context, contentType string, body []byte) (models.FileRecord, error) {
	if err := ctx.Err(); err != nil {
		return models.FileRecord{}, err
	}

	boundary, err := multipart.Boundary(contentType)
	if err != nil {
		s.Metrics.RecordUpload(resultOf(err), 0)
		return models.FileRecord{}, err
	}

	part, err := multipart.Decode(body, boundary)
	if err != nil {
		s.Metrics.RecordUpload(resultOf(err), 0)
		return models.FileRecord{}, err
	}

	blobPath := blobstore.PathFor(multipart.StorageName(part.Filename))
	release := s.track(blobPath)
	defer release()

	n, err := s.Blobs.Write(blobPath, part.Payload)
	if err != nil {
		s.Metrics.RecordUpload(resultOf(err), 0)
		return models.FileRecord{}, fmt.Errorf("store blob: %w", err)
	}

	rec, err := s.MetaStorage.Insert(func(used int64, id int64) (models.FileRecord, error) {
		if used+bytesize.Accounted(n) > models.Capacity {
			return models.FileRecord{}, fmt.Errorf("%w: %s used, %s requested, capacity %s",
				models.ErrQuotaExceeded, bytesize.Format(used), bytesize.Format(n), bytesize.Format(models.Capacity))
		}

		return models.FileRecord{
			ID:   id,
			Name: part.Filename,
			Type: extensionOf(part.Filename),
			Size: bytesize.Format(n),
			Date: s.Now().UTC().Format(dateLayout),
			Path: blobPath,
		}, nil
	})
	if err != nil {
		s.discardBlob(blobPath, err)
		s.Metrics.RecordUpload(resultOf(err), 0)
		return models.FileRecord{}, err
	}

	s.Logger.Info().
		Int64("id", rec.ID).
		Str("name", rec.Name).
		Str("size", rec.Size).
		Str("path", rec.Path).
		Msg("file uploaded")
	s.Metrics.RecordUpload("ok", n)
	s.refreshGauges()

	return rec, nil
}

// discardBlob откатывает запись блоба; ошибка удаления только логируется.
func (s *Vault) discardBlob(p string, cause error) {
	if err := s.Blobs.Remove(p); err != nil {
		s.Logger.Warn().Err(err).Str("path", p).AnErr("cause", cause).Msg("failed to roll back blob")
		return
	}
	s.Logger.Debug().Str("path", p).AnErr("cause", cause).Msg("blob rolled back")
}

// extensionOf возвращает расширение без точки в нижнем регистре либо "unknown".
func extensionOf(name string) string {
	ext := strings.TrimPrefix(path.Ext(name), ".")
	if ext == "" {
		return "unknown"
	}
	return strings.ToLower(ext)
}

// resultOf переводит ошибку в метку для метрик.
func resultOf(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, models.ErrMalformedRequest):
		return "malformed_request"
	case errors.Is(err, models.ErrQuotaExceeded):
		return "quota_exceeded"
	case errors.Is(err, models.ErrNotFound):
		return "not_found"
	case errors.Is(err, models.ErrPersistenceFailed):
		return "persistence_failed"
	default:
		return "internal"
	}
}
