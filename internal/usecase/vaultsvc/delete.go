package vaultsvc

import (
	"context"
)

// Delete удаляет запись, сохраняет снапшот и только потом пытается удалить блоб.
// Ошибка удаления блоба логируется, но операция считается успешной.
func (s *Vault) Delete(ctx context.Context, id int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	rec, err := s.MetaStorage.Remove(id)
	if err != nil {
		s.Metrics.RecordDelete(resultOf(err))
		return err
	}

	// Remove пропускается, только если блоба точно нет.
	ok, err := s.Blobs.Exists(rec.Path)
	switch {
	case err == nil && !ok:
		s.Logger.Warn().Int64("id", id).Str("path", rec.Path).Msg("blob was already missing")
	default:
		if err != nil {
			s.Logger.Debug().Err(err).Str("path", rec.Path).Msg("blob stat failed, removing anyway")
		}
		if err = s.Blobs.Remove(rec.Path); err != nil {
			s.Logger.Warn().Err(err).Int64("id", id).Str("path", rec.Path).Msg("blob left on disk after delete")
		}
	}

	s.Logger.Info().Int64("id", id).Str("name", rec.Name).Msg("file deleted")
	s.Metrics.RecordDelete("ok")
	s.refreshGauges()

	return nil
}
