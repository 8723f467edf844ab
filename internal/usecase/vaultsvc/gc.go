package vaultsvc

import (
	"context"
	"path"
	"strings"
	"sync"
	"time"

	"github.com/yourname/vault_lite/internal/blobstore"
	"github.com/yourname/vault_lite/internal/models"
)

// tempBlobTTL задаёт возраст, после которого брошенный временный файл загрузки считается мусором.
const tempBlobTTL = time.Hour

// Sweep удаляет блобы, на которые не ссылается ни одна запись и которые старше ttl.
// Такие блобы остаются после неудачного best-effort удаления или падения процесса.
//
// Порядок важен: сначала листинг, затем занятые загрузками пути, затем ссылки снапшота.
// Блоб из листинга либо ещё занят загрузкой, либо его запись уже в снапшоте.
func (s *Vault) Sweep(ctx context.Context, ttl time.Duration) (models.SweepResult, error) {
	var res models.SweepResult

	blobs, err := s.Blobs.List()
	if err != nil {
		return res, err
	}

	busy := s.inflightPaths()
	refs := s.MetaStorage.References()
	now := s.Now()
	for _, b := range blobs {
		if err = ctx.Err(); err != nil {
			return res, err
		}
		res.Scanned++

		if _, ok := refs[b.Path]; ok {
			continue
		}
		if _, ok := busy[b.Path]; ok {
			continue
		}
		age := now.Sub(b.ModTime)
		if age < ttl {
			continue
		}
		if strings.HasPrefix(path.Base(b.Path), blobstore.TempPrefix) && age < tempBlobTTL {
			continue
		}

		if err = s.Blobs.Remove(b.Path); err != nil {
			s.Logger.Warn().Err(err).Str("path", b.Path).Msg("failed to remove orphan blob")
			continue
		}
		res.Removed++
		res.Freed += b.Size
	}

	if res.Removed > 0 {
		s.Logger.Info().Int("removed", res.Removed).Int64("freed_bytes", res.Freed).Msg("orphan blobs swept")
	}
	s.Metrics.RecordSweep(res.Removed)

	return res, nil
}

// StartGC стартует периодическую очистку осиротевших блобов.
func (s *Vault) StartGC(ctx context.Context, ttl time.Duration, every time.Duration) func() {
	if every <= 0 || ttl <= 0 {
		return func() {}
	}

	ticker := time.NewTicker(every)
	stop := make(chan struct{})
	var once sync.Once
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if _, err := s.Sweep(ctx, ttl); err != nil {
					s.Logger.Warn().Err(err).Msg("orphan sweep failed")
				}
			case <-ctx.Done():
				return
			case <-stop:
				return
			}
		}
	}()

	return func() {
		once.Do(func() {
			close(stop)
		})
	}
}
