package vaultsvc

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/yourname/vault_lite/internal/blobstore"
	"github.com/yourname/vault_lite/internal/metrics"
	"github.com/yourname/vault_lite/internal/models"
	meta "github.com/yourname/vault_lite/internal/repo"
)

type (
	// MetaStorage хранилище метаданных файлов
	MetaStorage interface {
		Get(id int64) (models.FileRecord, error)
		List() []models.FileRecord
		Usage() (int64, int)
		Insert(build meta.BuildFunc) (models.FileRecord, error)
		Remove(id int64) (models.FileRecord, error)
		References() map[string]struct{}
	}

	// BlobStorage хранилище содержимого файлов
	BlobStorage interface {
		Write(path string, data []byte) (int64, error)
		Open(path string) (io.ReadCloser, int64, error)
		Exists(path string) (bool, error)
		Remove(path string) error
		List() ([]blobstore.BlobInfo, error)
	}

	// Service объединяет операции загрузки, выдачи и удаления файлов.
	Service interface {
		Upload(ctx context.Context, contentType string, body []byte) (models.FileRecord, error)
		List(ctx context.Context) ([]models.FileRecord, error)
		Download(ctx context.Context, id int64) (models.Download, error)
		Delete(ctx context.Context, id int64) error
		Usage(ctx context.Context) (models.Usage, error)
		Sweep(ctx context.Context, ttl time.Duration) (models.SweepResult, error)
	}
)

type Deps struct {
	MetaStorage MetaStorage
	Blobs       BlobStorage
	Metrics     *metrics.Metrics
	Logger      zerolog.Logger
	// Now подменяется в тестах; по умолчанию time.Now.
	Now func() time.Time
}

type Vault struct {
	Deps

	// inflight: блобы, записанные загрузкой, но ещё не попавшие в снапшот.
	mu       sync.Mutex
	inflight map[string]struct{}
}

// New конструирует сервис с заданными зависимостями.
func New(deps Deps) *Vault {
	if deps.Now == nil {
		deps.Now = time.Now
	}
	deps.Logger = deps.Logger.With().Str("component", "vaultsvc").Logger()

	v := &Vault{Deps: deps, inflight: make(map[string]struct{})}
	v.refreshGauges()

	return v
}

var _ Service = (*Vault)(nil)

// List возвращает все записи в порядке загрузки.
func (s *Vault) List(ctx context.Context) ([]models.FileRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.MetaStorage.List(), nil
}

// Usage считает заполнение квоты по текущим записям.
func (s *Vault) Usage(ctx context.Context) (models.Usage, error) {
	if err := ctx.Err(); err != nil {
		return models.Usage{}, err
	}

	used, files := s.MetaStorage.Usage()
	return usageOf(used, files), nil
}

// track помечает блоб как занятый загрузкой; сборщик его не трогает до вызова release.
func (s *Vault) track(p string) (release func()) {
	s.mu.Lock()
	s.inflight[p] = struct{}{}
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.inflight, p)
		s.mu.Unlock()
	}
}

func (s *Vault) inflightPaths() map[string]struct{} {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make(map[string]struct{}, len(s.inflight))
	for p := range s.inflight {
		out[p] = struct{}{}
	}
	return out
}

func (s *Vault) refreshGauges() {
	used, files := s.MetaStorage.Usage()
	s.Metrics.UpdateStorage(files, used, models.Capacity)
}
