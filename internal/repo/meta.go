package meta

import (
	"fmt"
	"sync"
	"time"

	"github.com/go-git/go-billy/v5"
	"github.com/rs/zerolog"
	"github.com/yourname/vault_lite/internal/models"
	"github.com/yourname/vault_lite/pkg/bytesize"
)

// DefaultFileName задаёт имя файла снапшота по умолчанию.
const DefaultFileName = "meta.json"

// BuildFunc строит новую запись, получая текущее заполнение и выданный id.
// Ошибка отменяет вставку, снапшот не меняется.
type BuildFunc func(usedBytes int64, id int64) (models.FileRecord, error)

// Store владеет снапшотом метаданных. Все чтения и изменения идут под одним мьютексом;
// изменения применяются к копии и становятся видимыми только после успешного Save.
type Store struct {
	mu     sync.Mutex
	fs     billy.Filesystem
	name   string
	log    zerolog.Logger
	snap   models.Snapshot
	lastID int64
	now    func() time.Time
}

// Open поднимает хранилище и загружает снапшот с диска.
func Open(fs billy.Filesystem, name string, log zerolog.Logger) *Store {
	if name == "" {
		name = DefaultFileName
	}

	s := &Store{
		fs:   fs,
		name: name,
		log:  log.With().Str("component", "meta").Logger(),
		now:  time.Now,
	}
	s.snap = s.Load()

	return s
}

// List возвращает копию записей в порядке добавления.
func (s *Store) List() []models.FileRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snap.Clone().Files
}

// Get возвращает запись по id.
func (s *Store) Get(id int64) (models.FileRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.snap.Find(id)
	if idx < 0 {
		return models.FileRecord{}, models.ErrNotFound
	}
	return s.snap.Files[idx], nil
}

// Usage суммирует декодированные размеры всех записей.
func (s *Store) Usage() (int64, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return usageOf(s.snap), len(s.snap.Files)
}

// Insert добавляет запись, построенную build, и сохраняет снапшот.
// Проверка квоты в build выполняется под тем же мьютексом, что и вставка.
func (s *Store) Insert(build BuildFunc) (models.FileRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, err := build(usageOf(s.snap), s.nextID())
	if err != nil {
		return models.FileRecord{}, err
	}

	next := s.snap.Clone()
	next.Files = append(next.Files, rec)
	if err = s.Save(next); err != nil {
		return models.FileRecord{}, fmt.Errorf("%w: %v", models.ErrPersistenceFailed, err)
	}

	s.snap = next
	s.lastID = rec.ID

	return rec, nil
}

// Remove удаляет запись по id и сохраняет снапшот.
// Если сохранить не удалось, запись остаётся на месте.
func (s *Store) Remove(id int64) (models.FileRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.snap.Find(id)
	if idx < 0 {
		return models.FileRecord{}, models.ErrNotFound
	}
	rec := s.snap.Files[idx]

	next := models.Snapshot{Files: make([]models.FileRecord, 0, len(s.snap.Files)-1)}
	next.Files = append(next.Files, s.snap.Files[:idx]...)
	next.Files = append(next.Files, s.snap.Files[idx+1:]...)

	if err := s.Save(next); err != nil {
		return models.FileRecord{}, fmt.Errorf("%w: %v", models.ErrPersistenceFailed, err)
	}
	s.snap = next

	return rec, nil
}

// References возвращает множество путей блобов, на которые ссылаются записи.
func (s *Store) References() map[string]struct{} {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make(map[string]struct{}, len(s.snap.Files))
	for _, f := range s.snap.Files {
		out[f.Path] = struct{}{}
	}
	return out
}

// nextID выдаёт id на основе времени в миллисекундах, но строго больше всех существующих.
func (s *Store) nextID() int64 {
	id := s.now().UnixMilli()
	if id <= s.lastID {
		id = s.lastID + 1
	}
	for _, f := range s.snap.Files {
		if id <= f.ID {
			id = f.ID + 1
		}
	}
	return id
}

func usageOf(snap models.Snapshot) int64 {
	var total int64
	for _, f := range snap.Files {
		total += bytesize.Parse(f.Size)
	}
	return total
}
