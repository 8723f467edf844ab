package meta

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path"

	"github.com/yourname/vault_lite/internal/models"
)

// Load читает снапшот с диска. Любая ошибка чтения или разбора даёт пустой снапшот.
func (s *Store) Load() models.Snapshot {
	f, err := s.fs.Open(s.name)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			s.log.Warn().Err(err).Str("path", s.name).Msg("metadata unreadable, starting empty")
		}
		return models.Snapshot{Files: []models.FileRecord{}}
	}
	defer f.Close()

	b, err := io.ReadAll(f)
	if err != nil {
		s.log.Warn().Err(err).Str("path", s.name).Msg("metadata unreadable, starting empty")
		return models.Snapshot{Files: []models.FileRecord{}}
	}

	var snap models.Snapshot
	if err = json.Unmarshal(b, &snap); err != nil {
		s.log.Warn().Err(err).Str("path", s.name).Msg("metadata corrupted, starting empty")
		return models.Snapshot{Files: []models.FileRecord{}}
	}
	if snap.Files == nil {
		snap.Files = []models.FileRecord{}
	}

	return snap
}

// Save перезаписывает снапшот целиком: пишет во временный файл рядом и переименовывает.
func (s *Store) Save(snap models.Snapshot) error {
	if snap.Files == nil {
		snap.Files = []models.FileRecord{}
	}

	b, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}

	dir := path.Dir(s.name)
	if dir != "." {
		if err = s.fs.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create metadata dir: %w", err)
		}
	}

	tmp, err := s.fs.TempFile(dir, "."+path.Base(s.name)+"-")
	if err != nil {
		return fmt.Errorf("create temp snapshot: %w", err)
	}
	tmpName := tmp.Name()

	_, err = tmp.Write(b)
	if closeErr := tmp.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		_ = s.fs.Remove(tmpName)
		return fmt.Errorf("write temp snapshot: %w", err)
	}

	if err = s.fs.Rename(tmpName, s.name); err != nil {
		_ = s.fs.Remove(tmpName)
		return fmt.Errorf("replace snapshot: %w", err)
	}

	return nil
}
