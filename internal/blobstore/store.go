// Package blobstore хранит содержимое загруженных файлов поверх billy.Filesystem.
// Пути — относительные строки вида "uploads/<имя>", те же, что записываются в FileRecord.Path.
package blobstore

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"strings"
	"time"

	"github.com/go-git/go-billy/v5"
)

// UploadsDir: каталог внутри корня, куда складываются блобы.
const UploadsDir = "uploads"

// TempPrefix: префикс временных файлов, которые Write переименовывает в итоговый блоб.
const TempPrefix = ".upload-"

var ErrInvalidPath = errors.New("invalid blob path")

// Store хранит блобы.
type Store struct {
	fs billy.Filesystem
}

// BlobInfo описывает блоб при обходе каталога загрузок.
type BlobInfo struct {
	Path    string
	Size    int64
	ModTime time.Time
}

// New создаёт хранилище поверх fs и гарантирует наличие каталога загрузок.
func New(fs billy.Filesystem) (*Store, error) {
	if err := fs.MkdirAll(UploadsDir, 0o755); err != nil {
		return nil, fmt.Errorf("create uploads dir: %w", err)
	}
	return &Store{fs: fs}, nil
}

// PathFor возвращает относительный путь блоба по имени файла на диске.
func PathFor(storageName string) string {
	return path.Join(UploadsDir, storageName)
}

// Write записывает данные во временный файл и переименовывает его в p.
// Частично записанный блоб под итоговым именем не появляется.
func (s *Store) Write(p string, data []byte) (int64, error) {
	if err := validate(p); err != nil {
		return 0, err
	}

	tmp, err := s.fs.TempFile(path.Dir(p), TempPrefix)
	if err != nil {
		return 0, fmt.Errorf("create temp blob: %w", err)
	}
	tmpName := tmp.Name()

	n, err := tmp.Write(data)
	closeErr := tmp.Close()
	if err == nil {
		err = closeErr
	}
	if err != nil {
		_ = s.fs.Remove(tmpName)
		return 0, fmt.Errorf("write blob %q: %w", p, err)
	}

	if err = s.fs.Rename(tmpName, p); err != nil {
		_ = s.fs.Remove(tmpName)
		return 0, fmt.Errorf("commit blob %q: %w", p, err)
	}

	return int64(n), nil
}

// Open открывает блоб на чтение и возвращает его размер.
func (s *Store) Open(p string) (io.ReadCloser, int64, error) {
	if err := validate(p); err != nil {
		return nil, 0, err
	}

	info, err := s.fs.Stat(p)
	if err != nil {
		return nil, 0, err
	}
	if info.IsDir() {
		return nil, 0, fmt.Errorf("blob %q is a directory: %w", p, os.ErrNotExist)
	}

	f, err := s.fs.Open(p)
	if err != nil {
		return nil, 0, err
	}

	return f, info.Size(), nil
}

// Exists сообщает, лежит ли блоб на диске.
func (s *Store) Exists(p string) (bool, error) {
	if err := validate(p); err != nil {
		return false, err
	}

	_, err := s.fs.Stat(p)
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Remove удаляет блоб. Отсутствующий блоб ошибкой не считается.
func (s *Store) Remove(p string) error {
	if err := validate(p); err != nil {
		return err
	}

	err := s.fs.Remove(p)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove blob %q: %w", p, err)
	}
	return nil
}

// List возвращает все файлы каталога загрузок, включая брошенные временные.
func (s *Store) List() ([]BlobInfo, error) {
	entries, err := s.fs.ReadDir(UploadsDir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}

	out := make([]BlobInfo, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		out = append(out, BlobInfo{
			Path:    PathFor(e.Name()),
			Size:    e.Size(),
			ModTime: e.ModTime(),
		})
	}
	return out, nil
}

// validate не даёт выйти за пределы каталога загрузок.
func validate(p string) error {
	if p == "" || strings.Contains(p, "\x00") {
		return ErrInvalidPath
	}
	clean := path.Clean(p)
	if clean != p || path.IsAbs(p) || !strings.HasPrefix(p, UploadsDir+"/") {
		return fmt.Errorf("%w: %q", ErrInvalidPath, p)
	}
	return nil
}
