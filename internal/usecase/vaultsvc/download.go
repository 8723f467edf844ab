package vaultsvc

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/yourname/vault_lite/internal/models"
)

// Download находит запись и открывает её блоб. Body закрывает вызывающий.
func (s *Vault) Download(ctx context.Context, id int64) (models.Download, error) {
	if err := ctx.Err(); err != nil {
		return models.Download{}, err
	}

	rec, err := s.MetaStorage.Get(id)
	if err != nil {
		return models.Download{}, err
	}

	body, size, err := s.Blobs.Open(rec.Path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			s.Logger.Warn().Int64("id", id).Str("path", rec.Path).Msg("record points to missing blob")
			return models.Download{}, fmt.Errorf("file %d: %w", id, models.ErrBlobNotFound)
		}
		return models.Download{}, fmt.Errorf("open blob %q: %w", rec.Path, err)
	}

	return models.Download{
		Record: rec,
		Size:   size,
		Body:   &countingReadCloser{ReadCloser: body, done: s.Metrics.RecordDownload},
	}, nil
}

// countingReadCloser сообщает число прочитанных байт при закрытии.
type countingReadCloser struct {
	io.ReadCloser
	n    int64
	done func(int64)
}

func (c *countingReadCloser) Read(p []byte) (int, error) {
	n, err := c.ReadCloser.Read(p)
	c.n += int64(n)
	return n, err
}

func (c *countingReadCloser) Close() error {
	err := c.ReadCloser.Close()
	if c.done != nil {
		c.done(c.n)
		c.done = nil
	}
	return err
}
