// Package vaultclient содержит HTTP-клиент файлового хранилища.
package vaultclient

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/yourname/vault_lite/internal/models"
	"github.com/yourname/vault_lite/pkg/vaultproto"
)

type Client interface {
	// Upload Положить файл в хранилище
	Upload(ctx context.Context, name string, r io.Reader, size int64) (models.FileRecord, error)
	// List Список файлов
	List(ctx context.Context) ([]models.FileRecord, error)
	// Download Достать файл; тело закрывает вызывающий
	Download(ctx context.Context, id int64) (FileStream, error)
	// Delete Удалить файл
	Delete(ctx context.Context, id int64) error
	// Usage Заполнение квоты
	Usage(ctx context.Context) (models.Usage, error)
}

// FileStream описывает скачиваемый файл.
type FileStream struct {
	ID   int64
	Name string
	Size int64
	Body io.ReadCloser
}

// APIError описывает ошибку, которую вернул сервер. Unwrap отдаёт соответствующую sentinel-ошибку.
type APIError struct {
	Status  int
	Code    string
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("vault: %d %s: %s", e.Status, e.Code, e.Message)
}

func (e *APIError) Unwrap() error {
	switch e.Code {
	case vaultproto.CodeMalformedRequest:
		return models.ErrMalformedRequest
	case vaultproto.CodeQuotaExceeded:
		return models.ErrQuotaExceeded
	case vaultproto.CodeBlobNotFound:
		return models.ErrBlobNotFound
	case vaultproto.CodeNotFound:
		return models.ErrNotFound
	case vaultproto.CodePersistenceFailed:
		return models.ErrPersistenceFailed
	}
	return nil
}

type httpClient struct {
	base     string
	c        *http.Client
	progress io.Writer
}

// Option настраивает клиент.
type Option func(*httpClient)

// WithHTTPClient подменяет http.Client.
func WithHTTPClient(c *http.Client) Option {
	return func(h *httpClient) { h.c = c }
}

// WithProgress включает ASCII-индикатор передачи в out.
func WithProgress(out io.Writer) Option {
	return func(h *httpClient) { h.progress = out }
}

// New создаёт HTTP-клиент для сервера baseURL.
func New(baseURL string, opts ...Option) Client {
	h := &httpClient{
		base: strings.TrimRight(baseURL, "/"),
		c:    &http.Client{},
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Upload отправляет файл как multipart/form-data; тело формируется потоково через pipe.
func (h *httpClient) Upload(ctx context.Context, name string, r io.Reader, size int64) (models.FileRecord, error) {
	bar := newProgress(h.progress, fmt.Sprintf("Uploading %s", name), size)
	if bar != nil {
		r = io.TeeReader(r, bar)
	}

	pr, pw := io.Pipe()
	mw := multipart.NewWriter(pw)
	go func() {
		fw, err := mw.CreateFormFile(vaultproto.FormField, name)
		if err == nil {
			_, err = io.Copy(fw, r)
		}
		if err == nil {
			err = mw.Close()
		}
		_ = pw.CloseWithError(err)
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, h.base+vaultproto.FilesPath, pr)
	if err != nil {
		_ = pr.CloseWithError(err)
		bar.Fail(err)
		return models.FileRecord{}, err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	var rec models.FileRecord
	if err = h.doJSON(req, &rec); err != nil {
		_ = pr.CloseWithError(err)
		bar.Fail(err)
		return models.FileRecord{}, err
	}

	bar.Finish()
	return rec, nil
}

// List возвращает все записи.
func (h *httpClient) List(ctx context.Context) ([]models.FileRecord, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, h.base+vaultproto.FilesPath, nil)
	if err != nil {
		return nil, err
	}

	var out vaultproto.ListResponse
	if err = h.doJSON(req, &out); err != nil {
		return nil, err
	}
	return out.Files, nil
}

// Download открывает поток с содержимым файла.
func (h *httpClient) Download(ctx context.Context, id int64) (FileStream, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, h.base+fmt.Sprintf(vaultproto.FilePathFormat, id), nil)
	if err != nil {
		return FileStream{}, err
	}

	resp, err := h.c.Do(req)
	if err != nil {
		return FileStream{}, err
	}
	if resp.StatusCode != http.StatusOK {
		defer resp.Body.Close()
		return FileStream{}, decodeError(resp)
	}

	fs := FileStream{ID: id, Size: resp.ContentLength}
	if _, params, err := mime.ParseMediaType(resp.Header.Get("Content-Disposition")); err == nil {
		fs.Name = params["filename"]
	}
	if fs.Size < 0 {
		if sz, err := strconv.ParseInt(resp.Header.Get(vaultproto.HeaderFileSize), 10, 64); err == nil {
			fs.Size = sz
		}
	}

	fs.Body = newProgress(h.progress, fmt.Sprintf("Downloading %d", id), fs.Size).wrap(resp.Body)

	return fs, nil
}

// Delete удаляет файл по id.
func (h *httpClient) Delete(ctx context.Context, id int64) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, h.base+fmt.Sprintf(vaultproto.FilePathFormat, id), nil)
	if err != nil {
		return err
	}

	var out vaultproto.DeleteResponse
	return h.doJSON(req, &out)
}

// Usage возвращает заполнение квоты.
func (h *httpClient) Usage(ctx context.Context) (models.Usage, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, h.base+vaultproto.UsagePath, nil)
	if err != nil {
		return models.Usage{}, err
	}

	var out models.Usage
	err = h.doJSON(req, &out)
	return out, err
}

func (h *httpClient) doJSON(req *http.Request, out any) error {
	resp, err := h.c.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return decodeError(resp)
	}

	if err = json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func decodeError(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))

	var payload vaultproto.ErrorResponse
	if err := json.Unmarshal(body, &payload); err != nil || payload.Code == "" {
		return &APIError{Status: resp.StatusCode, Code: vaultproto.CodeInternal, Message: strings.TrimSpace(string(body))}
	}

	return &APIError{Status: resp.StatusCode, Code: payload.Code, Message: payload.Message}
}

