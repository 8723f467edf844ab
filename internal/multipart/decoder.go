// Package multipart разбирает тело multipart-запроса с одним файлом.
//
// Тело целиком лежит в памяти и сканируется как последовательность байт:
// сначала ищется первый разделитель заголовков (CRLF CRLF), затем последняя
// граница --boundary. Всё, что между ними, за вычетом завершающего CRLF, — файл.
// Второй и последующие файлы в одном запросе не поддерживаются.
package multipart

import (
	"bytes"
	"fmt"
	"mime"
	"path"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"github.com/yourname/vault_lite/internal/models"
)

var (
	headerTerminator = []byte("\r\n\r\n")
	filenamePattern  = regexp.MustCompile(`filename="([^"]*)"`)
)

// Part содержит извлечённый из тела файл.
type Part struct {
	Filename string
	Payload  []byte
}

// Boundary достаёт параметр boundary из заголовка Content-Type.
func Boundary(contentType string) (string, error) {
	mediaType, params, err := mime.ParseMediaType(contentType)
	if err != nil {
		return "", fmt.Errorf("parse content type: %w", models.ErrMalformedRequest)
	}
	if !strings.HasPrefix(mediaType, "multipart/") {
		return "", fmt.Errorf("content type %q is not multipart: %w", mediaType, models.ErrMalformedRequest)
	}

	boundary := params["boundary"]
	if boundary == "" {
		return "", fmt.Errorf("boundary parameter is missing: %w", models.ErrMalformedRequest)
	}

	return boundary, nil
}

// Decode вырезает первый файл из тела запроса.
func Decode(body []byte, boundary string) (Part, error) {
	if boundary == "" {
		return Part{}, fmt.Errorf("empty boundary: %w", models.ErrMalformedRequest)
	}

	// Шаг 1: блок заголовков части заканчивается первым CRLF CRLF.
	headerEnd := bytes.Index(body, headerTerminator)
	if headerEnd < 0 {
		return Part{}, fmt.Errorf("header terminator not found: %w", models.ErrMalformedRequest)
	}
	filename := extractFilename(body[:headerEnd])
	start := headerEnd + len(headerTerminator)

	// Шаг 2: конец файла определяет последнее вхождение --boundary.
	delimiter := []byte("--" + boundary)
	end := bytes.LastIndex(body, delimiter)
	if end < 0 {
		end = bytes.LastIndex(body, []byte("--"+boundary+"--"))
	}
	if end < 0 {
		return Part{}, fmt.Errorf("closing boundary not found: %w", models.ErrMalformedRequest)
	}
	if end <= start {
		return Part{}, fmt.Errorf("no payload between headers and boundary: %w", models.ErrMalformedRequest)
	}

	// Два байта перед границей (CRLF) в файл не входят.
	payloadEnd := end - 2
	if payloadEnd < start {
		payloadEnd = start
	}

	return Part{
		Filename: filename,
		Payload:  body[start:payloadEnd],
	}, nil
}

// StorageName строит имя файла на диске: <uuid v7>-<исходное имя>.
// UUIDv7 содержит метку времени и случайный хвост.
func StorageName(original string) string {
	id, err := uuid.NewV7()
	if err != nil {
		id = uuid.New()
	}

	name := sanitize(original)
	if name == "" {
		return id.String()
	}
	return id.String() + "-" + name
}

func extractFilename(header []byte) string {
	m := filenamePattern.FindSubmatch(header)
	if m == nil {
		return ""
	}
	return string(m[1])
}

// sanitize оставляет только базовое имя, чтобы путь из браузера не выводил за каталог загрузок.
func sanitize(name string) string {
	name = strings.Map(func(r rune) rune {
		if r < 0x20 || r == 0x7f {
			return -1
		}
		return r
	}, name)
	name = strings.ReplaceAll(name, "\\", "/")
	name = path.Base(name)
	switch name {
	case ".", "..", "/":
		return ""
	}
	return name
}
