package models

import (
	"errors"
	"fmt"
)

var (
	ErrMalformedRequest  = errors.New("malformed multipart request")
	ErrQuotaExceeded     = errors.New("storage quota exceeded")
	ErrNotFound          = errors.New("file not found")
	ErrBlobNotFound      = fmt.Errorf("blob missing on disk: %w", ErrNotFound)
	ErrPersistenceFailed = errors.New("failed to persist metadata")
)
