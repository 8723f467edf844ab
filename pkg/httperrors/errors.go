package httperrors

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/yourname/vault_lite/internal/models"
	"github.com/yourname/vault_lite/pkg/vaultproto"
)

// Write переводит ошибку сервиса в HTTP-статус и JSON с машиночитаемым кодом.
func Write(w http.ResponseWriter, err error) {
	status, code := Classify(err)
	WriteCode(w, status, code, err.Error())
}

// Classify возвращает статус и код для ошибки.
func Classify(err error) (int, string) {
	switch {
	case errors.Is(err, models.ErrMalformedRequest):
		return http.StatusBadRequest, vaultproto.CodeMalformedRequest
	case errors.Is(err, models.ErrQuotaExceeded):
		return http.StatusBadRequest, vaultproto.CodeQuotaExceeded
	case errors.Is(err, models.ErrBlobNotFound):
		return http.StatusNotFound, vaultproto.CodeBlobNotFound
	case errors.Is(err, models.ErrNotFound):
		return http.StatusNotFound, vaultproto.CodeNotFound
	case errors.Is(err, models.ErrPersistenceFailed):
		return http.StatusInternalServerError, vaultproto.CodePersistenceFailed
	default:
		return http.StatusInternalServerError, vaultproto.CodeInternal
	}
}

// WriteCode пишет ошибку с явным статусом и кодом.
func WriteCode(w http.ResponseWriter, status int, code, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(vaultproto.ErrorResponse{Code: code, Message: msg})
}
