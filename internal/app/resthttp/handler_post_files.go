package resthttp

import (
	"errors"
	"io"
	"net/http"

	"github.com/yourname/vault_lite/internal/models"
	"github.com/yourname/vault_lite/pkg/httperrors"
	"github.com/yourname/vault_lite/pkg/vaultproto"
)

// maxBodyBytes ограничивает тело загрузки: квота плюс запас на заголовки multipart.
const maxBodyBytes = models.Capacity + 1<<20

// postFiles читает тело целиком и отдаёт его сервису на разбор и сохранение.
func (s *Server) postFiles(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			httperrors.WriteCode(w, http.StatusBadRequest, vaultproto.CodeQuotaExceeded, err.Error())
			return
		}
		httperrors.WriteCode(w, http.StatusBadRequest, vaultproto.CodeMalformedRequest, "read body: "+err.Error())
		return
	}

	rec, err := s.Vault.Upload(r.Context(), r.Header.Get("Content-Type"), body)
	if err != nil {
		httperrors.Write(w, err)
		return
	}

	writeJSON(w, http.StatusOK, rec)
}
