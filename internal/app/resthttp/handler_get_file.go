package resthttp

import (
	"io"
	"mime"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/hlog"
	"github.com/yourname/vault_lite/pkg/httperrors"
	"github.com/yourname/vault_lite/pkg/vaultproto"
)

// getFile отдаёт блоб как вложение с исходным именем файла.
func (s *Server) getFile(w http.ResponseWriter, r *http.Request) {
	id, ok := requireID(w, r)
	if !ok {
		return
	}

	dl, err := s.Vault.Download(r.Context(), id)
	if err != nil {
		httperrors.Write(w, err)
		return
	}
	defer dl.Body.Close()

	size := strconv.FormatInt(dl.Size, 10)
	w.Header().Set("Content-Type", "application/octet-stream")
	w.Header().Set("Content-Length", size)
	w.Header().Set("Content-Disposition", contentDisposition(dl.Record.Name))
	w.Header().Set(vaultproto.HeaderFileID, strconv.FormatInt(dl.Record.ID, 10))
	w.Header().Set(vaultproto.HeaderFileSize, size)

	// Заголовки уже отправлены, поэтому ошибку копирования можно только залогировать.
	if _, err = io.Copy(w, dl.Body); err != nil {
		hlog.FromRequest(r).Warn().Err(err).Int64("id", id).Msg("download interrupted")
	}
}

// requireID валидирует path-параметр id.
func requireID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		httperrors.WriteCode(w, http.StatusBadRequest, vaultproto.CodeMalformedRequest, "invalid file id: "+strconv.Quote(raw))
		return 0, false
	}
	return id, true
}

func contentDisposition(name string) string {
	if name == "" {
		return "attachment"
	}
	if v := mime.FormatMediaType("attachment", map[string]string{"filename": name}); v != "" {
		return v
	}
	return "attachment"
}
