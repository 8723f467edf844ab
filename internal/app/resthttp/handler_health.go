package resthttp

import (
	"net/http"

	"github.com/yourname/vault_lite/pkg/httperrors"
	"github.com/yourname/vault_lite/pkg/vaultproto"
)

// usage отдаёт заполнение квоты.
func (s *Server) usage(w http.ResponseWriter, r *http.Request) {
	u, err := s.Vault.Usage(r.Context())
	if err != nil {
		httperrors.Write(w, err)
		return
	}

	writeJSON(w, http.StatusOK, u)
}

// health возвращает флаг готовности и агрегированную статистику хранилища.
func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	u, err := s.Vault.Usage(r.Context())
	if err != nil {
		httperrors.Write(w, err)
		return
	}

	writeJSON(w, http.StatusOK, vaultproto.HealthResponse{OK: true, Usage: u})
}
