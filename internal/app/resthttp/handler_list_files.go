package resthttp

import (
	"net/http"

	"github.com/yourname/vault_lite/pkg/httperrors"
	"github.com/yourname/vault_lite/pkg/vaultproto"
)

func (s *Server) listFiles(w http.ResponseWriter, r *http.Request) {
	files, err := s.Vault.List(r.Context())
	if err != nil {
		httperrors.Write(w, err)
		return
	}

	writeJSON(w, http.StatusOK, vaultproto.ListResponse{Files: files})
}
