package resthttp

import (
	"net/http"

	"github.com/yourname/vault_lite/pkg/httperrors"
	"github.com/yourname/vault_lite/pkg/vaultproto"
)

func (s *Server) deleteFile(w http.ResponseWriter, r *http.Request) {
	id, ok := requireID(w, r)
	if !ok {
		return
	}

	if err := s.Vault.Delete(r.Context(), id); err != nil {
		httperrors.Write(w, err)
		return
	}

	writeJSON(w, http.StatusOK, vaultproto.DeleteResponse{Deleted: id})
}
