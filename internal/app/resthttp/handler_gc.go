package resthttp

import (
	"net/http"
	"time"

	"github.com/yourname/vault_lite/pkg/httperrors"
	"github.com/yourname/vault_lite/pkg/vaultproto"
)

const (
	manualGCTTL = 24 * time.Hour
	// minGCTTL не даёт ручному запуску снести только что записанные блобы.
	minGCTTL = time.Minute
)

// gcOnce вручную запускает сбор осиротевших блобов.
// Параметр ttl (например, ?ttl=1h) переопределяет возраст по умолчанию.
func (s *Server) gcOnce(w http.ResponseWriter, r *http.Request) {
	ttl := manualGCTTL
	if s.Cfg != nil && s.Cfg.GCTTLHours > 0 {
		ttl = s.Cfg.GCTTL()
	}
	if v := r.URL.Query().Get("ttl"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d < minGCTTL {
			httperrors.WriteCode(w, http.StatusBadRequest, vaultproto.CodeMalformedRequest, "invalid ttl: must be a duration of at least "+minGCTTL.String())
			return
		}
		ttl = d
	}

	res, err := s.Vault.Sweep(r.Context(), ttl)
	if err != nil {
		httperrors.Write(w, err)
		return
	}

	writeJSON(w, http.StatusOK, res)
}
