package resthttp

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/klauspost/compress/gzhttp"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/yourname/vault_lite/internal/blobstore"
	"github.com/yourname/vault_lite/internal/config"
	"github.com/yourname/vault_lite/internal/metrics"
	meta "github.com/yourname/vault_lite/internal/repo"
	"github.com/yourname/vault_lite/internal/usecase/vaultsvc"
	"github.com/yourname/vault_lite/pkg/vaultproto"
)

type Server struct {
	Vault    *vaultsvc.Vault
	Cfg      *config.Config
	Metrics  *metrics.Metrics
	Registry *prometheus.Registry
	Log      zerolog.Logger
}

// NewServer конструктор
func NewServer(cfg *config.Config, log zerolog.Logger) (http.Handler, *Server, error) {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.New(reg)

	vault, err := buildVault(cfg, m, log)
	if err != nil {
		return nil, nil, err
	}

	srv := &Server{
		Vault:    vault,
		Cfg:      cfg,
		Metrics:  m,
		Registry: reg,
		Log:      log,
	}

	return srv.routes(), srv, nil
}

func buildVault(cfg *config.Config, m *metrics.Metrics, log zerolog.Logger) (*vaultsvc.Vault, error) {
	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	blobs, err := blobstore.New(osfs.New(cfg.DataDir))
	if err != nil {
		return nil, err
	}

	metaDir := filepath.Dir(cfg.MetaPath)
	if err = os.MkdirAll(metaDir, 0o755); err != nil {
		return nil, fmt.Errorf("create meta dir: %w", err)
	}
	store := meta.Open(osfs.New(metaDir), filepath.Base(cfg.MetaPath), log)

	return vaultsvc.New(vaultsvc.Deps{
		MetaStorage: store,
		Blobs:       blobs,
		Metrics:     m,
		Logger:      log,
	}), nil
}

// routes регистрирует обработчики API, здоровья, метрик и GC.
func (s *Server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.accessLog()...)

	r.Route(vaultproto.FilesPath, func(fr chi.Router) {
		fr.Post("/", s.postFiles)
		// Списки сжимаются, блобы отдаются как есть.
		fr.With(gzipped).Get("/", s.listFiles)
		fr.Get("/{id}", s.getFile)
		fr.Delete("/{id}", s.deleteFile)
	})

	r.With(gzipped).Get(vaultproto.UsagePath, s.usage)
	r.Get(vaultproto.HealthPath, s.health)
	r.Method(http.MethodGet, vaultproto.MetricsPath, promhttp.HandlerFor(s.Registry, promhttp.HandlerOpts{}))
	r.Post(vaultproto.GCPath, s.gcOnce)
	r.Get(vaultproto.ConfigPath, func(w http.ResponseWriter, r *http.Request) { writeJSON(w, http.StatusOK, s.Cfg) })

	return r
}

func gzipped(next http.Handler) http.Handler {
	return gzhttp.GzipHandler(next)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
