package integration

import (
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"github.com/yourname/vault_lite/internal/app/resthttp"
	"github.com/yourname/vault_lite/internal/config"
	"github.com/yourname/vault_lite/pkg/vaultclient"
)

type env struct {
	cfg    *config.Config
	srv    *resthttp.Server
	url    string
	client vaultclient.Client
}

// startVault поднимает REST-сервер на временном каталоге.
func startVault(t *testing.T, dataDir string) *env {
	t.Helper()

	cfg := config.Default()
	cfg.DataDir = dataDir
	cfg.MetaPath = filepath.Join(dataDir, "meta.json")

	h, srv, err := resthttp.NewServer(cfg, zerolog.Nop())
	require.NoError(t, err)

	ts := httptest.NewServer(h)
	t.Cleanup(ts.Close)

	return &env{cfg: cfg, srv: srv, url: ts.URL, client: vaultclient.New(ts.URL)}
}
