package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFileMissingUsesDefaults(t *testing.T) {
	cfg, err := LoadFile(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.ListenAddr)
	assert.Equal(t, "./data", cfg.DataDir)
	assert.Equal(t, filepath.Join("./data", "meta.json"), cfg.MetaPath)
	assert.Equal(t, 24*time.Hour, cfg.GCTTL())
	assert.Equal(t, 30*time.Minute, cfg.GCInterval())
}

func TestLoadFileYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	yml := `
listen_addr: ":9000"
data_dir: /srv/vault
meta_path: /srv/meta/files.json
log_level: debug
gc_ttl_hours: 2
gc_interval_min: 0
`
	require.NoError(t, os.WriteFile(path, []byte(yml), 0o644))

	cfg, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, ":9000", cfg.ListenAddr)
	assert.Equal(t, "/srv/vault", cfg.DataDir)
	assert.Equal(t, "/srv/meta/files.json", cfg.MetaPath)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 2*time.Hour, cfg.GCTTL())
	assert.Equal(t, time.Duration(0), cfg.GCInterval())
}

func TestEnvOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("listen_addr: \":9000\"\n"), 0o644))

	t.Setenv("LISTEN_ADDR", ":7000")
	t.Setenv("DATA_DIR", "/tmp/vault")
	t.Setenv("GC_TTL_HOURS", "5")
	t.Setenv("GC_INTERVAL_MIN", "not-a-number")

	cfg, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, ":7000", cfg.ListenAddr)
	assert.Equal(t, "/tmp/vault", cfg.DataDir)
	assert.Equal(t, filepath.Join("/tmp/vault", "meta.json"), cfg.MetaPath)
	assert.Equal(t, 5, cfg.GCTTLHours)
	assert.Equal(t, 30, cfg.GCIntervalMin)
}

func TestLoadFileInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("listen_addr: [unterminated"), 0o644))

	_, err := LoadFile(path)
	assert.Error(t, err)
}
