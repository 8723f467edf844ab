package integration

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_GC_RemovesStaleOrphans(t *testing.T) {
	e := startVault(t, t.TempDir())
	ctx := context.Background()

	rec, err := e.client.Upload(ctx, "live.txt", bytes.NewReader([]byte("live")), 4)
	require.NoError(t, err)

	uploads := filepath.Join(e.cfg.DataDir, "uploads")
	stale := filepath.Join(uploads, "stale.bin")
	fresh := filepath.Join(uploads, "fresh.bin")
	require.NoError(t, os.WriteFile(stale, []byte("old"), 0o644))
	require.NoError(t, os.WriteFile(fresh, []byte("new"), 0o644))

	old := time.Now().Add(-48 * time.Hour)
	require.NoError(t, os.Chtimes(stale, old, old))
	live := filepath.Join(e.cfg.DataDir, rec.Path)
	require.NoError(t, os.Chtimes(live, old, old))

	res, err := e.srv.Vault.Sweep(ctx, 24*time.Hour)
	require.NoError(t, err)
	assert.Equal(t, 3, res.Scanned)
	assert.Equal(t, 1, res.Removed)
	assert.Equal(t, int64(3), res.Freed)

	_, err = os.Stat(stale)
	assert.True(t, os.IsNotExist(err))
	_, err = os.Stat(fresh)
	assert.NoError(t, err)
	_, err = os.Stat(live)
	assert.NoError(t, err, "referenced blob must survive")
}

func Test_StartGC_StopIsIdempotent(t *testing.T) {
	e := startVault(t, t.TempDir())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	stale := filepath.Join(e.cfg.DataDir, "uploads", "stale.bin")
	require.NoError(t, os.WriteFile(stale, []byte("old"), 0o644))
	old := time.Now().Add(-2 * time.Hour)
	require.NoError(t, os.Chtimes(stale, old, old))

	stop := e.srv.Vault.StartGC(ctx, time.Hour, 10*time.Millisecond)
	defer stop()

	assert.Eventually(t, func() bool {
		_, err := os.Stat(stale)
		return os.IsNotExist(err)
	}, 2*time.Second, 10*time.Millisecond)

	stop()
	stop()
}
