package blobstore

import (
	"io"
	"testing"

	"github.com/go-git/go-billy/v5/memfs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteOpenRemove(t *testing.T) {
	s, err := New(memfs.New())
	require.NoError(t, err)

	p := PathFor("0001-a.txt")
	n, err := s.Write(p, []byte("payload"))
	require.NoError(t, err)
	assert.Equal(t, int64(7), n)

	ok, err := s.Exists(p)
	require.NoError(t, err)
	assert.True(t, ok)

	rc, size, err := s.Open(p)
	require.NoError(t, err)
	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	require.NoError(t, rc.Close())
	assert.Equal(t, int64(7), size)
	assert.Equal(t, "payload", string(data))

	require.NoError(t, s.Remove(p))
	ok, err = s.Exists(p)
	require.NoError(t, err)
	assert.False(t, ok)

	// повторное удаление не ошибка
	require.NoError(t, s.Remove(p))
}

func TestListSkipsDirectories(t *testing.T) {
	fs := memfs.New()
	s, err := New(fs)
	require.NoError(t, err)

	_, err = s.Write(PathFor("a"), []byte("1"))
	require.NoError(t, err)
	_, err = s.Write(PathFor("b"), []byte("22"))
	require.NoError(t, err)
	require.NoError(t, fs.MkdirAll("uploads/nested", 0o755))

	blobs, err := s.List()
	require.NoError(t, err)
	require.Len(t, blobs, 2)

	sizes := map[string]int64{}
	for _, b := range blobs {
		sizes[b.Path] = b.Size
	}
	assert.Equal(t, map[string]int64{"uploads/a": 1, "uploads/b": 2}, sizes)
}

func TestInvalidPaths(t *testing.T) {
	s, err := New(memfs.New())
	require.NoError(t, err)

	for _, p := range []string{"", "../x", "/uploads/a", "uploads/../meta.json", "other/a", "uploads//a"} {
		_, err := s.Write(p, []byte("x"))
		assert.ErrorIs(t, err, ErrInvalidPath, p)
	}
}

func TestOpenMissing(t *testing.T) {
	s, err := New(memfs.New())
	require.NoError(t, err)

	_, _, err = s.Open(PathFor("nope"))
	assert.Error(t, err)
}
