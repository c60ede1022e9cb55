package files

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"locafest/internal/core/apperror"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(t.TempDir())
	require.NoError(t, err)
	return s
}

func TestSaveAndOpen(t *testing.T) {
	s := newTestStore(t)

	name, err := s.Save("foto da festa.JPG", strings.NewReader("fake image bytes"))
	require.NoError(t, err)

	// stored under a random name, original name discarded
	assert.NotContains(t, name, "foto")
	assert.Equal(t, ".jpg", filepath.Ext(name))

	f, err := s.Open(name)
	require.NoError(t, err)
	defer f.Close()
	data, err := io.ReadAll(f)
	require.NoError(t, err)
	assert.Equal(t, "fake image bytes", string(data))
}

func TestSaveRejectsUnknownExtension(t *testing.T) {
	s := newTestStore(t)

	_, err := s.Save("payload.exe", strings.NewReader("boom"))
	require.Error(t, err)
	assert.True(t, apperror.IsCode(err, apperror.CodeValidation))

	_, err = s.Save("no-extension", strings.NewReader("boom"))
	require.Error(t, err)
	assert.True(t, apperror.IsCode(err, apperror.CodeValidation))
}

func TestRemove(t *testing.T) {
	s := newTestStore(t)

	name, err := s.Save("a.png", strings.NewReader("img"))
	require.NoError(t, err)

	require.NoError(t, s.Remove(name))
	_, err = s.Open(name)
	require.Error(t, err)
	assert.True(t, apperror.IsNotFound(err))

	// removing twice is fine
	require.NoError(t, s.Remove(name))
}

func TestPathTraversalIsRejected(t *testing.T) {
	s := newTestStore(t)

	for _, path := range []string{
		"../outside.png",
		"a/../../outside.png",
		"/etc/passwd",
	} {
		err := s.Remove(path)
		require.Error(t, err, path)
		assert.True(t, apperror.IsCode(err, apperror.CodeValidation), path)

		_, err = s.Open(path)
		require.Error(t, err, path)
		assert.True(t, apperror.IsCode(err, apperror.CodeValidation), path)
	}
}

func TestOpenMissingFile(t *testing.T) {
	s := newTestStore(t)

	_, err := s.Open("does-not-exist.png")
	require.Error(t, err)
	assert.True(t, apperror.IsNotFound(err))
}

func TestNewStoreCreatesBaseDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "uploads")
	_, err := NewStore(dir)
	require.NoError(t, err)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}
