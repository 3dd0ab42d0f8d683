package jsonstore

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested")
	s := New(dir)

	_, ok, err := s.Get("session")
	require.NoError(t, err)
	assert.False(t, ok, "missing file reads as empty")

	require.NoError(t, s.Set("session", `{"username":"alice"}`))
	require.NoError(t, s.Set("server", "https://kinto.example.com/v1"))

	v, ok, err := s.Get("session")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `{"username":"alice"}`, v)

	fi, err := os.Stat(filepath.Join(dir, FileName))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), fi.Mode().Perm())

	require.NoError(t, s.Remove("session", "draft"))
	_, ok, err = s.Get("session")
	require.NoError(t, err)
	assert.False(t, ok)

	v, _, err = s.Get("server")
	require.NoError(t, err)
	assert.Equal(t, "https://kinto.example.com/v1", v)
}

func TestCorruptFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte("{nope"), 0o600))
	s := New(dir)

	_, _, err := s.Get("session")
	assert.Error(t, err)

	require.NoError(t, s.Set("server", "x"))
	v, ok, err := s.Get("server")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "x", v)
}
