package storage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalSaveAndRemove(t *testing.T) {
	dir := t.TempDir()

	l, err := NewLocal(dir)
	require.NoError(t, err)

	content := "stored bytes"
	err = l.Save(t.Context(), "abc.txt", strings.NewReader(content), int64(len(content)), "text/plain")
	require.NoError(t, err)

	raw, err := os.ReadFile(filepath.Join(dir, "abc.txt"))
	require.NoError(t, err)
	assert.Equal(t, content, string(raw))

	require.NoError(t, l.Remove(t.Context(), "abc.txt"))

	_, err = os.Stat(filepath.Join(dir, "abc.txt"))
	assert.True(t, os.IsNotExist(err))
}

func TestLocalRemoveMissing(t *testing.T) {
	l, err := NewLocal(t.TempDir())
	require.NoError(t, err)

	// Removing a file that's already gone isn't an error
	assert.NoError(t, l.Remove(t.Context(), "never-existed.bin"))
}
