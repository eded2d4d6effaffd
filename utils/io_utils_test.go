package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStageWriterCommitsOnClose(t *testing.T) {
	dir := t.TempDir()
	dst := filepath.Join(dir, "f.txt")
	require.NoError(t, os.WriteFile(dst, []byte("old"), 0644))

	w, err := NewStageWriter(dst)
	require.NoError(t, err)

	_, err = w.Write([]byte("new content"))
	require.NoError(t, err)
	// target still holds the old bytes until close
	data, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, []byte("old"), data)

	require.NoError(t, w.Close())
	data, err = os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, []byte("new content"), data)

	ents, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, ents, 1)
}
