package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestStorage(t *testing.T) (*ReceiptStorage, string) {
	t.Helper()
	baseDir := filepath.Join(t.TempDir(), "receipts")
	s, err := NewReceiptStorage(baseDir, zap.NewNop())
	require.NoError(t, err)
	return s, baseDir
}

func TestReceiptStorage_Save(t *testing.T) {
	s, baseDir := newTestStorage(t)
	ctx := context.Background()

	t.Run("saves receipt", func(t *testing.T) {
		content := []byte("png bytes")
		require.NoError(t, s.Save(ctx, "k1.png", content))

		saved, err := os.ReadFile(filepath.Join(baseDir, "k1.png"))
		require.NoError(t, err)
		assert.Equal(t, content, saved)
		assert.Equal(t, filepath.Join(baseDir, "k1.png"), s.GetFullPath("k1.png"))
	})

	t.Run("creates parent directories", func(t *testing.T) {
		require.NoError(t, s.Save(ctx, filepath.Join("2004", "04", "k2.jpg"), []byte("x")))
		assert.FileExists(t, filepath.Join(baseDir, "2004", "04", "k2.jpg"))
	})

	t.Run("overwrites existing receipt", func(t *testing.T) {
		require.NoError(t, s.Save(ctx, "k3.png", []byte("original")))
		require.NoError(t, s.Save(ctx, "k3.png", []byte("updated")))

		content, err := os.ReadFile(s.GetFullPath("k3.png"))
		require.NoError(t, err)
		assert.Equal(t, []byte("updated"), content)
	})

	t.Run("rejects cancelled context", func(t *testing.T) {
		cancelled, cancel := context.WithCancel(ctx)
		cancel()
		assert.ErrorIs(t, s.Save(cancelled, "k4.png", []byte("x")), context.Canceled)
	})
}

func TestReceiptStorage_PathEscapes(t *testing.T) {
	s, baseDir := newTestStorage(t)
	ctx := context.Background()

	t.Run("rejects traversal", func(t *testing.T) {
		err := s.Save(ctx, filepath.Join("..", "..", "etc", "passwd"), []byte("x"))
		assert.ErrorIs(t, err, ErrPathEscapesBase)
	})

	t.Run("rejects similar prefix", func(t *testing.T) {
		err := s.validatePath(baseDir + "_malicious/file.png")
		assert.ErrorIs(t, err, ErrPathEscapesBase)
	})

	t.Run("rejects the base itself", func(t *testing.T) {
		assert.ErrorIs(t, s.validatePath(baseDir), ErrPathEscapesBase)
	})

	t.Run("delete rejects traversal", func(t *testing.T) {
		assert.ErrorIs(t, s.Delete(ctx, filepath.Join("..", "receipts")), ErrPathEscapesBase)
	})
}

func TestReceiptStorage_Delete(t *testing.T) {
	s, _ := newTestStorage(t)
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, "k1.png", []byte("x")))
	require.NoError(t, s.Delete(ctx, "k1.png"))
	assert.NoFileExists(t, s.GetFullPath("k1.png"))

	// idempotent
	assert.NoError(t, s.Delete(ctx, "k1.png"))
}

func TestReceiptPath(t *testing.T) {
	assert.Equal(t, "k1.png", ReceiptPath("k1", "file.PNG"))
	assert.Equal(t, "k1.jpeg", ReceiptPath("k1", `C:\fakepath\scan.jpeg`))
	assert.Equal(t, "k1", ReceiptPath("k1", "noext"))
}
