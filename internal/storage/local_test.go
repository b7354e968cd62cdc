package storage

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStorageRoundTrip(t *testing.T) {
	dir := t.TempDir()
	store, err := NewLocalStorage("http://localhost:8080/", dir)
	require.NoError(t, err)
	ctx := context.Background()

	url, err := store.Save(ctx, "images/photo.jpg", strings.NewReader("jpeg-bytes"))
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080/uploads/images/photo.jpg", url)

	exists, size, err := store.Exists(ctx, "images/photo.jpg")
	require.NoError(t, err)
	assert.True(t, exists)
	assert.Equal(t, int64(len("jpeg-bytes")), size)

	f, err := store.Open("images/photo.jpg")
	require.NoError(t, err)
	data, err := io.ReadAll(f)
	require.NoError(t, err)
	require.NoError(t, f.Close())
	assert.Equal(t, "jpeg-bytes", string(data))

	require.NoError(t, store.Delete(ctx, "images/photo.jpg"))
	exists, _, err = store.Exists(ctx, "images/photo.jpg")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestLocalStorageNeutralizesTraversal(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, "uploads")
	store, err := NewLocalStorage("http://localhost:8080", dir)
	require.NoError(t, err)

	outside := filepath.Join(root, "escape.txt")
	_, err = store.Save(context.Background(), "../escape.txt", strings.NewReader("x"))
	require.NoError(t, err)

	// The cleaned key lands inside the uploads root, never beside it.
	_, statErr := os.Stat(outside)
	assert.True(t, os.IsNotExist(statErr))
	_, statErr = os.Stat(filepath.Join(dir, "escape.txt"))
	assert.NoError(t, statErr)
}

func TestLocalStorageRejectsEmptyKey(t *testing.T) {
	store, err := NewLocalStorage("http://localhost:8080", t.TempDir())
	require.NoError(t, err)

	_, err = store.Open("")
	assert.Error(t, err)
}

func TestLocalStorageDeleteMissingIsNoop(t *testing.T) {
	store, err := NewLocalStorage("http://localhost:8080", t.TempDir())
	require.NoError(t, err)

	assert.NoError(t, store.Delete(context.Background(), "never-uploaded.png"))
}
