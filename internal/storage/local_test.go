package storage_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/roamlog/roamlog/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLocalStore(t *testing.T) (*storage.LocalStorage, string) {
	t.Helper()

	dir := filepath.Join(t.TempDir(), "uploads")
	store, err := storage.NewLocalStorage(dir, "http://localhost:3000")
	require.NoError(t, err)
	return store, dir
}

func TestLocalStorage_StoreReturnsServableURL(t *testing.T) {
	store, dir := newLocalStore(t)

	url, err := store.Store(context.Background(), strings.NewReader("image bytes"), "photo.png")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "http://localhost:3000/uploads/"), url)
	assert.True(t, strings.HasSuffix(url, ".png"), url)

	name := url[strings.LastIndex(url, "/")+1:]
	content, err := os.ReadFile(filepath.Join(dir, name))
	require.NoError(t, err)
	assert.Equal(t, "image bytes", string(content))
}

func TestLocalStorage_StoreAssignsUniqueNames(t *testing.T) {
	store, _ := newLocalStore(t)

	first, err := store.Store(context.Background(), strings.NewReader("a"), "same.png")
	require.NoError(t, err)
	second, err := store.Store(context.Background(), strings.NewReader("b"), "same.png")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestLocalStorage_RemoveDeletesFile(t *testing.T) {
	store, dir := newLocalStore(t)

	url, err := store.Store(context.Background(), strings.NewReader("bytes"), "photo.jpg")
	require.NoError(t, err)

	err = store.Remove(context.Background(), url)
	require.NoError(t, err)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestLocalStorage_RemoveMissingIsSuccess(t *testing.T) {
	store, _ := newLocalStore(t)

	err := store.Remove(context.Background(), "http://localhost:3000/uploads/never-existed.png")
	assert.NoError(t, err)
}

func TestLocalStorage_RemoveCannotEscapeUploadRoot(t *testing.T) {
	store, dir := newLocalStore(t)

	// A file that lives outside the upload root must be unreachable no
	// matter how the URL is crafted.
	outside := filepath.Join(filepath.Dir(dir), "secret.txt")
	require.NoError(t, os.WriteFile(outside, []byte("keep me"), 0o644))

	urls := []string{
		"http://localhost:3000/uploads/../secret.txt",
		"http://localhost:3000/uploads/..%2Fsecret.txt",
		"http://localhost:3000/../secret.txt",
	}
	for _, u := range urls {
		_ = store.Remove(context.Background(), u)
	}

	_, err := os.Stat(outside)
	assert.NoError(t, err, "file outside upload root must survive remove attempts")
}

// A URL that cannot name a file at all fails with the invalid-URL sentinel,
// distinguishable from a backend failure.
func TestLocalStorage_RemoveRejectsUnresolvableURL(t *testing.T) {
	store, _ := newLocalStore(t)

	for _, u := range []string{
		"http://localhost:3000/",
		"http://localhost:3000",
		"http://bad host/uploads/x.png",
	} {
		err := store.Remove(context.Background(), u)
		assert.ErrorIs(t, err, storage.ErrInvalidObjectURL, u)
	}
}

func TestLocalStorage_RemoveCanceledContext(t *testing.T) {
	store, _ := newLocalStore(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := store.Remove(ctx, "http://localhost:3000/uploads/x.png")
	assert.ErrorIs(t, err, context.Canceled)
}
