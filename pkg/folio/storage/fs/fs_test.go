package fs_test

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/folioworks/folio/pkg/folio/storage/fs"
)

func newTestStore(t *testing.T) (*fs.Store, string) {
	t.Helper()
	baseDir := t.TempDir()
	store, err := fs.New(fs.Config{BaseDir: baseDir})
	require.NoError(t, err)
	return store.(*fs.Store), baseDir
}

func TestNewRequiresBaseDir(t *testing.T) {
	_, err := fs.New(fs.Config{})
	assert.Error(t, err)
}

func TestUploadDownloadRoundTrip(t *testing.T) {
	ctx := context.Background()
	store, baseDir := newTestStore(t)

	payload := []byte("avatar bytes")
	require.NoError(t, store.Upload(ctx, "owner/media-1/avatar.png", bytes.NewReader(payload)))

	// Nested directories get created under the base directory.
	_, err := os.Stat(filepath.Join(baseDir, "owner", "media-1", "avatar.png"))
	require.NoError(t, err)

	reader, err := store.Download(ctx, "owner/media-1/avatar.png")
	require.NoError(t, err)
	defer reader.Close()

	data, err := io.ReadAll(reader)
	require.NoError(t, err)
	assert.Equal(t, payload, data)
}

func TestPathTraversalRejected(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore(t)

	for _, key := range []string{"../escape", "a/../../escape", "/etc/passwd", "."} {
		err := store.Upload(ctx, key, bytes.NewReader([]byte("x")))
		assert.Error(t, err, "key %q should be rejected", key)
	}
}

func TestDeleteCleansEmptyDirectories(t *testing.T) {
	ctx := context.Background()
	store, baseDir := newTestStore(t)

	require.NoError(t, store.Upload(ctx, "owner/media-1/file.txt", bytes.NewReader([]byte("x"))))
	require.NoError(t, store.Delete(ctx, "owner/media-1/file.txt"))

	_, err := store.Download(ctx, "owner/media-1/file.txt")
	assert.Error(t, err)

	// Empty parent directories are removed, the base directory stays.
	_, err = os.Stat(filepath.Join(baseDir, "owner"))
	assert.True(t, os.IsNotExist(err))
	_, err = os.Stat(baseDir)
	assert.NoError(t, err)

	assert.Error(t, store.Delete(ctx, "owner/media-1/file.txt"))
}

func TestGetMeta(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore(t)

	payload := []byte("plain text content")
	require.NoError(t, store.Upload(ctx, "doc.txt", bytes.NewReader(payload)))

	meta, err := store.GetMeta(ctx, "doc.txt")
	require.NoError(t, err)
	assert.Equal(t, "doc.txt", meta.Key)
	assert.Equal(t, int64(len(payload)), meta.Size)
	assert.Contains(t, meta.ContentType, "text/plain")

	_, err = store.GetMeta(ctx, "missing.txt")
	assert.Error(t, err)
}

func TestURLs(t *testing.T) {
	ctx := context.Background()

	bare, baseDir := newTestStore(t)
	_, err := bare.GetDownloadURL(ctx, "key", "")
	assert.Error(t, err)
	_, err = bare.GetUploadURL(ctx, "key")
	assert.Error(t, err)

	prefixed, err := fs.New(fs.Config{BaseDir: baseDir, URLPrefix: "http://localhost:8080/files/"})
	require.NoError(t, err)

	uploadURL, err := prefixed.GetUploadURL(ctx, "owner/file.txt")
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080/files/upload/owner/file.txt", uploadURL)

	downloadURL, err := prefixed.GetDownloadURL(ctx, "owner/file.txt", "my report.pdf")
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080/files/download/owner/file.txt?filename=my+report.pdf", downloadURL)
}
