package memory_test

import (
	"bytes"
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/folioworks/folio/pkg/folio/storage/memory"
)

func TestUploadDownloadRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := memory.New()

	payload := []byte("hello media")
	require.NoError(t, store.Upload(ctx, "u/owner/1/file.txt", bytes.NewReader(payload)))

	reader, err := store.Download(ctx, "u/owner/1/file.txt")
	require.NoError(t, err)
	defer reader.Close()

	data, err := io.ReadAll(reader)
	require.NoError(t, err)
	assert.Equal(t, payload, data)
}

func TestDownloadMissingObject(t *testing.T) {
	store := memory.New()
	_, err := store.Download(context.Background(), "u/owner/none")
	assert.Error(t, err)
}

func TestDelete(t *testing.T) {
	ctx := context.Background()
	store := memory.New()

	require.NoError(t, store.Upload(ctx, "key", bytes.NewReader([]byte("x"))))
	require.NoError(t, store.Delete(ctx, "key"))

	_, err := store.Download(ctx, "key")
	assert.Error(t, err)

	assert.Error(t, store.Delete(ctx, "key"))
}

func TestGetMeta(t *testing.T) {
	ctx := context.Background()
	store := memory.New()

	payload := []byte("some text payload")
	require.NoError(t, store.Upload(ctx, "key", bytes.NewReader(payload)))

	meta, err := store.GetMeta(ctx, "key")
	require.NoError(t, err)
	assert.Equal(t, "key", meta.Key)
	assert.Equal(t, int64(len(payload)), meta.Size)
	assert.NotEmpty(t, meta.ContentType)
	assert.False(t, meta.UpdatedAt.IsZero())

	_, err = store.GetMeta(ctx, "missing")
	assert.Error(t, err)
}

func TestURLsNotSupported(t *testing.T) {
	ctx := context.Background()
	store := memory.New()

	_, err := store.GetUploadURL(ctx, "key")
	assert.Error(t, err)

	_, err = store.GetDownloadURL(ctx, "key", "file.txt")
	assert.Error(t, err)
}
