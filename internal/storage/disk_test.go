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

func newTestDisk(t *testing.T) *DiskClient {
	t.Helper()
	client, err := NewDiskClient(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, client.EnsureBucket(context.Background()))
	return client
}

func TestDiskClient_PutGetDelete(t *testing.T) {
	client := newTestDisk(t)
	ctx := context.Background()

	content := "portrait bytes"
	require.NoError(t, client.Put(ctx, "users/photo.jpg", strings.NewReader(content), int64(len(content)), "image/jpeg"))

	reader, err := client.Get(ctx, "users/photo.jpg")
	require.NoError(t, err)
	defer reader.Close()

	got, err := io.ReadAll(reader)
	require.NoError(t, err)
	assert.Equal(t, content, string(got))

	require.NoError(t, client.Delete(ctx, "users/photo.jpg"))
	_, err = client.Get(ctx, "users/photo.jpg")
	assert.Error(t, err)
}

func TestDiskClient_DeleteMissingKey(t *testing.T) {
	client := newTestDisk(t)

	assert.NoError(t, client.Delete(context.Background(), "users/never-stored.jpg"))
}

func TestDiskClient_RejectsEscapingKeys(t *testing.T) {
	client := newTestDisk(t)
	ctx := context.Background()

	for _, key := range []string{"../outside.txt", "../../etc/passwd", ""} {
		assert.Error(t, client.Put(ctx, key, strings.NewReader("x"), 1, "text/plain"), "key %q", key)
		_, err := client.Get(ctx, key)
		assert.Error(t, err, "key %q", key)
	}
}

func TestDiskClient_RequiresRoot(t *testing.T) {
	_, err := NewDiskClient("  ")
	assert.Error(t, err)
}

func TestDiskClient_PutCreatesParentDirectories(t *testing.T) {
	client := newTestDisk(t)

	require.NoError(t, client.Put(context.Background(), "a/b/c/file.bin", strings.NewReader("x"), 1, ""))

	_, err := os.Stat(filepath.Join(client.Root(), "a", "b", "c", "file.bin"))
	assert.NoError(t, err)
}

func TestGenerateKey(t *testing.T) {
	key := GenerateKey("candidates", "Portrait.JPG")

	assert.True(t, strings.HasPrefix(key, "candidates/"))
	assert.True(t, strings.HasSuffix(key, ".jpg"))
	assert.NotEqual(t, key, GenerateKey("candidates", "Portrait.JPG"), "keys must not collide")
}
