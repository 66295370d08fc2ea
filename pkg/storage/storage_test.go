package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalDisk(t *testing.T) {
	ctx := context.Background()
	d := NewLocalDisk(t.TempDir(), "")

	require.NoError(t, d.Put(ctx, "backups/b.json", []byte(`{"b":1}`)))
	require.NoError(t, d.Put(ctx, "backups/a.json", []byte(`{"a":1}`)))

	ok, err := d.Exists(ctx, "backups/a.json")
	require.NoError(t, err)
	assert.True(t, ok)

	data, err := d.Get(ctx, "backups/a.json")
	require.NoError(t, err)
	assert.JSONEq(t, `{"a":1}`, string(data))

	files, err := d.Files(ctx, "backups")
	require.NoError(t, err)
	assert.Equal(t, []string{"backups/a.json", "backups/b.json"}, files)

	require.NoError(t, d.Delete(ctx, "backups/a.json"))
	require.NoError(t, d.Delete(ctx, "backups/a.json"))
	_, err = d.Get(ctx, "backups/a.json")
	assert.ErrorIs(t, err, ErrNotExist)
}

func TestLocalDiskStaysInRoot(t *testing.T) {
	ctx := context.Background()
	root := t.TempDir()
	d := NewLocalDisk(root, "http://localhost:8080/files")

	require.NoError(t, d.Put(ctx, "../../escape.json", []byte("x")))
	ok, err := d.Exists(ctx, "escape.json")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "http://localhost:8080/files/escape.json", d.URL("/escape.json"))
}

func TestLocalDiskMissingDirectory(t *testing.T) {
	files, err := NewLocalDisk(t.TempDir(), "").Files(context.Background(), "nothing")
	require.NoError(t, err)
	assert.Empty(t, files)
}

func TestManager(t *testing.T) {
	m := NewManager("local")
	local := NewLocalDisk(t.TempDir(), "")
	m.Register("local", local)

	d, err := m.Disk("")
	require.NoError(t, err)
	assert.Same(t, local, d)

	_, err = m.Disk("s3")
	assert.ErrorContains(t, err, `"s3" is not configured`)
}

func TestS3DiskNeedsBucket(t *testing.T) {
	_, err := NewS3Disk(context.Background(), S3Config{})
	assert.Error(t, err)
}
