package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalDisk(t *testing.T) {
	ctx := context.Background()
	disk, err := NewLocalDisk(t.TempDir(), "http://localhost:8080/files/")
	require.NoError(t, err)

	assert.False(t, disk.Exists(ctx, "receipts/a.pdf"))
	require.NoError(t, disk.Put(ctx, "receipts/a.pdf", []byte("%PDF-1.3"), "application/pdf"))
	assert.True(t, disk.Exists(ctx, "receipts/a.pdf"))

	data, err := disk.Get(ctx, "receipts/a.pdf")
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.3", string(data))

	require.NoError(t, disk.Put(ctx, "receipts/a.pdf", []byte("v2"), ""))
	data, _ = disk.Get(ctx, "receipts/a.pdf")
	assert.Equal(t, "v2", string(data))

	assert.Equal(t, "http://localhost:8080/files/receipts/a.pdf", disk.URL("/receipts/a.pdf"))

	require.NoError(t, disk.Delete(ctx, "receipts/a.pdf"))
	require.NoError(t, disk.Delete(ctx, "receipts/a.pdf"))
	assert.False(t, disk.Exists(ctx, "receipts/a.pdf"))
}

func TestNewUnknownDriver(t *testing.T) {
	_, err := New(context.Background(), Config{Driver: "ftp"})
	assert.Error(t, err)

	_, err = New(context.Background(), Config{Driver: "s3"})
	assert.Error(t, err)
}
