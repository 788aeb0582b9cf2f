package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testS3Config() S3Config {
	return S3Config{
		Bucket:          "test-bucket",
		Region:          "us-east-1",
		Endpoint:        "http://localhost:4566", // LocalStack-like endpoint
		AccessKeyID:     "test-access-key",
		SecretAccessKey: "test-secret-key",
	}
}

func TestNewS3Store(t *testing.T) {
	store, err := NewS3Store(t.TempDir(), testS3Config())
	require.NoError(t, err)

	assert.Equal(t, "test-bucket", store.bucket)
	assert.Equal(t, "us-east-1", store.region)
}

func TestS3Store_InheritsLocalStore(t *testing.T) {
	dir := t.TempDir()
	store, err := NewS3Store(dir, testS3Config())
	require.NoError(t, err)

	assert.Equal(t, dir, store.Dir())

	names, err := store.ListFiles(context.Background())
	require.NoError(t, err)
	assert.Empty(t, names)
}
