package storage

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sc "github.com/yourplaces/backend/internal/server/config"
)

func testConfig() *sc.Config {
	cfg := &sc.Config{}
	cfg.LoadDefaults()
	return cfg
}

func TestRandomStorageKey(t *testing.T) {
	k1 := RandomStorageKey()
	k2 := RandomStorageKey()

	assert.True(t, strings.HasPrefix(k1, "images/"))
	assert.NotEqual(t, k1, k2, "keys must be unique")
}

func TestPresignPutURL_Success(t *testing.T) {
	origPresign := presignPutObject
	defer func() { presignPutObject = origPresign }()

	var gotBucket, gotKey string
	presignPutObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		gotBucket = aws.ToString(in.Bucket)
		gotKey = aws.ToString(in.Key)
		return &v4.PresignedHTTPRequest{URL: "https://s3.example/upload"}, nil
	}

	store := NewS3ImageStore(testConfig())
	key, url, err := store.PresignPutURL(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "https://s3.example/upload", url)
	assert.Equal(t, key, gotKey)
	assert.Equal(t, "places", gotBucket)
}

func TestPresignPutURL_Error(t *testing.T) {
	origPresign := presignPutObject
	defer func() { presignPutObject = origPresign }()

	presignPutObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return nil, errors.New("presign failed")
	}

	store := NewS3ImageStore(testConfig())
	_, _, err := store.PresignPutURL(context.Background())
	require.Error(t, err)
}

func TestDelete(t *testing.T) {
	origDelete := deleteObject
	defer func() { deleteObject = origDelete }()

	var gotKey string
	deleteObject = func(c *s3.Client, ctx context.Context, in *s3.DeleteObjectInput) (*s3.DeleteObjectOutput, error) {
		gotKey = aws.ToString(in.Key)
		return &s3.DeleteObjectOutput{}, nil
	}

	store := NewS3ImageStore(testConfig())
	require.NoError(t, store.Delete(context.Background(), "images/x"))
	assert.Equal(t, "images/x", gotKey)

	deleteObject = func(c *s3.Client, ctx context.Context, in *s3.DeleteObjectInput) (*s3.DeleteObjectOutput, error) {
		return nil, errors.New("gone wrong")
	}
	require.Error(t, store.Delete(context.Background(), "images/x"))
}
