// Package storage holds place/user images in an S3-compatible object store.
// Uploads go directly from the client via presigned PUT URLs; the server only
// hands out keys and removes objects that are no longer referenced.
package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	sc "github.com/yourplaces/backend/internal/server/config"
)

var (
	loadDefaultAWSConfig = config.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}

	newS3PresignClient = func(c *s3.Client) *s3.PresignClient {
		return s3.NewPresignClient(c)
	}

	presignPutObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignPutObject(ctx, in, optFns...)
	}

	deleteObject = func(c *s3.Client, ctx context.Context, in *s3.DeleteObjectInput) (*s3.DeleteObjectOutput, error) {
		return c.DeleteObject(ctx, in)
	}
)

// ImageStore is the contract the services use: hand out an upload slot,
// remove an object by key.
type ImageStore interface {
	PresignPutURL(ctx context.Context) (key string, url string, err error)
	Delete(ctx context.Context, key string) error
}

type S3ImageStore struct {
	config *sc.Config
}

func NewS3ImageStore(cfg *sc.Config) *S3ImageStore {
	return &S3ImageStore{config: cfg}
}

// RandomStorageKey produces a date-bucketed object key for a new upload.
func RandomStorageKey() string {
	d := time.Now()
	return fmt.Sprintf("images/%d/%d/%d/%v", d.Year(), d.Month(), d.Day(), uuid.New())
}

func (s *S3ImageStore) getClient() (*s3.Client, error) {
	cfg, err := loadDefaultAWSConfig(context.Background(),
		config.WithRegion(s.config.S3Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			s.config.S3RootUser,
			s.config.S3RootPassword,
			"",
		)))
	if err != nil {
		return nil, err
	}

	return newS3ClientFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(s.config.S3BaseEndpoint)
	}), nil
}

// PresignPutURL returns a fresh object key plus a presigned PUT URL valid for
// 15 minutes.
func (s *S3ImageStore) PresignPutURL(ctx context.Context) (string, string, error) {

	client, err := s.getClient()
	if err != nil {
		return "", "", err
	}

	bucket := s.config.S3Bucket
	key := RandomStorageKey()

	req, err := presignPutObject(newS3PresignClient(client), ctx, &s3.PutObjectInput{
		Bucket: &bucket,
		Key:    &key,
	}, s3.WithPresignExpires(15*time.Minute))
	if err != nil {
		return "", "", err
	}

	return key, req.URL, nil
}

// Delete removes the object with the given key from the bucket.
func (s *S3ImageStore) Delete(ctx context.Context, key string) error {

	client, err := s.getClient()
	if err != nil {
		return err
	}

	bucket := s.config.S3Bucket
	_, err = deleteObject(client, ctx, &s3.DeleteObjectInput{
		Bucket: &bucket,
		Key:    &key,
	})
	return err
}
