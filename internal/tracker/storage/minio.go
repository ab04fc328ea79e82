// Package storage provides the object-storage backend for history archives.
package storage

import (
	"bytes"
	"context"
	"fmt"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/trackhub-io/trackhub/internal/tracker/core"
	"github.com/trackhub-io/trackhub/pkg/log"
	"github.com/trackhub-io/trackhub/pkg/options"
)

// MinIOArchive stores history exports as JSON objects in an S3-compatible
// bucket.
type MinIOArchive struct {
	client *minio.Client
	bucket string
}

var _ core.ArchiveStore = (*MinIOArchive)(nil)

// NewMinIOArchive creates the archive client and ensures the bucket exists.
func NewMinIOArchive(ctx context.Context, opts *options.S3Options) (*MinIOArchive, error) {
	client, err := minio.New(opts.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(opts.AccessKeyID, opts.SecretAccessKey, ""),
		Secure: opts.UseSSL,
		Region: opts.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("creating minio client: %w", err)
	}

	a := &MinIOArchive{client: client, bucket: opts.BucketName}
	if err := a.ensureBucket(ctx); err != nil {
		return nil, err
	}
	return a, nil
}

func (a *MinIOArchive) ensureBucket(ctx context.Context) error {
	exists, err := a.client.BucketExists(ctx, a.bucket)
	if err != nil {
		return fmt.Errorf("checking bucket %q: %w", a.bucket, err)
	}
	if !exists {
		log.Info("Archive bucket does not exist, creating", "bucket", a.bucket)
		if err := a.client.MakeBucket(ctx, a.bucket, minio.MakeBucketOptions{}); err != nil {
			return fmt.Errorf("creating bucket %q: %w", a.bucket, err)
		}
	}
	return nil
}

// Put implements core.ArchiveStore.
func (a *MinIOArchive) Put(ctx context.Context, key string, data []byte) error {
	_, err := a.client.PutObject(ctx, a.bucket, key, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: "application/json",
	})
	if err != nil {
		return fmt.Errorf("storing archive object %q: %w", key, err)
	}
	return nil
}
