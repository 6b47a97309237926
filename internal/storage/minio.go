package storage

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"path"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// Archive keeps copies of generated documents in an S3 compatible bucket.
type Archive struct {
	client        *minio.Client
	bucketName    string
	presignExpiry time.Duration
}

type Object struct {
	Key       string    `json:"key"`
	URL       string    `json:"url"`
	ExpiresAt time.Time `json:"expiresAt"`
}

func NewArchive(endpoint, accessKey, secretKey, bucketName string, useSSL bool, presignExpiry time.Duration) (*Archive, error) {
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	exists, err := client.BucketExists(ctx, bucketName)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket: %w", err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, bucketName, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("failed to create bucket: %w", err)
		}
		slog.Info("bucket created", "bucket", bucketName)
	}

	return &Archive{
		client:        client,
		bucketName:    bucketName,
		presignExpiry: presignExpiry,
	}, nil
}

// ObjectKey places every upload under its document type and assignment, with
// a random suffix so re-archiving never overwrites an earlier copy.
func ObjectKey(documentType string, assignmentID int64, filename string, at time.Time) string {
	ext := path.Ext(filename)
	base := filename[:len(filename)-len(ext)]
	return fmt.Sprintf("%s/%d/%s_%s_%s%s",
		documentType,
		assignmentID,
		base,
		at.UTC().Format("20060102T150405Z"),
		uuid.New().String()[:8],
		ext,
	)
}

func (a *Archive) Put(ctx context.Context, key, contentType string, body []byte) (*Object, error) {
	_, err := a.client.PutObject(ctx, a.bucketName, key, bytes.NewReader(body), int64(len(body)), minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to upload %s: %w", key, err)
	}

	url, err := a.client.PresignedGetObject(ctx, a.bucketName, key, a.presignExpiry, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to presign %s: %w", key, err)
	}

	slog.Info("document archived", "bucket", a.bucketName, "key", key)
	return &Object{
		Key:       key,
		URL:       url.String(),
		ExpiresAt: time.Now().Add(a.presignExpiry),
	}, nil
}
