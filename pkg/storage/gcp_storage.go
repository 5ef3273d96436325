package storage

import (
	"context"
	"fmt"
	"io"
	"time"

	"cloud.google.com/go/storage"
	"google.golang.org/api/option"
)

type GCPStorage struct {
	client *storage.Client
	bucket string
}

func NewGCPStorage(bucket, credentialsFile string) (*GCPStorage, error) {
	ctx := context.Background()

	var client *storage.Client
	var err error

	if credentialsFile != "" {
		client, err = storage.NewClient(ctx, option.WithCredentialsFile(credentialsFile))
	} else {
		client, err = storage.NewClient(ctx)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to create GCP storage client: %w", err)
	}

	return &GCPStorage{
		client: client,
		bucket: bucket,
	}, nil
}

func (g *GCPStorage) Upload(ctx context.Context, request *UploadRequest) (*UploadResponse, error) {
	object := g.client.Bucket(g.bucket).Object(request.Key)

	writer := object.NewWriter(ctx)
	writer.ContentType = request.ContentType
	if len(request.Metadata) > 0 {
		writer.Metadata = request.Metadata
	}

	size, err := io.Copy(writer, request.Reader)
	if err != nil {
		writer.Close()
		return nil, fmt.Errorf("failed to write to GCP storage: %w", err)
	}

	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("failed to close writer: %w", err)
	}

	return &UploadResponse{
		Key:  request.Key,
		URL:  fmt.Sprintf("https://storage.googleapis.com/%s/%s", g.bucket, request.Key),
		Size: size,
	}, nil
}

func (g *GCPStorage) Download(ctx context.Context, key string) (*DownloadResponse, error) {
	object := g.client.Bucket(g.bucket).Object(key)

	reader, err := object.NewReader(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create reader: %w", err)
	}

	attrs, err := object.Attrs(ctx)
	if err != nil {
		reader.Close()
		return nil, fmt.Errorf("failed to get object attributes: %w", err)
	}

	return &DownloadResponse{
		Reader:       reader,
		Size:         attrs.Size,
		ContentType:  attrs.ContentType,
		LastModified: attrs.Updated,
	}, nil
}

func (g *GCPStorage) Delete(ctx context.Context, key string) error {
	object := g.client.Bucket(g.bucket).Object(key)

	if err := object.Delete(ctx); err != nil {
		return fmt.Errorf("failed to delete from GCP storage: %w", err)
	}

	return nil
}

func (g *GCPStorage) GetURL(ctx context.Context, key string, expiration time.Duration) (string, error) {
	url, err := g.client.Bucket(g.bucket).SignedURL(key, &storage.SignedURLOptions{
		Method:  "GET",
		Expires: time.Now().Add(expiration),
	})
	if err != nil {
		return "", fmt.Errorf("failed to sign URL: %w", err)
	}

	return url, nil
}
