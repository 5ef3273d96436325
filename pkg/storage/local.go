package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// LocalStorage keeps exported reports on the local filesystem. Used in
// development and single-node deployments.
type LocalStorage struct {
	basePath string
	baseURL  string
}

func NewLocalStorage(basePath, baseURL string) (*LocalStorage, error) {
	if err := os.MkdirAll(basePath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create base path: %w", err)
	}

	return &LocalStorage{
		basePath: basePath,
		baseURL:  strings.TrimRight(baseURL, "/"),
	}, nil
}

func (l *LocalStorage) Upload(ctx context.Context, request *UploadRequest) (*UploadResponse, error) {
	filePath := filepath.Join(l.basePath, request.Key)

	if err := os.MkdirAll(filepath.Dir(filePath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	file, err := os.Create(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	size, err := io.Copy(file, request.Reader)
	if err != nil {
		return nil, fmt.Errorf("failed to write file: %w", err)
	}

	return &UploadResponse{
		Key:  request.Key,
		URL:  l.generateURL(request.Key),
		Size: size,
	}, nil
}

func (l *LocalStorage) Download(ctx context.Context, key string) (*DownloadResponse, error) {
	filePath := filepath.Join(l.basePath, key)

	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}

	info, err := file.Stat()
	if err != nil {
		file.Close()
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}

	return &DownloadResponse{
		Reader:       file,
		Size:         info.Size(),
		ContentType:  "application/octet-stream",
		LastModified: info.ModTime(),
	}, nil
}

func (l *LocalStorage) Delete(ctx context.Context, key string) error {
	filePath := filepath.Join(l.basePath, key)

	if err := os.Remove(filePath); err != nil {
		return fmt.Errorf("failed to delete file: %w", err)
	}

	return nil
}

func (l *LocalStorage) GetURL(ctx context.Context, key string, expiration time.Duration) (string, error) {
	// Local files are served directly, no signing.
	return l.generateURL(key), nil
}

func (l *LocalStorage) generateURL(key string) string {
	return fmt.Sprintf("%s/%s", l.baseURL, key)
}
