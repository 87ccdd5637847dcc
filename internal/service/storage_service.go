package service

import (
	"bytes"
	"context"
	"fmt"
	"guidly_backend/internal/config"
	"guidly_backend/internal/util"
	"os"
	"path/filepath"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// StorageProvider abstracts where uploaded documents land.
type StorageProvider interface {
	Upload(ctx context.Context, objectName, contentType string, data []byte) (string, error)
	Delete(ctx context.Context, objectName string) error
	GetURL(objectName string) string
}

// LocalStorageProvider writes files beneath a configured directory.
type LocalStorageProvider struct {
	basePath string
}

func NewLocalStorageProvider(basePath string) (*LocalStorageProvider, error) {
	if basePath == "" {
		basePath = "uploads"
	}
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("create storage dir: %w", err)
	}
	return &LocalStorageProvider{basePath: basePath}, nil
}

func (p *LocalStorageProvider) Upload(_ context.Context, objectName, _ string, data []byte) (string, error) {
	path := filepath.Join(p.basePath, filepath.Base(objectName))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", err
	}
	return path, nil
}

func (p *LocalStorageProvider) Delete(_ context.Context, objectName string) error {
	return os.Remove(filepath.Join(p.basePath, filepath.Base(objectName)))
}

func (p *LocalStorageProvider) GetURL(objectName string) string {
	return filepath.Join(p.basePath, filepath.Base(objectName))
}

// MinioStorageProvider stores objects in a MinIO bucket.
type MinioStorageProvider struct {
	client *minio.Client
	bucket string
}

func NewMinioStorageProvider(cfg *config.StorageConfig) (*MinioStorageProvider, error) {
	client, err := minio.New(cfg.MinioEndpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.MinioAccessID, cfg.MinioSecret, ""),
		Secure: cfg.MinioUseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("minio client: %w", err)
	}

	ctx := context.Background()
	exists, err := client.BucketExists(ctx, cfg.MinioBucket)
	if err != nil {
		return nil, fmt.Errorf("minio bucket check: %w", err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.MinioBucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("minio bucket create: %w", err)
		}
	}

	return &MinioStorageProvider{client: client, bucket: cfg.MinioBucket}, nil
}

func (p *MinioStorageProvider) Upload(ctx context.Context, objectName, contentType string, data []byte) (string, error) {
	_, err := p.client.PutObject(ctx, p.bucket, objectName, bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return "", err
	}
	return p.GetURL(objectName), nil
}

func (p *MinioStorageProvider) Delete(ctx context.Context, objectName string) error {
	return p.client.RemoveObject(ctx, p.bucket, objectName, minio.RemoveObjectOptions{})
}

func (p *MinioStorageProvider) GetURL(objectName string) string {
	return fmt.Sprintf("%s/%s/%s", p.client.EndpointURL().String(), p.bucket, objectName)
}

// NewStorageProvider picks the configured backend.
func NewStorageProvider(cfg *config.StorageConfig) (StorageProvider, error) {
	switch cfg.Type {
	case util.StorageMinio:
		return NewMinioStorageProvider(cfg)
	case util.StorageLocal, "":
		return NewLocalStorageProvider(cfg.LocalPath)
	default:
		return nil, fmt.Errorf("unknown storage type %q", cfg.Type)
	}
}
