// minio реализует storage.GPSFiles поверх MinIO/S3.
// minio.go - конструктор клиента: нормализует endpoint, подбирает Secure
// по схеме и проверяет наличие бакета.
// gps.go - presigned PUT для GPS-треков и подтверждение загрузки.
package minio

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	mclient "github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/pribylovaa/go-group-fitness/internal/config"
	"github.com/pribylovaa/go-group-fitness/internal/storage"
)

// GPSStorage - адаптер MinIO для GPS-файлов групповых событий.
type GPSStorage struct {
	s3     config.S3Config
	gps    config.GPSConfig
	client *mclient.Client
}

// New создаёт клиент MinIO и выполняет fail-fast-проверку бакета.
func New(ctx context.Context, s3 config.S3Config, gps config.GPSConfig) (*GPSStorage, error) {
	const op = "storage.minio.New"

	endpoint := s3.Endpoint
	secure := strings.HasPrefix(endpoint, "https://")

	if u, err := url.Parse(endpoint); err == nil && u.Scheme != "" && u.Host != "" {
		endpoint = u.Host
		secure = u.Scheme == "https"
	}

	client, err := mclient.New(endpoint, &mclient.Options{
		Creds:  credentials.NewStaticV4(s3.AccessKey, s3.SecretKey, ""),
		Secure: secure,
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	exists, err := client.BucketExists(ctx, s3.Bucket)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if !exists {
		return nil, fmt.Errorf("%s: bucket %q does not exist", op, s3.Bucket)
	}

	return &GPSStorage{s3: s3, gps: gps, client: client}, nil
}

var _ storage.GPSFiles = (*GPSStorage)(nil)
