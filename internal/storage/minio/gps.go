package minio

import (
	"context"
	"fmt"
	"path"
	"slices"
	"strconv"
	"strings"

	"github.com/google/uuid"
	mclient "github.com/minio/minio-go/v7"
	"github.com/pribylovaa/go-group-fitness/internal/storage"
)

const gpsPrefix = "gps"

// GPSUploadURL генерирует presigned PUT URL для ключа "gps/<userID>/<uuid><ext>".
// Клиент обязан передать RequiredHeader при PUT: они проверяются при подтверждении.
func (s *GPSStorage) GPSUploadURL(ctx context.Context, userID uuid.UUID, contentType string, contentLength int64) (*storage.UploadInfo, error) {
	const op = "storage.minio.GPSUploadURL"

	if contentLength <= 0 || contentLength > s.gps.MaxSizeBytes {
		return nil, fmt.Errorf("%s: %w", op, storage.ErrInvalidArgument)
	}

	if !slices.Contains(s.gps.AllowedContentTypes, contentType) {
		return nil, fmt.Errorf("%s: %w", op, storage.ErrInvalidArgument)
	}

	key := path.Join(gpsPrefix, userID.String(), uuid.NewString()+extFor(contentType))

	u, err := s.client.PresignedPutObject(ctx, s.s3.Bucket, key, s.s3.PresignTTL)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &storage.UploadInfo{
		UploadURL: u.String(),
		FileKey:   key,
		Expires:   s.s3.PresignTTL,
		RequiredHeader: map[string]string{
			"Content-Type":   contentType,
			"Content-Length": strconv.FormatInt(contentLength, 10),
		},
	}, nil
}

// CheckGPSUpload подтверждает, что объект по key загружен этим пользователем
// и укладывается в ограничения. Возвращает публичный URL; если
// PublicBaseURL не задан - пустую строку.
func (s *GPSStorage) CheckGPSUpload(ctx context.Context, userID uuid.UUID, key string) (string, error) {
	const op = "storage.minio.CheckGPSUpload"

	prefix := gpsPrefix + "/" + userID.String() + "/"
	if !strings.HasPrefix(key, prefix) || strings.Contains(key, "..") {
		return "", fmt.Errorf("%s: %w", op, storage.ErrInvalidArgument)
	}

	info, err := s.client.StatObject(ctx, s.s3.Bucket, key, mclient.StatObjectOptions{})
	if err != nil {
		resp := mclient.ToErrorResponse(err)
		if resp.Code == "NoSuchKey" || resp.StatusCode == 404 {
			return "", fmt.Errorf("%s: %w", op, storage.ErrNotFound)
		}

		return "", fmt.Errorf("%s: %w", op, err)
	}

	if info.Size <= 0 || info.Size > s.gps.MaxSizeBytes {
		return "", fmt.Errorf("%s: %w", op, storage.ErrInvalidArgument)
	}

	if ct := info.ContentType; ct != "" && !slices.Contains(s.gps.AllowedContentTypes, ct) {
		return "", fmt.Errorf("%s: %w", op, storage.ErrInvalidArgument)
	}

	if s.s3.PublicBaseURL == "" {
		return "", nil
	}

	return strings.TrimRight(s.s3.PublicBaseURL, "/") + "/" + key, nil
}

func extFor(contentType string) string {
	switch contentType {
	case "application/gpx+xml":
		return ".gpx"
	case "application/vnd.google-earth.kml+xml":
		return ".kml"
	case "application/vnd.garmin.tcx+xml":
		return ".tcx"
	case "application/octet-stream":
		return ".fit"
	default:
		return ""
	}
}
