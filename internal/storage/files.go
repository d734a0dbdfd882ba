package storage

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// UploadInfo - данные для presigned PUT загрузки.
//   - UploadURL: URL для PUT-запроса;
//   - FileKey: ключ будущего объекта в бакете;
//   - Expires: время жизни подписи;
//   - RequiredHeader: заголовки, которые клиент обязан передать при PUT.
type UploadInfo struct {
	UploadURL      string
	FileKey        string
	Expires        time.Duration
	RequiredHeader map[string]string
}

// GPSFiles - контракт выдачи presigned URL для GPS-треков и проверки загрузки.
type GPSFiles interface {
	// GPSUploadURL генерирует presigned PUT; валидирует contentType и contentLength.
	GPSUploadURL(ctx context.Context, userID uuid.UUID, contentType string, contentLength int64) (*UploadInfo, error)
	// CheckGPSUpload проверяет факт загрузки по key и возвращает публичный URL.
	CheckGPSUpload(ctx context.Context, userID uuid.UUID, key string) (publicURL string, err error)
}
