// events содержит бизнес-логику групповых тренировок:
// CRUD с правом изменения только у создателя и загрузку GPS-трека
// через presigned URL.
package events

import (
	"errors"

	"github.com/pribylovaa/go-group-fitness/internal/storage"
)

var (
	// ErrInvalidArgument - некорректные входные данные.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrNotFound - событие (или загруженный объект) не найдено.
	ErrNotFound = errors.New("not found")
	// ErrProfileRequired - у создателя нет профиля.
	ErrProfileRequired = errors.New("profile required")
	// ErrPermissionDenied - операция доступна только создателю события.
	ErrPermissionDenied = errors.New("permission denied")
	// ErrUnavailable - загрузка GPS-файлов не сконфигурирована.
	ErrUnavailable = errors.New("gps uploads are not configured")
	// ErrInternal - внутренняя ошибка сервиса.
	ErrInternal = errors.New("internal")
)

// Service - бизнес-логика событий.
type Service struct {
	events storage.EventsStorage
	gps    storage.GPSFiles // nil, если S3 не сконфигурирован
}

func New(events storage.EventsStorage, gps storage.GPSFiles) *Service {
	return &Service{events: events, gps: gps}
}
