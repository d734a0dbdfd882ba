// storage содержит контракты слоя хранилищ.
//
// auth.go - пользователи, refresh-токены и одноразовые коды;
// profiles.go - профили и предпочтения;
// events.go - групповые события;
// files.go - загрузка GPS-файлов в S3/MinIO.
package storage

//go:generate mockgen -destination=../../mocks/auth_storage.go -package=mocks github.com/pribylovaa/go-group-fitness/internal/storage AuthStorage
//go:generate mockgen -destination=../../mocks/profiles_storage.go -package=mocks github.com/pribylovaa/go-group-fitness/internal/storage ProfilesStorage
//go:generate mockgen -destination=../../mocks/events_storage.go -package=mocks github.com/pribylovaa/go-group-fitness/internal/storage EventsStorage
//go:generate mockgen -destination=../../mocks/gps_files.go -package=mocks github.com/pribylovaa/go-group-fitness/internal/storage GPSFiles

import "errors"

var (
	// ErrNotFound - запись не найдена.
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists - нарушение уникальности.
	ErrAlreadyExists = errors.New("already exists")
	// ErrInvalidArgument - нарушены ограничения запроса (тип/размер/ключ).
	ErrInvalidArgument = errors.New("invalid argument")
)
