// users содержит бизнес-логику профилей:
// - профиль (чтение, идемпотентное автосоздание, частичный апдейт);
// - спортивные предпочтения (чтение, upsert);
// - онбординг - профиль и предпочтения одной транзакцией.
package users

import (
	"errors"

	"github.com/pribylovaa/go-group-fitness/internal/storage"
)

var (
	// ErrInvalidArgument - некорректные входные данные.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrNotFound - профиль или предпочтения не найдены.
	ErrNotFound = errors.New("not found")
	// ErrInternal - внутренняя ошибка сервиса.
	ErrInternal = errors.New("internal")
)

// Service - бизнес-логика профилей.
type Service struct {
	profiles storage.ProfilesStorage
}

func New(profiles storage.ProfilesStorage) *Service {
	return &Service{profiles: profiles}
}
