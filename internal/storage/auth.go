package storage

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pribylovaa/go-group-fitness/internal/models"
)

// UserStorage выполняет операции над пользователями.
type UserStorage interface {
	// SaveUser создаёт нового пользователя.
	SaveUser(ctx context.Context, user *models.User) error
	// UserByEmail находит пользователя по email (регистронезависимо).
	UserByEmail(ctx context.Context, email string) (*models.User, error)
	// UserByID находит пользователя по ID.
	UserByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	// MarkEmailVerified выставляет email_verified = true.
	MarkEmailVerified(ctx context.Context, id uuid.UUID) error
	// UpdatePassword заменяет хэш пароля.
	UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error
}

// RefreshTokenStorage выполняет операции над refresh-токенами.
type RefreshTokenStorage interface {
	// SaveRefreshToken сохраняет новый refresh-токен.
	SaveRefreshToken(ctx context.Context, token *models.RefreshToken) error
	// RefreshTokenByHash находит refresh-токен по его хэшу.
	RefreshTokenByHash(ctx context.Context, hash string) (*models.RefreshToken, error)
	// RevokeRefreshToken отзывает токен, если он ещё активен:
	// (true, nil) - отозван сейчас; (false, nil) - уже был отозван;
	// (false, ErrNotFound) - не найден.
	RevokeRefreshToken(ctx context.Context, hash string) (bool, error)
	// RevokeUserTokens отзывает все активные токены пользователя.
	RevokeUserTokens(ctx context.Context, userID uuid.UUID) (int64, error)
	// DeleteExpiredTokens удаляет просроченные токены.
	DeleteExpiredTokens(ctx context.Context, now time.Time) (int64, error)
}

// CodeStorage хранит одноразовые коды подтверждения.
type CodeStorage interface {
	// SaveCode создаёт или заменяет код для пары (user_id, purpose).
	SaveCode(ctx context.Context, code *models.ConfirmationCode) error
	// CodeByUser возвращает активный код пользователя для purpose.
	CodeByUser(ctx context.Context, userID uuid.UUID, purpose models.CodePurpose) (*models.ConfirmationCode, error)
	// IncrementCodeAttempts увеличивает счётчик неудачных попыток и возвращает новое значение.
	IncrementCodeAttempts(ctx context.Context, userID uuid.UUID, purpose models.CodePurpose) (int, error)
	// DeleteCode удаляет код (погашение).
	DeleteCode(ctx context.Context, userID uuid.UUID, purpose models.CodePurpose) error
	// DeleteExpiredCodes удаляет просроченные коды.
	DeleteExpiredCodes(ctx context.Context, now time.Time) (int64, error)
}

// AuthStorage - верхнеуровневый контракт хранилища auth-сервиса.
type AuthStorage interface {
	UserStorage
	RefreshTokenStorage
	CodeStorage
}
