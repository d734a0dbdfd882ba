// auth содержит бизнес-логику аутентификации:
// регистрацию с подтверждением e-mail одноразовым кодом, вход,
// ротацию refresh-токенов, сброс пароля и выход.
//
// Service не хранит состояние запроса и безопасен для конкурентного
// использования при потокобезопасных storage/mailer/cache.
// Ошибки - сентинелы ниже; HTTP-слой маппит их в статусы и сообщения.
package auth

import (
	"errors"
	"time"

	"github.com/pribylovaa/go-group-fitness/internal/cache"
	"github.com/pribylovaa/go-group-fitness/internal/config"
	"github.com/pribylovaa/go-group-fitness/internal/mailer"
	"github.com/pribylovaa/go-group-fitness/internal/storage"
)

var (
	// ErrInvalidCredentials - неверная пара e-mail/пароль или пользователь не найден.
	// HTTP 401.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrEmailNotConfirmed - пароль верный, но e-mail ещё не подтверждён.
	// HTTP 403.
	ErrEmailNotConfirmed = errors.New("email not confirmed")

	// ErrAlreadyConfirmed - e-mail уже подтверждён. HTTP 400.
	ErrAlreadyConfirmed = errors.New("email already confirmed")

	// ErrEmailTaken - e-mail уже занят. HTTP 400.
	ErrEmailTaken = errors.New("email already taken")

	// ErrInvalidEmail - некорректный формат e-mail. HTTP 400.
	ErrInvalidEmail = errors.New("invalid email format")

	// ErrWeakPassword - пароль не удовлетворяет политике сложности. HTTP 400.
	ErrWeakPassword = errors.New("password is too weak")

	// ErrEmptyPassword - пароль пустой. HTTP 400.
	ErrEmptyPassword = errors.New("password is empty")

	// ErrInvalidCode - код не совпал или для пользователя нет активного кода. HTTP 400.
	ErrInvalidCode = errors.New("invalid confirmation code")

	// ErrCodeExpired - срок действия кода истёк. HTTP 400.
	ErrCodeExpired = errors.New("confirmation code expired")

	// ErrTooManyAttempts - исчерпан лимит попыток ввода кода. HTTP 429.
	ErrTooManyAttempts = errors.New("too many attempts")

	// ErrInvalidToken - токен некорректен по формату/подписи или неизвестен. HTTP 401.
	ErrInvalidToken = errors.New("invalid token")

	// ErrTokenExpired - срок действия токена истёк. HTTP 401.
	ErrTokenExpired = errors.New("token expired")

	// ErrTokenRevoked - токен отозван (выход, ротация, сброс пароля). HTTP 401.
	ErrTokenRevoked = errors.New("token revoked")

	// ErrUserNotFound - пользователь из валидного токена не найден. HTTP 404.
	ErrUserNotFound = errors.New("user not found")

	// ErrRefreshTokenCollision - исчерпаны попытки сгенерировать уникальный refresh-токен.
	// HTTP 500.
	ErrRefreshTokenCollision = errors.New("refresh token collision")
)

// Service - бизнес-логика аутентификации.
type Service struct {
	storage storage.AuthStorage
	mailer  mailer.Sender
	cfg     config.AuthConfig
	rcache  cache.RefreshCache // nil, если Redis не сконфигурирован
	now     func() time.Time
}

// New создаёт Service.
func New(st storage.AuthStorage, sender mailer.Sender, cfg config.AuthConfig) *Service {
	if cfg.CodeMaxAttempts <= 0 {
		cfg.CodeMaxAttempts = 5
	}

	if cfg.CodeTTL <= 0 {
		cfg.CodeTTL = 24 * time.Hour
	}

	return &Service{
		storage: st,
		mailer:  sender,
		cfg:     cfg,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// SetRefreshCache подключает кэш refresh-токенов (опционально).
func (s *Service) SetRefreshCache(c cache.RefreshCache) {
	s.rcache = c
}

// AccessTokenTTL - время жизни access-токена (для expires_in в ответе).
func (s *Service) AccessTokenTTL() time.Duration {
	return s.cfg.AccessTokenTTL
}
