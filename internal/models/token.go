package models

import (
	"time"

	"github.com/google/uuid"
)

// TokenPair - пара токенов, выдаваемая при входе и обновлении.
//   - AccessToken - короткоживущий JWT;
//   - RefreshToken - случайный секрет, на сервере хранится только его хэш;
//   - AccessExpiresAt - момент истечения access-токена (UTC).
type TokenPair struct {
	AccessToken     string
	RefreshToken    string
	AccessExpiresAt time.Time
}

// RefreshToken - запись о выданном refresh-токене.
type RefreshToken struct {
	RefreshTokenHash string
	UserID           uuid.UUID
	CreatedAt        time.Time
	ExpiresAt        time.Time
	Revoked          bool
}
