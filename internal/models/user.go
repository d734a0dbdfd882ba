// models содержит доменные сущности сервера.
// Эти типы используются слоями бизнес-логики, хранилища и HTTP.
package models

import (
	"time"

	"github.com/google/uuid"
)

// User - учётная запись. EmailVerified выставляется после подтверждения кода.
type User struct {
	ID            uuid.UUID
	Email         string
	Name          string
	PasswordHash  string
	EmailVerified bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
