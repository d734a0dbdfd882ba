package models

import (
	"time"

	"github.com/google/uuid"
)

// CodePurpose - назначение одноразового кода.
type CodePurpose string

const (
	PurposeSignup        CodePurpose = "signup"
	PurposePasswordReset CodePurpose = "password_reset"
)

// ConfirmationCode - одноразовый код, доставленный по e-mail.
// Хранится только sha256-хэш; на пользователя и назначение - одна активная запись.
type ConfirmationCode struct {
	UserID    uuid.UUID
	Purpose   CodePurpose
	CodeHash  string
	Attempts  int
	ExpiresAt time.Time
	CreatedAt time.Time
}
