package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/mail"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/pribylovaa/go-group-fitness/internal/models"
	"github.com/pribylovaa/go-group-fitness/internal/storage"
	"github.com/pribylovaa/go-group-fitness/pkg/log"
	"github.com/pribylovaa/go-group-fitness/pkg/redact"
	"golang.org/x/crypto/bcrypt"
)

const maxNameLen = 255

// SignUp создаёт неподтверждённого пользователя и отправляет код подтверждения.
// Токены не выдаются: вход возможен только после ConfirmSignUp.
func (s *Service) SignUp(ctx context.Context, email, password, name string) (_ *models.User, err error) {
	const op = "service.auth.SignUp"
	defer func() { observe("signup", err) }()

	normEmail, err := validateEmail(email)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := validatePassword(password); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	name = strings.TrimSpace(name)
	if utf8.RuneCountInString(name) > maxNameLen {
		name = string([]rune(name)[:maxNameLen])
	}

	_, err = s.storage.UserByEmail(ctx, normEmail)
	if err == nil {
		return nil, fmt.Errorf("%s: %w", op, ErrEmailTaken)
	}
	if !errors.Is(err, storage.ErrNotFound) {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	hashed, err := hashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	now := s.now()
	user := &models.User{
		ID:           uuid.New(),
		Email:        normEmail,
		Name:         name,
		PasswordHash: hashed,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.storage.SaveUser(ctx, user); err != nil {
		if errors.Is(err, storage.ErrAlreadyExists) {
			return nil, fmt.Errorf("%s: %w", op, ErrEmailTaken)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := s.issueCode(ctx, user, models.PurposeSignup); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	log.From(ctx).Info("user_signed_up",
		slog.String("user_id", user.ID.String()),
		slog.String("email", redact.Email(user.Email)),
	)

	return user, nil
}

// ConfirmSignUp проверяет код и помечает e-mail подтверждённым.
func (s *Service) ConfirmSignUp(ctx context.Context, email, code string) (err error) {
	const op = "service.auth.ConfirmSignUp"
	defer func() { observe("confirm_signup", err) }()

	user, err := s.userForCode(ctx, email)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if user.EmailVerified {
		return fmt.Errorf("%s: %w", op, ErrAlreadyConfirmed)
	}

	if err := s.verifyCode(ctx, user, models.PurposeSignup, code); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := s.storage.MarkEmailVerified(ctx, user.ID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	log.From(ctx).Info("email_confirmed", slog.String("user_id", user.ID.String()))

	return nil
}

// ResendCode выпускает новый код подтверждения регистрации.
// Для неизвестного e-mail молча завершается успехом.
func (s *Service) ResendCode(ctx context.Context, email string) (err error) {
	const op = "service.auth.ResendCode"
	defer func() { observe("resend_code", err) }()

	normEmail, err := validateEmail(email)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	user, err := s.storage.UserByEmail(ctx, normEmail)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			log.From(ctx).Debug("resend_code_unknown_email", slog.String("email", redact.Email(normEmail)))
			return nil
		}

		return fmt.Errorf("%s: %w", op, err)
	}

	if user.EmailVerified {
		return fmt.Errorf("%s: %w", op, ErrAlreadyConfirmed)
	}

	if err := s.issueCode(ctx, user, models.PurposeSignup); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// SignIn выполняет вход по e-mail и паролю.
func (s *Service) SignIn(ctx context.Context, email, password string) (_ *models.TokenPair, err error) {
	const op = "service.auth.SignIn"
	defer func() { observe("signin", err) }()

	normEmail, err := validateEmail(email)
	if err != nil || password == "" {
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
	}

	user, err := s.storage.UserByEmail(ctx, normEmail)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if !checkPassword(user.PasswordHash, password) {
		log.From(ctx).Warn("signin_bad_password", slog.String("user_id", user.ID.String()))
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
	}

	if !user.EmailVerified {
		return nil, fmt.Errorf("%s: %w", op, ErrEmailNotConfirmed)
	}

	pair, err := s.issueTokenPair(ctx, user, "")
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return pair, nil
}

// Refresh обменивает refresh-токен на новую пару; старый токен отзывается.
func (s *Service) Refresh(ctx context.Context, refreshToken string) (_ *models.TokenPair, err error) {
	const op = "service.auth.Refresh"
	defer func() { observe("refresh", err) }()

	if refreshToken == "" {
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidToken)
	}

	token, err := s.validateRefreshToken(ctx, refreshToken)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	user, err := s.storage.UserByID(ctx, token.UserID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", op, ErrInvalidToken)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	pair, err := s.issueTokenPair(ctx, user, hashToken(refreshToken))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return pair, nil
}

// SignOut отзывает refresh-токен. Идемпотентна: неизвестный или уже
// отозванный токен не считается ошибкой.
func (s *Service) SignOut(ctx context.Context, refreshToken string) (err error) {
	const op = "service.auth.SignOut"
	defer func() { observe("signout", err) }()

	if refreshToken == "" {
		return nil
	}

	hash := hashToken(refreshToken)

	if _, err := s.storage.RevokeRefreshToken(ctx, hash); err != nil && !errors.Is(err, storage.ErrNotFound) {
		return fmt.Errorf("%s: %w", op, err)
	}

	s.cacheMarkRevoked(ctx, hash)

	return nil
}

// Me возвращает пользователя по ID из access-токена.
func (s *Service) Me(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	const op = "service.auth.Me"

	user, err := s.storage.UserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", op, ErrUserNotFound)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return user, nil
}

// ForgotPassword отправляет код сброса пароля.
// Для неизвестного e-mail завершается успехом, не раскрывая факт отсутствия.
func (s *Service) ForgotPassword(ctx context.Context, email string) (err error) {
	const op = "service.auth.ForgotPassword"
	defer func() { observe("forgot_password", err) }()

	normEmail, err := validateEmail(email)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	user, err := s.storage.UserByEmail(ctx, normEmail)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			log.From(ctx).Debug("forgot_password_unknown_email", slog.String("email", redact.Email(normEmail)))
			return nil
		}

		return fmt.Errorf("%s: %w", op, err)
	}

	if err := s.issueCode(ctx, user, models.PurposePasswordReset); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// ResetPassword меняет пароль по коду и отзывает все refresh-токены пользователя.
func (s *Service) ResetPassword(ctx context.Context, email, code, newPassword string) (err error) {
	const op = "service.auth.ResetPassword"
	defer func() { observe("reset_password", err) }()

	if err := validatePassword(newPassword); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	user, err := s.userForCode(ctx, email)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := s.verifyCode(ctx, user, models.PurposePasswordReset, code); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	hashed, err := hashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := s.storage.UpdatePassword(ctx, user.ID, hashed); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	// Код пришёл на почту, значит адрес подтверждён.
	if !user.EmailVerified {
		if err := s.storage.MarkEmailVerified(ctx, user.ID); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
	}

	n, err := s.storage.RevokeUserTokens(ctx, user.ID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if s.rcache != nil {
		if err := s.rcache.MarkUserRevoked(ctx, user.ID); err != nil {
			log.From(ctx).Warn("refresh_cache_revoke_user_failed", slog.String("err", err.Error()))
		}
	}

	log.From(ctx).Info("password_reset",
		slog.String("user_id", user.ID.String()),
		slog.Int64("revoked_tokens", n),
	)

	return nil
}

// userForCode находит пользователя для операций с кодом.
// Неизвестный e-mail неотличим от неверного кода.
func (s *Service) userForCode(ctx context.Context, email string) (*models.User, error) {
	normEmail, err := validateEmail(email)
	if err != nil {
		return nil, err
	}

	user, err := s.storage.UserByEmail(ctx, normEmail)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrInvalidCode
		}

		return nil, err
	}

	return user, nil
}

func hashPassword(password string) (string, error) {
	const op = "service.auth.hashPassword"

	b, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	return string(b), nil
}

func checkPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// validateEmail проверяет формат и приводит адрес к нижнему регистру.
func validateEmail(raw string) (string, error) {
	email := strings.TrimSpace(raw)
	if email == "" {
		return "", ErrInvalidEmail
	}

	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return "", ErrInvalidEmail
	}

	return strings.ToLower(email), nil
}

// validatePassword: длина >= 8, хотя бы одна строчная, заглавная, цифра и спецсимвол.
func validatePassword(pw string) error {
	if pw == "" {
		return ErrEmptyPassword
	}

	if utf8.RuneCountInString(pw) < 8 {
		return ErrWeakPassword
	}

	var hasLower, hasUpper, hasDigit, hasSpecial bool
	for _, r := range pw {
		switch {
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsDigit(r):
			hasDigit = true
		case unicode.IsPunct(r) || unicode.IsSymbol(r):
			hasSpecial = true
		}
	}

	if !(hasLower && hasUpper && hasDigit && hasSpecial) {
		return ErrWeakPassword
	}

	return nil
}
