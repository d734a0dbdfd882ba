package auth

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"math/big"
	"strings"

	"github.com/pribylovaa/go-group-fitness/internal/models"
	"github.com/pribylovaa/go-group-fitness/internal/storage"
	"github.com/pribylovaa/go-group-fitness/pkg/log"
)

const codeDigits = 6

// generateCode возвращает случайный 6-значный код с ведущими нулями.
func generateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1_000_000))
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("%0*d", codeDigits, n.Int64()), nil
}

func hashCode(code string) string {
	sum := sha256.Sum256([]byte(code))
	return hex.EncodeToString(sum[:])
}

// issueCode создаёт (или заменяет) код для purpose и отправляет его на почту.
func (s *Service) issueCode(ctx context.Context, user *models.User, purpose models.CodePurpose) error {
	const op = "service.auth.issueCode"

	code, err := generateCode()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	now := s.now()
	rec := &models.ConfirmationCode{
		UserID:    user.ID,
		Purpose:   purpose,
		CodeHash:  hashCode(code),
		ExpiresAt: now.Add(s.cfg.CodeTTL),
		CreatedAt: now,
	}

	if err := s.storage.SaveCode(ctx, rec); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := s.mailer.SendCode(ctx, user.Email, purpose, code); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// verifyCode сверяет код и при успехе гасит его.
// Неверный ввод увеличивает счётчик попыток; по достижении лимита код удаляется.
func (s *Service) verifyCode(ctx context.Context, user *models.User, purpose models.CodePurpose, code string) error {
	const op = "service.auth.verifyCode"

	lg := log.From(ctx).With(
		slog.String("op", op),
		slog.String("user_id", user.ID.String()),
		slog.String("purpose", string(purpose)),
	)

	rec, err := s.storage.CodeByUser(ctx, user.ID, purpose)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return ErrInvalidCode
		}

		return fmt.Errorf("%s: %w", op, err)
	}

	if s.now().After(rec.ExpiresAt) {
		if err := s.storage.DeleteCode(ctx, user.ID, purpose); err != nil {
			lg.Warn("code_delete_failed", slog.String("err", err.Error()))
		}

		return ErrCodeExpired
	}

	if rec.Attempts >= s.cfg.CodeMaxAttempts {
		return ErrTooManyAttempts
	}

	given := hashCode(strings.TrimSpace(code))
	if subtle.ConstantTimeCompare([]byte(given), []byte(rec.CodeHash)) != 1 {
		attempts, err := s.storage.IncrementCodeAttempts(ctx, user.ID, purpose)
		if err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}

		lg.Warn("code_mismatch", slog.Int("attempts", attempts))

		if attempts >= s.cfg.CodeMaxAttempts {
			if err := s.storage.DeleteCode(ctx, user.ID, purpose); err != nil {
				lg.Warn("code_delete_failed", slog.String("err", err.Error()))
			}
		}

		return ErrInvalidCode
	}

	if err := s.storage.DeleteCode(ctx, user.ID, purpose); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}
