package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/pribylovaa/go-group-fitness/internal/models"
	"github.com/pribylovaa/go-group-fitness/internal/storage"
)

// SaveCode создаёт или заменяет код для пары (user_id, purpose).
// Повторная выдача обнуляет счётчик попыток.
func (s *Storage) SaveCode(ctx context.Context, code *models.ConfirmationCode) error {
	const op = "storage.postgres.SaveCode"

	query := `
		INSERT INTO confirmation_codes(user_id, purpose, code_hash, attempts, expires_at, created_at)
		VALUES ($1, $2, $3, 0, $4, $5)
		ON CONFLICT (user_id, purpose) DO UPDATE
		SET code_hash = EXCLUDED.code_hash,
		    attempts = 0,
		    expires_at = EXCLUDED.expires_at,
		    created_at = EXCLUDED.created_at
	`

	_, err := s.db.Exec(ctx, query,
		code.UserID,
		string(code.Purpose),
		code.CodeHash,
		code.ExpiresAt,
		code.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("%s: %w", op, mapError(err))
	}

	return nil
}

// CodeByUser возвращает код пользователя для purpose.
func (s *Storage) CodeByUser(ctx context.Context, userID uuid.UUID, purpose models.CodePurpose) (*models.ConfirmationCode, error) {
	const op = "storage.postgres.CodeByUser"

	query := `
		SELECT user_id, purpose, code_hash, attempts, expires_at, created_at
		FROM confirmation_codes
		WHERE user_id = $1 AND purpose = $2
	`

	var (
		code models.ConfirmationCode
		p    string
	)
	err := s.db.QueryRow(ctx, query, userID, string(purpose)).Scan(
		&code.UserID,
		&p,
		&code.CodeHash,
		&code.Attempts,
		&code.ExpiresAt,
		&code.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, mapError(err))
	}
	code.Purpose = models.CodePurpose(p)

	return &code, nil
}

// IncrementCodeAttempts увеличивает счётчик неудачных попыток.
func (s *Storage) IncrementCodeAttempts(ctx context.Context, userID uuid.UUID, purpose models.CodePurpose) (int, error) {
	const op = "storage.postgres.IncrementCodeAttempts"

	query := `
		UPDATE confirmation_codes
		SET attempts = attempts + 1
		WHERE user_id = $1 AND purpose = $2
		RETURNING attempts
	`

	var attempts int
	if err := s.db.QueryRow(ctx, query, userID, string(purpose)).Scan(&attempts); err != nil {
		return 0, fmt.Errorf("%s: %w", op, mapError(err))
	}

	return attempts, nil
}

// DeleteCode удаляет код.
func (s *Storage) DeleteCode(ctx context.Context, userID uuid.UUID, purpose models.CodePurpose) error {
	const op = "storage.postgres.DeleteCode"

	tag, err := s.db.Exec(ctx, `DELETE FROM confirmation_codes WHERE user_id = $1 AND purpose = $2`, userID, string(purpose))
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}

	return nil
}

// DeleteExpiredCodes удаляет просроченные коды.
func (s *Storage) DeleteExpiredCodes(ctx context.Context, now time.Time) (int64, error) {
	const op = "storage.postgres.DeleteExpiredCodes"

	tag, err := s.db.Exec(ctx, `DELETE FROM confirmation_codes WHERE expires_at <= $1`, now)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	return tag.RowsAffected(), nil
}
