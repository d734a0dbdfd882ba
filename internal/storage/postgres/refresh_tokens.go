package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/pribylovaa/go-group-fitness/internal/models"
	"github.com/pribylovaa/go-group-fitness/internal/storage"
)

const refreshColumns = `token_hash, user_id, created_at, expires_at, revoked`

// SaveRefreshToken сохраняет выданный refresh-токен (только хэш).
func (s *Storage) SaveRefreshToken(ctx context.Context, token *models.RefreshToken) error {
	const op = "storage.postgres.SaveRefreshToken"

	_, err := s.db.Exec(ctx,
		`INSERT INTO refresh_tokens(`+refreshColumns+`) VALUES ($1, $2, $3, $4, $5)`,
		token.RefreshTokenHash, token.UserID, token.CreatedAt.UTC(), token.ExpiresAt.UTC(), token.Revoked,
	)
	if err != nil {
		return fmt.Errorf("%s: %w", op, mapError(err))
	}

	return nil
}

// RefreshTokenByHash возвращает запись токена по хэшу.
func (s *Storage) RefreshTokenByHash(ctx context.Context, hash string) (*models.RefreshToken, error) {
	const op = "storage.postgres.RefreshTokenByHash"

	row := s.db.QueryRow(ctx, `SELECT `+refreshColumns+` FROM refresh_tokens WHERE token_hash = $1`, hash)

	var t models.RefreshToken
	if err := row.Scan(&t.RefreshTokenHash, &t.UserID, &t.CreatedAt, &t.ExpiresAt, &t.Revoked); err != nil {
		return nil, fmt.Errorf("%s: %w", op, mapError(err))
	}

	return &t, nil
}

// RevokeRefreshToken помечает токен отозванным.
// true - отозван этим вызовом; false - был отозван раньше (повторное
// использование при ротации); storage.ErrNotFound - токена нет.
// Одна команда, чтобы две параллельные ротации не получили true обе.
func (s *Storage) RevokeRefreshToken(ctx context.Context, hash string) (bool, error) {
	const op = "storage.postgres.RevokeRefreshToken"

	const q = `
		WITH found AS (
			SELECT 1 FROM refresh_tokens WHERE token_hash = $1
		), revoked AS (
			UPDATE refresh_tokens SET revoked = TRUE
			WHERE token_hash = $1 AND revoked = FALSE
			RETURNING 1
		)
		SELECT EXISTS (SELECT 1 FROM found), EXISTS (SELECT 1 FROM revoked)
	`

	var exists, changed bool
	if err := s.db.QueryRow(ctx, q, hash).Scan(&exists, &changed); err != nil {
		return false, fmt.Errorf("%s: %w", op, mapError(err))
	}
	if !exists {
		return false, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}

	return changed, nil
}

// RevokeUserTokens отзывает все активные токены пользователя (сброс пароля).
func (s *Storage) RevokeUserTokens(ctx context.Context, userID uuid.UUID) (int64, error) {
	const op = "storage.postgres.RevokeUserTokens"

	tag, err := s.db.Exec(ctx,
		`UPDATE refresh_tokens SET revoked = TRUE WHERE user_id = $1 AND revoked = FALSE`, userID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, mapError(err))
	}

	return tag.RowsAffected(), nil
}

// DeleteExpiredTokens удаляет токены с истёкшим сроком; вызывается janitor.
func (s *Storage) DeleteExpiredTokens(ctx context.Context, now time.Time) (int64, error) {
	const op = "storage.postgres.DeleteExpiredTokens"

	tag, err := s.db.Exec(ctx, `DELETE FROM refresh_tokens WHERE expires_at <= $1`, now.UTC())
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, mapError(err))
	}

	return tag.RowsAffected(), nil
}
