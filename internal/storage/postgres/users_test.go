package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/pribylovaa/go-group-fitness/internal/models"
	"github.com/pribylovaa/go-group-fitness/internal/storage"
	"github.com/stretchr/testify/require"
)

func TestIntegration_Users_SaveAndLookup_CaseInsensitiveEmail(t *testing.T) {
	st := startPostgres(t)

	ctx := context.Background()
	u := newUser(t, st, "Runner@Example.Com")

	byEmail, err := st.UserByEmail(ctx, "runner@example.com")
	require.NoError(t, err)
	require.Equal(t, u.ID, byEmail.ID)
	require.False(t, byEmail.EmailVerified)

	byID, err := st.UserByID(ctx, u.ID)
	require.NoError(t, err)
	require.Equal(t, "Runner", byID.Name)

	dup := &models.User{ID: uuid.New(), Email: "RUNNER@example.com", PasswordHash: "x", CreatedAt: time.Now(), UpdatedAt: time.Now()}
	err = st.SaveUser(ctx, dup)
	require.ErrorIs(t, err, storage.ErrAlreadyExists)

	_, err = st.UserByID(ctx, uuid.New())
	require.ErrorIs(t, err, storage.ErrNotFound)
}

func TestIntegration_Users_VerifyAndUpdatePassword(t *testing.T) {
	st := startPostgres(t)

	ctx := context.Background()
	u := newUser(t, st, "verify@example.com")

	require.NoError(t, st.MarkEmailVerified(ctx, u.ID))
	require.NoError(t, st.UpdatePassword(ctx, u.ID, "new-hash"))

	got, err := st.UserByID(ctx, u.ID)
	require.NoError(t, err)
	require.True(t, got.EmailVerified)
	require.Equal(t, "new-hash", got.PasswordHash)

	require.ErrorIs(t, st.MarkEmailVerified(ctx, uuid.New()), storage.ErrNotFound)
	require.ErrorIs(t, st.UpdatePassword(ctx, uuid.New(), "x"), storage.ErrNotFound)
}

func TestIntegration_RefreshTokens_RevokeLifecycle(t *testing.T) {
	st := startPostgres(t)

	ctx := context.Background()
	u := newUser(t, st, "tokens@example.com")
	now := time.Now().UTC()

	tok := &models.RefreshToken{RefreshTokenHash: "h1", UserID: u.ID, CreatedAt: now, ExpiresAt: now.Add(time.Hour)}
	require.NoError(t, st.SaveRefreshToken(ctx, tok))
	require.ErrorIs(t, st.SaveRefreshToken(ctx, tok), storage.ErrAlreadyExists)

	got, err := st.RefreshTokenByHash(ctx, "h1")
	require.NoError(t, err)
	require.Equal(t, u.ID, got.UserID)

	revoked, err := st.RevokeRefreshToken(ctx, "h1")
	require.NoError(t, err)
	require.True(t, revoked)

	revoked, err = st.RevokeRefreshToken(ctx, "h1")
	require.NoError(t, err)
	require.False(t, revoked)

	_, err = st.RevokeRefreshToken(ctx, "missing")
	require.ErrorIs(t, err, storage.ErrNotFound)
}

func TestIntegration_RefreshTokens_RevokeUserAndDeleteExpired(t *testing.T) {
	st := startPostgres(t)

	ctx := context.Background()
	u := newUser(t, st, "bulk@example.com")
	now := time.Now().UTC()

	require.NoError(t, st.SaveRefreshToken(ctx, &models.RefreshToken{RefreshTokenHash: "a", UserID: u.ID, CreatedAt: now, ExpiresAt: now.Add(time.Hour)}))
	require.NoError(t, st.SaveRefreshToken(ctx, &models.RefreshToken{RefreshTokenHash: "b", UserID: u.ID, CreatedAt: now, ExpiresAt: now.Add(-time.Hour)}))

	n, err := st.RevokeUserTokens(ctx, u.ID)
	require.NoError(t, err)
	require.EqualValues(t, 2, n)

	deleted, err := st.DeleteExpiredTokens(ctx, now)
	require.NoError(t, err)
	require.EqualValues(t, 1, deleted)

	_, err = st.RefreshTokenByHash(ctx, "b")
	require.ErrorIs(t, err, storage.ErrNotFound)
}

func TestIntegration_Codes_ReplaceAttemptsDelete(t *testing.T) {
	st := startPostgres(t)

	ctx := context.Background()
	u := newUser(t, st, "codes@example.com")
	now := time.Now().UTC()

	code := &models.ConfirmationCode{UserID: u.ID, Purpose: models.PurposeSignup, CodeHash: "c1", ExpiresAt: now.Add(time.Hour), CreatedAt: now}
	require.NoError(t, st.SaveCode(ctx, code))

	attempts, err := st.IncrementCodeAttempts(ctx, u.ID, models.PurposeSignup)
	require.NoError(t, err)
	require.Equal(t, 1, attempts)

	// Повторная выдача заменяет хэш и сбрасывает попытки.
	code.CodeHash = "c2"
	require.NoError(t, st.SaveCode(ctx, code))

	got, err := st.CodeByUser(ctx, u.ID, models.PurposeSignup)
	require.NoError(t, err)
	require.Equal(t, "c2", got.CodeHash)
	require.Equal(t, 0, got.Attempts)
	require.Equal(t, models.PurposeSignup, got.Purpose)

	_, err = st.CodeByUser(ctx, u.ID, models.PurposePasswordReset)
	require.ErrorIs(t, err, storage.ErrNotFound)

	require.NoError(t, st.DeleteCode(ctx, u.ID, models.PurposeSignup))
	require.ErrorIs(t, st.DeleteCode(ctx, u.ID, models.PurposeSignup), storage.ErrNotFound)
}
