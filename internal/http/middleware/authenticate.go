package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"
	apierrors "github.com/pribylovaa/go-group-fitness/internal/http/errors"
	logctx "github.com/pribylovaa/go-group-fitness/pkg/log"
)

// TokenValidator проверяет access-токен и возвращает идентичность владельца.
// Реализуется service/auth.Service.
type TokenValidator interface {
	ValidateAccessToken(ctx context.Context, token string) (uuid.UUID, string, error)
}

// Identity - аутентифицированный пользователь запроса.
type Identity struct {
	UserID uuid.UUID
	Email  string
}

type identityKey struct{}

// IdentityFrom возвращает Identity, положенную Authenticate.
func IdentityFrom(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityKey{}).(Identity)
	return id, ok
}

// WithIdentity кладёт Identity в контекст.
func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, id)
}

// Authenticate требует валидный "Authorization: Bearer <token>".
// Без токена или с невалидным токеном отвечает 401 и не вызывает next.
func Authenticate(v TokenValidator) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearerToken(r.Header.Get("Authorization"))
			if !ok {
				apierrors.WriteError(w, r, apierrors.Unauthorized("Not authenticated"))
				return
			}

			userID, email, err := v.ValidateAccessToken(r.Context(), token)
			if err != nil {
				logctx.From(r.Context()).Debug("access token rejected", slog.String("err", err.Error()))
				apierrors.WriteError(w, r, err)
				return
			}

			ctx := WithIdentity(r.Context(), Identity{UserID: userID, Email: email})
			ctx = logctx.With(ctx, slog.String("user_id", userID.String()))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func bearerToken(header string) (string, bool) {
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) || len(header) <= len(prefix) {
		return "", false
	}

	token := strings.TrimSpace(header[len(prefix):])
	return token, token != ""
}
