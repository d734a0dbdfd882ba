package errors

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/pribylovaa/go-group-fitness/internal/service/auth"
	"github.com/pribylovaa/go-group-fitness/internal/service/events"
	"github.com/pribylovaa/go-group-fitness/internal/service/users"
	"github.com/pribylovaa/go-group-fitness/pkg/api"
	"github.com/stretchr/testify/require"
)

func TestToHTTP_ServiceMapping(t *testing.T) {
	tcs := []struct {
		name       string
		in         error
		wantStatus int
		wantCode   string
	}{
		{"email_taken", auth.ErrEmailTaken, http.StatusBadRequest, "email_taken"},
		{"weak_password", auth.ErrWeakPassword, http.StatusBadRequest, "weak_password"},
		{"invalid_code", auth.ErrInvalidCode, http.StatusBadRequest, "invalid_code"},
		{"code_expired", auth.ErrCodeExpired, http.StatusBadRequest, "code_expired"},
		{"too_many_attempts", auth.ErrTooManyAttempts, http.StatusTooManyRequests, "too_many_attempts"},
		{"invalid_credentials", auth.ErrInvalidCredentials, http.StatusUnauthorized, "invalid_credentials"},
		{"not_confirmed", auth.ErrEmailNotConfirmed, http.StatusForbidden, "email_not_confirmed"},
		{"token_expired", auth.ErrTokenExpired, http.StatusUnauthorized, "token_expired"},
		{"token_revoked", auth.ErrTokenRevoked, http.StatusUnauthorized, "token_revoked"},
		{"user_not_found", auth.ErrUserNotFound, http.StatusNotFound, "user_not_found"},
		{"profile_not_found", users.ErrNotFound, http.StatusNotFound, "profile_not_found"},
		{"users_invalid", users.ErrInvalidArgument, http.StatusBadRequest, "invalid_argument"},
		{"event_not_found", events.ErrNotFound, http.StatusNotFound, "event_not_found"},
		{"profile_required", events.ErrProfileRequired, http.StatusNotFound, "profile_not_found"},
		{"perm_denied", events.ErrPermissionDenied, http.StatusForbidden, "permission_denied"},
		{"unavailable", events.ErrUnavailable, http.StatusServiceUnavailable, "unavailable"},
		{"deadline", context.DeadlineExceeded, http.StatusGatewayTimeout, "deadline_exceeded"},
		{"canceled", context.Canceled, StatusClientClosedRequest, "canceled"},
		{"unknown", fmt.Errorf("boom"), http.StatusInternalServerError, "internal"},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			gotStatus, resp := ToHTTP(fmt.Errorf("service/op: %w", tc.in))
			require.Equal(t, tc.wantStatus, gotStatus)
			require.Equal(t, tc.wantCode, resp.Code)
			require.NotEmpty(t, resp.Detail)
		})
	}
}

func TestToHTTP_DetailTexts(t *testing.T) {
	_, resp := ToHTTP(auth.ErrEmailNotConfirmed)
	require.Equal(t, "Please confirm your email before signing in", resp.Detail)

	_, resp = ToHTTP(users.ErrNotFound)
	require.Equal(t, "User profile not found", resp.Detail)

	_, resp = ToHTTP(auth.ErrInvalidCredentials)
	require.Equal(t, "Invalid email or password", resp.Detail)
}

func TestToHTTP_LocalError(t *testing.T) {
	gotStatus, resp := ToHTTP(BadRequest("invalid JSON body"))
	require.Equal(t, http.StatusBadRequest, gotStatus)
	require.Equal(t, "invalid_argument", resp.Code)
	require.Equal(t, "invalid JSON body", resp.Detail)

	gotStatus, resp = ToHTTP(Unauthorized("missing bearer token"))
	require.Equal(t, http.StatusUnauthorized, gotStatus)
	require.Equal(t, "unauthenticated", resp.Code)
}

func TestToHTTP_NilError_Returns500Internal(t *testing.T) {
	gotStatus, resp := ToHTTP(nil)
	require.Equal(t, http.StatusInternalServerError, gotStatus)
	require.Equal(t, "internal", resp.Code)
	require.Equal(t, "internal error", resp.Detail)
}

func TestWriteError_AddsRequestID(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/x", nil)
	r.Header.Set("X-Request-Id", "rid-1")
	w := httptest.NewRecorder()

	WriteError(w, r, auth.ErrInvalidToken)

	require.Equal(t, http.StatusUnauthorized, w.Code)
	require.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var got api.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	require.Equal(t, "invalid_token", got.Code)
	require.Equal(t, "rid-1", got.RequestID)
}
