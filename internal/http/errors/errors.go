// errors стандартизирует ответы об ошибках HTTP-слоя.
// На вход он принимает ошибку сервисного слоя (sentinel-ошибки пакетов
// service/auth, service/users, service/events) или локальную ошибку
// хендлера (*Error), а на выход даёт:
//   - корректный HTTP-статус;
//   - краткое безопасное detail без утечки деталей;
//   - стабильный машиночитаемый code.
//
// Тексты detail показываются клиентом пользователю как есть.
package errors

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"net/http"

	"github.com/pribylovaa/go-group-fitness/internal/service/auth"
	"github.com/pribylovaa/go-group-fitness/internal/service/events"
	"github.com/pribylovaa/go-group-fitness/internal/service/users"
	"github.com/pribylovaa/go-group-fitness/pkg/api"
)

// Нестандартный код часто используемый для "клиент закрыл соединение".
const StatusClientClosedRequest = 499

// Error - ошибка, сформированная самим HTTP-слоем (битый JSON, нет токена и т.п.).
type Error struct {
	Status int
	Code   string
	Detail string
}

func (e *Error) Error() string { return e.Detail }

// BadRequest - 400/invalid_argument с заданным detail.
func BadRequest(detail string) *Error {
	return &Error{Status: http.StatusBadRequest, Code: "invalid_argument", Detail: detail}
}

// Unauthorized - 401/unauthenticated с заданным detail.
func Unauthorized(detail string) *Error {
	return &Error{Status: http.StatusUnauthorized, Code: "unauthenticated", Detail: detail}
}

type mapping struct {
	target error
	status int
	code   string
	detail string
}

// table - порядок важен: первое совпадение по errors.Is побеждает.
var table = []mapping{
	// auth
	{auth.ErrEmailTaken, http.StatusBadRequest, "email_taken", "User with this email already exists"},
	{auth.ErrWeakPassword, http.StatusBadRequest, "weak_password", "Password does not meet requirements"},
	{auth.ErrEmptyPassword, http.StatusBadRequest, "empty_password", "Password must not be empty"},
	{auth.ErrInvalidEmail, http.StatusBadRequest, "invalid_email", "Invalid email address"},
	{auth.ErrInvalidCode, http.StatusBadRequest, "invalid_code", "Invalid confirmation code"},
	{auth.ErrCodeExpired, http.StatusBadRequest, "code_expired", "Confirmation code has expired"},
	{auth.ErrTooManyAttempts, http.StatusTooManyRequests, "too_many_attempts", "Too many attempts, request a new code"},
	{auth.ErrAlreadyConfirmed, http.StatusBadRequest, "already_confirmed", "User is already confirmed"},
	{auth.ErrInvalidCredentials, http.StatusUnauthorized, "invalid_credentials", "Invalid email or password"},
	{auth.ErrEmailNotConfirmed, http.StatusForbidden, "email_not_confirmed", "Please confirm your email before signing in"},
	{auth.ErrTokenExpired, http.StatusUnauthorized, "token_expired", "Token has expired"},
	{auth.ErrTokenRevoked, http.StatusUnauthorized, "token_revoked", "Invalid token"},
	{auth.ErrInvalidToken, http.StatusUnauthorized, "invalid_token", "Invalid token"},
	{auth.ErrUserNotFound, http.StatusNotFound, "user_not_found", "User not found"},

	// users
	{users.ErrNotFound, http.StatusNotFound, "profile_not_found", "User profile not found"},
	{users.ErrInvalidArgument, http.StatusBadRequest, "invalid_argument", "Invalid argument"},

	// events
	{events.ErrNotFound, http.StatusNotFound, "event_not_found", "Group event not found"},
	{events.ErrProfileRequired, http.StatusNotFound, "profile_not_found", "User profile not found"},
	{events.ErrPermissionDenied, http.StatusForbidden, "permission_denied", "Only the creator can modify this event"},
	{events.ErrUnavailable, http.StatusServiceUnavailable, "unavailable", "GPS uploads are not available"},
	{events.ErrInvalidArgument, http.StatusBadRequest, "invalid_argument", "Invalid argument"},

	// контекст
	{context.DeadlineExceeded, http.StatusGatewayTimeout, "deadline_exceeded", "deadline exceeded"},
	{context.Canceled, StatusClientClosedRequest, "canceled", "canceled"},
}

// ToHTTP конвертирует ошибку в HTTP-статус и тело ответа.
//
// Поведение:
//   - err == nil - программная ошибка вызова: 500/internal, чтобы не послать
//     "200 OK" с телом ошибки;
//   - *Error - статус и тексты берутся из неё;
//   - известная sentinel-ошибка - по таблице;
//   - прочее - 500/internal без утечки деталей.
func ToHTTP(err error) (int, api.ErrorResponse) {
	if err == nil {
		return internal()
	}

	var he *Error
	if stderrors.As(err, &he) {
		return he.Status, api.ErrorResponse{Detail: he.Detail, Code: he.Code}
	}

	for _, m := range table {
		if stderrors.Is(err, m.target) {
			return m.status, api.ErrorResponse{Detail: m.detail, Code: m.code}
		}
	}

	return internal()
}

// WriteError - хелпер для HTTP-хендлеров.
// Пишет статус/тело, добавляет request_id из заголовка, если он есть.
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	status, resp := ToHTTP(err)

	if rid := r.Header.Get("X-Request-Id"); rid != "" {
		resp.RequestID = rid
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(resp)
}

func internal() (int, api.ErrorResponse) {
	return http.StatusInternalServerError, api.ErrorResponse{Detail: "internal error", Code: "internal"}
}
