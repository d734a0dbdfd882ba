package api

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorKind различает ошибки с телом {"detail": ...} и без него.
type ErrorKind int

const (
	// KindGeneric - тела с detail нет (или транспортная ошибка, Status == 0).
	KindGeneric ErrorKind = iota
	// KindStructured - сообщение взято из поля detail ответа.
	KindStructured
)

func (k ErrorKind) String() string {
	if k == KindStructured {
		return "structured"
	}
	return "generic"
}

// APIError - любой неуспешный ответ бэкенда или сбой транспорта.
type APIError struct {
	Kind      ErrorKind
	Status    int    // 0 - ответа не было
	Message   string // для показа пользователю
	Code      string // машинный код из тела, если есть
	RequestID string
	Err       error // причина транспортной ошибки
}

func (e *APIError) Error() string { return e.Message }

func (e *APIError) Unwrap() error { return e.Err }

func structuredError(status int, detail, code, requestID string) *APIError {
	return &APIError{Kind: KindStructured, Status: status, Message: detail, Code: code, RequestID: requestID}
}

func genericError(status int) *APIError {
	return &APIError{Kind: KindGeneric, Status: status, Message: fmt.Sprintf("HTTP error, status=%d", status)}
}

func transportError(err error) *APIError {
	return &APIError{Kind: KindGeneric, Message: fmt.Sprintf("request failed: %v", err), Err: err}
}

// StatusOf возвращает HTTP-статус из *APIError (0, если его нет).
func StatusOf(err error) int {
	var ae *APIError
	if errors.As(err, &ae) {
		return ae.Status
	}
	return 0
}

// IsNotFound - бэкенд ответил 404.
func IsNotFound(err error) bool {
	return StatusOf(err) == http.StatusNotFound
}

// CodeProfileNotFound - код ответа бэкенда, когда у пользователя нет профиля.
const CodeProfileNotFound = "profile_not_found"

// IsProfileNotFound - бэкенд подтвердил, что профиля нет: 404 с кодом
// profile_not_found. 404 неизвестного маршрута сюда не попадает.
func IsProfileNotFound(err error) bool {
	var ae *APIError
	if !errors.As(err, &ae) {
		return false
	}
	return ae.Status == http.StatusNotFound && ae.Code == CodeProfileNotFound
}

// IsUnauthorized - бэкенд ответил 401.
func IsUnauthorized(err error) bool {
	return StatusOf(err) == http.StatusUnauthorized
}
