package errors

import (
	"errors"
	"fmt"
)

// Kind классифицирует ошибку цикла опроса для логов и метрик.
type Kind string

const (
	KindWrongResponseCode Kind = "wrong_response_code"
	KindRequest           Kind = "request"
	KindDecode            Kind = "decode"
	KindValidation        Kind = "validation"
	KindNoNewStatuses     Kind = "no_new_statuses"
	KindUnknown           Kind = "unknown"
)

type ErrMissingTokens struct {
	Names []string
}

func (e *ErrMissingTokens) Error() string {
	return fmt.Sprintf("отсутствуют обязательные переменные окружения: %v", e.Names)
}

func (e *ErrMissingTokens) Is(target error) bool {
	_, ok := target.(*ErrMissingTokens)
	return ok
}

type ErrWrongResponseCode struct {
	StatusCode int
}

func (e *ErrWrongResponseCode) Error() string {
	return fmt.Sprintf("API вернул неожиданный код ответа: %d", e.StatusCode)
}

func (e *ErrWrongResponseCode) Is(target error) bool {
	_, ok := target.(*ErrWrongResponseCode)
	return ok
}

type ErrRequest struct {
	Cause error
}

func (e *ErrRequest) Error() string {
	return fmt.Sprintf("ошибка при запросе к API: %v", e.Cause)
}

func (e *ErrRequest) Unwrap() error {
	return e.Cause
}

func (e *ErrRequest) Is(target error) bool {
	_, ok := target.(*ErrRequest)
	return ok
}

type ErrDecodeJSON struct {
	Cause error
}

func (e *ErrDecodeJSON) Error() string {
	return fmt.Sprintf("ответ API не является корректным JSON: %v", e.Cause)
}

func (e *ErrDecodeJSON) Unwrap() error {
	return e.Cause
}

func (e *ErrDecodeJSON) Is(target error) bool {
	_, ok := target.(*ErrDecodeJSON)
	return ok
}

// ErrInvalidType возникает, когда значение в ответе API имеет неожиданный тип.
// Пустой Field означает весь ответ целиком.
type ErrInvalidType struct {
	Field    string
	Expected string
	Actual   string
}

func (e *ErrInvalidType) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("ответ API имеет тип %s, ожидался %s", e.Actual, e.Expected)
	}

	return fmt.Sprintf("значение %q в ответе API имеет тип %s, ожидался %s", e.Field, e.Actual, e.Expected)
}

func (e *ErrInvalidType) Is(target error) bool {
	_, ok := target.(*ErrInvalidType)
	return ok
}

type ErrMissingKey struct {
	Key string
}

func (e *ErrMissingKey) Error() string {
	return fmt.Sprintf("отсутствует ключ %q в ответе API", e.Key)
}

func (e *ErrMissingKey) Is(target error) bool {
	_, ok := target.(*ErrMissingKey)
	return ok
}

type ErrUnknownStatus struct {
	Status string
}

func (e *ErrUnknownStatus) Error() string {
	return "неизвестный статус работы: " + e.Status
}

func (e *ErrUnknownStatus) Is(target error) bool {
	_, ok := target.(*ErrUnknownStatus)
	return ok
}

// ErrNoNewStatuses возникает, когда API вернул пустой список работ.
type ErrNoNewStatuses struct{}

func (e *ErrNoNewStatuses) Error() string {
	return "нет новых статусов"
}

func (e *ErrNoNewStatuses) Is(target error) bool {
	_, ok := target.(*ErrNoNewStatuses)
	return ok
}

type HTTPError struct {
	StatusCode int
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("HTTP error: %d", e.StatusCode)
}

func KindOf(err error) Kind {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, &ErrWrongResponseCode{}):
		return KindWrongResponseCode
	case errors.Is(err, &ErrRequest{}):
		return KindRequest
	case errors.Is(err, &ErrDecodeJSON{}):
		return KindDecode
	case errors.Is(err, &ErrInvalidType{}),
		errors.Is(err, &ErrMissingKey{}),
		errors.Is(err, &ErrUnknownStatus{}):
		return KindValidation
	case errors.Is(err, &ErrNoNewStatuses{}):
		return KindNoNewStatuses
	default:
		return KindUnknown
	}
}
