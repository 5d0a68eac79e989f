package errors_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	domainErrors "github.com/central-university-dev/go-homework-bot/internal/domain/errors"
)

func TestKindOf(t *testing.T) {
	cause := errors.New("connection refused")

	tests := []struct {
		err  error
		kind domainErrors.Kind
	}{
		{err: nil, kind: ""},
		{err: &domainErrors.ErrWrongResponseCode{StatusCode: 503}, kind: domainErrors.KindWrongResponseCode},
		{err: &domainErrors.ErrRequest{Cause: cause}, kind: domainErrors.KindRequest},
		{err: &domainErrors.ErrDecodeJSON{Cause: cause}, kind: domainErrors.KindDecode},
		{err: &domainErrors.ErrInvalidType{Field: "homeworks"}, kind: domainErrors.KindValidation},
		{err: &domainErrors.ErrMissingKey{Key: "status"}, kind: domainErrors.KindValidation},
		{err: &domainErrors.ErrUnknownStatus{Status: "declined"}, kind: domainErrors.KindValidation},
		{err: &domainErrors.ErrNoNewStatuses{}, kind: domainErrors.KindNoNewStatuses},
		{err: fmt.Errorf("цикл: %w", &domainErrors.ErrMissingKey{Key: "status"}), kind: domainErrors.KindValidation},
		{err: cause, kind: domainErrors.KindUnknown},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.kind, domainErrors.KindOf(tt.err), "%v", tt.err)
	}
}

func TestErrorMessages(t *testing.T) {
	assert.Equal(t, "API вернул неожиданный код ответа: 503",
		(&domainErrors.ErrWrongResponseCode{StatusCode: 503}).Error())
	assert.Equal(t, `отсутствует ключ "homework_name" в ответе API`,
		(&domainErrors.ErrMissingKey{Key: "homework_name"}).Error())
	assert.Equal(t, "неизвестный статус работы: declined",
		(&domainErrors.ErrUnknownStatus{Status: "declined"}).Error())
	assert.Equal(t, "нет новых статусов", (&domainErrors.ErrNoNewStatuses{}).Error())
	assert.Equal(t, "ответ API имеет тип список, ожидался объект",
		(&domainErrors.ErrInvalidType{Expected: "объект", Actual: "список"}).Error())
}

func TestRequestErrorUnwrap(t *testing.T) {
	cause := errors.New("timeout")
	err := &domainErrors.ErrRequest{Cause: cause}

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "timeout")
}
