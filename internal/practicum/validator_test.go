package practicum_test

import (
	"testing"

	"github.com/go-faster/jx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainErrors "github.com/central-university-dev/go-homework-bot/internal/domain/errors"
	"github.com/central-university-dev/go-homework-bot/internal/domain/models"
	"github.com/central-university-dev/go-homework-bot/internal/practicum"
)

func TestValidateResponse_Valid(t *testing.T) {
	raw := jx.Raw(`{
		"homeworks": [
			{"id": 1, "homework_name": "hw1", "status": "approved", "reviewer_comment": "ok"},
			{"homework_name": "hw0", "status": "rejected"}
		],
		"current_date": 1000
	}`)

	resp, err := practicum.ValidateResponse(raw)

	require.NoError(t, err)
	assert.Equal(t, int64(1000), resp.CurrentDate)
	require.Len(t, resp.Homeworks, 2)

	hw, err := practicum.DecodeHomework(resp.Homeworks[0])
	require.NoError(t, err)
	assert.Equal(t, models.NewOptString("hw1"), hw.Name)
	assert.Equal(t, models.NewOptString("approved"), hw.Status)
}

func TestValidateResponse_EmptyHomeworks(t *testing.T) {
	resp, err := practicum.ValidateResponse(jx.Raw(`{"homeworks": [], "current_date": 1000}`))

	require.NoError(t, err)
	assert.Empty(t, resp.Homeworks)
	assert.Equal(t, int64(1000), resp.CurrentDate)
}

func TestValidateResponse_ElementsNotChecked(t *testing.T) {
	resp, err := practicum.ValidateResponse(jx.Raw(`{"homeworks": [{"homework_name": "hw1", "status": "approved"}, 42, "hw2"], "current_date": 1000}`))

	require.NoError(t, err)
	require.Len(t, resp.Homeworks, 3)
	assert.Equal(t, jx.Number, resp.Homeworks[1].Type())
	assert.Equal(t, jx.String, resp.Homeworks[2].Type())
}

func TestDecodeHomework_MissingFieldsKeptUnset(t *testing.T) {
	hw, err := practicum.DecodeHomework(jx.Raw(`{"status": "reviewing"}`))

	require.NoError(t, err)

	_, ok := hw.Name.Get()
	assert.False(t, ok)

	status, ok := hw.Status.Get()
	assert.True(t, ok)
	assert.Equal(t, "reviewing", status)
}

func TestDecodeHomework_Errors(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		message string
	}{
		{
			name:    "not an object",
			payload: `"hw2"`,
			message: `"homeworks[0]"`,
		},
		{
			name:    "status not a string",
			payload: `{"homework_name": "hw1", "status": 1}`,
			message: `"status"`,
		},
		{
			name:    "name not a string",
			payload: `{"homework_name": null, "status": "approved"}`,
			message: `"homework_name"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := practicum.DecodeHomework(jx.Raw(tt.payload))

			require.Error(t, err)
			assert.ErrorIs(t, err, &domainErrors.ErrInvalidType{})
			assert.Contains(t, err.Error(), tt.message)
			assert.Equal(t, domainErrors.KindValidation, domainErrors.KindOf(err))
		})
	}
}

func TestValidateResponse_Errors(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		target  error
		message string
	}{
		{
			name:    "not an object",
			payload: `[{"homework_name": "hw1"}]`,
			target:  &domainErrors.ErrInvalidType{},
			message: "ответ API имеет тип список, ожидался объект",
		},
		{
			name:    "missing homeworks",
			payload: `{"current_date": 1000}`,
			target:  &domainErrors.ErrMissingKey{},
			message: `"homeworks"`,
		},
		{
			name:    "missing current_date",
			payload: `{"homeworks": []}`,
			target:  &domainErrors.ErrMissingKey{},
			message: `"current_date"`,
		},
		{
			name:    "missing key reported before wrong type",
			payload: `{"homeworks": {}}`,
			target:  &domainErrors.ErrMissingKey{},
			message: `"current_date"`,
		},
		{
			name:    "homeworks not a list",
			payload: `{"homeworks": {"homework_name": "hw1"}, "current_date": 1000}`,
			target:  &domainErrors.ErrInvalidType{},
			message: `"homeworks"`,
		},
		{
			name:    "current_date not an integer",
			payload: `{"homeworks": [], "current_date": "yesterday"}`,
			target:  &domainErrors.ErrInvalidType{},
			message: `"current_date"`,
		},
		{
			name:    "current_date fractional",
			payload: `{"homeworks": [], "current_date": 10.5}`,
			target:  &domainErrors.ErrInvalidType{},
			message: `"current_date"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := practicum.ValidateResponse(jx.Raw(tt.payload))

			require.Error(t, err)
			assert.Nil(t, resp)
			assert.ErrorIs(t, err, tt.target)
			assert.Contains(t, err.Error(), tt.message)
			assert.Equal(t, domainErrors.KindValidation, domainErrors.KindOf(err))
		})
	}
}

func TestLookupCurrentDate(t *testing.T) {
	ts, ok := practicum.LookupCurrentDate(jx.Raw(`{"homeworks": "broken", "current_date": 1700000000}`))
	assert.True(t, ok)
	assert.Equal(t, int64(1700000000), ts)

	_, ok = practicum.LookupCurrentDate(jx.Raw(`{"homeworks": []}`))
	assert.False(t, ok)

	_, ok = practicum.LookupCurrentDate(jx.Raw(`{"current_date": null}`))
	assert.False(t, ok)

	_, ok = practicum.LookupCurrentDate(jx.Raw(`[]`))
	assert.False(t, ok)
}
