package practicum

import (
	"github.com/go-faster/jx"

	domainErrors "github.com/central-university-dev/go-homework-bot/internal/domain/errors"
	"github.com/central-university-dev/go-homework-bot/internal/domain/models"
)

const (
	keyHomeworks    = "homeworks"
	keyCurrentDate  = "current_date"
	keyHomeworkName = "homework_name"
	keyStatus       = "status"
)

// ValidateResponse проверяет структуру ответа API. Ключи проверяются раньше
// типов значений. Записи списка работ возвращаются без разбора, пустой
// список не является ошибкой.
func ValidateResponse(raw jx.Raw) (*models.StatusResponse, error) {
	fields, err := objectFields(raw, "")
	if err != nil {
		return nil, err
	}

	homeworksRaw, ok := fields[keyHomeworks]
	if !ok {
		return nil, &domainErrors.ErrMissingKey{Key: keyHomeworks}
	}

	currentDateRaw, ok := fields[keyCurrentDate]
	if !ok {
		return nil, &domainErrors.ErrMissingKey{Key: keyCurrentDate}
	}

	if homeworksRaw.Type() != jx.Array {
		return nil, &domainErrors.ErrInvalidType{
			Field:    keyHomeworks,
			Expected: typeName(jx.Array),
			Actual:   typeName(homeworksRaw.Type()),
		}
	}

	currentDate, err := decodeTimestamp(currentDateRaw)
	if err != nil {
		return nil, err
	}

	homeworks := make([]jx.Raw, 0)

	err = jx.DecodeBytes(homeworksRaw).Arr(func(d *jx.Decoder) error {
		itemRaw, err := d.Raw()
		if err != nil {
			return err
		}

		homeworks = append(homeworks, append(jx.Raw(nil), itemRaw...))

		return nil
	})
	if err != nil {
		return nil, &domainErrors.ErrDecodeJSON{Cause: err}
	}

	return &models.StatusResponse{
		Homeworks:   homeworks,
		CurrentDate: currentDate,
	}, nil
}

// DecodeHomework разбирает первую запись списка работ. Остальные записи
// в цикле не используются и не проверяются.
func DecodeHomework(raw jx.Raw) (models.Homework, error) {
	return decodeHomework(raw, keyHomeworks+"[0]")
}

// LookupCurrentDate читает только current_date, не проверяя остальной ответ.
func LookupCurrentDate(raw jx.Raw) (int64, bool) {
	fields, err := objectFields(raw, "")
	if err != nil {
		return 0, false
	}

	value, ok := fields[keyCurrentDate]
	if !ok {
		return 0, false
	}

	ts, err := decodeTimestamp(value)
	if err != nil {
		return 0, false
	}

	return ts, true
}

func objectFields(raw jx.Raw, field string) (map[string]jx.Raw, error) {
	if raw.Type() != jx.Object {
		return nil, &domainErrors.ErrInvalidType{
			Field:    field,
			Expected: typeName(jx.Object),
			Actual:   typeName(raw.Type()),
		}
	}

	fields := make(map[string]jx.Raw)

	err := jx.DecodeBytes(raw).ObjBytes(func(d *jx.Decoder, key []byte) error {
		value, err := d.Raw()
		if err != nil {
			return err
		}

		fields[string(key)] = append(jx.Raw(nil), value...)

		return nil
	})
	if err != nil {
		return nil, &domainErrors.ErrDecodeJSON{Cause: err}
	}

	return fields, nil
}

func decodeTimestamp(raw jx.Raw) (int64, error) {
	invalid := &domainErrors.ErrInvalidType{
		Field:    keyCurrentDate,
		Expected: "целое число",
		Actual:   typeName(raw.Type()),
	}

	if raw.Type() != jx.Number {
		return 0, invalid
	}

	ts, err := jx.DecodeBytes(raw).Int64()
	if err != nil {
		return 0, invalid
	}

	return ts, nil
}

func decodeHomework(raw jx.Raw, field string) (models.Homework, error) {
	fields, err := objectFields(raw, field)
	if err != nil {
		return models.Homework{}, err
	}

	var hw models.Homework

	if hw.Name, err = optString(fields, keyHomeworkName); err != nil {
		return models.Homework{}, err
	}

	if hw.Status, err = optString(fields, keyStatus); err != nil {
		return models.Homework{}, err
	}

	return hw, nil
}

func optString(fields map[string]jx.Raw, key string) (models.OptString, error) {
	raw, ok := fields[key]
	if !ok {
		return models.OptString{}, nil
	}

	if raw.Type() != jx.String {
		return models.OptString{}, &domainErrors.ErrInvalidType{
			Field:    key,
			Expected: typeName(jx.String),
			Actual:   typeName(raw.Type()),
		}
	}

	s, err := jx.DecodeBytes(raw).Str()
	if err != nil {
		return models.OptString{}, &domainErrors.ErrDecodeJSON{Cause: err}
	}

	return models.NewOptString(s), nil
}

func typeName(t jx.Type) string {
	switch t {
	case jx.Object:
		return "объект"
	case jx.Array:
		return "список"
	case jx.String:
		return "строка"
	case jx.Number:
		return "число"
	case jx.Bool:
		return "логическое значение"
	case jx.Null:
		return "null"
	default:
		return "неизвестный тип"
	}
}
