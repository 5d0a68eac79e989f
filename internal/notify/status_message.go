package notify

import (
	"fmt"

	domainErrors "github.com/central-university-dev/go-homework-bot/internal/domain/errors"
	"github.com/central-university-dev/go-homework-bot/internal/domain/models"
)

// StatusMessage формирует текст уведомления о смене статуса работы.
func StatusMessage(hw models.Homework) (string, error) {
	name, ok := hw.Name.Get()
	if !ok {
		return "", &domainErrors.ErrMissingKey{Key: "homework_name"}
	}

	status, ok := hw.Status.Get()
	if !ok {
		return "", &domainErrors.ErrMissingKey{Key: "status"}
	}

	verdict, ok := models.HomeworkVerdicts[models.HomeworkStatus(status)]
	if !ok {
		return "", &domainErrors.ErrUnknownStatus{Status: status}
	}

	return fmt.Sprintf(`Изменился статус проверки работы "%s". %s`, name, verdict), nil
}
