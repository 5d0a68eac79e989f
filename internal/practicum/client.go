package practicum

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-faster/jx"
	"github.com/go-resty/resty/v2"

	"github.com/central-university-dev/go-homework-bot/internal/common/httputil"
	"github.com/central-university-dev/go-homework-bot/internal/common/metrics"
	"github.com/central-university-dev/go-homework-bot/internal/config"
	domainErrors "github.com/central-university-dev/go-homework-bot/internal/domain/errors"
)

const DefaultEndpoint = "https://practicum.yandex.ru/api/user_api/homework_statuses/"

// StatusGetter запрашивает статусы домашних работ, изменившиеся после from.
type StatusGetter interface {
	GetHomeworkStatuses(ctx context.Context, from int64) (jx.Raw, error)
}

type Client struct {
	client   *resty.Client
	token    string
	endpoint string
	logger   *slog.Logger
}

func NewClient(cfg *config.Config, logger *slog.Logger) *Client {
	endpoint := cfg.PracticumEndpoint
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}

	return &Client{
		client:   httputil.CreateResilientHTTPClient(cfg, logger, "practicum"),
		token:    cfg.PracticumToken,
		endpoint: endpoint,
		logger:   logger,
	}
}

// GetHomeworkStatuses возвращает тело ответа без проверки его структуры.
// Проверяются только код ответа и синтаксис JSON.
func (c *Client) GetHomeworkStatuses(ctx context.Context, from int64) (jx.Raw, error) {
	start := time.Now()

	resp, err := c.client.R().
		SetContext(ctx).
		SetHeader("Authorization", "OAuth "+c.token).
		SetQueryParam("from_date", strconv.FormatInt(from, 10)).
		Get(c.endpoint)

	if err != nil {
		metrics.RecordAPIRequest(metrics.StatusError, time.Since(start))

		c.logger.Error("Ошибка при запросе к API",
			"endpoint", c.endpoint,
			"from_date", from,
			"error", err,
		)

		return nil, &domainErrors.ErrRequest{Cause: err}
	}

	if resp.StatusCode() != http.StatusOK {
		metrics.RecordAPIRequest(metrics.StatusError, time.Since(start))

		c.logger.Error("API вернул неожиданный код ответа",
			"endpoint", c.endpoint,
			"status", resp.StatusCode(),
		)

		return nil, &domainErrors.ErrWrongResponseCode{StatusCode: resp.StatusCode()}
	}

	body := resp.Body()

	if err := jx.DecodeBytes(body).Validate(); err != nil {
		metrics.RecordAPIRequest(metrics.StatusError, time.Since(start))

		c.logger.Error("Ответ API не является корректным JSON",
			"endpoint", c.endpoint,
			"error", err,
		)

		return nil, &domainErrors.ErrDecodeJSON{Cause: err}
	}

	metrics.RecordAPIRequest(metrics.StatusSuccess, time.Since(start))

	return jx.Raw(body), nil
}
