package httputil

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/sony/gobreaker"

	"github.com/central-university-dev/go-homework-bot/internal/config"
	domainErrors "github.com/central-university-dev/go-homework-bot/internal/domain/errors"
)

type ResilientHTTPClient struct {
	circuitBreaker *gobreaker.CircuitBreaker
	logger         *slog.Logger
	serviceName    string
}

// CreateResilientHTTPClient создает resty-клиент с таймаутом и circuit breaker.
// Повторные попытки не выполняются: следующий запрос будет в следующем цикле.
func CreateResilientHTTPClient(cfg *config.Config, logger *slog.Logger, serviceName string) *resty.Client {
	client := resty.New()

	client.SetTimeout(cfg.ExternalRequestTimeout)
	client.SetRetryCount(0)

	circuitBreakerSettings := gobreaker.Settings{
		Name:        serviceName + "_circuit_breaker",
		MaxRequests: uint32(cfg.CBPermittedCallsInHalfOpen), //nolint:gosec // G115: Значение из конфига
		Interval:    time.Duration(cfg.CBSlidingWindowSize) * time.Second,
		Timeout:     cfg.CBWaitDurationInOpenState,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests >= uint32(cfg.CBMinimumRequiredCalls) && //nolint:gosec // G115: Значение из конфига
				failureRatio >= float64(cfg.CBFailureRateThreshold)/100.0
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			if logger != nil {
				logger.Warn("Изменилось состояние circuit breaker",
					"name", name,
					"from", from.String(),
					"to", to.String(),
				)
			}
		},
	}

	resilientClient := &ResilientHTTPClient{
		circuitBreaker: gobreaker.NewCircuitBreaker(circuitBreakerSettings),
		logger:         logger,
		serviceName:    serviceName,
	}

	client.SetTransport(&CircuitBreakerTransport{
		resilientClient:   resilientClient,
		originalTransport: http.DefaultTransport,
	})

	return client
}

type CircuitBreakerTransport struct {
	resilientClient   *ResilientHTTPClient
	originalTransport http.RoundTripper
}

// RoundTrip считает ответы 5xx неудачей для circuit breaker, но возвращает их
// вызывающему коду как обычный ответ, чтобы код статуса не потерялся.
func (t *CircuitBreakerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	var resp *http.Response

	_, err := t.resilientClient.circuitBreaker.Execute(func() (interface{}, error) {
		r, err := t.originalTransport.RoundTrip(req)
		if err != nil {
			return nil, err
		}

		resp = r

		if r.StatusCode >= 500 {
			return nil, &domainErrors.HTTPError{StatusCode: r.StatusCode}
		}

		return r, nil
	})

	var httpErr *domainErrors.HTTPError
	if errors.As(err, &httpErr) && resp != nil {
		return resp, nil
	}

	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) && t.resilientClient.logger != nil {
			t.resilientClient.logger.Warn("Circuit breaker is open",
				"service", t.resilientClient.serviceName,
				"url", req.URL.String(),
			)
		}

		return nil, err
	}

	return resp, nil
}
