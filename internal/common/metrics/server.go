package metrics

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// HealthFunc возвращает ошибку, если сервис не готов.
type HealthFunc func() error

//nolint:revive // Имя MetricsServer используется для ясности
type MetricsServer struct {
	server   *http.Server
	listener net.Listener
	logger   *slog.Logger
	port     int
}

func NewMetricsServer(port int, health HealthFunc, logger *slog.Logger) *MetricsServer {
	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           NewHandler(health),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
	}

	return &MetricsServer{
		server: server,
		logger: logger,
		port:   port,
	}
}

func NewHandler(health HealthFunc) http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	mux.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		if health != nil {
			if err := health(); err != nil {
				w.WriteHeader(http.StatusServiceUnavailable)
				_, _ = w.Write([]byte(err.Error()))

				return
			}
		}

		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	return mux
}

// Listen занимает порт сервера. Ошибка занятого порта возвращается сразу,
// до запуска обработки запросов.
func (s *MetricsServer) Listen() error {
	listener, err := net.Listen("tcp", s.server.Addr)
	if err != nil {
		return fmt.Errorf("ошибка открытия порта сервера метрик %d: %w", s.port, err)
	}

	s.listener = listener

	return nil
}

// Addr возвращает адрес, на котором слушает сервер после Listen.
func (s *MetricsServer) Addr() string {
	if s.listener == nil {
		return s.server.Addr
	}

	return s.listener.Addr().String()
}

// Start обслуживает запросы до Stop. Если Listen не вызывался, порт
// занимается здесь же.
func (s *MetricsServer) Start() error {
	if s.listener == nil {
		if err := s.Listen(); err != nil {
			return err
		}
	}

	s.logger.Info("Запуск сервера метрик",
		"addr", s.Addr(),
		"endpoint", "/metrics",
	)

	if err := s.server.Serve(s.listener); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("ошибка запуска сервера метрик: %w", err)
	}

	return nil
}

func (s *MetricsServer) Stop(ctx context.Context) error {
	if err := s.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("ошибка при остановке сервера метрик: %w", err)
	}

	s.logger.Info("Сервер метрик остановлен")

	return nil
}
