package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-faster/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/multierr"

	"github.com/central-university-dev/go-homework-bot/internal/common/metrics"
	"github.com/central-university-dev/go-homework-bot/internal/config"
	domainErrors "github.com/central-university-dev/go-homework-bot/internal/domain/errors"
	"github.com/central-university-dev/go-homework-bot/internal/notify"
	"github.com/central-university-dev/go-homework-bot/internal/poller"
	"github.com/central-university-dev/go-homework-bot/internal/practicum"
	"github.com/central-university-dev/go-homework-bot/internal/telegram"
	"github.com/central-university-dev/go-homework-bot/pkg"
)

func main() {
	if err := newRootCmd(os.Stdout).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Ошибка запуска сервиса: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd(stdout io.Writer) *cobra.Command {
	v := viper.New()

	var once bool

	cmd := &cobra.Command{
		Use:           "homework-bot",
		Short:         "Уведомляет в Telegram об изменении статуса проверки домашней работы",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			return run(ctx, v, once, stdout)
		},
	}

	cmd.Flags().BoolVar(&once, "once", false, "выполнить один цикл опроса и завершиться")
	cmd.Flags().Duration("period", poller.DefaultInterval, "период опроса API")
	cmd.Flags().Int("metrics-port", 9095, "порт сервера метрик, 0 отключает сервер")

	_ = v.BindPFlag("RETRY_PERIOD", cmd.Flags().Lookup("period"))
	_ = v.BindPFlag("METRICS_PORT", cmd.Flags().Lookup("metrics-port"))

	return cmd
}

//nolint:funlen // Длина функции обусловлена последовательной инициализацией компонентов.
func run(ctx context.Context, v *viper.Viper, once bool, stdout io.Writer) (err error) {
	cfg, err := config.LoadConfig(v)
	if err != nil {
		return errors.Wrap(err, "загрузка конфигурации")
	}

	logOutput, logFile, err := pkg.OpenLogFile(cfg.LogFile, stdout)
	if err != nil {
		return err
	}

	defer func() {
		err = multierr.Append(err, logFile.Close())
	}()

	appLogger := pkg.NewLogger(logOutput, cfg.LoggerName, pkg.ParseLevel(cfg.LogLevel))

	if !config.CheckTokens(cfg, appLogger) {
		appLogger.Log(ctx, pkg.LevelCritical, "Ошибка переменных окружения")
		return &domainErrors.ErrMissingTokens{Names: cfg.MissingTokens()}
	}

	telegramClient := telegram.NewClient(
		cfg.TelegramToken,
		cfg.TelegramChatID,
		cfg.TelegramBaseURL,
		cfg.ExternalRequestTimeout,
		appLogger,
	)

	notifier := notify.NewNotifier(telegramClient, cfg.TelegramRateLimit, appLogger)

	practicumClient := practicum.NewClient(cfg, appLogger)

	statusPoller := poller.New(practicumClient, notifier, cfg.RetryPeriod, appLogger)

	if once {
		appLogger.Info("Однократный запуск цикла опроса")

		_ = statusPoller.RunCycle(ctx)

		return nil
	}

	var metricsServer *metrics.MetricsServer

	if cfg.MetricsPort > 0 {
		metricsServer = metrics.NewMetricsServer(cfg.MetricsPort, statusPoller.Healthy, appLogger)

		if err := metricsServer.Listen(); err != nil {
			appLogger.Log(ctx, pkg.LevelCritical, "Не удалось открыть порт сервера метрик",
				"port", cfg.MetricsPort,
				"error", err,
			)

			return err
		}

		go func() {
			if err := metricsServer.Start(); err != nil {
				appLogger.Error("Сервер метрик остановлен с ошибкой",
					"error", err,
				)
			}
		}()
	}

	if err := statusPoller.Start(ctx); err != nil {
		appLogger.Error("Ошибка при запуске планировщика",
			"error", err,
		)

		return err
	}

	appLogger.Info("Бот запущен",
		"period", cfg.RetryPeriod.String(),
		"chat", cfg.TelegramChatID,
	)

	<-ctx.Done()
	appLogger.Info("Получен сигнал завершения")

	statusPoller.Stop()

	if metricsServer != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if stopErr := metricsServer.Stop(shutdownCtx); stopErr != nil {
			appLogger.Error("Ошибка при остановке сервера метрик", "error", stopErr)
			err = multierr.Append(err, stopErr)
		}
	}

	appLogger.Info("Бот остановлен")

	return err
}
