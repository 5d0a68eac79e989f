package config

import (
	"log/slog"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/go-faster/errors"
	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

const (
	EnvPracticumToken = "PRACTICUM_TOKEN"
	EnvTelegramToken  = "TELEGRAM_TOKEN"
	EnvTelegramChatID = "TELEGRAM_CHAT_ID"
)

type Config struct {
	PracticumToken  string `mapstructure:"PRACTICUM_TOKEN"`
	TelegramToken   string `mapstructure:"TELEGRAM_TOKEN"`
	TelegramChatID  string `mapstructure:"TELEGRAM_CHAT_ID"`
	TelegramBaseURL string `mapstructure:"TELEGRAM_BASE_URL"`

	PracticumEndpoint string        `mapstructure:"PRACTICUM_ENDPOINT"`
	RetryPeriod       time.Duration `mapstructure:"RETRY_PERIOD"`

	LogFile    string `mapstructure:"LOG_FILE"`
	LogLevel   string `mapstructure:"LOG_LEVEL"`
	LoggerName string `mapstructure:"LOGGER_NAME"`

	MetricsPort int `mapstructure:"METRICS_PORT"`

	ExternalRequestTimeout time.Duration `mapstructure:"EXTERNAL_REQUEST_TIMEOUT"`
	TelegramRateLimit      float64       `mapstructure:"TELEGRAM_RATE_LIMIT"`

	CBSlidingWindowSize        int           `mapstructure:"CB_SLIDING_WINDOW_SIZE"`
	CBMinimumRequiredCalls     int           `mapstructure:"CB_MINIMUM_REQUIRED_CALLS"`
	CBFailureRateThreshold     int           `mapstructure:"CB_FAILURE_RATE_THRESHOLD"`
	CBPermittedCallsInHalfOpen int           `mapstructure:"CB_PERMITTED_CALLS_IN_HALF_OPEN"`
	CBWaitDurationInOpenState  time.Duration `mapstructure:"CB_WAIT_DURATION_IN_OPEN_STATE"`
}

// LoadConfig читает переменные окружения и .env из рабочей директории.
// Значения из v имеют приоритет, если v передан (флаги командной строки).
func LoadConfig(v *viper.Viper) (*Config, error) {
	if v == nil {
		v = viper.New()
	}

	setDefaults(v)

	for _, key := range []string{EnvPracticumToken, EnvTelegramToken, EnvTelegramChatID} {
		if err := v.BindEnv(key); err != nil {
			return nil, errors.Wrapf(err, "привязка переменной %s", key)
		}
	}

	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")

	v.AutomaticEnv()

	_ = v.ReadInConfig()

	cfg := &Config{}

	hook := viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		secondsToDurationHook(),
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
	))

	if err := v.Unmarshal(cfg, hook); err != nil {
		return nil, errors.Wrap(err, "разбор конфигурации")
	}

	return cfg, nil
}

// secondsToDurationHook читает целое число без единиц измерения
// (RETRY_PERIOD=600) как количество секунд.
func secondsToDurationHook() mapstructure.DecodeHookFuncType {
	durationType := reflect.TypeOf(time.Duration(0))

	return func(_ reflect.Type, to reflect.Type, data any) (any, error) {
		if to != durationType {
			return data, nil
		}

		switch value := data.(type) {
		case string:
			seconds, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64)
			if err != nil {
				return data, nil
			}

			return time.Duration(seconds) * time.Second, nil
		case int:
			return time.Duration(value) * time.Second, nil
		case int64:
			return time.Duration(value) * time.Second, nil
		}

		return data, nil
	}
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("TELEGRAM_BASE_URL", "")
	v.SetDefault("PRACTICUM_ENDPOINT", "https://practicum.yandex.ru/api/user_api/homework_statuses/")
	v.SetDefault("RETRY_PERIOD", "600s")

	v.SetDefault("LOG_FILE", "homework.log")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOGGER_NAME", "homework_bot")

	v.SetDefault("METRICS_PORT", 9095)

	v.SetDefault("EXTERNAL_REQUEST_TIMEOUT", "10s")
	v.SetDefault("TELEGRAM_RATE_LIMIT", 1.0)

	v.SetDefault("CB_SLIDING_WINDOW_SIZE", 3600)
	v.SetDefault("CB_MINIMUM_REQUIRED_CALLS", 5)
	v.SetDefault("CB_FAILURE_RATE_THRESHOLD", 100)
	v.SetDefault("CB_PERMITTED_CALLS_IN_HALF_OPEN", 1)
	v.SetDefault("CB_WAIT_DURATION_IN_OPEN_STATE", "30m")
}

// MissingTokens возвращает имена незаданных обязательных переменных.
func (c *Config) MissingTokens() []string {
	var missing []string

	if c.PracticumToken == "" {
		missing = append(missing, EnvPracticumToken)
	}

	if c.TelegramToken == "" {
		missing = append(missing, EnvTelegramToken)
	}

	if c.TelegramChatID == "" {
		missing = append(missing, EnvTelegramChatID)
	}

	return missing
}

// CheckTokens сообщает, заданы ли все три обязательные переменные.
// false означает, что запуск невозможен.
func CheckTokens(cfg *Config, logger *slog.Logger) bool {
	logger.Info("Проверка наличия всех токенов")

	missing := cfg.MissingTokens()
	for _, name := range missing {
		logger.Error("Отсутствует обязательная переменная окружения",
			"name", name,
		)
	}

	return len(missing) == 0
}
