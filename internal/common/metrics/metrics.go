package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	Namespace = "homework_bot"

	PollerSubsystem   = "poller"
	TelegramSubsystem = "telegram"
)

const (
	StatusSuccess = "success"
	StatusError   = "error"
)

var (
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: PollerSubsystem,
			Name:      "api_requests_total",
			Help:      "Total number of homework status API requests",
		},
		[]string{"status"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: Namespace,
			Subsystem: PollerSubsystem,
			Name:      "api_request_duration_seconds",
			Help:      "Homework status API request duration in seconds",
			Buckets:   []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"status"},
	)

	CyclesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: PollerSubsystem,
			Name:      "cycles_total",
			Help:      "Total number of polling cycles by outcome",
		},
		[]string{"outcome"},
	)

	Cursor = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: Namespace,
			Subsystem: PollerSubsystem,
			Name:      "cursor_timestamp_seconds",
			Help:      "Lower bound of the next query window",
		},
	)

	NotificationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: TelegramSubsystem,
			Name:      "notifications_total",
			Help:      "Total number of notifications sent to the chat",
		},
		[]string{"status"},
	)
)

func RecordAPIRequest(status string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(status).Inc()
	APIRequestDuration.WithLabelValues(status).Observe(duration.Seconds())
}

// RecordCycle учитывает исход цикла: "success" или вид ошибки.
func RecordCycle(outcome string) {
	CyclesTotal.WithLabelValues(outcome).Inc()
}

func SetCursor(timestamp int64) {
	Cursor.Set(float64(timestamp))
}

func RecordNotification(status string) {
	NotificationsTotal.WithLabelValues(status).Inc()
}
