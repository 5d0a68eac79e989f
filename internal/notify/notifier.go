package notify

import (
	"context"
	"log/slog"

	"golang.org/x/time/rate"

	"github.com/central-university-dev/go-homework-bot/internal/common/metrics"
)

type MessageSender interface {
	SendMessage(ctx context.Context, text string) error
}

// Notifier доставляет сообщения в чат. Ошибки доставки только логируются:
// недоступность Telegram не должна останавливать опрос.
type Notifier struct {
	sender  MessageSender
	limiter *rate.Limiter
	logger  *slog.Logger
}

// NewNotifier ограничивает отправку perSecond сообщениями в секунду.
// perSecond <= 0 отключает ограничение.
func NewNotifier(sender MessageSender, perSecond float64, logger *slog.Logger) *Notifier {
	limit := rate.Inf
	if perSecond > 0 {
		limit = rate.Limit(perSecond)
	}

	return &Notifier{
		sender:  sender,
		limiter: rate.NewLimiter(limit, 1),
		logger:  logger,
	}
}

func (n *Notifier) Notify(ctx context.Context, message string) {
	n.logger.Info("Отправка сообщения в чат",
		"message", message,
	)

	if err := n.limiter.Wait(ctx); err != nil {
		metrics.RecordNotification(metrics.StatusError)

		n.logger.Error("Сообщение в Telegram не отправлено",
			"error", err,
		)

		return
	}

	if err := n.sender.SendMessage(ctx, message); err != nil {
		metrics.RecordNotification(metrics.StatusError)

		n.logger.Error("Сообщение в Telegram не отправлено",
			"error", err,
		)

		return
	}

	metrics.RecordNotification(metrics.StatusSuccess)

	n.logger.Debug("Сообщение отправлено",
		"message", message,
	)
}
