package telegram

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Client отправляет сообщения в один заранее заданный чат.
type Client struct {
	bot    *tgbotapi.BotAPI
	chatID string
	logger *slog.Logger
}

// NewClient не обращается к API при создании: getMe не вызывается, поэтому
// недоступность Telegram на старте не мешает запуску опроса.
// Пустой baseURL означает api.telegram.org.
func NewClient(token, chatID, baseURL string, timeout time.Duration, logger *slog.Logger) *Client {
	bot := &tgbotapi.BotAPI{
		Token:  token,
		Client: &http.Client{Timeout: timeout},
		Buffer: 100,
	}

	endpoint := tgbotapi.APIEndpoint
	if baseURL != "" {
		endpoint = strings.TrimSuffix(baseURL, "/") + "/bot%s/%s"
	}

	bot.SetAPIEndpoint(endpoint)

	return &Client{
		bot:    bot,
		chatID: chatID,
		logger: logger,
	}
}

// SendMessage отправляет текст без разметки. Числовой идентификатор
// считается идентификатором чата, остальные значения (@channel) считаются именем канала.
func (c *Client) SendMessage(ctx context.Context, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	var msg tgbotapi.MessageConfig

	if id, err := strconv.ParseInt(c.chatID, 10, 64); err == nil {
		msg = tgbotapi.NewMessage(id, text)
	} else {
		msg = tgbotapi.NewMessageToChannel(c.chatID, text)
	}

	if _, err := c.bot.Send(msg); err != nil {
		return fmt.Errorf("ошибка при отправке сообщения в чат %s: %w", c.chatID, err)
	}

	c.logger.Debug("Сообщение передано в Telegram",
		"chat", c.chatID,
	)

	return nil
}
