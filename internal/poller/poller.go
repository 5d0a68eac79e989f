package poller

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/go-faster/jx"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/central-university-dev/go-homework-bot/internal/common/metrics"
	domainErrors "github.com/central-university-dev/go-homework-bot/internal/domain/errors"
	"github.com/central-university-dev/go-homework-bot/internal/notify"
	"github.com/central-university-dev/go-homework-bot/internal/practicum"
)

const (
	DefaultInterval = 600 * time.Second

	// unhealthyAfter: число подряд идущих циклов без ответа API,
	// после которого Healthy сообщает об ошибке.
	unhealthyAfter = 3
)

type Notifier interface {
	Notify(ctx context.Context, message string)
}

// Status описывает состояние цикла опроса.
type Status struct {
	Cursor              int64
	LastError           string
	LastAttempt         time.Time
	LastSuccess         time.Time
	ConsecutiveFailures int
}

type Option func(*Poller)

// WithClock подменяет источник текущего времени (используется в тестах).
func WithClock(now func() time.Time) Option {
	return func(p *Poller) {
		p.now = now
	}
}

type Poller struct {
	client   practicum.StatusGetter
	notifier Notifier
	logger   *slog.Logger
	interval time.Duration
	now      func() time.Time
	tracer   trace.Tracer

	scheduler *gocron.Scheduler

	cycleMu          sync.Mutex
	cursor           int64
	lastErrorMessage string

	statusMu sync.RWMutex
	status   Status
}

// New создает поллер. Курсор инициализируется текущим временем.
func New(client practicum.StatusGetter, notifier Notifier, interval time.Duration, logger *slog.Logger, opts ...Option) *Poller {
	if interval <= 0 {
		interval = DefaultInterval
	}

	p := &Poller{
		client:    client,
		notifier:  notifier,
		logger:    logger,
		interval:  interval,
		now:       time.Now,
		tracer:    otel.Tracer("github.com/central-university-dev/go-homework-bot/internal/poller"),
		scheduler: gocron.NewScheduler(time.UTC),
	}

	for _, opt := range opts {
		opt(p)
	}

	p.cursor = p.now().Unix()
	p.status.Cursor = p.cursor
	metrics.SetCursor(p.cursor)

	return p
}

// Start запускает первый цикл немедленно, следующие раз в interval.
// Циклы не перекрываются.
func (p *Poller) Start(ctx context.Context) error {
	p.logger.Info("Запуск планировщика",
		"interval", p.interval.String(),
		"cursor", p.Cursor(),
	)

	_, err := p.scheduler.Every(p.interval).SingletonMode().Do(func() {
		_ = p.RunCycle(ctx)
	})
	if err != nil {
		return fmt.Errorf("ошибка при настройке планировщика: %w", err)
	}

	p.scheduler.StartAsync()

	return nil
}

func (p *Poller) Stop() {
	p.logger.Info("Остановка планировщика")
	p.scheduler.Stop()
}

// RunCycle выполняет один цикл: запрос, проверка ответа, уведомление.
// Ошибка цикла логируется и отправляется в чат, если ее текст отличается
// от предыдущей; вызывающему она возвращается только для информации.
func (p *Poller) RunCycle(ctx context.Context) error {
	p.cycleMu.Lock()
	defer p.cycleMu.Unlock()

	ctx, span := p.tracer.Start(ctx, "poll_cycle",
		trace.WithAttributes(attribute.Int64("cursor", p.cursor)),
	)
	defer span.End()

	start := p.now()

	var (
		nextCursor int64
		hasCursor  bool
	)

	raw, err := p.client.GetHomeworkStatuses(ctx, p.cursor)
	if err == nil {
		nextCursor, hasCursor = practicum.LookupCurrentDate(raw)
		err = p.handleResponse(ctx, raw)
	}

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		p.handleError(ctx, err)
	}

	if hasCursor {
		p.cursor = nextCursor
		metrics.SetCursor(nextCursor)
	}

	p.recordStatus(start, err)

	return err
}

func (p *Poller) handleResponse(ctx context.Context, raw jx.Raw) error {
	resp, err := practicum.ValidateResponse(raw)
	if err != nil {
		return err
	}

	p.logger.Debug("Ответ API прошел проверку",
		"homeworks", len(resp.Homeworks),
		"current_date", resp.CurrentDate,
	)

	// Пустой список обрабатывается как ошибка цикла и проходит дедупликацию.
	if len(resp.Homeworks) == 0 {
		p.logger.Debug("Нет новых статусов")
		return &domainErrors.ErrNoNewStatuses{}
	}

	hw, err := practicum.DecodeHomework(resp.Homeworks[0])
	if err != nil {
		return err
	}

	message, err := notify.StatusMessage(hw)
	if err != nil {
		return err
	}

	p.notifier.Notify(ctx, message)

	return nil
}

func (p *Poller) handleError(ctx context.Context, err error) {
	kind := domainErrors.KindOf(err)

	p.logger.Error("Сбой в работе программы",
		"kind", string(kind),
		"error", err,
	)

	if ctx.Err() != nil {
		return
	}

	message := err.Error()
	if message == p.lastErrorMessage {
		return
	}

	p.notifier.Notify(ctx, message)
	p.lastErrorMessage = message
}

func (p *Poller) recordStatus(start time.Time, err error) {
	p.statusMu.Lock()
	defer p.statusMu.Unlock()

	p.status.Cursor = p.cursor
	p.status.LastAttempt = start

	if err == nil {
		metrics.RecordCycle(metrics.StatusSuccess)

		p.status.LastError = ""
		p.status.LastSuccess = start
		p.status.ConsecutiveFailures = 0

		return
	}

	kind := domainErrors.KindOf(err)
	metrics.RecordCycle(string(kind))

	p.status.LastError = err.Error()

	// API ответил, просто без новых статусов: сервис работоспособен.
	if kind == domainErrors.KindNoNewStatuses {
		p.status.LastSuccess = start
		p.status.ConsecutiveFailures = 0

		return
	}

	p.status.ConsecutiveFailures++
}

func (p *Poller) Cursor() int64 {
	p.statusMu.RLock()
	defer p.statusMu.RUnlock()

	return p.status.Cursor
}

func (p *Poller) Status() Status {
	p.statusMu.RLock()
	defer p.statusMu.RUnlock()

	return p.status
}

// Healthy возвращает ошибку после нескольких подряд неудачных циклов.
func (p *Poller) Healthy() error {
	status := p.Status()

	if status.ConsecutiveFailures >= unhealthyAfter {
		return fmt.Errorf("%d циклов подряд завершились ошибкой: %s", status.ConsecutiveFailures, status.LastError)
	}

	return nil
}
