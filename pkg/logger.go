package pkg

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/go-faster/errors"
)

// LevelCritical используется для фатальных ошибок запуска.
const LevelCritical = slog.Level(12)

const timeLayout = "2006-01-02 15:04:05,000"

// LineHandler пишет записи в виде "время, УРОВЕНЬ, имя, сообщение key=value".
type LineHandler struct {
	mu     *sync.Mutex
	w      io.Writer
	name   string
	level  slog.Leveler
	prefix string
	attrs  []slog.Attr
}

func NewLineHandler(w io.Writer, name string, level slog.Leveler) *LineHandler {
	if level == nil {
		level = slog.LevelInfo
	}

	return &LineHandler{
		mu:    &sync.Mutex{},
		w:     w,
		name:  name,
		level: level,
	}
}

func (h *LineHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

func (h *LineHandler) Handle(_ context.Context, r slog.Record) error {
	var b strings.Builder

	ts := r.Time
	if ts.IsZero() {
		ts = time.Now()
	}

	b.WriteString(ts.Format(timeLayout))
	b.WriteString(", ")
	b.WriteString(LevelName(r.Level))
	b.WriteString(", ")
	b.WriteString(h.name)
	b.WriteString(", ")
	b.WriteString(r.Message)

	for _, a := range h.attrs {
		writeAttr(&b, "", a)
	}

	r.Attrs(func(a slog.Attr) bool {
		writeAttr(&b, h.prefix, a)
		return true
	})

	b.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()

	_, err := io.WriteString(h.w, b.String())

	return err
}

func (h *LineHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	next := *h
	next.attrs = make([]slog.Attr, 0, len(h.attrs)+len(attrs))
	next.attrs = append(next.attrs, h.attrs...)

	for _, a := range attrs {
		a.Key = h.prefix + a.Key
		next.attrs = append(next.attrs, a)
	}

	return &next
}

func (h *LineHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}

	next := *h
	next.prefix = h.prefix + name + "."

	return &next
}

func writeAttr(b *strings.Builder, prefix string, a slog.Attr) {
	a.Value = a.Value.Resolve()
	if a.Equal(slog.Attr{}) {
		return
	}

	if a.Value.Kind() == slog.KindGroup {
		for _, ga := range a.Value.Group() {
			writeAttr(b, prefix+a.Key+".", ga)
		}

		return
	}

	value := a.Value.String()
	if strings.ContainsAny(value, " \t\n\"=") {
		value = fmt.Sprintf("%q", value)
	}

	b.WriteByte(' ')
	b.WriteString(prefix)
	b.WriteString(a.Key)
	b.WriteByte('=')
	b.WriteString(value)
}

func LevelName(level slog.Level) string {
	switch {
	case level >= LevelCritical:
		return "CRITICAL"
	case level >= slog.LevelError:
		return "ERROR"
	case level >= slog.LevelWarn:
		return "WARNING"
	case level >= slog.LevelInfo:
		return "INFO"
	default:
		return "DEBUG"
	}
}

func ParseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	case "critical":
		return LevelCritical
	default:
		return slog.LevelInfo
	}
}

func NewLogger(w io.Writer, name string, level slog.Leveler) *slog.Logger {
	return slog.New(NewLineHandler(w, name, level))
}

// OpenLogFile открывает файл журнала на дозапись. Возвращаемый writer
// дублирует записи в stdout.
func OpenLogFile(path string, stdout io.Writer) (io.Writer, io.Closer, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "открытие файла журнала %s", path)
	}

	return io.MultiWriter(f, stdout), f, nil
}
