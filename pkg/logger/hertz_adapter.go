package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/cloudwego/hertz/pkg/common/hlog"
)

// hlog 比 slog 多出的三个级别
const (
	LevelTrace  = slog.LevelDebug - 4
	LevelNotice = slog.LevelInfo + 2
	LevelFatal  = slog.LevelError + 4
)

var hlogToSlog = map[hlog.Level]slog.Level{
	hlog.LevelTrace:  LevelTrace,
	hlog.LevelDebug:  slog.LevelDebug,
	hlog.LevelInfo:   slog.LevelInfo,
	hlog.LevelNotice: LevelNotice,
	hlog.LevelWarn:   slog.LevelWarn,
	hlog.LevelError:  slog.LevelError,
	hlog.LevelFatal:  LevelFatal,
}

// HertzSlogAdapter routes Hertz's hlog output into slog.
// The Ctx* variants prefer the request-scoped logger stored by WithContext.
// Fatal never exits the process.
type HertzSlogAdapter struct {
	logger *slog.Logger
}

var _ hlog.FullLogger = (*HertzSlogAdapter)(nil)

// NewHertzSlogAdapter wraps logger for hlog.SetLogger.
func NewHertzSlogAdapter(logger *slog.Logger) *HertzSlogAdapter {
	return &HertzSlogAdapter{logger: logger}
}

func (h *HertzSlogAdapter) emit(ctx context.Context, l hlog.Level, msg string) {
	if ctx == nil {
		ctx = context.Background()
	}
	target := h.logger
	if scoped, ok := ctx.Value(loggerKey).(*slog.Logger); ok {
		target = scoped
	}
	target.Log(ctx, hlogToSlog[l], msg)
}

func (h *HertzSlogAdapter) print(l hlog.Level, v ...interface{}) {
	h.emit(context.Background(), l, fmt.Sprint(v...))
}

func (h *HertzSlogAdapter) printf(l hlog.Level, format string, v ...interface{}) {
	h.emit(context.Background(), l, fmt.Sprintf(format, v...))
}

func (h *HertzSlogAdapter) Trace(v ...interface{})  { h.print(hlog.LevelTrace, v...) }
func (h *HertzSlogAdapter) Debug(v ...interface{})  { h.print(hlog.LevelDebug, v...) }
func (h *HertzSlogAdapter) Info(v ...interface{})   { h.print(hlog.LevelInfo, v...) }
func (h *HertzSlogAdapter) Notice(v ...interface{}) { h.print(hlog.LevelNotice, v...) }
func (h *HertzSlogAdapter) Warn(v ...interface{})   { h.print(hlog.LevelWarn, v...) }
func (h *HertzSlogAdapter) Error(v ...interface{})  { h.print(hlog.LevelError, v...) }
func (h *HertzSlogAdapter) Fatal(v ...interface{})  { h.print(hlog.LevelFatal, v...) }

func (h *HertzSlogAdapter) Tracef(format string, v ...interface{}) {
	h.printf(hlog.LevelTrace, format, v...)
}
func (h *HertzSlogAdapter) Debugf(format string, v ...interface{}) {
	h.printf(hlog.LevelDebug, format, v...)
}
func (h *HertzSlogAdapter) Infof(format string, v ...interface{}) {
	h.printf(hlog.LevelInfo, format, v...)
}
func (h *HertzSlogAdapter) Noticef(format string, v ...interface{}) {
	h.printf(hlog.LevelNotice, format, v...)
}
func (h *HertzSlogAdapter) Warnf(format string, v ...interface{}) {
	h.printf(hlog.LevelWarn, format, v...)
}
func (h *HertzSlogAdapter) Errorf(format string, v ...interface{}) {
	h.printf(hlog.LevelError, format, v...)
}
func (h *HertzSlogAdapter) Fatalf(format string, v ...interface{}) {
	h.printf(hlog.LevelFatal, format, v...)
}

func (h *HertzSlogAdapter) CtxTracef(ctx context.Context, format string, v ...interface{}) {
	h.emit(ctx, hlog.LevelTrace, fmt.Sprintf(format, v...))
}
func (h *HertzSlogAdapter) CtxDebugf(ctx context.Context, format string, v ...interface{}) {
	h.emit(ctx, hlog.LevelDebug, fmt.Sprintf(format, v...))
}
func (h *HertzSlogAdapter) CtxInfof(ctx context.Context, format string, v ...interface{}) {
	h.emit(ctx, hlog.LevelInfo, fmt.Sprintf(format, v...))
}
func (h *HertzSlogAdapter) CtxNoticef(ctx context.Context, format string, v ...interface{}) {
	h.emit(ctx, hlog.LevelNotice, fmt.Sprintf(format, v...))
}
func (h *HertzSlogAdapter) CtxWarnf(ctx context.Context, format string, v ...interface{}) {
	h.emit(ctx, hlog.LevelWarn, fmt.Sprintf(format, v...))
}
func (h *HertzSlogAdapter) CtxErrorf(ctx context.Context, format string, v ...interface{}) {
	h.emit(ctx, hlog.LevelError, fmt.Sprintf(format, v...))
}
func (h *HertzSlogAdapter) CtxFatalf(ctx context.Context, format string, v ...interface{}) {
	h.emit(ctx, hlog.LevelFatal, fmt.Sprintf(format, v...))
}

// SetLevel changes the level shared by every handler Setup built.
func (h *HertzSlogAdapter) SetLevel(l hlog.Level) {
	if lvl, ok := hlogToSlog[l]; ok {
		level.Set(lvl)
	}
}

// SetOutput is a no-op, the destination is fixed by Setup.
func (h *HertzSlogAdapter) SetOutput(io.Writer) {}
