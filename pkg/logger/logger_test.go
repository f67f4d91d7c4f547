package logger

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lvyanru/chat-history/internal/config"
)

func TestSetup(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	path := filepath.Join(t.TempDir(), "app.log")
	logger, err := Setup(config.LogConfig{Level: "debug", Format: "json", Output: "file", FilePath: path})
	require.NoError(t, err)

	logger.Debug("hello", "chat_id", "chat-1")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"hello"`)
	assert.Contains(t, string(data), `"chat_id":"chat-1"`)
}

func TestSetup_Invalid(t *testing.T) {
	tests := []struct {
		name string
		cfg  config.LogConfig
	}{
		{name: "level", cfg: config.LogConfig{Level: "loud", Format: "json", Output: "stdout"}},
		{name: "format", cfg: config.LogConfig{Level: "info", Format: "xml", Output: "stdout"}},
		{name: "output", cfg: config.LogConfig{Level: "info", Format: "json", Output: "syslog"}},
		{name: "file without path", cfg: config.LogConfig{Level: "info", Format: "json", Output: "file"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Setup(tt.cfg)
			assert.Error(t, err)
		})
	}
}

func TestFromContext(t *testing.T) {
	assert.Same(t, slog.Default(), FromContext(context.Background()))

	var buf bytes.Buffer
	scoped := WithRequestID(slog.New(slog.NewTextHandler(&buf, nil)), "req-1")
	ctx := WithContext(context.Background(), scoped)

	FromContext(ctx).Info("scoped")
	assert.Contains(t, buf.String(), "request_id=req-1")
}

func TestHertzSlogAdapter(t *testing.T) {
	var base, scoped bytes.Buffer
	adapter := NewHertzSlogAdapter(slog.New(slog.NewTextHandler(&base, &slog.HandlerOptions{Level: level})))
	level.Set(slog.LevelInfo)
	t.Cleanup(func() { level.Set(slog.LevelInfo) })

	adapter.Infof("listening on %s", ":8080")
	assert.Contains(t, base.String(), "listening on :8080")

	ctx := WithContext(context.Background(), slog.New(slog.NewTextHandler(&scoped, nil)).With("request_id", "req-2"))
	adapter.CtxWarnf(ctx, "slow request")
	assert.Contains(t, scoped.String(), "request_id=req-2")
	assert.NotContains(t, base.String(), "slow request")

	adapter.Debug("hidden")
	assert.NotContains(t, base.String(), "hidden")
	adapter.SetLevel(hlog.LevelDebug)
	adapter.Debug("visible")
	assert.Contains(t, base.String(), "visible")
}

func TestHertzSlogAdapter_ExtraLevels(t *testing.T) {
	var buf bytes.Buffer
	handler, err := newHandler(&buf, "text", false)
	require.NoError(t, err)
	adapter := NewHertzSlogAdapter(slog.New(handler))
	level.Set(LevelTrace)
	t.Cleanup(func() { level.Set(slog.LevelInfo) })

	adapter.Trace("route ", "added")
	adapter.Noticef("engine %s", "ready")
	adapter.Fatal("boom")

	out := buf.String()
	assert.Contains(t, out, `level=TRACE msg="route added"`)
	assert.Contains(t, out, `level=NOTICE msg="engine ready"`)
	assert.Contains(t, out, "level=FATAL msg=boom")

	adapter.SetLevel(hlog.LevelWarn)
	adapter.Notice("dropped")
	assert.NotContains(t, buf.String(), "dropped")
}
