package middleware

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/cloudwego/hertz/pkg/app"
	hconfig "github.com/cloudwego/hertz/pkg/common/config"
	"github.com/cloudwego/hertz/pkg/common/ut"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
	"github.com/cloudwego/hertz/pkg/route"
	"github.com/stretchr/testify/assert"

	"github.com/lvyanru/chat-history/pkg/logger"
)

func newEngine(base *slog.Logger) *route.Engine {
	engine := route.NewEngine(hconfig.NewOptions(nil))
	engine.Use(Recovery(base), Logger(base), CORS())
	return engine
}

func TestLogger_RequestScopedLogger(t *testing.T) {
	var buf bytes.Buffer
	engine := newEngine(slog.New(slog.NewTextHandler(&buf, nil)))

	engine.GET("/echo", func(ctx context.Context, c *app.RequestContext) {
		logger.FromContext(ctx).Info("inside handler")
		c.String(consts.StatusOK, "ok")
	})

	w := ut.PerformRequest(engine, consts.MethodGet, "/echo", nil, ut.Header{Key: RequestIDKey, Value: "req-42"})
	resp := w.Result()

	assert.Equal(t, consts.StatusOK, resp.StatusCode())
	assert.Equal(t, "req-42", resp.Header.Get(RequestIDKey))
	assert.Contains(t, buf.String(), `msg="inside handler"`)
	assert.Contains(t, buf.String(), "request_id=req-42")
	assert.Contains(t, buf.String(), "path=/echo")
}

func TestLogger_GeneratesRequestID(t *testing.T) {
	engine := newEngine(slog.New(slog.NewTextHandler(io.Discard, nil)))
	engine.GET("/echo", func(ctx context.Context, c *app.RequestContext) {
		c.String(consts.StatusOK, "ok")
	})

	w := ut.PerformRequest(engine, consts.MethodGet, "/echo", nil)
	assert.NotEmpty(t, w.Result().Header.Get(RequestIDKey))
}

func TestRecovery(t *testing.T) {
	var buf bytes.Buffer
	engine := newEngine(slog.New(slog.NewTextHandler(&buf, nil)))
	engine.GET("/boom", func(ctx context.Context, c *app.RequestContext) {
		panic("boom")
	})
	engine.GET("/fine", func(ctx context.Context, c *app.RequestContext) {
		c.String(consts.StatusOK, "ok")
	})

	w := ut.PerformRequest(engine, consts.MethodGet, "/boom", nil)
	assert.Equal(t, consts.StatusInternalServerError, w.Result().StatusCode())
	assert.Contains(t, string(w.Result().Body()), "INTERNAL_ERROR")
	assert.Contains(t, buf.String(), "panic recovered")
	assert.Contains(t, buf.String(), "route=/boom")

	// a panic only fails its own request
	w = ut.PerformRequest(engine, consts.MethodGet, "/fine", nil)
	assert.Equal(t, consts.StatusOK, w.Result().StatusCode())
}

func TestCORS_Preflight(t *testing.T) {
	engine := newEngine(slog.New(slog.NewTextHandler(io.Discard, nil)))
	engine.POST("/api", func(ctx context.Context, c *app.RequestContext) {
		c.String(consts.StatusOK, "ok")
	})

	w := ut.PerformRequest(engine, consts.MethodOptions, "/api", nil)
	resp := w.Result()
	assert.Equal(t, consts.StatusNoContent, resp.StatusCode())
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
	assert.Contains(t, resp.Header.Get("Access-Control-Allow-Headers"), "Authorization")
	assert.Equal(t, RequestIDKey, resp.Header.Get("Access-Control-Expose-Headers"))
}
