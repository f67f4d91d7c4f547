package middleware

import (
	"context"
	"log/slog"
	"time"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/google/uuid"

	"github.com/lvyanru/chat-history/pkg/logger"
)

// RequestIDKey 请求 ID 的 header 名
const RequestIDKey = "X-Request-ID"

// Logger 日志中间件
//
// 为每个请求生成（或沿用）请求 ID，并把带 request_id/method/path/client_ip 的
// logger 放进 context，下游 handler 通过 logger.FromContext 取用。
func Logger(base *slog.Logger) app.HandlerFunc {
	return func(ctx context.Context, c *app.RequestContext) {
		start := time.Now()
		path := string(c.Path())

		// 跳过健康检查路径的日志记录
		skipLogging := path == "/health/live" || path == "/health/ready"

		requestID := string(c.Request.Header.Peek(RequestIDKey))
		if requestID == "" {
			requestID = uuid.New().String()
		}
		c.Response.Header.Set(RequestIDKey, requestID)

		reqLogger := logger.WithRequestID(base, requestID).With(
			"method", string(c.Method()),
			"path", path,
			"client_ip", c.ClientIP(),
		)
		if !skipLogging {
			reqLogger.Debug("request started")
		}

		c.Next(logger.WithContext(ctx, reqLogger))

		if skipLogging {
			return
		}

		latency := time.Since(start)
		statusCode := c.Response.StatusCode()
		done := reqLogger.With(
			"status", statusCode,
			"latency_ms", latency.Milliseconds(),
		)

		switch {
		case statusCode >= 500:
			done.Error("request completed with server error")
		case statusCode >= 400:
			done.Warn("request completed with client error")
		default:
			done.Info("request completed")
		}
	}
}

// GetRequestID returns the request ID set by Logger.
func GetRequestID(c *app.RequestContext) string {
	return string(c.Response.Header.Peek(RequestIDKey))
}
