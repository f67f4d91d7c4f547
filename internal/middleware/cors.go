package middleware

import (
	"context"
	"strings"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
)

// corsHeaders only admit what the API uses: JSON bodies, bearer tokens, request ids.
var corsHeaders = map[string]string{
	"Access-Control-Allow-Origin":   "*",
	"Access-Control-Allow-Methods":  strings.Join([]string{consts.MethodGet, consts.MethodPost, consts.MethodOptions}, ", "),
	"Access-Control-Allow-Headers":  strings.Join([]string{"Content-Type", "Authorization", RequestIDKey}, ", "),
	"Access-Control-Expose-Headers": RequestIDKey,
	"Access-Control-Max-Age":        "86400",
}

// CORS answers preflight requests with 204 and decorates every other response.
func CORS() app.HandlerFunc {
	return func(ctx context.Context, c *app.RequestContext) {
		for k, v := range corsHeaders {
			c.Response.Header.Set(k, v)
		}
		if string(c.Method()) == consts.MethodOptions {
			c.AbortWithStatus(consts.StatusNoContent)
			return
		}
		c.Next(ctx)
	}
}
