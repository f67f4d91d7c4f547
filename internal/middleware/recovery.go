package middleware

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/common/utils"
	"github.com/cloudwego/hertz/pkg/protocol/consts"

	"github.com/lvyanru/chat-history/internal/domain"
)

// Recovery turns a panic in any later handler into a 500 for that request only.
// 它排在 Logger 之前，所以用 base logger 并手动带上 request_id
func Recovery(base *slog.Logger) app.HandlerFunc {
	return func(ctx context.Context, c *app.RequestContext) {
		defer func() {
			r := recover()
			if r == nil {
				return
			}
			base.Error("panic recovered",
				"request_id", GetRequestID(c),
				"route", c.FullPath(),
				"panic", fmt.Sprint(r),
				"stack", string(debug.Stack()),
			)
			c.AbortWithStatusJSON(consts.StatusInternalServerError, utils.H{
				"code":    domain.CodeInternal,
				"message": "internal server error",
			})
		}()

		c.Next(ctx)
	}
}
