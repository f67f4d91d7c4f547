package handler

import (
	"context"
	"time"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/common/utils"
	"github.com/cloudwego/hertz/pkg/protocol/consts"

	"github.com/lvyanru/chat-history/pkg/logger"
)

const readinessTimeout = 2 * time.Second

// Pinger reports whether storage is reachable. pkg/database connects lazily,
// so the first readiness probe may also open the pool.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler serves the unauthenticated probes.
type HealthHandler struct {
	db      Pinger
	started time.Time
}

func NewHealthHandler(db Pinger) *HealthHandler {
	return &HealthHandler{db: db, started: time.Now()}
}

// Ping
//
//	@Summary	Ping
//	@Tags		health
//	@Produce	json
//	@Success	200	{object}	map[string]string
//	@Router		/ping [get]
func (h *HealthHandler) Ping(ctx context.Context, c *app.RequestContext) {
	c.JSON(consts.StatusOK, utils.H{"message": "pong"})
}

// Liveness only proves the process answers; it never touches storage.
//
//	@Summary	存活检查
//	@Tags		health
//	@Produce	json
//	@Success	200	{object}	map[string]interface{}
//	@Router		/health/live [get]
func (h *HealthHandler) Liveness(ctx context.Context, c *app.RequestContext) {
	c.JSON(consts.StatusOK, utils.H{
		"status": "alive",
		"uptime": time.Since(h.started).Round(time.Second).String(),
	})
}

// Readiness pings the database. The cause of a failure is logged, not returned.
//
//	@Summary	就绪检查（数据库）
//	@Tags		health
//	@Produce	json
//	@Success	200	{object}	map[string]string
//	@Failure	503	{object}	map[string]string
//	@Router		/health/ready [get]
func (h *HealthHandler) Readiness(ctx context.Context, c *app.RequestContext) {
	pingCtx, cancel := context.WithTimeout(ctx, readinessTimeout)
	defer cancel()

	if err := h.db.Ping(pingCtx); err != nil {
		logger.FromContext(ctx).Warn("readiness check failed", "error", err)
		c.JSON(consts.StatusServiceUnavailable, utils.H{"status": "not_ready", "database": "unhealthy"})
		return
	}
	c.JSON(consts.StatusOK, utils.H{"status": "ready", "database": "healthy"})
}
