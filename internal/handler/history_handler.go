package handler

import (
	"context"
	"fmt"

	"github.com/cloudwego/hertz/pkg/app"

	"github.com/lvyanru/chat-history/internal/domain"
	"github.com/lvyanru/chat-history/internal/handler/dto"
	"github.com/lvyanru/chat-history/pkg/logger"
)

// HistoryHandler 聊天历史请求处理器
type HistoryHandler struct {
	usecase domain.HistoryUsecase
}

// NewHistoryHandler creates a new history handler
func NewHistoryHandler(usecase domain.HistoryUsecase) *HistoryHandler {
	return &HistoryHandler{
		usecase: usecase,
	}
}

// GetHistory returns the trailing window of one of the caller's chats.
//
//	@Summary		聊天历史
//	@Description	返回当前用户某个会话最近 limit 轮对话（默认 20），按时间正序排列
//	@Tags			Chat
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			request	body		dto.HistoryRequest		false	"查询参数"
//	@Success		200		{object}	dto.HistoryResponse		"聊天历史"
//	@Failure		400		{object}	map[string]string		"Invalid request parameters"
//	@Failure		401		{object}	map[string]string		"Unauthorized"
//	@Failure		403		{object}	map[string]string		"Account deleted"
//	@Failure		500		{object}	map[string]string		"Storage failure"
//	@Router			/chat/history [post]
func (h *HistoryHandler) GetHistory(ctx context.Context, c *app.RequestContext) {
	log := logger.FromContext(ctx)

	userID, err := currentUserID(c)
	if err != nil {
		log.Error("user_id not found in context")
		ErrorResponse(c, err)
		return
	}

	// 请求体可以为空
	var req dto.HistoryRequest
	if len(c.Request.Body()) > 0 {
		if err := c.BindJSON(&req); err != nil {
			log.Warn("invalid history request", "error", err)
			ErrorResponse(c, domain.NewInvalidInputError("request body must be a JSON object"))
			return
		}
	}

	query := &domain.HistoryQuery{
		ChatID: req.ChatID,
		UserID: userID,
	}
	if req.Limit != nil {
		if *req.Limit < 1 {
			ErrorResponse(c, domain.NewInvalidInputError(fmt.Sprintf("limit must be positive, got %d", *req.Limit)))
			return
		}
		query.Limit = *req.Limit
	}

	turns, err := h.usecase.GetHistory(ctx, query)
	if err != nil {
		if domain.IsInvalidInput(err) {
			log.Warn("history request rejected", "error", err, "chat_id", req.ChatID)
		} else {
			log.Error("failed to load chat history", "error", err, "chat_id", req.ChatID)
		}
		ErrorResponse(c, err)
		return
	}

	SuccessResponse(c, dto.ToHistoryResponse(turns))
}
