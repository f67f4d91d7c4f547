package handler

import (
	"errors"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/protocol/consts"

	"github.com/lvyanru/chat-history/internal/domain"
)

// Response 统一响应结构
type Response struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// SuccessResponse returns a successful response
func SuccessResponse(c *app.RequestContext, data interface{}) {
	c.JSON(consts.StatusOK, Response{
		Code:    "SUCCESS",
		Message: "operation successful",
		Data:    data,
	})
}

// CreatedResponse returns a created response
func CreatedResponse(c *app.RequestContext, data interface{}) {
	c.JSON(consts.StatusCreated, Response{
		Code:    "CREATED",
		Message: "resource created successfully",
		Data:    data,
	})
}

// errorStatuses 按顺序匹配，未命中的错误一律 500
var errorStatuses = []struct {
	kind   error
	status int
	code   string
}{
	{domain.ErrInvalidInput, consts.StatusBadRequest, domain.CodeInvalidInput},
	{domain.ErrUnauthorized, consts.StatusUnauthorized, domain.CodeUnauthorized},
	{domain.ErrForbidden, consts.StatusForbidden, domain.CodeForbidden},
	{domain.ErrNotFound, consts.StatusNotFound, domain.CodeNotFound},
	{domain.ErrAlreadyExists, consts.StatusConflict, domain.CodeAlreadyExists},
	{domain.ErrConflict, consts.StatusConflict, domain.CodeConflict},
}

// ErrorResponse maps err to a status and a client-safe message. Anything it does
// not recognise, storage failures included, becomes a bare 500.
func ErrorResponse(c *app.RequestContext, err error) {
	for _, e := range errorStatuses {
		if !errors.Is(err, e.kind) {
			continue
		}
		msg := e.kind.Error()
		var de *domain.DomainError
		if errors.As(err, &de) {
			msg = de.UserMessage()
		}
		c.JSON(e.status, Response{Code: e.code, Message: msg})
		return
	}

	c.JSON(consts.StatusInternalServerError, Response{
		Code:    domain.CodeInternal,
		Message: "internal server error",
	})
}

// currentUserID 读取 JWT 中间件写入的 user_id
func currentUserID(c *app.RequestContext) (string, error) {
	val, exists := c.Get(IdentityKey)
	if !exists {
		return "", domain.ErrUnauthorized
	}
	userID, ok := val.(string)
	if !ok || userID == "" {
		return "", domain.ErrUnauthorized
	}
	return userID, nil
}
