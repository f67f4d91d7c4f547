package handler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
	"github.com/hertz-contrib/jwt"

	"github.com/lvyanru/chat-history/internal/config"
	"github.com/lvyanru/chat-history/internal/domain"
	"github.com/lvyanru/chat-history/internal/domain/entity"
	"github.com/lvyanru/chat-history/internal/handler/dto"
	"github.com/lvyanru/chat-history/pkg/logger"
)

// IdentityKey is the claim and RequestContext key holding the caller's user ID.
const IdentityKey = "user_id"

// UserHandler handles user-related HTTP requests
type UserHandler struct {
	usecase        domain.UserUsecase
	authMiddleware *jwt.HertzJWTMiddleware
	logger         *slog.Logger
}

// NewUserHandler creates a new user handler together with its JWT middleware.
func NewUserHandler(usecase domain.UserUsecase, cfg config.JWTConfig, log *slog.Logger) (*UserHandler, error) {
	authMiddleware, err := jwt.New(&jwt.HertzJWTMiddleware{
		Realm:       "chat-history",
		Key:         []byte(cfg.Secret),
		Timeout:     cfg.Timeout,
		MaxRefresh:  cfg.MaxRefresh,
		IdentityKey: IdentityKey,

		// 登录认证
		Authenticator: func(ctx context.Context, c *app.RequestContext) (interface{}, error) {
			var loginReq dto.Credentials
			if err := c.BindJSON(&loginReq); err != nil {
				return nil, jwt.ErrMissingLoginValues
			}

			user, err := usecase.Login(ctx, loginReq.Username, loginReq.Password)
			if err != nil {
				logger.FromContext(ctx).Warn("login failed", "username", loginReq.Username, "error", err)
				return nil, jwt.ErrFailedAuthentication
			}

			// LoginResponse 需要用户信息
			c.Set("user", user)
			return user, nil
		},

		// Token payload
		PayloadFunc: func(data interface{}) jwt.MapClaims {
			if user, ok := data.(*entity.User); ok {
				return jwt.MapClaims{
					IdentityKey: user.ID,
					"username":  user.Username,
				}
			}
			return jwt.MapClaims{}
		},

		// Extract identity from token and expose it to handlers
		IdentityHandler: func(ctx context.Context, c *app.RequestContext) interface{} {
			claims := jwt.ExtractClaims(ctx, c)
			if userID, ok := claims[IdentityKey].(string); ok && userID != "" {
				c.Set(IdentityKey, userID)
				return userID
			}
			return nil
		},

		// token 签发后被删除的用户立即失效，不必等到过期
		Authorizator: func(data interface{}, ctx context.Context, c *app.RequestContext) bool {
			userID, ok := data.(string)
			if !ok || userID == "" {
				return false
			}
			_, err := usecase.GetUser(ctx, userID)
			switch {
			case err == nil:
				return true
			case domain.IsNotFound(err), domain.IsInvalidInput(err):
				logger.FromContext(ctx).Warn("token of inactive user rejected", "user_id", userID)
				return false
			default:
				// 存储故障由后续 handler 报告为 500
				logger.FromContext(ctx).Warn("user lookup failed during authorization", "user_id", userID, "error", err)
				return true
			}
		},

		Unauthorized: func(ctx context.Context, c *app.RequestContext, code int, message string) {
			errCode := domain.CodeUnauthorized
			if code == consts.StatusForbidden {
				errCode = domain.CodeForbidden
			}
			c.JSON(code, Response{
				Code:    errCode,
				Message: message,
			})
		},

		LoginResponse: func(ctx context.Context, c *app.RequestContext, code int, token string, expire time.Time) {
			user, exists := c.Get("user")
			userEntity, ok := user.(*entity.User)
			if !exists || !ok {
				ErrorResponse(c, domain.NewInternalError(fmt.Errorf("user missing after login")))
				return
			}

			SuccessResponse(c, dto.SessionResponse{
				Token:   token,
				Expire:  expire.UTC(),
				Account: dto.NewAccountResponse(userEntity),
			})
		},

		RefreshResponse: func(ctx context.Context, c *app.RequestContext, code int, token string, expire time.Time) {
			c.JSON(consts.StatusOK, Response{
				Code:    "SUCCESS",
				Message: "token refreshed",
				Data: dto.SessionResponse{
					Token:  token,
					Expire: expire.UTC(),
				},
			})
		},

		TokenLookup:   "header: Authorization, query: token",
		TokenHeadName: "Bearer",
		TimeFunc:      time.Now,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create jwt middleware: %w", err)
	}

	return &UserHandler{
		usecase:        usecase,
		authMiddleware: authMiddleware,
		logger:         log,
	}, nil
}

// AuthMiddleware returns JWT authentication middleware (for route protection)
func (h *UserHandler) AuthMiddleware() app.HandlerFunc {
	return h.authMiddleware.MiddlewareFunc()
}

// Register handles user registration
//
//	@Summary		User registration
//	@Description	创建新用户账号
//	@Tags			认证
//	@Accept			json
//	@Produce		json
//	@Param			request	body		dto.Credentials		true	"注册信息"
//	@Success		201		{object}	dto.AccountResponse		"Registered successfully"
//	@Failure		400		{object}	map[string]string		"Invalid request parameters"
//	@Failure		409		{object}	map[string]string		"用户名已存在"
//	@Router			/auth/register [post]
func (h *UserHandler) Register(ctx context.Context, c *app.RequestContext) {
	log := logger.FromContext(ctx)

	var req dto.Credentials
	if err := c.BindJSON(&req); err != nil {
		log.Warn("invalid register request", "error", err)
		ErrorResponse(c, domain.NewInvalidInputError("username and password are required"))
		return
	}

	user, err := h.usecase.Register(ctx, req.Username, req.Password)
	if err != nil {
		log.Warn("register failed", "username", req.Username, "error", err)
		ErrorResponse(c, err)
		return
	}

	// 不返回密码哈希
	CreatedResponse(c, dto.NewAccountResponse(user))
}

// Login handles user login (using Hertz JWT LoginHandler)
//
//	@Summary		User login
//	@Description	用户名密码登录，返回 JWT Token
//	@Tags			认证
//	@Accept			json
//	@Produce		json
//	@Param			request	body		dto.Credentials		true	"登录信息"
//	@Success		200		{object}	dto.SessionResponse		"Login successful"
//	@Failure		401		{object}	map[string]string		"Invalid username or password"
//	@Router			/auth/login [post]
func (h *UserHandler) Login(ctx context.Context, c *app.RequestContext) {
	h.authMiddleware.LoginHandler(ctx, c)
}

// RefreshToken refreshes the authentication token
//
//	@Summary		Refresh token
//	@Tags			认证
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{object}	dto.SessionResponse	"Token refreshed"
//	@Failure		401	{object}	map[string]string	"Unauthorized"
//	@Router			/auth/refresh [post]
func (h *UserHandler) RefreshToken(ctx context.Context, c *app.RequestContext) {
	h.authMiddleware.RefreshHandler(ctx, c)
}

// GetCurrentUser retrieves the currently logged-in user's information
//
//	@Summary		获取当前用户
//	@Description	Get detailed information of current logged-in user
//	@Tags			User Management
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{object}	dto.AccountResponse	"User information"
//	@Failure		401	{object}	map[string]string	"Unauthorized"
//	@Router			/users/me [get]
func (h *UserHandler) GetCurrentUser(ctx context.Context, c *app.RequestContext) {
	userID, err := currentUserID(c)
	if err != nil {
		h.logger.Error("user_id not found in context")
		ErrorResponse(c, err)
		return
	}

	user, err := h.usecase.GetUser(ctx, userID)
	if err != nil {
		logger.FromContext(ctx).Error("failed to get current user", "error", err, "user_id", userID)
		ErrorResponse(c, err)
		return
	}

	SuccessResponse(c, dto.NewAccountResponse(user))
}
