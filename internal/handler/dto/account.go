package dto

import (
	"time"

	"github.com/lvyanru/chat-history/internal/domain/entity"
)

// Credentials is the body of both /auth/register and /auth/login.
// 密码长度上限 72 是 bcrypt 的输入限制
type Credentials struct {
	Username string `json:"username" binding:"required,min=3,max=50"`
	Password string `json:"password" binding:"required,min=6,max=72"`
}

// AccountResponse is the public view of a user. Timestamps are RFC3339.
type AccountResponse struct {
	ID          string     `json:"id"`
	Username    string     `json:"username"`
	CreatedAt   time.Time  `json:"created_at"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
}

// SessionResponse carries a freshly issued token. Account is empty on refresh.
type SessionResponse struct {
	Token   string           `json:"token"`
	Expire  time.Time        `json:"expire"`
	Account *AccountResponse `json:"user,omitempty"`
}

// NewAccountResponse hides everything but the public user fields.
func NewAccountResponse(user *entity.User) *AccountResponse {
	return &AccountResponse{
		ID:          user.ID,
		Username:    user.Username,
		CreatedAt:   user.CreatedAt.UTC(),
		LastLoginAt: utcOrNil(user.LastLoginAt),
	}
}

func utcOrNil(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}
