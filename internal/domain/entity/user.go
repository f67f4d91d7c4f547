package entity

import "time"

// User owns chats; the history query is always scoped to one User.ID (a UUID).
type User struct {
	ID           string
	Username     string
	PasswordHash string
	LastLoginAt  *time.Time
	// DeletedAt != nil 表示软删除，账号不能再登录，已签发的 token 也会被拒绝
	DeletedAt *time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (u *User) IsDeleted() bool { return u.DeletedAt != nil }
