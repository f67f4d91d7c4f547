package domain

import (
	"context"

	"github.com/lvyanru/chat-history/internal/domain/entity"
)

// UserRepository stores the accounts that own chats. Lookups never return
// soft-deleted rows; they report ErrNotFound instead.
type UserRepository interface {
	Create(ctx context.Context, username, passwordHash string) (*entity.User, error)
	GetByUsername(ctx context.Context, username string) (*entity.User, error)
	GetByID(ctx context.Context, userID string) (*entity.User, error)
	UpdateLastLogin(ctx context.Context, userID string) error
}

// UserUsecase backs the auth endpoints and the JWT authorizator.
type UserUsecase interface {
	Register(ctx context.Context, username, password string) (*entity.User, error)
	// Login fails with the same invalid-input error for unknown, deleted or
	// wrong-password accounts.
	Login(ctx context.Context, username, password string) (*entity.User, error)
	// GetUser resolves a token subject to a live account.
	GetUser(ctx context.Context, userID string) (*entity.User, error)
}
