package mocks

import (
	"context"

	"github.com/lvyanru/chat-history/internal/domain"
	"github.com/lvyanru/chat-history/internal/domain/entity"
)

// MockUserUsecase is a mock implementation of domain.UserUsecase
type MockUserUsecase struct {
	RegisterFunc func(ctx context.Context, username, password string) (*entity.User, error)
	LoginFunc    func(ctx context.Context, username, password string) (*entity.User, error)
	GetUserFunc  func(ctx context.Context, userID string) (*entity.User, error)
}

// Register mocks the Register method
func (m *MockUserUsecase) Register(ctx context.Context, username, password string) (*entity.User, error) {
	if m.RegisterFunc != nil {
		return m.RegisterFunc(ctx, username, password)
	}
	return &entity.User{Username: username}, nil
}

// Login mocks the Login method
func (m *MockUserUsecase) Login(ctx context.Context, username, password string) (*entity.User, error) {
	if m.LoginFunc != nil {
		return m.LoginFunc(ctx, username, password)
	}
	return nil, domain.NewInvalidInputError("invalid username or password")
}

// GetUser mocks the GetUser method
func (m *MockUserUsecase) GetUser(ctx context.Context, userID string) (*entity.User, error) {
	if m.GetUserFunc != nil {
		return m.GetUserFunc(ctx, userID)
	}
	return nil, domain.NewNotFoundError("User", userID)
}
