package mocks

import (
	"context"

	"github.com/lvyanru/chat-history/internal/domain/entity"
)

// MockHistoryRepository is a mock implementation of domain.HistoryRepository
type MockHistoryRepository struct {
	LastTurnsFunc func(ctx context.Context, chatID, userID string, limit int) ([]*entity.MessageTurn, error)

	// Calls counts LastTurns invocations.
	Calls int
}

// LastTurns mocks the LastTurns method
func (m *MockHistoryRepository) LastTurns(ctx context.Context, chatID, userID string, limit int) ([]*entity.MessageTurn, error) {
	m.Calls++
	if m.LastTurnsFunc != nil {
		return m.LastTurnsFunc(ctx, chatID, userID, limit)
	}
	return []*entity.MessageTurn{}, nil
}

// MockStorageReadiness is a mock implementation of domain.StorageReadiness
type MockStorageReadiness struct {
	EnsureReadyFunc func(ctx context.Context) error

	Calls int
}

// EnsureReady mocks the EnsureReady method
func (m *MockStorageReadiness) EnsureReady(ctx context.Context) error {
	m.Calls++
	if m.EnsureReadyFunc != nil {
		return m.EnsureReadyFunc(ctx)
	}
	return nil
}
