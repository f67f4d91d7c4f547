package mocks

import (
	"context"

	"github.com/lvyanru/chat-history/internal/domain"
	"github.com/lvyanru/chat-history/internal/domain/entity"
)

// MockHistoryUsecase is a mock implementation of domain.HistoryUsecase
type MockHistoryUsecase struct {
	GetHistoryFunc func(ctx context.Context, query *domain.HistoryQuery) ([]*entity.MessageTurn, error)

	// LastQuery is the query of the most recent GetHistory call.
	LastQuery *domain.HistoryQuery
}

// GetHistory mocks the GetHistory method
func (m *MockHistoryUsecase) GetHistory(ctx context.Context, query *domain.HistoryQuery) ([]*entity.MessageTurn, error) {
	m.LastQuery = query
	if m.GetHistoryFunc != nil {
		return m.GetHistoryFunc(ctx, query)
	}
	return []*entity.MessageTurn{}, nil
}
