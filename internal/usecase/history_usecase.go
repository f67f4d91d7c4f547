package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/lvyanru/chat-history/internal/domain"
	"github.com/lvyanru/chat-history/internal/domain/entity"
)

// historyUsecase is the HistoryUsecase implementation.
// 它只读取会话末尾的一段历史，不修改任何数据。
type historyUsecase struct {
	storage     domain.StorageReadiness
	historyRepo domain.HistoryRepository
	maxLimit    int
	logger      *slog.Logger
}

// NewHistoryUsecase creates a new history usecase.
//
// Parameters:
//   - storage: makes sure the database is connected before the query
//   - historyRepo: read-only access to chat turns
//   - maxLimit: largest window a caller may request, bigger limits are clamped
//   - logger: structured logger
//
// Returns:
//   - domain.HistoryUsecase interface implementation
func NewHistoryUsecase(
	storage domain.StorageReadiness,
	historyRepo domain.HistoryRepository,
	maxLimit int,
	logger *slog.Logger,
) domain.HistoryUsecase {
	return &historyUsecase{
		storage:     storage,
		historyRepo: historyRepo,
		maxLimit:    maxLimit,
		logger:      logger,
	}
}

// GetHistory returns the last Limit turns of the chat, oldest first.
//
// An empty ChatID short-circuits to an empty history without touching storage.
// A chat that does not exist, or belongs to another user, also yields an
// empty history. Storage failures are returned as they are.
func (u *historyUsecase) GetHistory(ctx context.Context, query *domain.HistoryQuery) ([]*entity.MessageTurn, error) {
	if query == nil {
		return nil, domain.ErrInvalidInput
	}
	if query.ChatID == "" {
		return []*entity.MessageTurn{}, nil
	}

	limit, err := u.normalize(query)
	if err != nil {
		return nil, err
	}

	if err := u.storage.EnsureReady(ctx); err != nil {
		return nil, err
	}

	turns, err := u.historyRepo.LastTurns(ctx, query.ChatID, query.UserID, limit)
	if err != nil {
		return nil, err
	}

	u.logger.Debug("chat history loaded",
		"chat_id", query.ChatID,
		"user_id", query.UserID,
		"limit", limit,
		"turns", len(turns),
	)
	return turns, nil
}

// normalize validates the owner and resolves the effective window size.
func (u *historyUsecase) normalize(query *domain.HistoryQuery) (int, error) {
	if _, err := uuid.Parse(query.UserID); err != nil {
		return 0, domain.NewInvalidInputError("invalid user_id format (must be UUID)")
	}

	limit := query.Limit
	switch {
	case limit == 0:
		limit = domain.DefaultHistoryLimit
	case limit < 0:
		return 0, domain.NewInvalidInputError(fmt.Sprintf("limit must be positive, got %d", limit))
	}

	if u.maxLimit > 0 && limit > u.maxLimit {
		u.logger.Debug("history limit clamped", "requested", limit, "max", u.maxLimit)
		limit = u.maxLimit
	}
	return limit, nil
}
