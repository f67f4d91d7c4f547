package domain

import (
	"context"

	"github.com/lvyanru/chat-history/internal/domain/entity"
)

// DefaultHistoryLimit is the window size used when a request does not name one.
const DefaultHistoryLimit = 20

// HistoryQuery 历史查询参数（每次请求构造，用完即弃）
type HistoryQuery struct {
	ChatID string // empty means "no chat", which yields an empty history
	UserID string // owner identity, already authenticated
	Limit  int    // 0 means DefaultHistoryLimit
}

// HistoryRepository 聊天历史只读存储接口
type HistoryRepository interface {
	// LastTurns returns at most limit trailing turns of the chat identified by
	// (chatID, userID), oldest first. A missing chat yields an empty slice.
	LastTurns(ctx context.Context, chatID, userID string, limit int) ([]*entity.MessageTurn, error)
}

// StorageReadiness makes sure the backing store is connected before use.
// Implementations must be idempotent and safe for concurrent callers.
type StorageReadiness interface {
	EnsureReady(ctx context.Context) error
}

// HistoryUsecase 聊天历史用例接口
type HistoryUsecase interface {
	// GetHistory returns the trailing window of a chat's turns in
	// conversation order.
	GetHistory(ctx context.Context, query *HistoryQuery) ([]*entity.MessageTurn, error)
}
