package usecase

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lvyanru/chat-history/internal/domain"
	"github.com/lvyanru/chat-history/internal/domain/entity"
	"github.com/lvyanru/chat-history/internal/domain/mocks"
)

const (
	ownerA = "0b7c6f8e-3f0e-4d3a-9a61-2f1f6f7b1a01"
	ownerB = "7d2e41c4-58c9-4b8e-8f8c-9a3c2b1d0e02"
)

// memoryHistory is an in-memory chat store keyed by (chatID, userID).
type memoryHistory map[[2]string][]*entity.MessageTurn

func (m memoryHistory) add(chatID, userID string, n int) {
	turns := make([]*entity.MessageTurn, n)
	for i := range turns {
		turns[i] = &entity.MessageTurn{Seq: i + 1, Role: entity.RoleHuman, Value: string(rune('a' + i%26))}
	}
	m[[2]string{chatID, userID}] = turns
}

func (m memoryHistory) lastTurns(_ context.Context, chatID, userID string, limit int) ([]*entity.MessageTurn, error) {
	turns := m[[2]string{chatID, userID}]
	if len(turns) > limit {
		turns = turns[len(turns)-limit:]
	}
	out := make([]*entity.MessageTurn, len(turns))
	copy(out, turns)
	return out, nil
}

func seqs(turns []*entity.MessageTurn) []int {
	out := make([]int, len(turns))
	for i, t := range turns {
		out[i] = t.Seq
	}
	return out
}

func seqRange(from, to int) []int {
	out := []int{}
	for i := from; i <= to; i++ {
		out = append(out, i)
	}
	return out
}

func newHistoryFixture(maxLimit int) (domain.HistoryUsecase, *mocks.MockHistoryRepository, *mocks.MockStorageReadiness) {
	store := memoryHistory{}
	store.add("chat-1", ownerA, 25)
	store.add("chat-2", ownerA, 3)
	store.add("chat-4", ownerB, 5)

	repo := &mocks.MockHistoryRepository{LastTurnsFunc: store.lastTurns}
	storage := &mocks.MockStorageReadiness{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewHistoryUsecase(storage, repo, maxLimit, logger), repo, storage
}

func TestGetHistory(t *testing.T) {
	tests := []struct {
		name     string
		query    *domain.HistoryQuery
		maxLimit int
		wantSeqs []int
	}{
		{
			name:     "last 20 of 25",
			query:    &domain.HistoryQuery{ChatID: "chat-1", UserID: ownerA, Limit: 20},
			wantSeqs: seqRange(6, 25),
		},
		{
			name:     "default limit returns short chat whole",
			query:    &domain.HistoryQuery{ChatID: "chat-2", UserID: ownerA},
			wantSeqs: seqRange(1, 3),
		},
		{
			name:     "default limit equals twenty",
			query:    &domain.HistoryQuery{ChatID: "chat-1", UserID: ownerA},
			wantSeqs: seqRange(6, 25),
		},
		{
			name:     "missing chat",
			query:    &domain.HistoryQuery{ChatID: "chat-3", UserID: ownerA, Limit: 20},
			wantSeqs: []int{},
		},
		{
			name:     "other owner's chat",
			query:    &domain.HistoryQuery{ChatID: "chat-4", UserID: ownerA, Limit: 20},
			wantSeqs: []int{},
		},
		{
			name:     "limit above max is clamped",
			query:    &domain.HistoryQuery{ChatID: "chat-1", UserID: ownerA, Limit: 1000},
			maxLimit: 10,
			wantSeqs: seqRange(16, 25),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			maxLimit := tt.maxLimit
			if maxLimit == 0 {
				maxLimit = 200
			}
			uc, _, storage := newHistoryFixture(maxLimit)

			turns, err := uc.GetHistory(context.Background(), tt.query)
			require.NoError(t, err)
			require.NotNil(t, turns)
			assert.Equal(t, tt.wantSeqs, seqs(turns))
			assert.Equal(t, 1, storage.Calls, "storage must be made ready before the query")
		})
	}
}

func TestGetHistory_EmptyChatIDSkipsStorage(t *testing.T) {
	uc, repo, storage := newHistoryFixture(200)

	turns, err := uc.GetHistory(context.Background(), &domain.HistoryQuery{UserID: ownerA, Limit: 20})
	require.NoError(t, err)
	assert.NotNil(t, turns)
	assert.Empty(t, turns)
	assert.Zero(t, repo.Calls)
	assert.Zero(t, storage.Calls)
}

func TestGetHistory_PassesEffectiveLimit(t *testing.T) {
	var gotLimit int
	repo := &mocks.MockHistoryRepository{
		LastTurnsFunc: func(_ context.Context, chatID, userID string, limit int) ([]*entity.MessageTurn, error) {
			gotLimit = limit
			assert.Equal(t, "chat-1", chatID)
			assert.Equal(t, ownerA, userID)
			return []*entity.MessageTurn{}, nil
		},
	}
	uc := NewHistoryUsecase(&mocks.MockStorageReadiness{}, repo, 200, slog.New(slog.NewTextHandler(io.Discard, nil)))

	_, err := uc.GetHistory(context.Background(), &domain.HistoryQuery{ChatID: "chat-1", UserID: ownerA})
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultHistoryLimit, gotLimit)
}

func TestGetHistory_InvalidInput(t *testing.T) {
	tests := []struct {
		name  string
		query *domain.HistoryQuery
	}{
		{name: "nil query", query: nil},
		{name: "malformed owner", query: &domain.HistoryQuery{ChatID: "chat-1", UserID: "not-a-uuid"}},
		{name: "negative limit", query: &domain.HistoryQuery{ChatID: "chat-1", UserID: ownerA, Limit: -1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc, repo, storage := newHistoryFixture(200)

			_, err := uc.GetHistory(context.Background(), tt.query)
			assert.True(t, domain.IsInvalidInput(err), "got %v", err)
			assert.Zero(t, repo.Calls)
			assert.Zero(t, storage.Calls)
		})
	}
}

func TestGetHistory_StorageFailuresPropagate(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	t.Run("storage not ready", func(t *testing.T) {
		unavailable := errors.New("dial tcp: connection refused")
		repo := &mocks.MockHistoryRepository{}
		storage := &mocks.MockStorageReadiness{
			EnsureReadyFunc: func(context.Context) error { return unavailable },
		}
		uc := NewHistoryUsecase(storage, repo, 200, logger)

		turns, err := uc.GetHistory(context.Background(), &domain.HistoryQuery{ChatID: "chat-1", UserID: ownerA})
		assert.ErrorIs(t, err, unavailable)
		assert.Nil(t, turns)
		assert.Zero(t, repo.Calls)
	})

	t.Run("query fails", func(t *testing.T) {
		queryErr := errors.New("query failed")
		repo := &mocks.MockHistoryRepository{
			LastTurnsFunc: func(context.Context, string, string, int) ([]*entity.MessageTurn, error) {
				return nil, queryErr
			},
		}
		uc := NewHistoryUsecase(&mocks.MockStorageReadiness{}, repo, 200, logger)

		turns, err := uc.GetHistory(context.Background(), &domain.HistoryQuery{ChatID: "chat-1", UserID: ownerA})
		assert.Same(t, queryErr, err)
		assert.Nil(t, turns)
		assert.Equal(t, 1, repo.Calls)
	})
}
