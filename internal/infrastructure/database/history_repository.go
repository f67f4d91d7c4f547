package database

import (
	"context"
	"fmt"
	"slices"

	entsql "entgo.io/ent/dialect/sql"

	"github.com/lvyanru/chat-history/internal/domain"
	"github.com/lvyanru/chat-history/internal/domain/entity"
	"github.com/lvyanru/chat-history/internal/ent/migrate"
	dbpkg "github.com/lvyanru/chat-history/pkg/database"
)

// historyRepository is the SQL implementation of domain.HistoryRepository.
// Turns live in chat_items, one row per turn, ordered by seq inside a chat.
type historyRepository struct {
	client *dbpkg.Client
}

// NewHistoryRepository creates a new HistoryRepository instance.
//
// Parameters:
//   - client: process wide database client
//
// Returns:
//   - domain.HistoryRepository: Repository interface implementation
func NewHistoryRepository(client *dbpkg.Client) domain.HistoryRepository {
	return &historyRepository{
		client: client,
	}
}

// LastTurns loads the trailing window of a chat.
//
// The window is cut by the database: rows are read newest first with LIMIT and
// reversed here, so at most limit rows are transferred. The chat is matched on
// both chat_id and user_id, a chat id owned by someone else matches nothing.
func (r *historyRepository) LastTurns(ctx context.Context, chatID, userID string, limit int) ([]*entity.MessageTurn, error) {
	if limit < 1 {
		return nil, domain.NewInvalidInputError(fmt.Sprintf("limit must be positive, got %d", limit))
	}

	drv, err := r.client.Driver(ctx)
	if err != nil {
		return nil, err
	}

	b := entsql.Dialect(drv.Dialect())
	items := b.Table(migrate.ChatItemsTable.Name).As("ci")
	chats := b.Table(migrate.ChatsTable.Name).As("c")

	query, args := b.Select(
		items.C("seq"),
		items.C("role"),
		items.C("value"),
		items.C("response_data"),
	).
		From(items).
		Join(chats).On(items.C("chat_ref"), chats.C("id")).
		Where(entsql.And(
			entsql.EQ(chats.C("chat_id"), chatID),
			entsql.EQ(chats.C("user_id"), userID),
		)).
		OrderBy(entsql.Desc(items.C("seq"))).
		Limit(limit).
		Query()

	rows := &entsql.Rows{}
	if err := drv.Query(ctx, query, args, rows); err != nil {
		return nil, fmt.Errorf("failed to query chat history: %w", err)
	}
	defer rows.Close()

	turns := make([]*entity.MessageTurn, 0, min(limit, 64))
	for rows.Next() {
		var (
			seq          int
			role, value  string
			responseData []byte
		)
		if err := rows.Scan(&seq, &role, &value, &responseData); err != nil {
			return nil, fmt.Errorf("failed to scan chat item: %w", err)
		}
		turn, err := toMessageTurn(seq, role, value, responseData)
		if err != nil {
			return nil, err
		}
		turns = append(turns, turn)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read chat history: %w", err)
	}

	// newest first -> conversation order
	slices.Reverse(turns)
	return turns, nil
}
