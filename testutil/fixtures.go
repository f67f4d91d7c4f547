package testutil

import (
	"context"
	"database/sql"
	"io"
	"log/slog"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	entsql "entgo.io/ent/dialect/sql"
	"github.com/bytedance/sonic"

	"github.com/lvyanru/chat-history/internal/config"
	"github.com/lvyanru/chat-history/internal/domain/entity"
	"github.com/lvyanru/chat-history/internal/ent/migrate"
	dbpkg "github.com/lvyanru/chat-history/pkg/database"
)

// DiscardLogger returns a logger that drops everything.
func DiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// NewSQLiteClient creates a migrated database client backed by a SQLite file in
// a temporary directory. The client is closed when the test ends.
func NewSQLiteClient(t *testing.T) *dbpkg.Client {
	t.Helper()
	cfg := config.DatabaseConfig{
		Driver:   config.DriverSQLite,
		Database: filepath.Join(t.TempDir(), "history.db"),
	}
	client, err := dbpkg.NewClient(context.Background(), cfg, DiscardLogger())
	if err != nil {
		t.Fatalf("Failed to open sqlite fixture: %v", err)
	}
	t.Cleanup(func() { _ = client.Close() })
	return client
}

// SeedChat inserts a chat owned by userID with the given turns, in order.
// Turn.Seq is ignored; positions are assigned 1..len(turns).
func SeedChat(t *testing.T, client *dbpkg.Client, chatID, userID string, turns []entity.MessageTurn) {
	t.Helper()
	ctx := context.Background()

	drv, err := client.Driver(ctx)
	if err != nil {
		t.Fatalf("Failed to get driver: %v", err)
	}
	b := entsql.Dialect(drv.Dialect())
	now := time.Now()

	query, args := b.Insert(migrate.ChatsTable.Name).
		Columns("chat_id", "user_id", "title", "created_at", "updated_at").
		Values(chatID, userID, "", now, now).
		Query()
	var res sql.Result
	if err := drv.Exec(ctx, query, args, &res); err != nil {
		t.Fatalf("Failed to insert chat: %v", err)
	}
	chatRef, err := res.LastInsertId()
	if err != nil {
		t.Fatalf("Failed to read chat id: %v", err)
	}

	for i, turn := range turns {
		var responseData any
		if turn.ResponseData != nil {
			raw, err := sonic.Marshal(turn.ResponseData)
			if err != nil {
				t.Fatalf("Failed to marshal response data: %v", err)
			}
			responseData = raw
		}
		query, args := b.Insert(migrate.ChatItemsTable.Name).
			Columns("chat_ref", "seq", "role", "value", "response_data", "created_at").
			Values(chatRef, i+1, turn.Role, turn.Value, responseData, now).
			Query()
		var res sql.Result
		if err := drv.Exec(ctx, query, args, &res); err != nil {
			t.Fatalf("Failed to insert chat item: %v", err)
		}
	}
}

// Turns builds n alternating Human/AI turns whose values are "turn-1".."turn-n".
func Turns(n int) []entity.MessageTurn {
	turns := make([]entity.MessageTurn, n)
	for i := range turns {
		role := entity.RoleHuman
		if i%2 == 1 {
			role = entity.RoleAI
		}
		turns[i] = entity.MessageTurn{
			Role:  role,
			Value: TurnValue(i + 1),
		}
	}
	return turns
}

// TurnValue is the value Turns gives to the turn at 1-based position pos.
func TurnValue(pos int) string {
	return "turn-" + strconv.Itoa(pos)
}
