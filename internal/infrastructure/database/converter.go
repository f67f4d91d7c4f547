package database

import (
	"database/sql"
	"fmt"

	"github.com/bytedance/sonic"

	"github.com/lvyanru/chat-history/internal/domain/entity"
)

// toMessageTurn 从 chat_items 行转换为 domain entity.MessageTurn
// An absent or JSON null response_data leaves ResponseData nil.
func toMessageTurn(seq int, role, value string, responseData []byte) (*entity.MessageTurn, error) {
	turn := &entity.MessageTurn{
		Seq:   seq,
		Role:  role,
		Value: value,
	}
	if len(responseData) == 0 {
		return turn, nil
	}

	var data any
	if err := sonic.Unmarshal(responseData, &data); err != nil {
		return nil, fmt.Errorf("malformed %s on turn %d: %w", entity.TaskResponseKey, seq, err)
	}
	turn.ResponseData = data
	return turn, nil
}

// userRow mirrors one row of the users table.
type userRow struct {
	ID           string
	Username     string
	PasswordHash string
	LastLoginAt  sql.NullTime
	DeletedAt    sql.NullTime
	CreatedAt    sql.NullTime
	UpdatedAt    sql.NullTime
}

// toUserEntity 从 users 行转换为 domain entity.User
func toUserEntity(r *userRow) *entity.User {
	if r == nil {
		return nil
	}
	u := &entity.User{
		ID:           r.ID,
		Username:     r.Username,
		PasswordHash: r.PasswordHash,
		CreatedAt:    r.CreatedAt.Time,
		UpdatedAt:    r.UpdatedAt.Time,
	}
	if r.LastLoginAt.Valid {
		t := r.LastLoginAt.Time
		u.LastLoginAt = &t
	}
	if r.DeletedAt.Valid {
		t := r.DeletedAt.Time
		u.DeletedAt = &t
	}
	return u
}
