package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
	"entgo.io/ent/dialect/sql/sqlgraph"
	"github.com/google/uuid"

	"github.com/lvyanru/chat-history/internal/domain"
	"github.com/lvyanru/chat-history/internal/domain/entity"
	"github.com/lvyanru/chat-history/internal/ent/migrate"
	dbpkg "github.com/lvyanru/chat-history/pkg/database"
)

var userColumns = []string{
	"id", "username", "password_hash", "last_login_at", "deleted_at", "created_at", "updated_at",
}

// userRepository is UserRepository interface的database实现
type userRepository struct {
	client *dbpkg.Client
}

// NewUserRepository 创建一个新的 UserRepository 实例
func NewUserRepository(client *dbpkg.Client) domain.UserRepository {
	return &userRepository{
		client: client,
	}
}

// Create 创建用户
func (r *userRepository) Create(ctx context.Context, username, passwordHash string) (*entity.User, error) {
	drv, err := r.client.Driver(ctx)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	row := &userRow{
		ID:           uuid.New().String(),
		Username:     username,
		PasswordHash: passwordHash,
		CreatedAt:    sql.NullTime{Time: now, Valid: true},
		UpdatedAt:    sql.NullTime{Time: now, Valid: true},
	}

	query, args := entsql.Dialect(drv.Dialect()).
		Insert(migrate.UsersTable.Name).
		Columns("id", "username", "password_hash", "created_at", "updated_at").
		Values(row.ID, row.Username, row.PasswordHash, now, now).
		Query()

	var res sql.Result
	if err := drv.Exec(ctx, query, args, &res); err != nil {
		// 检查是否是唯一约束错误
		if sqlgraph.IsUniqueConstraintError(err) {
			return nil, domain.NewAlreadyExistsError("User", username)
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return toUserEntity(row), nil
}

// GetByUsername 根据用户名查找（只查询未删除的用户）
func (r *userRepository) GetByUsername(ctx context.Context, username string) (*entity.User, error) {
	u, err := r.getOne(ctx, "username", username)
	if err != nil {
		if domain.IsNotFound(err) {
			return nil, domain.NewNotFoundError("User", username)
		}
		return nil, fmt.Errorf("failed to get user by username: %w", err)
	}
	return u, nil
}

// GetByID 根据 ID 查找（只查询未删除的用户）
func (r *userRepository) GetByID(ctx context.Context, userID string) (*entity.User, error) {
	if _, err := uuid.Parse(userID); err != nil {
		return nil, domain.NewInvalidInputError("invalid user id")
	}

	u, err := r.getOne(ctx, "id", userID)
	if err != nil {
		if domain.IsNotFound(err) {
			return nil, domain.NewNotFoundError("User", userID)
		}
		return nil, fmt.Errorf("failed to get user by id: %w", err)
	}
	return u, nil
}

// UpdateLastLogin 更新最后登录时间
func (r *userRepository) UpdateLastLogin(ctx context.Context, userID string) error {
	drv, err := r.client.Driver(ctx)
	if err != nil {
		return err
	}

	now := time.Now()
	query, args := entsql.Dialect(drv.Dialect()).
		Update(migrate.UsersTable.Name).
		Set("last_login_at", now).
		Set("updated_at", now).
		Where(entsql.EQ("id", userID)).
		Query()

	var res sql.Result
	if err := drv.Exec(ctx, query, args, &res); err != nil {
		return fmt.Errorf("failed to update last login: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return domain.NewNotFoundError("User", userID)
	}
	return nil
}

// getOne loads the single non-deleted user whose column equals value.
func (r *userRepository) getOne(ctx context.Context, column string, value any) (*entity.User, error) {
	drv, err := r.client.Driver(ctx)
	if err != nil {
		return nil, err
	}

	b := entsql.Dialect(drv.Dialect())
	t := b.Table(migrate.UsersTable.Name)
	columns := make([]string, len(userColumns))
	for i, c := range userColumns {
		columns[i] = t.C(c)
	}

	query, args := b.Select(columns...).
		From(t).
		Where(entsql.And(
			entsql.EQ(t.C(column), value),
			entsql.IsNull(t.C("deleted_at")), // 只查询未删除的用户
		)).
		Limit(1).
		Query()

	rows := &entsql.Rows{}
	if err := drv.Query(ctx, query, args, rows); err != nil {
		return nil, err
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, err
		}
		return nil, domain.ErrNotFound
	}

	var row userRow
	if err := rows.Scan(
		&row.ID,
		&row.Username,
		&row.PasswordHash,
		&row.LastLoginAt,
		&row.DeletedAt,
		&row.CreatedAt,
		&row.UpdatedAt,
	); err != nil {
		return nil, err
	}

	return toUserEntity(&row), nil
}
