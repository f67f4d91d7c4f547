package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"sync"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/lvyanru/chat-history/internal/domain"
	"github.com/lvyanru/chat-history/internal/domain/entity"
)

const (
	minPasswordLen = 6
	// bcrypt 只使用前 72 字节
	maxPasswordLen = 72

	lastLoginTimeout = 5 * time.Second
)

var (
	usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_]{3,50}$`)

	// 所有登录失败都返回同一个错误，不暴露用户名是否存在
	errBadCredentials = domain.NewInvalidInputError("invalid username or password")

	// 用户不存在时也做一次 bcrypt 比较，让响应时间一致
	decoyHash = sync.OnceValue(func() []byte {
		h, _ := bcrypt.GenerateFromPassword([]byte("decoy-password"), bcrypt.DefaultCost)
		return h
	})
)

// userUsecase owns the accounts whose tokens guard the history endpoint.
type userUsecase struct {
	userRepo domain.UserRepository
	logger   *slog.Logger
}

// NewUserUsecase creates the account usecase.
func NewUserUsecase(userRepo domain.UserRepository, logger *slog.Logger) domain.UserUsecase {
	return &userUsecase{
		userRepo: userRepo,
		logger:   logger,
	}
}

// Register creates an account after validating the credentials.
func (u *userUsecase) Register(ctx context.Context, username, password string) (*entity.User, error) {
	if err := checkCredentials(username, password); err != nil {
		return nil, err
	}

	switch _, err := u.userRepo.GetByUsername(ctx, username); {
	case err == nil:
		return nil, domain.NewAlreadyExistsError("User", username)
	case !domain.IsNotFound(err):
		return nil, fmt.Errorf("failed to check username: %w", err)
	}

	hash, err := hashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user, err := u.userRepo.Create(ctx, username, hash)
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	u.logger.Info("account registered", "user_id", user.ID, "username", user.Username)
	return user, nil
}

// Login checks the password of a live account and records the login in the background.
func (u *userUsecase) Login(ctx context.Context, username, password string) (*entity.User, error) {
	user, err := u.userRepo.GetByUsername(ctx, username)
	switch {
	case domain.IsNotFound(err):
		_ = bcrypt.CompareHashAndPassword(decoyHash(), []byte(password))
		return nil, errBadCredentials
	case err != nil:
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	if user.IsDeleted() || verifyPassword(user.PasswordHash, password) != nil {
		return nil, errBadCredentials
	}

	go u.touchLastLogin(context.WithoutCancel(ctx), user.ID)

	u.logger.Info("account logged in", "user_id", user.ID, "username", user.Username)
	return user, nil
}

// GetUser returns the live account behind a token subject.
func (u *userUsecase) GetUser(ctx context.Context, userID string) (*entity.User, error) {
	user, err := u.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.IsDeleted() {
		return nil, domain.NewNotFoundError("User", userID)
	}
	return user, nil
}

func (u *userUsecase) touchLastLogin(ctx context.Context, userID string) {
	ctx, cancel := context.WithTimeout(ctx, lastLoginTimeout)
	defer cancel()
	if err := u.userRepo.UpdateLastLogin(ctx, userID); err != nil {
		u.logger.Error("failed to update last login", "error", err, "user_id", userID)
	}
}

func checkCredentials(username, password string) error {
	if !usernamePattern.MatchString(username) {
		return domain.NewInvalidInputError("username must be 3-50 characters and contain only letters, numbers, and underscores")
	}
	switch {
	case len(password) < minPasswordLen:
		return domain.NewInvalidInputError(fmt.Sprintf("password must be at least %d characters", minPasswordLen))
	case len(password) > maxPasswordLen:
		return domain.NewInvalidInputError(fmt.Sprintf("password too long (max %d characters)", maxPasswordLen))
	}
	return nil
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(hash), err
}

func verifyPassword(hash, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}
