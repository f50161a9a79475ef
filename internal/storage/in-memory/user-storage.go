package in_memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"healthbot/internal/model"
)

// UserStorage keeps users in process memory. Used by tests and by the
// "memory" backend for local runs without Postgres or Redis.
type UserStorage struct {
	mu    sync.RWMutex
	users map[int64]model.User
}

func NewUserStorage() *UserStorage {
	return &UserStorage{
		users: make(map[int64]model.User),
	}
}

func (u *UserStorage) GetUserByTelegramID(_ context.Context, telegramID int64) (model.User, error) {
	u.mu.RLock()
	defer u.mu.RUnlock()
	user, ok := u.users[telegramID]
	if !ok {
		return model.User{}, model.ErrUserDoesNotExist
	}
	return user, nil
}

func (u *UserStorage) CreateUser(_ context.Context, user model.User) (model.User, error) {
	u.mu.Lock()
	defer u.mu.Unlock()
	if _, ok := u.users[user.TelegramID]; ok {
		return model.User{}, model.ErrUserAlreadyExists
	}
	if user.UserID == uuid.Nil {
		user.UserID = uuid.New()
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now()
	}
	u.users[user.TelegramID] = user
	return user, nil
}

func (u *UserStorage) UpdateUserContext(_ context.Context, telegramID int64, userCtx model.Context) error {
	u.mu.Lock()
	defer u.mu.Unlock()
	user, ok := u.users[telegramID]
	if !ok {
		return model.ErrUserDoesNotExist
	}
	user.Context = userCtx
	u.users[telegramID] = user
	return nil
}

func (u *UserStorage) DeleteUserByTelegramID(_ context.Context, telegramID int64) error {
	u.mu.Lock()
	defer u.mu.Unlock()
	delete(u.users, telegramID)
	return nil
}
