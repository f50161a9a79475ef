package key_value

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"healthbot/internal/model"
)

type dialogTurnInternal struct {
	Role string `json:"role"`
	Text string `json:"text"`
}

type contextInternal struct {
	SchemaVersion int                  `json:"v,omitempty"`
	Name          string               `json:"name,omitempty"`
	Age           string               `json:"age,omitempty"`
	Gender        string               `json:"gender,omitempty"`
	Height        string               `json:"height,omitempty"`
	Weight        string               `json:"weight,omitempty"`
	DialogHistory []dialogTurnInternal `json:"dialogHistory,omitempty"`
}

type userInternal struct {
	UserID     string          `json:"user_id"`
	TelegramID int64           `json:"telegram_id"`
	Username   string          `json:"username,omitempty"`
	FirstName  string          `json:"first_name,omitempty"`
	Context    contextInternal `json:"context"`
	CreatedAt  time.Time       `json:"created_at"`
}

// UserStorage persists users as JSON blobs in Redis, one key per Telegram id.
type UserStorage struct {
	rdb *redis.Client
}

func NewUserStorage(rdb *redis.Client) *UserStorage {
	return &UserStorage{
		rdb: rdb,
	}
}

func (u *UserStorage) GetUserByTelegramID(ctx context.Context, telegramID int64) (model.User, error) {
	userInt, err := u.getUser(ctx, telegramID)
	if err != nil {
		return model.User{}, err
	}
	return userInternalToModel(userInt)
}

func (u *UserStorage) CreateUser(ctx context.Context, user model.User) (model.User, error) {
	_, err := u.getUser(ctx, user.TelegramID)
	if err == nil {
		return model.User{}, model.ErrUserAlreadyExists
	}
	if !errors.Is(err, model.ErrUserDoesNotExist) {
		return model.User{}, err
	}

	if user.UserID == uuid.Nil {
		user.UserID = uuid.New()
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now()
	}
	if err = u.setUser(ctx, userInternalFromModel(user)); err != nil {
		return model.User{}, fmt.Errorf("failed to set user: %w", err)
	}
	return user, nil
}

func (u *UserStorage) UpdateUserContext(ctx context.Context, telegramID int64, userCtx model.Context) error {
	userInt, err := u.getUser(ctx, telegramID)
	if err != nil {
		return err
	}
	userInt.Context = contextFromModel(userCtx)
	if err = u.setUser(ctx, userInt); err != nil {
		return fmt.Errorf("failed to set user: %w", err)
	}
	return nil
}

func (u *UserStorage) DeleteUserByTelegramID(ctx context.Context, telegramID int64) error {
	if err := u.rdb.Del(ctx, getUserKey(telegramID)).Err(); err != nil {
		return fmt.Errorf("failed to delete user %d: %w", telegramID, err)
	}
	return nil
}

func (u *UserStorage) getUser(ctx context.Context, telegramID int64) (userInternal, error) {
	userKey := getUserKey(telegramID)
	userRaw, err := u.rdb.Get(ctx, userKey).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return userInternal{}, model.ErrUserDoesNotExist
		}
		return userInternal{}, fmt.Errorf("failed to get userInternal %s: %w", userKey, err)
	}
	var userInt userInternal
	if err = json.Unmarshal([]byte(userRaw), &userInt); err != nil {
		return userInternal{}, fmt.Errorf("failed to unmarshal userInternal %s: %w", userKey, err)
	}
	return userInt, nil
}

func (u *UserStorage) setUser(ctx context.Context, userInt userInternal) error {
	userKey := getUserKey(userInt.TelegramID)
	userJSON, err := json.Marshal(userInt)
	if err != nil {
		return fmt.Errorf("failed to marshal userInternal: %w", err)
	}
	if err = u.rdb.Set(ctx, userKey, userJSON, 0).Err(); err != nil {
		return fmt.Errorf("failed to save userInternal %s: %w", userKey, err)
	}
	return nil
}

func userInternalFromModel(user model.User) userInternal {
	return userInternal{
		UserID:     user.UserID.String(),
		TelegramID: user.TelegramID,
		Username:   user.Username,
		FirstName:  user.FirstName,
		Context:    contextFromModel(user.Context),
		CreatedAt:  user.CreatedAt,
	}
}

func userInternalToModel(userInt userInternal) (model.User, error) {
	userID, err := uuid.Parse(userInt.UserID)
	if err != nil {
		return model.User{}, fmt.Errorf("failed to parse userID %s: %w", userInt.UserID, err)
	}
	return model.User{
		UserID:     userID,
		TelegramID: userInt.TelegramID,
		Username:   userInt.Username,
		FirstName:  userInt.FirstName,
		Context:    contextToModel(userInt.Context),
		CreatedAt:  userInt.CreatedAt,
	}, nil
}

func contextFromModel(c model.Context) contextInternal {
	history := make([]dialogTurnInternal, 0, len(c.DialogHistory))
	for _, turn := range c.DialogHistory {
		history = append(
			history, dialogTurnInternal{
				Role: string(turn.Role),
				Text: turn.Text,
			},
		)
	}
	return contextInternal{
		SchemaVersion: c.SchemaVersion,
		Name:          c.Name,
		Age:           c.Age,
		Gender:        c.Gender,
		Height:        c.Height,
		Weight:        c.Weight,
		DialogHistory: history,
	}
}

func contextToModel(c contextInternal) model.Context {
	history := make([]model.DialogTurn, 0, len(c.DialogHistory))
	for _, turn := range c.DialogHistory {
		history = append(
			history, model.DialogTurn{
				Role: model.DialogRole(turn.Role),
				Text: turn.Text,
			},
		)
	}
	return model.Context{
		SchemaVersion: c.SchemaVersion,
		Name:          c.Name,
		Age:           c.Age,
		Gender:        c.Gender,
		Height:        c.Height,
		Weight:        c.Weight,
		DialogHistory: history,
	}
}

func getUserKey(telegramID int64) string {
	return fmt.Sprintf("tg_user_%d", telegramID)
}
