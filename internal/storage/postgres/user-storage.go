package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"healthbot/internal/model"
)

// UserStorage persists users in Postgres with the context kept as a single
// jsonb column.
type UserStorage struct {
	db *pgxpool.Pool
}

func NewUserStorage(db *pgxpool.Pool) *UserStorage {
	return &UserStorage{db: db}
}

// Bootstrap creates the tables when they are absent. Schema changes beyond
// that are left to external migration tooling.
func (s *UserStorage) Bootstrap(ctx context.Context) error {
	const ddl = `
		CREATE TABLE IF NOT EXISTS users (
			id UUID PRIMARY KEY,
			telegram_id BIGINT NOT NULL UNIQUE,
			username TEXT NOT NULL DEFAULT '',
			first_name TEXT NOT NULL DEFAULT '',
			context JSONB NOT NULL DEFAULT '{}',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);
		CREATE TABLE IF NOT EXISTS reminders (
			id UUID PRIMARY KEY,
			user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			text TEXT NOT NULL,
			scheduled_at TIMESTAMPTZ NOT NULL,
			is_sent BOOLEAN NOT NULL DEFAULT FALSE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);
	`
	if _, err := s.db.Exec(ctx, ddl); err != nil {
		return fmt.Errorf("failed to bootstrap schema: %w", err)
	}
	return nil
}

func (s *UserStorage) GetUserByTelegramID(ctx context.Context, telegramID int64) (model.User, error) {
	const q = `
		SELECT id, telegram_id, username, first_name, context, created_at
		FROM users
		WHERE telegram_id = $1
		LIMIT 1
	`
	var user model.User
	err := s.db.QueryRow(ctx, q, telegramID).Scan(
		&user.UserID,
		&user.TelegramID,
		&user.Username,
		&user.FirstName,
		&user.Context,
		&user.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.User{}, model.ErrUserDoesNotExist
		}
		return model.User{}, fmt.Errorf("failed to get user %d: %w", telegramID, err)
	}
	return user, nil
}

func (s *UserStorage) CreateUser(ctx context.Context, user model.User) (model.User, error) {
	if user.UserID == uuid.Nil {
		user.UserID = uuid.New()
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now()
	}
	const q = `
		INSERT INTO users (id, telegram_id, username, first_name, context, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (telegram_id) DO NOTHING
	`
	cmdTag, err := s.db.Exec(ctx, q, user.UserID, user.TelegramID, user.Username, user.FirstName, user.Context, user.CreatedAt)
	if err != nil {
		return model.User{}, fmt.Errorf("failed to create user %d: %w", user.TelegramID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return model.User{}, model.ErrUserAlreadyExists
	}
	return user, nil
}

func (s *UserStorage) UpdateUserContext(ctx context.Context, telegramID int64, userCtx model.Context) error {
	const q = `UPDATE users SET context = $1 WHERE telegram_id = $2`
	cmdTag, err := s.db.Exec(ctx, q, userCtx, telegramID)
	if err != nil {
		return fmt.Errorf("failed to update context for user %d: %w", telegramID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return model.ErrUserDoesNotExist
	}
	return nil
}

func (s *UserStorage) DeleteUserByTelegramID(ctx context.Context, telegramID int64) error {
	const q = `DELETE FROM users WHERE telegram_id = $1`
	if _, err := s.db.Exec(ctx, q, telegramID); err != nil {
		return fmt.Errorf("failed to delete user %d: %w", telegramID, err)
	}
	return nil
}
