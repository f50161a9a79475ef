package model

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrUserDoesNotExist  = errors.New("user doesn't exist")
	ErrUserAlreadyExists = errors.New("user already exists")
)

// User is the single record kept per Telegram account. At most one User
// exists per TelegramID.
type User struct {
	UserID     uuid.UUID
	TelegramID int64
	Username   string
	FirstName  string
	Context    Context
	CreatedAt  time.Time
}

// Reminder is stored but never scheduled: nothing in the bot drives it yet.
type Reminder struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	Text        string
	ScheduledAt time.Time
	IsSent      bool
	CreatedAt   time.Time
}
