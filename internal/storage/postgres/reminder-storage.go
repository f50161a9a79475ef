package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"healthbot/internal/model"
)

// ReminderStorage holds reminder rows. No scheduler reads them yet; the
// table exists so reminders created elsewhere survive until one does.
// Mutation methods (mark sent, delete) come with the scheduler.
type ReminderStorage struct {
	db *pgxpool.Pool
}

func NewReminderStorage(db *pgxpool.Pool) *ReminderStorage {
	return &ReminderStorage{db: db}
}

func (s *ReminderStorage) CreateReminder(ctx context.Context, reminder model.Reminder) (model.Reminder, error) {
	if reminder.ID == uuid.Nil {
		reminder.ID = uuid.New()
	}
	if reminder.CreatedAt.IsZero() {
		reminder.CreatedAt = time.Now()
	}
	const q = `
		INSERT INTO reminders (id, user_id, text, scheduled_at, is_sent, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := s.db.Exec(ctx, q, reminder.ID, reminder.UserID, reminder.Text, reminder.ScheduledAt, reminder.IsSent, reminder.CreatedAt)
	if err != nil {
		return model.Reminder{}, fmt.Errorf("failed to create reminder: %w", err)
	}
	return reminder, nil
}

func (s *ReminderStorage) ListUserReminders(ctx context.Context, userID uuid.UUID) ([]model.Reminder, error) {
	const q = `
		SELECT id, user_id, text, scheduled_at, is_sent, created_at
		FROM reminders
		WHERE user_id = $1
		ORDER BY scheduled_at
	`
	rows, err := s.db.Query(ctx, q, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list reminders for user %s: %w", userID, err)
	}
	defer rows.Close()

	reminders := make([]model.Reminder, 0)
	for rows.Next() {
		var r model.Reminder
		if err = rows.Scan(&r.ID, &r.UserID, &r.Text, &r.ScheduledAt, &r.IsSent, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan reminder: %w", err)
		}
		reminders = append(reminders, r)
	}
	return reminders, rows.Err()
}
