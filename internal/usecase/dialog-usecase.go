package usecase

import (
	"context"
	"fmt"

	"healthbot/internal/model"
)

const (
	// MaxDialogHistory caps the stored history. AppendTurn keeps the ring
	// under the cap by trimming the oldest turns; ResetIfFull is the
	// user-visible full reset on top of it.
	MaxDialogHistory = 50

	// PromptContextTurns is how many recent turns go into the prompt.
	PromptContextTurns = 3
)

type DialogUsecaseDeps struct {
	Context *ContextUsecase
}

// DialogUsecase maintains the bounded dialog history kept inside the user's
// context blob.
type DialogUsecase struct {
	DialogUsecaseDeps
}

func NewDialogUsecase(deps DialogUsecaseDeps) *DialogUsecase {
	return &DialogUsecase{
		DialogUsecaseDeps: deps,
	}
}

// AppendTurn appends one turn and trims the history to the most recent
// MaxDialogHistory entries before persisting.
func (d *DialogUsecase) AppendTurn(ctx context.Context, telegramID int64, turn model.DialogTurn) error {
	userCtx, err := d.Context.GetContext(ctx, telegramID)
	if err != nil {
		return fmt.Errorf("failed to get context: %w", err)
	}
	history := append(userCtx.DialogHistory, turn)
	if len(history) > MaxDialogHistory {
		history = history[len(history)-MaxDialogHistory:]
	}
	userCtx.DialogHistory = history
	if _, err = d.Context.ReplaceContext(ctx, telegramID, userCtx); err != nil {
		return fmt.Errorf("failed to persist history: %w", err)
	}
	return nil
}

// ResetIfFull empties the history once it reaches the cap and reports
// whether it did, so the caller can notify the user. Below the cap nothing
// is written.
func (d *DialogUsecase) ResetIfFull(ctx context.Context, telegramID int64) (bool, error) {
	userCtx, err := d.Context.GetContext(ctx, telegramID)
	if err != nil {
		return false, fmt.Errorf("failed to get context: %w", err)
	}
	if len(userCtx.DialogHistory) < MaxDialogHistory {
		return false, nil
	}
	userCtx.DialogHistory = nil
	if _, err = d.Context.ReplaceContext(ctx, telegramID, userCtx); err != nil {
		return false, fmt.Errorf("failed to persist history reset: %w", err)
	}
	return true, nil
}

// RecentTurns returns the last n turns for prompt construction without
// mutating anything.
func RecentTurns(userCtx model.Context, n int) []model.DialogTurn {
	history := userCtx.DialogHistory
	if n <= 0 || len(history) == 0 {
		return nil
	}
	if len(history) > n {
		history = history[len(history)-n:]
	}
	return history
}
