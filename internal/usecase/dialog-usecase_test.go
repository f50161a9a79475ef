package usecase

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"healthbot/internal/model"
)

func newDialogUsecase(t *testing.T) (*DialogUsecase, *ContextUsecase) {
	t.Helper()
	contextUsecase := newContextUsecase()
	_, err := contextUsecase.CreateUser(context.Background(), 42, "bob", "Bob")
	require.NoError(t, err)
	return NewDialogUsecase(DialogUsecaseDeps{Context: contextUsecase}), contextUsecase
}

func TestAppendTurnKeepsMostRecentFifty(t *testing.T) {
	ctx := context.Background()
	dialog, contextUsecase := newDialogUsecase(t)

	for i := 0; i < MaxDialogHistory+1; i++ {
		turn := model.DialogTurn{Role: model.DialogRoleUser, Text: fmt.Sprintf("msg %d", i)}
		require.NoError(t, dialog.AppendTurn(ctx, 42, turn))
	}

	userCtx, err := contextUsecase.GetContext(ctx, 42)
	require.NoError(t, err)
	require.Len(t, userCtx.DialogHistory, MaxDialogHistory)

	// The oldest turn fell off; relative order is intact.
	assert.Equal(t, "msg 1", userCtx.DialogHistory[0].Text)
	assert.Equal(t, fmt.Sprintf("msg %d", MaxDialogHistory), userCtx.DialogHistory[MaxDialogHistory-1].Text)
}

func TestResetIfFull(t *testing.T) {
	ctx := context.Background()
	dialog, contextUsecase := newDialogUsecase(t)

	reset, err := dialog.ResetIfFull(ctx, 42)
	require.NoError(t, err)
	assert.False(t, reset)

	history := make([]model.DialogTurn, MaxDialogHistory)
	for i := range history {
		history[i] = model.DialogTurn{Role: model.DialogRoleAssistant, Text: fmt.Sprintf("msg %d", i)}
	}
	_, err = contextUsecase.ReplaceContext(ctx, 42, model.Context{Name: "Bob", DialogHistory: history})
	require.NoError(t, err)

	reset, err = dialog.ResetIfFull(ctx, 42)
	require.NoError(t, err)
	assert.True(t, reset)

	userCtx, err := contextUsecase.GetContext(ctx, 42)
	require.NoError(t, err)
	assert.Empty(t, userCtx.DialogHistory)
	assert.Equal(t, "Bob", userCtx.Name)
}

func TestRecentTurns(t *testing.T) {
	history := []model.DialogTurn{
		{Role: model.DialogRoleUser, Text: "one"},
		{Role: model.DialogRoleAssistant, Text: "two"},
		{Role: model.DialogRoleUser, Text: "three"},
		{Role: model.DialogRoleAssistant, Text: "four"},
	}
	userCtx := model.Context{DialogHistory: history}

	recent := RecentTurns(userCtx, 3)
	require.Len(t, recent, 3)
	assert.Equal(t, "two", recent[0].Text)
	assert.Equal(t, "four", recent[2].Text)

	assert.Len(t, RecentTurns(userCtx, 10), 4)
	assert.Empty(t, RecentTurns(model.Context{}, 3))
	assert.Empty(t, RecentTurns(userCtx, 0))
}
