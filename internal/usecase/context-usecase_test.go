package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"healthbot/internal/model"
	in_memory "healthbot/internal/storage/in-memory"
)

func newContextUsecase() *ContextUsecase {
	return NewContextUsecase(
		ContextUsecaseDeps{
			UserStorage: in_memory.NewUserStorage(),
		},
	)
}

func TestGetContextUnknownUserIsEmpty(t *testing.T) {
	ctx := context.Background()
	u := newContextUsecase()

	userCtx, err := u.GetContext(ctx, 42)
	require.NoError(t, err)
	assert.Equal(t, model.Context{}, userCtx)
}

func TestSetProfileFieldMergesSingleField(t *testing.T) {
	ctx := context.Background()
	u := newContextUsecase()

	_, err := u.CreateUser(ctx, 42, "bob", "Bob")
	require.NoError(t, err)

	_, err = u.SetProfileField(ctx, 42, model.ProfileFieldName, "Bob")
	require.NoError(t, err)
	updated, err := u.SetProfileField(ctx, 42, model.ProfileFieldAge, "30")
	require.NoError(t, err)

	assert.Equal(t, "Bob", updated.Name)
	assert.Equal(t, "30", updated.Age)
	assert.Equal(t, model.ContextSchemaVersion, updated.SchemaVersion)
}

func TestSetProfileFieldUnknownUser(t *testing.T) {
	ctx := context.Background()
	u := newContextUsecase()

	_, err := u.SetProfileField(ctx, 42, model.ProfileFieldName, "Bob")
	assert.ErrorIs(t, err, model.ErrUserDoesNotExist)
}

func TestReplaceContextOverwritesBlob(t *testing.T) {
	ctx := context.Background()
	u := newContextUsecase()

	_, err := u.CreateUser(ctx, 42, "bob", "Bob")
	require.NoError(t, err)
	_, err = u.SetProfileField(ctx, 42, model.ProfileFieldName, "Bob")
	require.NoError(t, err)

	_, err = u.ReplaceContext(ctx, 42, model.Context{Age: "30"})
	require.NoError(t, err)

	userCtx, err := u.GetContext(ctx, 42)
	require.NoError(t, err)
	assert.Empty(t, userCtx.Name)
	assert.Equal(t, "30", userCtx.Age)
}

func TestDeleteUserIsIdempotent(t *testing.T) {
	ctx := context.Background()
	u := newContextUsecase()

	_, err := u.CreateUser(ctx, 42, "bob", "Bob")
	require.NoError(t, err)

	require.NoError(t, u.DeleteUser(ctx, 42))
	require.NoError(t, u.DeleteUser(ctx, 42))

	_, err = u.GetUser(ctx, 42)
	assert.ErrorIs(t, err, model.ErrUserDoesNotExist)
}
