package usecase

import (
	"context"
	"errors"
	"fmt"

	"healthbot/internal/model"
)

type UserStorage interface {
	GetUserByTelegramID(ctx context.Context, telegramID int64) (model.User, error)
	CreateUser(ctx context.Context, user model.User) (model.User, error)
	UpdateUserContext(ctx context.Context, telegramID int64, userCtx model.Context) error
	DeleteUserByTelegramID(ctx context.Context, telegramID int64) error
}

type ContextUsecaseDeps struct {
	UserStorage UserStorage
}

// ContextUsecase is the single writer of the per-user context blob. Every
// mutation is persisted before the call returns, so a handler always
// observes its own prior writes.
type ContextUsecase struct {
	ContextUsecaseDeps
}

func NewContextUsecase(deps ContextUsecaseDeps) *ContextUsecase {
	return &ContextUsecase{
		ContextUsecaseDeps: deps,
	}
}

func (u *ContextUsecase) GetUser(ctx context.Context, telegramID int64) (model.User, error) {
	return u.UserStorage.GetUserByTelegramID(ctx, telegramID)
}

func (u *ContextUsecase) CreateUser(ctx context.Context, telegramID int64, username, firstName string) (model.User, error) {
	user := model.User{
		TelegramID: telegramID,
		Username:   username,
		FirstName:  firstName,
		Context: model.Context{
			SchemaVersion: model.ContextSchemaVersion,
		},
	}
	created, err := u.UserStorage.CreateUser(ctx, user)
	if err != nil {
		return model.User{}, fmt.Errorf("failed to create user %d: %w", telegramID, err)
	}
	return created, nil
}

// GetContext returns the user's context, or a zero context when the user is
// unknown. Not-found is not an error here.
func (u *ContextUsecase) GetContext(ctx context.Context, telegramID int64) (model.Context, error) {
	user, err := u.UserStorage.GetUserByTelegramID(ctx, telegramID)
	if err != nil {
		if errors.Is(err, model.ErrUserDoesNotExist) {
			return model.Context{}, nil
		}
		return model.Context{}, fmt.Errorf("failed to get user %d: %w", telegramID, err)
	}
	return user.Context, nil
}

// SetProfileField merges a single field into the stored context, preserving
// everything else.
func (u *ContextUsecase) SetProfileField(
	ctx context.Context, telegramID int64, field model.ProfileField, value string,
) (model.Context, error) {
	user, err := u.UserStorage.GetUserByTelegramID(ctx, telegramID)
	if err != nil {
		return model.Context{}, fmt.Errorf("failed to get user %d: %w", telegramID, err)
	}
	if err = user.Context.SetField(field, value); err != nil {
		return model.Context{}, err
	}
	if err = u.UserStorage.UpdateUserContext(ctx, telegramID, user.Context); err != nil {
		return model.Context{}, fmt.Errorf("failed to update context for user %d: %w", telegramID, err)
	}
	return user.Context, nil
}

// ReplaceContext overwrites the whole blob.
func (u *ContextUsecase) ReplaceContext(ctx context.Context, telegramID int64, userCtx model.Context) (model.Context, error) {
	if err := u.UserStorage.UpdateUserContext(ctx, telegramID, userCtx); err != nil {
		return model.Context{}, fmt.Errorf("failed to replace context for user %d: %w", telegramID, err)
	}
	return userCtx, nil
}

// DeleteUser removes the record entirely. Deleting an absent user is a no-op.
func (u *ContextUsecase) DeleteUser(ctx context.Context, telegramID int64) error {
	if err := u.UserStorage.DeleteUserByTelegramID(ctx, telegramID); err != nil {
		return fmt.Errorf("failed to delete user %d: %w", telegramID, err)
	}
	return nil
}
