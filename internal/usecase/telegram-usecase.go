package usecase

import (
	"context"
	"errors"
	"strings"

	api "github.com/OvyFlash/telegram-bot-api"
	"github.com/sourcegraph/conc"
	"go.uber.org/zap"

	"healthbot/internal/model"
	"healthbot/pkg/local"
)

const (
	CallbackGenderMale    = "gender_male"
	CallbackGenderFemale  = "gender_female"
	CallbackProfile       = "profile"
	CallbackDeleteProfile = "delete_profile"

	CommandStart = "/start"
)

// BotClient is the outbound messaging collaborator. *api.BotAPI satisfies it.
type BotClient interface {
	Send(c api.Chattable) (api.Message, error)
	Request(c api.Chattable) (*api.APIResponse, error)
}

// HealthAI is the LLM collaborator.
type HealthAI interface {
	Ask(ctx context.Context, userCtx model.Context, userText string) (string, error)
}

type TelegramUsecaseDeps struct {
	Bot     BotClient
	Context *ContextUsecase
	Dialog  *DialogUsecase
	AI      HealthAI
	Logger  *zap.Logger
}

// TelegramUsecase dispatches inbound updates: onboarding while the profile
// is incomplete, profile view/delete via buttons, AI chat once complete.
//
// Concurrent updates for the same user are not serialized; two overlapping
// read-modify-write sequences on the context blob can lose one write. The
// upstream transport delivers per-user events rarely enough that this is an
// accepted risk.
type TelegramUsecase struct {
	TelegramUsecaseDeps
	lang local.Language
}

func NewTelegramUsecase(deps TelegramUsecaseDeps, language string) *TelegramUsecase {
	return &TelegramUsecase{
		TelegramUsecaseDeps: deps,
		lang:                local.Language(language),
	}
}

// HandleUpdate processes one update. Errors are logged, never returned: the
// webhook contract with Telegram is an unconditional acknowledgement.
func (t *TelegramUsecase) HandleUpdate(ctx context.Context, update api.Update) {
	if update.CallbackQuery != nil {
		if err := t.handleCallbackQuery(ctx, update.CallbackQuery); err != nil {
			t.Logger.Error(
				"failed to handle callback query",
				zap.Int64("telegram_id", update.CallbackQuery.From.ID),
				zap.Error(err),
			)
		}
		return
	}
	if update.Message != nil && update.Message.From != nil {
		if err := t.handleMessage(ctx, update.Message); err != nil {
			t.Logger.Error(
				"failed to handle message",
				zap.Int64("telegram_id", update.Message.From.ID),
				zap.Error(err),
			)
		}
	}
}

func (t *TelegramUsecase) handleCallbackQuery(ctx context.Context, callback *api.CallbackQuery) error {
	// Answer right away so the client stops the loading spinner.
	if _, err := t.Bot.Request(api.NewCallback(callback.ID, "")); err != nil {
		t.Logger.Warn("failed to answer callback query", zap.Error(err))
	}

	// Callbacks from inline-mode messages carry no message, so there is no
	// chat to reply into.
	if callback.Message == nil {
		return nil
	}
	telegramID := callback.From.ID
	chatID := callback.Message.Chat.ID

	switch callback.Data {
	case CallbackGenderMale:
		return t.setGender(ctx, telegramID, chatID, model.GenderMale)
	case CallbackGenderFemale:
		return t.setGender(ctx, telegramID, chatID, model.GenderFemale)
	case CallbackProfile:
		return t.showProfile(ctx, telegramID, chatID)
	case CallbackDeleteProfile:
		return t.deleteProfile(ctx, callback, chatID)
	}
	return nil
}

func (t *TelegramUsecase) setGender(ctx context.Context, telegramID, chatID int64, gender string) error {
	if _, err := t.Context.SetProfileField(ctx, telegramID, model.ProfileFieldGender, gender); err != nil {
		return err
	}
	t.sendForceReply(chatID, textHeightPrompt.Text(t.lang))
	return nil
}

func (t *TelegramUsecase) showProfile(ctx context.Context, telegramID, chatID int64) error {
	userCtx, err := t.Context.GetContext(ctx, telegramID)
	if err != nil {
		return err
	}
	if !userCtx.IsProfileComplete() {
		// Incomplete profile: restart onboarding at the name prompt.
		t.sendForceReply(chatID, textNamePrompt.Text(t.lang))
		return nil
	}

	msg := api.NewMessage(
		chatID,
		textProfileFormat.Format(t.lang, userCtx.Name, userCtx.Age, userCtx.Gender, userCtx.Height, userCtx.Weight),
	)
	msg.ReplyMarkup = api.NewInlineKeyboardMarkup(
		api.NewInlineKeyboardRow(
			api.NewInlineKeyboardButtonData(buttonDeleteProfile.Text(t.lang), CallbackDeleteProfile),
		),
	)
	t.send(msg)
	return nil
}

func (t *TelegramUsecase) deleteProfile(ctx context.Context, callback *api.CallbackQuery, chatID int64) error {
	telegramID := callback.From.ID
	if err := t.Context.DeleteUser(ctx, telegramID); err != nil {
		return err
	}
	if _, err := t.Context.CreateUser(ctx, telegramID, callback.From.UserName, callback.From.FirstName); err != nil {
		return err
	}
	t.sendForceReply(chatID, textProfileDeleted.Text(t.lang))
	return nil
}

func (t *TelegramUsecase) handleMessage(ctx context.Context, message *api.Message) error {
	telegramID := message.From.ID
	chatID := message.Chat.ID
	text := strings.TrimSpace(message.Text)

	user, err := t.Context.GetUser(ctx, telegramID)
	if err != nil {
		if errors.Is(err, model.ErrUserDoesNotExist) {
			// First contact only creates the record; the text itself is not
			// consumed. Field collection starts with the next message.
			if _, err = t.Context.CreateUser(ctx, telegramID, message.From.UserName, message.From.FirstName); err != nil {
				return err
			}
			t.sendForceReply(chatID, textNamePrompt.Text(t.lang))
			return nil
		}
		return err
	}

	if !user.Context.IsProfileComplete() {
		return t.advanceOnboarding(ctx, telegramID, chatID, text, user.Context)
	}

	if text == CommandStart {
		msg := api.NewMessage(chatID, textAlreadyRegistered.Text(t.lang))
		msg.ReplyMarkup = t.profileKeyboard()
		t.send(msg)
		return nil
	}

	reset, err := t.Dialog.ResetIfFull(ctx, telegramID)
	if err != nil {
		return err
	}
	if reset {
		t.send(api.NewMessage(chatID, textHistoryReset.Text(t.lang)))
	}

	// Photos, stickers and other text-less messages have nothing to ask
	// the model.
	if text == "" {
		return nil
	}

	return t.handleChat(ctx, telegramID, chatID, text)
}

func (t *TelegramUsecase) advanceOnboarding(ctx context.Context, telegramID, chatID int64, text string, userCtx model.Context) error {
	switch model.DeriveOnboardingState(userCtx) {
	case model.StateAwaitingName:
		if _, err := t.Context.SetProfileField(ctx, telegramID, model.ProfileFieldName, text); err != nil {
			return err
		}
		t.send(api.NewMessage(chatID, textNiceToMeetFormat.Format(t.lang, text)))
		t.sendForceReply(chatID, textAgePrompt.Text(t.lang))
	case model.StateAwaitingAge:
		if _, err := t.Context.SetProfileField(ctx, telegramID, model.ProfileFieldAge, text); err != nil {
			return err
		}
		msg := api.NewMessage(chatID, textGenderPrompt.Text(t.lang))
		msg.ReplyMarkup = api.NewInlineKeyboardMarkup(
			api.NewInlineKeyboardRow(
				api.NewInlineKeyboardButtonData(buttonGenderMale.Text(t.lang), CallbackGenderMale),
			),
			api.NewInlineKeyboardRow(
				api.NewInlineKeyboardButtonData(buttonGenderFemale.Text(t.lang), CallbackGenderFemale),
			),
		)
		t.send(msg)
	case model.StateAwaitingGender:
		// Gender is collected through the buttons only. Free text here sets
		// nothing and triggers no re-prompt.
	case model.StateAwaitingHeight:
		if _, err := t.Context.SetProfileField(ctx, telegramID, model.ProfileFieldHeight, text); err != nil {
			return err
		}
		t.sendForceReply(chatID, textWeightPrompt.Text(t.lang))
	case model.StateAwaitingWeight:
		if _, err := t.Context.SetProfileField(ctx, telegramID, model.ProfileFieldWeight, text); err != nil {
			return err
		}
		t.send(api.NewMessage(chatID, textProfileComplete.Text(t.lang)))
	}
	return nil
}

func (t *TelegramUsecase) handleChat(ctx context.Context, telegramID, chatID int64, text string) error {
	userCtx, err := t.Context.GetContext(ctx, telegramID)
	if err != nil {
		return err
	}

	// The current message rides along in the prompt history but only the
	// assistant reply is persisted.
	promptCtx := userCtx
	promptCtx.DialogHistory = append(
		append([]model.DialogTurn(nil), userCtx.DialogHistory...),
		model.DialogTurn{Role: model.DialogRoleUser, Text: text},
	)

	var answer string
	var askErr error

	wg := conc.NewWaitGroup()
	wg.Go(
		func() {
			answer, askErr = t.AI.Ask(ctx, promptCtx, text)
		},
	)
	wg.Go(
		func() {
			if _, err := t.Bot.Request(api.NewChatAction(chatID, api.ChatTyping)); err != nil {
				t.Logger.Warn("failed to send typing action", zap.Error(err))
			}
		},
	)
	wg.Wait()

	if askErr != nil {
		t.Logger.Error("health AI request failed", zap.Int64("telegram_id", telegramID), zap.Error(askErr))
		answer = textAIFallback.Text(t.lang)
	} else {
		if err = t.Dialog.AppendTurn(
			ctx, telegramID, model.DialogTurn{Role: model.DialogRoleAssistant, Text: answer},
		); err != nil {
			t.Logger.Error("failed to append assistant turn", zap.Int64("telegram_id", telegramID), zap.Error(err))
		}
	}

	msg := api.NewMessage(chatID, answer)
	msg.ReplyMarkup = t.profileKeyboard()
	t.send(msg)
	return nil
}

func (t *TelegramUsecase) profileKeyboard() api.InlineKeyboardMarkup {
	return api.NewInlineKeyboardMarkup(
		api.NewInlineKeyboardRow(
			api.NewInlineKeyboardButtonData(buttonMyProfile.Text(t.lang), CallbackProfile),
		),
	)
}

func (t *TelegramUsecase) sendForceReply(chatID int64, text string) {
	msg := api.NewMessage(chatID, text)
	msg.ReplyMarkup = api.ForceReply{ForceReply: true}
	t.send(msg)
}

func (t *TelegramUsecase) send(c api.Chattable) {
	if _, err := t.Bot.Send(c); err != nil {
		t.Logger.Warn("failed to send message", zap.Error(err))
	}
}
