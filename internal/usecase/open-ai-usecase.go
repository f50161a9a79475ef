package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"healthbot/config"
	"healthbot/internal/model"
	openai_tools "healthbot/pkg/openai-tools"
)

var ErrEmptyCompletion = errors.New("completion has no choices")

const (
	OpenAIRoleUser      = "user"
	OpenAIRoleAssistant = "assistant"
	OpenAIRoleSystem    = "system"
)

// OpenAIUsecase turns a user message plus their stored context into a health
// advice completion.
type OpenAIUsecase struct {
	cfg    config.OpenAI
	client *openai.Client
	logger *zap.Logger
}

func NewOpenAIUsecase(cfg config.OpenAI, logger *zap.Logger) *OpenAIUsecase {
	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}
	return &OpenAIUsecase{
		cfg:    cfg,
		client: openai.NewClientWithConfig(clientConfig),
		logger: logger,
	}
}

// Ask sends the user's text with the health persona prompt and returns the
// assistant reply. The caller decides what to show the user when it fails.
func (o *OpenAIUsecase) Ask(ctx context.Context, userCtx model.Context, userText string) (string, error) {
	turns := RecentTurns(userCtx, PromptContextTurns)

	var messages []openai.ChatCompletionMessage
	for {
		messages = []openai.ChatCompletionMessage{
			{
				Role:    OpenAIRoleSystem,
				Content: buildHealthPrompt(userCtx, turns),
			},
			{
				Role:    OpenAIRoleUser,
				Content: userText,
			},
		}

		tokenCount, err := openai_tools.CountToken(messages, o.cfg.Model)
		if err != nil {
			o.logger.Warn("failed to count prompt tokens", zap.Error(err))
			break
		}
		if tokenCount <= o.cfg.PromptTokenBudget || len(turns) == 0 {
			break
		}
		// Over budget: drop the oldest turn and rebuild.
		turns = turns[1:]
	}

	resp, err := o.client.CreateChatCompletion(
		ctx, openai.ChatCompletionRequest{
			Model:       o.cfg.Model,
			Temperature: o.cfg.Temperature,
			MaxTokens:   o.cfg.MaxTokens,
			Messages:    messages,
		},
	)
	if err != nil {
		return "", fmt.Errorf("failed to create chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", ErrEmptyCompletion
	}
	return resp.Choices[0].Message.Content, nil
}

// buildHealthPrompt renders the system instruction: health-advice-only
// persona, no diagnoses, mandatory disclaimer line, profile summary and the
// recent turns as conversational context.
func buildHealthPrompt(userCtx model.Context, turns []model.DialogTurn) string {
	summary := strings.Builder{}
	for i, turn := range turns {
		if i > 0 {
			summary.WriteString("\n")
		}
		summary.WriteString(fmt.Sprintf("%s: %s", turn.Role, turn.Text))
	}

	basicInfo := fmt.Sprintf(
		"Имя: %s, Возраст: %s, Рост: %s см, Вес: %s кг",
		orUnset(userCtx.Name), orUnset(userCtx.Age), orUnset(userCtx.Height), orUnset(userCtx.Weight),
	)

	return fmt.Sprintf(
		`Ты — персональный помощник по здоровью.
Твоя задача — давать рекомендации и советы по здоровью и самочувствию пользователя.
Если сообщение пользователя не связано с темой здоровья — честно скажи, что не можешь помочь.
Контекст пользователя: %s
Последние сообщения пользователя: %s
Не давай диагнозов и медицинских заключений.
После каждой рекомендации добавляй фразу: "⚠️ Я не являюсь врачом, не несу ответственности и могу ошибаться."
Используй короткий, дружелюбный стиль.`,
		basicInfo, summary.String(),
	)
}

func orUnset(value string) string {
	if value == "" {
		return "не указано"
	}
	return value
}
