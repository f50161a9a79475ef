package usecase

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"healthbot/internal/model"
)

func TestBuildHealthPrompt(t *testing.T) {
	userCtx := model.Context{
		Name:   "Bob",
		Age:    "30",
		Height: "180",
		Weight: "75",
	}
	turns := []model.DialogTurn{
		{Role: model.DialogRoleUser, Text: "болит голова"},
		{Role: model.DialogRoleAssistant, Text: "выпейте воды"},
	}

	prompt := buildHealthPrompt(userCtx, turns)

	assert.Contains(t, prompt, "Имя: Bob")
	assert.Contains(t, prompt, "Возраст: 30")
	assert.Contains(t, prompt, "Рост: 180 см")
	assert.Contains(t, prompt, "Вес: 75 кг")
	assert.Contains(t, prompt, "user: болит голова")
	assert.Contains(t, prompt, "assistant: выпейте воды")
	assert.Contains(t, prompt, "Не давай диагнозов")
	assert.Contains(t, prompt, "Я не являюсь врачом")
}

func TestBuildHealthPromptUnsetFields(t *testing.T) {
	prompt := buildHealthPrompt(model.Context{}, nil)

	assert.Contains(t, prompt, "Имя: не указано")
	assert.Contains(t, prompt, "Вес: не указано кг")
}
