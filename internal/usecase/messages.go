package usecase

import "healthbot/pkg/local"

// User-facing texts. Defaults are Russian, matching the bot's audience.
var (
	textNamePrompt = local.NewSet(
		"Для начала работы нужно заполнить профиль. Как вас зовут?",
		local.NewTrans(local.Eng, "Let's fill in your profile first. What is your name?"),
	)
	textNiceToMeetFormat = local.NewSet(
		"Приятно познакомиться, %s!",
		local.NewTrans(local.Eng, "Nice to meet you, %s!"),
	)
	textAgePrompt = local.NewSet(
		"Сколько вам лет?",
		local.NewTrans(local.Eng, "How old are you?"),
	)
	textGenderPrompt = local.NewSet(
		"Укажите ваш пол:",
		local.NewTrans(local.Eng, "Select your gender:"),
	)
	textHeightPrompt = local.NewSet(
		"Укажите ваш рост в см:",
		local.NewTrans(local.Eng, "What is your height in cm?"),
	)
	textWeightPrompt = local.NewSet(
		"Укажите ваш вес в кг:",
		local.NewTrans(local.Eng, "What is your weight in kg?"),
	)
	textProfileComplete = local.NewSet(
		"Профиль заполнен! ✅",
		local.NewTrans(local.Eng, "Profile complete! ✅"),
	)
	textAlreadyRegistered = local.NewSet(
		"Вы уже зарегистрированы!",
		local.NewTrans(local.Eng, "You are already registered!"),
	)
	textProfileFormat = local.NewSet(
		"👤 Ваш профиль:\n\nИмя: %s\nВозраст: %s\nПол: %s\nРост: %s\nВес: %s",
		local.NewTrans(local.Eng, "👤 Your profile:\n\nName: %s\nAge: %s\nGender: %s\nHeight: %s\nWeight: %s"),
	)
	textProfileDeleted = local.NewSet(
		"Профиль удален. Давайте создадим его заново!\nКак вас зовут?",
		local.NewTrans(local.Eng, "Profile deleted. Let's create it again!\nWhat is your name?"),
	)
	textHistoryReset = local.NewSet(
		"⚠️ Контекст сообщений достиг лимита и был сброшен.",
		local.NewTrans(local.Eng, "⚠️ The message context reached its limit and was reset."),
	)
	textAIFallback = local.NewSet(
		"Произошла ошибка при обработке вашего запроса.",
		local.NewTrans(local.Eng, "Something went wrong while processing your request."),
	)

	buttonMyProfile = local.NewSet(
		"Мой профиль",
		local.NewTrans(local.Eng, "My profile"),
	)
	buttonDeleteProfile = local.NewSet(
		"Удалить профиль",
		local.NewTrans(local.Eng, "Delete profile"),
	)
	buttonGenderMale = local.NewSet(
		"Мужской",
		local.NewTrans(local.Eng, "Male"),
	)
	buttonGenderFemale = local.NewSet(
		"Женский",
		local.NewTrans(local.Eng, "Female"),
	)
)
