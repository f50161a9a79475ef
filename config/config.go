package config

import (
	"github.com/ilyakaznacheev/cleanenv"
)

type Telegram struct {
	BotToken       string `yaml:"bot_token" env:"TELEGRAM_BOT_TOKEN" env-required:"true"`
	WebhookBaseURL string `yaml:"webhook_base_url" env:"WEBHOOK_BASE_URL"`
	Language       string `yaml:"language" env:"BOT_LANGUAGE" env-default:"ru"`
}

type OpenAI struct {
	APIKey            string  `env:"OPENAI_API_KEY" env-required:"true"`
	Model             string  `yaml:"model" env:"OPENAI_MODEL" env-default:"gpt-4o"`
	BaseURL           string  `yaml:"base_url" env:"OPENAI_BASE_URL"`
	Temperature       float32 `yaml:"model_temperature" env:"MODEL_TEMPERATURE" env-default:"1"`
	MaxTokens         int     `yaml:"max_completion_tokens" env:"MAX_COMPLETION_TOKENS" env-default:"8192"`
	PromptTokenBudget int     `yaml:"prompt_token_budget" env:"PROMPT_TOKEN_BUDGET" env-default:"3500"`
}

type Storage struct {
	Backend       string `yaml:"backend" env:"STORAGE_BACKEND" env-default:"postgres"`
	DatabaseURL   string `yaml:"database_url" env:"DATABASE_URL"`
	RedisEndpoint string `yaml:"redis_endpoint" env:"REDIS_ENDPOINT"`
}

type HTTP struct {
	Port string `yaml:"port" env:"PORT" env-default:"8000"`
}

type Config struct {
	Telegram Telegram `yaml:"telegram"`
	OpenAI   OpenAI   `yaml:"openai"`
	Storage  Storage  `yaml:"storage"`
	HTTP     HTTP     `yaml:"http"`
}

// LoadConfig reads the optional yaml file first, then lets the environment
// override it. Missing required secrets fail the load.
func LoadConfig(cfgPath string) (*Config, error) {
	var cfg Config
	if cfgPath != "" {
		if err := cleanenv.ReadConfig(cfgPath, &cfg); err != nil {
			return nil, err
		}
	}
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
