package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	api "github.com/OvyFlash/telegram-bot-api"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"healthbot/config"
	"healthbot/internal/server"
	in_memory "healthbot/internal/storage/in-memory"
	key_value "healthbot/internal/storage/key-value"
	"healthbot/internal/storage/postgres"
	"healthbot/internal/usecase"
)

func Run(cfg *config.Config) error {
	logger, err := zap.NewProduction()
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	bot, err := api.NewBotAPI(cfg.Telegram.BotToken)
	if err != nil {
		return fmt.Errorf("failed to create new bot: %w", err)
	}
	logger.Info("authorized on telegram", zap.String("account", bot.Self.UserName))

	userStorage, closeStorage, err := buildUserStorage(ctx, cfg.Storage)
	if err != nil {
		return fmt.Errorf("failed to build storage: %w", err)
	}
	defer closeStorage()

	contextUsecase := usecase.NewContextUsecase(
		usecase.ContextUsecaseDeps{
			UserStorage: userStorage,
		},
	)
	dialogUsecase := usecase.NewDialogUsecase(
		usecase.DialogUsecaseDeps{
			Context: contextUsecase,
		},
	)
	openAIUsecase := usecase.NewOpenAIUsecase(cfg.OpenAI, logger)

	telegramUsecase := usecase.NewTelegramUsecase(
		usecase.TelegramUsecaseDeps{
			Bot:     bot,
			Context: contextUsecase,
			Dialog:  dialogUsecase,
			AI:      openAIUsecase,
			Logger:  logger,
		},
		cfg.Telegram.Language,
	)

	srv := server.New(telegramUsecase, cfg.Telegram.BotToken, logger)
	httpServer := &http.Server{
		Addr:    ":" + cfg.HTTP.Port,
		Handler: srv.Handler(),
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("webhook server listening", zap.String("addr", httpServer.Addr))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()

	if cfg.Telegram.WebhookBaseURL != "" {
		server.RegisterWebhook(bot, cfg.Telegram.WebhookBaseURL, cfg.Telegram.BotToken, logger)
	} else {
		logger.Warn("WEBHOOK_BASE_URL is not set, skipping webhook registration")
	}

	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case err := <-serveErr:
		return fmt.Errorf("http server failed: %w", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Warn("failed to shut down http server cleanly", zap.Error(err))
	}
	return nil
}

func buildUserStorage(ctx context.Context, cfg config.Storage) (usecase.UserStorage, func(), error) {
	switch cfg.Backend {
	case "postgres":
		if cfg.DatabaseURL == "" {
			return nil, nil, errors.New("DATABASE_URL is required for the postgres backend")
		}
		pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect to postgres: %w", err)
		}
		userStorage := postgres.NewUserStorage(pool)
		if err = userStorage.Bootstrap(ctx); err != nil {
			pool.Close()
			return nil, nil, err
		}
		return userStorage, pool.Close, nil
	case "redis":
		if cfg.RedisEndpoint == "" {
			return nil, nil, errors.New("REDIS_ENDPOINT is required for the redis backend")
		}
		rdb := redis.NewClient(
			&redis.Options{
				Addr: cfg.RedisEndpoint,
			},
		)
		return key_value.NewUserStorage(rdb), func() { rdb.Close() }, nil
	case "memory":
		return in_memory.NewUserStorage(), func() {}, nil
	}
	return nil, nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
}
