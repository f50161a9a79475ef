package server

import (
	"encoding/json"
	"io"
	"net/http"
	"time"

	api "github.com/OvyFlash/telegram-bot-api"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"healthbot/internal/usecase"
)

// Server exposes the webhook endpoint Telegram delivers updates to.
type Server struct {
	dispatcher *usecase.TelegramUsecase
	logger     *zap.Logger
	token      string
}

func New(dispatcher *usecase.TelegramUsecase, token string, logger *zap.Logger) *Server {
	return &Server{
		dispatcher: dispatcher,
		logger:     logger,
		token:      token,
	}
}

func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// The bot token in the path is the only inbound authentication, same as
	// the registered webhook URL.
	r.Post("/tg/webhook/"+s.token, s.handleWebhook)

	return r
}

// handleWebhook always acknowledges with 200. A non-200 would make Telegram
// redeliver the update, turning every internal hiccup into a retry storm.
func (s *Server) handleWebhook(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		s.logger.Warn("failed to read webhook body", zap.Error(err))
		w.WriteHeader(http.StatusOK)
		return
	}

	var update api.Update
	if err = json.Unmarshal(body, &update); err != nil {
		s.logger.Warn("failed to decode update", zap.Error(err))
		w.WriteHeader(http.StatusOK)
		return
	}

	s.dispatcher.HandleUpdate(r.Context(), update)
	w.WriteHeader(http.StatusOK)
}

// RegisterWebhook tells Telegram where to deliver updates. Failure is worth
// a log line, not a crash: the operator can re-run registration manually.
func RegisterWebhook(bot usecase.BotClient, baseURL, token string, logger *zap.Logger) {
	webhookURL := baseURL + "/tg/webhook/" + token

	wh, err := api.NewWebhook(webhookURL)
	if err != nil {
		logger.Warn("failed to build webhook config", zap.Error(err))
		return
	}
	if _, err = bot.Request(wh); err != nil {
		logger.Warn("failed to register webhook", zap.Error(err))
		return
	}
	logger.Info("telegram webhook registered", zap.String("url", webhookURL))
}
