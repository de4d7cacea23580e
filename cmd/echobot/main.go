package main

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/imroc/req/v3"
	"github.com/rs/zerolog"

	"github.com/skynet2/telegram-bot-sdk/pkg/bot"
)

func main() {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		panic(err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	botSvc, err := bot.New(bot.Config{
		Token: cfg.BotToken,
	}, req.DefaultClient())
	if err != nil {
		panic(err)
	}

	ctx := logger.WithContext(context.Background())
	if _, err = botSvc.SetWebhook(ctx, bot.SetWebhookRequest{
		URL:            cfg.WebhookURL,
		SecretToken:    cfg.SecretToken,
		AllowedUpdates: []string{"message", "callback_query"},
	}); err != nil {
		panic(err)
	}

	logger.Info().
		Str("token", botSvc.MaskedToken()).
		Str("url", cfg.WebhookURL).
		Msg("webhook configured")

	r := mux.NewRouter()
	r.Use(requestLogger(logger))
	r.Handle("/hook", NewHandler(botSvc, cfg.SecretToken))

	srv := &http.Server{
		Handler:      r,
		Addr:         cfg.ListenAddr,
		WriteTimeout: 60 * time.Second,
		ReadTimeout:  60 * time.Second,
	}

	panic(srv.ListenAndServe())
}

func requestLogger(logger zerolog.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			reqLogger := logger.With().
				Str("request_id", uuid.NewString()).
				Logger()

			next.ServeHTTP(w, r.WithContext(reqLogger.WithContext(r.Context())))
		})
	}
}
