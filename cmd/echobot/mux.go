package main

import (
	"context"
	"io"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/skynet2/telegram-bot-sdk/pkg/bot"
	"github.com/skynet2/telegram-bot-sdk/pkg/schema"
	"github.com/skynet2/telegram-bot-sdk/pkg/telegram"
)

const secretTokenHeader = "X-Telegram-Bot-Api-Secret-Token"

type Handler struct {
	bot         BotAPI
	secretToken string
}

func NewHandler(
	botSvc BotAPI,
	secretToken string,
) *Handler {
	return &Handler{
		bot:         botSvc,
		secretToken: secretToken,
	}
}

func (h *Handler) ServeHTTP(
	w http.ResponseWriter,
	r *http.Request,
) {
	if h.secretToken != "" && r.Header.Get(secretTokenHeader) != h.secretToken {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	b, err := io.ReadAll(r.Body)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	update, err := schema.ParseUpdate(b)
	if err != nil {
		zerolog.Ctx(r.Context()).Warn().Err(err).Msg("dropping malformed update")

		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(err.Error()))
		return
	}

	if err = h.HandleUpdate(r.Context(), update); err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(err.Error()))
		return
	}

	w.WriteHeader(http.StatusOK)
}

func (h *Handler) HandleUpdate(
	ctx context.Context,
	update *telegram.Update,
) error {
	switch {
	case update.Message != nil && update.Message.Text != "":
		_, err := h.bot.SendMessage(ctx, bot.SendMessageRequest{
			ChatID:           update.Message.Chat.ID,
			Text:             update.Message.Text,
			ReplyToMessageID: update.Message.MessageID,
		})
		return err
	case update.CallbackQuery != nil:
		_, err := h.bot.AnswerCallbackQuery(ctx, bot.AnswerCallbackQueryRequest{
			CallbackQueryID: update.CallbackQuery.ID,
			Text:            update.CallbackQuery.Data,
		})
		return err
	default:
		return nil
	}
}
