package main

import (
	"context"

	"github.com/skynet2/telegram-bot-sdk/pkg/bot"
	"github.com/skynet2/telegram-bot-sdk/pkg/telegram"
)

//go:generate mockgen -destination interfaces_mocks_test.go -package main -source=interfaces.go

type BotAPI interface {
	SendMessage(
		ctx context.Context,
		request bot.SendMessageRequest,
	) (*telegram.Message, error)

	AnswerCallbackQuery(
		ctx context.Context,
		request bot.AnswerCallbackQueryRequest,
	) (bool, error)
}
