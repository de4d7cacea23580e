package main

type Config struct {
	BotToken    string `env:"TELEGRAM_BOT_TOKEN,required"`
	WebhookURL  string `env:"WEBHOOK_URL,required"`
	SecretToken string `env:"WEBHOOK_SECRET_TOKEN"`
	ListenAddr  string `env:"LISTEN_ADDR" envDefault:":8080"`
}
