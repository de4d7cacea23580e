package bot

import (
	"encoding/json"

	"github.com/skynet2/telegram-bot-sdk/pkg/telegram"
)

// InputFile is a binary parameter. Any request carrying one is sent as
// multipart form data instead of a JSON body.
type InputFile struct {
	Name string
	Data []byte
}

type SetWebhookRequest struct {
	URL                string     `json:"url"`
	Certificate        *InputFile `json:"-"`
	IPAddress          string     `json:"ip_address,omitempty"`
	MaxConnections     int        `json:"max_connections,omitempty"`
	AllowedUpdates     []string   `json:"allowed_updates,omitempty"`
	DropPendingUpdates bool       `json:"drop_pending_updates,omitempty"`
	SecretToken        string     `json:"secret_token,omitempty"`
}

type SendMessageRequest struct {
	ChatID              int64                    `json:"chat_id"`
	Text                string                   `json:"text"`
	ParseMode           string                   `json:"parse_mode,omitempty"`
	Entities            []telegram.MessageEntity `json:"entities,omitempty"`
	ReplyMarkup         telegram.ReplyMarkup     `json:"reply_markup,omitempty"`
	ReplyToMessageID    int64                    `json:"reply_to_message_id,omitempty"`
	DisableNotification bool                     `json:"disable_notification,omitempty"`
	ProtectContent      bool                     `json:"protect_content,omitempty"`
}

// SendPhotoRequest takes the photo either as Photo (an HTTP URL or a
// file_id already known to the API) or as PhotoFile (a raw upload).
// PhotoFile wins when both are set.
type SendPhotoRequest struct {
	ChatID              int64                    `json:"chat_id"`
	Photo               string                   `json:"photo,omitempty"`
	PhotoFile           *InputFile               `json:"-"`
	Caption             string                   `json:"caption,omitempty"`
	ParseMode           string                   `json:"parse_mode,omitempty"`
	CaptionEntities     []telegram.MessageEntity `json:"caption_entities,omitempty"`
	ReplyMarkup         telegram.ReplyMarkup     `json:"reply_markup,omitempty"`
	ReplyToMessageID    int64                    `json:"reply_to_message_id,omitempty"`
	DisableNotification bool                     `json:"disable_notification,omitempty"`
	ProtectContent      bool                     `json:"protect_content,omitempty"`
}

type AnswerCallbackQueryRequest struct {
	CallbackQueryID string `json:"callback_query_id"`
	Text            string `json:"text,omitempty"`
	ShowAlert       bool   `json:"show_alert,omitempty"`
	URL             string `json:"url,omitempty"`
	CacheTime       int    `json:"cache_time,omitempty"`
}

type apiResponse struct {
	OK          bool            `json:"ok"`
	ErrorCode   int             `json:"error_code,omitempty"`
	Description string          `json:"description,omitempty"`
	Result      json.RawMessage `json:"result,omitempty"`
}
