package telegram

import "github.com/cockroachdb/errors"

// MaxCallbackDataLen is the byte cap the API puts on callback_data.
const MaxCallbackDataLen = 64

// ReplyMarkup is the union of the four keyboard shapes a message can carry.
// The variants have no tag field; they are told apart by their one required
// discriminating key (inline_keyboard, keyboard, remove_keyboard,
// force_reply).
type ReplyMarkup interface {
	replyMarkup()
}

type InlineKeyboardMarkup struct {
	InlineKeyboard [][]InlineKeyboardButton `json:"inline_keyboard"`
}

func (InlineKeyboardMarkup) replyMarkup() {}

// Validate enforces the constraints the API documents for inline keyboards:
// every button has a label and callback_data fits in 64 bytes.
func (m InlineKeyboardMarkup) Validate() error {
	for i, row := range m.InlineKeyboard {
		for j, b := range row {
			if b.Text == "" {
				return errors.Newf("button [%d][%d]: text is required", i, j)
			}
			if len(b.CallbackData) > MaxCallbackDataLen {
				return errors.Newf("button [%d][%d]: callback_data is %d bytes, max is %d",
					i, j, len(b.CallbackData), MaxCallbackDataLen)
			}
		}
	}

	return nil
}

type InlineKeyboardButton struct {
	Text                         string      `json:"text"`
	URL                          string      `json:"url,omitempty"`
	CallbackData                 string      `json:"callback_data,omitempty"`
	WebApp                       *WebAppInfo `json:"web_app,omitempty"`
	LoginURL                     *LoginURL   `json:"login_url,omitempty"`
	SwitchInlineQuery            *string     `json:"switch_inline_query,omitempty"`
	SwitchInlineQueryCurrentChat *string     `json:"switch_inline_query_current_chat,omitempty"`
	CallbackGame                 *struct{}   `json:"callback_game,omitempty"`
	Pay                          bool        `json:"pay,omitempty"`
}

type WebAppInfo struct {
	URL string `json:"url"`
}

type LoginURL struct {
	URL                string `json:"url"`
	ForwardText        string `json:"forward_text,omitempty"`
	BotUsername        string `json:"bot_username,omitempty"`
	RequestWriteAccess bool   `json:"request_write_access,omitempty"`
}

type ReplyKeyboardMarkup struct {
	Keyboard              [][]KeyboardButton `json:"keyboard"`
	IsPersistent          bool               `json:"is_persistent,omitempty"`
	ResizeKeyboard        bool               `json:"resize_keyboard,omitempty"`
	OneTimeKeyboard       bool               `json:"one_time_keyboard,omitempty"`
	InputFieldPlaceholder string             `json:"input_field_placeholder,omitempty"`
	Selective             bool               `json:"selective,omitempty"`
}

func (ReplyKeyboardMarkup) replyMarkup() {}

type KeyboardButton struct {
	Text            string      `json:"text"`
	RequestContact  bool        `json:"request_contact,omitempty"`
	RequestLocation bool        `json:"request_location,omitempty"`
	WebApp          *WebAppInfo `json:"web_app,omitempty"`
}

type ReplyKeyboardRemove struct {
	RemoveKeyboard bool `json:"remove_keyboard"`
	Selective      bool `json:"selective,omitempty"`
}

func (ReplyKeyboardRemove) replyMarkup() {}

type ForceReply struct {
	ForceReply            bool   `json:"force_reply"`
	InputFieldPlaceholder string `json:"input_field_placeholder,omitempty"`
	Selective             bool   `json:"selective,omitempty"`
}

func (ForceReply) replyMarkup() {}
