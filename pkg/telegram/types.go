package telegram

// ChatType is the kind of chat a message belongs to.
type ChatType string

const (
	ChatTypePrivate    ChatType = "private"
	ChatTypeGroup      ChatType = "group"
	ChatTypeSupergroup ChatType = "supergroup"
	ChatTypeChannel    ChatType = "channel"
)

// ChatTypes lists every chat type the API produces.
var ChatTypes = []ChatType{
	ChatTypePrivate,
	ChatTypeGroup,
	ChatTypeSupergroup,
	ChatTypeChannel,
}

// EntityType is the kind of span a MessageEntity marks inside message text.
type EntityType string

const (
	EntityMention       EntityType = "mention"
	EntityHashtag       EntityType = "hashtag"
	EntityCashtag       EntityType = "cashtag"
	EntityBotCommand    EntityType = "bot_command"
	EntityURL           EntityType = "url"
	EntityEmail         EntityType = "email"
	EntityPhoneNumber   EntityType = "phone_number"
	EntityBold          EntityType = "bold"
	EntityItalic        EntityType = "italic"
	EntityUnderline     EntityType = "underline"
	EntityStrikethrough EntityType = "strikethrough"
	EntitySpoiler       EntityType = "spoiler"
	EntityCode          EntityType = "code"
	EntityPre           EntityType = "pre"
	EntityTextLink      EntityType = "text_link"
	EntityTextMention   EntityType = "text_mention"
	EntityCustomEmoji   EntityType = "custom_emoji"
)

// EntityTypes lists every entity type the API produces.
var EntityTypes = []EntityType{
	EntityMention,
	EntityHashtag,
	EntityCashtag,
	EntityBotCommand,
	EntityURL,
	EntityEmail,
	EntityPhoneNumber,
	EntityBold,
	EntityItalic,
	EntityUnderline,
	EntityStrikethrough,
	EntitySpoiler,
	EntityCode,
	EntityPre,
	EntityTextLink,
	EntityTextMention,
	EntityCustomEmoji,
}

type User struct {
	ID                      int64  `json:"id"`
	IsBot                   bool   `json:"is_bot"`
	FirstName               string `json:"first_name"`
	LastName                string `json:"last_name,omitempty"`
	Username                string `json:"username,omitempty"`
	LanguageCode            string `json:"language_code,omitempty"`
	IsPremium               bool   `json:"is_premium,omitempty"`
	CanJoinGroups           bool   `json:"can_join_groups,omitempty"`
	CanReadAllGroupMessages bool   `json:"can_read_all_group_messages,omitempty"`
	SupportsInlineQueries   bool   `json:"supports_inline_queries,omitempty"`
}

type Chat struct {
	ID        int64    `json:"id"`
	Type      ChatType `json:"type"`
	Title     string   `json:"title,omitempty"`
	Username  string   `json:"username,omitempty"`
	FirstName string   `json:"first_name,omitempty"`
	LastName  string   `json:"last_name,omitempty"`
	IsForum   bool     `json:"is_forum,omitempty"`
}

type PhotoSize struct {
	FileID       string `json:"file_id"`
	FileUniqueID string `json:"file_unique_id"`
	Width        int64  `json:"width"`
	Height       int64  `json:"height"`
	FileSize     int64  `json:"file_size,omitempty"`
}

type Location struct {
	Longitude            float64 `json:"longitude"`
	Latitude             float64 `json:"latitude"`
	HorizontalAccuracy   float64 `json:"horizontal_accuracy,omitempty"`
	LivePeriod           int64   `json:"live_period,omitempty"`
	Heading              int64   `json:"heading,omitempty"`
	ProximityAlertRadius int64   `json:"proximity_alert_radius,omitempty"`
}

// MessageEntity marks a span of message text. Offset and Length are measured
// in UTF-16 code units; the schema does not check the span against the text
// bounds, that is up to the caller.
type MessageEntity struct {
	Type          EntityType `json:"type"`
	Offset        int64      `json:"offset"`
	Length        int64      `json:"length"`
	URL           string     `json:"url,omitempty"`
	User          *User      `json:"user,omitempty"`
	Language      string     `json:"language,omitempty"`
	CustomEmojiID string     `json:"custom_emoji_id,omitempty"`
}

// Message is a chat message. ReplyTo makes the type self-referential; the
// API never produces cycles, only finite reply chains.
type Message struct {
	MessageID       int64                 `json:"message_id"`
	From            *User                 `json:"from,omitempty"`
	Date            int64                 `json:"date"`
	Chat            Chat                  `json:"chat"`
	Text            string                `json:"text,omitempty"`
	Caption         string                `json:"caption,omitempty"`
	Entities        []MessageEntity       `json:"entities,omitempty"`
	CaptionEntities []MessageEntity       `json:"caption_entities,omitempty"`
	Photo           []PhotoSize           `json:"photo,omitempty"`
	Location        *Location             `json:"location,omitempty"`
	ReplyTo         *Message              `json:"reply_to_message,omitempty"`
	ReplyMarkup     *InlineKeyboardMarkup `json:"reply_markup,omitempty"`
}

// CallbackQuery is produced when a user presses an inline keyboard button.
// The API sends exactly one of Data and GameShortName, but does not promise
// it structurally, so both stay optional here.
type CallbackQuery struct {
	ID            string   `json:"id"`
	From          User     `json:"from"`
	Message       *Message `json:"message,omitempty"`
	ChatInstance  string   `json:"chat_instance"`
	Data          string   `json:"data,omitempty"`
	GameShortName string   `json:"game_short_name,omitempty"`
}

// Update is the root envelope of one inbound event. At most one event field
// is populated per the API contract; the shape itself leaves them all
// optional.
type Update struct {
	UpdateID          int64          `json:"update_id"`
	Message           *Message       `json:"message,omitempty"`
	EditedMessage     *Message       `json:"edited_message,omitempty"`
	ChannelPost       *Message       `json:"channel_post,omitempty"`
	EditedChannelPost *Message       `json:"edited_channel_post,omitempty"`
	CallbackQuery     *CallbackQuery `json:"callback_query,omitempty"`
}
