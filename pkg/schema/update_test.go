package schema_test

import (
	"encoding/json"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skynet2/telegram-bot-sdk/pkg/schema"
	"github.com/skynet2/telegram-bot-sdk/pkg/telegram"
)

func TestParseUpdateFullMessage(t *testing.T) {
	raw := `{
		"update_id": 1001,
		"message": {
			"message_id": 42,
			"date": 1700000000,
			"chat": {"id": -100123, "type": "supergroup", "title": "team chat", "is_forum": true},
			"from": {"id": 7, "is_bot": false, "first_name": "Ada", "last_name": "L", "username": "ada", "language_code": "en", "is_premium": true},
			"text": "check https://example.com out",
			"entities": [{"type": "url", "offset": 6, "length": 19}],
			"photo": [
				{"file_id": "small", "file_unique_id": "u1", "width": 90, "height": 60, "file_size": 1234},
				{"file_id": "big", "file_unique_id": "u2", "width": 900, "height": 600}
			],
			"location": {"longitude": 13.4, "latitude": 52.5, "horizontal_accuracy": 9.5},
			"reply_to_message": {
				"message_id": 41,
				"date": 1699999999,
				"chat": {"id": -100123, "type": "supergroup"},
				"text": "earlier"
			},
			"reply_markup": {"inline_keyboard": [[{"text": "ok", "callback_data": "ack"}]]}
		}
	}`

	update, err := schema.ParseUpdate([]byte(raw))
	require.NoError(t, err)
	require.NotNil(t, update)

	assert.Equal(t, int64(1001), update.UpdateID)
	assert.Nil(t, update.EditedMessage)
	assert.Nil(t, update.CallbackQuery)

	msg := update.Message
	require.NotNil(t, msg)
	assert.Equal(t, int64(42), msg.MessageID)
	assert.Equal(t, int64(1700000000), msg.Date)
	assert.Equal(t, "check https://example.com out", msg.Text)

	assert.Equal(t, int64(-100123), msg.Chat.ID)
	assert.Equal(t, telegram.ChatTypeSupergroup, msg.Chat.Type)
	assert.Equal(t, "team chat", msg.Chat.Title)
	assert.True(t, msg.Chat.IsForum)

	require.NotNil(t, msg.From)
	assert.Equal(t, int64(7), msg.From.ID)
	assert.False(t, msg.From.IsBot)
	assert.Equal(t, "Ada", msg.From.FirstName)
	assert.Equal(t, "en", msg.From.LanguageCode)
	assert.True(t, msg.From.IsPremium)

	require.Len(t, msg.Entities, 1)
	assert.Equal(t, telegram.EntityURL, msg.Entities[0].Type)
	assert.Equal(t, int64(6), msg.Entities[0].Offset)
	assert.Equal(t, int64(19), msg.Entities[0].Length)

	require.Len(t, msg.Photo, 2)
	assert.Equal(t, "small", msg.Photo[0].FileID)
	assert.Equal(t, int64(1234), msg.Photo[0].FileSize)
	assert.Equal(t, "big", msg.Photo[1].FileID)
	assert.Zero(t, msg.Photo[1].FileSize)

	require.NotNil(t, msg.Location)
	assert.Equal(t, 13.4, msg.Location.Longitude)
	assert.Equal(t, 52.5, msg.Location.Latitude)
	assert.Equal(t, 9.5, msg.Location.HorizontalAccuracy)

	require.NotNil(t, msg.ReplyTo)
	assert.Equal(t, int64(41), msg.ReplyTo.MessageID)
	assert.Equal(t, "earlier", msg.ReplyTo.Text)
	assert.Equal(t, telegram.ChatTypeSupergroup, msg.ReplyTo.Chat.Type)
	assert.Nil(t, msg.ReplyTo.ReplyTo)

	require.NotNil(t, msg.ReplyMarkup)
	require.Len(t, msg.ReplyMarkup.InlineKeyboard, 1)
	assert.Equal(t, "ok", msg.ReplyMarkup.InlineKeyboard[0][0].Text)
	assert.Equal(t, "ack", msg.ReplyMarkup.InlineKeyboard[0][0].CallbackData)
}

func TestParseUpdateCallbackQuery(t *testing.T) {
	raw := `{
		"update_id": 7,
		"callback_query": {
			"id": "cb-9",
			"chat_instance": "ci-1",
			"data": "vote:yes",
			"from": {"id": 3, "is_bot": false, "first_name": "Bob"},
			"message": {"message_id": 1, "date": 5, "chat": {"id": 3, "type": "private"}}
		}
	}`

	update, err := schema.ParseUpdate([]byte(raw))
	require.NoError(t, err)

	q := update.CallbackQuery
	require.NotNil(t, q)
	assert.Equal(t, "cb-9", q.ID)
	assert.Equal(t, "ci-1", q.ChatInstance)
	assert.Equal(t, "vote:yes", q.Data)
	assert.Empty(t, q.GameShortName)
	assert.Equal(t, "Bob", q.From.FirstName)
	require.NotNil(t, q.Message)
	assert.Equal(t, telegram.ChatTypePrivate, q.Message.Chat.Type)
}

func TestRejectsUnknownChatType(t *testing.T) {
	raw := `{
		"update_id": 1,
		"message": {"message_id": 1, "date": 1, "chat": {"id": 1, "type": "broadcast"}}
	}`

	_, err := schema.ParseUpdate([]byte(raw))
	require.Error(t, err)

	var schemaErr *schema.Error
	require.ErrorAs(t, err, &schemaErr)
	require.Len(t, schemaErr.Fields, 1)
	assert.Equal(t, "message.chat.type", schemaErr.Fields[0].Path)
	assert.Contains(t, err.Error(), "broadcast")
}

func TestRejectsFractionalID(t *testing.T) {
	raw := `{"update_id": 1.5}`

	_, err := schema.ParseUpdate([]byte(raw))
	require.Error(t, err)

	var schemaErr *schema.Error
	require.ErrorAs(t, err, &schemaErr)
	assert.Equal(t, "update_id", schemaErr.Fields[0].Path)
	assert.Equal(t, "integer", schemaErr.Fields[0].Want)
}

func TestNestedReplyMustConform(t *testing.T) {
	raw := `{
		"update_id": 1,
		"message": {
			"message_id": 2,
			"date": 10,
			"chat": {"id": 1, "type": "private"},
			"reply_to_message": {"message_id": 1, "chat": {"id": 1, "type": "private"}}
		}
	}`

	_, err := schema.ParseUpdate([]byte(raw))
	require.Error(t, err)

	var schemaErr *schema.Error
	require.ErrorAs(t, err, &schemaErr)
	require.Len(t, schemaErr.Fields, 1)
	assert.Equal(t, "message.reply_to_message.date", schemaErr.Fields[0].Path)
}

func TestDeepReplyChain(t *testing.T) {
	// builds a legitimate 50-deep reply chain; decoding must terminate
	inner := `{"message_id": 0, "date": 0, "chat": {"id": 1, "type": "private"}}`
	for i := 1; i <= 50; i++ {
		inner = `{"message_id": ` + strconv.Itoa(i) + `, "date": 1, "chat": {"id": 1, "type": "private"}, "reply_to_message": ` + inner + `}`
	}

	update, err := schema.ParseUpdate([]byte(`{"update_id": 1, "message": ` + inner + `}`))
	require.NoError(t, err)

	depth := 0
	for m := update.Message.ReplyTo; m != nil; m = m.ReplyTo {
		depth++
	}
	assert.Equal(t, 50, depth)
}

func TestAccumulatesAllFieldErrors(t *testing.T) {
	raw := `{
		"update_id": "one",
		"message": {
			"message_id": 1,
			"date": true,
			"chat": {"id": 2, "type": "group"},
			"from": {"id": 3, "is_bot": "no", "first_name": 42}
		}
	}`

	_, err := schema.ParseUpdate([]byte(raw))
	require.Error(t, err)

	var schemaErr *schema.Error
	require.ErrorAs(t, err, &schemaErr)

	paths := make([]string, 0, len(schemaErr.Fields))
	for _, f := range schemaErr.Fields {
		paths = append(paths, f.Path)
	}

	assert.ElementsMatch(t, []string{
		"update_id",
		"message.date",
		"message.from.is_bot",
		"message.from.first_name",
	}, paths)
}

func TestOptionalFieldsStayAbsent(t *testing.T) {
	raw := `{
		"update_id": 5,
		"message": {
			"message_id": 9,
			"date": 100,
			"chat": {"id": 4, "type": "private", "first_name": "Eve"},
			"from": {"id": 4, "is_bot": false, "first_name": "Eve", "last_name": null}
		}
	}`

	update, err := schema.ParseUpdate([]byte(raw))
	require.NoError(t, err)

	msg := update.Message
	assert.Empty(t, msg.Text)
	assert.Nil(t, msg.Entities)
	assert.Nil(t, msg.Photo)
	assert.Nil(t, msg.Location)
	assert.Nil(t, msg.ReplyTo)
	assert.Nil(t, msg.ReplyMarkup)
	assert.Empty(t, msg.From.LastName)
}

func TestParseUpdateNotJSON(t *testing.T) {
	_, err := schema.ParseUpdate([]byte("not json at all"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not valid JSON")
}

func TestUpdateMustBeObject(t *testing.T) {
	_, err := schema.ParseUpdate([]byte(`[1, 2, 3]`))
	require.Error(t, err)

	var schemaErr *schema.Error
	require.ErrorAs(t, err, &schemaErr)
	assert.Equal(t, "object", schemaErr.Fields[0].Want)
}

func TestRejectsUnknownEntityType(t *testing.T) {
	raw := `{
		"update_id": 1,
		"message": {
			"message_id": 1,
			"date": 1,
			"chat": {"id": 1, "type": "private"},
			"text": "hi",
			"entities": [{"type": "sticker", "offset": 0, "length": 2}]
		}
	}`

	_, err := schema.ParseUpdate([]byte(raw))
	require.Error(t, err)

	var schemaErr *schema.Error
	require.ErrorAs(t, err, &schemaErr)
	assert.Equal(t, "message.entities[0].type", schemaErr.Fields[0].Path)
}

func TestEntityTextMentionCarriesUser(t *testing.T) {
	raw := `{
		"message_id": 1,
		"date": 1,
		"chat": {"id": 1, "type": "private"},
		"text": "hi Ada",
		"entities": [{"type": "text_mention", "offset": 3, "length": 3, "user": {"id": 7, "is_bot": false, "first_name": "Ada"}}]
	}`

	var v any
	require.NoError(t, json.Unmarshal([]byte(raw), &v))

	msg, err := schema.DecodeMessage(v)
	require.NoError(t, err)

	require.Len(t, msg.Entities, 1)
	require.NotNil(t, msg.Entities[0].User)
	assert.Equal(t, "Ada", msg.Entities[0].User.FirstName)
}
