package schema

import (
	"encoding/json"

	"github.com/cockroachdb/errors"
	"github.com/samber/lo"

	"github.com/skynet2/telegram-bot-sdk/pkg/telegram"
)

// ParseUpdate validates a raw webhook body and returns the typed update.
func ParseUpdate(raw []byte) (*telegram.Update, error) {
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, errors.Wrap(err, "payload is not valid JSON")
	}

	return DecodeUpdate(v)
}

// DecodeUpdate validates an already-parsed JSON tree against the Update
// shape. On failure the returned error is a *Error listing every offending
// field with its path.
func DecodeUpdate(v any) (*telegram.Update, error) {
	d := &decoder{}

	u := d.update("", v)
	if err := d.err(); err != nil {
		return nil, err
	}

	return u, nil
}

// DecodeMessage validates a JSON tree against the Message shape.
func DecodeMessage(v any) (*telegram.Message, error) {
	d := &decoder{}

	m := d.message("", v)
	if err := d.err(); err != nil {
		return nil, err
	}

	return m, nil
}

// DecodeCallbackQuery validates a JSON tree against the CallbackQuery shape.
func DecodeCallbackQuery(v any) (*telegram.CallbackQuery, error) {
	d := &decoder{}

	q := d.callbackQuery("", v)
	if err := d.err(); err != nil {
		return nil, err
	}

	return q, nil
}

// DecodeReplyMarkup discriminates among the four keyboard shapes. Candidates
// are tried in a fixed order by their required discriminating key:
// inline_keyboard, then keyboard, then remove_keyboard, then force_reply.
// The first key present decides the shape.
func DecodeReplyMarkup(v any) (telegram.ReplyMarkup, error) {
	d := &decoder{}

	m := d.replyMarkup("", v)
	if err := d.err(); err != nil {
		return nil, err
	}

	return m, nil
}

func (d *decoder) update(path string, v any) *telegram.Update {
	obj, ok := d.object(path, v)
	if !ok {
		return nil
	}

	u := &telegram.Update{
		UpdateID: d.requireInt(obj, path, "update_id"),
	}

	if ev, present := optional(obj, "message"); present {
		u.Message = d.message(joinPath(path, "message"), ev)
	}
	if ev, present := optional(obj, "edited_message"); present {
		u.EditedMessage = d.message(joinPath(path, "edited_message"), ev)
	}
	if ev, present := optional(obj, "channel_post"); present {
		u.ChannelPost = d.message(joinPath(path, "channel_post"), ev)
	}
	if ev, present := optional(obj, "edited_channel_post"); present {
		u.EditedChannelPost = d.message(joinPath(path, "edited_channel_post"), ev)
	}
	if ev, present := optional(obj, "callback_query"); present {
		u.CallbackQuery = d.callbackQuery(joinPath(path, "callback_query"), ev)
	}

	return u
}

// message recurses into itself through reply_to_message. Recursion happens
// at validation time, one level per nested reply, so any finite chain
// terminates.
func (d *decoder) message(path string, v any) *telegram.Message {
	obj, ok := d.object(path, v)
	if !ok {
		return nil
	}

	m := &telegram.Message{
		MessageID: d.requireInt(obj, path, "message_id"),
		Date:      d.requireInt(obj, path, "date"),
		Text:      d.optionalString(obj, path, "text"),
		Caption:   d.optionalString(obj, path, "caption"),
	}

	chatVal, present := optional(obj, "chat")
	if !present {
		d.missing(joinPath(path, "chat"), "object")
	} else {
		m.Chat = d.chat(joinPath(path, "chat"), chatVal)
	}

	if fromVal, ok := optional(obj, "from"); ok {
		m.From = d.user(joinPath(path, "from"), fromVal)
	}

	if entVal, ok := optional(obj, "entities"); ok {
		m.Entities = d.entities(joinPath(path, "entities"), entVal)
	}
	if entVal, ok := optional(obj, "caption_entities"); ok {
		m.CaptionEntities = d.entities(joinPath(path, "caption_entities"), entVal)
	}

	if photoVal, ok := optional(obj, "photo"); ok {
		m.Photo = d.photo(joinPath(path, "photo"), photoVal)
	}

	if locVal, ok := optional(obj, "location"); ok {
		m.Location = d.location(joinPath(path, "location"), locVal)
	}

	if replyVal, ok := optional(obj, "reply_to_message"); ok {
		m.ReplyTo = d.message(joinPath(path, "reply_to_message"), replyVal)
	}

	if markupVal, ok := optional(obj, "reply_markup"); ok {
		m.ReplyMarkup = d.inlineKeyboardMarkup(joinPath(path, "reply_markup"), markupVal)
	}

	return m
}

func (d *decoder) user(path string, v any) *telegram.User {
	obj, ok := d.object(path, v)
	if !ok {
		return nil
	}

	return &telegram.User{
		ID:                      d.requireInt(obj, path, "id"),
		IsBot:                   d.requireBool(obj, path, "is_bot"),
		FirstName:               d.requireString(obj, path, "first_name"),
		LastName:                d.optionalString(obj, path, "last_name"),
		Username:                d.optionalString(obj, path, "username"),
		LanguageCode:            d.optionalString(obj, path, "language_code"),
		IsPremium:               d.optionalBool(obj, path, "is_premium"),
		CanJoinGroups:           d.optionalBool(obj, path, "can_join_groups"),
		CanReadAllGroupMessages: d.optionalBool(obj, path, "can_read_all_group_messages"),
		SupportsInlineQueries:   d.optionalBool(obj, path, "supports_inline_queries"),
	}
}

func (d *decoder) chat(path string, v any) telegram.Chat {
	obj, ok := d.object(path, v)
	if !ok {
		return telegram.Chat{}
	}

	c := telegram.Chat{
		ID:        d.requireInt(obj, path, "id"),
		Title:     d.optionalString(obj, path, "title"),
		Username:  d.optionalString(obj, path, "username"),
		FirstName: d.optionalString(obj, path, "first_name"),
		LastName:  d.optionalString(obj, path, "last_name"),
		IsForum:   d.optionalBool(obj, path, "is_forum"),
	}

	typ := telegram.ChatType(d.requireString(obj, path, "type"))
	if typ != "" && !lo.Contains(telegram.ChatTypes, typ) {
		d.fail(joinPath(path, "type"), "one of private/group/supergroup/channel", string(typ))
		return c
	}
	c.Type = typ

	return c
}

func (d *decoder) photo(path string, v any) []telegram.PhotoSize {
	arr, ok := d.array(path, v)
	if !ok {
		return nil
	}

	sizes := make([]telegram.PhotoSize, 0, len(arr))
	for i, el := range arr {
		sizes = append(sizes, d.photoSize(indexPath(path, i), el))
	}

	return sizes
}

func (d *decoder) photoSize(path string, v any) telegram.PhotoSize {
	obj, ok := d.object(path, v)
	if !ok {
		return telegram.PhotoSize{}
	}

	return telegram.PhotoSize{
		FileID:       d.requireString(obj, path, "file_id"),
		FileUniqueID: d.requireString(obj, path, "file_unique_id"),
		Width:        d.requireInt(obj, path, "width"),
		Height:       d.requireInt(obj, path, "height"),
		FileSize:     d.optionalInt(obj, path, "file_size"),
	}
}

func (d *decoder) location(path string, v any) *telegram.Location {
	obj, ok := d.object(path, v)
	if !ok {
		return nil
	}

	return &telegram.Location{
		Longitude:            d.requireFloat(obj, path, "longitude"),
		Latitude:             d.requireFloat(obj, path, "latitude"),
		HorizontalAccuracy:   d.optionalFloat(obj, path, "horizontal_accuracy"),
		LivePeriod:           d.optionalInt(obj, path, "live_period"),
		Heading:              d.optionalInt(obj, path, "heading"),
		ProximityAlertRadius: d.optionalInt(obj, path, "proximity_alert_radius"),
	}
}

func (d *decoder) entities(path string, v any) []telegram.MessageEntity {
	arr, ok := d.array(path, v)
	if !ok {
		return nil
	}

	entities := make([]telegram.MessageEntity, 0, len(arr))
	for i, el := range arr {
		entities = append(entities, d.entity(indexPath(path, i), el))
	}

	return entities
}

func (d *decoder) entity(path string, v any) telegram.MessageEntity {
	obj, ok := d.object(path, v)
	if !ok {
		return telegram.MessageEntity{}
	}

	e := telegram.MessageEntity{
		Offset:        d.requireInt(obj, path, "offset"),
		Length:        d.requireInt(obj, path, "length"),
		URL:           d.optionalString(obj, path, "url"),
		Language:      d.optionalString(obj, path, "language"),
		CustomEmojiID: d.optionalString(obj, path, "custom_emoji_id"),
	}

	typ := telegram.EntityType(d.requireString(obj, path, "type"))
	if typ != "" && !lo.Contains(telegram.EntityTypes, typ) {
		d.fail(joinPath(path, "type"), "a known entity type", string(typ))
	} else {
		e.Type = typ
	}

	if userVal, ok := optional(obj, "user"); ok {
		e.User = d.user(joinPath(path, "user"), userVal)
	}

	return e
}

func (d *decoder) callbackQuery(path string, v any) *telegram.CallbackQuery {
	obj, ok := d.object(path, v)
	if !ok {
		return nil
	}

	q := &telegram.CallbackQuery{
		ID:            d.requireString(obj, path, "id"),
		ChatInstance:  d.requireString(obj, path, "chat_instance"),
		Data:          d.optionalString(obj, path, "data"),
		GameShortName: d.optionalString(obj, path, "game_short_name"),
	}

	fromVal, present := optional(obj, "from")
	if !present {
		d.missing(joinPath(path, "from"), "object")
	} else if u := d.user(joinPath(path, "from"), fromVal); u != nil {
		q.From = *u
	}

	if msgVal, ok := optional(obj, "message"); ok {
		q.Message = d.message(joinPath(path, "message"), msgVal)
	}

	return q
}

func (d *decoder) replyMarkup(path string, v any) telegram.ReplyMarkup {
	obj, ok := d.object(path, v)
	if !ok {
		return nil
	}

	switch {
	case lo.HasKey(obj, "inline_keyboard"):
		m := d.inlineKeyboardMarkup(path, v)
		if m == nil {
			return nil
		}
		return *m
	case lo.HasKey(obj, "keyboard"):
		return d.replyKeyboardMarkup(path, obj)
	case lo.HasKey(obj, "remove_keyboard"):
		return telegram.ReplyKeyboardRemove{
			RemoveKeyboard: d.requireBool(obj, path, "remove_keyboard"),
			Selective:      d.optionalBool(obj, path, "selective"),
		}
	case lo.HasKey(obj, "force_reply"):
		return telegram.ForceReply{
			ForceReply:            d.requireBool(obj, path, "force_reply"),
			InputFieldPlaceholder: d.optionalString(obj, path, "input_field_placeholder"),
			Selective:             d.optionalBool(obj, path, "selective"),
		}
	default:
		d.fail(path, "one of inline_keyboard/keyboard/remove_keyboard/force_reply", v)
		return nil
	}
}

func (d *decoder) inlineKeyboardMarkup(path string, v any) *telegram.InlineKeyboardMarkup {
	obj, ok := d.object(path, v)
	if !ok {
		return nil
	}

	rowsVal, present := optional(obj, "inline_keyboard")
	if !present {
		d.missing(joinPath(path, "inline_keyboard"), "array of button rows")
		return nil
	}

	rows, ok := d.array(joinPath(path, "inline_keyboard"), rowsVal)
	if !ok {
		return nil
	}

	markup := &telegram.InlineKeyboardMarkup{
		InlineKeyboard: make([][]telegram.InlineKeyboardButton, 0, len(rows)),
	}

	for i, rowVal := range rows {
		rowPath := indexPath(joinPath(path, "inline_keyboard"), i)

		row, ok := d.array(rowPath, rowVal)
		if !ok {
			continue
		}

		buttons := make([]telegram.InlineKeyboardButton, 0, len(row))
		for j, btnVal := range row {
			buttons = append(buttons, d.inlineKeyboardButton(indexPath(rowPath, j), btnVal))
		}

		markup.InlineKeyboard = append(markup.InlineKeyboard, buttons)
	}

	return markup
}

func (d *decoder) inlineKeyboardButton(path string, v any) telegram.InlineKeyboardButton {
	obj, ok := d.object(path, v)
	if !ok {
		return telegram.InlineKeyboardButton{}
	}

	b := telegram.InlineKeyboardButton{
		Text: d.requireString(obj, path, "text"),
		URL:  d.optionalString(obj, path, "url"),
		Pay:  d.optionalBool(obj, path, "pay"),
	}

	data := d.optionalString(obj, path, "callback_data")
	if len(data) > telegram.MaxCallbackDataLen {
		d.fail(joinPath(path, "callback_data"), "at most 64 bytes", data)
	} else {
		b.CallbackData = data
	}

	if webAppVal, ok := optional(obj, "web_app"); ok {
		if webApp, ok := d.object(joinPath(path, "web_app"), webAppVal); ok {
			b.WebApp = &telegram.WebAppInfo{
				URL: d.requireString(webApp, joinPath(path, "web_app"), "url"),
			}
		}
	}

	if loginVal, ok := optional(obj, "login_url"); ok {
		if login, ok := d.object(joinPath(path, "login_url"), loginVal); ok {
			loginPath := joinPath(path, "login_url")
			b.LoginURL = &telegram.LoginURL{
				URL:                d.requireString(login, loginPath, "url"),
				ForwardText:        d.optionalString(login, loginPath, "forward_text"),
				BotUsername:        d.optionalString(login, loginPath, "bot_username"),
				RequestWriteAccess: d.optionalBool(login, loginPath, "request_write_access"),
			}
		}
	}

	if q, ok := optional(obj, "switch_inline_query"); ok {
		b.SwitchInlineQuery = lo.ToPtr(d.string(joinPath(path, "switch_inline_query"), q))
	}
	if q, ok := optional(obj, "switch_inline_query_current_chat"); ok {
		b.SwitchInlineQueryCurrentChat = lo.ToPtr(d.string(joinPath(path, "switch_inline_query_current_chat"), q))
	}
	if _, ok := optional(obj, "callback_game"); ok {
		b.CallbackGame = &struct{}{}
	}

	return b
}

func (d *decoder) replyKeyboardMarkup(path string, obj map[string]any) telegram.ReplyMarkup {
	rows, ok := d.array(joinPath(path, "keyboard"), obj["keyboard"])
	if !ok {
		return nil
	}

	markup := telegram.ReplyKeyboardMarkup{
		IsPersistent:          d.optionalBool(obj, path, "is_persistent"),
		ResizeKeyboard:        d.optionalBool(obj, path, "resize_keyboard"),
		OneTimeKeyboard:       d.optionalBool(obj, path, "one_time_keyboard"),
		InputFieldPlaceholder: d.optionalString(obj, path, "input_field_placeholder"),
		Selective:             d.optionalBool(obj, path, "selective"),
		Keyboard:              make([][]telegram.KeyboardButton, 0, len(rows)),
	}

	for i, rowVal := range rows {
		rowPath := indexPath(joinPath(path, "keyboard"), i)

		row, ok := d.array(rowPath, rowVal)
		if !ok {
			continue
		}

		buttons := make([]telegram.KeyboardButton, 0, len(row))
		for j, btnVal := range row {
			buttons = append(buttons, d.keyboardButton(indexPath(rowPath, j), btnVal))
		}

		markup.Keyboard = append(markup.Keyboard, buttons)
	}

	return markup
}

func (d *decoder) keyboardButton(path string, v any) telegram.KeyboardButton {
	// the API allows a bare string as shorthand for a text-only button
	if s, ok := v.(string); ok {
		return telegram.KeyboardButton{Text: s}
	}

	obj, ok := d.object(path, v)
	if !ok {
		return telegram.KeyboardButton{}
	}

	b := telegram.KeyboardButton{
		Text:            d.requireString(obj, path, "text"),
		RequestContact:  d.optionalBool(obj, path, "request_contact"),
		RequestLocation: d.optionalBool(obj, path, "request_location"),
	}

	if webAppVal, ok := optional(obj, "web_app"); ok {
		if webApp, ok := d.object(joinPath(path, "web_app"), webAppVal); ok {
			b.WebApp = &telegram.WebAppInfo{
				URL: d.requireString(webApp, joinPath(path, "web_app"), "url"),
			}
		}
	}

	return b
}
