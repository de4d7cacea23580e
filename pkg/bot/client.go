package bot

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/url"
	"strconv"
	"sync"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/imroc/req/v3"

	"github.com/skynet2/telegram-bot-sdk/pkg/telegram"
)

// Client is a thin wrapper over the Bot API. Every method issues exactly
// one HTTP call bounded by the configured timeout; there are no retries,
// no queueing and no internal logging. Methods are safe for concurrent use.
type Client struct {
	cl  *req.Client
	cfg Config

	mu    sync.RWMutex
	token string
}

// New validates the configuration and builds a client on top of cl.
// A nil cl gets a default req client.
func New(cfg Config, cl *req.Client) (*Client, error) {
	cfg = cfg.withDefaults()
	if err := cfg.validate(); err != nil {
		return nil, errors.Wrap(err, "invalid bot configuration")
	}

	if cl == nil {
		cl = req.C()
	}

	return &Client{
		cl:    cl,
		cfg:   cfg,
		token: cfg.Token,
	}, nil
}

// RotateToken swaps the credential used by all subsequent calls. The write
// is atomic: an in-flight call keeps the token it resolved its URL with.
func (c *Client) RotateToken(token string) error {
	if token == "" {
		return errors.New("bot token is required")
	}

	c.mu.Lock()
	c.token = token
	c.mu.Unlock()

	return nil
}

// MaskedToken is the diagnostics-safe form of the current token.
func (c *Client) MaskedToken() string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return MaskToken(c.token)
}

func (c *Client) BaseURL() string {
	return c.cfg.BaseURL
}

func (c *Client) Timeout() time.Duration {
	return c.cfg.Timeout
}

// SetWebhook points the API at the given endpoint. Certificate, when set,
// is uploaded as multipart form data.
func (c *Client) SetWebhook(
	ctx context.Context,
	request SetWebhookRequest,
) (bool, error) {
	if request.URL == "" {
		return false, errors.New("webhook url is required")
	}

	var files map[string]InputFile
	if request.Certificate != nil {
		files = map[string]InputFile{"certificate": *request.Certificate}
	}

	var ok bool
	if err := c.call(ctx, "setWebhook", request, files, &ok); err != nil {
		return false, err
	}

	return ok, nil
}

func (c *Client) SendMessage(
	ctx context.Context,
	request SendMessageRequest,
) (*telegram.Message, error) {
	if request.ChatID == 0 {
		return nil, errors.New("chat_id is required")
	}
	if request.Text == "" {
		return nil, errors.New("text is required")
	}
	if err := validateMarkup(request.ReplyMarkup); err != nil {
		return nil, err
	}

	var msg telegram.Message
	if err := c.call(ctx, "sendMessage", request, nil, &msg); err != nil {
		return nil, err
	}

	return &msg, nil
}

func (c *Client) SendPhoto(
	ctx context.Context,
	request SendPhotoRequest,
) (*telegram.Message, error) {
	if request.ChatID == 0 {
		return nil, errors.New("chat_id is required")
	}
	if request.Photo == "" && request.PhotoFile == nil {
		return nil, errors.New("photo is required, pass an url, a file_id or a file")
	}
	if err := validateMarkup(request.ReplyMarkup); err != nil {
		return nil, err
	}

	var files map[string]InputFile
	if request.PhotoFile != nil {
		request.Photo = ""
		files = map[string]InputFile{"photo": *request.PhotoFile}
	}

	var msg telegram.Message
	if err := c.call(ctx, "sendPhoto", request, files, &msg); err != nil {
		return nil, err
	}

	return &msg, nil
}

func (c *Client) AnswerCallbackQuery(
	ctx context.Context,
	request AnswerCallbackQueryRequest,
) (bool, error) {
	if request.CallbackQueryID == "" {
		return false, errors.New("callback_query_id is required")
	}

	var ok bool
	if err := c.call(ctx, "answerCallbackQuery", request, nil, &ok); err != nil {
		return false, err
	}

	return ok, nil
}

// call performs one request against <base>/bot<token>/<method>. With files
// present the parameter set goes out as multipart form data, otherwise as a
// single JSON body. The response envelope is unwrapped into result or into
// an *APIError.
func (c *Client) call(
	ctx context.Context,
	method string,
	params any,
	files map[string]InputFile,
	result any,
) error {
	callCtx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	r := c.cl.R().SetContext(callCtx)

	if len(files) > 0 {
		fields, err := formFields(params)
		if err != nil {
			return err
		}

		r.SetFormData(fields)
		for field, file := range files {
			r.SetFileBytes(field, file.Name, file.Data)
		}
	} else {
		r.SetBodyJsonMarshal(params) // forces a JSON body even for map params
	}

	resp, err := r.Post(c.methodURL(method))
	if err != nil {
		// url.Error carries the full request URL, token included
		var urlErr *url.Error
		if errors.As(err, &urlErr) {
			err = urlErr.Err
		}

		if errors.Is(err, context.DeadlineExceeded) {
			return errors.Mark(
				errors.Wrapf(err, "%s: no response within %s", method, c.cfg.Timeout),
				ErrTimeout)
		}

		return errors.Wrapf(err, "%s request failed", method)
	}

	var envelope apiResponse
	if err = resp.UnmarshalJson(&envelope); err != nil {
		return errors.Wrapf(err, "%s: malformed response body", method)
	}

	if !envelope.OK {
		return &APIError{
			ErrorCode:   envelope.ErrorCode,
			Description: envelope.Description,
		}
	}

	if result != nil {
		if err = json.Unmarshal(envelope.Result, result); err != nil {
			return errors.Wrapf(err, "%s: unexpected result shape", method)
		}
	}

	return nil
}

func (c *Client) methodURL(method string) string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return fmt.Sprintf("%s/bot%s/%s", c.cfg.BaseURL, c.token, method)
}

func validateMarkup(markup telegram.ReplyMarkup) error {
	switch m := markup.(type) {
	case telegram.InlineKeyboardMarkup:
		return errors.Wrap(m.Validate(), "invalid reply markup")
	case *telegram.InlineKeyboardMarkup:
		return errors.Wrap(m.Validate(), "invalid reply markup")
	default:
		return nil
	}
}

// formFields flattens a request into multipart form fields: scalars are
// stringified, object- and array-valued parameters are JSON-encoded before
// insertion.
func formFields(params any) (map[string]string, error) {
	raw, err := json.Marshal(params)
	if err != nil {
		return nil, errors.Wrap(err, "failed to encode parameters")
	}

	var obj map[string]any
	if err = json.Unmarshal(raw, &obj); err != nil {
		return nil, errors.Wrap(err, "failed to encode parameters")
	}

	fields := make(map[string]string, len(obj))
	for key, v := range obj {
		switch val := v.(type) {
		case string:
			fields[key] = val
		case bool:
			fields[key] = strconv.FormatBool(val)
		case float64:
			if val == math.Trunc(val) {
				fields[key] = strconv.FormatInt(int64(val), 10)
			} else {
				fields[key] = strconv.FormatFloat(val, 'f', -1, 64)
			}
		default:
			enc, encErr := json.Marshal(v)
			if encErr != nil {
				return nil, errors.Wrapf(encErr, "failed to encode parameter %s", key)
			}
			fields[key] = string(enc)
		}
	}

	return fields, nil
}
