package bot

import (
	"net/url"
	"time"

	"github.com/cockroachdb/errors"
)

const (
	DefaultBaseURL = "https://api.telegram.org"
	DefaultTimeout = 30 * time.Second
)

// Config carries everything a Client needs. Token is required; the rest
// falls back to the platform defaults.
type Config struct {
	Token   string
	BaseURL string
	Timeout time.Duration
}

func (c Config) withDefaults() Config {
	if c.BaseURL == "" {
		c.BaseURL = DefaultBaseURL
	}
	if c.Timeout == 0 {
		c.Timeout = DefaultTimeout
	}

	return c
}

func (c Config) validate() error {
	if c.Token == "" {
		return errors.New("bot token is required")
	}

	u, err := url.Parse(c.BaseURL)
	if err != nil {
		return errors.Wrapf(err, "invalid base url %s", c.BaseURL)
	}
	if u.Scheme == "" || u.Host == "" {
		return errors.Newf("base url %s is not an absolute url", c.BaseURL)
	}

	if c.Timeout < 0 {
		return errors.Newf("timeout must be positive, got %s", c.Timeout)
	}

	return nil
}

// MaskToken renders a token safe for logs: three characters from each end
// around an ellipsis. Tokens too short to mask that way are hidden entirely.
func MaskToken(token string) string {
	if len(token) <= 6 {
		return "..."
	}

	return token[:3] + "..." + token[len(token)-3:]
}
