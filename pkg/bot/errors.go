package bot

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

// ErrTimeout marks calls that were cancelled because no response arrived
// within the configured timeout. Check with errors.Is.
var ErrTimeout = errors.New("no response within timeout")

// APIError is a remote-side failure: the API answered with ok=false.
// The code and description come straight from the response envelope; the
// client does not special-case any code.
type APIError struct {
	ErrorCode   int
	Description string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("telegram api error %d: %s", e.ErrorCode, e.Description)
}
