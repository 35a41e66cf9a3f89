package chat

import (
	"errors"
	"fmt"
)

var ErrMissingAPIKey = errors.New("missing api key")

// Kind classifies an adapter failure.
type Kind string

const (
	// KindConnection covers DNS failures, refused connections, and timeouts.
	KindConnection Kind = "connection"
	// KindAuth covers 401/403 upstream responses.
	KindAuth Kind = "auth"
	// KindNotFound covers 404 upstream responses (unknown model, wrong path).
	KindNotFound Kind = "not_found"
	// KindUpstream covers any other non-2xx upstream response.
	KindUpstream Kind = "upstream"
	// KindBadResponse covers a 2xx whose body lacks the expected reply field.
	KindBadResponse Kind = "bad_response"
)

// Error is the only error type adapters return. Message is display-safe:
// it carries no credentials and no raw transport detail, so the gateway can
// surface it to end users verbatim. Full diagnostics go to the logger.
type Error struct {
	Provider string
	Kind     Kind
	Status   int
	Message  string
	Err      error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Provider, e.Kind, e.Err)
	}
	return fmt.Sprintf("%s: %s: %s", e.Provider, e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// AsError unwraps err into *Error when possible.
func AsError(err error) (*Error, bool) {
	var ce *Error
	if errors.As(err, &ce) {
		return ce, true
	}
	return nil, false
}
