package chat

import (
	"errors"
	"fmt"
)

// StatusToError maps a non-2xx upstream response to a display-safe Error.
// notFoundHint carries the provider-specific remediation for a 404.
func StatusToError(provider string, st *StatusError, notFoundHint string) *Error {
	switch st.Code {
	case 401, 403:
		return &Error{
			Provider: provider,
			Kind:     KindAuth,
			Status:   st.Code,
			Message:  fmt.Sprintf("Invalid or unauthorized API key. Check your %s settings.", provider),
			Err:      st,
		}
	case 404:
		msg := "Model not found."
		if notFoundHint != "" {
			msg += " " + notFoundHint
		}
		return &Error{Provider: provider, Kind: KindNotFound, Status: st.Code, Message: msg, Err: st}
	default:
		return &Error{
			Provider: provider,
			Kind:     KindUpstream,
			Status:   st.Code,
			Message:  fmt.Sprintf("The %s service returned HTTP %d: %s", provider, st.Code, ErrorDetail(st.Body)),
			Err:      st,
		}
	}
}

// TransportToError converts any error out of DoJSON into a display-safe
// Error. connectHint replaces the generic cannot-connect message, used by
// self-hosted providers to suggest checking the local service.
func TransportToError(provider string, err error, connectHint string, notFoundHint string) *Error {
	var st *StatusError
	if errors.As(err, &st) {
		return StatusToError(provider, st, notFoundHint)
	}
	if IsConnectionError(err) {
		msg := connectHint
		if msg == "" {
			msg = fmt.Sprintf("Could not connect to %s. Check your network connection and try again.", provider)
		}
		return &Error{Provider: provider, Kind: KindConnection, Message: msg, Err: err}
	}
	return &Error{
		Provider: provider,
		Kind:     KindConnection,
		Message:  fmt.Sprintf("Could not reach %s. Please try again.", provider),
		Err:      err,
	}
}

// BadResponseError reports a 2xx body missing the expected reply field.
func BadResponseError(provider string) *Error {
	return &Error{
		Provider: provider,
		Kind:     KindBadResponse,
		Message:  fmt.Sprintf("Received an unexpected response from %s. Please try again.", provider),
	}
}

// MissingKeyError reports an adapter constructed without a credential.
func MissingKeyError(provider string) *Error {
	return &Error{
		Provider: provider,
		Kind:     KindAuth,
		Message:  fmt.Sprintf("No API key configured for %s. Add one in settings.", provider),
		Err:      ErrMissingAPIKey,
	}
}
