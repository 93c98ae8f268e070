package api

import (
	"errors"
	"fmt"
)

// ErrAuthRequired is returned when a privileged call is attempted with no
// stored session token. The check happens before any network I/O.
var ErrAuthRequired = errors.New("login required")

// ErrUnauthorized is returned when the server rejects the stored credential.
// The client has already cleared the session and published the
// events.Unauthorized notification by the time callers see this.
var ErrUnauthorized = errors.New("session expired or invalid")

// RequestError covers every other failed call: transport errors, non-2xx
// responses, and unparsable payloads. Status is 0 when no HTTP response
// was received.
type RequestError struct {
	Status  int
	Message string
	Err     error
}

func (e *RequestError) Error() string {
	switch {
	case e.Status != 0 && e.Message != "":
		return fmt.Sprintf("server error (%d): %s", e.Status, e.Message)
	case e.Status != 0:
		return fmt.Sprintf("server returned %d", e.Status)
	case e.Message != "" && e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	case e.Err != nil:
		return e.Err.Error()
	default:
		return e.Message
	}
}

func (e *RequestError) Unwrap() error { return e.Err }
