package client

import (
	"fmt"
	"time"
)

// APIError is returned for any non-success HTTP response. Message holds
// the server-provided error text when the body carries one, else the
// HTTP status text, else a generic fallback.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return e.Message
}

// TimeoutError is returned when polling exceeds the effective timeout
// without the message reaching a terminal status. It is distinct from
// APIError so callers can tell "service still working" from "service
// rejected the request".
type TimeoutError struct {
	MessageID string
	Elapsed   time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("timed out waiting for message %s after %v", e.MessageID, e.Elapsed)
}
