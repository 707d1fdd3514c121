package edge

import (
	"errors"
	"fmt"
)

var (
	// ErrNotConnected is returned when the websocket is not established.
	ErrNotConnected = errors.New("websocket not connected")

	// ErrConnectionClosed is returned when the gateway closed the
	// connection before the stream completed.
	ErrConnectionClosed = errors.New("websocket connection closed")

	// ErrEmptyText is returned for blank synthesis input.
	ErrEmptyText = errors.New("empty synthesis text")
)

// ServiceError is a failure reported by the gateway itself, e.g. an
// unknown voice id or a quota rejection.
type ServiceError struct {
	Code    string
	Message string
}

func (e *ServiceError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("synthesis service error [%s]: %s", e.Code, e.Message)
	}
	return "synthesis service error: " + e.Message
}

// IsServiceError reports whether err originated from the gateway rather
// than the transport.
func IsServiceError(err error) bool {
	var se *ServiceError
	return errors.As(err, &se)
}
