package googlebooks

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when the API reports no volume for the given id.
var ErrNotFound = errors.New("volume not found")

// ConnectionError wraps a transport-level failure (DNS, refused connection,
// timeout). It is one of the two failure kinds the UI layer collapses into
// its Error state.
type ConnectionError struct {
	Err error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("google books: connection failed: %v", e.Err)
}

func (e *ConnectionError) Unwrap() error { return e.Err }

// ProtocolError wraps a non-2xx response or a response body that could not
// be decoded.
type ProtocolError struct {
	StatusCode int
	Err        error
}

func (e *ProtocolError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("google books: unexpected status %d", e.StatusCode)
	}
	return fmt.Sprintf("google books: protocol error: %v", e.Err)
}

func (e *ProtocolError) Unwrap() error { return e.Err }

// IsFetchError reports whether err is one of the two recognized transport
// failure kinds. Anything else is a programming error and should propagate.
func IsFetchError(err error) bool {
	var connErr *ConnectionError
	var protoErr *ProtocolError
	return errors.As(err, &connErr) || errors.As(err, &protoErr) || errors.Is(err, ErrNotFound)
}
