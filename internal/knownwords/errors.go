package knownwords

import (
	"fmt"
	"net/http"
)

// TransportError means the store could not be reached at all.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return "network error: could not reach the known-words store"
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// RemoteError is a rejection reported by the store.
type RemoteError struct {
	Status  int
	Message string
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("known-words store rejected the request: %s", e.Message)
}

func remoteError(status int, message string) *RemoteError {
	if message == "" {
		message = http.StatusText(status)
	}
	if message == "" {
		message = fmt.Sprintf("status %d", status)
	}
	return &RemoteError{Status: status, Message: message}
}
