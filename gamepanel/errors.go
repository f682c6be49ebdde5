package gamepanel

import (
	"errors"
	"fmt"
)

// Common errors
var (
	// ErrInvalidConfig indicates invalid client configuration
	ErrInvalidConfig = errors.New("invalid game panel configuration")
	// ErrUnsupportedMethod indicates a request method outside GET, POST, PUT, PATCH and DELETE
	ErrUnsupportedMethod = errors.New("unsupported HTTP method")
)

// TransferError is returned by a Transport when the request could not be
// exchanged with the panel: DNS, connection, TLS, timeout or body read failures.
type TransferError struct {
	Err error
}

// Error implements the error interface
func (e *TransferError) Error() string {
	return fmt.Sprintf("transfer failed: %v", e.Err)
}

func (e *TransferError) Unwrap() error {
	return e.Err
}

// CommunicationError is the only error kind the Client produces for transfer
// failures. The original cause is kept in Err.
type CommunicationError struct {
	Method string
	URL    string
	Err    error
}

// Wrap converts a transfer failure into a CommunicationError.
func Wrap(cause error) *CommunicationError {
	return &CommunicationError{Err: cause}
}

// Error implements the error interface
func (e *CommunicationError) Error() string {
	if e.Method == "" {
		return fmt.Sprintf("game panel communication failed: %v", e.Err)
	}
	return fmt.Sprintf("game panel communication failed: %s %s: %v", e.Method, e.URL, e.Err)
}

func (e *CommunicationError) Unwrap() error {
	return e.Err
}

// IsCommunicationError checks if the error is a transfer failure surfaced by the Client
func IsCommunicationError(err error) bool {
	var e *CommunicationError
	return errors.As(err, &e)
}

// IsTransferError checks if the error was signalled by a Transport as a transfer failure
func IsTransferError(err error) bool {
	var e *TransferError
	return errors.As(err, &e)
}
