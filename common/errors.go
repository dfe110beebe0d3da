// Package common provides shared constants, types, and utilities
// used across the NordVPN Indicator application.
package common

import "errors"

// Sentinel errors for client operations.
// These can be checked with errors.Is() for proper error handling.
var (
	// External client errors.
	ErrCommandFailed  = errors.New("external client command failed")
	ErrClientNotFound = errors.New("external VPN client not installed")

	// Account errors.
	ErrLoginFailed  = errors.New("login was not confirmed by the client")
	ErrNoCredential = errors.New("no stored credentials")

	// Configuration errors.
	ErrConfigLoad = errors.New("failed to load configuration")
	ErrConfigSave = errors.New("failed to save configuration")

	// History errors.
	ErrHistoryClosed = errors.New("history store is closed")
)

// WrapError wraps an error with additional context.
func WrapError(err error, message string) error {
	if err == nil {
		return nil
	}
	return &wrappedError{
		msg: message,
		err: err,
	}
}

type wrappedError struct {
	msg string
	err error
}

func (e *wrappedError) Error() string {
	return e.msg + ": " + e.err.Error()
}

func (e *wrappedError) Unwrap() error {
	return e.err
}
