// Package common defines shared constants and sentinel errors used across
// ClipForge components. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Service-level errors (generic/internal flow control).
	ErrorInternal        = errors.New("internal error")
	ErrorUnauthorized    = errors.New("unauthorized")
	ErrorForbidden       = errors.New("forbidden")
	ErrorInvalidArgument = errors.New("invalid argument")

	// Registration errors. The message is intentionally specific: the
	// register endpoint reveals that an email exists, login does not.
	ErrorEmailTaken = errors.New("email already registered")

	// Upload validation errors.
	ErrorUnsupportedMediaType = errors.New("unsupported media type")
	ErrorFileTooLarge         = errors.New("file too large")

	// Auth errors. ErrTokenExpired is only returned when the signature
	// verified and expiry alone failed; everything else is ErrInvalidToken.
	ErrorMissingCredential = errors.New("missing credential")
	ErrInvalidToken        = errors.New("invalid token")
	ErrTokenExpired        = errors.New("token expired")

	// Startup errors (key material missing/unreadable).
	ErrorConfiguration = errors.New("configuration error")
)
