// Package common defines shared constants and sentinel errors used across
// the portfolio backend and the admin console. Callers should use errors.Is
// to match these values.
package common

import "errors"

var (
	// Storage errors.
	ErrCorruptRecord = errors.New("corrupt local record")

	// Configuration errors. Wrong password and corrupted blob are deliberately
	// reported as the same error.
	ErrDecryptionFailed = errors.New("decryption failed")
	ErrSessionLocked    = errors.New("config is encrypted and no session key is held")

	// Auth errors (invalid or malformed token).
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
)
