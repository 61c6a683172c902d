// Package services implements the admin, chat and upload use cases on top of
// the content store, the config resolver and the session holder.
package services

import "errors"

var (
	ErrEmptyPassword   = errors.New("password is empty")
	ErrAccessDenied    = errors.New("access denied")
	ErrNotLoggedIn     = errors.New("admin session required")
	ErrInvalidDraft    = errors.New("invalid draft")
	ErrAIDisabled      = errors.New("AI key is not configured")
	ErrEmptyQuestion   = errors.New("question is empty")
	ErrUploadsDisabled = errors.New("image uploads are not configured")
	ErrUnsupportedFile = errors.New("unsupported image type")
)
