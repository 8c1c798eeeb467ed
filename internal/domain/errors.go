package domain

import "errors"

// Sentinel errors for the domain layer. These provide consistent, checkable
// errors for common business logic failures.
var (
	ErrSessionNotFound = errors.New("session not found")
	ErrMessageNotFound = errors.New("message not found")
	ErrBlobNotFound    = errors.New("blob not found")
	ErrStorage         = errors.New("blob storage failure")
)
