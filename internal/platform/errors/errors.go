package apperrors

import "errors"

var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrCacheMiss          = errors.New("cache miss")
	ErrResumeUnavailable  = errors.New("resume unavailable")
	ErrCapabilityMissing  = errors.New("plugin capability missing")
	ErrUnexpectedResponse = errors.New("unexpected response")
)
