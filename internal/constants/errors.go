package constants

import "errors"

// Configuration errors.
var (
	ErrNoHostConfigured   = errors.New("no host configured, use --host or 'discourse config set host <host>'")
	ErrNoAPIKeyConfigured = errors.New("no API key configured, use --api-key or DISCOURSE_API_KEY")
	ErrUnknownConfigKey   = errors.New("unknown configuration key")
)

// Validation errors.
var (
	ErrInvalidUserID     = errors.New("invalid user id")
	ErrInvalidTopicID    = errors.New("invalid topic id")
	ErrInvalidUntil      = errors.New("invalid --until value")
	ErrInvalidOutput     = errors.New("invalid output format")
	ErrOperationRejected = errors.New("operation rejected by the forum")
)
