package utils

import "errors"

var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrMissingDestination = errors.New("destination is required")
	ErrMissingOrigin      = errors.New("origin is required for transit modes")
	ErrInvalidTripQuery   = errors.New("invalid trip query")
	ErrSessionNotFound    = errors.New("chat session not found")
	ErrChatBusy           = errors.New("chat session is already answering")
	ErrEmptyMessage       = errors.New("message cannot be empty")

	// backend errors, never surfaced past the gateway
	ErrAIUnavailable    = errors.New("ai backend unavailable")
	ErrEmptyAIResponse  = errors.New("ai backend returned no content")
	ErrUnsupportedModel = errors.New("unsupported ai provider")
	ErrSchemaMismatch   = errors.New("response does not match schema")
)
