// Package apperr defines the error taxonomy shared across the service.
package apperr

import "errors"

var (
	// ErrValidation marks missing or malformed caller input.
	ErrValidation = errors.New("validation error")
	// ErrUpstreamFormat marks a completion response whose shape does not
	// match the requested schema.
	ErrUpstreamFormat = errors.New("upstream format error")
	// ErrGeneration marks a failed or empty completion call.
	ErrGeneration = errors.New("generation error")
	// ErrSynthesis marks a speech synthesis call that produced no payload.
	ErrSynthesis = errors.New("synthesis error")
	// ErrStorage marks an audio cache read or write failure.
	ErrStorage = errors.New("storage error")

	ErrNotFound  = errors.New("not found")
	ErrForbidden = errors.New("forbidden")
)
