package moderation

import "errors"

var (
	ErrSubmissionNotFound = errors.New("moderation: submission not found")
	ErrInFlight           = errors.New("moderation: a moderation call for this submission is already running")
	ErrNoTransition       = errors.New("moderation: submission already has that status")
	ErrInvalidFilter      = errors.New("moderation: unknown filter")
	ErrInvalidPageSize    = errors.New("moderation: page size must be one of 5, 10, 20, 50")
)
